// Package cleaner provides the whitespace and character-set cleaning stage.
package cleaner

import (
	"regexp"

	"github.com/custodia-labs/docprep/internal/core/ports/driven"
	"github.com/custodia-labs/docprep/internal/textstats"
)

// Ensure Cleaner implements the interface.
var _ driven.TextTransformer = (*Cleaner)(nil)

// Name is the stage name.
const Name = "cleaner"

type pattern struct {
	re          *regexp.Regexp
	replacement string
}

// Pre-compiled cleaning patterns, applied in order.
// The newline collapse runs after whitespace has already been folded to
// spaces, so it never matches; the order is kept as is.
var cleaningPatterns = []pattern{
	{regexp.MustCompile(`[` + textstats.SpaceClass + `]+`), " "},
	{regexp.MustCompile(`\n+`), "\n"},
	{regexp.MustCompile(`[^\x00-\x7F]+`), ""},
}

// Cleaner collapses whitespace and strips non-ASCII characters.
type Cleaner struct{}

// New creates a new cleaner.
func New() *Cleaner {
	return &Cleaner{}
}

// Name returns the stage name.
func (c *Cleaner) Name() string {
	return Name
}

// Transform implements driven.TextTransformer.
func (c *Cleaner) Transform(text string) string {
	return c.Clean(text)
}

// Clean applies the cleaning patterns then trims surrounding whitespace.
func (c *Cleaner) Clean(text string) string {
	for _, p := range cleaningPatterns {
		text = p.re.ReplaceAllLiteralString(text, p.replacement)
	}
	return textstats.TrimSpace(text)
}
