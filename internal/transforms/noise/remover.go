// Package noise removes repeated punctuation, URLs and email addresses from text.
package noise

import (
	"regexp"

	"github.com/custodia-labs/docprep/internal/core/ports/driven"
	"github.com/custodia-labs/docprep/internal/textstats"
)

// Ensure Remover implements the interface.
var _ driven.TextTransformer = (*Remover)(nil)

// Name is the stage name.
const Name = "noise"

type pattern struct {
	re          *regexp.Regexp
	replacement string
}

const nonSpace = `[^` + textstats.SpaceClass + `]+`

// Order matters: punctuation first, then URLs, then emails.
var noisePatterns = []pattern{
	{regexp.MustCompile(`!{3,}`), "!"},
	{regexp.MustCompile(`\?{3,}`), "?"},
	{regexp.MustCompile(`,{2,}`), ","},
	{regexp.MustCompile(`https?://(?:[a-zA-Z]|[0-9]|[$-_@.&+]|[!*\\(\\),]|(?:%[0-9a-fA-F][0-9a-fA-F]))+`), ""},
	{regexp.MustCompile(nonSpace + `@` + nonSpace), ""},
}

// Remover strips common noise patterns.
type Remover struct{}

// New creates a new noise remover.
func New() *Remover {
	return &Remover{}
}

// Name returns the stage name.
func (r *Remover) Name() string {
	return Name
}

// Transform implements driven.TextTransformer.
func (r *Remover) Transform(text string) string {
	return r.RemoveNoise(text)
}

// RemoveNoise collapses !!!, ??? and ,, runs and deletes URL- and email-shaped tokens.
// Surrounding whitespace is left untouched.
func (r *Remover) RemoveNoise(text string) string {
	for _, p := range noisePatterns {
		text = p.re.ReplaceAllLiteralString(text, p.replacement)
	}
	return text
}
