// Package normaliser folds case and canonicalises quotes, apostrophes and dashes.
package normaliser

import (
	"regexp"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/custodia-labs/docprep/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.TextTransformer = (*Normaliser)(nil)

// Name is the stage name.
const Name = "normaliser"

var (
	// Straight, curly, low-9 and reversed double quotes, double prime, grave and acute.
	quoteVariants = regexp.MustCompile("[\"“”„‟″`´]")

	// Apostrophe, curly single quotes, reversed single quote and prime.
	apostropheRuns = regexp.MustCompile("['‘’‛′]+")

	// Hyphen-minus, hyphen, non-breaking hyphen, figure dash, en dash, em dash, horizontal bar.
	dashVariants = regexp.MustCompile("[-‐‑‒–—―]")
)

// Normaliser lower-cases text and maps typographic punctuation to ASCII.
type Normaliser struct{}

// New creates a new normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Name returns the stage name.
func (n *Normaliser) Name() string {
	return Name
}

// Transform implements driven.TextTransformer.
func (n *Normaliser) Transform(text string) string {
	return n.Normalize(text)
}

// Normalize lower-cases text, then maps quote variants to '"', collapses
// apostrophe runs to a single '\'' and maps dash variants to '-'.
// Normalize is idempotent.
func (n *Normaliser) Normalize(text string) string {
	// cases.Caser keeps state between calls, so one is made per call.
	text = cases.Lower(language.Und).String(text)
	text = quoteVariants.ReplaceAllLiteralString(text, `"`)
	text = apostropheRuns.ReplaceAllLiteralString(text, "'")
	text = dashVariants.ReplaceAllLiteralString(text, "-")
	return text
}
