// Package keyterms extracts simple keyword candidates from text.
package keyterms

import (
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/docprep/internal/textstats"
)

// MaxTerms is the maximum number of terms Extract returns.
const MaxTerms = 10

// MinTermLength is the exclusive lower bound on term length, in characters.
const MinTermLength = 3

var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {},
	"on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
}

// Extractor picks unique, non-stop-word tokens longer than MinTermLength.
type Extractor struct{}

// New creates a new extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract returns at most MaxTerms unique lower-cased tokens.
// Terms come back in first-occurrence order; callers should treat the result as a set.
func (e *Extractor) Extract(text string) []string {
	words := textstats.Fields(strings.ToLower(text))

	seen := make(map[string]struct{}, len(words))
	terms := make([]string, 0, MaxTerms)
	for _, w := range words {
		if len(terms) == MaxTerms {
			break
		}
		if utf8.RuneCountInString(w) <= MinTermLength {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		terms = append(terms, w)
	}
	return terms
}

// IsStopWord reports whether w is in the fixed stop-word set.
func IsStopWord(w string) bool {
	_, ok := stopWords[w]
	return ok
}
