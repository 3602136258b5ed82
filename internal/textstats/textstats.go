// Package textstats provides the token and sentence counting rules shared by
// scoring and enrichment.
package textstats

import (
	"regexp"
	"strings"
	"unicode"
)

// SpaceClass is a regexp character-class body matching the same whitespace as IsSpace.
// Go's \s is ASCII-only, so the Unicode separators and the information
// separators 0x1C-0x1F are listed explicitly.
const SpaceClass = `\s\v\x{1c}-\x{1f}\x{85}\p{Z}`

var sentenceTerminators = regexp.MustCompile(`[.!?]+`)

// IsSpace reports whether r is whitespace: Unicode White_Space plus the
// information separators 0x1C-0x1F.
func IsSpace(r rune) bool {
	if r >= 0x1c && r <= 0x1f {
		return true
	}
	return unicode.IsSpace(r)
}

// Fields splits s around runs of whitespace.
func Fields(s string) []string {
	return strings.FieldsFunc(s, IsSpace)
}

// WordCount returns the number of whitespace-delimited tokens in s.
func WordCount(s string) int {
	return len(Fields(s))
}

// SplitSentences splits s on runs of '.', '!' and '?'.
// Empty leading and trailing segments are kept: "a b." yields ["a b", ""].
func SplitSentences(s string) []string {
	return sentenceTerminators.Split(s, -1)
}

// SentenceCount returns len(SplitSentences(s)). The empty string counts as one segment.
func SentenceCount(s string) int {
	return len(SplitSentences(s))
}

// TrimSpace removes leading and trailing whitespace as defined by IsSpace.
func TrimSpace(s string) string {
	return strings.TrimFunc(s, IsSpace)
}
