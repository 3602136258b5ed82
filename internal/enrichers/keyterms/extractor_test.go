package keyterms

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract_Scenario(t *testing.T) {
	terms := New().Extract("The quick brown fox jumps over the lazy dog")

	assert.ElementsMatch(t, []string{"quick", "brown", "jumps", "over", "lazy"}, terms)
	assert.NotContains(t, terms, "the")
	assert.NotContains(t, terms, "fox")
}

func TestExtract_Empty(t *testing.T) {
	assert.Empty(t, New().Extract(""))
	assert.Empty(t, New().Extract("a an the of"))
}

func TestExtract_LowerCasesAndDeduplicates(t *testing.T) {
	terms := New().Extract("Python python PYTHON golang")

	assert.ElementsMatch(t, []string{"python", "golang"}, terms)
}

func TestExtract_AtMostTen(t *testing.T) {
	words := make([]string, 0, 30)
	for i := 0; i < 30; i++ {
		words = append(words, "term"+strings.Repeat("x", i))
	}

	terms := New().Extract(strings.Join(words, " "))

	assert.Len(t, terms, MaxTerms)
	unique := make(map[string]bool)
	for _, term := range terms {
		unique[term] = true
	}
	assert.Len(t, unique, MaxTerms)
}

func TestExtract_LengthIsCharacters(t *testing.T) {
	// "café" is four characters but five bytes.
	assert.ElementsMatch(t, []string{"café"}, New().Extract("café abc"))
	// "éé" is two characters, four bytes.
	assert.Empty(t, New().Extract("éé"))
}

func TestExtract_KeepsPunctuation(t *testing.T) {
	assert.ElementsMatch(t, []string{"world.", "hello,"}, New().Extract("hello, world."))
}

func TestIsStopWord(t *testing.T) {
	for _, w := range []string{"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for", "of", "with", "by"} {
		assert.True(t, IsStopWord(w), w)
	}
	assert.False(t, IsStopWord("with2"))
	assert.False(t, IsStopWord("The"))
}
