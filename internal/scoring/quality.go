// Package scoring rates document text with a crude length and sentence-coherence heuristic.
package scoring

import (
	"github.com/custodia-labs/docprep/internal/core/domain"
	"github.com/custodia-labs/docprep/internal/core/ports/driven"
	"github.com/custodia-labs/docprep/internal/textstats"
)

// Ensure Scorer implements the interface.
var _ driven.Scorer = (*Scorer)(nil)

// Heuristic weights and thresholds. Changing any of them changes every score.
const (
	LengthWeight    = 0.7
	CoherenceWeight = 0.3

	// TargetLength is the character count at which the length score saturates.
	TargetLength = 1000.0

	// MinWordsPerSentence and MaxWordsPerSentence bound the coherent range, inclusive.
	MinWordsPerSentence = 5.0
	MaxWordsPerSentence = 25.0

	CoherentScore   = 1.0
	IncoherentScore = 0.5
)

// Scorer computes quality scores.
type Scorer struct{}

// New creates a new scorer.
func New() *Scorer {
	return &Scorer{}
}

// Score returns 0.7*lengthScore + 0.3*coherenceScore, in [0, 1].
//
// Sentences are counted by splitting on runs of terminal punctuation, so text
// ending in '.' has an empty trailing segment that still counts.
func (s *Scorer) Score(text string) float64 {
	if text == "" {
		return 0.0
	}

	wordCount := textstats.WordCount(text)
	sentenceCount := textstats.SentenceCount(text)
	if sentenceCount == 0 {
		return 0.0
	}

	avgWordsPerSentence := float64(wordCount) / float64(sentenceCount)

	lengthScore := min(float64(domain.CharCount(text))/TargetLength, 1.0)

	coherenceScore := IncoherentScore
	if avgWordsPerSentence >= MinWordsPerSentence && avgWordsPerSentence <= MaxWordsPerSentence {
		coherenceScore = CoherentScore
	}

	return lengthScore*LengthWeight + coherenceScore*CoherenceWeight
}
