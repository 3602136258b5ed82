package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docprep/internal/core/domain"
	"github.com/custodia-labs/docprep/internal/enrichers"
	"github.com/custodia-labs/docprep/internal/enrichers/metadata"
)

// failingEnricher fails on documents whose text contains a trigger.
type failingEnricher struct {
	trigger string
}

func (f *failingEnricher) Name() string { return "failing" }

func (f *failingEnricher) Enrich(_ context.Context, doc domain.Document) (domain.Document, error) {
	if doc.Text == f.trigger {
		return domain.Document{}, errors.New("enrichment failed")
	}
	return doc, nil
}

func fixedNow() time.Time {
	return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
}

func newTestEnhanced(extra ...*failingEnricher) *EnhancedPipeline {
	chain := enrichers.NewPipeline(metadata.New(metadata.WithClock(fixedNow)))
	for _, e := range extra {
		chain.Add(e)
	}
	return NewEnhancedPipeline(newTestPipeline(WithWorkers(2)), chain)
}

func TestEnhancedPipeline_Preprocess(t *testing.T) {
	p := newTestEnhanced()

	out := p.Preprocess([]domain.Document{
		domain.NewDocument("The QUICK brown fox jumps over the lazy dog", map[string]any{domain.KeyURL: "u"}),
	})

	require.Len(t, out, 1)
	doc := out[0]
	assert.Equal(t, "the quick brown fox jumps over the lazy dog", doc.Text)
	assert.Equal(t, "u", doc.GetString(domain.KeyURL))
	assert.Equal(t, 43, doc.GetInt(domain.KeyProcessedLength))
	assert.Equal(t, "en", doc.GetString(domain.KeyLanguage))
	assert.Equal(t, "2025-01-02T03:04:05Z", doc.GetString(domain.KeyProcessingTimestamp))
	assert.Equal(t, 9, doc.GetInt(domain.KeyWordCount))
	assert.Equal(t, 1, doc.GetInt(domain.KeySentenceCount))
	assert.ElementsMatch(t, []string{"quick", "brown", "jumps", "over", "lazy"}, doc.Metadata[domain.KeyKeyTerms])
}

func TestEnhancedPipeline_Preprocess_SkipsEnricherFailures(t *testing.T) {
	p := newTestEnhanced(&failingEnricher{trigger: "bad"})

	out, failures, err := p.PreprocessContext(context.Background(), []domain.Document{
		domain.NewDocument("Good", nil),
		domain.NewDocument("BAD", nil),
		domain.NewDocument("Fine", nil),
	})

	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "good", out[0].Text)
	assert.Equal(t, "fine", out[1].Text)
	require.Len(t, failures, 1)
	assert.Equal(t, 1, failures[0].Index)
	assert.Equal(t, "enrich", failures[0].Stage)
}

func TestEnhancedPipeline_Filter_Delegates(t *testing.T) {
	p := newTestEnhanced()

	out, err := p.Filter(docsOfLength(49, 50), domain.DefaultFilterOptions())
	require.NoError(t, err)
	assert.Len(t, out, 1)

	_, err = p.Filter(nil, domain.FilterOptions{MinLength: 2, MaxLength: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}

func TestEnhancedPipeline_NoEnrichers(t *testing.T) {
	p := NewEnhancedPipeline(newTestPipeline(), nil)

	out := p.Preprocess([]domain.Document{domain.NewDocument("Text", nil)})

	require.Len(t, out, 1)
	assert.Equal(t, "text", out[0].Text)
	_, ok := out[0].Get(domain.KeyLanguage)
	assert.False(t, ok)
}
