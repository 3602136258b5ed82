// Package metadata adds derived statistics and processing provenance to documents.
package metadata

import (
	"context"
	"time"

	"github.com/custodia-labs/docprep/internal/core/domain"
	"github.com/custodia-labs/docprep/internal/core/ports/driven"
	"github.com/custodia-labs/docprep/internal/enrichers/keyterms"
	"github.com/custodia-labs/docprep/internal/textstats"
)

// Name identifies the metadata enricher.
const Name = "metadata"

// DefaultLanguage is the language code assigned to every document.
const DefaultLanguage = "en"

// Ensure Enricher implements the interface.
var _ driven.Enricher = (*Enricher)(nil)

// Option configures an Enricher.
type Option func(*Enricher)

// WithClock overrides the time source used for processing_timestamp.
func WithClock(now func() time.Time) Option {
	return func(e *Enricher) {
		e.now = now
	}
}

// Enricher attaches key terms, language, timestamp and word/sentence counts.
type Enricher struct {
	extractor *keyterms.Extractor
	now       func() time.Time
}

// New creates a metadata enricher.
func New(opts ...Option) *Enricher {
	e := &Enricher{
		extractor: keyterms.New(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name returns the enricher name.
func (e *Enricher) Name() string {
	return Name
}

// Enrich returns a copy of doc with the enrichment keys set.
func (e *Enricher) Enrich(ctx context.Context, doc domain.Document) (domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return domain.Document{}, err
	}

	out := doc.Clone()
	out.Metadata[domain.KeyKeyTerms] = e.extractor.Extract(doc.Text)
	out.Metadata[domain.KeyLanguage] = DetectLanguage(doc.Text)
	out.Metadata[domain.KeyProcessingTimestamp] = e.now().UTC().Format(time.RFC3339)
	out.Metadata[domain.KeyWordCount] = textstats.WordCount(doc.Text)
	out.Metadata[domain.KeySentenceCount] = textstats.SentenceCount(doc.Text)
	return out, nil
}

// DetectLanguage returns DefaultLanguage for any input.
func DetectLanguage(_ string) string {
	return DefaultLanguage
}
