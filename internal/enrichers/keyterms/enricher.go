package keyterms

import (
	"context"

	"github.com/custodia-labs/docprep/internal/core/domain"
	"github.com/custodia-labs/docprep/internal/core/ports/driven"
)

// Name identifies the key term enricher.
const Name = "key_terms"

// Ensure Enricher implements the interface.
var _ driven.Enricher = (*Enricher)(nil)

// Enricher attaches extracted key terms to a document.
type Enricher struct {
	extractor *Extractor
}

// NewEnricher creates a key term enricher.
func NewEnricher() *Enricher {
	return &Enricher{extractor: New()}
}

// Name returns the enricher name.
func (e *Enricher) Name() string {
	return Name
}

// Enrich sets the key_terms metadata key.
func (e *Enricher) Enrich(_ context.Context, doc domain.Document) (domain.Document, error) {
	return doc.With(domain.KeyKeyTerms, e.extractor.Extract(doc.Text)), nil
}
