package driven

import (
	"context"

	"github.com/custodia-labs/docprep/internal/core/domain"
)

// Enricher adds derived metadata to a processed document.
// Enrichers are chained in a pipeline (e.g., key terms, counts).
type Enricher interface {
	// Name returns the enricher name for logging and configuration.
	Name() string

	// Enrich returns a copy of doc with extra metadata. It must not change doc.Text.
	Enrich(ctx context.Context, doc domain.Document) (domain.Document, error)
}

// EnricherPipeline chains multiple Enrichers.
type EnricherPipeline interface {
	// Enrich runs the document through all enrichers in order.
	Enrich(ctx context.Context, doc domain.Document) (domain.Document, error)

	// Len returns the number of enrichers.
	Len() int
}
