// Package enrichers provides metadata enrichment stages that run after preprocessing.
package enrichers

import (
	"context"
	"fmt"

	"github.com/custodia-labs/docprep/internal/core/domain"
	"github.com/custodia-labs/docprep/internal/core/ports/driven"
)

// Ensure Pipeline implements the interface.
var _ driven.EnricherPipeline = (*Pipeline)(nil)

// Pipeline chains multiple Enrichers and runs them in order.
// It implements the EnricherPipeline interface.
type Pipeline struct {
	enrichers []driven.Enricher
}

// NewPipeline creates a new enrichment pipeline with the given enrichers.
// Enrichers are executed in the order provided.
func NewPipeline(enrichers ...driven.Enricher) *Pipeline {
	return &Pipeline{
		enrichers: enrichers,
	}
}

// Enrich runs the document through all enrichers in order.
// Each enricher receives the previous enricher's output.
func (p *Pipeline) Enrich(ctx context.Context, doc domain.Document) (domain.Document, error) {
	out := doc.Clone()

	for _, enricher := range p.enrichers {
		var err error
		out, err = enricher.Enrich(ctx, out)
		if err != nil {
			return domain.Document{}, fmt.Errorf("enricher %s: %w", enricher.Name(), err)
		}
	}

	return out, nil
}

// Add appends an enricher to the pipeline.
func (p *Pipeline) Add(enricher driven.Enricher) {
	p.enrichers = append(p.enrichers, enricher)
}

// Len returns the number of enrichers in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.enrichers)
}

// Names returns the enricher names in execution order.
func (p *Pipeline) Names() []string {
	names := make([]string, 0, len(p.enrichers))
	for _, e := range p.enrichers {
		names = append(names, e.Name())
	}
	return names
}
