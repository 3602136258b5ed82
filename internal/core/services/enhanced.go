package services

import (
	"context"

	"github.com/custodia-labs/docprep/internal/core/domain"
	"github.com/custodia-labs/docprep/internal/core/ports/driven"
	"github.com/custodia-labs/docprep/internal/core/ports/driving"
	"github.com/custodia-labs/docprep/internal/logger"
)

// Ensure EnhancedPipeline implements the interface.
var _ driving.PreprocessService = (*EnhancedPipeline)(nil)

// EnhancedPipeline wraps a DocumentPipeline and enriches each preprocessed document.
type EnhancedPipeline struct {
	base      *DocumentPipeline
	enrichers driven.EnricherPipeline
}

// NewEnhancedPipeline creates an enhanced pipeline over base.
func NewEnhancedPipeline(base *DocumentPipeline, enrichers driven.EnricherPipeline) *EnhancedPipeline {
	return &EnhancedPipeline{
		base:      base,
		enrichers: enrichers,
	}
}

// Preprocess runs the base preprocessing and then the enrichers.
// Documents an enricher fails on are logged and left out.
func (p *EnhancedPipeline) Preprocess(docs []domain.Document) []domain.Document {
	out, _, _ := p.PreprocessContext(context.Background(), docs)
	return out
}

// PreprocessContext is Preprocess with cancellation and per-document failure reporting.
func (p *EnhancedPipeline) PreprocessContext(
	ctx context.Context,
	docs []domain.Document,
) ([]domain.Document, []*domain.DocumentError, error) {
	processed, failures, err := p.base.PreprocessContext(ctx, docs)
	if err != nil {
		return nil, nil, err
	}

	enriched, enrichFailures, err := enrichDocuments(ctx, processed, p.base.workers, p.enrichers)
	if err != nil {
		return nil, nil, err
	}
	return enriched, append(failures, enrichFailures...), nil
}

// Filter delegates to the base pipeline.
func (p *EnhancedPipeline) Filter(docs []domain.Document, opts domain.FilterOptions) ([]domain.Document, error) {
	return p.base.Filter(docs, opts)
}

// enrichDocuments runs enrichers over docs in parallel, preserving order.
// Failure indexes refer to positions in docs.
func enrichDocuments(
	ctx context.Context,
	docs []domain.Document,
	workers int,
	enrichers driven.EnricherPipeline,
) ([]domain.Document, []*domain.DocumentError, error) {
	if enrichers == nil || enrichers.Len() == 0 {
		return docs, nil, nil
	}

	out, failures, err := forEachDocument(ctx, docs, workers,
		func(ctx context.Context, _ int, doc domain.Document, stage *string) (domain.Document, error) {
			*stage = "enrich"
			return enrichers.Enrich(ctx, doc)
		})
	if err != nil {
		return nil, nil, err
	}
	for _, f := range failures {
		logger.Warn("Skipping %v", f)
	}
	return out, failures, nil
}
