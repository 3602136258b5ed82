package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/docprep/internal/core/domain"
	"github.com/custodia-labs/docprep/internal/core/ports/driven"
	"github.com/custodia-labs/docprep/internal/core/ports/driving"
	"github.com/custodia-labs/docprep/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService loads documents and runs them through the pipeline.
type IngestService struct {
	pipeline  *DocumentPipeline
	enrichers driven.EnricherPipeline
	now       func() time.Time
}

// NewIngestService creates a new ingest service.
// enrichers may be nil, in which case RunOptions.Enhanced has no effect.
func NewIngestService(pipeline *DocumentPipeline, enrichers driven.EnricherPipeline) *IngestService {
	return &IngestService{
		pipeline:  pipeline,
		enrichers: enrichers,
		now:       time.Now,
	}
}

// Run loads from each loader in turn, then preprocesses, filters and
// optionally enriches everything loaded. Enrichment runs after filtering so
// only kept documents pay for it.
func (s *IngestService) Run(ctx context.Context, loaders []driven.Loader, opts domain.RunOptions) (*domain.RunResult, error) {
	if err := opts.Filter.Validate(); err != nil {
		return nil, err
	}

	result := &domain.RunResult{
		RunID:     uuid.NewString(),
		StartedAt: s.now().UTC(),
	}

	logger.Section("Load")
	var loaded []domain.Document
	for _, l := range loaders {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run %s: %w", result.RunID, err)
		}

		docs, err := l.Load(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("run %s: %w", result.RunID, ctx.Err())
			}
			logger.Warn("Loader %s failed: %v", l.Name(), err)
			result.Stats.LoaderErrors++
			continue
		}
		logger.Info("Loader %s returned %d documents", l.Name(), len(docs))
		loaded = append(loaded, docs...)
	}
	result.Stats.Loaded = len(loaded)

	logger.Section("Preprocess")
	processed, failures, err := s.pipeline.PreprocessContext(ctx, loaded)
	if err != nil {
		return nil, fmt.Errorf("preprocess: %w", err)
	}
	result.Stats.Skipped += len(failures)

	logger.Section("Filter")
	kept, err := s.pipeline.Filter(processed, opts.Filter)
	if err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}
	result.Stats.Dropped = len(processed) - len(kept)
	logger.Info("Kept %d of %d documents", len(kept), len(processed))

	if opts.Enhanced {
		logger.Section("Enrich")
		var enrichFailures []*domain.DocumentError
		kept, enrichFailures, err = enrichDocuments(ctx, kept, s.pipeline.workers, s.enrichers)
		if err != nil {
			return nil, fmt.Errorf("enrich: %w", err)
		}
		result.Stats.Skipped += len(enrichFailures)
	}

	result.Documents = kept
	result.Stats.Kept = len(kept)
	result.Duration = s.now().UTC().Sub(result.StartedAt)
	return result, nil
}
