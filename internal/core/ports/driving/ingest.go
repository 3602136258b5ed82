package driving

import (
	"context"

	"github.com/custodia-labs/docprep/internal/core/domain"
	"github.com/custodia-labs/docprep/internal/core/ports/driven"
)

// IngestService runs loaders through the document pipeline.
type IngestService interface {
	// Run loads from every loader, then preprocesses, filters and optionally enriches.
	// A failing loader is counted and skipped; cancellation of ctx aborts the run.
	Run(ctx context.Context, loaders []driven.Loader, opts domain.RunOptions) (*domain.RunResult, error)
}
