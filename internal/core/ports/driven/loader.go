package driven

import (
	"context"

	"github.com/custodia-labs/docprep/internal/core/domain"
)

// Loader produces documents from a source.
// Each source type (api, s3, gcs, html, pdf) implements this interface.
// The core never depends on a loader's concrete type.
type Loader interface {
	// Name returns the loader name for logging.
	Name() string

	// Load fetches every document the loader is configured for.
	// Loaders set provenance metadata (source_type, url, bucket, source_path).
	Load(ctx context.Context) ([]domain.Document, error)
}

// Watcher is implemented by loaders that can push documents as their source changes.
type Watcher interface {
	// Watch emits a document each time a watched item is created or modified.
	// Both channels are closed when ctx is cancelled.
	Watch(ctx context.Context) (<-chan domain.Document, <-chan error, error)
}
