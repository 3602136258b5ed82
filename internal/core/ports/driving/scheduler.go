package driving

import "context"

// Scheduler repeats ingest runs in the background.
type Scheduler interface {
	// Start begins running on schedule.
	// Blocks until Stop is called or the context is cancelled.
	Start(ctx context.Context) error

	// Stop ends the schedule after any run in progress.
	Stop() error
}
