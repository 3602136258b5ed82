package domain

import "time"

// RunStats counts what happened to documents during one ingest run.
type RunStats struct {
	// Loaded is the number of documents returned by all loaders.
	Loaded int `json:"loaded"`

	// Kept is the number of documents that passed the length filter.
	Kept int `json:"kept"`

	// Dropped is the number of documents outside the length window.
	Dropped int `json:"dropped"`

	// Skipped is the number of documents isolated because a stage failed on them.
	Skipped int `json:"skipped"`

	// LoaderErrors is the number of loaders that failed.
	LoaderErrors int `json:"loader_errors"`
}

// RunResult is the output of one ingest run.
type RunResult struct {
	RunID     string        `json:"run_id"`
	Documents []Document    `json:"documents"`
	Stats     RunStats      `json:"stats"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

// RunOptions controls one ingest run.
type RunOptions struct {
	// Filter is the inclusive length window applied after preprocessing.
	Filter FilterOptions

	// Enhanced enables the enrichment stage on kept documents.
	Enhanced bool
}

// DefaultRunOptions returns the default filter window without enrichment.
func DefaultRunOptions() RunOptions {
	return RunOptions{Filter: DefaultFilterOptions()}
}
