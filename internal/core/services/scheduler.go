package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/docprep/internal/core/domain"
	"github.com/custodia-labs/docprep/internal/core/ports/driven"
	"github.com/custodia-labs/docprep/internal/core/ports/driving"
	"github.com/custodia-labs/docprep/internal/logger"
)

// Ensure Scheduler implements the interface.
var _ driving.Scheduler = (*Scheduler)(nil)

// RunHandler receives the outcome of each scheduled run.
type RunHandler func(result *domain.RunResult, err error)

// Scheduler repeats an ingest run at a fixed interval.
// Runs never overlap: the next tick is taken only after a run returns.
type Scheduler struct {
	ingest   driving.IngestService
	interval time.Duration
	loaders  []driven.Loader
	opts     domain.RunOptions
	onRun    RunHandler

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	runs    int
}

// NewScheduler creates a scheduler that runs loaders through ingest every interval.
// onRun may be nil.
func NewScheduler(
	ingest driving.IngestService,
	interval time.Duration,
	loaders []driven.Loader,
	opts domain.RunOptions,
	onRun RunHandler,
) (*Scheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("%w: interval must be positive, got %s", domain.ErrInvalidInput, interval)
	}
	if onRun == nil {
		onRun = func(*domain.RunResult, error) {}
	}
	return &Scheduler{
		ingest:   ingest,
		interval: interval,
		loaders:  loaders,
		opts:     opts,
		onRun:    onRun,
	}, nil
}

// Start runs once immediately and then on every tick.
// It blocks until Stop is called (returning nil) or ctx is done (returning ctx.Err()).
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil // Already running
	}
	s.running = true
	s.stopCh = make(chan struct{})
	stopCh := s.stopCh
	s.mu.Unlock()

	s.runOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.markStopped()
			return ctx.Err()
		case <-stopCh:
			return nil
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

// Stop ends the loop after any run in progress.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return nil
	}
	s.running = false
	close(s.stopCh)
	return nil
}

// Runs returns how many runs have completed.
func (s *Scheduler) Runs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs
}

func (s *Scheduler) markStopped() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	result, err := s.ingest.Run(ctx, s.loaders, s.opts)
	if err != nil {
		logger.Warn("Scheduled run failed: %v", err)
	}

	s.mu.Lock()
	s.runs++
	s.mu.Unlock()

	s.onRun(result, err)
}
