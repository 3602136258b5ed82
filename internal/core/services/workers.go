package services

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/docprep/internal/core/domain"
)

// docFunc processes the document at index i. stage is set by the callee
// before each step so a panic can be attributed.
type docFunc func(ctx context.Context, i int, doc domain.Document, stage *string) (domain.Document, error)

// defaultWorkers returns the worker count used when none is configured.
func defaultWorkers() int {
	return runtime.GOMAXPROCS(0)
}

// forEachDocument runs fn over docs on at most workers goroutines.
// Results keep input order. Documents whose fn fails or panics are left out
// of the result and reported as *domain.DocumentError. The returned error is
// non-nil only when ctx is cancelled.
func forEachDocument(
	ctx context.Context,
	docs []domain.Document,
	workers int,
	fn docFunc,
) ([]domain.Document, []*domain.DocumentError, error) {
	if workers <= 0 {
		workers = defaultWorkers()
	}

	results := make([]domain.Document, len(docs))
	failures := make([]*domain.DocumentError, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range docs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i], failures[i] = runGuarded(gctx, i, docs[i], fn)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	out := make([]domain.Document, 0, len(docs))
	var errs []*domain.DocumentError
	for i := range docs {
		if failures[i] != nil {
			errs = append(errs, failures[i])
			continue
		}
		out = append(out, results[i])
	}
	return out, errs, nil
}

// runGuarded calls fn and converts a panic into a DocumentError.
func runGuarded(ctx context.Context, i int, doc domain.Document, fn docFunc) (out domain.Document, derr *domain.DocumentError) {
	stage := "start"
	defer func() {
		if r := recover(); r != nil {
			out = domain.Document{}
			derr = &domain.DocumentError{
				Index: i,
				Stage: stage,
				Err:   fmt.Errorf("%w: panic: %v", domain.ErrMalformedInput, r),
			}
		}
	}()

	res, err := fn(ctx, i, doc, &stage)
	if err != nil {
		return domain.Document{}, &domain.DocumentError{Index: i, Stage: stage, Err: err}
	}
	return res, nil
}
