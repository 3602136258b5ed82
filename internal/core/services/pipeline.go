package services

import (
	"context"

	"github.com/custodia-labs/docprep/internal/core/domain"
	"github.com/custodia-labs/docprep/internal/core/ports/driven"
	"github.com/custodia-labs/docprep/internal/core/ports/driving"
	"github.com/custodia-labs/docprep/internal/logger"
)

// Ensure DocumentPipeline implements the interface.
var _ driving.PreprocessService = (*DocumentPipeline)(nil)

// PipelineOption configures a DocumentPipeline.
type PipelineOption func(*DocumentPipeline)

// WithWorkers bounds per-document concurrency. Zero or negative means one
// worker per CPU.
func WithWorkers(n int) PipelineOption {
	return func(p *DocumentPipeline) {
		p.workers = n
	}
}

// DocumentPipeline runs the text stages over documents, then filters by length.
type DocumentPipeline struct {
	stages  []driven.TextTransformer
	scorer  driven.Scorer
	workers int
}

// NewDocumentPipeline creates a pipeline that applies stages in order and
// scores filter survivors with scorer.
func NewDocumentPipeline(stages []driven.TextTransformer, scorer driven.Scorer, opts ...PipelineOption) *DocumentPipeline {
	p := &DocumentPipeline{
		stages: stages,
		scorer: scorer,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Workers returns the effective worker count.
func (p *DocumentPipeline) Workers() int {
	if p.workers <= 0 {
		return defaultWorkers()
	}
	return p.workers
}

// Preprocess cleans, denoises and normalises each document.
// Documents whose processing panics are logged and left out.
func (p *DocumentPipeline) Preprocess(docs []domain.Document) []domain.Document {
	out, _, _ := p.PreprocessContext(context.Background(), docs)
	return out
}

// PreprocessContext is Preprocess with cancellation and per-document failure reporting.
func (p *DocumentPipeline) PreprocessContext(
	ctx context.Context,
	docs []domain.Document,
) ([]domain.Document, []*domain.DocumentError, error) {
	out, failures, err := forEachDocument(ctx, docs, p.workers, p.preprocessOne)
	if err != nil {
		return nil, nil, err
	}
	for _, f := range failures {
		logger.Warn("Skipping %v", f)
	}
	return out, failures, nil
}

func (p *DocumentPipeline) preprocessOne(
	_ context.Context,
	_ int,
	doc domain.Document,
	stage *string,
) (domain.Document, error) {
	text := doc.Text
	for _, t := range p.stages {
		*stage = t.Name()
		text = t.Transform(text)
	}

	out := doc.WithText(text)
	out.Metadata[domain.KeyOriginalLength] = doc.Len()
	out.Metadata[domain.KeyProcessedLength] = domain.CharCount(text)
	return out, nil
}

// Filter keeps documents with opts.MinLength <= length <= opts.MaxLength and
// attaches quality_score to each. Order is preserved; dropped documents are
// logged at debug level.
func (p *DocumentPipeline) Filter(docs []domain.Document, opts domain.FilterOptions) ([]domain.Document, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	kept := make([]domain.Document, 0, len(docs))
	for i, doc := range docs {
		n := doc.Len()
		if !opts.Accepts(n) {
			logger.Debug("Dropping document %d: %d characters outside [%d, %d]", i, n, opts.MinLength, opts.MaxLength)
			continue
		}
		kept = append(kept, doc.With(domain.KeyQualityScore, p.scorer.Score(doc.Text)))
	}
	return kept, nil
}
