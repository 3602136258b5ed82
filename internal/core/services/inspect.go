package services

import (
	"github.com/custodia-labs/docprep/internal/core/domain"
	"github.com/custodia-labs/docprep/internal/core/ports/driven"
	"github.com/custodia-labs/docprep/internal/core/ports/driving"
	"github.com/custodia-labs/docprep/internal/textstats"
)

// Ensure InspectService implements the interface.
var _ driving.InspectService = (*InspectService)(nil)

// InspectService reports what the pipeline would do to a piece of text.
type InspectService struct {
	pipeline  *DocumentPipeline
	extractor driven.KeyTermExtractor
}

// NewInspectService creates a new inspect service.
func NewInspectService(pipeline *DocumentPipeline, extractor driven.KeyTermExtractor) *InspectService {
	return &InspectService{
		pipeline:  pipeline,
		extractor: extractor,
	}
}

// Inspect preprocesses text and reports lengths, score, counts and key terms
// of the processed text. Kept reflects opts.
func (s *InspectService) Inspect(text string, opts domain.FilterOptions) (*domain.TextReport, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	processed := s.pipeline.Preprocess([]domain.Document{domain.NewDocument(text, nil)})
	if len(processed) == 0 {
		return nil, domain.ErrMalformedInput
	}
	out := processed[0]

	return &domain.TextReport{
		Original:        text,
		Processed:       out.Text,
		OriginalLength:  out.GetInt(domain.KeyOriginalLength),
		ProcessedLength: out.GetInt(domain.KeyProcessedLength),
		QualityScore:    s.pipeline.scorer.Score(out.Text),
		WordCount:       textstats.WordCount(out.Text),
		SentenceCount:   textstats.SentenceCount(out.Text),
		KeyTerms:        s.KeyTerms(out.Text),
		Kept:            opts.Accepts(out.Len()),
	}, nil
}

// Score returns the quality score of text without preprocessing it.
func (s *InspectService) Score(text string) float64 {
	return s.pipeline.scorer.Score(text)
}

// KeyTerms returns the key terms of text without preprocessing it.
func (s *InspectService) KeyTerms(text string) []string {
	if s.extractor == nil {
		return nil
	}
	return s.extractor.Extract(text)
}
