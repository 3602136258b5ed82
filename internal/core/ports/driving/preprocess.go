package driving

import "github.com/custodia-labs/docprep/internal/core/domain"

// PreprocessService turns loaded documents into cleaned, scored, filtered documents.
type PreprocessService interface {
	// Preprocess cleans, denoises and normalises every document and records
	// original_length and processed_length. Output order matches input order.
	Preprocess(docs []domain.Document) []domain.Document

	// Filter keeps documents whose text length is inside opts (inclusive)
	// and attaches quality_score to each kept document.
	// Returns domain.ErrInvalidRange if opts is inverted or negative.
	Filter(docs []domain.Document, opts domain.FilterOptions) ([]domain.Document, error)
}

// InspectService reports on a single piece of text.
type InspectService interface {
	// Inspect runs the text stages and scoring on text without loading anything.
	Inspect(text string, opts domain.FilterOptions) (*domain.TextReport, error)

	// Score returns the quality score of text as-is.
	Score(text string) float64

	// KeyTerms returns the key terms of text as-is.
	KeyTerms(text string) []string
}
