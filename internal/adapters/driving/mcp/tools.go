package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docprep/internal/core/domain"
)

// PreprocessInput is the input schema for the preprocess_text tool.
type PreprocessInput struct {
	Text      string `json:"text" jsonschema:"the raw text to clean and normalise"`
	MinLength *int   `json:"min_length,omitempty" jsonschema:"minimum processed length to keep (default 50)"`
	MaxLength *int   `json:"max_length,omitempty" jsonschema:"maximum processed length to keep (default 10000)"`
}

// PreprocessOutput is the output schema for the preprocess_text tool.
type PreprocessOutput struct {
	Text            string   `json:"text"`
	OriginalLength  int      `json:"original_length"`
	ProcessedLength int      `json:"processed_length"`
	QualityScore    float64  `json:"quality_score"`
	WordCount       int      `json:"word_count"`
	SentenceCount   int      `json:"sentence_count"`
	KeyTerms        []string `json:"key_terms"`
	Kept            bool     `json:"kept"`
}

// TextInput is the input schema for tools that take text only.
type TextInput struct {
	Text string `json:"text" jsonschema:"the text to analyse"`
}

// ScoreOutput is the output schema for the score_text tool.
type ScoreOutput struct {
	QualityScore float64 `json:"quality_score"`
}

// KeyTermsOutput is the output schema for the extract_key_terms tool.
type KeyTermsOutput struct {
	KeyTerms []string `json:"key_terms"`
	Count    int      `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "preprocess_text",
		Description: "Clean, denoise and normalise text, then report its quality score and whether it passes the length filter",
	}, s.handlePreprocess)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "score_text",
		Description: "Score text quality between 0 and 1 from sentence length and size",
	}, s.handleScore)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "extract_key_terms",
		Description: "Extract up to 10 key terms from text, in order of first occurrence",
	}, s.handleKeyTerms)
}

// handlePreprocess handles the preprocess_text tool invocation.
func (s *Server) handlePreprocess(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input PreprocessInput,
) (*mcp.CallToolResult, PreprocessOutput, error) {
	opts := s.filterOptions()
	if input.MinLength != nil {
		opts.MinLength = *input.MinLength
	}
	if input.MaxLength != nil {
		opts.MaxLength = *input.MaxLength
	}

	report, err := s.ports.Inspect.Inspect(input.Text, opts)
	if err != nil {
		return nil, PreprocessOutput{}, err
	}

	return nil, PreprocessOutput{
		Text:            report.Processed,
		OriginalLength:  report.OriginalLength,
		ProcessedLength: report.ProcessedLength,
		QualityScore:    report.QualityScore,
		WordCount:       report.WordCount,
		SentenceCount:   report.SentenceCount,
		KeyTerms:        nonNil(report.KeyTerms),
		Kept:            report.Kept,
	}, nil
}

// handleScore handles the score_text tool invocation.
func (s *Server) handleScore(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input TextInput,
) (*mcp.CallToolResult, ScoreOutput, error) {
	return nil, ScoreOutput{QualityScore: s.ports.Inspect.Score(input.Text)}, nil
}

// handleKeyTerms handles the extract_key_terms tool invocation.
func (s *Server) handleKeyTerms(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input TextInput,
) (*mcp.CallToolResult, KeyTermsOutput, error) {
	terms := nonNil(s.ports.Inspect.KeyTerms(input.Text))
	return nil, KeyTermsOutput{KeyTerms: terms, Count: len(terms)}, nil
}

// filterOptions returns the configured window, or the defaults if settings
// are unavailable.
func (s *Server) filterOptions() domain.FilterOptions {
	if s.ports.Settings == nil {
		return domain.DefaultFilterOptions()
	}
	settings, err := s.ports.Settings.Get()
	if err != nil {
		return domain.DefaultFilterOptions()
	}
	return settings.Filter
}

// nonNil keeps JSON output as [] rather than null.
func nonNil(terms []string) []string {
	if terms == nil {
		return []string{}
	}
	return terms
}
