package domain

// TextReport describes what the pipeline does to a single piece of text.
type TextReport struct {
	Original        string   `json:"original"`
	Processed       string   `json:"processed"`
	OriginalLength  int      `json:"original_length"`
	ProcessedLength int      `json:"processed_length"`
	QualityScore    float64  `json:"quality_score"`
	WordCount       int      `json:"word_count"`
	SentenceCount   int      `json:"sentence_count"`
	KeyTerms        []string `json:"key_terms"`

	// Kept reports whether ProcessedLength falls inside the filter window used.
	Kept bool `json:"kept"`
}
