package domain

// Metadata keys written by the pipeline.
const (
	// KeyOriginalLength is the character count of the text a loader produced.
	KeyOriginalLength = "original_length"

	// KeyProcessedLength is the character count after cleaning and normalisation.
	KeyProcessedLength = "processed_length"

	// KeyQualityScore is the heuristic quality in [0, 1], set on filter survivors.
	KeyQualityScore = "quality_score"

	// KeyKeyTerms lists up to ten extracted key terms.
	KeyKeyTerms = "key_terms"

	// KeyLanguage is the detected language code.
	KeyLanguage = "language"

	// KeyProcessingTimestamp is when enrichment ran, in RFC 3339.
	KeyProcessingTimestamp = "processing_timestamp"

	// KeyWordCount is the number of whitespace-delimited tokens.
	KeyWordCount = "word_count"

	// KeySentenceCount is the number of sentence segments.
	KeySentenceCount = "sentence_count"
)

// Provenance keys written by loaders. The pipeline never overwrites them.
const (
	KeySourceType = "source_type"
	KeyURL        = "url"
	KeyBucket     = "bucket"
	KeySourcePath = "source_path"
	KeyStatusCode = "status_code"
	KeyObjectKey  = "object_key"
	KeyPage       = "page"
	KeyTitle      = "title"
)

// SourceType identifies the kind of loader that produced a document.
type SourceType string

// Known source types.
const (
	SourceAPI  SourceType = "api"
	SourceS3   SourceType = "s3"
	SourceGCS  SourceType = "gcs"
	SourceHTML SourceType = "html"
	SourcePDF  SourceType = "pdf"
	SourceFile SourceType = "file"
)

// IsValid returns true if the source type is recognised.
func (s SourceType) IsValid() bool {
	switch s {
	case SourceAPI, SourceS3, SourceGCS, SourceHTML, SourcePDF, SourceFile:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s SourceType) String() string {
	return string(s)
}

// IsPipelineKey returns true if key is written by the pipeline rather than a loader.
func IsPipelineKey(key string) bool {
	switch key {
	case KeyOriginalLength, KeyProcessedLength, KeyQualityScore, KeyKeyTerms,
		KeyLanguage, KeyProcessingTimestamp, KeyWordCount, KeySentenceCount:
		return true
	default:
		return false
	}
}
