package driven

// KeyTermExtractor picks keyword candidates from text.
type KeyTermExtractor interface {
	// Extract returns unique terms. Callers must not rely on their order.
	Extract(text string) []string
}
