package driven

// TextTransformer is one deterministic text stage.
// Stages are chained by the pipeline in a fixed order (clean, denoise, normalise).
type TextTransformer interface {
	// Name returns the stage name for logging.
	Name() string

	// Transform returns the transformed text. It must not fail and must not
	// depend on anything but its input.
	Transform(text string) string
}

// Scorer rates text quality.
type Scorer interface {
	// Score returns a value in [0, 1]. Empty text scores 0.
	Score(text string) float64
}
