// Package transforms assembles the standard text transform chain.
package transforms

import (
	"github.com/custodia-labs/docprep/internal/core/ports/driven"
	"github.com/custodia-labs/docprep/internal/transforms/cleaner"
	"github.com/custodia-labs/docprep/internal/transforms/noise"
	"github.com/custodia-labs/docprep/internal/transforms/normaliser"
)

// Default returns clean, denoise and normalise, in that order.
func Default() []driven.TextTransformer {
	return []driven.TextTransformer{
		cleaner.New(),
		noise.New(),
		normaliser.New(),
	}
}

// Apply runs text through each transformer in order.
func Apply(stages []driven.TextTransformer, text string) string {
	for _, s := range stages {
		text = s.Transform(text)
	}
	return text
}
