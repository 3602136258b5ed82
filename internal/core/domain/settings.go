package domain

import "fmt"

// PipelineSettings controls how documents are processed.
type PipelineSettings struct {
	// Workers bounds per-document concurrency. Zero means one worker per CPU.
	Workers int

	// Enhanced enables the enrichment stage (key terms, counts, language, timestamp).
	Enhanced bool
}

// SourceConfig describes one configured loader.
type SourceConfig struct {
	// Type selects the loader implementation.
	Type SourceType

	// Options holds loader-specific settings as parsed from config.
	Options map[string]any
}

// Settings is the fully resolved application configuration.
type Settings struct {
	Filter   FilterOptions
	Pipeline PipelineSettings
	Sources  []SourceConfig
	Verbose  bool
}

// DefaultSettings returns settings with default values.
func DefaultSettings() Settings {
	return Settings{
		Filter: DefaultFilterOptions(),
	}
}

// Validate checks that settings are internally consistent.
func (s Settings) Validate() error {
	if err := s.Filter.Validate(); err != nil {
		return err
	}
	if s.Pipeline.Workers < 0 {
		return fmt.Errorf("%w: workers must be non-negative, got %d", ErrInvalidInput, s.Pipeline.Workers)
	}
	for i, src := range s.Sources {
		if !src.Type.IsValid() {
			return fmt.Errorf("%w: source %d has type %q", ErrUnsupportedType, i, src.Type)
		}
	}
	return nil
}
