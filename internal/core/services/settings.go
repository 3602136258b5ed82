package services

import (
	"fmt"

	"github.com/custodia-labs/docprep/internal/core/domain"
	"github.com/custodia-labs/docprep/internal/core/ports/driven"
	"github.com/custodia-labs/docprep/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyFilterMinLength  = "filter.min_length"
	keyFilterMaxLength  = "filter.max_length"
	keyPipelineWorkers  = "pipeline.workers"
	keyPipelineEnhanced = "pipeline.enhanced"
	keyLogVerbose       = "log.verbose"
	keySources          = "sources"
	keySourceType       = "type"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings.
// Unset keys take their defaults; the result is validated.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		Filter: domain.FilterOptions{
			MinLength: s.getInt(keyFilterMinLength, defaults.Filter.MinLength),
			MaxLength: s.getInt(keyFilterMaxLength, defaults.Filter.MaxLength),
		},
		Pipeline: domain.PipelineSettings{
			Workers:  s.getInt(keyPipelineWorkers, defaults.Pipeline.Workers),
			Enhanced: s.getBool(keyPipelineEnhanced, defaults.Pipeline.Enhanced),
		},
		Sources: s.getSources(),
		Verbose: s.getBool(keyLogVerbose, defaults.Verbose),
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", s.configStore.Path(), err)
	}
	return settings, nil
}

// Save persists filter, pipeline and log settings.
func (s *SettingsService) Save(settings *domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	if err := s.configStore.Set(keyFilterMinLength, settings.Filter.MinLength); err != nil {
		return fmt.Errorf("save filter min_length: %w", err)
	}
	if err := s.configStore.Set(keyFilterMaxLength, settings.Filter.MaxLength); err != nil {
		return fmt.Errorf("save filter max_length: %w", err)
	}
	if err := s.configStore.Set(keyPipelineWorkers, settings.Pipeline.Workers); err != nil {
		return fmt.Errorf("save pipeline workers: %w", err)
	}
	if err := s.configStore.Set(keyPipelineEnhanced, settings.Pipeline.Enhanced); err != nil {
		return fmt.Errorf("save pipeline enhanced: %w", err)
	}
	if err := s.configStore.Set(keyLogVerbose, settings.Verbose); err != nil {
		return fmt.Errorf("save log verbose: %w", err)
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

// Helper methods for reading config with defaults.
// Presence is checked explicitly because zero is a meaningful bound.

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

// getSources converts [[sources]] tables into SourceConfigs.
// Everything except "type" is passed through as loader options.
func (s *SettingsService) getSources() []domain.SourceConfig {
	tables := s.configStore.GetTables(keySources)
	if len(tables) == 0 {
		return nil
	}

	sources := make([]domain.SourceConfig, 0, len(tables))
	for _, table := range tables {
		typ, _ := table[keySourceType].(string)
		opts := make(map[string]any, len(table))
		for k, v := range table {
			if k == keySourceType {
				continue
			}
			opts[k] = v
		}
		sources = append(sources, domain.SourceConfig{
			Type:    domain.SourceType(typ),
			Options: opts,
		})
	}
	return sources
}
