package driving

import "github.com/custodia-labs/docprep/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current settings, falling back to defaults for unset keys.
	Get() (*domain.Settings, error)

	// Save persists filter, pipeline and log settings. Sources are left untouched.
	Save(settings *domain.Settings) error

	// GetDefaults returns default settings.
	GetDefaults() domain.Settings
}
