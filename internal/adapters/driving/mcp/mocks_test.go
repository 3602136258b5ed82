package mcp

import (
	"github.com/custodia-labs/docprep/internal/core/domain"
	"github.com/custodia-labs/docprep/internal/core/services"
	"github.com/custodia-labs/docprep/internal/enrichers/keyterms"
	"github.com/custodia-labs/docprep/internal/scoring"
	"github.com/custodia-labs/docprep/internal/transforms"
)

// newInspectService returns the real inspect service wired with the default stages.
func newInspectService() *services.InspectService {
	pipeline := services.NewDocumentPipeline(transforms.Default(), scoring.New())
	return services.NewInspectService(pipeline, keyterms.New())
}

// mockInspectService is a mock implementation of driving.InspectService.
type mockInspectService struct {
	report   *domain.TextReport
	score    float64
	terms    []string
	err      error
	lastOpts domain.FilterOptions
}

func (m *mockInspectService) Inspect(_ string, opts domain.FilterOptions) (*domain.TextReport, error) {
	m.lastOpts = opts
	return m.report, m.err
}

func (m *mockInspectService) Score(_ string) float64 {
	return m.score
}

func (m *mockInspectService) KeyTerms(_ string) []string {
	return m.terms
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings *domain.Settings
	err      error
}

func (m *mockSettingsService) Get() (*domain.Settings, error) {
	return m.settings, m.err
}

func (m *mockSettingsService) Save(_ *domain.Settings) error {
	return m.err
}

func (m *mockSettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}
