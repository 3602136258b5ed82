package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docprep/internal/adapters/driven/config/memory"
	"github.com/custodia-labs/docprep/internal/core/domain"
)

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), *settings)
	assert.Equal(t, service.GetDefaults(), *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStoreWith(map[string]any{
		"filter.min_length": int64(0),
		"filter.max_length": int64(500),
		"pipeline.workers":  int64(8),
		"pipeline.enhanced": true,
		"log.verbose":       true,
	})

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	assert.Equal(t, domain.FilterOptions{MinLength: 0, MaxLength: 500}, settings.Filter)
	assert.Equal(t, 8, settings.Pipeline.Workers)
	assert.True(t, settings.Pipeline.Enhanced)
	assert.True(t, settings.Verbose)
}

func TestSettingsService_Get_Sources(t *testing.T) {
	store := memory.NewConfigStoreWith(map[string]any{
		"sources": []any{
			map[string]any{"type": "api", "urls": []any{"https://a"}, "json_path": "data"},
			map[string]any{"type": "gcs", "bucket": "b"},
		},
	})

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	require.Len(t, settings.Sources, 2)
	assert.Equal(t, domain.SourceAPI, settings.Sources[0].Type)
	assert.Equal(t, map[string]any{"urls": []any{"https://a"}, "json_path": "data"}, settings.Sources[0].Options)
	assert.Equal(t, domain.SourceGCS, settings.Sources[1].Type)
	assert.NotContains(t, settings.Sources[1].Options, "type")
}

func TestSettingsService_Get_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]any
		target error
	}{
		{"inverted range", map[string]any{"filter.min_length": 100, "filter.max_length": 10}, domain.ErrInvalidRange},
		{"negative workers", map[string]any{"pipeline.workers": -1}, domain.ErrInvalidInput},
		{"unknown source", map[string]any{"sources": []any{map[string]any{"type": "ftp"}}}, domain.ErrUnsupportedType},
		{"missing source type", map[string]any{"sources": []any{map[string]any{"bucket": "b"}}}, domain.ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSettingsService(memory.NewConfigStoreWith(tt.values)).Get()
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestSettingsService_Save(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	err := service.Save(&domain.Settings{
		Filter:   domain.FilterOptions{MinLength: 10, MaxLength: 20},
		Pipeline: domain.PipelineSettings{Workers: 2, Enhanced: true},
		Verbose:  true,
	})
	require.NoError(t, err)

	retrieved, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.FilterOptions{MinLength: 10, MaxLength: 20}, retrieved.Filter)
	assert.Equal(t, domain.PipelineSettings{Workers: 2, Enhanced: true}, retrieved.Pipeline)
	assert.True(t, retrieved.Verbose)
}

func TestSettingsService_Save_RejectsInvalid(t *testing.T) {
	store := memory.NewConfigStore()

	err := NewSettingsService(store).Save(&domain.Settings{
		Filter: domain.FilterOptions{MinLength: 5, MaxLength: 1},
	})

	assert.ErrorIs(t, err, domain.ErrInvalidRange)
	_, written := store.Get("filter.min_length")
	assert.False(t, written)
}
