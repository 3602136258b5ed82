package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docprep/internal/core/domain"
)

func intPtr(v int) *int { return &v }

func TestServer_handlePreprocess(t *testing.T) {
	ctx := context.Background()

	t.Run("cleans and reports text", func(t *testing.T) {
		server, err := NewServer(&Ports{Inspect: newInspectService()})
		require.NoError(t, err)

		input := PreprocessInput{Text: "Hello!!!! Visit http://x.com or email a@b.com. Multiple   spaces."}
		_, output, err := server.handlePreprocess(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "hello! visit  or email  multiple spaces.", output.Text)
		assert.Equal(t, 65, output.OriginalLength)
		assert.Equal(t, 40, output.ProcessedLength)
		assert.False(t, output.Kept, "40 characters is below the default minimum")
		assert.NotNil(t, output.KeyTerms)
	})

	t.Run("explicit window overrides defaults", func(t *testing.T) {
		server, err := NewServer(&Ports{Inspect: newInspectService()})
		require.NoError(t, err)

		input := PreprocessInput{
			Text:      "Hello!!!! Visit http://x.com or email a@b.com. Multiple   spaces.",
			MinLength: intPtr(10),
			MaxLength: intPtr(100),
		}
		_, output, err := server.handlePreprocess(ctx, nil, input)

		require.NoError(t, err)
		assert.True(t, output.Kept)
	})

	t.Run("settings supply the window", func(t *testing.T) {
		inspect := &mockInspectService{report: &domain.TextReport{}}
		settings := domain.DefaultSettings()
		settings.Filter = domain.FilterOptions{MinLength: 5, MaxLength: 500}

		server, err := NewServer(&Ports{
			Inspect:  inspect,
			Settings: &mockSettingsService{settings: &settings},
		})
		require.NoError(t, err)

		_, _, err = server.handlePreprocess(ctx, nil, PreprocessInput{Text: "x", MaxLength: intPtr(50)})
		require.NoError(t, err)
		assert.Equal(t, domain.FilterOptions{MinLength: 5, MaxLength: 50}, inspect.lastOpts)
	})

	t.Run("settings error falls back to defaults", func(t *testing.T) {
		inspect := &mockInspectService{report: &domain.TextReport{}}
		server, err := NewServer(&Ports{
			Inspect:  inspect,
			Settings: &mockSettingsService{err: errors.New("broken config")},
		})
		require.NoError(t, err)

		_, _, err = server.handlePreprocess(ctx, nil, PreprocessInput{Text: "x"})
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultFilterOptions(), inspect.lastOpts)
	})

	t.Run("inverted window returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{Inspect: newInspectService()})
		require.NoError(t, err)

		input := PreprocessInput{Text: "text", MinLength: intPtr(100), MaxLength: intPtr(10)}
		_, _, err = server.handlePreprocess(ctx, nil, input)

		assert.ErrorIs(t, err, domain.ErrInvalidRange)
	})
}

func TestServer_handleScore(t *testing.T) {
	server, err := NewServer(&Ports{Inspect: newInspectService()})
	require.NoError(t, err)

	_, output, err := server.handleScore(context.Background(), nil, TextInput{Text: "word word word word word."})
	require.NoError(t, err)
	assert.InDelta(t, 0.1675, output.QualityScore, 1e-9)

	_, output, err = server.handleScore(context.Background(), nil, TextInput{Text: ""})
	require.NoError(t, err)
	assert.Equal(t, 0.0, output.QualityScore)
}

func TestServer_handleKeyTerms(t *testing.T) {
	ctx := context.Background()

	t.Run("returns terms in first occurrence order", func(t *testing.T) {
		server, err := NewServer(&Ports{Inspect: newInspectService()})
		require.NoError(t, err)

		_, output, err := server.handleKeyTerms(ctx, nil, TextInput{Text: "Pipeline stages clean pipeline text"})
		require.NoError(t, err)
		assert.Equal(t, []string{"pipeline", "stages", "clean", "text"}, output.KeyTerms)
		assert.Equal(t, 4, output.Count)
	})

	t.Run("no terms encodes as empty list", func(t *testing.T) {
		server, err := NewServer(&Ports{Inspect: &mockInspectService{}})
		require.NoError(t, err)

		_, output, err := server.handleKeyTerms(ctx, nil, TextInput{Text: "a an the"})
		require.NoError(t, err)
		assert.Equal(t, []string{}, output.KeyTerms)
		assert.Equal(t, 0, output.Count)
	})
}
