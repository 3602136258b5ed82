package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docprep/internal/core/domain"
)

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleSettingsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil settings service returns defaults", func(t *testing.T) {
		server, err := NewServer(&Ports{Inspect: &mockInspectService{}})
		require.NoError(t, err)

		result, err := server.handleSettingsResource(ctx, makeReadResourceRequest("docprep://settings"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "docprep://settings", result.Contents[0].URI)
		assert.Contains(t, result.Contents[0].Text, `"min_length": 50`)
		assert.Contains(t, result.Contents[0].Text, `"max_length": 10000`)
	})

	t.Run("lists source types without options", func(t *testing.T) {
		settings := domain.DefaultSettings()
		settings.Pipeline.Enhanced = true
		settings.Sources = []domain.SourceConfig{
			{Type: domain.SourceAPI, Options: map[string]any{"token": "secret-token"}},
		}
		server, err := NewServer(&Ports{
			Inspect:  &mockInspectService{},
			Settings: &mockSettingsService{settings: &settings},
		})
		require.NoError(t, err)

		result, err := server.handleSettingsResource(ctx, makeReadResourceRequest("docprep://settings"))

		require.NoError(t, err)
		text := result.Contents[0].Text
		assert.Contains(t, text, `"api"`)
		assert.Contains(t, text, `"enhanced": true`)
		assert.NotContains(t, text, "secret-token")
	})

	t.Run("returns error on settings failure", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Inspect:  &mockInspectService{},
			Settings: &mockSettingsService{err: errors.New("bad config")},
		})
		require.NoError(t, err)

		_, err = server.handleSettingsResource(ctx, makeReadResourceRequest("docprep://settings"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad config")
	})
}
