package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docprep/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for docprep resources.
	uriScheme = "docprep://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "settings",
		Name:        "settings",
		Description: "Filter window and pipeline settings in effect",
		MIMEType:    "application/json",
	}, s.handleSettingsResource)
}

// settingsInfo is the JSON shape of the settings resource.
type settingsInfo struct {
	Filter   domain.FilterOptions `json:"filter"`
	Workers  int                  `json:"workers"`
	Enhanced bool                 `json:"enhanced"`
	Sources  []string             `json:"sources"`
}

// handleSettingsResource returns the resolved settings without source options,
// which may hold credentials.
func (s *Server) handleSettingsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	settings := domain.DefaultSettings()
	if s.ports.Settings != nil {
		current, err := s.ports.Settings.Get()
		if err != nil {
			return nil, fmt.Errorf("loading settings: %w", err)
		}
		settings = *current
	}

	info := settingsInfo{
		Filter:   settings.Filter,
		Workers:  settings.Pipeline.Workers,
		Enhanced: settings.Pipeline.Enhanced,
		Sources:  make([]string, len(settings.Sources)),
	}
	for i, src := range settings.Sources {
		info.Sources[i] = string(src.Type)
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling settings: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
