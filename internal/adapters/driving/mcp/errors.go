// Package mcp provides an MCP (Model Context Protocol) server adapter for docprep.
// It lets AI assistants clean, score and extract key terms from text.
package mcp

import "errors"

// ErrMissingInspectService is returned when the inspect service is not provided.
var ErrMissingInspectService = errors.New("mcp: inspect service is required")
