package mcp

import (
	"github.com/custodia-labs/docprep/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
type Ports struct {
	// Inspect runs the text stages on a single input.
	Inspect driving.InspectService

	// Settings supplies the default filter window. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Inspect == nil {
		return ErrMissingInspectService
	}
	return nil
}
