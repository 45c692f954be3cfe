package mcp

import (
	"github.com/custodia-labs/regtrack/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP server.
type Ports struct {
	// Report reads agency summaries and histories.
	Report driving.ReportService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Report == nil {
		return ErrMissingReportService
	}
	return nil
}
