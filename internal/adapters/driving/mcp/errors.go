// Package mcp provides an MCP (Model Context Protocol) server adapter for regtrack.
// It exposes the stored agency snapshots to AI assistants as read-only tools and resources.
package mcp

import "errors"

// ErrMissingReportService is returned when the report service is not provided.
var ErrMissingReportService = errors.New("mcp: report service is required")
