// Package driving declares what the CLI and the MCP server call into:
// IngestService, ReportService, SettingsService and Scheduler.
// internal/core/services implements all four.
package driving
