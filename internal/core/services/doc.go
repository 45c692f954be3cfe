// Package services implements the driving ports on top of the driven ones.
//
// IngestService turns the agency catalog into snapshots, ReportService reads
// them back with growth figures, SettingsService maps ConfigStore keys onto
// domain.AppSettings and Scheduler repeats IngestAll on an interval.
//
// Ingestion is sequential. Agencies run one at a time, and an agency's
// references run in catalog order, because the snapshot checksum depends on
// that order.
package services
