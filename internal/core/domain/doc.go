// Package domain holds regtrack's entities and the rules that involve no I/O.
//
// An Agency owns CodeReferences into the eCFR. Each ingest walks the referenced
// chapters (StructureNode trees) and records one Snapshot per agency and date,
// carrying word and section counts, a checksum and IndustryScores computed
// against the fixed Taxonomy. IngestSchedule and ScheduledRun describe
// periodic ingestion; AppSettings is the user-facing configuration.
//
// domain imports only the standard library. Every other internal package may
// import it.
package domain
