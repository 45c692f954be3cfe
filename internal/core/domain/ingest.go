package domain

import "time"

// IngestRun summarises one batch ingestion over the agency catalog.
type IngestRun struct {
	// ID identifies the run in logs.
	ID string

	// SnapshotDate is the date snapshots were written for.
	SnapshotDate time.Time

	// StartedAt is when the run began.
	StartedAt time.Time

	// EndedAt is when the run finished.
	EndedAt time.Time

	// Total is the number of agencies in the catalog.
	Total int

	// Processed is the number of agencies whose snapshot was written.
	Processed int

	// Failures holds one entry per agency that could not be ingested.
	Failures []*IngestError
}

// Failed returns the number of failed agencies.
func (r *IngestRun) Failed() int {
	return len(r.Failures)
}
