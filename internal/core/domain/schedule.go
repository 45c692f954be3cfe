package domain

import "time"

// IngestSchedule is the persisted state of periodic catalog ingestion.
// There is one schedule per database.
type IngestSchedule struct {
	// Interval is the time between the end of one run and the start of the next.
	Interval time.Duration

	// Enabled mirrors scheduler.enabled at the last start.
	Enabled bool

	// NextRun is when the next ingest is due. Zero means due now.
	NextRun time.Time

	// LastRun is when the most recent run started.
	LastRun time.Time

	// LastSuccess is when the most recent successful run ended.
	LastSuccess time.Time

	// LastError is the error of the most recent run, empty on success.
	LastError string
}

// NewIngestSchedule returns a schedule that is due at now.
func NewIngestSchedule(interval time.Duration, now time.Time) *IngestSchedule {
	return &IngestSchedule{
		Interval: interval,
		Enabled:  true,
		NextRun:  now,
	}
}

// Due reports whether an ingest should start at now.
func (s *IngestSchedule) Due(now time.Time) bool {
	return s.Enabled && !now.Before(s.NextRun)
}

// SetInterval changes the interval and moves NextRun relative to the last run.
// A schedule that has never run stays due.
func (s *IngestSchedule) SetInterval(interval time.Duration) {
	if s.Interval == interval {
		return
	}
	s.Interval = interval
	if !s.LastRun.IsZero() {
		s.NextRun = s.LastRun.Add(interval)
	}
}

// Complete folds a finished run into the schedule.
func (s *IngestSchedule) Complete(run ScheduledRun) {
	s.LastRun = run.StartedAt
	s.NextRun = run.EndedAt.Add(s.Interval)
	s.LastError = run.Error
	if run.Succeeded() {
		s.LastSuccess = run.EndedAt
	}
}

// ScheduledRun records one ingest started by the scheduler.
type ScheduledRun struct {
	// RunID is the IngestRun ID, empty when the run never started.
	RunID string

	// SnapshotDate is the date snapshots were written for.
	SnapshotDate time.Time

	StartedAt time.Time
	EndedAt   time.Time

	// Total, Processed and Failed are copied from the IngestRun.
	Total     int
	Processed int
	Failed    int

	// Error is set when IngestAll itself returned an error.
	Error string
}

// NewScheduledRun builds the record for an IngestAll call.
// Either run or err may be nil.
func NewScheduledRun(date, startedAt, endedAt time.Time, run *IngestRun, err error) ScheduledRun {
	r := ScheduledRun{
		SnapshotDate: date,
		StartedAt:    startedAt,
		EndedAt:      endedAt,
	}
	if run != nil {
		r.RunID = run.ID
		r.Total = run.Total
		r.Processed = run.Processed
		r.Failed = run.Failed()
	}
	if err != nil {
		r.Error = err.Error()
	}
	return r
}

// Succeeded reports whether IngestAll returned without error.
// Per-agency failures do not fail the run.
func (r ScheduledRun) Succeeded() bool {
	return r.Error == ""
}

// Duration returns how long the run took.
func (r ScheduledRun) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}

// SchedulerConfig holds scheduler configuration.
type SchedulerConfig struct {
	// Enabled is the master switch for the scheduler.
	Enabled bool

	// Interval is how often the catalog is ingested.
	Interval time.Duration
}

// SchedulerStatus is the persisted schedule plus recent runs, newest first.
type SchedulerStatus struct {
	// Schedule is nil when the scheduler has never started.
	Schedule *IngestSchedule
	Recent   []ScheduledRun
}
