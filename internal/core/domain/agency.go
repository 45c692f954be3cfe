package domain

import "time"

// DateLayout is the layout used for snapshot dates and as-of dates.
const DateLayout = "2006-01-02"

// Agency is a tracked government agency.
// Slug is the stable natural key; Name follows upstream changes.
type Agency struct {
	// ID is the store-assigned identifier.
	ID int64

	// Slug uniquely identifies the agency upstream.
	Slug string

	// Name is the display name.
	Name string

	// CreatedAt is when the agency was first seen.
	CreatedAt time.Time

	// UpdatedAt is when the agency was last modified.
	UpdatedAt time.Time
}

// Snapshot is a point-in-time measurement of one agency.
// At most one snapshot exists per (AgencyID, SnapshotDate).
type Snapshot struct {
	// ID is the store-assigned identifier.
	ID int64

	// AgencyID references the owning agency.
	AgencyID int64

	// SnapshotDate is the calendar date the snapshot describes.
	SnapshotDate time.Time

	// WordCount is derived from total byte size.
	WordCount int

	// SectionCount is the number of section and appendix nodes.
	SectionCount int

	// ChecksumSHA256 is the hex digest of the normalized content.
	ChecksumSHA256 string

	// Metrics holds the structured payload.
	Metrics Metrics

	// CreatedAt is when the snapshot row was first written.
	CreatedAt time.Time

	// UpdatedAt is when the snapshot row was last replaced.
	UpdatedAt time.Time
}

// Date returns the snapshot date formatted with DateLayout.
func (s *Snapshot) Date() string {
	return FormatDate(s.SnapshotDate)
}

// CodeReference points at the part of the regulatory corpus an agency owns.
// A zero Title means the reference carries no title and is skipped.
type CodeReference struct {
	Title   int
	Chapter string
}

// HasTitle reports whether the reference names a title.
func (r CodeReference) HasTitle() bool {
	return r.Title > 0
}

// AgencyRecord is an agency as listed by the catalog source.
type AgencyRecord struct {
	Slug           string
	Name           string
	ShortName      string
	CodeReferences []CodeReference
}

// FormatDate formats t as a calendar date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a calendar date in DateLayout, in UTC.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// TruncateDate drops the clock portion of t, keeping its calendar date in UTC.
func TruncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
