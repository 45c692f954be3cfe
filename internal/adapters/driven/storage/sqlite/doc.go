// Package sqlite stores agencies, snapshots and scheduler state in a single
// SQLite database (<data_dir>/regtrack.db) using the pure-Go modernc driver.
//
// The schema is created by embedded migrations. Snapshot dates are stored as
// YYYY-MM-DD text and timestamps as RFC 3339 text in UTC.
package sqlite
