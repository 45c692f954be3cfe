// Package migrations holds the SQLite schema as numbered scripts
// (NNN_name.up.sql). Store.migrate applies the ones newer than the
// version recorded in schema_migrations.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
