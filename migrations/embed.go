// Package migrations embeds the SQL migration files for the Postgres-backed
// blob store, so the goose programmatic API can run them in tests and at
// server bootstrap without depending on a filesystem path.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time.
//
//go:embed *.sql
var FS embed.FS
