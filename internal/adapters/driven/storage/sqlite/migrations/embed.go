// Package migrations carries the schema migration scripts applied by
// the SQLite store on startup.
package migrations

import "embed"

// FS holds the numbered .sql scripts baked into the binary.
//
//go:embed *.sql
var FS embed.FS
