// Package migrations embeds the provenance schema migrations applied
// by the SQLite store on open.
package migrations

import "embed"

// FS holds every numbered .sql migration, applied in lexical order.
//
//go:embed *.sql
var FS embed.FS
