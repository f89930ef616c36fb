// Package migrations embeds the PostgreSQL schema migrations applied by
// catalogctl migrate.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
