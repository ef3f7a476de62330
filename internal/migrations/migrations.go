// Package migrations embeds the SQL schema migrations applied by goose at
// process start.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
