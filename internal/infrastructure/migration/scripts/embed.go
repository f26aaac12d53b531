// Package scripts embeds the SQL migration files applied by goose.
package scripts

import "embed"

// FS holds every *.sql migration in this directory.
//
//go:embed *.sql
var FS embed.FS
