// Package migrations embeds the PostgreSQL schema migration files.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
