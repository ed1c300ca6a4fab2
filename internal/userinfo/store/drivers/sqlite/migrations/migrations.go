package migrations

import "embed"

// Migrations holds the golang-migrate up/down files.
//
//go:embed *.sql
var Migrations embed.FS
