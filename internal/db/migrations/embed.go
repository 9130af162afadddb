// Package migrations holds the goose SQL migrations for the regions table.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
