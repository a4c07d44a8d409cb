// Package migrations holds the bundle store schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
