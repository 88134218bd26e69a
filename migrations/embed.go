// Package migrations holds the goose SQL migrations, embedded so the server
// and the migrate command ship them inside the binary.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
