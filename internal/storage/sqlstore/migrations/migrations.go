// Package migrations embeds the schema migrations for the SQL-backed
// document store. Both the sqlite and postgres drivers share the same schema.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
