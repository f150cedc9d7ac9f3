// Package migrations embeds the versioned schema migrations, one directory
// per SQL dialect. Adapters feed these to golang-migrate over their live
// connection.
package migrations

import "embed"

//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS
