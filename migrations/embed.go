// Package migrations embeds the forward-only schema migrations for each SQL
// backend.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
