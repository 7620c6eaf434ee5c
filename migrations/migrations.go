// Package migrations embeds the schema files for every database the
// application opens.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql notify/*.sql
var FS embed.FS
