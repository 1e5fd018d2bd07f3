// Package migrations embeds the versioned SQL files applied by the migration
// runner. Files follow V<version>__<name>.sql.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
