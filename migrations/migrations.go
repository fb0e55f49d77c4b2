// Package migrations embeds the versioned SQL schema applied by goose,
// one directory per goose dialect.
package migrations

import "embed"

//go:embed postgres/*.sql mysql/*.sql sqlite3/*.sql
var FS embed.FS
