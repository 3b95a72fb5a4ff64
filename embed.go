package ledgerline

import "embed"

//go:embed migrations
var MigrationsFS embed.FS
