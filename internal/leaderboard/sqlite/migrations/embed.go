package migrations

import "embed"

// FS holds the leaderboard schema.
//
//go:embed *.sql
var FS embed.FS
