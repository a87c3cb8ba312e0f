package scoreboardmigrations

import "github.com/uptrace/bun/migrate"

// Migrations holds the scoreboard read model migrations.
var Migrations = migrate.NewMigrations()
