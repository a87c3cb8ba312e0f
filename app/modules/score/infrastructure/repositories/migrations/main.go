package scoremigrations

import "github.com/uptrace/bun/migrate"

// Migrations holds the score module migrations.
var Migrations = migrate.NewMigrations()
