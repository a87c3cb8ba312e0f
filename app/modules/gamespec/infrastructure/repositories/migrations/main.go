package gamespecmigrations

import "github.com/uptrace/bun/migrate"

// Migrations holds the gamespec module migrations.
var Migrations = migrate.NewMigrations()
