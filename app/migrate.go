package app

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	gamespecmigrations "github.com/Black-And-White-Club/golf-scoring/app/modules/gamespec/infrastructure/repositories/migrations"
	handicapqueue "github.com/Black-And-White-Club/golf-scoring/app/modules/handicap/infrastructure/queue"
	scoremigrations "github.com/Black-And-White-Club/golf-scoring/app/modules/score/infrastructure/repositories/migrations"
	scoreboardmigrations "github.com/Black-And-White-Club/golf-scoring/app/modules/scoreboard/infrastructure/repositories/migrations"
	"github.com/Black-And-White-Club/golf-scoring/app/shared/observability/attr"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

// Migrators returns one migrator per module, keyed by module name.
func Migrators(db *bun.DB) map[string]*migrate.Migrator {
	return map[string]*migrate.Migrator{
		"gamespec":   migrate.NewMigrator(db, gamespecmigrations.Migrations),
		"score":      migrate.NewMigrator(db, scoremigrations.Migrations),
		"scoreboard": migrate.NewMigrator(db, scoreboardmigrations.Migrations),
	}
}

// Migrate creates the migration tables and applies every pending module
// migration in module name order.
func Migrate(ctx context.Context, db *bun.DB, logger *slog.Logger) error {
	migrators := Migrators(db)
	names := make([]string, 0, len(migrators))
	for name := range migrators {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		m := migrators[name]
		if err := m.Init(ctx); err != nil {
			return fmt.Errorf("failed to init migrations for %s: %w", name, err)
		}
		group, err := m.Migrate(ctx)
		if err != nil {
			return fmt.Errorf("failed to migrate %s: %w", name, err)
		}
		if group.IsZero() {
			logger.InfoContext(ctx, "No new migrations", attr.String("module", name))
			continue
		}
		logger.InfoContext(ctx, "Migrated", attr.String("module", name), attr.String("group", group.String()))
	}
	return nil
}

// MigrateQueue brings the posting queue schema up to date.
func MigrateQueue(ctx context.Context, dsn string) error {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("failed to create pgx pool: %w", err)
	}
	defer pool.Close()
	return handicapqueue.Migrate(ctx, pool)
}
