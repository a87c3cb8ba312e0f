package testutils

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Black-And-White-Club/golf-scoring/app"
	"github.com/uptrace/bun"
)

// appTables lists every table owned by the modules.
var appTables = []string{"score_entries", "rounds", "games", "tees", "gamespecs"}

// RunMigrations applies the module migrations and the River schema.
func RunMigrations(ctx context.Context, db *bun.DB, dsn string) error {
	if err := app.Migrate(ctx, db, slog.New(slog.NewTextHandler(io.Discard, nil))); err != nil {
		return fmt.Errorf("failed to run module migrations: %w", err)
	}
	if err := app.MigrateQueue(ctx, dsn); err != nil {
		return fmt.Errorf("failed to run River migrations: %w", err)
	}
	return nil
}

// TruncateTables truncates the named tables.
func TruncateTables(ctx context.Context, db *bun.DB, tables ...string) error {
	if len(tables) == 0 {
		return nil
	}
	quoted := make([]string, 0, len(tables))
	for _, table := range tables {
		quoted = append(quoted, fmt.Sprintf("%q", table))
	}
	query := fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", strings.Join(quoted, ", "))
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to truncate tables %v: %w", tables, err)
	}
	return nil
}

// CleanupRiverJobs deletes every job from the River queue.
func CleanupRiverJobs(ctx context.Context, db *bun.DB) error {
	_, err := db.ExecContext(ctx, "DELETE FROM river_job")
	return err
}

// CleanupDatabase empties every module table and the River queue.
func CleanupDatabase(ctx context.Context, db *bun.DB) error {
	if err := TruncateTables(ctx, db, appTables...); err != nil {
		return err
	}
	if err := CleanupRiverJobs(ctx, db); err != nil {
		return fmt.Errorf("failed to cleanup river jobs: %w", err)
	}
	return nil
}
