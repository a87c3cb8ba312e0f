package gamespecmigrations

import (
	"context"
	"fmt"

	gamespecdb "github.com/Black-And-White-Club/golf-scoring/app/modules/gamespec/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating gamespecs table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.NewCreateTable().Model((*gamespecdb.GameSpec)(nil)).IfNotExists().Exec(ctx); err != nil {
				return fmt.Errorf("failed to create gamespecs table: %w", err)
			}
			if _, err := tx.ExecContext(ctx, `
				CREATE INDEX IF NOT EXISTS idx_gamespecs_spec_type ON gamespecs(spec_type);
			`); err != nil {
				return fmt.Errorf("failed to add index to gamespecs: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping gamespecs table...")

		if _, err := db.NewDropTable().Model((*gamespecdb.GameSpec)(nil)).IfExists().Exec(ctx); err != nil {
			return fmt.Errorf("failed to drop gamespecs table: %w", err)
		}
		return nil
	})
}
