package scoremigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating score_entries table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS score_entries (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					game_id VARCHAR(64) NOT NULL,
					round_id VARCHAR(64) NOT NULL,
					player_id VARCHAR(64) NOT NULL,
					hole VARCHAR(8) NOT NULL,
					key VARCHAR(64) NOT NULL,
					value TEXT NOT NULL,
					ts TIMESTAMPTZ NOT NULL,
					writer VARCHAR(64) NOT NULL,
					seq BIGSERIAL NOT NULL UNIQUE,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_score_entries_game_seq ON score_entries(game_id, seq);
				CREATE INDEX IF NOT EXISTS idx_score_entries_round_seq ON score_entries(round_id, seq);
			`); err != nil {
				return fmt.Errorf("failed to create score_entries table: %w", err)
			}
			// The log is append only.
			if _, err := tx.ExecContext(ctx, `
				CREATE OR REPLACE RULE score_entries_no_update AS ON UPDATE TO score_entries DO INSTEAD NOTHING;
				CREATE OR REPLACE RULE score_entries_no_delete AS ON DELETE TO score_entries DO INSTEAD NOTHING;
			`); err != nil {
				return fmt.Errorf("failed to protect score_entries: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping score_entries table...")

		if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS score_entries;`); err != nil {
			return fmt.Errorf("failed to drop score_entries table: %w", err)
		}
		return nil
	})
}
