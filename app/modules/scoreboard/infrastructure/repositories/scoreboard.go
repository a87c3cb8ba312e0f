package scoreboarddb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	golftypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/golf"
	sharedtypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/shared"
	"github.com/uptrace/bun"
)

// Impl implements Repository using Bun.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new game read model repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// GetGame returns a game document.
func (r *Impl) GetGame(ctx context.Context, db bun.IDB, gameID sharedtypes.GameID) (golftypes.Game, error) {
	db = r.resolveDB(db)
	row := new(Game)
	err := db.NewSelect().Model(row).Where("id = ?", gameID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return golftypes.Game{}, fmt.Errorf("game %s: %w", gameID, ErrNotFound)
		}
		return golftypes.Game{}, fmt.Errorf("failed to get game %s: %w", gameID, err)
	}
	return row.Document, nil
}

// SaveGame inserts or replaces a game document.
func (r *Impl) SaveGame(ctx context.Context, db bun.IDB, game golftypes.Game) error {
	db = r.resolveDB(db)
	row := &Game{ID: game.ID, Name: game.Name, Document: game, UpdatedAt: time.Now().UTC()}
	_, err := db.NewInsert().
		Model(row).
		On("CONFLICT (id) DO UPDATE").
		Set("name = EXCLUDED.name").
		Set("document = EXCLUDED.document").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save game %s: %w", game.ID, err)
	}
	return nil
}

// RoundsForGame returns the game's rounds ordered by seq.
func (r *Impl) RoundsForGame(ctx context.Context, db bun.IDB, gameID sharedtypes.GameID) ([]golftypes.Round, error) {
	db = r.resolveDB(db)
	var rows []Round
	err := db.NewSelect().
		Model(&rows).
		Where("game_id = ?", gameID).
		Order("seq ASC", "id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rounds for game %s: %w", gameID, err)
	}
	out := make([]golftypes.Round, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Document)
	}
	return out, nil
}

// RoundFor returns the round a player plays in a game.
func (r *Impl) RoundFor(ctx context.Context, db bun.IDB, gameID sharedtypes.GameID, playerID sharedtypes.PlayerID) (sharedtypes.RoundID, error) {
	db = r.resolveDB(db)
	var id sharedtypes.RoundID
	err := db.NewSelect().
		Model((*Round)(nil)).
		Column("id").
		Where("game_id = ?", gameID).
		Where("player_id = ?", playerID).
		Order("seq ASC").
		Limit(1).
		Scan(ctx, &id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("round for %s in %s: %w", playerID, gameID, ErrNotFound)
		}
		return "", fmt.Errorf("failed to find round: %w", err)
	}
	return id, nil
}

// SaveRound inserts or replaces a round document. Scores are dropped; the
// score log is their only store.
func (r *Impl) SaveRound(ctx context.Context, db bun.IDB, round golftypes.Round) error {
	db = r.resolveDB(db)
	round.Scores = nil
	row := &Round{
		ID:        round.ID,
		GameID:    round.GameID,
		PlayerID:  round.PlayerID,
		Seq:       round.Seq,
		Document:  round,
		UpdatedAt: time.Now().UTC(),
	}
	_, err := db.NewInsert().
		Model(row).
		On("CONFLICT (id) DO UPDATE").
		Set("game_id = EXCLUDED.game_id").
		Set("player_id = EXCLUDED.player_id").
		Set("seq = EXCLUDED.seq").
		Set("document = EXCLUDED.document").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save round %s: %w", round.ID, err)
	}
	return nil
}

// UpdatePosting stores the handicap authority's answer on a round.
func (r *Impl) UpdatePosting(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID, posting golftypes.Posting) error {
	db = r.resolveDB(db)
	body, err := json.Marshal(posting)
	if err != nil {
		return fmt.Errorf("failed to marshal posting: %w", err)
	}
	res, err := db.NewUpdate().
		Model((*Round)(nil)).
		Set("document = jsonb_set(document, '{posting}', ?::jsonb)", string(body)).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", roundID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update posting for round %s: %w", roundID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("round %s: %w", roundID, ErrNotFound)
	}
	return nil
}

// TeesByID returns the tees found.
func (r *Impl) TeesByID(ctx context.Context, db bun.IDB, ids []sharedtypes.TeeID) (map[sharedtypes.TeeID]golftypes.Tee, error) {
	out := make(map[sharedtypes.TeeID]golftypes.Tee, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	db = r.resolveDB(db)
	var rows []Tee
	err := db.NewSelect().
		Model(&rows).
		Where("id IN (?)", bun.In(ids)).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tees: %w", err)
	}
	for _, row := range rows {
		out[row.ID] = row.Document
	}
	return out, nil
}

// SaveTee inserts or replaces a tee document.
func (r *Impl) SaveTee(ctx context.Context, db bun.IDB, tee golftypes.Tee) error {
	db = r.resolveDB(db)
	row := &Tee{ID: tee.ID, Document: tee, UpdatedAt: time.Now().UTC()}
	_, err := db.NewInsert().
		Model(row).
		On("CONFLICT (id) DO UPDATE").
		Set("document = EXCLUDED.document").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save tee %s: %w", tee.ID, err)
	}
	return nil
}
