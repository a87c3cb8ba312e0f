package scoredb

import (
	"context"
	"fmt"

	scoredomain "github.com/Black-And-White-Club/golf-scoring/app/modules/score/domain"
	sharedtypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/shared"
	"github.com/uptrace/bun"
)

// Impl implements Repository using Bun.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new score log repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// AppendEntries stores entries and returns them with their assigned seq.
func (r *Impl) AppendEntries(ctx context.Context, db bun.IDB, entries []scoredomain.Entry) ([]scoredomain.Entry, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	db = r.resolveDB(db)

	rows := make([]*ScoreEntry, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, toDBModel(e))
	}
	res, err := db.NewInsert().
		Model(&rows).
		Returning("seq, created_at").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to append score entries: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrNoRowsAffected
	}

	out := make([]scoredomain.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// EntriesForGame returns every entry of a game ordered by seq.
func (r *Impl) EntriesForGame(ctx context.Context, db bun.IDB, gameID sharedtypes.GameID) ([]scoredomain.Entry, error) {
	db = r.resolveDB(db)
	var rows []ScoreEntry
	err := db.NewSelect().
		Model(&rows).
		Where("game_id = ?", gameID).
		Order("seq ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load score entries for game %s: %w", gameID, err)
	}
	return toDomain(rows), nil
}

// EntriesForRound returns every entry of a round ordered by seq.
func (r *Impl) EntriesForRound(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID) ([]scoredomain.Entry, error) {
	db = r.resolveDB(db)
	var rows []ScoreEntry
	err := db.NewSelect().
		Model(&rows).
		Where("round_id = ?", roundID).
		Order("seq ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load score entries for round %s: %w", roundID, err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return toDomain(rows), nil
}

func toDomain(rows []ScoreEntry) []scoredomain.Entry {
	out := make([]scoredomain.Entry, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out
}
