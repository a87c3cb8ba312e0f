package gamespecdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	gamespecdomain "github.com/Black-And-White-Club/golf-scoring/app/modules/gamespec/domain"
	"github.com/uptrace/bun"
)

// Impl implements Repository using Bun.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new gamespec repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// SaveVersion stores a new gamespec version.
func (r *Impl) SaveVersion(ctx context.Context, db bun.IDB, spec gamespecdomain.GameSpec) error {
	db = r.resolveDB(db)
	res, err := db.NewInsert().
		Model(toDBModel(spec)).
		On("CONFLICT (name, version) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save gamespec %s v%d: %w", spec.Name, spec.Version, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrSpecVersionExists
	}
	return nil
}

// GetVersion returns one version of a gamespec.
func (r *Impl) GetVersion(ctx context.Context, db bun.IDB, name string, version int) (gamespecdomain.GameSpec, error) {
	db = r.resolveDB(db)
	row := new(GameSpec)
	err := db.NewSelect().
		Model(row).
		Where("name = ?", name).
		Where("version = ?", version).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return gamespecdomain.GameSpec{}, ErrNotFound
		}
		return gamespecdomain.GameSpec{}, fmt.Errorf("failed to get gamespec %s v%d: %w", name, version, err)
	}
	return row.Document, nil
}

// Latest returns the highest stored version of a gamespec.
func (r *Impl) Latest(ctx context.Context, db bun.IDB, name string) (gamespecdomain.GameSpec, error) {
	db = r.resolveDB(db)
	row := new(GameSpec)
	err := db.NewSelect().
		Model(row).
		Where("name = ?", name).
		Order("version DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return gamespecdomain.GameSpec{}, ErrNotFound
		}
		return gamespecdomain.GameSpec{}, fmt.Errorf("failed to get latest gamespec %s: %w", name, err)
	}
	return row.Document, nil
}

// List returns the latest version of every gamespec.
func (r *Impl) List(ctx context.Context, db bun.IDB) ([]gamespecdomain.GameSpec, error) {
	db = r.resolveDB(db)
	var rows []GameSpec
	err := db.NewSelect().
		Model(&rows).
		DistinctOn("name").
		Order("name ASC", "version DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list gamespecs: %w", err)
	}
	out := make([]gamespecdomain.GameSpec, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Document)
	}
	return out, nil
}
