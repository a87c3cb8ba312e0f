package gamespecservice

import (
	"context"

	gamespecdomain "github.com/Black-And-White-Club/golf-scoring/app/modules/gamespec/domain"
	gamespecdb "github.com/Black-And-White-Club/golf-scoring/app/modules/gamespec/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake GameSpec Repo
// ------------------------

type FakeGameSpecRepo struct {
	trace []string

	SaveVersionFunc func(ctx context.Context, db bun.IDB, spec gamespecdomain.GameSpec) error
	GetVersionFunc  func(ctx context.Context, db bun.IDB, name string, version int) (gamespecdomain.GameSpec, error)
	LatestFunc      func(ctx context.Context, db bun.IDB, name string) (gamespecdomain.GameSpec, error)
	ListFunc        func(ctx context.Context, db bun.IDB) ([]gamespecdomain.GameSpec, error)
}

func NewFakeGameSpecRepo() *FakeGameSpecRepo {
	return &FakeGameSpecRepo{trace: []string{}}
}

func (f *FakeGameSpecRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeGameSpecRepo) SaveVersion(ctx context.Context, db bun.IDB, spec gamespecdomain.GameSpec) error {
	f.record("SaveVersion")
	if f.SaveVersionFunc != nil {
		return f.SaveVersionFunc(ctx, db, spec)
	}
	return nil
}

func (f *FakeGameSpecRepo) GetVersion(ctx context.Context, db bun.IDB, name string, version int) (gamespecdomain.GameSpec, error) {
	f.record("GetVersion")
	if f.GetVersionFunc != nil {
		return f.GetVersionFunc(ctx, db, name, version)
	}
	return gamespecdomain.GameSpec{}, gamespecdb.ErrNotFound
}

func (f *FakeGameSpecRepo) Latest(ctx context.Context, db bun.IDB, name string) (gamespecdomain.GameSpec, error) {
	f.record("Latest")
	if f.LatestFunc != nil {
		return f.LatestFunc(ctx, db, name)
	}
	return gamespecdomain.GameSpec{}, gamespecdb.ErrNotFound
}

func (f *FakeGameSpecRepo) List(ctx context.Context, db bun.IDB) ([]gamespecdomain.GameSpec, error) {
	f.record("List")
	if f.ListFunc != nil {
		return f.ListFunc(ctx, db)
	}
	return nil, nil
}

func (f *FakeGameSpecRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ gamespecdb.Repository = (*FakeGameSpecRepo)(nil)
