package gamespec

import (
	"context"
	"fmt"

	gamespecservice "github.com/Black-And-White-Club/golf-scoring/app/modules/gamespec/application"
	gamespecdomain "github.com/Black-And-White-Club/golf-scoring/app/modules/gamespec/domain"
	gamespecloader "github.com/Black-And-White-Club/golf-scoring/app/modules/gamespec/infrastructure/loader"
	gamespecdb "github.com/Black-And-White-Club/golf-scoring/app/modules/gamespec/infrastructure/repositories"
	"github.com/Black-And-White-Club/golf-scoring/app/shared/observability"
	"github.com/Black-And-White-Club/golf-scoring/config"
	"github.com/uptrace/bun"
)

// Module represents the gamespec module.
type Module struct {
	GameSpecService gamespecservice.Service
	// Specs are the documents seeded at startup: the built in specs followed
	// by any found in the configured directory.
	Specs []gamespecdomain.GameSpec
}

// NewGameSpecModule loads the gamespec documents and creates the service. A
// nil db serves the loaded specs only.
func NewGameSpecModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Observability,
	db bun.IDB,
) (*Module, error) {
	logger := obs.Logger
	logger.InfoContext(ctx, "gamespec.NewGameSpecModule called")

	specs, err := gamespecloader.Builtin()
	if err != nil {
		return nil, fmt.Errorf("failed to load built in gamespecs: %w", err)
	}
	if cfg != nil && cfg.GameSpecs.Dir != "" {
		extra, err := gamespecloader.LoadDir(cfg.GameSpecs.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to load gamespecs from %s: %w", cfg.GameSpecs.Dir, err)
		}
		specs = append(specs, extra...)
	}

	var repo gamespecdb.Repository
	if db != nil {
		repo = gamespecdb.NewRepository(db)
	}

	return &Module{
		GameSpecService: gamespecservice.NewGameSpecService(repo, specs, logger, obs.Metrics, obs.Tracer),
		Specs:           specs,
	}, nil
}

// Seed stores the loaded specs. Versions already stored are skipped.
func (m *Module) Seed(ctx context.Context) error {
	res, err := m.GameSpecService.SeedSpecs(ctx, m.Specs)
	if err != nil {
		return fmt.Errorf("failed to seed gamespecs: %w", err)
	}
	if res.IsFailure() {
		return fmt.Errorf("gamespecs rejected: %s", res.Failure.Reason)
	}
	return nil
}
