// Package scoreboardintegrationtests runs the game read model and the
// scoreboard service against Postgres.
package scoreboardintegrationtests

import (
	"context"
	"testing"

	gamespecservice "github.com/Black-And-White-Club/golf-scoring/app/modules/gamespec/application"
	gamespecloader "github.com/Black-And-White-Club/golf-scoring/app/modules/gamespec/infrastructure/loader"
	scoreservice "github.com/Black-And-White-Club/golf-scoring/app/modules/score/application"
	scoredb "github.com/Black-And-White-Club/golf-scoring/app/modules/score/infrastructure/repositories"
	"github.com/Black-And-White-Club/golf-scoring/app/modules/scoreboard"
	scoreboardservice "github.com/Black-And-White-Club/golf-scoring/app/modules/scoreboard/application"
	scoreboarddb "github.com/Black-And-White-Club/golf-scoring/app/modules/scoreboard/infrastructure/repositories"
	"github.com/Black-And-White-Club/golf-scoring/integration_tests/testutils"
	"github.com/uptrace/bun"
)

type TestDeps struct {
	Ctx        context.Context
	BunDB      *bun.DB
	Repo       scoreboarddb.Repository
	ScoreRepo  scoredb.Repository
	Rounds     *scoreboard.RoundDirectory
	Scores     scoreservice.Service
	Scoreboard scoreboardservice.Service
}

func SetupTestScoreboardService(t *testing.T) TestDeps {
	t.Helper()

	env := testutils.GetOrCreateTestEnv(t)
	if err := testutils.CleanupDatabase(env.Ctx, env.DB); err != nil {
		t.Fatalf("Failed to clean database: %v", err)
	}

	builtin, err := gamespecloader.Builtin()
	if err != nil {
		t.Fatalf("Failed to load builtin specs: %v", err)
	}
	specs := gamespecservice.NewGameSpecService(nil, builtin, env.Logger(), env.Obs.Metrics, env.Obs.Tracer)

	repo := scoreboarddb.NewRepository(env.DB)
	rounds := scoreboard.NewRoundDirectory(repo, env.DB)
	scoreRepo := scoredb.NewRepository(env.DB)
	scores := scoreservice.NewScoreService(scoreRepo, nil, rounds, env.Logger(), env.Obs.Metrics, env.Obs.Tracer, env.DB)

	service := scoreboardservice.NewScoreboardService(
		repo,
		specs,
		scores,
		nil,
		nil,
		nil,
		env.Logger(),
		env.Obs.Metrics,
		env.Obs.Tracer,
	)

	return TestDeps{
		Ctx:        env.Ctx,
		BunDB:      env.DB,
		Repo:       repo,
		ScoreRepo:  scoreRepo,
		Rounds:     rounds,
		Scores:     scores,
		Scoreboard: service,
	}
}
