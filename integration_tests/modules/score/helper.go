// Package scoreintegrationtests runs the score log against Postgres.
package scoreintegrationtests

import (
	"context"
	"testing"

	scoreservice "github.com/Black-And-White-Club/golf-scoring/app/modules/score/application"
	scoredb "github.com/Black-And-White-Club/golf-scoring/app/modules/score/infrastructure/repositories"
	"github.com/Black-And-White-Club/golf-scoring/integration_tests/testutils"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/uptrace/bun"
)

type TestDeps struct {
	Ctx     context.Context
	Repo    scoredb.Repository
	BunDB   *bun.DB
	PubSub  *gochannel.GoChannel
	Service scoreservice.Service
}

func SetupTestScoreService(t *testing.T) TestDeps {
	t.Helper()

	env := testutils.GetOrCreateTestEnv(t)
	if err := testutils.TruncateTables(env.Ctx, env.DB, "score_entries"); err != nil {
		t.Fatalf("Failed to truncate score tables: %v", err)
	}

	pubsub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, watermill.NopLogger{})
	t.Cleanup(func() { _ = pubsub.Close() })

	repo := scoredb.NewRepository(env.DB)
	service := scoreservice.NewScoreService(
		repo,
		pubsub,
		nil,
		env.Logger(),
		env.Obs.Metrics,
		env.Obs.Tracer,
		env.DB,
	)

	return TestDeps{
		Ctx:     env.Ctx,
		Repo:    repo,
		BunDB:   env.DB,
		PubSub:  pubsub,
		Service: service,
	}
}
