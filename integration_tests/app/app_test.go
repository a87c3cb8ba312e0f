// Package appintegrationtests runs the assembled service against Postgres
// and NATS containers.
package appintegrationtests

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/Black-And-White-Club/golf-scoring/app"
	scoreboardservice "github.com/Black-And-White-Club/golf-scoring/app/modules/scoreboard/application"
	scoreboarddb "github.com/Black-And-White-Club/golf-scoring/app/modules/scoreboard/infrastructure/repositories"
	scoringevents "github.com/Black-And-White-Club/golf-scoring/app/shared/events/scoring"
	"github.com/Black-And-White-Club/golf-scoring/app/shared/handlerwrapper"
	golftypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/golf"
	"github.com/Black-And-White-Club/golf-scoring/config"
	"github.com/Black-And-White-Club/golf-scoring/integration_tests/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApp_ScoreCommandsReachTheScoreboard(t *testing.T) {
	env := testutils.GetOrCreateTestEnv(t)
	natsURL := testutils.NATSURL(t)
	require.NoError(t, testutils.CleanupDatabase(env.Ctx, env.DB))

	cfg := &config.Config{
		Postgres: config.PostgresConfig{DSN: env.DSN},
		NATS:     config.NATSConfig{URL: natsURL},
		HTTP:     config.HTTPConfig{Address: "127.0.0.1:0"},
	}

	ctx := context.Background()
	application, err := app.NewApp(ctx, cfg, env.Obs, false)
	require.NoError(t, err)
	require.NoError(t, application.Modules.GameSpec.Seed(ctx))

	runCtx, stop := context.WithCancel(ctx)
	runDone := make(chan error, 1)
	go func() { runDone <- application.Run(runCtx) }()
	t.Cleanup(func() {
		stop()
		<-runDone
		_ = application.Close(context.Background())
	})

	<-application.Modules.Score.ScoreRouter.Router.Running()
	<-application.Modules.Scoreboard.ScoreboardRouter.Router.Running()

	gen := testutils.NewTestDataGenerator(99)
	game := gen.GenerateGame(2, "skins")
	tee := gen.GenerateTee()
	rounds := gen.GenerateRounds(game, tee)

	repo := scoreboarddb.NewRepository(application.DB)
	require.NoError(t, repo.SaveGame(ctx, nil, game))
	require.NoError(t, repo.SaveTee(ctx, nil, tee))
	for _, r := range rounds {
		require.NoError(t, repo.SaveRound(ctx, nil, r))
	}

	bulk := scoringevents.BulkScoreRecordRequestedPayloadV1{GameID: game.ID}
	for _, r := range rounds {
		for hole := 1; hole <= 3; hole++ {
			bulk.Writes = append(bulk.Writes, scoringevents.ScoreRecordRequestedPayloadV1{
				RoundID:  r.ID,
				PlayerID: r.PlayerID,
				Hole:     strconv.Itoa(hole),
				Key:      golftypes.KeyGross,
				Value:    strconv.Itoa(3 + hole),
				Writer:   "scorer",
			})
		}
	}
	msg, err := handlerwrapper.NewMessage(ctx, scoringevents.BulkScoreRecordRequestedV1, bulk)
	require.NoError(t, err)
	require.NoError(t, application.EventBus.Publisher().Publish(scoringevents.BulkScoreRecordRequestedV1, msg))

	single, err := handlerwrapper.NewMessage(ctx, scoringevents.ScoreRecordRequestedV1, scoringevents.ScoreRecordRequestedPayloadV1{
		GameID:   game.ID,
		RoundID:  rounds[0].ID,
		PlayerID: rounds[0].PlayerID,
		Hole:     "4",
		Key:      golftypes.KeyGross,
		Value:    "5",
		Writer:   "scorer",
	})
	require.NoError(t, err)
	require.NoError(t, application.EventBus.Publisher().Publish(scoringevents.ScoreRecordRequestedV1, single))

	srv := httptest.NewServer(application.Handler())
	defer srv.Close()

	var board scoreboardservice.ScoreboardComputedPayload
	assert.Eventually(t, func() bool {
		resp, err := http.Get(srv.URL + "/games/" + string(game.ID) + "/scoreboard")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return false
		}
		if err := json.NewDecoder(resp.Body).Decode(&board); err != nil {
			return false
		}
		return board.Scoreboard.Meta.HolesScored[rounds[0].PlayerID] == 4 &&
			board.Scoreboard.Meta.HolesScored[rounds[1].PlayerID] == 3
	}, 30*time.Second, 250*time.Millisecond)

	assert.Equal(t, game.ID, board.GameID)
	assert.NotEmpty(t, board.InputHash)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
