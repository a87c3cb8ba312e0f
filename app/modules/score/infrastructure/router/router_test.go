package scorerouter

import (
	"context"
	"log/slog"
	"testing"
	"time"

	scoreservice "github.com/Black-And-White-Club/golf-scoring/app/modules/score/application"
	scoredomain "github.com/Black-And-White-Club/golf-scoring/app/modules/score/domain"
	scoringevents "github.com/Black-And-White-Club/golf-scoring/app/shared/events/scoring"
	"github.com/Black-And-White-Club/golf-scoring/app/shared/handlerwrapper"
	scoringmetrics "github.com/Black-And-White-Club/golf-scoring/app/shared/observability/metrics"
	"github.com/Black-And-White-Club/golf-scoring/app/shared/results"
	golftypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/golf"
	sharedtypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/shared"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

// recordingService captures commands it receives.
type recordingService struct {
	got chan scoreservice.RecordScoreCommand
}

func (s *recordingService) RecordScore(ctx context.Context, cmd scoreservice.RecordScoreCommand) (results.OperationResult[scoreservice.ScoreRecordedPayload, scoreservice.ScoreRecordFailedPayload], error) {
	s.got <- cmd
	return results.SuccessResult[scoreservice.ScoreRecordedPayload, scoreservice.ScoreRecordFailedPayload](scoreservice.ScoreRecordedPayload{}), nil
}

func (s *recordingService) RecordScores(ctx context.Context, gameID sharedtypes.GameID, cmds []scoreservice.RecordScoreCommand) (results.OperationResult[scoreservice.ScoresRecordedPayload, scoreservice.ScoreRecordFailedPayload], error) {
	for _, c := range cmds {
		s.got <- c
	}
	return results.SuccessResult[scoreservice.ScoresRecordedPayload, scoreservice.ScoreRecordFailedPayload](scoreservice.ScoresRecordedPayload{GameID: gameID}), nil
}

func (s *recordingService) ImportScorecard(ctx context.Context, gameID sharedtypes.GameID, filename string, data []byte) (results.OperationResult[scoreservice.ScorecardImportedPayload, scoreservice.ScoreRecordFailedPayload], error) {
	return results.OperationResult[scoreservice.ScorecardImportedPayload, scoreservice.ScoreRecordFailedPayload]{}, nil
}

func (s *recordingService) RoundLogs(ctx context.Context, roundID sharedtypes.RoundID) ([]golftypes.Score, error) {
	return nil, nil
}

func (s *recordingService) GameLogs(ctx context.Context, gameID sharedtypes.GameID) (map[sharedtypes.RoundID]scoredomain.RoundLogs, error) {
	return nil, nil
}

func TestScoreRouter_DeliversCommands(t *testing.T) {
	t.Setenv(TestEnvironmentFlag, TestEnvironmentValue)

	wmLogger := watermill.NewSlogLogger(slog.Default())
	pubsub := gochannel.NewGoChannel(gochannel.Config{}, wmLogger)
	defer pubsub.Close()

	router, err := message.NewRouter(message.RouterConfig{}, wmLogger)
	require.NoError(t, err)

	svc := &recordingService{got: make(chan scoreservice.RecordScoreCommand, 4)}
	r := NewScoreRouter(slog.Default(), router, pubsub, pubsub, noop.NewTracerProvider().Tracer("test"), scoringmetrics.NoOpMetrics{}, nil)
	require.NoError(t, r.Configure(context.Background(), svc))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	go func() { _ = router.Run(ctx) }()
	defer r.Close()
	<-router.Running()

	single, err := handlerwrapper.NewMessage(ctx, scoringevents.ScoreRecordRequestedV1, scoringevents.ScoreRecordRequestedPayloadV1{
		GameID: "g1", RoundID: "r1", PlayerID: "p1", Hole: "1", Key: "gross", Value: "4",
	})
	require.NoError(t, err)
	require.NoError(t, pubsub.Publish(scoringevents.ScoreRecordRequestedV1, single))

	bulk, err := handlerwrapper.NewMessage(ctx, scoringevents.BulkScoreRecordRequestedV1, scoringevents.BulkScoreRecordRequestedPayloadV1{
		GameID: "g1",
		Writes: []scoringevents.ScoreRecordRequestedPayloadV1{{RoundID: "r1", PlayerID: "p1", Hole: "2", Key: "gross", Value: "5"}},
	})
	require.NoError(t, err)
	require.NoError(t, pubsub.Publish(scoringevents.BulkScoreRecordRequestedV1, bulk))

	holes := map[string]bool{}
	for len(holes) < 2 {
		select {
		case cmd := <-svc.got:
			holes[cmd.Hole] = true
		case <-ctx.Done():
			t.Fatalf("commands not delivered, got %v", holes)
		}
	}
	assert.True(t, holes["1"])
	assert.True(t, holes["2"])
}

var _ scoreservice.Service = (*recordingService)(nil)
