package scorehandlers

import (
	"context"

	scoreservice "github.com/Black-And-White-Club/golf-scoring/app/modules/score/application"
	scoredomain "github.com/Black-And-White-Club/golf-scoring/app/modules/score/domain"
	"github.com/Black-And-White-Club/golf-scoring/app/shared/results"
	golftypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/golf"
	sharedtypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/shared"
)

// ------------------------
// Fake Score Service
// ------------------------

// FakeScoreService provides a programmable stub for scoreservice.Service.
type FakeScoreService struct {
	trace []string

	RecordScoreFunc  func(ctx context.Context, cmd scoreservice.RecordScoreCommand) (results.OperationResult[scoreservice.ScoreRecordedPayload, scoreservice.ScoreRecordFailedPayload], error)
	RecordScoresFunc func(ctx context.Context, gameID sharedtypes.GameID, cmds []scoreservice.RecordScoreCommand) (results.OperationResult[scoreservice.ScoresRecordedPayload, scoreservice.ScoreRecordFailedPayload], error)
}

func NewFakeScoreService() *FakeScoreService {
	return &FakeScoreService{trace: []string{}}
}

func (f *FakeScoreService) record(step string) {
	f.trace = append(f.trace, step)
}

// Trace returns the sequence of service methods called.
func (f *FakeScoreService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeScoreService) RecordScore(ctx context.Context, cmd scoreservice.RecordScoreCommand) (results.OperationResult[scoreservice.ScoreRecordedPayload, scoreservice.ScoreRecordFailedPayload], error) {
	f.record("RecordScore")
	if f.RecordScoreFunc != nil {
		return f.RecordScoreFunc(ctx, cmd)
	}
	return results.SuccessResult[scoreservice.ScoreRecordedPayload, scoreservice.ScoreRecordFailedPayload](scoreservice.ScoreRecordedPayload{}), nil
}

func (f *FakeScoreService) RecordScores(ctx context.Context, gameID sharedtypes.GameID, cmds []scoreservice.RecordScoreCommand) (results.OperationResult[scoreservice.ScoresRecordedPayload, scoreservice.ScoreRecordFailedPayload], error) {
	f.record("RecordScores")
	if f.RecordScoresFunc != nil {
		return f.RecordScoresFunc(ctx, gameID, cmds)
	}
	return results.SuccessResult[scoreservice.ScoresRecordedPayload, scoreservice.ScoreRecordFailedPayload](scoreservice.ScoresRecordedPayload{GameID: gameID}), nil
}

func (f *FakeScoreService) ImportScorecard(ctx context.Context, gameID sharedtypes.GameID, filename string, data []byte) (results.OperationResult[scoreservice.ScorecardImportedPayload, scoreservice.ScoreRecordFailedPayload], error) {
	f.record("ImportScorecard")
	return results.OperationResult[scoreservice.ScorecardImportedPayload, scoreservice.ScoreRecordFailedPayload]{}, nil
}

func (f *FakeScoreService) RoundLogs(ctx context.Context, roundID sharedtypes.RoundID) ([]golftypes.Score, error) {
	f.record("RoundLogs")
	return nil, nil
}

func (f *FakeScoreService) GameLogs(ctx context.Context, gameID sharedtypes.GameID) (map[sharedtypes.RoundID]scoredomain.RoundLogs, error) {
	f.record("GameLogs")
	return nil, nil
}

var _ scoreservice.Service = (*FakeScoreService)(nil)
