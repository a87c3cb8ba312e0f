package scoreboardhttp

import (
	"context"

	gamespecservice "github.com/Black-And-White-Club/golf-scoring/app/modules/gamespec/application"
	gamespecdomain "github.com/Black-And-White-Club/golf-scoring/app/modules/gamespec/domain"
	scoreservice "github.com/Black-And-White-Club/golf-scoring/app/modules/score/application"
	scoredomain "github.com/Black-And-White-Club/golf-scoring/app/modules/score/domain"
	"github.com/Black-And-White-Club/golf-scoring/app/shared/results"
	golftypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/golf"
	sharedtypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/shared"
)

// FakeScoreService records commands and answers through Funcs.
type FakeScoreService struct {
	Commands []scoreservice.RecordScoreCommand

	RecordScoreFunc     func(ctx context.Context, cmd scoreservice.RecordScoreCommand) (results.OperationResult[scoreservice.ScoreRecordedPayload, scoreservice.ScoreRecordFailedPayload], error)
	ImportScorecardFunc func(ctx context.Context, gameID sharedtypes.GameID, filename string, data []byte) (results.OperationResult[scoreservice.ScorecardImportedPayload, scoreservice.ScoreRecordFailedPayload], error)
}

func (f *FakeScoreService) RecordScore(ctx context.Context, cmd scoreservice.RecordScoreCommand) (results.OperationResult[scoreservice.ScoreRecordedPayload, scoreservice.ScoreRecordFailedPayload], error) {
	f.Commands = append(f.Commands, cmd)
	if f.RecordScoreFunc != nil {
		return f.RecordScoreFunc(ctx, cmd)
	}
	return results.SuccessResult[scoreservice.ScoreRecordedPayload, scoreservice.ScoreRecordFailedPayload](scoreservice.ScoreRecordedPayload{
		Entry: scoredomain.Entry{GameID: cmd.GameID, RoundID: cmd.RoundID, Hole: cmd.Hole, Key: cmd.Key, Value: cmd.Value, Seq: 1},
	}), nil
}

func (f *FakeScoreService) RecordScores(ctx context.Context, gameID sharedtypes.GameID, cmds []scoreservice.RecordScoreCommand) (results.OperationResult[scoreservice.ScoresRecordedPayload, scoreservice.ScoreRecordFailedPayload], error) {
	f.Commands = append(f.Commands, cmds...)
	return results.SuccessResult[scoreservice.ScoresRecordedPayload, scoreservice.ScoreRecordFailedPayload](scoreservice.ScoresRecordedPayload{GameID: gameID}), nil
}

func (f *FakeScoreService) ImportScorecard(ctx context.Context, gameID sharedtypes.GameID, filename string, data []byte) (results.OperationResult[scoreservice.ScorecardImportedPayload, scoreservice.ScoreRecordFailedPayload], error) {
	if f.ImportScorecardFunc != nil {
		return f.ImportScorecardFunc(ctx, gameID, filename, data)
	}
	return results.SuccessResult[scoreservice.ScorecardImportedPayload, scoreservice.ScoreRecordFailedPayload](scoreservice.ScorecardImportedPayload{GameID: gameID}), nil
}

func (f *FakeScoreService) RoundLogs(ctx context.Context, roundID sharedtypes.RoundID) ([]golftypes.Score, error) {
	return nil, nil
}

func (f *FakeScoreService) GameLogs(ctx context.Context, gameID sharedtypes.GameID) (map[sharedtypes.RoundID]scoredomain.RoundLogs, error) {
	return nil, nil
}

// FakeSpecService serves a fixed list of specs.
type FakeSpecService struct {
	Specs      []gamespecdomain.GameSpec
	GetSpecErr error
}

func (f *FakeSpecService) SeedSpecs(ctx context.Context, specs []gamespecdomain.GameSpec) (results.OperationResult[gamespecservice.SpecsSeededPayload, gamespecservice.SpecsSeedFailedPayload], error) {
	return results.OperationResult[gamespecservice.SpecsSeededPayload, gamespecservice.SpecsSeedFailedPayload]{}, nil
}

func (f *FakeSpecService) GetSpec(ctx context.Context, name string, version int) (gamespecdomain.GameSpec, error) {
	if f.GetSpecErr != nil {
		return gamespecdomain.GameSpec{}, f.GetSpecErr
	}
	for _, s := range f.Specs {
		if s.Name == name && (version == 0 || s.Version == version) {
			return s, nil
		}
	}
	return gamespecdomain.GameSpec{}, nil
}

func (f *FakeSpecService) ListSpecs(ctx context.Context) ([]gamespecdomain.GameSpec, error) {
	return f.Specs, nil
}

func (f *FakeSpecService) Resolve(ctx context.Context, refs []golftypes.SpecRef) ([]gamespecdomain.GameSpec, error) {
	return f.Specs, nil
}

var (
	_ scoreservice.Service    = (*FakeScoreService)(nil)
	_ gamespecservice.Service = (*FakeSpecService)(nil)
)
