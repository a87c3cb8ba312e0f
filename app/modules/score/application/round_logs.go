package scoreservice

import (
	"context"
	"errors"

	scoredomain "github.com/Black-And-White-Club/golf-scoring/app/modules/score/domain"
	scoredb "github.com/Black-And-White-Club/golf-scoring/app/modules/score/infrastructure/repositories"
	golftypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/golf"
	sharedtypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/shared"
)

// RoundLogs rebuilds the score documents of a round from the log. A round
// with no writes has no scores.
func (s *ScoreService) RoundLogs(ctx context.Context, roundID sharedtypes.RoundID) ([]golftypes.Score, error) {
	entries, err := s.repo.EntriesForRound(ctx, nil, roundID)
	if errors.Is(err, scoredb.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return scoredomain.FromEntries(entries)[roundID].Scores(), nil
}

// GameLogs returns the per round, per hole logs of a game.
func (s *ScoreService) GameLogs(ctx context.Context, gameID sharedtypes.GameID) (map[sharedtypes.RoundID]scoredomain.RoundLogs, error) {
	entries, err := s.repo.EntriesForGame(ctx, nil, gameID)
	if err != nil {
		return nil, err
	}
	return scoredomain.FromEntries(entries), nil
}
