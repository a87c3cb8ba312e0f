package scoreboardservice

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	gamespecdb "github.com/Black-And-White-Club/golf-scoring/app/modules/gamespec/infrastructure/repositories"
	scoredomain "github.com/Black-And-White-Club/golf-scoring/app/modules/score/domain"
	scoreboarddomain "github.com/Black-And-White-Club/golf-scoring/app/modules/scoreboard/domain"
	scoreboarddb "github.com/Black-And-White-Club/golf-scoring/app/modules/scoreboard/infrastructure/repositories"
	sharedtypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/shared"
)

// LoadSnapshot gathers the game, its rounds with the score log folded in,
// their tees and the game's specs.
func (s *ScoreboardService) LoadSnapshot(ctx context.Context, gameID sharedtypes.GameID) (scoreboarddomain.Input, error) {
	game, err := s.repo.GetGame(ctx, nil, gameID)
	if err != nil {
		if errors.Is(err, scoreboarddb.ErrNotFound) {
			return scoreboarddomain.Input{}, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
		}
		return scoreboarddomain.Input{}, err
	}
	rounds, err := s.repo.RoundsForGame(ctx, nil, gameID)
	if err != nil {
		return scoreboarddomain.Input{}, err
	}
	logs, err := s.scores.GameLogs(ctx, gameID)
	if err != nil {
		return scoreboarddomain.Input{}, fmt.Errorf("failed to read score log: %w", err)
	}

	var teeIDs []sharedtypes.TeeID
	for i, r := range rounds {
		rounds[i] = scoredomain.FoldIntoRound(r, logs[r.ID])
		if r.TeeID != "" && !slices.Contains(teeIDs, r.TeeID) {
			teeIDs = append(teeIDs, r.TeeID)
		}
	}
	tees, err := s.repo.TeesByID(ctx, nil, teeIDs)
	if err != nil {
		return scoreboarddomain.Input{}, err
	}

	specs, err := s.specs.Resolve(ctx, game.Specs)
	if err != nil {
		if errors.Is(err, gamespecdb.ErrNotFound) {
			return scoreboarddomain.Input{}, fmt.Errorf("%w: %v", ErrUnknownGameSpec, err)
		}
		return scoreboarddomain.Input{}, err
	}

	return scoreboarddomain.Input{
		Game:   game,
		Specs:  specs,
		Rounds: rounds,
		Tees:   tees,
	}, nil
}

// InputHash is a sha256 over the canonical JSON of a snapshot. Map keys are
// sorted by encoding/json, so equal snapshots hash equally.
func InputHash(in scoreboarddomain.Input) (string, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:]), nil
}
