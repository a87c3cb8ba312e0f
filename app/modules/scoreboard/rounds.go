package scoreboard

import (
	"context"
	"errors"
	"fmt"

	scoreservice "github.com/Black-And-White-Club/golf-scoring/app/modules/score/application"
	scoreboarddb "github.com/Black-And-White-Club/golf-scoring/app/modules/scoreboard/infrastructure/repositories"
	sharedtypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/shared"
	"github.com/uptrace/bun"
)

// RoundDirectory finds a player's round in the scoreboard tables.
type RoundDirectory struct {
	repo scoreboarddb.Repository
	db   bun.IDB
}

var _ scoreservice.RoundDirectory = (*RoundDirectory)(nil)

// NewRoundDirectory creates a RoundDirectory over repo.
func NewRoundDirectory(repo scoreboarddb.Repository, db bun.IDB) *RoundDirectory {
	return &RoundDirectory{repo: repo, db: db}
}

// RoundFor returns the round playerID plays in gameID. A missing round is
// reported as scoreservice.ErrUnknownRound.
func (d *RoundDirectory) RoundFor(ctx context.Context, gameID sharedtypes.GameID, playerID sharedtypes.PlayerID) (sharedtypes.RoundID, error) {
	id, err := d.repo.RoundFor(ctx, d.db, gameID, playerID)
	if errors.Is(err, scoreboarddb.ErrNotFound) {
		return "", fmt.Errorf("%w: player %s in game %s", scoreservice.ErrUnknownRound, playerID, gameID)
	}
	if err != nil {
		return "", err
	}
	return id, nil
}
