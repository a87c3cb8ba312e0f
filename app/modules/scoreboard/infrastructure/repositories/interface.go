package scoreboarddb

import (
	"context"

	golftypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/golf"
	sharedtypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/shared"
	"github.com/uptrace/bun"
)

// Repository defines the contract for the game read model.
type Repository interface {
	GetGame(ctx context.Context, db bun.IDB, gameID sharedtypes.GameID) (golftypes.Game, error)
	SaveGame(ctx context.Context, db bun.IDB, game golftypes.Game) error

	// RoundsForGame returns the game's rounds ordered by seq. Scores are
	// not part of the stored document.
	RoundsForGame(ctx context.Context, db bun.IDB, gameID sharedtypes.GameID) ([]golftypes.Round, error)
	RoundFor(ctx context.Context, db bun.IDB, gameID sharedtypes.GameID, playerID sharedtypes.PlayerID) (sharedtypes.RoundID, error)
	SaveRound(ctx context.Context, db bun.IDB, round golftypes.Round) error
	UpdatePosting(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID, posting golftypes.Posting) error

	// TeesByID returns the tees found; missing ids are absent from the map.
	TeesByID(ctx context.Context, db bun.IDB, ids []sharedtypes.TeeID) (map[sharedtypes.TeeID]golftypes.Tee, error)
	SaveTee(ctx context.Context, db bun.IDB, tee golftypes.Tee) error
}
