package scoredb

import (
	"context"

	scoredomain "github.com/Black-And-White-Club/golf-scoring/app/modules/score/domain"
	sharedtypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/shared"
	"github.com/uptrace/bun"
)

// Repository defines the contract for the score log. The log is append
// only: there is no update or delete.
type Repository interface {
	// AppendEntries stores entries and returns them with their assigned seq.
	AppendEntries(ctx context.Context, db bun.IDB, entries []scoredomain.Entry) ([]scoredomain.Entry, error)

	// EntriesForGame returns every entry of a game ordered by seq.
	EntriesForGame(ctx context.Context, db bun.IDB, gameID sharedtypes.GameID) ([]scoredomain.Entry, error)

	// EntriesForRound returns every entry of a round ordered by seq.
	// Returns ErrNotFound when the round has no entries.
	EntriesForRound(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID) ([]scoredomain.Entry, error)
}
