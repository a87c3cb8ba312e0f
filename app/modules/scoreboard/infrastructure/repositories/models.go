package scoreboarddb

import (
	"time"

	golftypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/golf"
	sharedtypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/shared"
	"github.com/uptrace/bun"
)

// Game stores a game document.
type Game struct {
	bun.BaseModel `bun:"table:games,alias:g"`

	ID        sharedtypes.GameID `bun:"id,pk,type:varchar(64)"`
	Name      string             `bun:"name,notnull"`
	Document  golftypes.Game     `bun:"document,type:jsonb,notnull"`
	CreatedAt time.Time          `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time          `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// Round stores a round document. Scores live in the score log, not here.
type Round struct {
	bun.BaseModel `bun:"table:rounds,alias:r"`

	ID        sharedtypes.RoundID  `bun:"id,pk,type:varchar(64)"`
	GameID    sharedtypes.GameID   `bun:"game_id,notnull,type:varchar(64)"`
	PlayerID  sharedtypes.PlayerID `bun:"player_id,notnull,type:varchar(64)"`
	Seq       int                  `bun:"seq,notnull"`
	Document  golftypes.Round      `bun:"document,type:jsonb,notnull"`
	CreatedAt time.Time            `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time            `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// Tee stores a tee document.
type Tee struct {
	bun.BaseModel `bun:"table:tees,alias:t"`

	ID        sharedtypes.TeeID `bun:"id,pk,type:varchar(64)"`
	Document  golftypes.Tee     `bun:"document,type:jsonb,notnull"`
	CreatedAt time.Time         `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time         `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}
