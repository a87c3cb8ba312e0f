package scoredb

import (
	"time"

	scoredomain "github.com/Black-And-White-Club/golf-scoring/app/modules/score/domain"
	sharedtypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/shared"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ScoreEntry is one row of the append-only score log. Rows are never
// updated or deleted; seq is the global insertion order.
type ScoreEntry struct {
	bun.BaseModel `bun:"table:score_entries,alias:se"`

	ID        uuid.UUID            `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	GameID    sharedtypes.GameID   `bun:"game_id,notnull,type:varchar(64)"`
	RoundID   sharedtypes.RoundID  `bun:"round_id,notnull,type:varchar(64)"`
	PlayerID  sharedtypes.PlayerID `bun:"player_id,notnull,type:varchar(64)"`
	Hole      string               `bun:"hole,notnull,type:varchar(8)"`
	Key       string               `bun:"key,notnull,type:varchar(64)"`
	Value     string               `bun:"value,notnull"`
	TS        time.Time            `bun:"ts,notnull"`
	Writer    string               `bun:"writer,notnull,type:varchar(64)"`
	Seq       int64                `bun:"seq,autoincrement,notnull,unique"`
	CreatedAt time.Time            `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

func toDBModel(e scoredomain.Entry) *ScoreEntry {
	return &ScoreEntry{
		ID:       uuid.New(),
		GameID:   e.GameID,
		RoundID:  e.RoundID,
		PlayerID: e.PlayerID,
		Hole:     e.Hole,
		Key:      e.Key,
		Value:    e.Value,
		TS:       e.TS,
		Writer:   e.Writer,
	}
}

func (r *ScoreEntry) toDomain() scoredomain.Entry {
	return scoredomain.Entry{
		GameID:   r.GameID,
		RoundID:  r.RoundID,
		PlayerID: r.PlayerID,
		Hole:     r.Hole,
		Key:      r.Key,
		Value:    r.Value,
		TS:       r.TS,
		Writer:   r.Writer,
		Seq:      r.Seq,
	}
}
