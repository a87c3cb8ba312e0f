package gamespecdb

import (
	"time"

	gamespecdomain "github.com/Black-And-White-Club/golf-scoring/app/modules/gamespec/domain"
	"github.com/uptrace/bun"
)

// GameSpec is one immutable version of a gamespec. The document is stored
// whole; name and version are its identity.
type GameSpec struct {
	bun.BaseModel `bun:"table:gamespecs,alias:gs"`

	Name      string                  `bun:"name,pk,type:varchar(64)"`
	Version   int                     `bun:"version,pk"`
	Disp      string                  `bun:"disp,nullzero"`
	SpecType  string                  `bun:"spec_type,nullzero,type:varchar(20)"`
	Document  gamespecdomain.GameSpec `bun:"document,type:jsonb,notnull"`
	CreatedAt time.Time               `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

func toDBModel(s gamespecdomain.GameSpec) *GameSpec {
	return &GameSpec{
		Name:     s.Name,
		Version:  s.Version,
		Disp:     s.Disp,
		SpecType: string(s.SpecType),
		Document: s,
	}
}
