package gamespecdb

import (
	"context"

	gamespecdomain "github.com/Black-And-White-Club/golf-scoring/app/modules/gamespec/domain"
	"github.com/uptrace/bun"
)

// Repository defines the contract for gamespec persistence.
//
// Error semantics:
//   - ErrNotFound: no such name or version (GetVersion, Latest)
//   - ErrSpecVersionExists: the name and version are already stored (SaveVersion)
//   - Other errors: infrastructure failures
type Repository interface {
	// SaveVersion stores a new gamespec version. Stored versions never change.
	SaveVersion(ctx context.Context, db bun.IDB, spec gamespecdomain.GameSpec) error

	// GetVersion returns one version of a gamespec.
	GetVersion(ctx context.Context, db bun.IDB, name string, version int) (gamespecdomain.GameSpec, error)

	// Latest returns the highest stored version of a gamespec.
	Latest(ctx context.Context, db bun.IDB, name string) (gamespecdomain.GameSpec, error)

	// List returns the latest version of every gamespec, ordered by name.
	List(ctx context.Context, db bun.IDB) ([]gamespecdomain.GameSpec, error)
}
