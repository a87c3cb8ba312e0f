// Package gamespecintegrationtests runs the gamespec store against Postgres.
package gamespecintegrationtests

import (
	"errors"
	"testing"

	gamespecservice "github.com/Black-And-White-Club/golf-scoring/app/modules/gamespec/application"
	gamespecloader "github.com/Black-And-White-Club/golf-scoring/app/modules/gamespec/infrastructure/loader"
	gamespecdb "github.com/Black-And-White-Club/golf-scoring/app/modules/gamespec/infrastructure/repositories"
	"github.com/Black-And-White-Club/golf-scoring/integration_tests/testutils"
)

func TestSeedSpecs_StoresOnceThenSkips(t *testing.T) {
	env := testutils.GetOrCreateTestEnv(t)
	if err := testutils.TruncateTables(env.Ctx, env.DB, "gamespecs"); err != nil {
		t.Fatalf("Failed to truncate gamespecs: %v", err)
	}

	builtin, err := gamespecloader.Builtin()
	if err != nil {
		t.Fatalf("Failed to load builtin specs: %v", err)
	}
	repo := gamespecdb.NewRepository(env.DB)
	service := gamespecservice.NewGameSpecService(repo, builtin, env.Logger(), env.Obs.Metrics, env.Obs.Tracer)

	first, err := service.SeedSpecs(env.Ctx, builtin)
	if err != nil {
		t.Fatalf("SeedSpecs returned error: %v", err)
	}
	if !first.IsSuccess() {
		t.Fatalf("SeedSpecs failed: %+v", first.Failure)
	}
	if len(first.Success.Stored) != len(builtin) || len(first.Success.Skipped) != 0 {
		t.Fatalf("first seed: unexpected outcome %+v", first.Success)
	}

	second, err := service.SeedSpecs(env.Ctx, builtin)
	if err != nil {
		t.Fatalf("second SeedSpecs returned error: %v", err)
	}
	if len(second.Success.Stored) != 0 || len(second.Success.Skipped) != len(builtin) {
		t.Errorf("second seed: unexpected outcome %+v", second.Success)
	}

	listed, err := repo.List(env.Ctx, nil)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(listed) != len(builtin) {
		t.Errorf("expected %d specs, got %d", len(builtin), len(listed))
	}
	for i := 1; i < len(listed); i++ {
		if listed[i-1].Name > listed[i].Name {
			t.Errorf("List not ordered by name: %s before %s", listed[i-1].Name, listed[i].Name)
		}
	}
}

func TestSaveVersion_VersionsAreImmutable(t *testing.T) {
	env := testutils.GetOrCreateTestEnv(t)
	if err := testutils.TruncateTables(env.Ctx, env.DB, "gamespecs"); err != nil {
		t.Fatalf("Failed to truncate gamespecs: %v", err)
	}

	builtin, err := gamespecloader.Builtin()
	if err != nil {
		t.Fatalf("Failed to load builtin specs: %v", err)
	}
	skins, ok := gamespecloader.Find(builtin, "skins", 0)
	if !ok {
		t.Fatal("builtin skins spec missing")
	}
	repo := gamespecdb.NewRepository(env.DB)

	if err := repo.SaveVersion(env.Ctx, nil, skins); err != nil {
		t.Fatalf("SaveVersion returned error: %v", err)
	}
	changed := skins
	changed.Disp = "Changed"
	if err := repo.SaveVersion(env.Ctx, nil, changed); !errors.Is(err, gamespecdb.ErrSpecVersionExists) {
		t.Fatalf("expected ErrSpecVersionExists, got %v", err)
	}

	next := skins
	next.Version = skins.Version + 1
	next.Disp = "Skins v2"
	if err := repo.SaveVersion(env.Ctx, nil, next); err != nil {
		t.Fatalf("SaveVersion of next version returned error: %v", err)
	}

	latest, err := repo.Latest(env.Ctx, nil, "skins")
	if err != nil {
		t.Fatalf("Latest returned error: %v", err)
	}
	if latest.Version != next.Version || latest.Disp != "Skins v2" {
		t.Errorf("expected version %d, got %+v", next.Version, latest)
	}

	original, err := repo.GetVersion(env.Ctx, nil, "skins", skins.Version)
	if err != nil {
		t.Fatalf("GetVersion returned error: %v", err)
	}
	if original.Disp != skins.Disp {
		t.Errorf("stored version changed: %q", original.Disp)
	}

	if _, err := repo.GetVersion(env.Ctx, nil, "skins", 99); !errors.Is(err, gamespecdb.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
