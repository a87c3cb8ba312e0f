// Package testutils shares the container backed environment of the
// integration test packages.
package testutils

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/Black-And-White-Club/golf-scoring/app"
	"github.com/Black-And-White-Club/golf-scoring/app/shared/observability"
	"github.com/Black-And-White-Club/golf-scoring/integration_tests/containers"
	tcnats "github.com/testcontainers/testcontainers-go/modules/nats"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"
)

// TestEnvironment holds the resources of one integration test binary.
type TestEnvironment struct {
	Ctx           context.Context
	CancelContext context.CancelFunc
	PgContainer   *postgres.PostgresContainer
	DSN           string
	DB            *bun.DB
	Obs           *observability.Observability
}

var (
	envOnce   sync.Once
	globalEnv *TestEnvironment
	envErr    error

	natsOnce      sync.Once
	natsContainer *tcnats.NATSContainer
	natsURL       string
	natsErr       error
)

// GetOrCreateTestEnv returns the shared environment, starting Postgres and
// running every migration on first use. Tests are skipped under -short.
func GetOrCreateTestEnv(t *testing.T) *TestEnvironment {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container backed test in short mode")
	}
	envOnce.Do(func() {
		globalEnv, envErr = newTestEnvironment()
	})
	if envErr != nil {
		t.Fatalf("Failed to create test environment: %v", envErr)
	}
	return globalEnv
}

func newTestEnvironment() (*TestEnvironment, error) {
	ctx, cancel := context.WithCancel(context.Background())
	env := &TestEnvironment{
		Ctx:           ctx,
		CancelContext: cancel,
		Obs:           observability.NewNoop(),
	}

	pgContainer, dsn, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to setup postgres container: %w", err)
	}
	env.PgContainer = pgContainer
	env.DSN = dsn
	env.DB = app.NewDB(dsn)

	if err := env.DB.PingContext(ctx); err != nil {
		env.Cleanup()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if err := RunMigrations(ctx, env.DB, dsn); err != nil {
		env.Cleanup()
		return nil, err
	}
	return env, nil
}

// NATSURL starts a NATS container on first use and returns its URL.
// Tests are skipped under -short.
func NATSURL(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container backed test in short mode")
	}
	natsOnce.Do(func() {
		natsContainer, natsURL, natsErr = containers.SetupNatsContainer(context.Background())
	})
	if natsErr != nil {
		t.Fatalf("Failed to start NATS: %v", natsErr)
	}
	return natsURL
}

// Logger returns a logger that discards everything.
func (env *TestEnvironment) Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Cleanup closes the database and terminates the Postgres container.
func (env *TestEnvironment) Cleanup() {
	if env.CancelContext != nil {
		env.CancelContext()
	}
	if env.DB != nil {
		if err := env.DB.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if env.PgContainer != nil {
		if err := env.PgContainer.Terminate(ctx); err != nil {
			log.Printf("Error terminating Postgres container: %v", err)
		}
	}
}

// Teardown cleans up whatever containers were started. Call it from
// TestMain after m.Run.
func Teardown() {
	if globalEnv != nil {
		globalEnv.Cleanup()
	}
	if natsContainer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := natsContainer.Terminate(ctx); err != nil {
			log.Printf("Error terminating NATS container: %v", err)
		}
	}
}
