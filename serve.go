package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Black-And-White-Club/golf-scoring/app"
	"github.com/Black-And-White-Club/golf-scoring/app/shared/observability/attr"
	"github.com/urfave/cli/v2"
)

func newServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API, the event consumers and the posting workers",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "migrate", Usage: "apply pending migrations before starting"},
			&cli.BoolFlag{Name: "seed", Value: true, Usage: "store the loaded gamespecs at startup"},
			&cli.BoolFlag{Name: "workers", Value: true, Usage: "run posting workers in this process"},
		},
		Action: func(c *cli.Context) error {
			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			obs, err := initObservability(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := obs.Shutdown(shutdownCtx); err != nil {
					obs.Logger.Error("Failed to flush traces", attr.Error(err))
				}
			}()

			if c.Bool("migrate") {
				db := app.NewDB(cfg.Postgres.DSN)
				err := app.Migrate(ctx, db, obs.Logger)
				_ = db.Close()
				if err != nil {
					return err
				}
				if cfg.Posting.Enabled {
					if err := app.MigrateQueue(ctx, cfg.Postgres.DSN); err != nil {
						return err
					}
				}
			}

			application, err := app.NewApp(ctx, cfg, obs, c.Bool("workers"))
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			if c.Bool("seed") {
				if err := application.Modules.GameSpec.Seed(ctx); err != nil {
					_ = application.Close(ctx)
					return err
				}
			}

			runErr := application.Run(ctx)
			closeErr := application.Close(ctx)
			if runErr != nil {
				return runErr
			}
			return closeErr
		},
	}
}
