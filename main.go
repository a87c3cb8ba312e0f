package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/Black-And-White-Club/golf-scoring/app/shared/observability"
	"github.com/Black-And-White-Club/golf-scoring/config"
	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := &cli.App{
		Name:  "golf-scoring",
		Usage: "score golf games from gamespecs and post rounds for handicap",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "config.yaml",
				Usage:   "path to the configuration file",
				EnvVars: []string{"CONFIG_FILE"},
			},
		},
		Commands: []*cli.Command{
			newServeCommand(),
			newScoreCommand(),
			newValidateCommand(),
			newSeedSpecsCommand(),
			newPostCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// loadConfig reads the configuration named by the global config flag.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// initObservability sets up logging, metrics and tracing for cfg.
func initObservability(ctx context.Context, cfg *config.Config) (*observability.Observability, error) {
	return observability.Init(ctx, observability.Config{
		ServiceName:     cfg.Observability.ServiceName,
		Environment:     cfg.Observability.Environment,
		LogLevel:        cfg.Observability.LogLevel,
		LogFormat:       cfg.Observability.LogFormat,
		TempoEndpoint:   cfg.Observability.TempoEndpoint,
		TempoInsecure:   cfg.Observability.TempoInsecure,
		TempoSampleRate: cfg.Observability.TempoSampleRate,
	})
}
