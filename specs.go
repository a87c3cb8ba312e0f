package main

import (
	"fmt"

	"github.com/Black-And-White-Club/golf-scoring/app"
	"github.com/Black-And-White-Club/golf-scoring/app/modules/gamespec"
	gamespecloader "github.com/Black-And-White-Club/golf-scoring/app/modules/gamespec/infrastructure/loader"
	"github.com/urfave/cli/v2"
)

func newValidateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "check gamespec YAML files",
		ArgsUsage: "<file.yaml>...",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return cli.Exit("expected at least one gamespec file", 2)
			}
			failed := 0
			for _, path := range c.Args().Slice() {
				specs, err := gamespecloader.LoadFile(path)
				if err != nil {
					failed++
					fmt.Fprintf(c.App.ErrWriter, "FAIL %v\n", err)
					continue
				}
				for _, s := range specs {
					fmt.Fprintf(c.App.Writer, "ok   %s %s@%d\n", path, s.Name, s.Version)
				}
			}
			if failed > 0 {
				return cli.Exit(fmt.Sprintf("%d file(s) failed validation", failed), 1)
			}
			return nil
		},
	}
}

func newSeedSpecsCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed-specs",
		Usage: "store the built in and configured gamespecs",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			obs, err := initObservability(c.Context, cfg)
			if err != nil {
				return err
			}

			db := app.NewDB(cfg.Postgres.DSN)
			defer db.Close()

			m, err := gamespec.NewGameSpecModule(c.Context, cfg, obs, db)
			if err != nil {
				return err
			}
			return m.Seed(c.Context)
		},
	}
}
