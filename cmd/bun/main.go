// Command bun manages the Postgres schema of the scoring service: the Bun
// migrations of every module and the River tables of the posting queue.
package main

import (
	"fmt"
	"log"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/Black-And-White-Club/golf-scoring/app"
	"github.com/Black-And-White-Club/golf-scoring/config"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v2"
)

func main() {
	var db *bun.DB
	var dsn string

	cliApp := &cli.App{
		Name:  "bun",
		Usage: "schema migrations for golf-scoring",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: "config.yaml", EnvVars: []string{"CONFIG_FILE"}},
		},
		Before: func(c *cli.Context) error {
			cfg, err := config.LoadConfig(c.String("config"))
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			dsn = cfg.Postgres.DSN
			db = app.NewDB(dsn)
			return nil
		},
		After: func(*cli.Context) error {
			if db == nil {
				return nil
			}
			return db.Close()
		},
		Commands: []*cli.Command{
			{
				Name:        "migrate",
				Usage:       "module migrations",
				Subcommands: migrateCommands(func() map[string]*migrate.Migrator { return app.Migrators(db) }),
			},
			{
				Name:  "queue",
				Usage: "posting queue migrations",
				Subcommands: []*cli.Command{{
					Name:  "migrate",
					Usage: "bring the River schema up to date",
					Action: func(c *cli.Context) error {
						if err := app.MigrateQueue(c.Context, dsn); err != nil {
							return err
						}
						fmt.Println("posting queue: up to date")
						return nil
					},
				}},
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// forEach calls fn for every module in name order, or in reverse order for
// rollbacks. It stops at the first error.
func forEach(migrators map[string]*migrate.Migrator, reverse bool, fn func(name string, m *migrate.Migrator) error) error {
	names := make([]string, 0, len(migrators))
	for name := range migrators {
		names = append(names, name)
	}
	slices.Sort(names)
	if reverse {
		slices.Reverse(names)
	}
	for _, name := range names {
		if err := fn(name, migrators[name]); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// moduleMigrator returns the migrator named by the first argument and the
// migration name joined from the rest.
func moduleMigrator(c *cli.Context, migrators map[string]*migrate.Migrator) (string, *migrate.Migrator, string, error) {
	module := c.Args().First()
	m, ok := migrators[module]
	if !ok {
		return "", nil, "", fmt.Errorf("unknown module %q, want one of %v", module, slices.Sorted(maps.Keys(migrators)))
	}
	if c.Args().Len() < 2 {
		return "", nil, "", fmt.Errorf("usage: %s <module> <name...>", c.Command.Name)
	}
	return module, m, strings.Join(c.Args().Tail(), "_"), nil
}

func migrateCommands(migrators func() map[string]*migrate.Migrator) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "init",
			Usage: "create the migration tables of every module",
			Action: func(c *cli.Context) error {
				return forEach(migrators(), false, func(name string, m *migrate.Migrator) error {
					fmt.Printf("%s: init\n", name)
					return m.Init(c.Context)
				})
			},
		},
		{
			Name:  "migrate",
			Usage: "apply pending migrations",
			Action: func(c *cli.Context) error {
				return forEach(migrators(), false, func(name string, m *migrate.Migrator) error {
					group, err := m.Migrate(c.Context)
					if err != nil {
						return err
					}
					if group.IsZero() {
						fmt.Printf("%s: nothing to migrate\n", name)
						return nil
					}
					fmt.Printf("%s: migrated to %s\n", name, group)
					return nil
				})
			},
		},
		{
			Name:  "rollback",
			Usage: "roll back the last migration group of every module",
			Action: func(c *cli.Context) error {
				return forEach(migrators(), true, func(name string, m *migrate.Migrator) error {
					group, err := m.Rollback(c.Context)
					if err != nil {
						return err
					}
					if group.IsZero() {
						fmt.Printf("%s: nothing to roll back\n", name)
						return nil
					}
					fmt.Printf("%s: rolled back %s\n", name, group)
					return nil
				})
			},
		},
		{
			Name:      "status",
			Usage:     "print applied and pending migrations",
			ArgsUsage: " ",
			Action: func(c *cli.Context) error {
				return forEach(migrators(), false, func(name string, m *migrate.Migrator) error {
					ms, err := m.MigrationsWithStatus(c.Context)
					if err != nil {
						return err
					}
					fmt.Printf("%s:\n  applied:   %s\n  unapplied: %s\n", name, ms.Applied(), ms.Unapplied())
					return nil
				})
			},
		},
		{
			Name:      "create_go",
			Usage:     "create a Go migration",
			ArgsUsage: "<module> <name...>",
			Action: func(c *cli.Context) error {
				module, m, name, err := moduleMigrator(c, migrators())
				if err != nil {
					return err
				}
				mf, err := m.CreateGoMigration(c.Context, name)
				if err != nil {
					return err
				}
				fmt.Printf("%s: created %s (%s)\n", module, mf.Name, mf.Path)
				return nil
			},
		},
		{
			Name:      "create_sql",
			Usage:     "create up and down SQL migrations",
			ArgsUsage: "<module> <name...>",
			Action: func(c *cli.Context) error {
				module, m, name, err := moduleMigrator(c, migrators())
				if err != nil {
					return err
				}
				files, err := m.CreateSQLMigrations(c.Context, name)
				if err != nil {
					return err
				}
				for _, mf := range files {
					fmt.Printf("%s: created %s (%s)\n", module, mf.Name, mf.Path)
				}
				return nil
			},
		},
	}
}
