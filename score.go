package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	gamespecdomain "github.com/Black-And-White-Club/golf-scoring/app/modules/gamespec/domain"
	gamespecloader "github.com/Black-And-White-Club/golf-scoring/app/modules/gamespec/infrastructure/loader"
	scoreboardservice "github.com/Black-And-White-Club/golf-scoring/app/modules/scoreboard/application"
	scoreboarddomain "github.com/Black-And-White-Club/golf-scoring/app/modules/scoreboard/domain"
	"github.com/Black-And-White-Club/golf-scoring/app/shared/observability"
	"github.com/urfave/cli/v2"
)

func newScoreCommand() *cli.Command {
	return &cli.Command{
		Name:      "score",
		Usage:     "compute a scoreboard from a snapshot file without any service",
		ArgsUsage: "<snapshot.json>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "specs", Usage: "directory of extra gamespec YAML files"},
			&cli.StringFlag{Name: "format", Value: "json", Usage: "json, xlsx or png"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output file, stdout when empty"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("expected one snapshot file", 2)
			}
			data, err := os.ReadFile(c.Args().First())
			if err != nil {
				return fmt.Errorf("failed to read snapshot: %w", err)
			}
			var in scoreboarddomain.Input
			if err := json.Unmarshal(data, &in); err != nil {
				return fmt.Errorf("failed to decode snapshot: %w", err)
			}

			if len(in.Specs) == 0 {
				known, err := knownSpecs(c.String("specs"))
				if err != nil {
					return err
				}
				if in.Specs, err = pickSpecs(known, in); err != nil {
					return err
				}
			}

			obs := observability.NewNoop()
			svc := scoreboardservice.NewScoreboardService(nil, nil, nil, nil, nil, nil, obs.Logger, obs.Metrics, obs.Tracer)
			res, err := svc.ComputeSnapshot(c.Context, in)
			if err != nil {
				return err
			}
			if res.IsFailure() {
				return cli.Exit(fmt.Sprintf("%s: %s", res.Failure.Code, res.Failure.Reason), 1)
			}

			body, err := render(c.String("format"), res.Success.Scoreboard)
			if err != nil {
				return err
			}
			return writeOutput(c.String("out"), c.App.Writer, body)
		},
	}
}

// knownSpecs returns the built in specs plus those found in dir.
func knownSpecs(dir string) ([]gamespecdomain.GameSpec, error) {
	specs, err := gamespecloader.Builtin()
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return specs, nil
	}
	extra, err := gamespecloader.LoadDir(dir)
	if err != nil {
		return nil, err
	}
	return append(specs, extra...), nil
}

// pickSpecs resolves the game's spec references against known.
func pickSpecs(known []gamespecdomain.GameSpec, in scoreboarddomain.Input) ([]gamespecdomain.GameSpec, error) {
	out := make([]gamespecdomain.GameSpec, 0, len(in.Game.Specs))
	for _, ref := range in.Game.Specs {
		spec, ok := gamespecloader.Find(known, ref.Name, ref.Version)
		if !ok {
			return nil, cli.Exit(fmt.Sprintf("unknown gamespec %s@%d", ref.Name, ref.Version), 1)
		}
		out = append(out, spec)
	}
	return out, nil
}

func render(format string, sb scoreboarddomain.Scoreboard) ([]byte, error) {
	switch format {
	case "json":
		body, err := json.MarshalIndent(sb, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(body, '\n'), nil
	case "xlsx":
		return scoreboardservice.WriteXLSX(sb)
	case "png":
		return scoreboardservice.RenderRunningTotalChart(sb, scoreboardservice.DefaultPalette)
	default:
		return nil, cli.Exit(fmt.Sprintf("unknown format %q", format), 2)
	}
}

func writeOutput(path string, stdout io.Writer, body []byte) error {
	if path == "" {
		_, err := stdout.Write(body)
		return err
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
