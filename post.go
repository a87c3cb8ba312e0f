package main

import (
	"fmt"
	"time"

	"github.com/Black-And-White-Club/golf-scoring/app"
	"github.com/Black-And-White-Club/golf-scoring/app/modules/gamespec"
	"github.com/Black-And-White-Club/golf-scoring/app/modules/handicap"
	"github.com/Black-And-White-Club/golf-scoring/app/modules/handicap/infrastructure/playedat"
	scoreservice "github.com/Black-And-White-Club/golf-scoring/app/modules/score/application"
	scoredb "github.com/Black-And-White-Club/golf-scoring/app/modules/score/infrastructure/repositories"
	scoreboardservice "github.com/Black-And-White-Club/golf-scoring/app/modules/scoreboard/application"
	scoreboarddb "github.com/Black-And-White-Club/golf-scoring/app/modules/scoreboard/infrastructure/repositories"
	sharedtypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/shared"
	"github.com/urfave/cli/v2"
)

func newPostCommand() *cli.Command {
	return &cli.Command{
		Name:  "post",
		Usage: "enqueue one round for handicap posting",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "game", Required: true, Usage: "game id"},
			&cli.StringFlag{Name: "round", Required: true, Usage: "round id"},
			&cli.StringFlag{Name: "played", Usage: `when the round was played, e.g. "yesterday 2pm"; defaults to the game start`},
			&cli.StringFlag{Name: "tz", Value: "UTC", Usage: "time zone of the played date"},
		},
		Action: func(c *cli.Context) error {
			loc, err := time.LoadLocation(c.String("tz"))
			if err != nil {
				return cli.Exit(fmt.Sprintf("unknown time zone %q", c.String("tz")), 2)
			}
			played, err := playedat.NewParser().Parse(c.String("played"), loc, time.Now())
			if err != nil {
				return cli.Exit(err.Error(), 2)
			}

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

			specs, err := gamespec.NewGameSpecModule(c.Context, cfg, obs, db)
			if err != nil {
				return err
			}
			scores := scoreservice.NewScoreService(scoredb.NewRepository(db), nil, nil, obs.Logger, obs.Metrics, obs.Tracer, db)
			boards := scoreboardservice.NewScoreboardService(
				scoreboarddb.NewRepository(db), specs.GameSpecService, scores, nil, nil, nil,
				obs.Logger, obs.Metrics, obs.Tracer,
			)

			posting, err := handicap.NewHandicapModule(c.Context, cfg, obs, nil, false)
			if err != nil {
				return err
			}
			defer posting.Close(c.Context)

			gameID := sharedtypes.GameID(c.String("game"))
			in, err := boards.LoadSnapshot(c.Context, gameID)
			if err != nil {
				return err
			}
			res, err := boards.ComputeSnapshot(c.Context, in)
			if err != nil {
				return err
			}
			if res.IsFailure() {
				return cli.Exit(fmt.Sprintf("%s: %s", res.Failure.Code, res.Failure.Reason), 1)
			}

			out, err := posting.HandicapService.EnqueueRound(c.Context, res.Success.Scoreboard, in, sharedtypes.RoundID(c.String("round")), played)
			if err != nil {
				return err
			}
			if out.IsFailure() {
				return cli.Exit(out.Failure.Reason, 1)
			}
			if out.Success.Duplicate {
				fmt.Fprintf(c.App.Writer, "round %s is already queued\n", out.Success.RoundID)
				return nil
			}
			fmt.Fprintf(c.App.Writer, "queued round %s: adjusted gross %d, differential %.1f\n",
				out.Success.RoundID, out.Success.Candidate.AdjustedGrossScore, out.Success.Candidate.Differential)
			return nil
		},
	}
}
