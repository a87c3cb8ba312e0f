package scoreservice

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/Black-And-White-Club/golf-scoring/app/modules/score/application/parsers"
	scoredomain "github.com/Black-And-White-Club/golf-scoring/app/modules/score/domain"
	"github.com/Black-And-White-Club/golf-scoring/app/shared/observability/attr"
	"github.com/Black-And-White-Club/golf-scoring/app/shared/results"
	golftypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/golf"
	sharedtypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/shared"
	"github.com/uptrace/bun"
)

// ImportScorecard parses a CSV or XLSX scorecard and records every gross
// score on it with writer "import". The batch is all or nothing.
func (s *ScoreService) ImportScorecard(ctx context.Context, gameID sharedtypes.GameID, filename string, data []byte) (results.OperationResult[ScorecardImportedPayload, ScoreRecordFailedPayload], error) {
	return withTelemetry(s, ctx, "ImportScorecard", gameID, func(ctx context.Context) (results.OperationResult[ScorecardImportedPayload, ScoreRecordFailedPayload], error) {
		fail := func(reason string) (results.OperationResult[ScorecardImportedPayload, ScoreRecordFailedPayload], error) {
			f := ScoreRecordFailedPayload{GameID: gameID, Reason: reason}
			s.publishFailure(ctx, f)
			return results.FailureResult[ScorecardImportedPayload](f), nil
		}

		parser, err := s.parsers.GetParser(filename)
		if err != nil {
			return fail(err.Error())
		}
		card, err := parser.Parse(data)
		if err != nil {
			return fail(err.Error())
		}

		cmds, err := s.scorecardCommands(ctx, gameID, card)
		if err != nil {
			if errors.Is(err, ErrUnknownRound) {
				return fail(err.Error())
			}
			return results.OperationResult[ScorecardImportedPayload, ScoreRecordFailedPayload]{}, err
		}
		entries, failure := s.prepare(cmds)
		if failure != nil {
			s.publishFailure(ctx, *failure)
			return results.FailureResult[ScorecardImportedPayload](*failure), nil
		}

		stored, err := runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[[]scoredomain.Entry, ScoreRecordFailedPayload], error) {
			return s.append(ctx, db, entries)
		})
		if err != nil {
			return results.OperationResult[ScorecardImportedPayload, ScoreRecordFailedPayload]{}, err
		}
		s.publishRecorded(ctx, *stored.Success)

		out := ScorecardImportedPayload{GameID: gameID, Entries: len(*stored.Success)}
		for _, e := range *stored.Success {
			if !slices.Contains(out.Rounds, e.RoundID) {
				out.Rounds = append(out.Rounds, e.RoundID)
			}
		}
		s.logger.InfoContext(ctx, "Scorecard imported",
			attr.GameID("game_id", gameID),
			attr.String("filename", filename),
			attr.Int("entries", out.Entries),
			attr.Int("rounds", len(out.Rounds)),
		)
		return results.SuccessResult[ScorecardImportedPayload, ScoreRecordFailedPayload](out), nil
	})
}

// scorecardCommands turns card rows into gross writes in hole order.
func (s *ScoreService) scorecardCommands(ctx context.Context, gameID sharedtypes.GameID, card *parsers.Scorecard) ([]RecordScoreCommand, error) {
	ts := s.now()
	var cmds []RecordScoreCommand
	for _, row := range card.Rows {
		playerID := sharedtypes.PlayerID(row.PlayerID)
		roundID := sharedtypes.RoundID(row.RoundID)
		if roundID == "" {
			if s.rounds == nil {
				return nil, fmt.Errorf("%w: %s has no round column", ErrUnknownRound, playerID)
			}
			var err error
			roundID, err = s.rounds.RoundFor(ctx, gameID, playerID)
			if err != nil {
				return nil, err
			}
		}
		for _, hole := range card.Holes {
			gross, ok := row.Gross[hole]
			if !ok {
				continue
			}
			cmds = append(cmds, RecordScoreCommand{
				GameID:   gameID,
				RoundID:  roundID,
				PlayerID: playerID,
				Hole:     hole,
				Key:      golftypes.KeyGross,
				Value:    fmt.Sprint(gross),
				Writer:   scoredomain.WriterImport,
				TS:       ts,
			})
		}
	}
	return cmds, nil
}
