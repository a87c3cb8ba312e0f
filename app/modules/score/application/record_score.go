package scoreservice

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	scoredomain "github.com/Black-And-White-Club/golf-scoring/app/modules/score/domain"
	scoringevents "github.com/Black-And-White-Club/golf-scoring/app/shared/events/scoring"
	"github.com/Black-And-White-Club/golf-scoring/app/shared/handlerwrapper"
	"github.com/Black-And-White-Club/golf-scoring/app/shared/observability/attr"
	"github.com/Black-And-White-Club/golf-scoring/app/shared/results"
	golftypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/golf"
	sharedtypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/shared"
	"github.com/uptrace/bun"
)

var keyPattern = regexp.MustCompile(`^[a-z][a-z0-9_]{0,63}$`)

// RecordScore validates and appends one write, then publishes it.
func (s *ScoreService) RecordScore(ctx context.Context, cmd RecordScoreCommand) (results.OperationResult[ScoreRecordedPayload, ScoreRecordFailedPayload], error) {
	return withTelemetry(s, ctx, "RecordScore", cmd.GameID, func(ctx context.Context) (results.OperationResult[ScoreRecordedPayload, ScoreRecordFailedPayload], error) {
		entries, failure := s.prepare([]RecordScoreCommand{cmd})
		if failure != nil {
			s.publishFailure(ctx, *failure)
			return results.FailureResult[ScoreRecordedPayload](*failure), nil
		}

		stored, err := runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[[]scoredomain.Entry, ScoreRecordFailedPayload], error) {
			return s.append(ctx, db, entries)
		})
		if err != nil {
			return results.OperationResult[ScoreRecordedPayload, ScoreRecordFailedPayload]{}, err
		}
		s.publishRecorded(ctx, *stored.Success)
		return results.SuccessResult[ScoreRecordedPayload, ScoreRecordFailedPayload](ScoreRecordedPayload{Entry: (*stored.Success)[0]}), nil
	})
}

// RecordScores validates and appends a batch of writes for one game. The
// batch is all or nothing.
func (s *ScoreService) RecordScores(ctx context.Context, gameID sharedtypes.GameID, cmds []RecordScoreCommand) (results.OperationResult[ScoresRecordedPayload, ScoreRecordFailedPayload], error) {
	return withTelemetry(s, ctx, "RecordScores", gameID, func(ctx context.Context) (results.OperationResult[ScoresRecordedPayload, ScoreRecordFailedPayload], error) {
		if len(cmds) == 0 {
			return results.SuccessResult[ScoresRecordedPayload, ScoreRecordFailedPayload](ScoresRecordedPayload{GameID: gameID}), nil
		}
		for i := range cmds {
			if cmds[i].GameID == "" {
				cmds[i].GameID = gameID
			}
			if cmds[i].GameID != gameID {
				f := ScoreRecordFailedPayload{GameID: gameID, RoundID: cmds[i].RoundID, Reason: fmt.Sprintf("write for game %s in a batch for %s", cmds[i].GameID, gameID)}
				s.publishFailure(ctx, f)
				return results.FailureResult[ScoresRecordedPayload](f), nil
			}
		}
		entries, failure := s.prepare(cmds)
		if failure != nil {
			s.publishFailure(ctx, *failure)
			return results.FailureResult[ScoresRecordedPayload](*failure), nil
		}

		stored, err := runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[[]scoredomain.Entry, ScoreRecordFailedPayload], error) {
			return s.append(ctx, db, entries)
		})
		if err != nil {
			return results.OperationResult[ScoresRecordedPayload, ScoreRecordFailedPayload]{}, err
		}
		s.publishRecorded(ctx, *stored.Success)
		return results.SuccessResult[ScoresRecordedPayload, ScoreRecordFailedPayload](ScoresRecordedPayload{GameID: gameID, Entries: *stored.Success}), nil
	})
}

// prepare validates commands and converts them to entries. The first
// invalid command fails the batch.
func (s *ScoreService) prepare(cmds []RecordScoreCommand) ([]scoredomain.Entry, *ScoreRecordFailedPayload) {
	entries := make([]scoredomain.Entry, 0, len(cmds))
	for _, cmd := range cmds {
		cmd.Hole = strings.TrimSpace(cmd.Hole)
		cmd.Key = strings.TrimSpace(cmd.Key)
		if err := validate(cmd); err != nil {
			return nil, &ScoreRecordFailedPayload{
				GameID:  cmd.GameID,
				RoundID: cmd.RoundID,
				Hole:    cmd.Hole,
				Key:     cmd.Key,
				Reason:  err.Error(),
			}
		}
		ts := cmd.TS
		if ts.IsZero() {
			ts = s.now()
		}
		value := cmd.Value
		if cmd.Key == golftypes.KeyGross {
			g, _ := scoredomain.ParseGross(value)
			value = strconv.Itoa(g)
		}
		entries = append(entries, scoredomain.Entry{
			GameID:   cmd.GameID,
			RoundID:  cmd.RoundID,
			PlayerID: cmd.PlayerID,
			Hole:     cmd.Hole,
			Key:      cmd.Key,
			Value:    value,
			TS:       ts.UTC(),
			Writer:   cmd.Writer,
		})
	}
	return entries, nil
}

func validate(cmd RecordScoreCommand) error {
	if cmd.GameID == "" || cmd.RoundID == "" || cmd.PlayerID == "" {
		return ErrMissingIdentity
	}
	n, err := strconv.Atoi(cmd.Hole)
	if err != nil || !golftypes.All18.Contains(n) || strconv.Itoa(n) != cmd.Hole {
		return fmt.Errorf("%w: %q", ErrInvalidHole, cmd.Hole)
	}
	if !keyPattern.MatchString(cmd.Key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, cmd.Key)
	}
	if cmd.Key == golftypes.KeyGross {
		if _, ok := scoredomain.ParseGross(cmd.Value); !ok {
			return fmt.Errorf("%w: gross %q", ErrInvalidScore, cmd.Value)
		}
	}
	return nil
}

func (s *ScoreService) append(ctx context.Context, db bun.IDB, entries []scoredomain.Entry) (results.OperationResult[[]scoredomain.Entry, ScoreRecordFailedPayload], error) {
	stored, err := s.repo.AppendEntries(ctx, db, entries)
	if err != nil {
		return results.OperationResult[[]scoredomain.Entry, ScoreRecordFailedPayload]{}, err
	}
	return results.SuccessResult[[]scoredomain.Entry, ScoreRecordFailedPayload](stored), nil
}

// publishRecorded emits one event per stored entry. Publishing happens after
// the commit; a failed publish is logged and the entries stay stored.
func (s *ScoreService) publishRecorded(ctx context.Context, entries []scoredomain.Entry) {
	if s.publisher == nil {
		return
	}
	for _, e := range entries {
		msg, err := handlerwrapper.NewMessage(ctx, scoringevents.ScoreRecordedV1, scoringevents.ScoreRecordedPayloadV1{
			GameID:   e.GameID,
			RoundID:  e.RoundID,
			PlayerID: e.PlayerID,
			Hole:     e.Hole,
			Key:      e.Key,
			Value:    e.Value,
			Writer:   e.Writer,
			TS:       e.TS,
			Seq:      e.Seq,
		})
		if err == nil {
			err = s.publisher.Publish(scoringevents.ScoreRecordedV1, msg)
		}
		if err != nil {
			s.logger.ErrorContext(ctx, "Failed to publish score recorded event",
				attr.RoundID("round_id", e.RoundID),
				attr.Int64("seq", e.Seq),
				attr.ExtractCorrelationID(ctx),
				attr.Error(err),
			)
		}
	}
}

func (s *ScoreService) publishFailure(ctx context.Context, f ScoreRecordFailedPayload) {
	if s.publisher == nil {
		return
	}
	msg, err := handlerwrapper.NewMessage(ctx, scoringevents.ScoreRecordFailedV1, scoringevents.ScoreRecordFailedPayloadV1{
		GameID:  f.GameID,
		RoundID: f.RoundID,
		Hole:    f.Hole,
		Key:     f.Key,
		Reason:  f.Reason,
	})
	if err == nil {
		err = s.publisher.Publish(scoringevents.ScoreRecordFailedV1, msg)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish score record failed event",
			attr.GameID("game_id", f.GameID),
			attr.ExtractCorrelationID(ctx),
			attr.Error(err),
		)
	}
}
