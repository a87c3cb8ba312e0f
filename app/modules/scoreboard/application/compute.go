package scoreboardservice

import (
	"context"
	"encoding/json"
	"fmt"

	scoreboarddomain "github.com/Black-And-White-Club/golf-scoring/app/modules/scoreboard/domain"
	scoringevents "github.com/Black-And-White-Club/golf-scoring/app/shared/events/scoring"
	"github.com/Black-And-White-Club/golf-scoring/app/shared/handlerwrapper"
	"github.com/Black-And-White-Club/golf-scoring/app/shared/observability/attr"
	"github.com/Black-And-White-Club/golf-scoring/app/shared/results"
	golftypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/golf"
	sharedtypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/shared"
)

type computeResult = results.OperationResult[ScoreboardComputedPayload, ScoreboardFailedPayload]

func failure(gameID sharedtypes.GameID, code string, err error) computeResult {
	return results.FailureResult[ScoreboardComputedPayload](ScoreboardFailedPayload{
		GameID: gameID,
		Code:   code,
		Reason: err.Error(),
	})
}

// ComputeScoreboard computes the current scoreboard of a stored game.
func (s *ScoreboardService) ComputeScoreboard(ctx context.Context, gameID sharedtypes.GameID) (computeResult, error) {
	return withTelemetry(s, ctx, "ComputeScoreboard", gameID, func(ctx context.Context) (computeResult, error) {
		res, _, err := s.computeGame(ctx, gameID)
		return res, err
	})
}

// ComputeSnapshot computes a scoreboard from a snapshot that is not stored.
// Nothing is cached.
func (s *ScoreboardService) ComputeSnapshot(ctx context.Context, in scoreboarddomain.Input) (computeResult, error) {
	return withTelemetry(s, ctx, "ComputeSnapshot", in.Game.ID, func(ctx context.Context) (computeResult, error) {
		hash, err := InputHash(in)
		if err != nil {
			return computeResult{}, err
		}
		return s.evaluate(ctx, in, hash)
	})
}

// Recompute computes a game's scoreboard and enqueues postings for rounds
// that became eligible.
func (s *ScoreboardService) Recompute(ctx context.Context, gameID sharedtypes.GameID) (computeResult, error) {
	return withTelemetry(s, ctx, "Recompute", gameID, func(ctx context.Context) (computeResult, error) {
		res, in, err := s.computeGame(ctx, gameID)
		if err != nil || !res.IsSuccess() || s.postings == nil {
			return res, err
		}
		n, err := s.postings.EnqueueEligible(ctx, res.Success.Scoreboard, in)
		if err != nil {
			return computeResult{}, fmt.Errorf("failed to enqueue postings: %w", err)
		}
		res.Success.Enqueued = n
		return res, nil
	})
}

// RecomputeAndPublish runs Recompute and publishes the outcome.
func (s *ScoreboardService) RecomputeAndPublish(ctx context.Context, gameID sharedtypes.GameID) (computeResult, error) {
	res, err := s.Recompute(ctx, gameID)
	if err != nil || s.publisher == nil {
		return res, err
	}
	for _, out := range OutcomeEvents(res) {
		msg, err := handlerwrapper.NewMessage(ctx, out.Topic, out.Payload)
		if err != nil {
			return res, err
		}
		if err := s.publisher.Publish(out.Topic, msg); err != nil {
			return res, fmt.Errorf("failed to publish %s: %w", out.Topic, err)
		}
	}
	return res, nil
}

// OutcomeEvents maps a compute result to the events announcing it.
func OutcomeEvents(res computeResult) []handlerwrapper.Result {
	switch {
	case res.IsSuccess():
		p := res.Success
		return []handlerwrapper.Result{{
			Topic: scoringevents.ScoreboardUpdatedV1,
			Payload: &scoringevents.ScoreboardUpdatedPayloadV1{
				GameID:    p.GameID,
				InputHash: p.InputHash,
				Thru:      p.Scoreboard.Meta.Thru,
				Enqueued:  p.Enqueued,
			},
		}}
	case res.IsFailure():
		return []handlerwrapper.Result{{
			Topic: scoringevents.ScoreboardComputeFailedV1,
			Payload: &scoringevents.ScoreboardComputeFailedPayloadV1{
				GameID: res.Failure.GameID,
				Reason: res.Failure.Code + ": " + res.Failure.Reason,
			},
		}}
	}
	return nil
}

// StorePosting records the handicap authority's answer on a round.
func (s *ScoreboardService) StorePosting(ctx context.Context, roundID sharedtypes.RoundID, posting golftypes.Posting) error {
	if err := s.repo.UpdatePosting(ctx, nil, roundID, posting); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Posting stored",
		attr.RoundID("round_id", roundID),
		attr.Bool("success", posting.Success),
		attr.ExtractCorrelationID(ctx),
	)
	return nil
}

// computeGame loads the snapshot and evaluates it, answering from the cache
// when the input hash was seen before.
func (s *ScoreboardService) computeGame(ctx context.Context, gameID sharedtypes.GameID) (computeResult, scoreboarddomain.Input, error) {
	in, err := s.LoadSnapshot(ctx, gameID)
	if err != nil {
		if code, ok := classify(err); ok {
			return failure(gameID, code, err), in, nil
		}
		return computeResult{}, in, err
	}
	hash, err := InputHash(in)
	if err != nil {
		return computeResult{}, in, err
	}

	body, hit, err := s.cache.Get(ctx, gameID, hash)
	if err != nil {
		s.logger.WarnContext(ctx, "Scoreboard cache read failed",
			attr.GameID("game_id", gameID),
			attr.Error(err),
		)
	}
	if hit {
		var sb scoreboarddomain.Scoreboard
		if err := json.Unmarshal(body, &sb); err == nil {
			return results.SuccessResult[ScoreboardComputedPayload, ScoreboardFailedPayload](ScoreboardComputedPayload{
				GameID:     gameID,
				InputHash:  hash,
				Scoreboard: sb,
				Cached:     true,
			}), in, nil
		}
	}

	res, err := s.evaluate(ctx, in, hash)
	if err != nil || !res.IsSuccess() {
		return res, in, err
	}
	if body, err := json.Marshal(res.Success.Scoreboard); err == nil {
		if err := s.cache.Set(ctx, gameID, hash, body); err != nil {
			s.logger.WarnContext(ctx, "Scoreboard cache write failed",
				attr.GameID("game_id", gameID),
				attr.Error(err),
			)
		}
	}
	return res, in, nil
}

func (s *ScoreboardService) evaluate(ctx context.Context, in scoreboarddomain.Input, hash string) (computeResult, error) {
	sb, err := scoreboarddomain.Compute(in)
	if err != nil {
		if code, ok := classify(err); ok {
			return failure(in.Game.ID, code, err), nil
		}
		return computeResult{}, err
	}
	s.recordMetrics(ctx, sb)
	return results.SuccessResult[ScoreboardComputedPayload, ScoreboardFailedPayload](ScoreboardComputedPayload{
		GameID:     in.Game.ID,
		InputHash:  hash,
		Scoreboard: sb,
	}), nil
}

func (s *ScoreboardService) recordMetrics(ctx context.Context, sb scoreboarddomain.Scoreboard) {
	s.metrics.RecordScoreboardComputed(ctx, len(sb.Meta.HolesInPlay), len(sb.Cumulative.Players))
	for _, h := range sb.Holes {
		for _, p := range h.Players {
			for _, j := range p.Junk {
				s.metrics.RecordJunkAwarded(ctx, j.Name, j.Counted)
			}
		}
		for _, t := range h.Teams {
			for _, j := range t.Junk {
				s.metrics.RecordJunkAwarded(ctx, j.Name, j.Counted)
			}
		}
	}
}
