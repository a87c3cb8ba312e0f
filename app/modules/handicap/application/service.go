// Package handicapservice hands finished rounds to the posting queue.
package handicapservice

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	handicapdomain "github.com/Black-And-White-Club/golf-scoring/app/modules/handicap/domain"
	handicapqueue "github.com/Black-And-White-Club/golf-scoring/app/modules/handicap/infrastructure/queue"
	scoreboarddomain "github.com/Black-And-White-Club/golf-scoring/app/modules/scoreboard/domain"
	"github.com/Black-And-White-Club/golf-scoring/app/shared/observability/attr"
	scoringmetrics "github.com/Black-And-White-Club/golf-scoring/app/shared/observability/metrics"
	"github.com/Black-And-White-Club/golf-scoring/app/shared/results"
	golftypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/golf"
	sharedtypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/shared"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "handicap"

// Queue inserts posting jobs.
type Queue interface {
	Enqueue(ctx context.Context, job handicapqueue.PostRoundJob) (bool, error)
}

// Service defines the posting handoff operations.
type Service interface {
	// EnqueueEligible enqueues every round of the scoreboard that is
	// complete and not yet posted successfully. It returns the number of
	// jobs inserted.
	EnqueueEligible(ctx context.Context, sb scoreboarddomain.Scoreboard, in scoreboarddomain.Input) (int, error)

	// EnqueueRound enqueues one round regardless of earlier postings.
	EnqueueRound(ctx context.Context, sb scoreboarddomain.Scoreboard, in scoreboarddomain.Input, roundID sharedtypes.RoundID, playedAt time.Time) (results.OperationResult[RoundEnqueuedPayload, RoundEnqueueFailedPayload], error)
}

// RoundEnqueuedPayload reports an enqueued round.
type RoundEnqueuedPayload struct {
	RoundID   sharedtypes.RoundID      `json:"round_id"`
	Candidate handicapdomain.Candidate `json:"candidate"`
	Duplicate bool                     `json:"duplicate"`
}

// RoundEnqueueFailedPayload explains why a round cannot be posted.
type RoundEnqueueFailedPayload struct {
	RoundID sharedtypes.RoundID `json:"round_id"`
	Reason  string              `json:"reason"`
}

// HandicapService implements Service.
type HandicapService struct {
	queue   Queue
	logger  *slog.Logger
	metrics scoringmetrics.ScoringMetrics
	tracer  trace.Tracer
	now     func() time.Time
}

var _ Service = (*HandicapService)(nil)

// NewHandicapService creates a new HandicapService.
func NewHandicapService(queue Queue, logger *slog.Logger, metrics scoringmetrics.ScoringMetrics, tracer trace.Tracer) *HandicapService {
	return &HandicapService{
		queue:   queue,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
		now:     time.Now,
	}
}

// Candidates returns the posting candidate of every complete round in the
// scoreboard, ordered by round id.
func Candidates(sb scoreboarddomain.Scoreboard, in scoreboarddomain.Input) []handicapdomain.Candidate {
	var out []handicapdomain.Candidate
	for _, r := range in.Rounds {
		if c, ok := candidateFor(sb, in, r); ok {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RoundID < out[j].RoundID })
	return out
}

func candidateFor(sb scoreboarddomain.Scoreboard, in scoreboarddomain.Input, r golftypes.Round) (handicapdomain.Candidate, bool) {
	tee, ok := in.Tees[r.TeeID]
	if !ok {
		return handicapdomain.Candidate{}, false
	}
	gross := make(map[string]int, len(sb.Holes))
	for key, hole := range sb.Holes {
		p, ok := hole.Players[r.PlayerID]
		if ok && p.Gross != nil {
			gross[key] = *p.Gross
		}
	}
	return handicapdomain.PostingCandidate(r, tee, in.Game.Scope.Holes, gross)
}

func (s *HandicapService) playedAt(in scoreboarddomain.Input) time.Time {
	if !in.Game.Start.IsZero() {
		return in.Game.Start.UTC()
	}
	return s.now().UTC()
}

// EnqueueEligible enqueues the complete, unposted rounds of a game.
func (s *HandicapService) EnqueueEligible(ctx context.Context, sb scoreboarddomain.Scoreboard, in scoreboarddomain.Input) (int, error) {
	ctx, span := s.tracer.Start(ctx, "EnqueueEligible", trace.WithAttributes(
		attribute.String("game_id", string(in.Game.ID)),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, "EnqueueEligible", serviceName)
	start := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, "EnqueueEligible", serviceName, time.Since(start))
	}()

	posted := make(map[sharedtypes.RoundID]bool, len(in.Rounds))
	for _, r := range in.Rounds {
		posted[r.ID] = r.Posting != nil && r.Posting.Success
	}

	inserted := 0
	for _, c := range Candidates(sb, in) {
		if posted[c.RoundID] {
			continue
		}
		ok, err := s.queue.Enqueue(ctx, handicapqueue.PostRoundJob{
			GameID:    in.Game.ID,
			RoundID:   c.RoundID,
			PlayedAt:  s.playedAt(in),
			Candidate: c,
		})
		if err != nil {
			span.RecordError(err)
			s.metrics.RecordOperationFailure(ctx, "EnqueueEligible", serviceName)
			s.logger.ErrorContext(ctx, "Failed to enqueue posting",
				attr.GameID("game_id", in.Game.ID),
				attr.RoundID("round_id", c.RoundID),
				attr.Error(err),
			)
			return inserted, fmt.Errorf("failed to enqueue round %s: %w", c.RoundID, err)
		}
		if ok {
			inserted++
		}
	}

	s.metrics.RecordOperationSuccess(ctx, "EnqueueEligible", serviceName)
	if inserted > 0 {
		s.logger.InfoContext(ctx, "Rounds enqueued for posting",
			attr.GameID("game_id", in.Game.ID),
			attr.Int("count", inserted),
		)
	}
	return inserted, nil
}

// EnqueueRound enqueues one round. A zero playedAt uses the game start.
func (s *HandicapService) EnqueueRound(
	ctx context.Context,
	sb scoreboarddomain.Scoreboard,
	in scoreboarddomain.Input,
	roundID sharedtypes.RoundID,
	playedAt time.Time,
) (results.OperationResult[RoundEnqueuedPayload, RoundEnqueueFailedPayload], error) {
	ctx, span := s.tracer.Start(ctx, "EnqueueRound", trace.WithAttributes(
		attribute.String("round_id", string(roundID)),
	))
	defer span.End()

	fail := func(reason string) (results.OperationResult[RoundEnqueuedPayload, RoundEnqueueFailedPayload], error) {
		s.logger.WarnContext(ctx, "Round cannot be posted",
			attr.RoundID("round_id", roundID),
			attr.String("reason", reason),
		)
		return results.FailureResult[RoundEnqueuedPayload](RoundEnqueueFailedPayload{RoundID: roundID, Reason: reason}), nil
	}

	var round *golftypes.Round
	for i := range in.Rounds {
		if in.Rounds[i].ID == roundID {
			round = &in.Rounds[i]
			break
		}
	}
	if round == nil {
		return fail("round is not part of the game")
	}
	c, ok := candidateFor(sb, in, *round)
	if !ok {
		var missing []string
		for _, n := range scopeOf(in).Numbers() {
			key := fmt.Sprint(n)
			if h := sb.Holes[key]; h == nil || h.Players[round.PlayerID] == nil || h.Players[round.PlayerID].Gross == nil {
				missing = append(missing, key)
			}
		}
		if len(missing) > 0 {
			return fail("holes without a gross score: " + strings.Join(missing, ","))
		}
		return fail("no course handicap or tee rating for the round")
	}

	if playedAt.IsZero() {
		playedAt = s.playedAt(in)
	}
	inserted, err := s.queue.Enqueue(ctx, handicapqueue.PostRoundJob{
		GameID:    in.Game.ID,
		RoundID:   roundID,
		PlayedAt:  playedAt.UTC(),
		Candidate: c,
	})
	if err != nil {
		span.RecordError(err)
		return results.OperationResult[RoundEnqueuedPayload, RoundEnqueueFailedPayload]{}, fmt.Errorf("failed to enqueue round %s: %w", roundID, err)
	}
	return results.SuccessResult[RoundEnqueuedPayload, RoundEnqueueFailedPayload](RoundEnqueuedPayload{
		RoundID:   roundID,
		Candidate: c,
		Duplicate: !inserted,
	}), nil
}

func scopeOf(in scoreboarddomain.Input) golftypes.HoleScope {
	if in.Game.Scope.Holes == "" {
		return golftypes.All18
	}
	return in.Game.Scope.Holes
}
