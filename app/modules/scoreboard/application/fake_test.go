package scoreboardservice

import (
	"context"
	"sync"

	gamespecdomain "github.com/Black-And-White-Club/golf-scoring/app/modules/gamespec/domain"
	scoredomain "github.com/Black-And-White-Club/golf-scoring/app/modules/score/domain"
	scoreboarddomain "github.com/Black-And-White-Club/golf-scoring/app/modules/scoreboard/domain"
	scoreboardcache "github.com/Black-And-White-Club/golf-scoring/app/modules/scoreboard/infrastructure/cache"
	scoreboarddb "github.com/Black-And-White-Club/golf-scoring/app/modules/scoreboard/infrastructure/repositories"
	golftypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/golf"
	sharedtypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/shared"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Scoreboard Repo
// ------------------------

// FakeScoreboardRepo serves the documents it holds unless a Func overrides
// it.
type FakeScoreboardRepo struct {
	trace    []string
	games    map[sharedtypes.GameID]golftypes.Game
	rounds   []golftypes.Round
	tees     map[sharedtypes.TeeID]golftypes.Tee
	postings map[sharedtypes.RoundID]golftypes.Posting

	GetGameFunc       func(ctx context.Context, db bun.IDB, gameID sharedtypes.GameID) (golftypes.Game, error)
	UpdatePostingFunc func(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID, posting golftypes.Posting) error
}

func NewFakeScoreboardRepo() *FakeScoreboardRepo {
	return &FakeScoreboardRepo{
		trace:    []string{},
		games:    map[sharedtypes.GameID]golftypes.Game{},
		tees:     map[sharedtypes.TeeID]golftypes.Tee{},
		postings: map[sharedtypes.RoundID]golftypes.Posting{},
	}
}

func (f *FakeScoreboardRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeScoreboardRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeScoreboardRepo) GetGame(ctx context.Context, db bun.IDB, gameID sharedtypes.GameID) (golftypes.Game, error) {
	f.record("GetGame")
	if f.GetGameFunc != nil {
		return f.GetGameFunc(ctx, db, gameID)
	}
	g, ok := f.games[gameID]
	if !ok {
		return golftypes.Game{}, scoreboarddb.ErrNotFound
	}
	return g, nil
}

func (f *FakeScoreboardRepo) SaveGame(ctx context.Context, db bun.IDB, game golftypes.Game) error {
	f.record("SaveGame")
	f.games[game.ID] = game
	return nil
}

func (f *FakeScoreboardRepo) RoundsForGame(ctx context.Context, db bun.IDB, gameID sharedtypes.GameID) ([]golftypes.Round, error) {
	f.record("RoundsForGame")
	var out []golftypes.Round
	for _, r := range f.rounds {
		if r.GameID == gameID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *FakeScoreboardRepo) RoundFor(ctx context.Context, db bun.IDB, gameID sharedtypes.GameID, playerID sharedtypes.PlayerID) (sharedtypes.RoundID, error) {
	f.record("RoundFor")
	for _, r := range f.rounds {
		if r.GameID == gameID && r.PlayerID == playerID {
			return r.ID, nil
		}
	}
	return "", scoreboarddb.ErrNotFound
}

func (f *FakeScoreboardRepo) SaveRound(ctx context.Context, db bun.IDB, round golftypes.Round) error {
	f.record("SaveRound")
	round.Scores = nil
	f.rounds = append(f.rounds, round)
	return nil
}

func (f *FakeScoreboardRepo) UpdatePosting(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID, posting golftypes.Posting) error {
	f.record("UpdatePosting")
	if f.UpdatePostingFunc != nil {
		return f.UpdatePostingFunc(ctx, db, roundID, posting)
	}
	f.postings[roundID] = posting
	return nil
}

func (f *FakeScoreboardRepo) TeesByID(ctx context.Context, db bun.IDB, ids []sharedtypes.TeeID) (map[sharedtypes.TeeID]golftypes.Tee, error) {
	f.record("TeesByID")
	out := make(map[sharedtypes.TeeID]golftypes.Tee, len(ids))
	for _, id := range ids {
		if t, ok := f.tees[id]; ok {
			out[id] = t
		}
	}
	return out, nil
}

func (f *FakeScoreboardRepo) SaveTee(ctx context.Context, db bun.IDB, tee golftypes.Tee) error {
	f.record("SaveTee")
	f.tees[tee.ID] = tee
	return nil
}

// ------------------------
// Fake Collaborators
// ------------------------

// FakeSpecResolver answers from a fixed slice.
type FakeSpecResolver struct {
	Specs       []gamespecdomain.GameSpec
	ResolveFunc func(ctx context.Context, refs []golftypes.SpecRef) ([]gamespecdomain.GameSpec, error)
}

func (f *FakeSpecResolver) Resolve(ctx context.Context, refs []golftypes.SpecRef) ([]gamespecdomain.GameSpec, error) {
	if f.ResolveFunc != nil {
		return f.ResolveFunc(ctx, refs)
	}
	return f.Specs, nil
}

// FakeScoreLogs folds a fixed entry list.
type FakeScoreLogs struct {
	Entries      []scoredomain.Entry
	GameLogsFunc func(ctx context.Context, gameID sharedtypes.GameID) (map[sharedtypes.RoundID]scoredomain.RoundLogs, error)
}

func (f *FakeScoreLogs) GameLogs(ctx context.Context, gameID sharedtypes.GameID) (map[sharedtypes.RoundID]scoredomain.RoundLogs, error) {
	if f.GameLogsFunc != nil {
		return f.GameLogsFunc(ctx, gameID)
	}
	return scoredomain.FromEntries(f.Entries), nil
}

// FakeEnqueuer counts calls.
type FakeEnqueuer struct {
	Calls               int
	EnqueueEligibleFunc func(ctx context.Context, sb scoreboarddomain.Scoreboard, in scoreboarddomain.Input) (int, error)
}

func (f *FakeEnqueuer) EnqueueEligible(ctx context.Context, sb scoreboarddomain.Scoreboard, in scoreboarddomain.Input) (int, error) {
	f.Calls++
	if f.EnqueueEligibleFunc != nil {
		return f.EnqueueEligibleFunc(ctx, sb, in)
	}
	return 0, nil
}

// FakeCache is an in-memory scoreboard cache.
type FakeCache struct {
	mu     sync.Mutex
	boards map[string][]byte
	latest map[sharedtypes.GameID]string
	Sets   int
}

func NewFakeCache() *FakeCache {
	return &FakeCache{boards: map[string][]byte{}, latest: map[sharedtypes.GameID]string{}}
}

func (f *FakeCache) Get(ctx context.Context, gameID sharedtypes.GameID, hash string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	body, ok := f.boards[string(gameID)+"/"+hash]
	return body, ok, nil
}

func (f *FakeCache) Latest(ctx context.Context, gameID sharedtypes.GameID) (string, []byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	hash, ok := f.latest[gameID]
	if !ok {
		return "", nil, false, nil
	}
	return hash, f.boards[string(gameID)+"/"+hash], true, nil
}

func (f *FakeCache) Set(ctx context.Context, gameID sharedtypes.GameID, hash string, body []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Sets++
	f.boards[string(gameID)+"/"+hash] = body
	f.latest[gameID] = hash
	return nil
}

// FakePublisher records published messages by topic.
type FakePublisher struct {
	mu        sync.Mutex
	published map[string][]*message.Message
}

func NewFakePublisher() *FakePublisher {
	return &FakePublisher{published: map[string][]*message.Message{}}
}

func (f *FakePublisher) Publish(topic string, msgs ...*message.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published[topic] = append(f.published[topic], msgs...)
	return nil
}

func (f *FakePublisher) Close() error { return nil }

func (f *FakePublisher) Published(topic string) []*message.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*message.Message(nil), f.published[topic]...)
}

var (
	_ scoreboarddb.Repository = (*FakeScoreboardRepo)(nil)
	_ SpecResolver            = (*FakeSpecResolver)(nil)
	_ ScoreLogs               = (*FakeScoreLogs)(nil)
	_ PostingEnqueuer         = (*FakeEnqueuer)(nil)
	_ scoreboardcache.Cache   = (*FakeCache)(nil)
	_ message.Publisher       = (*FakePublisher)(nil)
)
