package scoreservice

import (
	"context"
	"sync"

	scoredomain "github.com/Black-And-White-Club/golf-scoring/app/modules/score/domain"
	scoredb "github.com/Black-And-White-Club/golf-scoring/app/modules/score/infrastructure/repositories"
	sharedtypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/shared"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Score Repo
// ------------------------

// FakeScoreRepo keeps appended entries in memory unless a Func overrides it.
type FakeScoreRepo struct {
	trace   []string
	entries []scoredomain.Entry
	seq     int64

	AppendEntriesFunc   func(ctx context.Context, db bun.IDB, entries []scoredomain.Entry) ([]scoredomain.Entry, error)
	EntriesForGameFunc  func(ctx context.Context, db bun.IDB, gameID sharedtypes.GameID) ([]scoredomain.Entry, error)
	EntriesForRoundFunc func(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID) ([]scoredomain.Entry, error)
}

func NewFakeScoreRepo() *FakeScoreRepo {
	return &FakeScoreRepo{trace: []string{}}
}

func (f *FakeScoreRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeScoreRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeScoreRepo) AppendEntries(ctx context.Context, db bun.IDB, entries []scoredomain.Entry) ([]scoredomain.Entry, error) {
	f.record("AppendEntries")
	if f.AppendEntriesFunc != nil {
		return f.AppendEntriesFunc(ctx, db, entries)
	}
	out := make([]scoredomain.Entry, 0, len(entries))
	for _, e := range entries {
		f.seq++
		e.Seq = f.seq
		f.entries = append(f.entries, e)
		out = append(out, e)
	}
	return out, nil
}

func (f *FakeScoreRepo) EntriesForGame(ctx context.Context, db bun.IDB, gameID sharedtypes.GameID) ([]scoredomain.Entry, error) {
	f.record("EntriesForGame")
	if f.EntriesForGameFunc != nil {
		return f.EntriesForGameFunc(ctx, db, gameID)
	}
	var out []scoredomain.Entry
	for _, e := range f.entries {
		if e.GameID == gameID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *FakeScoreRepo) EntriesForRound(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID) ([]scoredomain.Entry, error) {
	f.record("EntriesForRound")
	if f.EntriesForRoundFunc != nil {
		return f.EntriesForRoundFunc(ctx, db, roundID)
	}
	var out []scoredomain.Entry
	for _, e := range f.entries {
		if e.RoundID == roundID {
			out = append(out, e)
		}
	}
	if len(out) == 0 {
		return nil, scoredb.ErrNotFound
	}
	return out, nil
}

var _ scoredb.Repository = (*FakeScoreRepo)(nil)

// ------------------------
// Fake Publisher
// ------------------------

type FakePublisher struct {
	mu       sync.Mutex
	messages map[string][]*message.Message

	PublishFunc func(topic string, messages ...*message.Message) error
}

func NewFakePublisher() *FakePublisher {
	return &FakePublisher{messages: make(map[string][]*message.Message)}
}

func (f *FakePublisher) Publish(topic string, messages ...*message.Message) error {
	if f.PublishFunc != nil {
		return f.PublishFunc(topic, messages...)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages[topic] = append(f.messages[topic], messages...)
	return nil
}

func (f *FakePublisher) Close() error { return nil }

func (f *FakePublisher) Published(topic string) []*message.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*message.Message(nil), f.messages[topic]...)
}

var _ message.Publisher = (*FakePublisher)(nil)

// ------------------------
// Fake Round Directory
// ------------------------

type FakeRoundDirectory struct {
	RoundForFunc func(ctx context.Context, gameID sharedtypes.GameID, playerID sharedtypes.PlayerID) (sharedtypes.RoundID, error)
}

func (f *FakeRoundDirectory) RoundFor(ctx context.Context, gameID sharedtypes.GameID, playerID sharedtypes.PlayerID) (sharedtypes.RoundID, error) {
	if f.RoundForFunc != nil {
		return f.RoundForFunc(ctx, gameID, playerID)
	}
	return sharedtypes.RoundID(string(gameID) + "-" + string(playerID)), nil
}

var _ RoundDirectory = (*FakeRoundDirectory)(nil)
