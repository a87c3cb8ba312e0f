package testutils

import (
	"fmt"
	"strconv"
	"time"

	scoredomain "github.com/Black-And-White-Club/golf-scoring/app/modules/score/domain"
	golftypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/golf"
	sharedtypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/shared"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
)

// TestDataGenerator builds games, tees and score entries from a seeded
// faker so failures reproduce.
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  uint64
}

// NewTestDataGenerator creates a generator. Without a seed the current
// time is used.
func NewTestDataGenerator(seed ...uint64) *TestDataGenerator {
	s := uint64(time.Now().UnixNano())
	if len(seed) > 0 {
		s = seed[0]
	}
	return &TestDataGenerator{faker: gofakeit.New(s), seed: s}
}

// Seed returns the seed the generator was created with.
func (g *TestDataGenerator) Seed() uint64 { return g.seed }

// GenerateTee returns an 18 hole tee with a valid stroke allocation.
func (g *TestDataGenerator) GenerateTee() golftypes.Tee {
	allocations := make([]int, 18)
	for i := range allocations {
		allocations[i] = i + 1
	}
	g.faker.ShuffleAnySlice(allocations)

	holes := make([]golftypes.TeeHole, 18)
	totalPar := 0
	for i := range holes {
		par := g.faker.Number(3, 5)
		totalPar += par
		holes[i] = golftypes.TeeHole{
			Number:      i + 1,
			Par:         par,
			LengthYards: g.faker.Number(120, 560),
			Allocation:  allocations[i],
		}
	}
	return golftypes.Tee{
		ID:       sharedtypes.TeeID("tee-" + uuid.NewString()),
		Name:     g.faker.Color(),
		TotalPar: totalPar,
		Ratings: map[golftypes.HoleScope]golftypes.Rating{
			golftypes.All18: {
				CourseRating: float64(totalPar) + g.faker.Float64Range(-2, 3),
				SlopeRating:  float64(g.faker.Number(110, 140)),
			},
		},
		Holes: holes,
	}
}

// GenerateGame returns a game with count players, each with a handicap.
func (g *TestDataGenerator) GenerateGame(count int, specs ...string) golftypes.Game {
	players := make([]golftypes.Player, count)
	for i := range players {
		players[i] = golftypes.Player{
			ID:   sharedtypes.PlayerID("p-" + uuid.NewString()),
			Name: g.faker.Name(),
			Handicap: golftypes.Handicap{
				Index:  strconv.FormatFloat(g.faker.Float64Range(0, 30), 'f', 1, 64),
				Active: true,
			},
		}
	}
	refs := make([]golftypes.SpecRef, 0, len(specs))
	for _, name := range specs {
		refs = append(refs, golftypes.SpecRef{Name: name})
	}
	return golftypes.Game{
		ID:      sharedtypes.GameID("g-" + uuid.NewString()),
		Name:    g.faker.City() + " Classic",
		Start:   time.Now().UTC().Truncate(time.Second),
		Scope:   golftypes.GameScope{Holes: golftypes.All18},
		Players: players,
		Specs:   refs,
	}
}

// GenerateRounds returns one round per game player on the tee.
func (g *TestDataGenerator) GenerateRounds(game golftypes.Game, tee golftypes.Tee) []golftypes.Round {
	rounds := make([]golftypes.Round, len(game.Players))
	for i, p := range game.Players {
		rounds[i] = golftypes.Round{
			ID:            sharedtypes.RoundID(fmt.Sprintf("r-%d-%s", i, uuid.NewString())),
			GameID:        game.ID,
			PlayerID:      p.ID,
			Seq:           i,
			TeeID:         tee.ID,
			HandicapIndex: p.Handicap.Index,
		}
	}
	return rounds
}

// GenerateGrossEntries returns a gross score write for every hole of the
// round, one second apart.
func (g *TestDataGenerator) GenerateGrossEntries(round golftypes.Round, holes int, writer string) []scoredomain.Entry {
	ts := time.Now().UTC().Truncate(time.Second)
	out := make([]scoredomain.Entry, 0, holes)
	for h := 1; h <= holes; h++ {
		out = append(out, scoredomain.Entry{
			GameID:   round.GameID,
			RoundID:  round.ID,
			PlayerID: round.PlayerID,
			Hole:     strconv.Itoa(h),
			Key:      golftypes.KeyGross,
			Value:    strconv.Itoa(g.faker.Number(3, 7)),
			TS:       ts.Add(time.Duration(h) * time.Second),
			Writer:   writer,
		})
	}
	return out
}
