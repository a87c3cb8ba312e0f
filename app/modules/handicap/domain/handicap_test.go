package handicapdomain

import (
	"errors"
	"math"
	"testing"

	golftypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/golf"
	sharedtypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/shared"
	"github.com/google/go-cmp/cmp"
)

func testTee(slope, rating float64) golftypes.Tee {
	holes := make([]golftypes.TeeHole, 0, 18)
	for n := 1; n <= 18; n++ {
		holes = append(holes, golftypes.TeeHole{Number: n, Par: 4, Allocation: n})
	}
	return golftypes.Tee{
		ID:   "blue",
		Name: "Blue",
		Ratings: map[golftypes.HoleScope]golftypes.Rating{
			golftypes.All18:  {CourseRating: rating, SlopeRating: slope},
			golftypes.Front9: {CourseRating: rating / 2, SlopeRating: slope},
		},
		Holes: holes,
	}
}

func TestParseIndex(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    float64
		wantErr bool
	}{
		{name: "plain", raw: "10.5", want: 10.5},
		{name: "plus handicap", raw: "+2.1", want: -2.1},
		{name: "whitespace", raw: "  8 ", want: 8},
		{name: "empty", raw: "", wantErr: true},
		{name: "dash", raw: "-", wantErr: true},
		{name: "garbage", raw: "abc", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIndex(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidHandicapInput) {
					t.Fatalf("ParseIndex(%q) err = %v, want ErrInvalidHandicapInput", tt.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseIndex(%q) unexpected error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("ParseIndex(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestIndexFromNumber(t *testing.T) {
	if got := IndexFromNumber(-2.1); got != "+2.1" {
		t.Errorf("IndexFromNumber(-2.1) = %q", got)
	}
	if got := IndexFromNumber(12); got != "12" {
		t.Errorf("IndexFromNumber(12) = %q", got)
	}
}

func TestCourseHandicapFromValues(t *testing.T) {
	tests := []struct {
		name   string
		index  float64
		slope  float64
		rating float64
		par    int
		want   int
	}{
		{name: "slope only", index: 10.5, slope: 128, rating: 72, par: 72, want: 12},
		{name: "rating above par", index: 10.5, slope: 128, rating: 73.4, par: 72, want: int(math.Round(10.5*128/113 + 1.4))},
		{name: "half rounds up", index: 0.5, slope: 113, rating: 72, par: 72, want: 1},
		{name: "negative half rounds away from zero", index: -0.5, slope: 113, rating: 72, par: 72, want: -1},
		{name: "plus handicap", index: -2, slope: 139, rating: 72, par: 72, want: -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CourseHandicapFromValues(tt.index, tt.slope, tt.rating, tt.par); got != tt.want {
				t.Errorf("CourseHandicapFromValues() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCourseHandicap(t *testing.T) {
	tee := testTee(128, 72)

	tests := []struct {
		index string
		want  int
	}{
		{"10.5", 12},
		{"15.2", 17},
		{"8.0", 9},
		{"12.3", 14},
		{"+1.0", -1},
	}
	for _, tt := range tests {
		got, err := CourseHandicap(tt.index, tee, golftypes.All18)
		if err != nil {
			t.Fatalf("CourseHandicap(%q) unexpected error: %v", tt.index, err)
		}
		if got != tt.want {
			t.Errorf("CourseHandicap(%q) = %d, want %d", tt.index, got, tt.want)
		}
	}
}

func TestCourseHandicap_InvalidInput(t *testing.T) {
	tee := testTee(128, 72)

	noSlope := testTee(0, 72)
	missingHole := testTee(128, 72)
	missingHole.Holes = missingHole.Holes[:17]

	tests := []struct {
		name  string
		index string
		tee   golftypes.Tee
		scope golftypes.HoleScope
	}{
		{name: "bad index", index: "x", tee: tee, scope: golftypes.All18},
		{name: "no back nine rating", index: "10", tee: tee, scope: golftypes.Back9},
		{name: "zero slope", index: "10", tee: noSlope, scope: golftypes.All18},
		{name: "missing par", index: "10", tee: missingHole, scope: golftypes.All18},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CourseHandicap(tt.index, tt.tee, tt.scope)
			if !errors.Is(err, ErrInvalidHandicapInput) {
				t.Fatalf("err = %v, want ErrInvalidHandicapInput", err)
			}
		})
	}
}

func TestFormatCourseHandicap(t *testing.T) {
	ptr := func(v int) *int { return &v }
	tests := []struct {
		in   *int
		want string
	}{
		{nil, ""},
		{ptr(0), "0"},
		{ptr(12), "12"},
		{ptr(-3), "+3"},
	}
	for _, tt := range tests {
		if got := FormatCourseHandicap(tt.in); got != tt.want {
			t.Errorf("FormatCourseHandicap() = %q, want %q", got, tt.want)
		}
	}
	if got := FormatIndex("-"); got != "" {
		t.Errorf("FormatIndex(\"-\") = %q, want empty", got)
	}
	if got := FormatIndex("+1.2"); got != "+1.2" {
		t.Errorf("FormatIndex(\"+1.2\") = %q", got)
	}
}

func TestEffectiveHandicap(t *testing.T) {
	course, game := 12, 8
	if got := EffectiveHandicap(&course, &game); got == nil || *got != 8 {
		t.Errorf("game handicap should win, got %v", got)
	}
	if got := EffectiveHandicap(&course, nil); got == nil || *got != 12 {
		t.Errorf("course handicap fallback, got %v", got)
	}
	if got := EffectiveHandicap(nil, nil); got != nil {
		t.Errorf("want nil, got %d", *got)
	}
}

func TestApplyMode(t *testing.T) {
	in := map[sharedtypes.PlayerID]int{"p1": 3, "p2": -4, "p3": 10}

	tests := []struct {
		mode Mode
		want map[sharedtypes.PlayerID]int
	}{
		{ModeFull, map[sharedtypes.PlayerID]int{"p1": 3, "p2": -4, "p3": 10}},
		{ModeLow, map[sharedtypes.PlayerID]int{"p1": 7, "p2": 0, "p3": 14}},
		{ModeNone, map[sharedtypes.PlayerID]int{"p1": 0, "p2": 0, "p3": 0}},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ApplyMode(tt.mode, in)); diff != "" {
				t.Errorf("ApplyMode(%s) mismatch (-want +got):\n%s", tt.mode, diff)
			}
		})
	}

	if got := AdjustToLow(nil); len(got) != 0 {
		t.Errorf("AdjustToLow(nil) = %v", got)
	}
	if ParseMode(" LOW ") != ModeLow || ParseMode("bogus") != ModeFull {
		t.Error("ParseMode did not normalise input")
	}
}

func TestPostingCandidate(t *testing.T) {
	tee := testTee(113, 72)
	gross := make(map[string]int, 18)
	for n := 1; n <= 18; n++ {
		gross[itoa(n)] = 4
	}
	gross["1"] = 9

	round := golftypes.Round{ID: "r1", PlayerID: "p1", HandicapIndex: "0"}

	got, ok := PostingCandidate(round, tee, golftypes.All18, gross)
	if !ok {
		t.Fatal("expected round to be eligible")
	}
	want := Candidate{
		RoundID:            "r1",
		PlayerID:           "p1",
		Scope:              golftypes.All18,
		CourseHandicap:     0,
		GrossScore:         77,
		AdjustedGrossScore: 74,
		Differential:       2.0,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("PostingCandidate mismatch (-want +got):\n%s", diff)
	}

	delete(gross, "18")
	if _, ok := PostingCandidate(round, tee, golftypes.All18, gross); ok {
		t.Error("round with an unscored hole must not be eligible")
	}

	round.HandicapIndex = "bad"
	gross["18"] = 4
	if _, ok := PostingCandidate(round, tee, golftypes.All18, gross); ok {
		t.Error("round without a course handicap must not be eligible")
	}
}

func TestPostingCandidate_UsesStoredCourseHandicap(t *testing.T) {
	tee := testTee(113, 72)
	gross := make(map[string]int, 18)
	for n := 1; n <= 18; n++ {
		gross[itoa(n)] = 7
	}
	ch := 18
	round := golftypes.Round{ID: "r2", PlayerID: "p2", CourseHandicap: &ch}

	got, ok := PostingCandidate(round, tee, golftypes.All18, gross)
	if !ok {
		t.Fatal("expected round to be eligible")
	}
	// one pop on every hole caps each 7 at 4+2+1.
	if got.AdjustedGrossScore != 126 {
		t.Errorf("AdjustedGrossScore = %d, want 126", got.AdjustedGrossScore)
	}
	if got.Differential != 54.0 {
		t.Errorf("Differential = %v, want 54.0", got.Differential)
	}
}
