package scoreboarddomain

import (
	"testing"

	sharedtypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/shared"
	"github.com/google/go-cmp/cmp"
)

func metrics(metric string, values map[sharedtypes.PlayerID]float64) []PlayerMetrics {
	var out []PlayerMetrics
	for _, id := range []sharedtypes.PlayerID{"p1", "p2", "p3", "p4"} {
		if v, ok := values[id]; ok {
			out = append(out, PlayerMetrics{PlayerID: id, Name: string(id), Metrics: map[string]float64{metric: v}})
		}
	}
	return out
}

func amounts(ps []Payout) map[sharedtypes.PlayerID]float64 {
	out := make(map[sharedtypes.PlayerID]float64, len(ps))
	for _, p := range ps {
		out[p.PlayerID] += p.Amount
	}
	return out
}

func TestPoolPayouts(t *testing.T) {
	tests := []struct {
		name   string
		pool   Pool
		values map[sharedtypes.PlayerID]float64
		amount float64
		want   map[sharedtypes.PlayerID]float64
	}{
		{
			name:   "three places by default",
			pool:   Pool{Name: "low", Metric: "points", Split: SplitPlaces},
			values: map[sharedtypes.PlayerID]float64{"p1": 5, "p2": 10, "p3": 8, "p4": 1},
			amount: 100,
			want:   map[sharedtypes.PlayerID]float64{"p2": 50, "p3": 30, "p1": 20},
		},
		{
			name:   "places capped by players and remainder to last",
			pool:   Pool{Name: "low", Metric: "points", Split: SplitPlaces, PlacesPaid: 5, PayoutPcts: []float64{60, 40}},
			values: map[sharedtypes.PlayerID]float64{"p1": 3, "p2": 4},
			amount: 25,
			want:   map[sharedtypes.PlayerID]float64{"p2": 15, "p1": 10},
		},
		{
			name:   "per unit skips zeros",
			pool:   Pool{Name: "skins", Metric: "skins", Split: SplitPerUnit},
			values: map[sharedtypes.PlayerID]float64{"p1": 2, "p2": 1, "p3": 0},
			amount: 90,
			want:   map[sharedtypes.PlayerID]float64{"p1": 60, "p2": 30},
		},
		{
			name:   "winner take all breaks ties by id",
			pool:   Pool{Name: "big", Metric: "points", Split: SplitWinnerTakeAll},
			values: map[sharedtypes.PlayerID]float64{"p1": 7, "p2": 7},
			amount: 40,
			want:   map[sharedtypes.PlayerID]float64{"p1": 40},
		},
		{
			name:   "nobody scored units",
			pool:   Pool{Name: "skins", Metric: "skins", Split: SplitPerUnit},
			values: map[sharedtypes.PlayerID]float64{"p1": 0},
			amount: 10,
			want:   map[sharedtypes.PlayerID]float64{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PoolPayouts(tt.pool, metrics(tt.pool.Metric, tt.values), tt.amount)
			if diff := cmp.Diff(tt.want, amounts(got)); diff != "" {
				t.Errorf("payouts mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSettle(t *testing.T) {
	players := []PlayerMetrics{
		{PlayerID: "p1", Name: "Ann", Metrics: map[string]float64{"points": 10, "skins": 2}},
		{PlayerID: "p2", Name: "Bo", Metrics: map[string]float64{"points": 8, "skins": 1}},
		{PlayerID: "p3", Name: "Cy", Metrics: map[string]float64{"points": 6}},
		{PlayerID: "p4", Name: "Di", Metrics: map[string]float64{"points": 4}},
	}
	pools := []Pool{
		{Name: "points", Pct: 60, Metric: "points", Split: SplitPlaces, PlacesPaid: 2},
		{Name: "skins", Pct: 40, Metric: "skins", Split: SplitPerUnit},
	}

	got := Settle(pools, players, 100)

	want := Settlement{
		PotTotal: 100,
		BuyIn:    25,
		Payouts: []Payout{
			{PlayerID: "p1", Name: "Ann", Pool: "points", Place: 1, MetricValue: 10, Amount: 36},
			{PlayerID: "p2", Name: "Bo", Pool: "points", Place: 2, MetricValue: 8, Amount: 24},
			{PlayerID: "p1", Name: "Ann", Pool: "skins", MetricValue: 2, Amount: 27},
			{PlayerID: "p2", Name: "Bo", Pool: "skins", MetricValue: 1, Amount: 13},
		},
		NetPositions: map[sharedtypes.PlayerID]float64{"p1": 38, "p2": 12, "p3": -25, "p4": -25},
		Debts: []Debt{
			{From: "p3", FromName: "Cy", To: "p1", ToName: "Ann", Amount: 25},
			{From: "p4", FromName: "Di", To: "p1", ToName: "Ann", Amount: 13},
			{From: "p4", FromName: "Di", To: "p2", ToName: "Bo", Amount: 12},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Settle() mismatch (-want +got):\n%s", diff)
	}

	total := 0.0
	for _, v := range got.NetPositions {
		total += v
	}
	if total != 0 {
		t.Errorf("net positions sum to %v, want 0", total)
	}
}

func TestSettle_NoPlayers(t *testing.T) {
	got := Settle([]Pool{{Name: "points", Pct: 100, Metric: "points", Split: SplitPlaces}}, nil, 50)
	if got.BuyIn != 0 || len(got.Payouts) != 0 || len(got.Debts) != 0 {
		t.Errorf("Settle() = %+v, want an empty settlement", got)
	}
}

func TestSettlementMetrics(t *testing.T) {
	sb := Scoreboard{Cumulative: Cumulative{Players: map[sharedtypes.PlayerID]*PlayerCumulative{
		"p2": {Points: 3, NetPoints: -1, Rules: map[string]float64{"skins": 2}},
		"p1": {Points: 5, NetPoints: 1},
	}}}

	got := SettlementMetrics(sb, map[sharedtypes.PlayerID]string{"p1": "Ann"})
	want := []PlayerMetrics{
		{PlayerID: "p1", Name: "Ann", Metrics: map[string]float64{MetricPoints: 5, MetricNetPoints: 1}},
		{PlayerID: "p2", Metrics: map[string]float64{MetricPoints: 3, MetricNetPoints: -1, "skins": 2}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SettlementMetrics() mismatch (-want +got):\n%s", diff)
	}
	if _, ok := sb.Cumulative.Players["p2"].Rules[MetricPoints]; ok {
		t.Error("SettlementMetrics() wrote into the scoreboard's rule totals")
	}
}
