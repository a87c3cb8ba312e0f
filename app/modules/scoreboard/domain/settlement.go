package scoreboarddomain

import (
	"cmp"
	"maps"
	"math"
	"slices"

	sharedtypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/shared"
)

// SplitType says how a pool is divided.
type SplitType string

const (
	SplitPlaces        SplitType = "places"
	SplitPerUnit       SplitType = "per_unit"
	SplitWinnerTakeAll SplitType = "winner_take_all"
)

// Metrics every player gets from the scoreboard. Rule cumulatives are added
// under their rule name.
const (
	MetricPoints    = "points"
	MetricNetPoints = "net_points"
)

const defaultPlacesPaid = 3

// defaultPayoutPcts are the place percentages by the number of places paid.
var defaultPayoutPcts = map[int][]float64{
	1: {100},
	2: {60, 40},
	3: {50, 30, 20},
	4: {45, 27, 18, 10},
	5: {40, 25, 17, 11, 7},
}

// Pool is one share of the pot, paid on a metric where higher is better.
type Pool struct {
	Name       string    `json:"name" yaml:"name"`
	Disp       string    `json:"disp,omitempty" yaml:"disp,omitempty"`
	Pct        float64   `json:"pct" yaml:"pct"`
	Metric     string    `json:"metric" yaml:"metric"`
	Split      SplitType `json:"split_type" yaml:"split_type"`
	PlacesPaid int       `json:"places_paid,omitempty" yaml:"places_paid,omitempty"`
	PayoutPcts []float64 `json:"payout_pcts,omitempty" yaml:"payout_pcts,omitempty"`
}

// PlayerMetrics are the values a player is paid on.
type PlayerMetrics struct {
	PlayerID sharedtypes.PlayerID `json:"player_id"`
	Name     string               `json:"name"`
	Metrics  map[string]float64   `json:"metrics"`
}

// Payout is one player's winnings from one pool.
type Payout struct {
	PlayerID    sharedtypes.PlayerID `json:"player_id"`
	Name        string               `json:"name"`
	Pool        string               `json:"pool"`
	Place       int                  `json:"place,omitempty"`
	MetricValue float64              `json:"metric_value"`
	Amount      float64              `json:"amount"`
}

// Debt is one payment settling the game.
type Debt struct {
	From     sharedtypes.PlayerID `json:"from"`
	FromName string               `json:"from_name"`
	To       sharedtypes.PlayerID `json:"to"`
	ToName   string               `json:"to_name"`
	Amount   float64              `json:"amount"`
}

// Settlement is the money side of a finished game.
type Settlement struct {
	PotTotal     float64                          `json:"pot_total"`
	BuyIn        float64                          `json:"buy_in"`
	Payouts      []Payout                         `json:"payouts"`
	NetPositions map[sharedtypes.PlayerID]float64 `json:"net_positions"`
	Debts        []Debt                           `json:"debts"`
}

// SettlementMetrics reads the metrics of every player from a scoreboard.
func SettlementMetrics(sb Scoreboard, names map[sharedtypes.PlayerID]string) []PlayerMetrics {
	out := make([]PlayerMetrics, 0, len(sb.Cumulative.Players))
	for _, id := range slices.Sorted(maps.Keys(sb.Cumulative.Players)) {
		pc := sb.Cumulative.Players[id]
		m := maps.Clone(pc.Rules)
		if m == nil {
			m = make(map[string]float64, 2)
		}
		m[MetricPoints] = pc.Points
		m[MetricNetPoints] = pc.NetPoints
		out = append(out, PlayerMetrics{PlayerID: id, Name: names[id], Metrics: m})
	}
	return out
}

func payoutPcts(places int, custom []float64) []float64 {
	if len(custom) == places {
		return custom
	}
	if pcts, ok := defaultPayoutPcts[places]; ok {
		return pcts
	}
	return defaultPayoutPcts[defaultPlacesPaid]
}

type rankedMetric struct {
	id    sharedtypes.PlayerID
	name  string
	value float64
}

// PoolPayouts divides amount among players by the pool's metric. Amounts
// are whole units; the last payout takes the rounding remainder so the pool
// is paid out exactly.
func PoolPayouts(pool Pool, players []PlayerMetrics, amount float64) []Payout {
	var ranked []rankedMetric
	for _, pm := range players {
		v := pm.Metrics[pool.Metric]
		if v == 0 && pool.Split != SplitPlaces {
			continue
		}
		ranked = append(ranked, rankedMetric{id: pm.PlayerID, name: pm.Name, value: v})
	}
	slices.SortStableFunc(ranked, func(a, b rankedMetric) int {
		return cmp.Or(cmp.Compare(b.value, a.value), cmp.Compare(a.id, b.id))
	})
	if len(ranked) == 0 {
		return nil
	}

	var out []Payout
	pay := func(r rankedMetric, place int, amt float64) {
		out = append(out, Payout{PlayerID: r.id, Name: r.name, Pool: pool.Name, Place: place, MetricValue: r.value, Amount: amt})
	}
	switch pool.Split {
	case SplitPlaces:
		places := min(cmp.Or(pool.PlacesPaid, defaultPlacesPaid), len(ranked))
		pcts := payoutPcts(places, pool.PayoutPcts)
		paid := 0.0
		for i := 0; i < places && i < len(pcts); i++ {
			amt := math.Round(amount * pcts[i] / 100)
			if i == places-1 {
				amt = amount - paid
			}
			pay(ranked[i], i+1, amt)
			paid += amt
		}
	case SplitPerUnit:
		var eligible []rankedMetric
		units := 0.0
		for _, r := range ranked {
			units += r.value
			if r.value > 0 {
				eligible = append(eligible, r)
			}
		}
		if units == 0 {
			return nil
		}
		per := amount / units
		paid := 0.0
		for i, r := range eligible {
			amt := math.Round(r.value * per)
			if i == len(eligible)-1 {
				amt = amount - paid
			}
			pay(r, 0, amt)
			paid += amt
		}
	case SplitWinnerTakeAll:
		pay(ranked[0], 1, amount)
	}
	return out
}

// NetPositions is each player's winnings less an equal buy in, rounded to
// cents.
func NetPositions(payouts []Payout, players []PlayerMetrics, potTotal float64) map[sharedtypes.PlayerID]float64 {
	out := make(map[sharedtypes.PlayerID]float64, len(players))
	if len(players) == 0 {
		return out
	}
	buyIn := potTotal / float64(len(players))
	for _, pm := range players {
		out[pm.PlayerID] = -buyIn
	}
	for _, p := range payouts {
		if _, ok := out[p.PlayerID]; !ok {
			out[p.PlayerID] = -buyIn
		}
		out[p.PlayerID] += p.Amount
	}
	for id, v := range out {
		out[id] = roundCents(v)
	}
	return out
}

type balance struct {
	id     sharedtypes.PlayerID
	amount float64
}

// ReconcileDebts settles net positions with few payments by greedily
// matching the largest debtor with the largest creditor.
func ReconcileDebts(net map[sharedtypes.PlayerID]float64, names map[sharedtypes.PlayerID]string) []Debt {
	var creditors, debtors []balance
	for _, id := range slices.Sorted(maps.Keys(net)) {
		switch v := net[id]; {
		case v > 0.01:
			creditors = append(creditors, balance{id, v})
		case v < -0.01:
			debtors = append(debtors, balance{id, -v})
		}
	}
	largest := func(a, b balance) int { return cmp.Or(cmp.Compare(b.amount, a.amount), cmp.Compare(a.id, b.id)) }
	slices.SortFunc(creditors, largest)
	slices.SortFunc(debtors, largest)

	name := func(id sharedtypes.PlayerID) string { return cmp.Or(names[id], string(id)) }
	debts := []Debt{}
	for i, j := 0, 0; i < len(creditors) && j < len(debtors); {
		c, d := &creditors[i], &debtors[j]
		pay := min(c.amount, d.amount)
		if pay > 0.01 {
			debts = append(debts, Debt{From: d.id, FromName: name(d.id), To: c.id, ToName: name(c.id), Amount: roundCents(pay)})
		}
		c.amount -= pay
		d.amount -= pay
		if c.amount < 0.01 {
			i++
		}
		if d.amount < 0.01 {
			j++
		}
	}
	return debts
}

// Settle pays every pool out of the pot and reconciles who owes whom. Each
// pool takes its percentage of the pot and the last pool the remainder.
func Settle(pools []Pool, players []PlayerMetrics, potTotal float64) Settlement {
	out := Settlement{PotTotal: potTotal, Payouts: []Payout{}, NetPositions: map[sharedtypes.PlayerID]float64{}, Debts: []Debt{}}
	if len(players) == 0 {
		return out
	}
	out.BuyIn = potTotal / float64(len(players))

	allocated := 0.0
	for i, pool := range pools {
		amount := math.Round(potTotal * pool.Pct / 100)
		if i == len(pools)-1 {
			amount = potTotal - allocated
		}
		out.Payouts = append(out.Payouts, PoolPayouts(pool, players, amount)...)
		allocated += amount
	}
	out.NetPositions = NetPositions(out.Payouts, players, potTotal)

	names := make(map[sharedtypes.PlayerID]string, len(players))
	for _, pm := range players {
		names[pm.PlayerID] = pm.Name
	}
	out.Debts = ReconcileDebts(out.NetPositions, names)
	return out
}

func roundCents(v float64) float64 { return math.Round(v*100) / 100 }
