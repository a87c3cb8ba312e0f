package scoreboardservice

import (
	"bytes"
	"context"
	"math"

	scoreboarddomain "github.com/Black-And-White-Club/golf-scoring/app/modules/scoreboard/domain"
	sharedtypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/shared"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ChartPalette holds the colors of a rendered chart.
type ChartPalette struct {
	Background drawing.Color
	Text       drawing.Color
	Lines      []drawing.Color
}

// DefaultPalette is used by RunningTotalChart.
var DefaultPalette = ChartPalette{
	Background: drawing.ColorFromHex("f7f5ee"),
	Text:       drawing.ColorFromHex("1d2b22"),
	Lines: []drawing.Color{
		drawing.ColorFromHex("2e6b4f"),
		drawing.ColorFromHex("c4962c"),
		drawing.ColorFromHex("3a5d9c"),
		drawing.ColorFromHex("a8443b"),
		drawing.ColorFromHex("6b4c8a"),
	},
}

// RunningTotalChart renders the chart of a game's current scoreboard.
func (s *ScoreboardService) RunningTotalChart(ctx context.Context, gameID sharedtypes.GameID) ([]byte, error) {
	sb, err := s.current(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return RenderRunningTotalChart(sb, DefaultPalette)
}

type line struct {
	name string
	x    []float64
	y    []float64
}

// chartLines returns team running totals per hole, or each player's
// cumulative net to par when there are no teams. Holes without a value are
// skipped, never drawn as zero.
func chartLines(sb scoreboarddomain.Scoreboard) (lines []line, yName string) {
	holes := sb.Meta.HolesInPlay
	if sb.Meta.HasTeams {
		for _, id := range sb.SortedTeams() {
			l := line{name: "Team " + string(id)}
			for i, h := range holes {
				hr, ok := sb.Holes[h]
				if !ok {
					continue
				}
				t, ok := hr.Teams[id]
				if !ok || t.Points == nil {
					continue
				}
				l.x = append(l.x, float64(i+1))
				l.y = append(l.y, t.RunningTotal)
			}
			lines = append(lines, l)
		}
		return lines, "Points"
	}
	for _, id := range sb.SortedPlayers() {
		l := line{name: string(id)}
		total := 0
		for i, h := range holes {
			hr, ok := sb.Holes[h]
			if !ok {
				continue
			}
			p, ok := hr.Players[id]
			if !ok || p.NetToPar == nil {
				continue
			}
			total += *p.NetToPar
			l.x = append(l.x, float64(i+1))
			l.y = append(l.y, float64(total))
		}
		lines = append(lines, l)
	}
	return lines, "Net to par"
}

// RenderRunningTotalChart draws the running totals of sb as a PNG.
func RenderRunningTotalChart(sb scoreboarddomain.Scoreboard, palette ChartPalette) ([]byte, error) {
	lines, yName := chartLines(sb)

	var series []chart.Series
	minY, maxY := math.Inf(1), math.Inf(-1)
	for i, l := range lines {
		// go-chart cannot draw a single point line
		if len(l.x) < 2 {
			continue
		}
		for _, v := range l.y {
			minY, maxY = math.Min(minY, v), math.Max(maxY, v)
		}
		color := palette.Lines[i%len(palette.Lines)]
		series = append(series, chart.ContinuousSeries{
			Name:    l.name,
			XValues: l.x,
			YValues: l.y,
			Style: chart.Style{
				StrokeColor: color,
				StrokeWidth: 2,
				DotWidth:    3,
				DotColor:    color,
			},
		})
	}
	if len(series) == 0 {
		return renderNoDataPlaceholder(palette)
	}

	holes := len(sb.Meta.HolesInPlay)
	ticks := make([]chart.Tick, 0, holes)
	for i, h := range sb.Meta.HolesInPlay {
		ticks = append(ticks, chart.Tick{Value: float64(i + 1), Label: h})
	}

	graph := chart.Chart{
		Width:  800,
		Height: 400,
		Background: chart.Style{
			FillColor: palette.Background,
			Padding:   chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20},
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		XAxis: chart.XAxis{
			Name:  "Hole",
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: 1, Max: float64(max(holes, 2))},
			Style: chart.Style{FontColor: palette.Text},
		},
		YAxis: chart.YAxis{
			Name:  yName,
			Range: &chart.ContinuousRange{Min: minY - 1, Max: maxY + 1},
			Style: chart.Style{FontColor: palette.Text},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func renderNoDataPlaceholder(palette ChartPalette) ([]byte, error) {
	const (
		width  = 400
		height = 200
		msg    = "No scores yet"
	)

	graph := chart.Chart{
		Width:  width,
		Height: height,
		Background: chart.Style{
			FillColor: palette.Background,
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		// Render needs one series; this one is not drawn.
		XAxis: chart.XAxis{Style: chart.Hidden(), Range: &chart.ContinuousRange{Min: 0, Max: 1}},
		YAxis: chart.YAxis{Style: chart.Hidden(), Range: &chart.ContinuousRange{Min: 0, Max: 1}},
		Series: []chart.Series{chart.ContinuousSeries{
			XValues: []float64{0, 1},
			YValues: []float64{0, 0},
			Style:   chart.Style{StrokeColor: drawing.ColorTransparent},
		}},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, chartDefaults chart.Style) {
				r.SetFontColor(palette.Text)
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				x := (cb.Width() - tb.Width()) / 2
				y := (cb.Height() + tb.Height()) / 2
				r.Text(msg, x, y)
			},
		},
	}
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
