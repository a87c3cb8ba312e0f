package parsers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	scoredomain "github.com/Black-And-White-Club/golf-scoring/app/modules/score/domain"
)

var (
	// ErrUnsupportedFormat indicates a file extension with no parser.
	ErrUnsupportedFormat = errors.New("unsupported scorecard format")

	// ErrMalformedScorecard indicates a scorecard that could not be read.
	ErrMalformedScorecard = errors.New("malformed scorecard")
)

// Scorecard is a parsed scorecard: one row per player, gross strokes per
// hole. Unplayed holes are absent from Gross.
type Scorecard struct {
	Holes []string
	Par   map[string]int
	Rows  []ScorecardRow
}

// ScorecardRow is one player's line. RoundID is empty when the card has no
// round column.
type ScorecardRow struct {
	PlayerID string
	RoundID  string
	Gross    map[string]int
}

// parseRecords reads the shared tabular layout:
//
//	Player, [Round], 1, 2, ..., [Total]
//	Par,    [],      4, 3, ...
//	alice,  [r1],    5, 4, ...
//
// The header row names the hole columns. The par row is optional. Empty
// and "-" cells are unplayed holes.
func parseRecords(records [][]string) (*Scorecard, error) {
	records = trimEmpty(records)
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrMalformedScorecard)
	}

	header := records[0]
	if len(header) == 0 || !strings.EqualFold(strings.TrimSpace(header[0]), "player") {
		return nil, fmt.Errorf("%w: first header cell must be Player", ErrMalformedScorecard)
	}
	roundCol := -1
	holeCols := make(map[int]string)
	var holes []string
	for i := 1; i < len(header); i++ {
		cell := strings.TrimSpace(header[i])
		switch {
		case strings.EqualFold(cell, "round"):
			roundCol = i
		case strings.EqualFold(cell, "total"), strings.EqualFold(cell, "out"), strings.EqualFold(cell, "in"), cell == "":
		default:
			n, err := strconv.Atoi(cell)
			if err != nil || n <= 0 {
				return nil, fmt.Errorf("%w: header cell %q is not a hole number", ErrMalformedScorecard, cell)
			}
			key := strconv.Itoa(n)
			holeCols[i] = key
			holes = append(holes, key)
		}
	}
	if len(holes) == 0 {
		return nil, fmt.Errorf("%w: no hole columns", ErrMalformedScorecard)
	}

	card := &Scorecard{Holes: holes, Par: make(map[string]int)}
	for lineIdx, record := range records[1:] {
		line := lineIdx + 2
		name := strings.TrimSpace(cell(record, 0))
		if name == "" {
			continue
		}
		if strings.EqualFold(name, "par") {
			for col, hole := range holeCols {
				raw := strings.TrimSpace(cell(record, col))
				if raw == "" {
					continue
				}
				par, err := strconv.Atoi(raw)
				if err != nil || par <= 0 {
					return nil, fmt.Errorf("%w: invalid par %q for hole %s", ErrMalformedScorecard, raw, hole)
				}
				card.Par[hole] = par
			}
			continue
		}

		row := ScorecardRow{PlayerID: name, Gross: make(map[string]int)}
		if roundCol >= 0 {
			row.RoundID = strings.TrimSpace(cell(record, roundCol))
		}
		for col, hole := range holeCols {
			raw := strings.TrimSpace(cell(record, col))
			if raw == "" || raw == "-" {
				continue
			}
			gross, ok := scoredomain.ParseGross(raw)
			if !ok {
				return nil, fmt.Errorf("%w: line %d: invalid score %q for %s on hole %s", ErrMalformedScorecard, line, raw, name, hole)
			}
			row.Gross[hole] = gross
		}
		card.Rows = append(card.Rows, row)
	}
	if len(card.Rows) == 0 {
		return nil, fmt.Errorf("%w: no player rows", ErrMalformedScorecard)
	}
	return card, nil
}

func cell(record []string, i int) string {
	if i < len(record) {
		return record[i]
	}
	return ""
}

func trimEmpty(records [][]string) [][]string {
	out := records[:0:0]
	for _, r := range records {
		empty := true
		for _, c := range r {
			if strings.TrimSpace(c) != "" {
				empty = false
				break
			}
		}
		if !empty {
			out = append(out, r)
		}
	}
	return out
}
