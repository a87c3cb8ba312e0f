package scoreboardservice

import (
	"context"
	"fmt"

	scoreboarddomain "github.com/Black-And-White-Club/golf-scoring/app/modules/scoreboard/domain"
	sharedtypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/shared"
	"github.com/xuri/excelize/v2"
)

// Sheet names of an exported scoreboard.
const (
	SheetHoles      = "Holes"
	SheetTeams      = "Teams"
	SheetCumulative = "Cumulative"
)

// ExportXLSX renders the scoreboard of a game as a workbook.
func (s *ScoreboardService) ExportXLSX(ctx context.Context, gameID sharedtypes.GameID) ([]byte, error) {
	sb, err := s.current(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return WriteXLSX(sb)
}

// current returns the computed scoreboard or the failure as an error.
func (s *ScoreboardService) current(ctx context.Context, gameID sharedtypes.GameID) (scoreboarddomain.Scoreboard, error) {
	res, err := s.ComputeScoreboard(ctx, gameID)
	if err != nil {
		return scoreboarddomain.Scoreboard{}, err
	}
	if res.IsFailure() {
		return scoreboarddomain.Scoreboard{}, FailureErr(*res.Failure)
	}
	return res.Success.Scoreboard, nil
}

// WriteXLSX renders a scoreboard with one sheet per view: gross per hole
// and player, team points per hole, and the cumulative standings. The
// Teams sheet exists only for team games.
func WriteXLSX(sb scoreboarddomain.Scoreboard) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetHoles); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	holes := sb.Meta.HolesInPlay
	players := sb.SortedPlayers()

	header := []any{"Player"}
	for _, h := range holes {
		header = append(header, h)
	}
	header = append(header, "Gross", "Net", "Net to par", "Points")
	rows := [][]any{header}
	for _, id := range players {
		row := []any{string(id)}
		for _, h := range holes {
			row = append(row, grossCell(sb, h, id))
		}
		if c, ok := sb.Cumulative.Players[id]; ok {
			row = append(row, c.Gross, c.Net, c.NetToPar, c.Points)
		}
		rows = append(rows, row)
	}
	if err := writeRows(f, SheetHoles, rows); err != nil {
		return nil, err
	}

	if sb.Meta.HasTeams {
		if _, err := f.NewSheet(SheetTeams); err != nil {
			return nil, fmt.Errorf("failed to add sheet: %w", err)
		}
		header := []any{"Team"}
		for _, h := range holes {
			header = append(header, h)
		}
		header = append(header, "Points", "Rank")
		rows := [][]any{header}
		for _, id := range sb.SortedTeams() {
			row := []any{string(id)}
			for _, h := range holes {
				row = append(row, teamPointsCell(sb, h, id))
			}
			if c, ok := sb.Cumulative.Teams[id]; ok {
				row = append(row, c.Points, c.Rank)
			}
			rows = append(rows, row)
		}
		if err := writeRows(f, SheetTeams, rows); err != nil {
			return nil, err
		}
	}

	if _, err := f.NewSheet(SheetCumulative); err != nil {
		return nil, fmt.Errorf("failed to add sheet: %w", err)
	}
	rows = [][]any{{"Rank", "Player", "Thru", "Gross", "Gross to par", "Net", "Net to par", "Points"}}
	for _, id := range players {
		c, ok := sb.Cumulative.Players[id]
		if !ok {
			continue
		}
		rows = append(rows, []any{c.Rank, string(id), c.Thru, c.Gross, c.GrossToPar, c.Net, c.NetToPar, c.Points})
	}
	if err := writeRows(f, SheetCumulative, rows); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

// Unscored cells stay empty rather than zero.
func grossCell(sb scoreboarddomain.Scoreboard, hole string, id sharedtypes.PlayerID) any {
	hr, ok := sb.Holes[hole]
	if !ok {
		return ""
	}
	p, ok := hr.Players[id]
	if !ok || p.Gross == nil {
		return ""
	}
	return *p.Gross
}

func teamPointsCell(sb scoreboarddomain.Scoreboard, hole string, id sharedtypes.TeamID) any {
	hr, ok := sb.Holes[hole]
	if !ok {
		return ""
	}
	t, ok := hr.Teams[id]
	if !ok || t.Points == nil {
		return ""
	}
	return *t.Points
}
