package scoreboardhttp

import (
	"errors"
	"net/http"

	"github.com/Black-And-White-Club/golf-scoring/app/shared/observability/attr"
	sharedtypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/shared"
	"github.com/go-chi/chi/v5"
)

var errMissingGameID = errors.New("missing game id")

func gameIDParam(r *http.Request) sharedtypes.GameID {
	return sharedtypes.GameID(chi.URLParam(r, "gameID"))
}

// HandleScoreboard returns the computed scoreboard of a game.
func (h *Handlers) HandleScoreboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	gameID := gameIDParam(r)
	if gameID == "" {
		writeError(w, http.StatusBadRequest, "", errMissingGameID)
		return
	}

	res, err := h.scoreboards.ComputeScoreboard(ctx, gameID)
	if err != nil {
		h.logger.ErrorContext(ctx, "Scoreboard request failed",
			attr.GameID("game_id", gameID),
			attr.Error(err),
		)
		writeError(w, statusFor(err), "", err)
		return
	}
	if res.IsFailure() {
		writeJSON(w, failureStatus(res.Failure.Code), errorBody{Error: res.Failure.Reason, Code: res.Failure.Code})
		return
	}
	w.Header().Set("ETag", `"`+res.Success.InputHash+`"`)
	writeJSON(w, http.StatusOK, res.Success)
}

// HandleScoreboardXLSX returns the scoreboard as a workbook.
func (h *Handlers) HandleScoreboardXLSX(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	gameID := gameIDParam(r)
	body, err := h.scoreboards.ExportXLSX(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "Scoreboard export failed",
			attr.GameID("game_id", gameID),
			attr.Error(err),
		)
		writeError(w, statusFor(err), "", err)
		return
	}
	writeBytes(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", string(gameID)+".xlsx", body)
}

// HandleChart returns the running total chart as a PNG.
func (h *Handlers) HandleChart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	gameID := gameIDParam(r)
	body, err := h.scoreboards.RunningTotalChart(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "Chart rendering failed",
			attr.GameID("game_id", gameID),
			attr.Error(err),
		)
		writeError(w, statusFor(err), "", err)
		return
	}
	writeBytes(w, "image/png", "", body)
}

// HandleRecompute recomputes the scoreboard and publishes the outcome.
func (h *Handlers) HandleRecompute(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	gameID := gameIDParam(r)
	res, err := h.scoreboards.RecomputeAndPublish(ctx, gameID)
	if err != nil {
		writeError(w, statusFor(err), "", err)
		return
	}
	if res.IsFailure() {
		writeJSON(w, failureStatus(res.Failure.Code), errorBody{Error: res.Failure.Reason, Code: res.Failure.Code})
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{
		"game_id":           gameID,
		"input_hash":        res.Success.InputHash,
		"enqueued_postings": res.Success.Enqueued,
	})
}
