package scoreboardhttp

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	scoreservice "github.com/Black-And-White-Club/golf-scoring/app/modules/score/application"
	"github.com/Black-And-White-Club/golf-scoring/app/shared/observability/attr"
)

// HandleRecordScore records one score write for the game in the path.
func (h *Handlers) HandleRecordScore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var cmd scoreservice.RecordScoreCommand
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxUploadBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cmd); err != nil {
		writeError(w, http.StatusBadRequest, "", fmt.Errorf("invalid score body: %w", err))
		return
	}
	cmd.GameID = gameIDParam(r)

	res, err := h.scores.RecordScore(ctx, cmd)
	if err != nil {
		h.logger.ErrorContext(ctx, "Score write failed",
			attr.GameID("game_id", cmd.GameID),
			attr.Error(err),
		)
		writeError(w, statusFor(err), "", err)
		return
	}
	if res.IsFailure() {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: res.Failure.Reason})
		return
	}
	writeJSON(w, http.StatusCreated, res.Success)
}

// HandleImportScorecard records every gross score on an uploaded CSV or
// XLSX scorecard. The format follows the filename query parameter.
func (h *Handlers) HandleImportScorecard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	gameID := gameIDParam(r)
	filename := r.URL.Query().Get("filename")
	if filename == "" {
		writeError(w, http.StatusBadRequest, "", fmt.Errorf("missing filename query parameter"))
		return
	}
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUploadBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "", err)
		return
	}

	res, err := h.scores.ImportScorecard(ctx, gameID, filename, data)
	if err != nil {
		writeError(w, statusFor(err), "", err)
		return
	}
	if res.IsFailure() {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: res.Failure.Reason})
		return
	}
	writeJSON(w, http.StatusCreated, res.Success)
}

