package scoreboardhttp

import (
	"encoding/json"
	"errors"
	"net/http"

	gamespecdomain "github.com/Black-And-White-Club/golf-scoring/app/modules/gamespec/domain"
	gamespecdb "github.com/Black-And-White-Club/golf-scoring/app/modules/gamespec/infrastructure/repositories"
	scoreservice "github.com/Black-And-White-Club/golf-scoring/app/modules/score/application"
	scoreboardservice "github.com/Black-And-White-Club/golf-scoring/app/modules/scoreboard/application"
	scoreboarddomain "github.com/Black-And-White-Club/golf-scoring/app/modules/scoreboard/domain"
	scoreboarddb "github.com/Black-And-White-Club/golf-scoring/app/modules/scoreboard/infrastructure/repositories"
)

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeBytes(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	if filename != "" {
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	writeJSON(w, status, errorBody{Error: err.Error(), Code: code})
}

// statusFor maps sentinel errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, scoreboardservice.ErrGameNotFound),
		errors.Is(err, scoreboarddb.ErrNotFound),
		errors.Is(err, gamespecdb.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, scoreboardservice.ErrUnknownGameSpec),
		errors.Is(err, gamespecdomain.ErrMalformedGameSpec),
		errors.Is(err, scoreboarddomain.ErrNoGameSpec):
		return http.StatusUnprocessableEntity
	case errors.Is(err, scoreservice.ErrInvalidHole),
		errors.Is(err, scoreservice.ErrInvalidKey),
		errors.Is(err, scoreservice.ErrInvalidScore),
		errors.Is(err, scoreservice.ErrMissingIdentity),
		errors.Is(err, scoreservice.ErrUnknownRound):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// failureStatus maps a scoreboard failure code to a status.
func failureStatus(code string) int {
	if code == scoreboardservice.CodeGameNotFound {
		return http.StatusNotFound
	}
	return http.StatusUnprocessableEntity
}
