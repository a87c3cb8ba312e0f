package scorehandlers

import (
	"log/slog"

	scoreservice "github.com/Black-And-White-Club/golf-scoring/app/modules/score/application"
)

// ScoreHandlers turns score write commands from the bus into service calls.
// The service publishes the recorded and failed events itself, so the
// handlers return no results.
type ScoreHandlers struct {
	service scoreservice.Service
	logger  *slog.Logger
}

var _ Handlers = (*ScoreHandlers)(nil)

// NewScoreHandlers creates a new ScoreHandlers.
func NewScoreHandlers(service scoreservice.Service, logger *slog.Logger) *ScoreHandlers {
	return &ScoreHandlers{
		service: service,
		logger:  logger,
	}
}
