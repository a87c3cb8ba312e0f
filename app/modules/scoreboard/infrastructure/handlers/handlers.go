package scoreboardhandlers

import (
	"log/slog"

	scoreboardservice "github.com/Black-And-White-Club/golf-scoring/app/modules/scoreboard/application"
)

// ScoreboardHandlers implements the Handlers interface for scoreboard events.
type ScoreboardHandlers struct {
	service scoreboardservice.Service
	logger  *slog.Logger
}

var _ Handlers = (*ScoreboardHandlers)(nil)

// NewScoreboardHandlers creates a new ScoreboardHandlers instance.
func NewScoreboardHandlers(service scoreboardservice.Service, logger *slog.Logger) *ScoreboardHandlers {
	return &ScoreboardHandlers{
		service: service,
		logger:  logger,
	}
}
