package scoreboardhttp

import (
	"log/slog"
	"net/http"
	"time"

	gamespecservice "github.com/Black-And-White-Club/golf-scoring/app/modules/gamespec/application"
	scoreservice "github.com/Black-And-White-Club/golf-scoring/app/modules/score/application"
	scoreboardservice "github.com/Black-And-White-Club/golf-scoring/app/modules/scoreboard/application"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// maxUploadBytes caps scorecard uploads.
const maxUploadBytes = 4 << 20

// Handlers serves scoreboards, score writes and gamespecs over HTTP.
type Handlers struct {
	scoreboards scoreboardservice.Service
	scores      scoreservice.Service
	specs       gamespecservice.Service
	logger      *slog.Logger
}

// NewHandlers creates the HTTP handlers.
func NewHandlers(
	scoreboards scoreboardservice.Service,
	scores scoreservice.Service,
	specs gamespecservice.Service,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		scoreboards: scoreboards,
		scores:      scores,
		specs:       specs,
		logger:      logger,
	}
}

// NewRouter mounts every route on a chi router. An empty allowedOrigins
// allows any origin.
func NewRouter(h *Handlers, allowedOrigins []string) chi.Router {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Correlation-ID"},
		MaxAge:         300,
	}))

	r.Get("/healthz", h.HandleHealth)

	r.Route("/games/{gameID}", func(r chi.Router) {
		r.Get("/scoreboard", h.HandleScoreboard)
		r.Get("/scoreboard.xlsx", h.HandleScoreboardXLSX)
		r.Get("/chart.png", h.HandleChart)
		r.Post("/scores", h.HandleRecordScore)
		r.Post("/scorecard", h.HandleImportScorecard)
		r.Post("/recompute", h.HandleRecompute)
	})
	r.Route("/gamespecs", func(r chi.Router) {
		r.Get("/", h.HandleListSpecs)
		r.Get("/{name}", h.HandleGetSpec)
	})
	return r
}

// HandleHealth answers liveness checks.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
