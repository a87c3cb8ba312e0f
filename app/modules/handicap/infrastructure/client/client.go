// Package handicapclient posts finished rounds to the handicap authority.
package handicapclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	handicapdomain "github.com/Black-And-White-Club/golf-scoring/app/modules/handicap/domain"
	"github.com/Black-And-White-Club/golf-scoring/app/shared/observability/attr"
	sharedtypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/shared"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

// ErrPostingUnavailable indicates the authority could not take the round
// right now. The job is retried.
var ErrPostingUnavailable = errors.New("handicap authority unavailable")

// PostingClient posts one round.
type PostingClient interface {
	PostRound(ctx context.Context, req PostingRequest) (PostingResult, error)
}

// PostingRequest is the body sent for a round.
type PostingRequest struct {
	GameID             sharedtypes.GameID   `json:"game_id"`
	RoundID            sharedtypes.RoundID  `json:"round_id"`
	PlayerID           sharedtypes.PlayerID `json:"player_id"`
	PlayedAt           time.Time            `json:"played_at"`
	Scope              string               `json:"holes"`
	CourseHandicap     int                  `json:"course_handicap"`
	GrossScore         int                  `json:"gross_score"`
	AdjustedGrossScore int                  `json:"adjusted_gross_score"`
	Differential       float64              `json:"differential"`
}

// NewPostingRequest builds the request for a candidate.
func NewPostingRequest(gameID sharedtypes.GameID, playedAt time.Time, c handicapdomain.Candidate) PostingRequest {
	return PostingRequest{
		GameID:             gameID,
		RoundID:            c.RoundID,
		PlayerID:           c.PlayerID,
		PlayedAt:           playedAt,
		Scope:              string(c.Scope),
		CourseHandicap:     c.CourseHandicap,
		GrossScore:         c.GrossScore,
		AdjustedGrossScore: c.AdjustedGrossScore,
		Differential:       c.Differential,
	}
}

// PostingResult is the authority's answer.
type PostingResult struct {
	ID                string   `json:"id"`
	Success           bool     `json:"success"`
	Messages          []string `json:"messages,omitempty"`
	EstimatedHandicap *float64 `json:"estimated_handicap,omitempty"`
}

// Config configures an HTTPClient.
type Config struct {
	BaseURL       string
	TokenURL      string
	ClientID      string
	ClientSecret  string
	RatePerSecond float64
	Burst         int
	Timeout       time.Duration
}

// HTTPClient talks to the authority over HTTP with client credentials.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

var _ PostingClient = (*HTTPClient)(nil)

// NewHTTPClient creates a client. Without a token URL requests are sent
// unauthenticated.
func NewHTTPClient(ctx context.Context, cfg Config, logger *slog.Logger) *HTTPClient {
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = 1
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	hc := &http.Client{Timeout: cfg.Timeout}
	if cfg.TokenURL != "" {
		cc := clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
		}
		hc = cc.Client(ctx)
		hc.Timeout = cfg.Timeout
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    hc,
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.Burst),
		logger:  logger,
	}
}

// PostRound sends one round. A 2xx or 422 answer is decoded into the
// result; 429 and 5xx answers return ErrPostingUnavailable.
func (c *HTTPClient) PostRound(ctx context.Context, req PostingRequest) (PostingResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return PostingResult{}, fmt.Errorf("rate limiter: %w", err)
	}

	body, err := json.Marshal(req)
	if err != nil {
		return PostingResult{}, fmt.Errorf("failed to marshal posting request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/scores", bytes.NewReader(body))
	if err != nil {
		return PostingResult{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return PostingResult{}, fmt.Errorf("%w: %v", ErrPostingUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return PostingResult{}, fmt.Errorf("failed to read posting response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		c.logger.WarnContext(ctx, "Handicap authority unavailable",
			attr.RoundID("round_id", req.RoundID),
			attr.Int("status", resp.StatusCode),
		)
		return PostingResult{}, fmt.Errorf("%w: status %d", ErrPostingUnavailable, resp.StatusCode)
	case resp.StatusCode == http.StatusUnprocessableEntity:
		var out PostingResult
		if err := json.Unmarshal(respBody, &out); err != nil || len(out.Messages) == 0 {
			out.Messages = []string{strings.TrimSpace(string(respBody))}
		}
		out.Success = false
		return out, nil
	case resp.StatusCode >= 300:
		return PostingResult{}, fmt.Errorf("posting rejected with status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var out PostingResult
	if err := json.Unmarshal(respBody, &out); err != nil {
		return PostingResult{}, fmt.Errorf("failed to decode posting response: %w", err)
	}
	c.logger.InfoContext(ctx, "Round posted",
		attr.RoundID("round_id", req.RoundID),
		attr.String("posting_id", out.ID),
		attr.Bool("success", out.Success),
	)
	return out, nil
}
