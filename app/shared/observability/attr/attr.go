// Package attr provides slog attribute helpers shared by every module so log
// keys stay consistent across services, handlers and workers.
package attr

import (
	"context"
	"log/slog"
	"time"

	sharedtypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/shared"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

type correlationIDKey struct{}

// WithCorrelationID stores a correlation id on the context.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// CorrelationID returns the correlation id stored on the context, if any.
func CorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(correlationIDKey{}).(string)
	return id
}

// ExtractCorrelationID returns the correlation id on ctx as an attribute.
func ExtractCorrelationID(ctx context.Context) slog.Attr {
	return slog.String("correlation_id", CorrelationID(ctx))
}

// CorrelationIDFromMsg returns the watermill correlation id of msg.
func CorrelationIDFromMsg(msg *message.Message) slog.Attr {
	if msg == nil {
		return slog.String("correlation_id", "")
	}
	return slog.String("correlation_id", middleware.MessageCorrelationID(msg))
}

func String(key, value string) slog.Attr          { return slog.String(key, value) }
func Int(key string, value int) slog.Attr         { return slog.Int(key, value) }
func Int64(key string, value int64) slog.Attr     { return slog.Int64(key, value) }
func Float64(key string, value float64) slog.Attr { return slog.Float64(key, value) }
func Bool(key string, value bool) slog.Attr       { return slog.Bool(key, value) }
func Any(key string, value any) slog.Attr         { return slog.Any(key, value) }
func Time(key string, value time.Time) slog.Attr  { return slog.Time(key, value) }

func Duration(key string, value time.Duration) slog.Attr {
	return slog.Duration(key, value)
}

// Error renders err under the "error" key. A nil error renders as empty.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

func GameID(key string, id sharedtypes.GameID) slog.Attr     { return slog.String(key, string(id)) }
func RoundID(key string, id sharedtypes.RoundID) slog.Attr   { return slog.String(key, string(id)) }
func PlayerID(key string, id sharedtypes.PlayerID) slog.Attr { return slog.String(key, string(id)) }
