package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/Black-And-White-Club/golf-scoring/app/shared/observability/attr"
	"github.com/nats-io/nats.go/jetstream"
)

// StreamManager is the part of jetstream.JetStream stream provisioning
// needs.
type StreamManager interface {
	Stream(ctx context.Context, stream string) (jetstream.Stream, error)
	CreateStream(ctx context.Context, cfg jetstream.StreamConfig) (jetstream.Stream, error)
	UpdateStream(ctx context.Context, cfg jetstream.StreamConfig) (jetstream.Stream, error)
}

// MissingSubjects returns the subjects of want that have lacks.
func MissingSubjects(have, want []string) []string {
	var out []string
	for _, s := range want {
		if !slices.Contains(have, s) {
			out = append(out, s)
		}
	}
	return out
}

// EnsureStream creates the stream or adds any missing subjects to it.
func (eb *NATSEventBus) EnsureStream(ctx context.Context, name string, subjects []string) error {
	return ensureStream(ctx, eb.js, eb.logger, name, subjects)
}

func ensureStream(ctx context.Context, js StreamManager, logger *slog.Logger, name string, subjects []string) error {
	stream, err := js.Stream(ctx, name)
	switch {
	case errors.Is(err, jetstream.ErrStreamNotFound):
		_, err = js.CreateStream(ctx, jetstream.StreamConfig{
			Name:      name,
			Subjects:  subjects,
			Retention: jetstream.LimitsPolicy,
			MaxAge:    7 * 24 * time.Hour,
			Storage:   jetstream.FileStorage,
		})
		if err != nil {
			return fmt.Errorf("failed to create stream %s: %w", name, err)
		}
		logger.Info("Stream created", attr.String("stream_name", name), attr.Int("subjects", len(subjects)))
		return nil
	case err != nil:
		return fmt.Errorf("failed to check if stream exists: %w", err)
	}

	info, err := stream.Info(ctx)
	if err != nil {
		return fmt.Errorf("failed to get stream info: %w", err)
	}
	missing := MissingSubjects(info.Config.Subjects, subjects)
	if len(missing) == 0 {
		logger.Info("Stream already exists with subjects", attr.String("stream_name", name))
		return nil
	}
	info.Config.Subjects = append(info.Config.Subjects, missing...)
	if _, err := js.UpdateStream(ctx, info.Config); err != nil {
		return fmt.Errorf("failed to update stream with new subjects: %w", err)
	}
	logger.Info("Stream updated with new subjects",
		attr.String("stream_name", name),
		attr.Any("added", missing),
	)
	return nil
}
