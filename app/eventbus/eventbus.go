// Package eventbus provides the watermill publisher and subscriber pair
// every module router runs on.
package eventbus

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Black-And-White-Club/golf-scoring/app/shared/observability/attr"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	nc "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// EventBus is a publisher and subscriber sharing one transport.
type EventBus interface {
	Publisher() message.Publisher
	Subscriber() message.Subscriber
	Close() error
}

// NATSEventBus runs on NATS JetStream.
type NATSEventBus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	js         jetstream.JetStream
	natsConn   *nc.Conn
	logger     *slog.Logger
}

var _ EventBus = (*NATSEventBus)(nil)

// NATSOptions configures NewNATSEventBus.
type NATSOptions struct {
	URL        string
	QueueGroup string
	Stream     string
	Subjects   []string
}

// consumerName turns a topic into a valid JetStream durable name.
func consumerName(prefix, topic string) string {
	r := strings.NewReplacer(".", "_", "*", "all", ">", "rest")
	return prefix + "_" + r.Replace(topic)
}

// subjectCalculator keeps the topic as the subject and derives a queue
// group per topic, so every replica shares one consumer.
func subjectCalculator(queueGroupPrefix, topic string) *nats.SubjectDetail {
	detail := &nats.SubjectDetail{Primary: topic}
	if queueGroupPrefix != "" {
		detail.QueueGroup = consumerName(queueGroupPrefix, topic)
	}
	return detail
}

// NewNATSEventBus connects to NATS, provisions the stream and creates the
// watermill publisher and subscriber.
func NewNATSEventBus(ctx context.Context, opts NATSOptions, logger *slog.Logger) (*NATSEventBus, error) {
	natsOpts := []nc.Option{
		nc.RetryOnFailedConnect(true),
		nc.MaxReconnects(-1),
		nc.ReconnectWait(2 * time.Second),
	}

	natsConn, err := nc.Connect(opts.URL, natsOpts...)
	if err != nil {
		logger.Error("Failed to connect to NATS", attr.Error(err))
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(natsConn)
	if err != nil {
		natsConn.Close()
		return nil, fmt.Errorf("failed to initialize JetStream: %w", err)
	}

	eb := &NATSEventBus{js: js, natsConn: natsConn, logger: logger}
	if err := eb.EnsureStream(ctx, opts.Stream, opts.Subjects); err != nil {
		natsConn.Close()
		return nil, err
	}

	wmLogger := watermill.NewSlogLogger(logger)
	marshaler := &nats.NATSMarshaler{}

	eb.publisher, err = nats.NewPublisher(nats.PublisherConfig{
		URL:         opts.URL,
		NatsOptions: natsOpts,
		Marshaler:   marshaler,
		JetStream: nats.JetStreamConfig{
			AutoProvision: false,
			TrackMsgId:    true,
		},
		SubjectCalculator: subjectCalculator,
	}, wmLogger)
	if err != nil {
		natsConn.Close()
		return nil, fmt.Errorf("failed to create Watermill publisher: %w", err)
	}

	eb.subscriber, err = nats.NewSubscriber(nats.SubscriberConfig{
		URL:              opts.URL,
		QueueGroupPrefix: opts.QueueGroup,
		SubscribersCount: 1,
		CloseTimeout:     30 * time.Second,
		AckWaitTimeout:   30 * time.Second,
		NatsOptions:      natsOpts,
		Unmarshaler:      marshaler,
		JetStream: nats.JetStreamConfig{
			AutoProvision: false,
			SubscribeOptions: []nc.SubOpt{
				nc.DeliverNew(),
				nc.AckExplicit(),
			},
			DurablePrefix: opts.QueueGroup,
			DurableCalculator: func(prefix, topic string) string {
				return consumerName(prefix, topic)
			},
		},
		SubjectCalculator: subjectCalculator,
	}, wmLogger)
	if err != nil {
		_ = eb.publisher.Close()
		natsConn.Close()
		return nil, fmt.Errorf("failed to create Watermill subscriber: %w", err)
	}

	logger.Info("Event bus connected",
		attr.String("url", opts.URL),
		attr.String("stream", opts.Stream),
	)
	return eb, nil
}

// Publisher returns the JetStream publisher.
func (eb *NATSEventBus) Publisher() message.Publisher { return eb.publisher }

// Subscriber returns the JetStream subscriber.
func (eb *NATSEventBus) Subscriber() message.Subscriber { return eb.subscriber }

// Close closes all NATS and Watermill resources.
func (eb *NATSEventBus) Close() error {
	if eb.publisher != nil {
		if err := eb.publisher.Close(); err != nil {
			eb.logger.Error("Error closing NATS publisher", attr.Error(err))
		}
	}
	if eb.subscriber != nil {
		if err := eb.subscriber.Close(); err != nil {
			eb.logger.Error("Error closing NATS subscriber", attr.Error(err))
		}
	}
	if eb.natsConn != nil {
		eb.natsConn.Close()
	}
	return nil
}

// InProcessEventBus delivers messages inside the process. It backs single
// node deployments without NATS and the tests.
type InProcessEventBus struct {
	pubsub *gochannel.GoChannel
}

var _ EventBus = (*InProcessEventBus)(nil)

// NewInProcessEventBus creates a gochannel backed bus.
func NewInProcessEventBus(logger *slog.Logger) *InProcessEventBus {
	return &InProcessEventBus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: 256,
		}, watermill.NewSlogLogger(logger)),
	}
}

// Publisher returns the in process publisher.
func (eb *InProcessEventBus) Publisher() message.Publisher { return eb.pubsub }

// Subscriber returns the in process subscriber.
func (eb *InProcessEventBus) Subscriber() message.Subscriber { return eb.pubsub }

// Close closes the channels.
func (eb *InProcessEventBus) Close() error { return eb.pubsub.Close() }
