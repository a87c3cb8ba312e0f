package handlerwrapper

import (
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
)

// ErrNoTopic is returned when a message carries no topic and none was given.
var ErrNoTopic = errors.New("message has no publish topic")

// TopicPublisher publishes each message to the topic in its metadata,
// falling back to the topic passed to Publish. Handlers registered with an
// empty publish topic rely on it.
type TopicPublisher struct {
	next message.Publisher
}

// NewTopicPublisher wraps next.
func NewTopicPublisher(next message.Publisher) *TopicPublisher {
	return &TopicPublisher{next: next}
}

// Publish routes every message by its metadata topic.
func (p *TopicPublisher) Publish(topic string, messages ...*message.Message) error {
	for _, msg := range messages {
		t := msg.Metadata.Get(MetadataTopic)
		if t == "" {
			t = topic
		}
		if t == "" {
			return fmt.Errorf("%w: message %s", ErrNoTopic, msg.UUID)
		}
		if err := p.next.Publish(t, msg); err != nil {
			return fmt.Errorf("failed to publish to %s: %w", t, err)
		}
	}
	return nil
}

// Close closes the wrapped publisher.
func (p *TopicPublisher) Close() error {
	return p.next.Close()
}
