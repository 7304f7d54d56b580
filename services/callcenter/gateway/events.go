package gateway

import (
	"time"

	"github.com/ringdesk/callhub/internal/pkg/logger"
	"github.com/ringdesk/callhub/internal/pkg/nsq"
)

// EventPublisher mirrors call-lifecycle broadcasts to an NSQ topic for
// external consumers. It is optional: with a nil producer every publish is
// a no-op, and publish failures never affect the realtime path.
type EventPublisher struct {
	producer *nsq.Producer
	topic    string
}

// NewEventPublisher creates an event publisher. producer may be nil.
func NewEventPublisher(producer *nsq.Producer, topic string) *EventPublisher {
	return &EventPublisher{producer: producer, topic: topic}
}

type lifecycleEvent struct {
	Event       string      `json:"event"`
	Payload     interface{} `json:"payload"`
	PublishedAt time.Time   `json:"publishedAt"`
}

// Publish sends one lifecycle event, best-effort
func (p *EventPublisher) Publish(event string, payload interface{}) {
	if p.producer == nil {
		return
	}

	msg := lifecycleEvent{
		Event:       event,
		Payload:     payload,
		PublishedAt: time.Now(),
	}
	if err := p.producer.Publish(p.topic, msg); err != nil {
		logger.Warn("Failed to publish lifecycle event",
			logger.String("event", event),
			logger.Err(err))
	}
}
