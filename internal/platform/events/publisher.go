// Package events provides a fire-and-forget NATS publisher for board domain
// events. Consumers (notifications, search indexing) live outside this repo.
package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Subject constants for every event type.
const (
	SubjectCommentCreated = "board.comments.created"
	SubjectCommentUpdated = "board.comments.updated"
	SubjectCommentDeleted = "board.comments.deleted"
	SubjectPostCreated    = "board.posts.created"
	SubjectPostUpdated    = "board.posts.updated"
	SubjectPostDeleted    = "board.posts.deleted"
)

// Event is the canonical envelope sent to all board.* subjects.
type Event struct {
	EventID    string         `json:"event_id"`
	EventName  string         `json:"event_name"`
	UserID     string         `json:"user_id,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
	Properties map[string]any `json:"properties,omitempty"`
}

// AsyncPublisher is the part of nats.JetStreamContext the publisher needs.
type AsyncPublisher interface {
	PublishAsync(subj string, data []byte, opts ...nats.PubOpt) (nats.PubAckFuture, error)
}

// Publisher publishes events to NATS JetStream.
// The zero value and a nil pointer are both safe no-op stubs.
type Publisher struct {
	js  AsyncPublisher
	log *zap.Logger
}

// New creates a Publisher using an existing JetStream context.
// Pass js=nil to get a no-op stub (useful in tests and without NATS).
func New(js AsyncPublisher, log *zap.Logger) *Publisher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Publisher{js: js, log: log}
}

// Publish sends an event asynchronously. Failures are logged as warnings and
// never surface to the caller.
func (p *Publisher) Publish(subject, eventName, userID string, props map[string]any) {
	if p == nil || p.js == nil {
		return
	}
	ev := Event{
		EventID:    uuid.NewString(),
		EventName:  eventName,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
		Properties: props,
	}
	data, err := json.Marshal(ev)
	if err != nil {
		p.log.Warn("events: marshal failed", zap.String("event", eventName), zap.Error(err))
		return
	}
	if _, err := p.js.PublishAsync(subject, data); err != nil {
		p.log.Warn("events: publish failed", zap.String("subject", subject), zap.Error(err))
	}
}
