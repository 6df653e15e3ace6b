// internal/ws/sink.go
package ws

import "github.com/google/uuid"

// Event is the unit delivered to a room. Delivery is best-effort and
// unordered relative to the HTTP response that triggered it.
type Event struct {
	Name    string      `json:"name"`
	Payload interface{} `json:"payload"`
}

// Sink publishes events to a topic. Implementations must never block the
// caller or surface delivery failures into the triggering mutation.
type Sink interface {
	Publish(topic string, event Event)
}

// Topic layout: admins share one room, each merchant has their own.
const AdminTopic = "admin"

func UserTopic(userID uuid.UUID) string {
	return "user:" + userID.String()
}

// NopSink discards all events. Used in tests and batch tooling.
type NopSink struct{}

func (NopSink) Publish(topic string, event Event) {}
