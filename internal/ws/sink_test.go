// internal/ws/sink_test.go
package ws

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUserTopic(t *testing.T) {
	id := uuid.New()
	assert.Equal(t, "user:"+id.String(), UserTopic(id))
	assert.Equal(t, "admin", AdminTopic)
}

func TestHubPublishNeverBlocks(t *testing.T) {
	// No Run loop draining the queue: once the buffer fills, further
	// publishes must drop instead of hanging the caller.
	hub := NewHub()
	for i := 0; i < 1000; i++ {
		hub.Publish(AdminTopic, Event{Name: "hotel:submitted"})
	}
}

func TestNopSink(t *testing.T) {
	var sink Sink = NopSink{}
	sink.Publish(AdminTopic, Event{Name: "hotel:updated"})
}
