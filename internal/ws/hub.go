// internal/ws/hub.go
package ws

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Hub is the room-based websocket fan-out behind the Sink interface.
// Merchants join their own "user:<id>" room, admins additionally join the
// shared "admin" room. Publishing never blocks: when the broadcast queue is
// full the event is dropped, since delivery is best-effort.
type Hub struct {
	rooms      map[string]map[*websocket.Conn]bool
	broadcast  chan outbound
	register   chan subscription
	unregister chan subscription
	mu         sync.Mutex
}

type subscription struct {
	conn   *websocket.Conn
	topics []string
}

type outbound struct {
	topic string
	event Event
}

// joinMessage is the first frame a client sends after connecting.
type joinMessage struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*websocket.Conn]bool),
		broadcast:  make(chan outbound, 256),
		register:   make(chan subscription),
		unregister: make(chan subscription),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			for _, topic := range sub.topics {
				if h.rooms[topic] == nil {
					h.rooms[topic] = make(map[*websocket.Conn]bool)
				}
				h.rooms[topic][sub.conn] = true
			}
			h.mu.Unlock()

		case sub := <-h.unregister:
			h.mu.Lock()
			for _, topic := range sub.topics {
				if _, ok := h.rooms[topic][sub.conn]; ok {
					delete(h.rooms[topic], sub.conn)
				}
			}
			h.mu.Unlock()
			sub.conn.Close()

		case msg := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.rooms[msg.topic] {
				if err := conn.WriteJSON(msg.event); err != nil {
					logrus.WithError(err).Debug("ws write failed, dropping connection")
					conn.Close()
					delete(h.rooms[msg.topic], conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish implements Sink. Non-blocking by contract.
func (h *Hub) Publish(topic string, event Event) {
	select {
	case h.broadcast <- outbound{topic: topic, event: event}:
	default:
		logrus.WithField("topic", topic).Warn("ws broadcast queue full, event dropped")
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWebSocket upgrades the connection and waits for a single join frame
// naming the caller, mirroring the room strategy of the client apps.
func (h *Hub) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Warn("ws upgrade failed")
		return
	}

	var join joinMessage
	if err := conn.ReadJSON(&join); err != nil || join.UserID == "" {
		conn.Close()
		return
	}

	topics := []string{"user:" + join.UserID}
	if join.Role == "ADMIN" {
		topics = append(topics, AdminTopic)
	}

	sub := subscription{conn: conn, topics: topics}
	h.register <- sub

	// Block until the peer goes away; inbound frames are ignored.
	go func() {
		defer func() { h.unregister <- sub }()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
