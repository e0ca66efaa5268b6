package socket

import (
	"log"

	socketio "github.com/googollee/go-socket.io"
)

// Hub wraps the socket.io server; rooms are keyed by conversation id
type Hub struct {
	Server *socketio.Server
}

// NewHub initializes the socket.io server and its event handlers
func NewHub() *Hub {
	server := socketio.NewServer(nil)

	server.OnConnect("/", func(c socketio.Conn) error {
		log.Println("✅ Socket connected:", c.ID())
		return nil
	})

	server.OnEvent("/", "join", func(c socketio.Conn, conversationID string) {
		if conversationID == "" {
			log.Println("❌ Invalid conversationId in join request")
			return
		}
		log.Printf("👥 Socket %s joined conversation %s", c.ID(), conversationID)
		c.Join(conversationID)
	})

	server.OnEvent("/", "leave", func(c socketio.Conn, conversationID string) {
		c.Leave(conversationID)
	})

	server.OnDisconnect("/", func(c socketio.Conn, reason string) {
		log.Println("❌ Socket disconnected:", c.ID(), reason)
	})

	return &Hub{Server: server}
}

// BroadcastToConversation pushes an event to everybody in the conversation room
func (h *Hub) BroadcastToConversation(conversationID, event string, payload interface{}) {
	h.Server.BroadcastToRoom("/", conversationID, event, payload)
}
