package services

// Broadcaster pushes realtime events to everybody subscribed to a conversation.
// The socket layer implements it; services treat a nil Broadcaster as "no realtime".
type Broadcaster interface {
	BroadcastToConversation(conversationID, event string, payload interface{})
}
