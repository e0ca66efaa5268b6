package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"iskra_server/models"

	"github.com/google/uuid"
)

// markReadPageSize bounds how many of the newest messages one mark-as-read
// sweep inspects
const markReadPageSize = 100

// ChatStore is the storage surface the chat flow needs
type ChatStore interface {
	LatestMessages(ctx context.Context, conversationID string, limit int) ([]models.Message, error)
	InsertMessage(ctx context.Context, message models.Message) error
	MarkMessageRead(ctx context.Context, conversationID, createdAt string) error
	PutTypingIndicator(ctx context.Context, indicator models.TypingIndicator) error
	ConversationsForUser(ctx context.Context, userID string) ([]models.Conversation, error)
	ProfilePreview(ctx context.Context, profileID string) (name, photo string, err error)
}

// ChatService struct
type ChatService struct {
	Store ChatStore
	Hub   Broadcaster
	Now   func() time.Time
}

// NewChatService builds a ChatService with a real clock
func NewChatService(store ChatStore, hub Broadcaster) *ChatService {
	return &ChatService{Store: store, Hub: hub, Now: time.Now}
}

// GetMessagesByConversationID fetches the newest limit messages, oldest first.
// The store pages latest-first, so long conversations always surface their
// most recent messages instead of a frozen window of the earliest ones.
func (s *ChatService) GetMessagesByConversationID(ctx context.Context, conversationID string, limit int) ([]models.Message, error) {
	messages, err := s.Store.LatestMessages(ctx, conversationID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	// Reverse into the oldest-first order the chat view and the LLM history want
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// SendMessage validates and stores a new message, then broadcasts it to the room
func (s *ChatService) SendMessage(ctx context.Context, message models.Message) (models.Message, error) {
	if message.MessageID == "" {
		message.MessageID = uuid.New().String()
	}
	if message.CreatedAt == "" {
		message.CreatedAt = s.Now().UTC().Format(models.MessageTimeFormat)
	}
	message.IsUnread = true

	if err := Validate.Struct(message); err != nil {
		return models.Message{}, fmt.Errorf("invalid message: %w", err)
	}

	if err := s.Store.InsertMessage(ctx, message); err != nil {
		log.Printf("❌ Failed to store message: %v", err)
		return models.Message{}, fmt.Errorf("failed to store message: %w", err)
	}

	if s.Hub != nil {
		s.Hub.BroadcastToConversation(message.ConversationID, "newMessage", message)
	}

	log.Printf("📩 Message %s stored for conversation %s", message.MessageID, message.ConversationID)
	return message, nil
}

// MarkMessagesAsRead marks messages received by userID in the conversation as
// read. Unread messages are by construction the newest, so the sweep walks
// the latest-first page.
func (s *ChatService) MarkMessagesAsRead(ctx context.Context, conversationID, userID string) error {
	messages, err := s.Store.LatestMessages(ctx, conversationID, markReadPageSize)
	if err != nil {
		return fmt.Errorf("failed to fetch messages: %w", err)
	}

	for _, message := range messages {
		if message.SenderID == userID {
			continue // only messages the user received
		}
		if !message.IsUnread {
			continue
		}

		if err := s.Store.MarkMessageRead(ctx, conversationID, message.CreatedAt); err != nil {
			log.Printf("❌ Failed to mark message %s as read: %v", message.MessageID, err)
		}
	}

	return nil
}

// SetTyping upserts the typing-indicator row and broadcasts the change
func (s *ChatService) SetTyping(ctx context.Context, conversationID, userID string, isTyping bool) error {
	indicator := models.TypingIndicator{
		ConversationID: conversationID,
		UserID:         userID,
		IsTyping:       isTyping,
		UpdatedAt:      s.Now().UTC().Format(time.RFC3339),
	}

	if err := s.Store.PutTypingIndicator(ctx, indicator); err != nil {
		return fmt.Errorf("failed to update typing indicator: %w", err)
	}

	if s.Hub != nil {
		s.Hub.BroadcastToConversation(conversationID, "typing", indicator)
	}
	return nil
}

// GetConversationsForUser lists conversations where the user is a participant
func (s *ChatService) GetConversationsForUser(ctx context.Context, userID string) ([]models.Conversation, error) {
	conversations, err := s.Store.ConversationsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	return conversations, nil
}

// ConversationSummary is one row of the chat list: the conversation plus a
// preview of the other participant.
type ConversationSummary struct {
	models.Conversation
	PartnerID    string `json:"partnerId"`
	PartnerName  string `json:"partnerName,omitempty"`
	PartnerPhoto string `json:"partnerPhoto,omitempty"`
}

// GetConversationSummaries lists the user's conversations enriched with the
// partner's name and first photo. A missing partner profile leaves the
// preview fields empty rather than failing the whole list.
func (s *ChatService) GetConversationSummaries(ctx context.Context, userID string) ([]ConversationSummary, error) {
	conversations, err := s.GetConversationsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]ConversationSummary, 0, len(conversations))
	for _, conversation := range conversations {
		summary := ConversationSummary{
			Conversation: conversation,
			PartnerID:    conversation.OtherParticipant(userID),
		}

		name, photo, err := s.Store.ProfilePreview(ctx, summary.PartnerID)
		if err != nil {
			log.Printf("⚠️ Failed to load partner profile %s: %v", summary.PartnerID, err)
		} else {
			summary.PartnerName = name
			summary.PartnerPhoto = photo
		}

		summaries = append(summaries, summary)
	}
	return summaries, nil
}
