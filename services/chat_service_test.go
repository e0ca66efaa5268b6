package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"iskra_server/models"
)

type fakeChatStore struct {
	messages      []models.Message // ascending by CreatedAt
	conversations []models.Conversation
	names         map[string]string
	photos        map[string]string
}

func newFakeChatStore() *fakeChatStore {
	return &fakeChatStore{
		names:  map[string]string{},
		photos: map[string]string{},
	}
}

// LatestMessages mirrors the store contract: newest first, at most limit rows.
func (f *fakeChatStore) LatestMessages(ctx context.Context, conversationID string, limit int) ([]models.Message, error) {
	var page []models.Message
	for i := len(f.messages) - 1; i >= 0 && len(page) < limit; i-- {
		if f.messages[i].ConversationID == conversationID {
			page = append(page, f.messages[i])
		}
	}
	return page, nil
}

func (f *fakeChatStore) InsertMessage(ctx context.Context, message models.Message) error {
	f.messages = append(f.messages, message)
	return nil
}

func (f *fakeChatStore) MarkMessageRead(ctx context.Context, conversationID, createdAt string) error {
	for i := range f.messages {
		if f.messages[i].ConversationID == conversationID && f.messages[i].CreatedAt == createdAt {
			f.messages[i].IsUnread = false
		}
	}
	return nil
}

func (f *fakeChatStore) PutTypingIndicator(ctx context.Context, indicator models.TypingIndicator) error {
	return nil
}

func (f *fakeChatStore) ConversationsForUser(ctx context.Context, userID string) ([]models.Conversation, error) {
	var out []models.Conversation
	for _, c := range f.conversations {
		if c.HasParticipant(userID) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeChatStore) ProfilePreview(ctx context.Context, profileID string) (string, string, error) {
	if _, ok := f.names[profileID]; !ok {
		return "", "", ErrItemNotFound
	}
	return f.names[profileID], f.photos[profileID], nil
}

type fakeHub struct {
	events []string
}

func (f *fakeHub) BroadcastToConversation(conversationID, event string, payload interface{}) {
	f.events = append(f.events, event)
}

var chatNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestChatService(store ChatStore, hub Broadcaster) *ChatService {
	s := NewChatService(store, hub)
	s.Now = func() time.Time { return chatNow }
	return s
}

// seedConversation writes count alternating messages between anna and boris,
// one second apart, ending at chatNow.
func seedConversation(store *fakeChatStore, count int) {
	start := chatNow.Add(-time.Duration(count) * time.Second)
	for i := 0; i < count; i++ {
		sender := "anna"
		if i%2 == 1 {
			sender = "boris"
		}
		store.messages = append(store.messages, models.Message{
			ConversationID: "c1",
			MessageID:      fmt.Sprintf("m%d", i+1),
			SenderID:       sender,
			Content:        fmt.Sprintf("сообщение %d", i+1),
			CreatedAt:      start.Add(time.Duration(i+1) * time.Second).Format(models.MessageTimeFormat),
		})
	}
}

func TestGetMessagesReturnsNewestWindow(t *testing.T) {
	store := newFakeChatStore()
	seedConversation(store, 120)
	s := newTestChatService(store, nil)

	messages, err := s.GetMessagesByConversationID(context.Background(), "c1", 50)
	if err != nil {
		t.Fatalf("GetMessagesByConversationID failed: %v", err)
	}
	if len(messages) != 50 {
		t.Fatalf("got %d messages, want 50", len(messages))
	}

	// The window must cover the newest messages, not a frozen oldest page
	if messages[len(messages)-1].MessageID != "m120" {
		t.Fatalf("last message = %s, want m120", messages[len(messages)-1].MessageID)
	}
	if messages[0].MessageID != "m71" {
		t.Fatalf("first message = %s, want m71", messages[0].MessageID)
	}
	for i := 1; i < len(messages); i++ {
		if messages[i-1].CreatedAt >= messages[i].CreatedAt {
			t.Fatalf("messages not in ascending order at index %d", i)
		}
	}
}

func TestMarkMessagesAsReadReachesNewestMessages(t *testing.T) {
	store := newFakeChatStore()
	seedConversation(store, 150)
	// The newest 30 messages from boris are unread
	for i := range store.messages {
		if i >= 120 && store.messages[i].SenderID == "boris" {
			store.messages[i].IsUnread = true
		}
	}
	s := newTestChatService(store, nil)

	if err := s.MarkMessagesAsRead(context.Background(), "c1", "anna"); err != nil {
		t.Fatalf("MarkMessagesAsRead failed: %v", err)
	}

	for _, m := range store.messages {
		if m.SenderID == "boris" && m.IsUnread {
			t.Fatalf("message %s from boris is still unread", m.MessageID)
		}
	}
}

func TestMarkMessagesAsReadSkipsOwnMessages(t *testing.T) {
	store := newFakeChatStore()
	store.messages = append(store.messages, models.Message{
		ConversationID: "c1", MessageID: "m1", SenderID: "anna",
		Content: "Привет!", IsUnread: true,
		CreatedAt: chatNow.Format(models.MessageTimeFormat),
	})
	s := newTestChatService(store, nil)

	if err := s.MarkMessagesAsRead(context.Background(), "c1", "anna"); err != nil {
		t.Fatalf("MarkMessagesAsRead failed: %v", err)
	}
	if !store.messages[0].IsUnread {
		t.Fatal("sender's own message must stay unread for the recipient")
	}
}

func TestSendMessageStoresAndBroadcasts(t *testing.T) {
	store := newFakeChatStore()
	hub := &fakeHub{}
	s := newTestChatService(store, hub)

	sent, err := s.SendMessage(context.Background(), models.Message{
		ConversationID: "c1", SenderID: "anna", Content: "Привет!",
	})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if sent.MessageID == "" || !sent.IsUnread {
		t.Fatalf("message not initialized: %+v", sent)
	}
	if sent.CreatedAt != chatNow.Format(models.MessageTimeFormat) {
		t.Fatalf("createdAt = %q, want fixed-width timestamp", sent.CreatedAt)
	}
	if len(store.messages) != 1 {
		t.Fatalf("stored %d messages, want 1", len(store.messages))
	}
	if len(hub.events) != 1 || hub.events[0] != "newMessage" {
		t.Fatalf("broadcast events = %v, want [newMessage]", hub.events)
	}
}

func TestSendMessageRejectsEmptyContent(t *testing.T) {
	s := newTestChatService(newFakeChatStore(), nil)

	if _, err := s.SendMessage(context.Background(), models.Message{
		ConversationID: "c1", SenderID: "anna",
	}); err == nil {
		t.Fatal("empty content must be rejected")
	}
}

func TestGetConversationSummaries(t *testing.T) {
	store := newFakeChatStore()
	store.conversations = append(store.conversations, models.Conversation{
		ConversationID: "c1", User1ID: "anna", User2ID: "boris",
	})
	store.names["boris"] = "Борис"
	store.photos["boris"] = "https://photos.example/boris.jpg"
	s := newTestChatService(store, nil)

	summaries, err := s.GetConversationSummaries(context.Background(), "anna")
	if err != nil {
		t.Fatalf("GetConversationSummaries failed: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("got %d summaries, want 1", len(summaries))
	}
	if summaries[0].PartnerID != "boris" || summaries[0].PartnerName != "Борис" {
		t.Fatalf("partner preview wrong: %+v", summaries[0])
	}
	if summaries[0].PartnerPhoto != "https://photos.example/boris.jpg" {
		t.Fatalf("partner photo = %q", summaries[0].PartnerPhoto)
	}
}
