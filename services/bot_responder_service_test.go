package services

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"iskra_server/models"

	"github.com/sashabaranov/go-openai"
)

type fakeResponderStore struct {
	queue         []models.BotResponseQueueItem
	messages      []models.Message
	conversations map[string]models.Conversation
	profiles      map[string]models.Profile
	typingEvents  []bool
}

func newFakeResponderStore() *fakeResponderStore {
	return &fakeResponderStore{
		conversations: map[string]models.Conversation{},
		profiles:      map[string]models.Profile{},
	}
}

func (f *fakeResponderStore) DueQueueItems(ctx context.Context, now time.Time) ([]models.BotResponseQueueItem, error) {
	var due []models.BotResponseQueueItem
	for _, item := range f.queue {
		if item.Processed {
			continue
		}
		at, err := time.Parse(time.RFC3339, item.ScheduledAt)
		if err != nil {
			return nil, err
		}
		if !at.After(now) {
			due = append(due, item)
		}
	}
	return due, nil
}

func (f *fakeResponderStore) MarkProcessed(ctx context.Context, item models.BotResponseQueueItem) error {
	for i := range f.queue {
		if f.queue[i].BotID == item.BotID && f.queue[i].MessageID == item.MessageID {
			f.queue[i].Processed = true
			return nil
		}
	}
	return ErrItemNotFound
}

func (f *fakeResponderStore) EnqueueIfAbsent(ctx context.Context, item models.BotResponseQueueItem) error {
	for _, existing := range f.queue {
		if existing.BotID == item.BotID && existing.MessageID == item.MessageID {
			return ErrConditionFailed
		}
	}
	f.queue = append(f.queue, item)
	return nil
}

func (f *fakeResponderStore) RecentMessages(ctx context.Context, since time.Time) ([]models.Message, error) {
	var recent []models.Message
	for _, m := range f.messages {
		at, err := time.Parse(time.RFC3339Nano, m.CreatedAt)
		if err != nil {
			return nil, err
		}
		if !at.Before(since) {
			recent = append(recent, m)
		}
	}
	return recent, nil
}

func (f *fakeResponderStore) GetConversation(ctx context.Context, conversationID string) (*models.Conversation, error) {
	if c, ok := f.conversations[conversationID]; ok {
		return &c, nil
	}
	return nil, ErrItemNotFound
}

func (f *fakeResponderStore) MessagesForConversation(ctx context.Context, conversationID string) ([]models.Message, error) {
	var history []models.Message
	for _, m := range f.messages {
		if m.ConversationID == conversationID {
			history = append(history, m)
		}
	}
	return history, nil
}

func (f *fakeResponderStore) GetProfile(ctx context.Context, profileID string) (*models.Profile, error) {
	if p, ok := f.profiles[profileID]; ok {
		return &p, nil
	}
	return nil, ErrItemNotFound
}

func (f *fakeResponderStore) InsertMessage(ctx context.Context, message models.Message) error {
	f.messages = append(f.messages, message)
	return nil
}

func (f *fakeResponderStore) SetTyping(ctx context.Context, conversationID, userID string, isTyping bool) error {
	f.typingEvents = append(f.typingEvents, isTyping)
	return nil
}

func (f *fakeResponderStore) botMessages(botID string) []models.Message {
	var out []models.Message
	for _, m := range f.messages {
		if m.SenderID == botID {
			out = append(out, m)
		}
	}
	return out
}

type fakeCompleter struct {
	reply string
	err   error
	calls int
}

func (f *fakeCompleter) ChatCompletion(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	f.calls++
	return f.reply, f.err
}

var responderNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestResponder(store ResponderStore, ai ChatCompleter) *BotResponderService {
	s := NewBotResponderService(store, ai, nil)
	s.Now = func() time.Time { return responderNow }
	s.Rand = rand.New(rand.NewSource(1))
	return s
}

// humanWritesToBot seeds a matched human/bot conversation with one fresh
// user message addressed to the bot.
func humanWritesToBot(store *fakeResponderStore) {
	store.profiles["anna"] = models.Profile{ID: "anna", Name: "Анна"}
	store.profiles["bot-1"] = models.Profile{ID: "bot-1", Name: "Мария", Age: 27, City: "Казань", IsBot: true}
	store.conversations["c1"] = models.Conversation{
		ConversationID: "c1", User1ID: "anna", User2ID: "bot-1",
	}
	store.messages = append(store.messages, models.Message{
		ConversationID: "c1",
		MessageID:      "m1",
		SenderID:       "anna",
		Content:        "Привет!",
		CreatedAt:      responderNow.Add(-time.Minute).Format(models.MessageTimeFormat),
	})
}

func TestRunPassSchedulesReplyToBot(t *testing.T) {
	store := newFakeResponderStore()
	humanWritesToBot(store)
	s := newTestResponder(store, &fakeCompleter{reply: "Привет, Анна!"})

	summary, err := s.RunPass(context.Background())
	if err != nil {
		t.Fatalf("RunPass failed: %v", err)
	}
	if summary.ResponsesScheduled != 1 {
		t.Fatalf("scheduled = %d, want 1", summary.ResponsesScheduled)
	}
	if summary.ResponsesSent != 0 {
		t.Fatalf("sent = %d, want 0 on the scheduling pass", summary.ResponsesSent)
	}

	item := store.queue[0]
	if item.BotID != "bot-1" || item.MessageID != "m1" {
		t.Fatalf("queued wrong item: %+v", item)
	}
	at, err := time.Parse(time.RFC3339, item.ScheduledAt)
	if err != nil {
		t.Fatalf("bad scheduledAt: %v", err)
	}
	delay := at.Sub(responderNow)
	if delay < DefaultMinReplyDelay-time.Second || delay > DefaultMaxReplyDelay {
		t.Fatalf("delay %s outside [%s, %s]", delay, DefaultMinReplyDelay, DefaultMaxReplyDelay)
	}
}

func TestRunPassIsIdempotentForSameMessage(t *testing.T) {
	store := newFakeResponderStore()
	humanWritesToBot(store)
	s := newTestResponder(store, &fakeCompleter{reply: "ok"})

	if _, err := s.RunPass(context.Background()); err != nil {
		t.Fatalf("first pass failed: %v", err)
	}
	summary, err := s.RunPass(context.Background())
	if err != nil {
		t.Fatalf("second pass failed: %v", err)
	}
	if summary.ResponsesScheduled != 0 {
		t.Fatalf("replayed pass scheduled %d items, want 0", summary.ResponsesScheduled)
	}
	if len(store.queue) != 1 {
		t.Fatalf("queue grew to %d items on replay", len(store.queue))
	}
}

func TestRunPassNeverAnswersHumans(t *testing.T) {
	store := newFakeResponderStore()
	humanWritesToBot(store)
	// Latest message is the bot's own, so the pending recipient is the human
	store.messages = append(store.messages, models.Message{
		ConversationID: "c1",
		MessageID:      "m2",
		SenderID:       "bot-1",
		Content:        "Привет!",
		CreatedAt:      responderNow.Add(-30 * time.Second).Format(models.MessageTimeFormat),
	})
	s := newTestResponder(store, &fakeCompleter{reply: "ok"})

	summary, err := s.RunPass(context.Background())
	if err != nil {
		t.Fatalf("RunPass failed: %v", err)
	}
	if summary.ResponsesScheduled != 0 {
		t.Fatalf("scheduled %d replies to a human, want 0", summary.ResponsesScheduled)
	}
}

func TestRunPassSendsDueReply(t *testing.T) {
	store := newFakeResponderStore()
	humanWritesToBot(store)
	store.queue = append(store.queue, models.BotResponseQueueItem{
		QueueID: "q1", BotID: "bot-1", ConversationID: "c1", MessageID: "m1",
		ScheduledAt: responderNow.Add(-time.Second).Format(time.RFC3339),
	})
	ai := &fakeCompleter{reply: "Привет! Как дела?"}
	s := newTestResponder(store, ai)

	summary, err := s.RunPass(context.Background())
	if err != nil {
		t.Fatalf("RunPass failed: %v", err)
	}
	if summary.ResponsesSent != 1 {
		t.Fatalf("sent = %d, want 1", summary.ResponsesSent)
	}

	replies := store.botMessages("bot-1")
	if len(replies) != 1 {
		t.Fatalf("bot wrote %d messages, want 1", len(replies))
	}
	if replies[0].Content != "Привет! Как дела?" {
		t.Fatalf("reply content = %q", replies[0].Content)
	}
	if !replies[0].IsUnread {
		t.Fatal("bot reply should start unread")
	}
	if !store.queue[0].Processed {
		t.Fatal("sent item should be marked processed")
	}
	// typing on, then off
	if len(store.typingEvents) != 2 || !store.typingEvents[0] || store.typingEvents[1] {
		t.Fatalf("typing events = %v, want [true false]", store.typingEvents)
	}
}

func TestRunPassLeavesItemQueuedOnCompletionFailure(t *testing.T) {
	store := newFakeResponderStore()
	humanWritesToBot(store)
	store.queue = append(store.queue, models.BotResponseQueueItem{
		QueueID: "q1", BotID: "bot-1", ConversationID: "c1", MessageID: "m1",
		ScheduledAt: responderNow.Add(-time.Second).Format(time.RFC3339),
	})
	s := newTestResponder(store, &fakeCompleter{err: errors.New("rate limited")})

	summary, err := s.RunPass(context.Background())
	if err != nil {
		t.Fatalf("RunPass failed: %v", err)
	}
	if summary.ResponsesSent != 0 || summary.Skipped != 1 {
		t.Fatalf("summary = %+v, want 0 sent / 1 skipped", summary)
	}
	if store.queue[0].Processed {
		t.Fatal("failed item must stay queued for the next pass")
	}
	if len(store.botMessages("bot-1")) != 0 {
		t.Fatal("no message should be written on completion failure")
	}
}

func TestRunPassRetiresAlreadyAnsweredItem(t *testing.T) {
	store := newFakeResponderStore()
	humanWritesToBot(store)
	// The bot already answered this conversation after the item was queued
	store.messages = append(store.messages, models.Message{
		ConversationID: "c1",
		MessageID:      "m2",
		SenderID:       "bot-1",
		Content:        "Уже ответила",
		CreatedAt:      responderNow.Add(-10 * time.Second).Format(models.MessageTimeFormat),
	})
	store.queue = append(store.queue, models.BotResponseQueueItem{
		QueueID: "q1", BotID: "bot-1", ConversationID: "c1", MessageID: "m1",
		ScheduledAt: responderNow.Add(-time.Second).Format(time.RFC3339),
	})
	ai := &fakeCompleter{reply: "ok"}
	s := newTestResponder(store, ai)

	summary, err := s.RunPass(context.Background())
	if err != nil {
		t.Fatalf("RunPass failed: %v", err)
	}
	if summary.ResponsesSent != 0 {
		t.Fatalf("sent = %d, want 0 for an answered conversation", summary.ResponsesSent)
	}
	if ai.calls != 0 {
		t.Fatalf("completion called %d times for an answered conversation", ai.calls)
	}
	if !store.queue[0].Processed {
		t.Fatal("answered item should be retired")
	}
	if len(store.botMessages("bot-1")) != 1 {
		t.Fatal("no second bot message should be written")
	}
}
