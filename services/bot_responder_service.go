package services

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"iskra_server/models"

	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai"
)

// Reply delay bounds, matching the product's "bots answer like busy humans" feel
const (
	DefaultMinReplyDelay = 20 * time.Second
	DefaultMaxReplyDelay = 30 * time.Minute
)

// scanWindow bounds how far back the pass looks for unanswered user messages
const scanWindow = 5 * time.Minute

// ResponderStore is the storage surface one orchestration pass needs
type ResponderStore interface {
	DueQueueItems(ctx context.Context, now time.Time) ([]models.BotResponseQueueItem, error)
	MarkProcessed(ctx context.Context, item models.BotResponseQueueItem) error
	EnqueueIfAbsent(ctx context.Context, item models.BotResponseQueueItem) error
	RecentMessages(ctx context.Context, since time.Time) ([]models.Message, error)
	GetConversation(ctx context.Context, conversationID string) (*models.Conversation, error)
	MessagesForConversation(ctx context.Context, conversationID string) ([]models.Message, error)
	GetProfile(ctx context.Context, profileID string) (*models.Profile, error)
	InsertMessage(ctx context.Context, message models.Message) error
	SetTyping(ctx context.Context, conversationID, userID string, isTyping bool) error
}

// ChatCompleter is the LLM surface the responder needs
type ChatCompleter interface {
	ChatCompletion(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error)
}

// PassSummary reports what a single orchestration pass did
type PassSummary struct {
	ResponsesSent      int `json:"responses_sent"`
	ResponsesScheduled int `json:"responses_scheduled"`
	Skipped            int `json:"skipped"`
}

// BotResponderService runs the periodic bot-reply orchestration: it consumes
// due queue items into generated messages and schedules replies for fresh
// user messages addressed to bots. Each pass re-derives state from the store;
// nothing is kept between invocations.
type BotResponderService struct {
	Store    ResponderStore
	AI       ChatCompleter
	Hub      Broadcaster
	Now      func() time.Time
	Rand     *rand.Rand
	MinDelay time.Duration
	MaxDelay time.Duration
}

// NewBotResponderService builds a responder with the default clock, RNG and delays
func NewBotResponderService(store ResponderStore, ai ChatCompleter, hub Broadcaster) *BotResponderService {
	return &BotResponderService{
		Store:    store,
		AI:       ai,
		Hub:      hub,
		Now:      time.Now,
		Rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
		MinDelay: DefaultMinReplyDelay,
		MaxDelay: DefaultMaxReplyDelay,
	}
}

// RunPass executes one orchestration pass. A failing conversation is logged
// and skipped; the queue item stays unprocessed for the next pass.
func (s *BotResponderService) RunPass(ctx context.Context) (PassSummary, error) {
	var summary PassSummary
	now := s.Now()

	due, err := s.Store.DueQueueItems(ctx, now)
	if err != nil {
		return summary, fmt.Errorf("failed to load due queue items: %w", err)
	}
	log.Printf("🤖 Processing %d queued bot responses", len(due))

	for _, item := range due {
		sent, err := s.processQueueItem(ctx, item)
		if err != nil {
			log.Printf("❌ Error processing queue item %s: %v", item.QueueID, err)
			summary.Skipped++
			continue
		}
		if sent {
			summary.ResponsesSent++
		}
	}

	scheduled, err := s.scheduleNewReplies(ctx, now)
	if err != nil {
		return summary, err
	}
	summary.ResponsesScheduled = scheduled

	return summary, nil
}

// processQueueItem turns one due queue item into a bot message. Returns false
// when the item was dropped without a reply (conversation already answered).
func (s *BotResponderService) processQueueItem(ctx context.Context, item models.BotResponseQueueItem) (bool, error) {
	history, err := s.Store.MessagesForConversation(ctx, item.ConversationID)
	if err != nil {
		return false, fmt.Errorf("failed to load history: %w", err)
	}

	// Latest message already from the bot means someone answered meanwhile;
	// retire the item instead of double-replying.
	if len(history) > 0 && history[len(history)-1].SenderID == item.BotID {
		if err := s.Store.MarkProcessed(ctx, item); err != nil {
			return false, fmt.Errorf("failed to retire answered item: %w", err)
		}
		return false, nil
	}

	bot, err := s.Store.GetProfile(ctx, item.BotID)
	if err != nil {
		return false, fmt.Errorf("failed to load bot profile: %w", err)
	}

	s.setTyping(ctx, item.ConversationID, item.BotID, true)
	defer s.setTyping(ctx, item.ConversationID, item.BotID, false)

	reply, err := s.AI.ChatCompletion(ctx, BuildConversationHistory(*bot, history))
	if err != nil {
		// Leave the item queued; the next pass retries it
		return false, fmt.Errorf("completion failed: %w", err)
	}
	if reply == "" {
		return false, fmt.Errorf("completion returned empty reply")
	}

	message := models.Message{
		MessageID:      uuid.New().String(),
		ConversationID: item.ConversationID,
		SenderID:       item.BotID,
		Content:        reply,
		IsUnread:       true,
		CreatedAt:      s.Now().UTC().Format(models.MessageTimeFormat),
	}
	if err := s.Store.InsertMessage(ctx, message); err != nil {
		return false, fmt.Errorf("failed to insert bot message: %w", err)
	}

	if s.Hub != nil {
		s.Hub.BroadcastToConversation(item.ConversationID, "newMessage", message)
	}

	if err := s.Store.MarkProcessed(ctx, item); err != nil {
		return false, fmt.Errorf("failed to mark item processed: %w", err)
	}

	log.Printf("🤖 Bot %s responded in conversation %s", bot.Name, item.ConversationID)
	return true, nil
}

// scheduleNewReplies scans recent messages and enqueues a delayed reply for
// every conversation whose latest message is a user message addressed to a bot.
func (s *BotResponderService) scheduleNewReplies(ctx context.Context, now time.Time) (int, error) {
	recent, err := s.Store.RecentMessages(ctx, now.Add(-scanWindow))
	if err != nil {
		return 0, fmt.Errorf("failed to scan recent messages: %w", err)
	}

	// Only the newest recent message per conversation matters
	latest := make(map[string]models.Message)
	for _, m := range recent {
		if cur, ok := latest[m.ConversationID]; !ok || m.CreatedAt > cur.CreatedAt {
			latest[m.ConversationID] = m
		}
	}

	scheduled := 0
	for _, message := range latest {
		conversation, err := s.Store.GetConversation(ctx, message.ConversationID)
		if err != nil {
			log.Printf("❌ Error loading conversation %s: %v", message.ConversationID, err)
			continue
		}

		// When the newest message is the bot's own, the "other participant"
		// is the human, fails the IsBot check and the conversation is
		// skipped: the bot never answers itself.
		botID := conversation.OtherParticipant(message.SenderID)
		recipient, err := s.Store.GetProfile(ctx, botID)
		if err != nil || !recipient.IsBot {
			continue
		}

		delay := s.replyDelay()
		item := models.BotResponseQueueItem{
			QueueID:        uuid.New().String(),
			BotID:          botID,
			ConversationID: message.ConversationID,
			MessageID:      message.MessageID,
			ScheduledAt:    now.Add(delay).UTC().Format(time.RFC3339),
			CreatedAt:      now.UTC().Format(time.RFC3339),
		}

		// The (botId, messageId) key makes the dedupe a real constraint
		// instead of the old racy check-then-insert.
		if err := s.Store.EnqueueIfAbsent(ctx, item); err != nil {
			if err == ErrConditionFailed {
				continue
			}
			log.Printf("❌ Error scheduling reply for conversation %s: %v", message.ConversationID, err)
			continue
		}

		scheduled++
		log.Printf("⏰ Scheduled bot reply in %s for conversation %s", delay, message.ConversationID)
	}

	return scheduled, nil
}

func (s *BotResponderService) setTyping(ctx context.Context, conversationID, botID string, isTyping bool) {
	if err := s.Store.SetTyping(ctx, conversationID, botID, isTyping); err != nil {
		log.Printf("⚠️ Failed to update typing indicator for %s: %v", conversationID, err)
		return
	}
	if s.Hub != nil {
		s.Hub.BroadcastToConversation(conversationID, "typing", map[string]interface{}{
			"conversationId": conversationID,
			"userId":         botID,
			"isTyping":       isTyping,
		})
	}
}

func (s *BotResponderService) replyDelay() time.Duration {
	spread := s.MaxDelay - s.MinDelay
	if spread <= 0 {
		return s.MinDelay
	}
	return s.MinDelay + time.Duration(s.Rand.Int63n(int64(spread)))
}
