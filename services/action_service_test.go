package services

import (
	"context"
	"testing"
	"time"

	"iskra_server/models"
)

type fakeActionStore struct {
	likes         map[string]map[string]bool
	dislikes      map[string]map[string]bool
	conversations map[string]models.Conversation

	// staleFinds makes the next pair lookups miss, simulating a concurrent
	// swipe racing the conversation insert
	staleFinds int
}

func newFakeActionStore() *fakeActionStore {
	return &fakeActionStore{
		likes:         map[string]map[string]bool{},
		dislikes:      map[string]map[string]bool{},
		conversations: map[string]models.Conversation{},
	}
}

func (f *fakeActionStore) PutLike(ctx context.Context, like models.Like) error {
	if f.likes[like.UserID] == nil {
		f.likes[like.UserID] = map[string]bool{}
	}
	f.likes[like.UserID][like.LikedUserID] = true
	return nil
}

func (f *fakeActionStore) PutDislike(ctx context.Context, dislike models.Dislike) error {
	if f.dislikes[dislike.UserID] == nil {
		f.dislikes[dislike.UserID] = map[string]bool{}
	}
	f.dislikes[dislike.UserID][dislike.DislikedUserID] = true
	return nil
}

func (f *fakeActionStore) HasLike(ctx context.Context, userID, targetID string) (bool, error) {
	return f.likes[userID][targetID], nil
}

func (f *fakeActionStore) FindConversationByPair(ctx context.Context, pairKey string) (*models.Conversation, error) {
	if f.staleFinds > 0 {
		f.staleFinds--
		return nil, nil
	}
	if c, ok := f.conversations[pairKey]; ok {
		return &c, nil
	}
	return nil, nil
}

func (f *fakeActionStore) PutConversationIfAbsent(ctx context.Context, conversation models.Conversation) error {
	if _, ok := f.conversations[conversation.PairKey]; ok {
		return ErrConditionFailed
	}
	f.conversations[conversation.PairKey] = conversation
	return nil
}

func newTestActionService(store ActionStore) *ActionService {
	s := NewActionService(store)
	s.Now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestRegisterActionLikeWithoutReciprocation(t *testing.T) {
	store := newFakeActionStore()
	s := newTestActionService(store)

	result, err := s.RegisterAction(context.Background(), "anna", "boris", models.ActionLike)
	if err != nil {
		t.Fatalf("RegisterAction failed: %v", err)
	}
	if result.Matched {
		t.Fatal("one-sided like must not match")
	}
	if len(store.conversations) != 0 {
		t.Fatalf("expected no conversations, got %d", len(store.conversations))
	}
}

func TestRegisterActionMutualLikeCreatesOneConversation(t *testing.T) {
	store := newFakeActionStore()
	s := newTestActionService(store)

	if _, err := s.RegisterAction(context.Background(), "boris", "anna", models.ActionLike); err != nil {
		t.Fatalf("first like failed: %v", err)
	}
	result, err := s.RegisterAction(context.Background(), "anna", "boris", models.ActionLike)
	if err != nil {
		t.Fatalf("second like failed: %v", err)
	}
	if !result.Matched {
		t.Fatal("mutual like must match")
	}
	if result.Conversation == nil || result.ConversationID == "" {
		t.Fatal("match must carry the conversation")
	}
	if result.Conversation.User1ID != "anna" || result.Conversation.User2ID != "boris" {
		t.Fatalf("participants not canonically ordered: %q, %q",
			result.Conversation.User1ID, result.Conversation.User2ID)
	}
	if len(store.conversations) != 1 {
		t.Fatalf("expected exactly one conversation, got %d", len(store.conversations))
	}
}

func TestRegisterActionRepeatLikeReusesConversation(t *testing.T) {
	store := newFakeActionStore()
	s := newTestActionService(store)

	s.RegisterAction(context.Background(), "boris", "anna", models.ActionLike)
	first, err := s.RegisterAction(context.Background(), "anna", "boris", models.ActionLike)
	if err != nil {
		t.Fatalf("match failed: %v", err)
	}

	// Liking again after the match must not create a second conversation
	second, err := s.RegisterAction(context.Background(), "anna", "boris", models.ActionLike)
	if err != nil {
		t.Fatalf("repeat like failed: %v", err)
	}
	if second.ConversationID != first.ConversationID {
		t.Fatalf("repeat like created conversation %s, want %s", second.ConversationID, first.ConversationID)
	}
	if len(store.conversations) != 1 {
		t.Fatalf("expected exactly one conversation, got %d", len(store.conversations))
	}
}

func TestRegisterActionRacingSwipesKeepOneConversation(t *testing.T) {
	store := newFakeActionStore()
	s := newTestActionService(store)

	s.RegisterAction(context.Background(), "boris", "anna", models.ActionLike)
	first, err := s.RegisterAction(context.Background(), "anna", "boris", models.ActionLike)
	if err != nil {
		t.Fatalf("match failed: %v", err)
	}

	// The second swipe misses the existing row and loses the conditional put
	store.staleFinds = 1
	second, err := s.RegisterAction(context.Background(), "anna", "boris", models.ActionLike)
	if err != nil {
		t.Fatalf("racing like failed: %v", err)
	}
	if second.ConversationID != first.ConversationID {
		t.Fatalf("race created conversation %s, want %s", second.ConversationID, first.ConversationID)
	}
	if len(store.conversations) != 1 {
		t.Fatalf("expected exactly one conversation, got %d", len(store.conversations))
	}
}

func TestRegisterActionDislike(t *testing.T) {
	store := newFakeActionStore()
	s := newTestActionService(store)

	result, err := s.RegisterAction(context.Background(), "anna", "boris", models.ActionDislike)
	if err != nil {
		t.Fatalf("RegisterAction failed: %v", err)
	}
	if result.Matched {
		t.Fatal("dislike must never match")
	}
	if !store.dislikes["anna"]["boris"] {
		t.Fatal("dislike was not stored")
	}
}

func TestRegisterActionRejectsSelfAndEmpty(t *testing.T) {
	s := newTestActionService(newFakeActionStore())

	if _, err := s.RegisterAction(context.Background(), "anna", "anna", models.ActionLike); err == nil {
		t.Fatal("self-like must be rejected")
	}
	if _, err := s.RegisterAction(context.Background(), "", "boris", models.ActionLike); err == nil {
		t.Fatal("empty userId must be rejected")
	}
	if _, err := s.RegisterAction(context.Background(), "anna", "boris", "superlike"); err == nil {
		t.Fatal("unknown action must be rejected")
	}
}
