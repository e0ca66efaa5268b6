package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"iskra_server/models"
)

// ActionStore is the storage surface the swipe flow needs
type ActionStore interface {
	PutLike(ctx context.Context, like models.Like) error
	PutDislike(ctx context.Context, dislike models.Dislike) error
	HasLike(ctx context.Context, userID, targetID string) (bool, error)
	FindConversationByPair(ctx context.Context, pairKey string) (*models.Conversation, error)
	PutConversationIfAbsent(ctx context.Context, conversation models.Conversation) error
}

// ActionResult reports what a swipe produced
type ActionResult struct {
	Matched        bool                 `json:"matched"`
	Conversation   *models.Conversation `json:"conversation,omitempty"`
	ConversationID string               `json:"conversationId,omitempty"`
}

// ActionService handles like/dislike swipes and mutual-like matching
type ActionService struct {
	Store ActionStore
	Now   func() time.Time
}

// NewActionService builds an ActionService with a real clock
func NewActionService(store ActionStore) *ActionService {
	return &ActionService{Store: store, Now: time.Now}
}

// RegisterAction records a like or dislike. A mutual like pair creates exactly
// one conversation for the unordered pair, with canonically ordered participants.
func (s *ActionService) RegisterAction(ctx context.Context, userID, targetID, action string) (ActionResult, error) {
	if userID == "" || targetID == "" {
		return ActionResult{}, errors.New("userId and targetId are required")
	}
	if userID == targetID {
		return ActionResult{}, errors.New("cannot react to own profile")
	}

	createdAt := s.Now().UTC().Format(time.RFC3339)

	switch action {
	case models.ActionDislike:
		err := s.Store.PutDislike(ctx, models.Dislike{
			UserID:         userID,
			DislikedUserID: targetID,
			CreatedAt:      createdAt,
		})
		if err != nil {
			return ActionResult{}, fmt.Errorf("failed to save dislike: %w", err)
		}
		return ActionResult{}, nil

	case models.ActionLike:
		err := s.Store.PutLike(ctx, models.Like{
			UserID:      userID,
			LikedUserID: targetID,
			CreatedAt:   createdAt,
		})
		if err != nil {
			return ActionResult{}, fmt.Errorf("failed to save like: %w", err)
		}

		mutual, err := s.Store.HasLike(ctx, targetID, userID)
		if err != nil {
			return ActionResult{}, fmt.Errorf("failed to check mutual like: %w", err)
		}
		if !mutual {
			return ActionResult{}, nil
		}

		conversation, err := s.ensureConversation(ctx, userID, targetID)
		if err != nil {
			return ActionResult{}, err
		}
		log.Printf("🎉 Match: %s ❤️ %s, conversation %s", userID, targetID, conversation.ConversationID)
		return ActionResult{Matched: true, Conversation: conversation, ConversationID: conversation.ConversationID}, nil

	default:
		return ActionResult{}, fmt.Errorf("invalid action %q", action)
	}
}

// ensureConversation returns the existing conversation for the pair or creates it
func (s *ActionService) ensureConversation(ctx context.Context, a, b string) (*models.Conversation, error) {
	pairKey := models.PairKeyFor(a, b)

	existing, err := s.Store.FindConversationByPair(ctx, pairKey)
	if err != nil {
		return nil, fmt.Errorf("failed to look up conversation: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	user1, user2 := models.CanonicalPair(a, b)
	conversation := models.Conversation{
		ConversationID: models.ConversationIDFor(a, b),
		User1ID:        user1,
		User2ID:        user2,
		PairKey:        pairKey,
		CreatedAt:      s.Now().UTC().Format(time.RFC3339),
	}

	// The deterministic id makes concurrent inserts for the pair collide on
	// the table key, so losing the conditional put means the row exists.
	if err := s.Store.PutConversationIfAbsent(ctx, conversation); err != nil {
		if errors.Is(err, ErrConditionFailed) {
			winner, err := s.Store.FindConversationByPair(ctx, pairKey)
			if err != nil {
				return nil, fmt.Errorf("failed to look up conversation: %w", err)
			}
			if winner != nil {
				return winner, nil
			}
			// GSI lag; the winner's row carries the same id and participants
			return &conversation, nil
		}
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	return &conversation, nil
}
