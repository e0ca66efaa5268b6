package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"iskra_server/models"

	"github.com/google/uuid"
)

// ErrNotParticipant is returned when the acting user is not part of the conversation
var ErrNotParticipant = errors.New("user is not a participant of this conversation")

// MeetingStore is the storage surface the meeting flow needs
type MeetingStore interface {
	GetConversation(ctx context.Context, conversationID string) (*models.Conversation, error)
	SaveConversation(ctx context.Context, conversation models.Conversation) error
	GetMeeting(ctx context.Context, user1ID, user2ID string) (*models.Meeting, error)
	SaveMeeting(ctx context.Context, meeting models.Meeting) error
}

// MeetingService drives the meeting negotiation inside a conversation:
// no request -> one side requested -> both requested (meeting_confirmed),
// then per-side confirmation that the meeting actually happened.
type MeetingService struct {
	Store MeetingStore
	Now   func() time.Time
}

// NewMeetingService builds a MeetingService with a real clock
func NewMeetingService(store MeetingStore) *MeetingService {
	return &MeetingService{Store: store, Now: time.Now}
}

// RequestMeeting marks the requester's side of the conversation. When both
// sides have requested, the meeting is confirmed and dated.
func (s *MeetingService) RequestMeeting(ctx context.Context, conversationID, requesterID string) (*models.Conversation, error) {
	conversation, err := s.Store.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}
	if !conversation.HasParticipant(requesterID) {
		return nil, ErrNotParticipant
	}

	switch requesterID {
	case conversation.User1ID:
		conversation.MeetingRequestedByUser1 = true
	case conversation.User2ID:
		conversation.MeetingRequestedByUser2 = true
	}

	if conversation.MeetingRequestedByUser1 && conversation.MeetingRequestedByUser2 && !conversation.MeetingConfirmed {
		conversation.MeetingConfirmed = true
		conversation.MeetingDate = s.Now().UTC().Format(time.RFC3339)
		log.Printf("🤝 Meeting confirmed for conversation %s", conversationID)
	}

	if err := s.Store.SaveConversation(ctx, *conversation); err != nil {
		return nil, fmt.Errorf("failed to save conversation: %w", err)
	}
	return conversation, nil
}

// MarkReadyForMeeting flags the conversation in the "ready to meet" section of the chat list
func (s *MeetingService) MarkReadyForMeeting(ctx context.Context, conversationID, userID string) (*models.Conversation, error) {
	conversation, err := s.Store.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}
	if !conversation.HasParticipant(userID) {
		return nil, ErrNotParticipant
	}

	conversation.ReadyForMeeting = true
	if err := s.Store.SaveConversation(ctx, *conversation); err != nil {
		return nil, fmt.Errorf("failed to save conversation: %w", err)
	}
	return conversation, nil
}

// ConfirmMeetingHappened records one side's acknowledgment that the meeting
// took place, creating the meeting row on first confirmation.
func (s *MeetingService) ConfirmMeetingHappened(ctx context.Context, conversationID, userID string) (*models.Meeting, error) {
	conversation, err := s.Store.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}
	if !conversation.HasParticipant(userID) {
		return nil, ErrNotParticipant
	}
	if !conversation.MeetingConfirmed {
		return nil, errors.New("meeting has not been agreed by both sides yet")
	}

	meeting, err := s.Store.GetMeeting(ctx, conversation.User1ID, conversation.User2ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load meeting: %w", err)
	}
	if meeting == nil {
		meeting = &models.Meeting{
			MeetingID: uuid.New().String(),
			User1ID:   conversation.User1ID,
			User2ID:   conversation.User2ID,
			CreatedAt: s.Now().UTC().Format(time.RFC3339),
		}
	}

	switch userID {
	case conversation.User1ID:
		meeting.ConfirmedByUser1 = true
	case conversation.User2ID:
		meeting.ConfirmedByUser2 = true
	}

	if err := s.Store.SaveMeeting(ctx, *meeting); err != nil {
		return nil, fmt.Errorf("failed to save meeting: %w", err)
	}
	return meeting, nil
}
