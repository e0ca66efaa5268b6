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

// ErrReviewExists is returned when the reviewer already reviewed this conversation
var ErrReviewExists = errors.New("review already exists for this conversation")

// ErrMeetingNotConfirmed is returned when a review is submitted before both
// sides agreed the meeting
var ErrMeetingNotConfirmed = errors.New("meeting is not confirmed for this conversation")

// ReviewStore is the storage surface the review flow needs
type ReviewStore interface {
	GetConversation(ctx context.Context, conversationID string) (*models.Conversation, error)
	GetReview(ctx context.Context, conversationID, reviewerID string) (*models.Review, error)
	PutReviewIfAbsent(ctx context.Context, review models.Review) error
	GetProfile(ctx context.Context, profileID string) (*models.Profile, error)
	UpdateProfileRating(ctx context.Context, profileID string, honestyRating float64, totalRatings int) error
	PutLike(ctx context.Context, like models.Like) error
}

// ReviewService collects post-meeting honesty ratings, exactly one per
// (reviewer, conversation), and keeps the reviewed profile's aggregate current.
type ReviewService struct {
	Store ReviewStore
	Now   func() time.Time
}

// NewReviewService builds a ReviewService with a real clock
func NewReviewService(store ReviewStore) *ReviewService {
	return &ReviewService{Store: store, Now: time.Now}
}

// SubmitReview validates the gate conditions, stores the review, updates the
// reviewed profile's honesty aggregate and optionally registers a like.
func (s *ReviewService) SubmitReview(ctx context.Context, review models.Review, alsoLike bool) (models.Review, error) {
	conversation, err := s.Store.GetConversation(ctx, review.ConversationID)
	if err != nil {
		return models.Review{}, fmt.Errorf("failed to load conversation: %w", err)
	}
	if !conversation.HasParticipant(review.ReviewerID) {
		return models.Review{}, ErrNotParticipant
	}
	if !conversation.MeetingConfirmed {
		return models.Review{}, ErrMeetingNotConfirmed
	}

	review.ReviewedID = conversation.OtherParticipant(review.ReviewerID)
	review.ReviewID = uuid.New().String()
	review.CreatedAt = s.Now().UTC().Format(time.RFC3339)

	if err := Validate.Struct(review); err != nil {
		return models.Review{}, fmt.Errorf("invalid review: %w", err)
	}

	existing, err := s.Store.GetReview(ctx, review.ConversationID, review.ReviewerID)
	if err != nil {
		return models.Review{}, fmt.Errorf("failed to check existing review: %w", err)
	}
	if existing != nil {
		return models.Review{}, ErrReviewExists
	}

	// Conditional put backs the check above, so a concurrent duplicate still loses
	if err := s.Store.PutReviewIfAbsent(ctx, review); err != nil {
		if errors.Is(err, ErrConditionFailed) {
			return models.Review{}, ErrReviewExists
		}
		return models.Review{}, fmt.Errorf("failed to store review: %w", err)
	}

	if err := s.applyRating(ctx, review.ReviewedID, review.Rating); err != nil {
		log.Printf("❌ Failed to update honesty rating for %s: %v", review.ReviewedID, err)
	}

	if alsoLike {
		like := models.Like{
			UserID:      review.ReviewerID,
			LikedUserID: review.ReviewedID,
			CreatedAt:   review.CreatedAt,
		}
		if err := s.Store.PutLike(ctx, like); err != nil {
			log.Printf("❌ Failed to register like from review: %v", err)
		}
	}

	log.Printf("⭐ Review stored: %s rated %s %d/5 in conversation %s",
		review.ReviewerID, review.ReviewedID, review.Rating, review.ConversationID)
	return review, nil
}

func (s *ReviewService) applyRating(ctx context.Context, profileID string, rating int) error {
	profile, err := s.Store.GetProfile(ctx, profileID)
	if err != nil {
		return err
	}

	total := profile.TotalRatings + 1
	honesty := (profile.HonestyRating*float64(profile.TotalRatings) + float64(rating)) / float64(total)

	return s.Store.UpdateProfileRating(ctx, profileID, honesty, total)
}
