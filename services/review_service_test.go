package services

import (
	"context"
	"math"
	"testing"
	"time"

	"iskra_server/models"
)

type fakeReviewStore struct {
	conversations map[string]models.Conversation
	reviews       map[string]models.Review
	profiles      map[string]models.Profile
	likes         []models.Like
}

func newFakeReviewStore() *fakeReviewStore {
	return &fakeReviewStore{
		conversations: map[string]models.Conversation{},
		reviews:       map[string]models.Review{},
		profiles:      map[string]models.Profile{},
	}
}

func (f *fakeReviewStore) GetConversation(ctx context.Context, conversationID string) (*models.Conversation, error) {
	if c, ok := f.conversations[conversationID]; ok {
		return &c, nil
	}
	return nil, ErrItemNotFound
}

func (f *fakeReviewStore) GetReview(ctx context.Context, conversationID, reviewerID string) (*models.Review, error) {
	if r, ok := f.reviews[conversationID+"#"+reviewerID]; ok {
		return &r, nil
	}
	return nil, nil
}

func (f *fakeReviewStore) PutReviewIfAbsent(ctx context.Context, review models.Review) error {
	key := review.ConversationID + "#" + review.ReviewerID
	if _, ok := f.reviews[key]; ok {
		return ErrConditionFailed
	}
	f.reviews[key] = review
	return nil
}

func (f *fakeReviewStore) GetProfile(ctx context.Context, profileID string) (*models.Profile, error) {
	if p, ok := f.profiles[profileID]; ok {
		return &p, nil
	}
	return nil, ErrItemNotFound
}

func (f *fakeReviewStore) UpdateProfileRating(ctx context.Context, profileID string, honestyRating float64, totalRatings int) error {
	p := f.profiles[profileID]
	p.HonestyRating = honestyRating
	p.TotalRatings = totalRatings
	f.profiles[profileID] = p
	return nil
}

func (f *fakeReviewStore) PutLike(ctx context.Context, like models.Like) error {
	f.likes = append(f.likes, like)
	return nil
}

func newTestReviewService(store ReviewStore) *ReviewService {
	s := NewReviewService(store)
	s.Now = func() time.Time { return time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) }
	return s
}

func confirmedConversationStore() *fakeReviewStore {
	store := newFakeReviewStore()
	store.conversations["c1"] = models.Conversation{
		ConversationID: "c1", User1ID: "anna", User2ID: "boris", MeetingConfirmed: true,
	}
	store.profiles["anna"] = models.Profile{ID: "anna"}
	store.profiles["boris"] = models.Profile{ID: "boris"}
	return store
}

func TestSubmitReviewStoresAndRates(t *testing.T) {
	store := confirmedConversationStore()
	s := newTestReviewService(store)

	review, err := s.SubmitReview(context.Background(), models.Review{
		ConversationID: "c1", ReviewerID: "anna", Rating: 4, Comment: "Честный, как в анкете",
	}, false)
	if err != nil {
		t.Fatalf("SubmitReview failed: %v", err)
	}
	if review.ReviewedID != "boris" {
		t.Fatalf("reviewed id = %q, want boris", review.ReviewedID)
	}

	boris := store.profiles["boris"]
	if boris.TotalRatings != 1 || boris.HonestyRating != 4 {
		t.Fatalf("aggregate = %.2f/%d, want 4.00/1", boris.HonestyRating, boris.TotalRatings)
	}
}

func TestSubmitReviewHonestyAggregate(t *testing.T) {
	store := confirmedConversationStore()
	boris := store.profiles["boris"]
	boris.HonestyRating = 5
	boris.TotalRatings = 3
	store.profiles["boris"] = boris
	s := newTestReviewService(store)

	if _, err := s.SubmitReview(context.Background(), models.Review{
		ConversationID: "c1", ReviewerID: "anna", Rating: 1,
	}, false); err != nil {
		t.Fatalf("SubmitReview failed: %v", err)
	}

	// (5*3 + 1) / 4 = 4
	got := store.profiles["boris"]
	if got.TotalRatings != 4 || math.Abs(got.HonestyRating-4) > 1e-9 {
		t.Fatalf("aggregate = %.4f/%d, want 4.0000/4", got.HonestyRating, got.TotalRatings)
	}
}

func TestSubmitReviewDuplicateRefused(t *testing.T) {
	store := confirmedConversationStore()
	s := newTestReviewService(store)

	if _, err := s.SubmitReview(context.Background(), models.Review{
		ConversationID: "c1", ReviewerID: "anna", Rating: 5,
	}, false); err != nil {
		t.Fatalf("first review failed: %v", err)
	}

	if _, err := s.SubmitReview(context.Background(), models.Review{
		ConversationID: "c1", ReviewerID: "anna", Rating: 2,
	}, false); err != ErrReviewExists {
		t.Fatalf("expected ErrReviewExists, got %v", err)
	}

	// The original review and aggregate must be untouched
	got := store.profiles["boris"]
	if got.TotalRatings != 1 || got.HonestyRating != 5 {
		t.Fatalf("duplicate mutated the aggregate: %.2f/%d", got.HonestyRating, got.TotalRatings)
	}
}

func TestSubmitReviewRequiresConfirmedMeeting(t *testing.T) {
	store := confirmedConversationStore()
	c := store.conversations["c1"]
	c.MeetingConfirmed = false
	store.conversations["c1"] = c
	s := newTestReviewService(store)

	if _, err := s.SubmitReview(context.Background(), models.Review{
		ConversationID: "c1", ReviewerID: "anna", Rating: 5,
	}, false); err != ErrMeetingNotConfirmed {
		t.Fatalf("expected ErrMeetingNotConfirmed, got %v", err)
	}
}

func TestSubmitReviewRejectsOutsider(t *testing.T) {
	s := newTestReviewService(confirmedConversationStore())

	if _, err := s.SubmitReview(context.Background(), models.Review{
		ConversationID: "c1", ReviewerID: "clara", Rating: 5,
	}, false); err != ErrNotParticipant {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}
}

func TestSubmitReviewRejectsOutOfRangeRating(t *testing.T) {
	s := newTestReviewService(confirmedConversationStore())

	if _, err := s.SubmitReview(context.Background(), models.Review{
		ConversationID: "c1", ReviewerID: "anna", Rating: 6,
	}, false); err == nil {
		t.Fatal("rating above 5 must be rejected")
	}
}

func TestSubmitReviewWithLike(t *testing.T) {
	store := confirmedConversationStore()
	s := newTestReviewService(store)

	if _, err := s.SubmitReview(context.Background(), models.Review{
		ConversationID: "c1", ReviewerID: "anna", Rating: 5,
	}, true); err != nil {
		t.Fatalf("SubmitReview failed: %v", err)
	}

	if len(store.likes) != 1 {
		t.Fatalf("expected one like, got %d", len(store.likes))
	}
	if store.likes[0].UserID != "anna" || store.likes[0].LikedUserID != "boris" {
		t.Fatalf("like stored wrong direction: %+v", store.likes[0])
	}
}
