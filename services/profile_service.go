package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"iskra_server/models"
	"iskra_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ProfileService struct
type ProfileService struct {
	Dynamo *DynamoService
}

// CreateProfile validates and stores a new profile
func (s *ProfileService) CreateProfile(ctx context.Context, profile models.Profile) (models.Profile, error) {
	if profile.ID == "" {
		return models.Profile{}, fmt.Errorf("profile id is required")
	}
	if err := Validate.Struct(profile); err != nil {
		return models.Profile{}, fmt.Errorf("invalid profile: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	profile.CreatedAt = now
	profile.UpdatedAt = now

	if err := s.Dynamo.PutItem(ctx, models.ProfilesTable, profile); err != nil {
		return models.Profile{}, fmt.Errorf("failed to store profile: %w", err)
	}

	log.Printf("✅ Profile created: %s (%s)", profile.Name, profile.ID)
	return profile, nil
}

// GetProfile retrieves a profile by id
func (s *ProfileService) GetProfile(ctx context.Context, profileID string) (*models.Profile, error) {
	item, err := s.Dynamo.GetItem(ctx, models.ProfilesTable, utils.StringKey("id", profileID))
	if err != nil {
		return nil, err
	}

	var profile models.Profile
	if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	return &profile, nil
}

// UpdateProfile validates and overwrites an existing profile, preserving
// rating aggregates and creation time
func (s *ProfileService) UpdateProfile(ctx context.Context, profile models.Profile) (models.Profile, error) {
	existing, err := s.GetProfile(ctx, profile.ID)
	if err != nil {
		return models.Profile{}, err
	}

	profile.HonestyRating = existing.HonestyRating
	profile.TotalRatings = existing.TotalRatings
	profile.IsBot = existing.IsBot
	profile.CreatedAt = existing.CreatedAt
	profile.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	if err := Validate.Struct(profile); err != nil {
		return models.Profile{}, fmt.Errorf("invalid profile: %w", err)
	}

	if err := s.Dynamo.PutItem(ctx, models.ProfilesTable, profile); err != nil {
		return models.Profile{}, fmt.Errorf("failed to store profile: %w", err)
	}
	return profile, nil
}

// DeleteProfile removes a profile
func (s *ProfileService) DeleteProfile(ctx context.Context, profileID string) error {
	return s.Dynamo.DeleteItem(ctx, models.ProfilesTable, utils.StringKey("id", profileID))
}

// BrowseProfiles lists candidate profiles for the swipe feed: everyone except
// the viewer, profiles already liked or disliked, and genders the viewer is
// not looking for.
func (s *ProfileService) BrowseProfiles(ctx context.Context, userID string) ([]models.Profile, error) {
	viewer, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen, err := s.interactedProfileIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	var candidates []models.Profile
	err = s.Dynamo.ScanWithFilter(ctx, models.ProfilesTable, func(item map[string]types.AttributeValue) bool {
		id := utils.ExtractString(item, "id")
		if id == userID || seen[id] {
			return false
		}
		if viewer.LookingFor != "" && utils.ExtractString(item, "gender") != viewer.LookingFor {
			return false
		}
		return true
	}, nil, &candidates)
	if err != nil {
		return nil, fmt.Errorf("failed to browse profiles: %w", err)
	}

	log.Printf("🔍 Browse for %s: %d candidates", userID, len(candidates))
	return candidates, nil
}

func (s *ProfileService) interactedProfileIDs(ctx context.Context, userID string) (map[string]bool, error) {
	seen := make(map[string]bool)

	keyCondition := "userId = :userId"
	expressionValues := map[string]types.AttributeValue{
		":userId": &types.AttributeValueMemberS{Value: userID},
	}

	likes, err := s.Dynamo.QueryItems(ctx, models.LikesTable, keyCondition, expressionValues, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch likes: %w", err)
	}
	for _, item := range likes {
		seen[utils.ExtractString(item, "likedUserId")] = true
	}

	dislikes, err := s.Dynamo.QueryItems(ctx, models.DislikesTable, keyCondition, expressionValues, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dislikes: %w", err)
	}
	for _, item := range dislikes {
		seen[utils.ExtractString(item, "dislikedUserId")] = true
	}

	return seen, nil
}
