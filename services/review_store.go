package services

import (
	"context"
	"errors"
	"fmt"

	"iskra_server/models"
	"iskra_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoReviewStore implements ReviewStore on the shared DynamoDB layer
type DynamoReviewStore struct {
	Dynamo *DynamoService
}

func (st *DynamoReviewStore) GetConversation(ctx context.Context, conversationID string) (*models.Conversation, error) {
	item, err := st.Dynamo.GetItem(ctx, models.ConversationsTable, utils.StringKey("conversationId", conversationID))
	if err != nil {
		return nil, err
	}

	var conversation models.Conversation
	if err := attributevalue.UnmarshalMap(item, &conversation); err != nil {
		return nil, fmt.Errorf("failed to parse conversation: %w", err)
	}
	return &conversation, nil
}

func (st *DynamoReviewStore) GetReview(ctx context.Context, conversationID, reviewerID string) (*models.Review, error) {
	item, err := st.Dynamo.GetItem(ctx, models.ReviewsTable, utils.CompositeKey("conversationId", conversationID, "reviewerId", reviewerID))
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var review models.Review
	if err := attributevalue.UnmarshalMap(item, &review); err != nil {
		return nil, fmt.Errorf("failed to parse review: %w", err)
	}
	return &review, nil
}

func (st *DynamoReviewStore) PutReviewIfAbsent(ctx context.Context, review models.Review) error {
	return st.Dynamo.PutItemIfAbsent(ctx, models.ReviewsTable, review, "reviewerId")
}

func (st *DynamoReviewStore) GetProfile(ctx context.Context, profileID string) (*models.Profile, error) {
	item, err := st.Dynamo.GetItem(ctx, models.ProfilesTable, utils.StringKey("id", profileID))
	if err != nil {
		return nil, err
	}

	var profile models.Profile
	if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	return &profile, nil
}

func (st *DynamoReviewStore) UpdateProfileRating(ctx context.Context, profileID string, honestyRating float64, totalRatings int) error {
	updateExpression := "SET honestyRating = :honesty, totalRatings = :total"
	values := map[string]types.AttributeValue{
		":honesty": &types.AttributeValueMemberN{Value: fmt.Sprintf("%.4f", honestyRating)},
		":total":   &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", totalRatings)},
	}

	_, err := st.Dynamo.UpdateItem(ctx, models.ProfilesTable, updateExpression, utils.StringKey("id", profileID), values, nil)
	return err
}

func (st *DynamoReviewStore) PutLike(ctx context.Context, like models.Like) error {
	return st.Dynamo.PutItem(ctx, models.LikesTable, like)
}

// ListReviewsForProfile returns reviews left about the given profile
func (st *DynamoReviewStore) ListReviewsForProfile(ctx context.Context, profileID string) ([]models.Review, error) {
	var reviews []models.Review
	err := st.Dynamo.ScanWithFilter(ctx, models.ReviewsTable, func(item map[string]types.AttributeValue) bool {
		return utils.ExtractString(item, "reviewedId") == profileID
	}, nil, &reviews)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}
