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

// DynamoActionStore implements ActionStore on the shared DynamoDB layer
type DynamoActionStore struct {
	Dynamo *DynamoService
}

func (st *DynamoActionStore) PutLike(ctx context.Context, like models.Like) error {
	return st.Dynamo.PutItem(ctx, models.LikesTable, like)
}

func (st *DynamoActionStore) PutDislike(ctx context.Context, dislike models.Dislike) error {
	return st.Dynamo.PutItem(ctx, models.DislikesTable, dislike)
}

func (st *DynamoActionStore) HasLike(ctx context.Context, userID, targetID string) (bool, error) {
	_, err := st.Dynamo.GetItem(ctx, models.LikesTable, utils.CompositeKey("userId", userID, "likedUserId", targetID))
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (st *DynamoActionStore) FindConversationByPair(ctx context.Context, pairKey string) (*models.Conversation, error) {
	keyCondition := "pairKey = :pairKey"
	expressionValues := map[string]types.AttributeValue{
		":pairKey": &types.AttributeValueMemberS{Value: pairKey},
	}

	items, err := st.Dynamo.QueryItemsWithIndex(ctx, models.ConversationsTable, models.PairKeyIndex, keyCondition, expressionValues, nil, 1)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	var conversation models.Conversation
	if err := attributevalue.UnmarshalMap(items[0], &conversation); err != nil {
		return nil, fmt.Errorf("failed to parse conversation: %w", err)
	}
	return &conversation, nil
}

func (st *DynamoActionStore) PutConversationIfAbsent(ctx context.Context, conversation models.Conversation) error {
	return st.Dynamo.PutItemIfAbsent(ctx, models.ConversationsTable, conversation, "conversationId")
}
