package services

import (
	"context"
	"fmt"

	"iskra_server/models"
	"iskra_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoChatStore implements ChatStore on the shared DynamoDB layer
type DynamoChatStore struct {
	Dynamo *DynamoService
}

// LatestMessages queries newest-first, so a bounded page always covers the
// most recent messages of the conversation.
func (st *DynamoChatStore) LatestMessages(ctx context.Context, conversationID string, limit int) ([]models.Message, error) {
	keyCondition := "#conversationId = :conversationId"
	expressionValues := map[string]types.AttributeValue{
		":conversationId": &types.AttributeValueMemberS{Value: conversationID},
	}
	expressionNames := map[string]string{
		"#conversationId": "conversationId",
	}

	items, err := st.Dynamo.QueryItemsWithOptions(ctx, models.MessagesTable, keyCondition, expressionValues, expressionNames, int32(limit), true)
	if err != nil {
		return nil, err
	}

	var messages []models.Message
	if err := attributevalue.UnmarshalListOfMaps(items, &messages); err != nil {
		return nil, fmt.Errorf("failed to parse messages: %w", err)
	}
	return messages, nil
}

func (st *DynamoChatStore) InsertMessage(ctx context.Context, message models.Message) error {
	return st.Dynamo.PutItem(ctx, models.MessagesTable, message)
}

func (st *DynamoChatStore) MarkMessageRead(ctx context.Context, conversationID, createdAt string) error {
	key := utils.CompositeKey("conversationId", conversationID, "createdAt", createdAt)
	updateExpression := "SET isUnread = :false"
	values := map[string]types.AttributeValue{
		":false": &types.AttributeValueMemberBOOL{Value: false},
	}
	_, err := st.Dynamo.UpdateItem(ctx, models.MessagesTable, updateExpression, key, values, nil)
	return err
}

func (st *DynamoChatStore) PutTypingIndicator(ctx context.Context, indicator models.TypingIndicator) error {
	return st.Dynamo.PutItem(ctx, models.TypingIndicatorsTable, indicator)
}

func (st *DynamoChatStore) ConversationsForUser(ctx context.Context, userID string) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := st.Dynamo.ScanWithFilter(ctx, models.ConversationsTable, func(item map[string]types.AttributeValue) bool {
		return utils.ExtractString(item, "user1Id") == userID || utils.ExtractString(item, "user2Id") == userID
	}, nil, &conversations)
	if err != nil {
		return nil, err
	}
	return conversations, nil
}

func (st *DynamoChatStore) ProfilePreview(ctx context.Context, profileID string) (string, string, error) {
	item, err := st.Dynamo.GetItem(ctx, models.ProfilesTable, utils.StringKey("id", profileID))
	if err != nil {
		return "", "", err
	}

	name := utils.ExtractString(item, "name")
	photo := utils.ExtractFirstPhoto(item, "photos")
	if photo == "" {
		photo = utils.ExtractString(item, "photoUrl")
	}
	return name, photo, nil
}
