package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"iskra_server/models"
	"iskra_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoResponderStore implements ResponderStore on the shared DynamoDB layer.
// The queue table is keyed (botId, messageId) so at most one queue row can
// ever exist per bot and triggering message.
type DynamoResponderStore struct {
	Dynamo *DynamoService
}

func (st *DynamoResponderStore) DueQueueItems(ctx context.Context, now time.Time) ([]models.BotResponseQueueItem, error) {
	cutoff := now.UTC().Format(time.RFC3339)

	var due []models.BotResponseQueueItem
	err := st.Dynamo.ScanWithFilter(ctx, models.BotResponseQueueTable, func(item map[string]types.AttributeValue) bool {
		if utils.ExtractBool(item, "processed") {
			return false
		}
		return utils.ExtractString(item, "scheduledAt") <= cutoff
	}, nil, &due)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(due, func(i, j int) bool {
		return due[i].ScheduledAt < due[j].ScheduledAt
	})
	return due, nil
}

func (st *DynamoResponderStore) MarkProcessed(ctx context.Context, item models.BotResponseQueueItem) error {
	key := utils.CompositeKey("botId", item.BotID, "messageId", item.MessageID)
	updateExpression := "SET processed = :true"
	values := map[string]types.AttributeValue{
		":true": &types.AttributeValueMemberBOOL{Value: true},
	}
	_, err := st.Dynamo.UpdateItem(ctx, models.BotResponseQueueTable, updateExpression, key, values, nil)
	return err
}

func (st *DynamoResponderStore) EnqueueIfAbsent(ctx context.Context, item models.BotResponseQueueItem) error {
	item.Processed = false
	return st.Dynamo.PutItemIfAbsent(ctx, models.BotResponseQueueTable, item, "messageId")
}

func (st *DynamoResponderStore) RecentMessages(ctx context.Context, since time.Time) ([]models.Message, error) {
	cutoff := since.UTC().Format(models.MessageTimeFormat)

	var recent []models.Message
	err := st.Dynamo.ScanWithFilter(ctx, models.MessagesTable, func(item map[string]types.AttributeValue) bool {
		return utils.ExtractString(item, "createdAt") >= cutoff
	}, nil, &recent)
	if err != nil {
		return nil, err
	}
	return recent, nil
}

func (st *DynamoResponderStore) GetConversation(ctx context.Context, conversationID string) (*models.Conversation, error) {
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

func (st *DynamoResponderStore) MessagesForConversation(ctx context.Context, conversationID string) ([]models.Message, error) {
	keyCondition := "#conversationId = :conversationId"
	expressionValues := map[string]types.AttributeValue{
		":conversationId": &types.AttributeValueMemberS{Value: conversationID},
	}
	expressionNames := map[string]string{
		"#conversationId": "conversationId",
	}

	items, err := st.Dynamo.QueryItemsWithOptions(ctx, models.MessagesTable, keyCondition, expressionValues, expressionNames, 0, false)
	if err != nil {
		return nil, err
	}

	var messages []models.Message
	if err := attributevalue.UnmarshalListOfMaps(items, &messages); err != nil {
		return nil, fmt.Errorf("failed to parse messages: %w", err)
	}
	return messages, nil
}

func (st *DynamoResponderStore) GetProfile(ctx context.Context, profileID string) (*models.Profile, error) {
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

func (st *DynamoResponderStore) InsertMessage(ctx context.Context, message models.Message) error {
	return st.Dynamo.PutItem(ctx, models.MessagesTable, message)
}

func (st *DynamoResponderStore) SetTyping(ctx context.Context, conversationID, userID string, isTyping bool) error {
	indicator := models.TypingIndicator{
		ConversationID: conversationID,
		UserID:         userID,
		IsTyping:       isTyping,
		UpdatedAt:      time.Now().UTC().Format(time.RFC3339),
	}
	return st.Dynamo.PutItem(ctx, models.TypingIndicatorsTable, indicator)
}
