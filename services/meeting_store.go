package services

import (
	"context"
	"errors"
	"fmt"

	"iskra_server/models"
	"iskra_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
)

// DynamoMeetingStore implements MeetingStore on the shared DynamoDB layer
type DynamoMeetingStore struct {
	Dynamo *DynamoService
}

func (st *DynamoMeetingStore) GetConversation(ctx context.Context, conversationID string) (*models.Conversation, error) {
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

func (st *DynamoMeetingStore) SaveConversation(ctx context.Context, conversation models.Conversation) error {
	return st.Dynamo.PutItem(ctx, models.ConversationsTable, conversation)
}

func (st *DynamoMeetingStore) GetMeeting(ctx context.Context, user1ID, user2ID string) (*models.Meeting, error) {
	item, err := st.Dynamo.GetItem(ctx, models.MeetingsTable, utils.CompositeKey("user1Id", user1ID, "user2Id", user2ID))
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var meeting models.Meeting
	if err := attributevalue.UnmarshalMap(item, &meeting); err != nil {
		return nil, fmt.Errorf("failed to parse meeting: %w", err)
	}
	return &meeting, nil
}

func (st *DynamoMeetingStore) SaveMeeting(ctx context.Context, meeting models.Meeting) error {
	return st.Dynamo.PutItem(ctx, models.MeetingsTable, meeting)
}
