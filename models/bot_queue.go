package models

// BotResponseQueueItem is a deferred bot reply awaiting its scheduled time
type BotResponseQueueItem struct {
	QueueID        string `dynamodbav:"queueId" json:"queueId"`
	BotID          string `dynamodbav:"botId" json:"botId"`
	ConversationID string `dynamodbav:"conversationId" json:"conversationId"`
	MessageID      string `dynamodbav:"messageId" json:"messageId"`
	ScheduledAt    string `dynamodbav:"scheduledAt" json:"scheduledAt"`
	Processed      bool   `dynamodbav:"processed" json:"processed"`
	CreatedAt      string `dynamodbav:"createdAt" json:"createdAt"`
}

// BotResponseQueueTable is the DynamoDB table for deferred bot replies
const BotResponseQueueTable = "BotResponseQueue"
