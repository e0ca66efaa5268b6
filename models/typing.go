package models

// TypingIndicator is the ephemeral "is typing" flag shown to the other participant
type TypingIndicator struct {
	ConversationID string `dynamodbav:"conversationId" json:"conversationId"`
	UserID         string `dynamodbav:"userId" json:"userId"`
	IsTyping       bool   `dynamodbav:"isTyping" json:"isTyping"`
	UpdatedAt      string `dynamodbav:"updatedAt" json:"updatedAt"`
}

// TypingIndicatorsTable is the DynamoDB table for typing indicators.
// Partition key conversationId, sort key userId; rows are upserted in place.
const TypingIndicatorsTable = "TypingIndicators"
