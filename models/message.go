package models

// Message is a single chat utterance, immutable after insert
type Message struct {
	ConversationID string `dynamodbav:"conversationId" json:"conversationId"`
	CreatedAt      string `dynamodbav:"createdAt" json:"createdAt"`
	MessageID      string `dynamodbav:"messageId" json:"messageId"`
	SenderID       string `dynamodbav:"senderId" json:"senderId"`
	Content        string `dynamodbav:"content" json:"content" validate:"required,min=1,max=2000"`
	IsUnread       bool   `dynamodbav:"isUnread" json:"isUnread"`
}

// MessagesTable is the DynamoDB table name for chat messages.
// Partition key conversationId, sort key createdAt.
const MessagesTable = "Messages"

// MessageTimeFormat is the fixed-width layout for createdAt sort keys.
// RFC3339Nano trims trailing zeros, so a whole-second value would compare
// lexicographically greater than a fractional one within the same second.
const MessageTimeFormat = "2006-01-02T15:04:05.000000000Z07:00"
