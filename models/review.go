package models

// Review is a post-meeting honesty rating, unique per (reviewer, conversation)
type Review struct {
	ReviewID       string `dynamodbav:"reviewId" json:"reviewId"`
	ConversationID string `dynamodbav:"conversationId" json:"conversationId" validate:"required"`
	ReviewerID     string `dynamodbav:"reviewerId" json:"reviewerId" validate:"required"`
	ReviewedID     string `dynamodbav:"reviewedId" json:"reviewedId" validate:"required"`
	Rating         int    `dynamodbav:"rating" json:"rating" validate:"required,gte=1,lte=5"`
	Comment        string `dynamodbav:"comment,omitempty" json:"comment,omitempty" validate:"max=500"`
	CreatedAt      string `dynamodbav:"createdAt" json:"createdAt"`
}

// ReviewsTable is the DynamoDB table for reviews.
// Partition key conversationId, sort key reviewerId, so the uniqueness of one
// review per (reviewer, conversation) is the table key itself.
const ReviewsTable = "Reviews"
