package models

// Like is a unidirectional "liked" reaction from UserID to LikedUserID
type Like struct {
	UserID      string `dynamodbav:"userId" json:"userId"`
	LikedUserID string `dynamodbav:"likedUserId" json:"likedUserId"`
	CreatedAt   string `dynamodbav:"createdAt" json:"createdAt"`
}

// Dislike hides DislikedUserID from UserID's browse feed
type Dislike struct {
	UserID         string `dynamodbav:"userId" json:"userId"`
	DislikedUserID string `dynamodbav:"dislikedUserId" json:"dislikedUserId"`
	CreatedAt      string `dynamodbav:"createdAt" json:"createdAt"`
}

// LikesTable is the DynamoDB table for likes. Partition key userId, sort key likedUserId.
const LikesTable = "Likes"

// DislikesTable is the DynamoDB table for dislikes. Partition key userId, sort key dislikedUserId.
const DislikesTable = "Dislikes"
