package models

import "github.com/google/uuid"

// Conversation is a chat thread between two profiles. User1ID is always the
// lexicographically smaller id so the unordered pair {A,B} maps to a single row.
type Conversation struct {
	ConversationID          string `dynamodbav:"conversationId" json:"conversationId"`
	User1ID                 string `dynamodbav:"user1Id" json:"user1Id"`
	User2ID                 string `dynamodbav:"user2Id" json:"user2Id"`
	MeetingRequestedByUser1 bool   `dynamodbav:"meetingRequestedByUser1" json:"meetingRequestedByUser1"`
	MeetingRequestedByUser2 bool   `dynamodbav:"meetingRequestedByUser2" json:"meetingRequestedByUser2"`
	MeetingConfirmed        bool   `dynamodbav:"meetingConfirmed" json:"meetingConfirmed"`
	MeetingDate             string `dynamodbav:"meetingDate,omitempty" json:"meetingDate,omitempty"`
	ReadyForMeeting         bool   `dynamodbav:"readyForMeeting" json:"readyForMeeting"`
	PairKey                 string `dynamodbav:"pairKey" json:"-"`
	CreatedAt               string `dynamodbav:"createdAt" json:"createdAt"`
}

// ConversationsTable is the DynamoDB table name for conversations
const ConversationsTable = "Conversations"

// PairKeyIndex is the GSI that resolves a canonical user pair to its conversation
const PairKeyIndex = "pairKey-index"

// CanonicalPair orders two profile ids so that the smaller one comes first
func CanonicalPair(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}

// PairKeyFor builds the GSI key for the unordered pair {a, b}
func PairKeyFor(a, b string) string {
	u1, u2 := CanonicalPair(a, b)
	return u1 + "#" + u2
}

// ConversationIDFor derives the conversation id for the unordered pair {a, b}.
// The id is a v5 UUID of the pair key, so concurrent match inserts for the
// same pair collide on the table key and a conditional put keeps one row.
func ConversationIDFor(a, b string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(PairKeyFor(a, b))).String()
}

// OtherParticipant returns the id of the participant who is not userID
func (c Conversation) OtherParticipant(userID string) string {
	if c.User1ID == userID {
		return c.User2ID
	}
	return c.User1ID
}

// HasParticipant reports whether userID is one of the two participants
func (c Conversation) HasParticipant(userID string) bool {
	return c.User1ID == userID || c.User2ID == userID
}
