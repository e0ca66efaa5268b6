package models

// Meeting records that two profiles met in person. Each side confirms separately.
type Meeting struct {
	MeetingID        string `dynamodbav:"meetingId" json:"meetingId"`
	User1ID          string `dynamodbav:"user1Id" json:"user1Id"`
	User2ID          string `dynamodbav:"user2Id" json:"user2Id"`
	ConfirmedByUser1 bool   `dynamodbav:"confirmedByUser1" json:"confirmedByUser1"`
	ConfirmedByUser2 bool   `dynamodbav:"confirmedByUser2" json:"confirmedByUser2"`
	CreatedAt        string `dynamodbav:"createdAt" json:"createdAt"`
}

// MeetingsTable is the DynamoDB table name for meetings
const MeetingsTable = "Meetings"
