package models

// Profile defines the structure for user and bot profiles
type Profile struct {
	ID            string   `dynamodbav:"id" json:"id"`
	Name          string   `dynamodbav:"name" json:"name" validate:"required,min=2,max=100"`
	Age           int      `dynamodbav:"age" json:"age" validate:"required,gte=18,lte=100"`
	Gender        string   `dynamodbav:"gender,omitempty" json:"gender,omitempty" validate:"omitempty,oneof=male female"`
	City          string   `dynamodbav:"city" json:"city" validate:"required,min=2,max=100"`
	Phone         string   `dynamodbav:"phone" json:"phone" validate:"required,e164"`
	AboutMe       string   `dynamodbav:"aboutMe" json:"aboutMe" validate:"required,min=10,max=1000"`
	Values        string   `dynamodbav:"values" json:"values" validate:"required,min=10,max=1000"`
	FamilyGoals   string   `dynamodbav:"familyGoals" json:"familyGoals" validate:"required,min=10,max=1000"`
	LookingFor    string   `dynamodbav:"lookingFor,omitempty" json:"lookingFor,omitempty" validate:"omitempty,oneof=male female"`
	ZodiacSign    string   `dynamodbav:"zodiacSign,omitempty" json:"zodiacSign,omitempty"`
	Smoking       string   `dynamodbav:"smoking,omitempty" json:"smoking,omitempty"`
	Alcohol       string   `dynamodbav:"alcohol,omitempty" json:"alcohol,omitempty"`
	Children      string   `dynamodbav:"children,omitempty" json:"children,omitempty"`
	PhotoURL      string   `dynamodbav:"photoUrl,omitempty" json:"photoUrl,omitempty" validate:"omitempty,url"`
	Photos        []string `dynamodbav:"photos,omitempty" json:"photos,omitempty" validate:"max=9"`
	HonestyRating float64  `dynamodbav:"honestyRating" json:"honestyRating"`
	TotalRatings  int      `dynamodbav:"totalRatings" json:"totalRatings"`
	IsBot         bool     `dynamodbav:"isBot" json:"isBot"`
	CreatedAt     string   `dynamodbav:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt     string   `dynamodbav:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// ProfilesTable is the DynamoDB table name for user and bot profiles
const ProfilesTable = "Profiles"
