package models

// ✅ Swipe actions
const (
	ActionLike    = "like"
	ActionDislike = "dislike"
)

// ✅ Bot personality tiers, keyed by honesty rating
const (
	PersonalityFriendly = "friendly"
	PersonalityNeutral  = "neutral"
	PersonalityCurt     = "curt"
)

// PersonalityTier maps an aggregate honesty rating to a conversational tier.
// Unrated bots (totalRatings == 0) talk friendly.
func PersonalityTier(honestyRating float64, totalRatings int) string {
	switch {
	case totalRatings == 0 || honestyRating >= 4:
		return PersonalityFriendly
	case honestyRating >= 2.5:
		return PersonalityNeutral
	default:
		return PersonalityCurt
	}
}
