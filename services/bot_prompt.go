package services

import (
	"fmt"

	"iskra_server/models"

	"github.com/sashabaranov/go-openai"
)

// personalityModifiers shade the bot's tone by its honesty-rating tier
var personalityModifiers = map[string]string{
	models.PersonalityFriendly: "Общайся тепло и приветливо, проявляй искренний интерес к собеседнику.",
	models.PersonalityNeutral:  "Общайся спокойно и ровно, без лишних эмоций.",
	models.PersonalityCurt:     "Отвечай коротко и сдержанно, не задавай лишних вопросов.",
}

// BuildBotSystemPrompt composes the persona instruction for a bot profile
func BuildBotSystemPrompt(bot models.Profile) string {
	tier := models.PersonalityTier(bot.HonestyRating, bot.TotalRatings)
	return fmt.Sprintf(
		"Ты %s, %d лет, из города %s. %s. Твои ценности: %s. "+
			"Общайся естественно, по-дружески, как реальный человек на сайте знакомств. "+
			"Отвечай кратко (1-3 предложения), иногда задавай встречные вопросы. "+
			"Используй эмоции и разговорный стиль. %s",
		bot.Name, bot.Age, bot.City, bot.AboutMe, bot.Values, personalityModifiers[tier],
	)
}

// BuildConversationHistory maps stored messages to completion roles:
// the bot's own messages become assistant turns, everything else user turns.
func BuildConversationHistory(bot models.Profile, history []models.Message) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: BuildBotSystemPrompt(bot),
	})

	for _, m := range history {
		role := openai.ChatMessageRoleUser
		if m.SenderID == bot.ID {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: m.Content,
		})
	}

	return messages
}
