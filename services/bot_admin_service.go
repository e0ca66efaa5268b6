package services

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"iskra_server/models"
	"iskra_server/utils"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// Synthetic profile pools for generated bots
var (
	botMaleNames = []string{
		"Алексей", "Дмитрий", "Максим", "Артём", "Иван", "Михаил",
		"Александр", "Николай", "Сергей", "Владимир", "Андрей", "Павел",
		"Кирилл", "Денис", "Егор",
	}
	botFemaleNames = []string{
		"Анна", "Мария", "Елена", "Ольга", "Наталья", "Татьяна",
		"Ирина", "Екатерина", "Светлана", "Юлия", "Дарья", "Виктория",
		"Анастасия", "Алина", "Полина",
	}
	botCities = []string{
		"Москва", "Санкт-Петербург", "Новосибирск", "Екатеринбург",
		"Казань", "Нижний Новгород", "Челябинск", "Самара",
		"Омск", "Ростов-на-Дону",
	}
	botAboutMe = []string{
		"Люблю активный образ жизни, путешествия и новые впечатления",
		"Ценю честность и искренность в отношениях",
		"Работаю в IT, увлекаюсь спортом и чтением",
		"Люблю готовить, гулять по паркам и ходить в театр",
		"Занимаюсь йогой, интересуюсь психологией",
		"Предприниматель, ищу человека для серьёзных отношений",
	}
	botValues = []string{
		"Честность и доверие", "Уважение и поддержка",
		"Общие интересы и цели", "Семейные ценности",
		"Взаимопонимание",
	}
	botFamilyGoals = []string{
		"Хочу создать крепкую семью",
		"Планирую детей в будущем",
		"Мечтаю о счастливой семейной жизни",
		"Готов(а) к серьёзным отношениям",
	}
	botZodiacSigns = []string{
		"Овен", "Телец", "Близнецы", "Рак", "Лев", "Дева",
		"Весы", "Скорпион", "Стрелец", "Козерог", "Водолей", "Рыбы",
	}
	botSmoking  = []string{"smoke", "not_smoke", "neutral"}
	botAlcohol  = []string{"drink", "not_drink", "sometimes"}
	botChildren = []string{"yes", "no", "not_say"}

	// cleanup keeps five of each, by name
	cleanupMaleNames   = []string{"Николай", "Владимир", "Максим", "Андрей", "Иван"}
	cleanupFemaleNames = []string{"Дарья", "Наталья", "Анастасия", "Светлана", "Юлия"}
)

// DefaultBotBatchSize is how many bots one create-bots invocation produces
const DefaultBotBatchSize = 50

// ImageGenerator is the avatar-generation surface the admin flow needs
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
}

// AvatarStorage stores generated avatars and returns a public URL
type AvatarStorage interface {
	UploadObject(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// BotAdminService creates, photographs and tears down the AI-simulated profiles
type BotAdminService struct {
	Dynamo *DynamoService
	Images ImageGenerator
	Photos AvatarStorage
	Rand   *rand.Rand

	// Sleep between avatar generations; the image API rate-limits hard
	PhotoDelay time.Duration
}

// NewBotAdminService builds the admin service with a seeded RNG
func NewBotAdminService(dynamo *DynamoService, images ImageGenerator, photos AvatarStorage) *BotAdminService {
	return &BotAdminService{
		Dynamo:     dynamo,
		Images:     images,
		Photos:     photos,
		Rand:       rand.New(rand.NewSource(time.Now().UnixNano())),
		PhotoDelay: 2 * time.Second,
	}
}

// CreatedBot summarizes one generated bot for the admin response
type CreatedBot struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	City string `json:"city"`
}

// CreateBots inserts count synthetic bot profiles and returns their summaries
func (s *BotAdminService) CreateBots(ctx context.Context, count int) ([]CreatedBot, error) {
	if count <= 0 {
		count = DefaultBotBatchSize
	}

	created := make([]CreatedBot, 0, count)
	now := time.Now().UTC().Format(time.RFC3339)

	for i := 0; i < count; i++ {
		gender := "male"
		lookingFor := "female"
		name := botMaleNames[s.Rand.Intn(len(botMaleNames))]
		if s.Rand.Intn(2) == 0 {
			gender, lookingFor = "female", "male"
			name = botFemaleNames[s.Rand.Intn(len(botFemaleNames))]
		}

		profile := models.Profile{
			ID:          uuid.New().String(),
			Name:        name,
			Age:         25 + s.Rand.Intn(20),
			Gender:      gender,
			LookingFor:  lookingFor,
			City:        botCities[s.Rand.Intn(len(botCities))],
			Phone:       fmt.Sprintf("+7%010d", s.Rand.Int63n(10000000000)),
			AboutMe:     botAboutMe[s.Rand.Intn(len(botAboutMe))],
			Values:      botValues[s.Rand.Intn(len(botValues))],
			FamilyGoals: botFamilyGoals[s.Rand.Intn(len(botFamilyGoals))],
			ZodiacSign:  botZodiacSigns[s.Rand.Intn(len(botZodiacSigns))],
			Smoking:     botSmoking[s.Rand.Intn(len(botSmoking))],
			Alcohol:     botAlcohol[s.Rand.Intn(len(botAlcohol))],
			Children:    botChildren[s.Rand.Intn(len(botChildren))],
			IsBot:       true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if err := s.Dynamo.PutItem(ctx, models.ProfilesTable, profile); err != nil {
			log.Printf("❌ Error creating bot %d: %v", i+1, err)
			continue
		}
		created = append(created, CreatedBot{ID: profile.ID, Name: profile.Name, City: profile.City})
	}

	log.Printf("✅ Created %d bots", len(created))
	return created, nil
}

// ListBots returns all bot profiles
func (s *BotAdminService) ListBots(ctx context.Context) ([]models.Profile, error) {
	var bots []models.Profile
	err := s.Dynamo.ScanWithFilter(ctx, models.ProfilesTable, func(item map[string]types.AttributeValue) bool {
		return utils.ExtractBool(item, "isBot")
	}, nil, &bots)
	if err != nil {
		return nil, fmt.Errorf("failed to list bots: %w", err)
	}
	return bots, nil
}

// PhotoUpdateSummary reports the update-bot-photos outcome
type PhotoUpdateSummary struct {
	Total   int      `json:"total"`
	Updated int      `json:"updated"`
	Failed  int      `json:"failed"`
	Names   []string `json:"updatedBots"`
}

// UpdateBotPhotos regenerates every bot's avatar via the image API and stores
// it to the photo bucket. Per-bot failures are counted, not fatal.
func (s *BotAdminService) UpdateBotPhotos(ctx context.Context) (PhotoUpdateSummary, error) {
	if s.Images == nil {
		return PhotoUpdateSummary{}, fmt.Errorf("image generation is not configured")
	}

	bots, err := s.ListBots(ctx)
	if err != nil {
		return PhotoUpdateSummary{}, err
	}

	summary := PhotoUpdateSummary{Total: len(bots)}
	log.Printf("📸 Found %d bots to update", len(bots))

	for _, bot := range bots {
		prompt := fmt.Sprintf("Natural looking portrait photo of a %d year old %s person named %s, casual clothing, soft daylight", bot.Age, bot.Gender, bot.Name)

		image, err := s.Images.GenerateImage(ctx, prompt)
		if err != nil {
			log.Printf("❌ Failed to generate photo for %s: %v", bot.Name, err)
			summary.Failed++
			continue
		}

		key := fmt.Sprintf("bot-avatars/%s.png", bot.ID)
		photoURL, err := s.Photos.UploadObject(ctx, key, "image/png", image)
		if err != nil {
			log.Printf("❌ Failed to store photo for %s: %v", bot.Name, err)
			summary.Failed++
			continue
		}

		updateExpression := "SET photoUrl = :url, photos = :photos"
		values := map[string]types.AttributeValue{
			":url": &types.AttributeValueMemberS{Value: photoURL},
			":photos": &types.AttributeValueMemberL{Value: []types.AttributeValue{
				&types.AttributeValueMemberS{Value: photoURL},
			}},
		}
		if _, err := s.Dynamo.UpdateItem(ctx, models.ProfilesTable, updateExpression, utils.StringKey("id", bot.ID), values, nil); err != nil {
			log.Printf("❌ Failed to update profile for %s: %v", bot.Name, err)
			summary.Failed++
			continue
		}

		summary.Updated++
		summary.Names = append(summary.Names, bot.Name)

		if s.PhotoDelay > 0 {
			time.Sleep(s.PhotoDelay)
		}
	}

	return summary, nil
}

// CleanupBots keeps five male and five female bots from the fixed name pools,
// fixes their genders and deletes every other bot.
func (s *BotAdminService) CleanupBots(ctx context.Context) (kept, deleted int, err error) {
	bots, err := s.ListBots(ctx)
	if err != nil {
		return 0, 0, err
	}

	selectedMale := map[string]models.Profile{}
	selectedFemale := map[string]models.Profile{}
	for _, bot := range bots {
		if containsName(cleanupMaleNames, bot.Name) && len(selectedMale) < 5 {
			if _, ok := selectedMale[bot.Name]; !ok {
				selectedMale[bot.Name] = bot
				continue
			}
		}
		if containsName(cleanupFemaleNames, bot.Name) && len(selectedFemale) < 5 {
			if _, ok := selectedFemale[bot.Name]; !ok {
				selectedFemale[bot.Name] = bot
			}
		}
	}

	keep := map[string]string{} // id -> corrected gender
	for _, bot := range selectedMale {
		keep[bot.ID] = "male"
	}
	for _, bot := range selectedFemale {
		keep[bot.ID] = "female"
	}

	for _, bot := range bots {
		gender, ok := keep[bot.ID]
		if !ok {
			if err := s.Dynamo.DeleteItem(ctx, models.ProfilesTable, utils.StringKey("id", bot.ID)); err != nil {
				log.Printf("❌ Error deleting bot %s: %v", bot.ID, err)
				continue
			}
			deleted++
			continue
		}

		if bot.Gender != gender {
			updateExpression := "SET gender = :gender"
			values := map[string]types.AttributeValue{
				":gender": &types.AttributeValueMemberS{Value: gender},
			}
			if _, err := s.Dynamo.UpdateItem(ctx, models.ProfilesTable, updateExpression, utils.StringKey("id", bot.ID), values, nil); err != nil {
				log.Printf("❌ Error fixing gender for %s: %v", bot.Name, err)
			}
		}
		kept++
	}

	log.Printf("🧹 Cleanup done: kept %d bots, deleted %d", kept, deleted)
	return kept, deleted, nil
}

// DeleteBotUsers removes every bot profile
func (s *BotAdminService) DeleteBotUsers(ctx context.Context) (int, error) {
	bots, err := s.ListBots(ctx)
	if err != nil {
		return 0, err
	}

	var writeRequests []types.WriteRequest
	for _, bot := range bots {
		writeRequests = append(writeRequests, types.WriteRequest{
			DeleteRequest: &types.DeleteRequest{
				Key: utils.StringKey("id", bot.ID),
			},
		})
	}

	if len(writeRequests) > 0 {
		if err := s.Dynamo.BatchWriteItems(ctx, models.ProfilesTable, writeRequests); err != nil {
			return 0, err
		}
	}

	log.Printf("🧹 Deleted %d bot users", len(bots))
	return len(bots), nil
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
