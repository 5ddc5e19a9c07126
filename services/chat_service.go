package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"calorie-tracker/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Canned replies. The chat endpoint never surfaces an upstream failure to
// the user; it degrades to one of these.
const (
	chatDisabledReply   = "Chat functionality is disabled. Please configure a valid OpenAI API key."
	chatEmptyAskReply   = "Please ask a question about food or nutrition so I can help."
	chatUserGoneReply   = "User not found. Please try again."
	chatUpstreamReply   = "Sorry, something went wrong while contacting the assistant. Please try again."
	chatEmptyReplyReply = "I couldn't think of a good answer. Try asking in another way!"
)

type ChatService struct {
	db      *gorm.DB
	metrics *MetricsService
	ai      *OpenAIClient
}

func NewChatService(db *gorm.DB, metrics *MetricsService, ai *OpenAIClient) *ChatService {
	return &ChatService{db: db, metrics: metrics, ai: ai}
}

type ChatHistoryItem struct {
	Sender string `json:"sender"` // "user" | "assistant"
	Text   string `json:"text"`
}

type ChatRequest struct {
	Message string            `json:"message"`
	History []ChatHistoryItem `json:"history"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

// GetResponse answers a nutrition question with full account context. It
// always returns a usable reply; failures degrade, they don't propagate.
func (s *ChatService) GetResponse(ctx context.Context, userID uint, req ChatRequest) ChatResponse {
	if !s.ai.Configured() {
		return ChatResponse{Reply: chatDisabledReply}
	}
	if strings.TrimSpace(req.Message) == "" {
		return ChatResponse{Reply: chatEmptyAskReply}
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return ChatResponse{Reply: chatUserGoneReply}
	}

	system, err := s.buildSystemPrompt(&user)
	if err != nil {
		logrus.WithError(err).Warn("chat context assembly failed")
		return ChatResponse{Reply: chatUpstreamReply}
	}

	messages := []ChatMessage{{Role: "system", Content: system}}
	for _, h := range req.History {
		switch h.Sender {
		case "user":
			messages = append(messages, ChatMessage{Role: "user", Content: h.Text})
		case "assistant":
			messages = append(messages, ChatMessage{Role: "assistant", Content: h.Text})
		}
	}
	messages = append(messages, ChatMessage{Role: "user", Content: req.Message})

	reply, err := s.ai.Complete(ctx, messages, 1000, 0.7)
	if err != nil {
		if !errors.Is(err, ErrUpstreamUnavailable) {
			logrus.WithError(err).Error("unexpected chat failure")
		}
		return ChatResponse{Reply: chatUpstreamReply}
	}
	if reply == "" {
		return ChatResponse{Reply: chatEmptyReplyReply}
	}
	return ChatResponse{Reply: reply}
}

const chatSystemPreamble = `You are a knowledgeable nutrition assistant inside a calorie tracking app. You provide comprehensive, personalized nutrition advice.

CAPABILITIES:
- Detailed information about calories, macronutrients and micronutrients
- Meal planning ideas, recipes and food combinations
- Personalized advice based on the user's goals and current intake

RESPONSE STYLE:
- Provide detailed answers with specific examples and concrete food recommendations
- Be friendly, helpful and encouraging

IMPORTANT DISCLAIMERS:
- If asked for medical advice, recommend consulting a healthcare professional
- Do not diagnose medical conditions

USER CONTEXT:
`

func (s *ChatService) buildSystemPrompt(user *models.User) (string, error) {
	daily, err := s.metrics.Daily(user.ID, time.Now().UTC())
	if err != nil {
		return "", err
	}

	var recent []models.EntryItem
	if err := s.db.Preload("Food").
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(5).
		Find(&recent).Error; err != nil {
		return "", err
	}

	type foodUse struct {
		Name  string
		Count int
	}
	var uses []foodUse
	if err := s.db.Model(&models.EntryItem{}).
		Select("foods.name AS name, COUNT(*) AS count").
		Joins("JOIN foods ON foods.id = entry_items.food_id").
		Where("entry_items.user_id = ?", user.ID).
		Group("foods.name").
		Order("count DESC").
		Limit(10).
		Scan(&uses).Error; err != nil {
		return "", err
	}

	remaining := func(goal int, eaten float64) int {
		r := goal - int(eaten)
		if r < 0 {
			return 0
		}
		return r
	}
	pct := func(eaten float64, goal int) float64 {
		if goal <= 0 {
			return 0
		}
		return eaten / float64(goal) * 100
	}

	cals, _ := daily.TotalCalories.Float64()
	prot, _ := daily.TotalProtein.Float64()
	carbs, _ := daily.TotalCarbs.Float64()
	fat, _ := daily.TotalFat.Float64()

	var sb strings.Builder
	sb.WriteString(chatSystemPreamble)

	sb.WriteString("\nDaily Goals:\n")
	fmt.Fprintf(&sb, "- Calories: %d kcal\n- Protein: %d g\n- Carbs: %d g\n- Fat: %d g\n",
		user.CalorieGoal, user.ProteinGoal, user.CarbsGoal, user.FatGoal)

	sb.WriteString("\nToday's Intake (so far):\n")
	fmt.Fprintf(&sb, "- Calories: %.0f / %d kcal (%.1f%%)\n", cals, user.CalorieGoal, pct(cals, user.CalorieGoal))
	fmt.Fprintf(&sb, "- Protein: %.1f / %d g (%.1f%%)\n", prot, user.ProteinGoal, pct(prot, user.ProteinGoal))
	fmt.Fprintf(&sb, "- Carbs: %.1f / %d g (%.1f%%)\n", carbs, user.CarbsGoal, pct(carbs, user.CarbsGoal))
	fmt.Fprintf(&sb, "- Fat: %.1f / %d g (%.1f%%)\n", fat, user.FatGoal, pct(fat, user.FatGoal))

	sb.WriteString("\nRemaining Needs Today:\n")
	fmt.Fprintf(&sb, "- Calories: %d kcal\n- Protein: %d g\n- Carbs: %d g\n- Fat: %d g\n",
		remaining(user.CalorieGoal, cals),
		remaining(user.ProteinGoal, prot),
		remaining(user.CarbsGoal, carbs),
		remaining(user.FatGoal, fat))

	if len(recent) > 0 {
		sb.WriteString("\nRecent Food Entries (last 5):\n")
		for i := range recent {
			e := &recent[i]
			fmt.Fprintf(&sb, "- %s: %sg (%s kcal, P: %sg, C: %sg, F: %sg)\n",
				e.Food.Name, e.Grams.StringFixed(0), e.Calories.StringFixed(0),
				e.Protein.StringFixed(1), e.Carbs.StringFixed(1), e.Fat.StringFixed(1))
		}
	}

	if len(uses) > 0 {
		sb.WriteString("\nMost Used Foods:\n")
		for _, u := range uses {
			fmt.Fprintf(&sb, "- %s (logged %d times)\n", u.Name, u.Count)
		}
	}

	sb.WriteString("\nUse this context to provide personalized recommendations. When suggesting foods or meals, consider what the user still needs to meet their goals.")
	return sb.String(), nil
}
