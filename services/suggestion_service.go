package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"calorie-tracker/models"
	"calorie-tracker/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// GoalMetCalorieSlack is how close to the calorie goal counts as met.
const GoalMetCalorieSlack = 50

const suggestionPlaceholder = "AI suggestions are not configured."

// SuggestionService produces meal suggestions sized to the calories a user
// has left today. Upstream trouble degrades to a calorie summary rather
// than failing the request.
type SuggestionService struct {
	db      *gorm.DB
	metrics *MetricsService
	ai      *OpenAIClient
}

func NewSuggestionService(db *gorm.DB, metrics *MetricsService, ai *OpenAIClient) *SuggestionService {
	return &SuggestionService{db: db, metrics: metrics, ai: ai}
}

type MealSuggestion struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Calories    int    `json:"calories"`
	Protein     int    `json:"protein"`
	Carbs       int    `json:"carbs"`
	Fat         int    `json:"fat"`
}

type SuggestionsResponse struct {
	RemainingCalories int              `json:"remainingCalories"`
	GoalMet           bool             `json:"goalMet"`
	Message           string           `json:"message"`
	Suggestions       []MealSuggestion `json:"suggestions"`
}

func (s *SuggestionService) GetSuggestions(ctx context.Context, userID uint, date time.Time) (*SuggestionsResponse, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, ErrNotFound
	}

	daily, err := s.metrics.Daily(userID, date)
	if err != nil {
		return nil, err
	}

	remaining := user.CalorieGoal - int(daily.TotalCalories.IntPart())
	if remaining < 0 {
		remaining = 0
	}

	if !s.ai.Configured() {
		return &SuggestionsResponse{
			RemainingCalories: remaining,
			Message:           suggestionPlaceholder,
			Suggestions:       []MealSuggestion{},
		}, nil
	}

	if remaining <= GoalMetCalorieSlack {
		return &SuggestionsResponse{
			RemainingCalories: remaining,
			GoalMet:           true,
			Message:           "Great job! You've met your daily goals! 🎉",
			Suggestions:       []MealSuggestion{},
		}, nil
	}

	suggestions, err := s.askForSuggestions(ctx, &user, remaining)
	if err != nil {
		logrus.WithError(err).Warn("meal suggestions degraded")
		return &SuggestionsResponse{
			RemainingCalories: remaining,
			Message:           fmt.Sprintf("You have %d calories remaining today", remaining),
			Suggestions:       []MealSuggestion{},
		}, nil
	}

	return &SuggestionsResponse{
		RemainingCalories: remaining,
		Message:           fmt.Sprintf("You have %d calories remaining today", remaining),
		Suggestions:       suggestions,
	}, nil
}

func (s *SuggestionService) askForSuggestions(ctx context.Context, user *models.User, remaining int) ([]MealSuggestion, error) {
	prompt := fmt.Sprintf(`Suggest 3 meals for someone with %d calories remaining today.
Their daily goals are %dg protein, %dg carbs, %dg fat.

Return ONLY a valid JSON array with this structure (no markdown, no code blocks):
[
  {
    "name": "Meal name",
    "description": "Short description",
    "calories": 400,
    "protein": 30,
    "carbs": 40,
    "fat": 12
  }
]`, remaining, user.ProteinGoal, user.CarbsGoal, user.FatGoal)

	messages := []ChatMessage{
		{Role: "system", Content: "You are a helpful nutritionist suggesting realistic, simple meals."},
		{Role: "user", Content: prompt},
	}

	reply, err := s.ai.Complete(ctx, messages, 800, 0.7)
	if err != nil {
		return nil, err
	}

	var suggestions []MealSuggestion
	if err := json.Unmarshal([]byte(utils.StripCodeFence(reply)), &suggestions); err != nil {
		return nil, fmt.Errorf("%w: unparseable suggestions", ErrUpstreamUnavailable)
	}
	if len(suggestions) == 0 || strings.TrimSpace(suggestions[0].Name) == "" {
		return nil, fmt.Errorf("%w: empty suggestions", ErrUpstreamUnavailable)
	}
	return suggestions, nil
}
