package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"calorie-tracker/utils"

	"github.com/shopspring/decimal"
)

// RecipeService extracts structured nutrition from recipe text. Failures
// surface to the caller, same as photo recognition.
type RecipeService struct {
	ai *OpenAIClient
}

func NewRecipeService(ai *OpenAIClient) *RecipeService {
	return &RecipeService{ai: ai}
}

type RecipeIngredient struct {
	Name     string          `json:"name"`
	Quantity string          `json:"quantity"`
	Unit     string          `json:"unit"`
	Calories decimal.Decimal `json:"calories"`
	Protein  decimal.Decimal `json:"protein"`
	Carbs    decimal.Decimal `json:"carbs"`
	Fat      decimal.Decimal `json:"fat"`
}

type NutritionTotals struct {
	Calories decimal.Decimal `json:"calories"`
	Protein  decimal.Decimal `json:"protein"`
	Carbs    decimal.Decimal `json:"carbs"`
	Fat      decimal.Decimal `json:"fat"`
}

type RecipeAnalysis struct {
	RecipeName      string             `json:"recipeName"`
	Servings        int                `json:"servings"`
	PrepTimeMinutes int                `json:"prepTimeMinutes"`
	CookTimeMinutes int                `json:"cookTimeMinutes"`
	Ingredients     []RecipeIngredient `json:"ingredients"`
	Instructions    string             `json:"instructions"`
	TotalNutrition  NutritionTotals    `json:"totalNutrition"`
	PerServing      NutritionTotals    `json:"perServing"`
}

func (s *RecipeService) Analyze(ctx context.Context, recipeText string, servings *int) (*RecipeAnalysis, error) {
	if !s.ai.Configured() {
		return nil, fmt.Errorf("%w: api key not configured", ErrUpstreamUnavailable)
	}
	if strings.TrimSpace(recipeText) == "" {
		return nil, fmt.Errorf("%w: recipe text is required", ErrInvalid)
	}

	messages := []ChatMessage{
		{Role: "system", Content: "You are a professional nutritionist and recipe analyzer. Extract recipe details and calculate accurate nutrition information."},
		{Role: "user", Content: buildRecipePrompt(recipeText, servings)},
	}

	reply, err := s.ai.Complete(ctx, messages, 2000, 0.3)
	if err != nil {
		return nil, err
	}

	var analysis RecipeAnalysis
	if err := json.Unmarshal([]byte(utils.StripCodeFence(reply)), &analysis); err != nil {
		return nil, fmt.Errorf("%w: unparseable recipe analysis", ErrUpstreamUnavailable)
	}

	if servings != nil && *servings > 0 {
		analysis.Servings = *servings
	}
	if analysis.Servings > 0 && analysis.PerServing.Calories.IsZero() {
		n := decimal.NewFromInt(int64(analysis.Servings))
		analysis.PerServing = NutritionTotals{
			Calories: analysis.TotalNutrition.Calories.Div(n).Round(2),
			Protein:  analysis.TotalNutrition.Protein.Div(n).Round(2),
			Carbs:    analysis.TotalNutrition.Carbs.Div(n).Round(2),
			Fat:      analysis.TotalNutrition.Fat.Div(n).Round(2),
		}
	}
	return &analysis, nil
}

func buildRecipePrompt(recipeText string, servings *int) string {
	servingsNote := " Try to detect the number of servings from the recipe."
	if servings != nil && *servings > 0 {
		servingsNote = fmt.Sprintf(" The recipe should be calculated for %d servings.", *servings)
	}

	return fmt.Sprintf(`Analyze this recipe and extract ALL the information in JSON format.%s

Recipe:
%s

Return ONLY a valid JSON object with this EXACT structure (no markdown, no code blocks):
{
  "recipeName": "Recipe Name",
  "servings": 4,
  "prepTimeMinutes": 15,
  "cookTimeMinutes": 30,
  "ingredients": [
    {
      "name": "ingredient name",
      "quantity": "2",
      "unit": "cups",
      "calories": 120,
      "protein": 5,
      "carbs": 20,
      "fat": 3
    }
  ],
  "instructions": "Step-by-step cooking instructions if provided in the recipe",
  "totalNutrition": {
    "calories": 480,
    "protein": 20,
    "carbs": 80,
    "fat": 12
  },
  "perServing": {
    "calories": 120,
    "protein": 5,
    "carbs": 20,
    "fat": 3
  }
}`, servingsNote, recipeText)
}
