package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"calorie-tracker/utils"

	"github.com/shopspring/decimal"
)

// VisionService turns a food photo into structured food candidates via the
// model's vision endpoint. Unlike chat, a failure here is surfaced to the
// caller: photo recognition is a secondary feature and the client shows
// its own error state.
type VisionService struct {
	ai *OpenAIClient
}

func NewVisionService(ai *OpenAIClient) *VisionService {
	return &VisionService{ai: ai}
}

type RecognizedFood struct {
	Name              string          `json:"name"`
	EstimatedGrams    decimal.Decimal `json:"estimatedGrams"`
	EstimatedCalories decimal.Decimal `json:"estimatedCalories"`
	EstimatedProtein  decimal.Decimal `json:"estimatedProtein"`
	EstimatedCarbs    decimal.Decimal `json:"estimatedCarbs"`
	EstimatedFat      decimal.Decimal `json:"estimatedFat"`
	Notes             string          `json:"notes"`
}

type ImageRecognitionResult struct {
	Foods       []RecognizedFood `json:"foods"`
	RawAnalysis string           `json:"rawAnalysis"`
}

const visionPrompt = `Analyze this food image and identify all visible food items. For each item, provide:
1. Food name
2. Estimated portion size in grams
3. Estimated nutritional information (calories, protein, carbs, fat)

Be as accurate as possible with portion sizes. If you see multiple items, list each separately.

Respond in this exact JSON format:
{
  "foods": [
    {
      "name": "Food name",
      "estimatedGrams": 150,
      "estimatedCalories": 200,
      "estimatedProtein": 20,
      "estimatedCarbs": 15,
      "estimatedFat": 8,
      "notes": "Any additional notes"
    }
  ],
  "rawAnalysis": "Brief overall description of the meal"
}`

func (s *VisionService) AnalyzeFoodImage(ctx context.Context, image []byte, contentType string) (*ImageRecognitionResult, error) {
	if !s.ai.Configured() {
		return nil, fmt.Errorf("%w: api key not configured", ErrUpstreamUnavailable)
	}
	if len(image) == 0 {
		return nil, fmt.Errorf("%w: image is empty", ErrInvalid)
	}
	if contentType == "" {
		contentType = "image/jpeg"
	}

	dataURL := fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(image))
	messages := []ChatMessage{
		{Role: "user", Content: ImageContent(visionPrompt, dataURL)},
	}

	reply, err := s.ai.Complete(ctx, messages, 1000, 0.3)
	if err != nil {
		return nil, err
	}

	var result ImageRecognitionResult
	if err := json.Unmarshal([]byte(utils.StripCodeFence(reply)), &result); err != nil {
		return nil, fmt.Errorf("%w: unparseable recognition reply", ErrUpstreamUnavailable)
	}
	if result.Foods == nil {
		result.Foods = []RecognizedFood{}
	}
	return &result, nil
}
