package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"calorie-tracker/config"
)

func TestSuggestionsPlaceholderWithoutKey(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "a@example.com")
	ai := NewOpenAIClient(config.OpenAIConfig{Timeout: time.Second})
	svc := NewSuggestionService(db, NewMetricsService(db), ai)

	got, err := svc.GetSuggestions(context.Background(), user.ID, time.Now().UTC())
	if err != nil {
		t.Fatalf("GetSuggestions: %v", err)
	}
	if got.Message != suggestionPlaceholder {
		t.Errorf("message = %q", got.Message)
	}
	if got.RemainingCalories != 2000 {
		t.Errorf("remaining = %d, want 2000", got.RemainingCalories)
	}
	if len(got.Suggestions) != 0 {
		t.Errorf("suggestions = %d, want 0", len(got.Suggestions))
	}
}

func TestSuggestionsGoalMetShortCircuits(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "a@example.com")
	food := seedFood(t, db, nil, "Dense", 1000, 10, 10, 10)
	entries := NewEntryService(db)
	// 1960 kcal eaten leaves 40, inside the slack
	if _, err := entries.Create(user.ID, food.ID, dec(196), nil); err != nil {
		t.Fatalf("Create entry: %v", err)
	}

	// any upstream call would fail; goal-met must not dial out
	svc := NewSuggestionService(db, NewMetricsService(db), testClient("http://127.0.0.1:1"))

	got, err := svc.GetSuggestions(context.Background(), user.ID, time.Now().UTC())
	if err != nil {
		t.Fatalf("GetSuggestions: %v", err)
	}
	if !got.GoalMet {
		t.Error("GoalMet = false, want true")
	}
	if got.RemainingCalories != 40 {
		t.Errorf("remaining = %d, want 40", got.RemainingCalories)
	}
	if len(got.Suggestions) != 0 {
		t.Errorf("suggestions = %d, want 0", len(got.Suggestions))
	}
}

func TestSuggestionsRemainingNeverNegative(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "a@example.com")
	food := seedFood(t, db, nil, "Dense", 1000, 10, 10, 10)
	entries := NewEntryService(db)
	if _, err := entries.Create(user.ID, food.ID, dec(300), nil); err != nil {
		t.Fatalf("Create entry: %v", err)
	}

	ai := NewOpenAIClient(config.OpenAIConfig{Timeout: time.Second})
	svc := NewSuggestionService(db, NewMetricsService(db), ai)

	got, err := svc.GetSuggestions(context.Background(), user.ID, time.Now().UTC())
	if err != nil {
		t.Fatalf("GetSuggestions: %v", err)
	}
	if got.RemainingCalories != 0 {
		t.Errorf("remaining = %d, want 0", got.RemainingCalories)
	}
}

func TestSuggestionsFromUpstream(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "a@example.com")
	srv := completionsStub(t, http.StatusOK, map[string]any{
		"choices": []map[string]any{{"message": map[string]any{"content": "```json\n[{\"name\":\"Grilled chicken salad\",\"description\":\"light\",\"calories\":420,\"protein\":38,\"carbs\":18,\"fat\":20}]\n```"}}},
	})
	svc := NewSuggestionService(db, NewMetricsService(db), testClient(srv.URL))

	got, err := svc.GetSuggestions(context.Background(), user.ID, time.Now().UTC())
	if err != nil {
		t.Fatalf("GetSuggestions: %v", err)
	}
	if len(got.Suggestions) != 1 || got.Suggestions[0].Name != "Grilled chicken salad" {
		t.Fatalf("suggestions = %+v", got.Suggestions)
	}
	if got.Message != "You have 2000 calories remaining today" {
		t.Errorf("message = %q", got.Message)
	}
}

func TestSuggestionsDegradeOnUpstreamFailure(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "a@example.com")
	svc := NewSuggestionService(db, NewMetricsService(db), testClient("http://127.0.0.1:1"))

	got, err := svc.GetSuggestions(context.Background(), user.ID, time.Now().UTC())
	if err != nil {
		t.Fatalf("GetSuggestions: %v", err)
	}
	if len(got.Suggestions) != 0 {
		t.Errorf("suggestions = %d, want 0", len(got.Suggestions))
	}
	if got.Message != "You have 2000 calories remaining today" {
		t.Errorf("message = %q", got.Message)
	}
}

func TestSuggestionsUnknownUser(t *testing.T) {
	db := newTestDB(t)
	ai := NewOpenAIClient(config.OpenAIConfig{Timeout: time.Second})
	svc := NewSuggestionService(db, NewMetricsService(db), ai)

	if _, err := svc.GetSuggestions(context.Background(), 9999, time.Now().UTC()); err == nil {
		t.Error("expected error for unknown user")
	}
}
