package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"calorie-tracker/config"
)

func testClient(baseURL string) *OpenAIClient {
	return NewOpenAIClient(config.OpenAIConfig{
		APIKey:  "test-key",
		Model:   "gpt-4o-mini",
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
	})
}

func completionsStub(t *testing.T, status int, body any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("auth header = %q", got)
		}
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCompleteReturnsAssistantText(t *testing.T) {
	srv := completionsStub(t, http.StatusOK, map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": "  hello there  "}},
		},
	})

	got, err := testClient(srv.URL).Complete(context.Background(), []ChatMessage{{Role: "user", Content: "hi"}}, 100, 0.7)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "hello there" {
		t.Errorf("reply = %q", got)
	}
}

func TestCompleteNotConfigured(t *testing.T) {
	c := NewOpenAIClient(config.OpenAIConfig{Timeout: time.Second})
	if c.Configured() {
		t.Error("Configured() = true without key")
	}
	if _, err := c.Complete(context.Background(), nil, 100, 0); !errors.Is(err, ErrUpstreamUnavailable) {
		t.Errorf("err = %v, want ErrUpstreamUnavailable", err)
	}
}

func TestCompleteUpstreamFailures(t *testing.T) {
	t.Run("api error payload", func(t *testing.T) {
		srv := completionsStub(t, http.StatusUnauthorized, map[string]any{
			"error": map[string]any{"message": "bad key"},
		})
		_, err := testClient(srv.URL).Complete(context.Background(), nil, 100, 0)
		if !errors.Is(err, ErrUpstreamUnavailable) {
			t.Errorf("err = %v, want ErrUpstreamUnavailable", err)
		}
	})
	t.Run("no choices", func(t *testing.T) {
		srv := completionsStub(t, http.StatusOK, map[string]any{"choices": []any{}})
		_, err := testClient(srv.URL).Complete(context.Background(), nil, 100, 0)
		if !errors.Is(err, ErrUpstreamUnavailable) {
			t.Errorf("err = %v, want ErrUpstreamUnavailable", err)
		}
	})
	t.Run("unreachable host", func(t *testing.T) {
		c := testClient("http://127.0.0.1:1")
		_, err := c.Complete(context.Background(), nil, 100, 0)
		if !errors.Is(err, ErrUpstreamUnavailable) {
			t.Errorf("err = %v, want ErrUpstreamUnavailable", err)
		}
	})
}
