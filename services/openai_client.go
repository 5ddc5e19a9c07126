package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"calorie-tracker/config"

	"github.com/sirupsen/logrus"
)

// OpenAIClient is the single outbound adapter for the model API. Callers
// decide what a failure means; this client only reports it.
type OpenAIClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewOpenAIClient(cfg config.OpenAIConfig) *OpenAIClient {
	return &OpenAIClient{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

// Configured reports whether an API key is present. Callers short-circuit
// to their fallback when it is not, without ever dialing out.
func (c *OpenAIClient) Configured() bool {
	return c.apiKey != ""
}

type ChatMessage struct {
	Role string `json:"role"`
	// Content is a string for text messages or a parts array for
	// multimodal (vision) messages.
	Content any `json:"content"`
}

// ImageContent builds the multimodal parts array for one prompt plus an
// inline base64 image.
func ImageContent(prompt, imageDataURL string) []map[string]any {
	return []map[string]any{
		{"type": "text", "text": prompt},
		{"type": "image_url", "image_url": map[string]any{"url": imageDataURL}},
	}
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete posts a chat-completions request and returns the assistant's
// text. Every failure mode maps to ErrUpstreamUnavailable.
func (c *OpenAIClient) Complete(ctx context.Context, messages []ChatMessage, maxTokens int, temperature float64) (string, error) {
	if !c.Configured() {
		return "", fmt.Errorf("%w: api key not configured", ErrUpstreamUnavailable)
	}

	payload := map[string]any{
		"model":       c.model,
		"messages":    messages,
		"max_tokens":  maxTokens,
		"temperature": temperature,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal completion payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		logrus.WithError(err).Warn("model API call failed")
		return "", fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", ErrUpstreamUnavailable, err)
	}

	var out completionResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("%w: malformed response", ErrUpstreamUnavailable)
	}
	if out.Error != nil {
		logrus.WithField("status", resp.StatusCode).Warnf("model API error: %s", out.Error.Message)
		return "", fmt.Errorf("%w: %s", ErrUpstreamUnavailable, out.Error.Message)
	}
	if resp.StatusCode != http.StatusOK || len(out.Choices) == 0 {
		return "", fmt.Errorf("%w: status %d", ErrUpstreamUnavailable, resp.StatusCode)
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}
