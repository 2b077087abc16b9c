package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"menu-optimizer/internal/config"
)

const (
	groqAPIURL = "https://api.groq.com/openai/v1/chat/completions"

	// A grade reply is one short JSON object.
	groqMaxTokens = 256
	groqSeed      = 42

	graderSystemPrompt = "You grade foods for a meal planner. Reply with a single JSON object and nothing else."
)

// groqClient grades foods through Groq's OpenAI-compatible chat endpoint
// when no Gemini key is configured.
type groqClient struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
}

type groqMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type groqRequest struct {
	Model          string            `json:"model"`
	Messages       []groqMessage     `json:"messages"`
	Temperature    float64           `json:"temperature"`
	MaxTokens      int               `json:"max_tokens"`
	Seed           int               `json:"seed"`
	ResponseFormat map[string]string `json:"response_format"`
}

type groqResponse struct {
	Choices []struct {
		Message      groqMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
}

// NewGroqClient creates a grading client for the configured Groq model.
func NewGroqClient(cfg *config.Config) TextGenerator {
	return &groqClient{
		apiKey:     cfg.GroqAPIKey,
		model:      cfg.GroqModel,
		endpoint:   groqAPIURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// GenerateContent asks for a JSON grade and returns the raw object text.
func (c *groqClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	jsonBody, err := json.Marshal(groqRequest{
		Model: c.model,
		Messages: []groqMessage{
			{Role: "system", Content: graderSystemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature:    0.1,
		MaxTokens:      groqMaxTokens,
		Seed:           groqSeed,
		ResponseFormat: map[string]string{"type": "json_object"},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal grading request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send grading request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("groq api error: status=%d body=%s", resp.StatusCode, string(bodyBytes))
	}

	var out groqResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode grading response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("no grade generated")
	}
	choice := out.Choices[0]
	if choice.FinishReason == "length" {
		return "", fmt.Errorf("grade reply truncated after %d tokens", groqMaxTokens)
	}
	return choice.Message.Content, nil
}
