// openai_compat.go - Chat-completions client for Groq, Mistral and other OpenAI-compatible APIs

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Known OpenAI-compatible endpoints.
const (
	GroqChatURL    = "https://api.groq.com/openai/v1/chat/completions"
	MistralChatURL = "https://api.mistral.ai/v1/chat/completions"
)

// OpenAICompatProvider implements Provider over the chat-completions wire format.
type OpenAICompatProvider struct {
	name        string
	endpoint    string
	modelName   string
	maxTokens   int
	temperature float64
	client      *http.Client
}

// NewOpenAICompatProvider creates a provider posting to endpoint.
func NewOpenAICompatProvider(name, endpoint, modelName string) *OpenAICompatProvider {
	return &OpenAICompatProvider{
		name:        name,
		endpoint:    endpoint,
		modelName:   modelName,
		maxTokens:   1024,
		temperature: 0.1,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// NewGroqProvider creates the Groq provider.
func NewGroqProvider(modelName string) *OpenAICompatProvider {
	return NewOpenAICompatProvider("groq", GroqChatURL, modelName)
}

// NewMistralChatProvider creates the Mistral text provider.
func NewMistralChatProvider(modelName string) *OpenAICompatProvider {
	return NewOpenAICompatProvider("mistral", MistralChatURL, modelName)
}

// Name returns the provider name used in logs and metrics.
func (p *OpenAICompatProvider) Name() string {
	return p.name
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type chatErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Send posts a single user message and returns the first choice's content.
func (p *OpenAICompatProvider) Send(ctx context.Context, apiKey, prompt string) (string, error) {
	requestBody, err := json.Marshal(chatRequest{
		Model:       p.modelName,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   p.maxTokens,
		Temperature: p.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(requestBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", categorizeError(p.name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", categorizeError(p.name, fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp chatErrorResponse
		if err := json.Unmarshal(body, &errorResp); err == nil && errorResp.Error.Message != "" {
			return "", statusError(p.name, resp.StatusCode, errorResp.Error.Message)
		}
		return "", statusError(p.name, resp.StatusCode, string(body))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", malformedError(p.name, "undecodable response body")
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", malformedError(p.name, "response has no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}
