// anthropic.go - Anthropic messages API client

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

const (
	AnthropicMessagesURL = "https://api.anthropic.com/v1/messages"
	anthropicVersion     = "2023-06-01"
)

// AnthropicProvider implements Provider for Claude models.
type AnthropicProvider struct {
	endpoint  string
	modelName string
	maxTokens int
	client    *http.Client
}

// NewAnthropicProvider creates an Anthropic provider.
func NewAnthropicProvider(modelName string) *AnthropicProvider {
	return &AnthropicProvider{
		endpoint:  AnthropicMessagesURL,
		modelName: modelName,
		maxTokens: 1024,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Name returns "anthropic".
func (p *AnthropicProvider) Name() string {
	return "anthropic"
}

type anthropicRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	Messages  []chatMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

type anthropicErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Send calls the messages endpoint and returns the first text block.
func (p *AnthropicProvider) Send(ctx context.Context, apiKey, prompt string) (string, error) {
	requestBody, err := json.Marshal(anthropicRequest{
		Model:     p.modelName,
		MaxTokens: p.maxTokens,
		Messages:  []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(requestBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", categorizeError(p.Name(), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", categorizeError(p.Name(), fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp anthropicErrorResponse
		if err := json.Unmarshal(body, &errorResp); err == nil && errorResp.Error.Message != "" {
			return "", statusError(p.Name(), resp.StatusCode, errorResp.Error.Message)
		}
		return "", statusError(p.Name(), resp.StatusCode, string(body))
	}

	var parsed anthropicResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", malformedError(p.Name(), "undecodable response body")
	}
	for _, block := range parsed.Content {
		if block.Type == "text" && strings.TrimSpace(block.Text) != "" {
			return block.Text, nil
		}
	}
	return "", malformedError(p.Name(), "response has no text block")
}
