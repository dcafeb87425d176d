// mistral.go - Mistral OCR API client, the second receipt OCR provider

package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const MistralOCRURL = "https://api.mistral.ai/v1/ocr"

// MistralOCR implements OCRProvider using the Mistral document OCR endpoint.
type MistralOCR struct {
	apiKey    string
	modelName string
	endpoint  string
	client    *http.Client
}

// NewMistralOCR creates a Mistral OCR provider.
func NewMistralOCR(apiKey, modelName string) *MistralOCR {
	return &MistralOCR{
		apiKey:    apiKey,
		modelName: modelName,
		endpoint:  MistralOCRURL,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Name returns "mistral-ocr".
func (m *MistralOCR) Name() string {
	return "mistral-ocr"
}

type mistralOCRDocument struct {
	Type     string `json:"type"`                // "image_url" or "document_url"
	ImageURL string `json:"image_url,omitempty"` // base64 data URL
}

type mistralOCRRequest struct {
	Model    string             `json:"model"`
	Document mistralOCRDocument `json:"document"`
}

type mistralOCRPage struct {
	Index    int    `json:"index"`
	Markdown string `json:"markdown"`
}

type mistralOCRResponse struct {
	Model string           `json:"model"`
	Pages []mistralOCRPage `json:"pages"`
}

// ExtractText sends the image as a base64 data URL and joins all page markdown.
func (m *MistralOCR) ExtractText(ctx context.Context, imageData []byte, mimeType string) (string, error) {
	// The endpoint does not accept base64 PDFs
	if mimeType == "application/pdf" {
		return "", &ProviderError{Provider: m.Name(), Category: CategoryBadRequest, Message: "PDF not supported as base64"}
	}

	imageURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(imageData))
	requestBody, err := json.Marshal(mistralOCRRequest{
		Model:    m.modelName,
		Document: mistralOCRDocument{Type: "image_url", ImageURL: imageURL},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(requestBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return "", categorizeError(m.Name(), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", categorizeError(m.Name(), fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp chatErrorResponse
		if err := json.Unmarshal(body, &errorResp); err == nil && errorResp.Error.Message != "" {
			return "", statusError(m.Name(), resp.StatusCode, errorResp.Error.Message)
		}
		return "", statusError(m.Name(), resp.StatusCode, string(body))
	}

	var parsed mistralOCRResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", malformedError(m.Name(), "undecodable OCR response")
	}
	if len(parsed.Pages) == 0 {
		return "", malformedError(m.Name(), "no pages returned")
	}

	var extracted strings.Builder
	for i, page := range parsed.Pages {
		if i > 0 {
			extracted.WriteString("\n\n")
		}
		extracted.WriteString(page.Markdown)
	}
	if strings.TrimSpace(extracted.String()) == "" {
		return "", malformedError(m.Name(), "no text found on image")
	}
	return extracted.String(), nil
}

// OCRChain tries OCR providers in order.
type OCRChain struct {
	providers []OCRProvider
}

// NewOCRChain drops nil providers.
func NewOCRChain(providers ...OCRProvider) *OCRChain {
	c := &OCRChain{}
	for _, p := range providers {
		if p != nil {
			c.providers = append(c.providers, p)
		}
	}
	return c
}

// Available reports whether any OCR provider is configured.
func (c *OCRChain) Available() bool {
	return c != nil && len(c.providers) > 0
}

// ExtractText returns the first provider's non-empty text.
func (c *OCRChain) ExtractText(ctx context.Context, imageData []byte, mimeType string) (string, error) {
	var lastErr error
	for _, p := range c.providers {
		text, err := p.ExtractText(ctx, imageData, mimeType)
		if err == nil && strings.TrimSpace(text) != "" {
			return text, nil
		}
		if err == nil {
			err = malformedError(p.Name(), "empty OCR text")
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no OCR provider configured")
	}
	return "", fmt.Errorf("receipt OCR failed: %w", lastErr)
}
