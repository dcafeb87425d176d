// gemini.go - Gemini text generation and receipt OCR through the genai SDK

package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bizsakhi/sakhi_ai_core/internal/common"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiProvider implements Provider. A client is created per call because
// the key changes as the pool rotates.
type GeminiProvider struct {
	modelName string
	maxTokens int32
}

// NewGeminiProvider creates a Gemini text provider.
func NewGeminiProvider(modelName string) *GeminiProvider {
	return &GeminiProvider{modelName: modelName, maxTokens: 2048}
}

// Name returns "gemini".
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// Send generates content for prompt with the given key.
func (p *GeminiProvider) Send(ctx context.Context, apiKey, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return "", categorizeError(p.Name(), fmt.Errorf("failed to create Gemini client: %w", err))
	}
	defer client.Close()

	model := client.GenerativeModel(p.modelName)
	model.GenerationConfig = genai.GenerationConfig{
		MaxOutputTokens: ptr(p.maxTokens),
		Temperature:     ptrFloat(0.1),
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", categorizeError(p.Name(), err)
	}
	return firstText(p.Name(), resp)
}

// firstText pulls the first text part out of a Gemini response.
func firstText(provider string, resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", malformedError(provider, "no candidates in response")
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok && strings.TrimSpace(string(text)) != "" {
			return string(text), nil
		}
	}
	return "", malformedError(provider, "empty response")
}

// GeminiOCR implements OCRProvider with Gemini vision. It walks its own key
// pool the same way the gateway does.
type GeminiOCR struct {
	modelName string
	keys      *KeyPool
}

// NewGeminiOCR creates a vision OCR provider. keys must be non-nil.
func NewGeminiOCR(modelName string, keys *KeyPool) *GeminiOCR {
	return &GeminiOCR{modelName: modelName, keys: keys}
}

// Name returns "gemini-vision".
func (o *GeminiOCR) Name() string {
	return "gemini-vision"
}

type ocrResult struct {
	RawDocumentText string `json:"raw_document_text"`
}

// ExtractText returns every line of text printed on the receipt.
func (o *GeminiOCR) ExtractText(ctx context.Context, imageData []byte, mimeType string) (string, error) {
	reqCtx := common.FromContext(ctx)
	start := o.keys.Cursor()

	var lastErr *ProviderError
	for i := 0; i < o.keys.Len(); i++ {
		idx := (start + i) % o.keys.Len()
		text, err := o.extractWithKey(ctx, o.keys.key(idx), imageData, mimeType)
		if err == nil {
			o.keys.markCurrent(idx)
			return text, nil
		}
		lastErr = categorizeError(o.Name(), err)
		reqCtx.LogWarning("%s key #%d failed: [%s] %s", o.Name(), idx+1, lastErr.Category, lastErr.Message)
		if ctx.Err() != nil {
			return "", lastErr
		}
		o.keys.advanceFrom(idx)
	}
	o.keys.restore(start)
	return "", lastErr
}

func (o *GeminiOCR) extractWithKey(ctx context.Context, apiKey string, imageData []byte, mimeType string) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(o.modelName)
	model.GenerationConfig = genai.GenerationConfig{
		MaxOutputTokens: ptr(int32(8192)),
	}
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = createOCRSchema()

	resp, err := model.GenerateContent(ctx,
		genai.Text(GetOCRPrompt()),
		genai.Blob{MIMEType: mimeType, Data: imageData},
	)
	if err != nil {
		return "", err
	}

	raw, err := firstText(o.Name(), resp)
	if err != nil {
		return "", err
	}

	var result ocrResult
	if err := json.Unmarshal([]byte(prepareJSON(raw)), &result); err != nil {
		// Some responses ignore the schema; plain text is still usable
		return StripCodeFence(raw), nil
	}
	if strings.TrimSpace(result.RawDocumentText) == "" {
		return "", malformedError(o.Name(), "no text found on image")
	}
	return result.RawDocumentText, nil
}

func createOCRSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"raw_document_text": {
				Type:        genai.TypeString,
				Description: "All text on the receipt, line by line, exactly as printed",
			},
		},
		Required: []string{"raw_document_text"},
	}
}

func ptr(i int32) *int32 {
	return &i
}

func ptrFloat(f float32) *float32 {
	return &f
}
