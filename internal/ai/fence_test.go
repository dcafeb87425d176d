package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/bizsakhi/sakhi_ai_core/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"no fence", "  {\"a\": 1}  ", `{"a": 1}`},
		{"plain text", "hello", "hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripCodeFence(tt.in))
		})
	}
}

func TestPrepareJSON(t *testing.T) {
	raw := "Here is the result:\n```json\n{\"response_message\": \"line one\nline two\", \"confidence\": 0.9}\n```"

	var out struct {
		ResponseMessage string  `json:"response_message"`
		Confidence      float64 `json:"confidence"`
	}
	require.NoError(t, json.Unmarshal([]byte(prepareJSON(raw)), &out))
	assert.Equal(t, "line one\nline two", out.ResponseMessage)
	assert.Equal(t, 0.9, out.Confidence)
}

func TestExtractJSONObject(t *testing.T) {
	assert.Equal(t, `{"x":{"y":1}}`, extractJSONObject(`ok {"x":{"y":1}} done`))
	assert.Equal(t, "no object", extractJSONObject("no object"))
}

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		category string
		sentinel error
	}{
		{"google 429", &googleapi.Error{Code: 429, Message: "Resource exhausted"}, CategoryRateLimit, common.ErrQuotaExceeded},
		{"google 500", &googleapi.Error{Code: 500}, CategoryServerError, common.ErrProviderUnavailable},
		{"google 403", &googleapi.Error{Code: 403}, CategoryForbidden, common.ErrProviderUnavailable},
		{"deadline", fmt.Errorf("call: %w", context.DeadlineExceeded), CategoryTimeout, common.ErrProviderUnavailable},
		{"canceled", context.Canceled, CategoryCanceled, common.ErrProviderUnavailable},
		{"quota text", errors.New("quota exceeded for project"), CategoryQuotaExceeded, common.ErrQuotaExceeded},
		{"network", errors.New("dial tcp: no such host"), CategoryNetworkError, common.ErrProviderUnavailable},
		{"other", errors.New("boom"), CategoryUnknown, common.ErrProviderUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pe := categorizeError("gemini", tt.err)
			require.NotNil(t, pe)
			assert.Equal(t, tt.category, pe.Category)
			assert.ErrorIs(t, pe, tt.sentinel)
			assert.ErrorIs(t, pe, tt.err)
		})
	}

	assert.Nil(t, categorizeError("gemini", nil))

	original := malformedError("groq", "empty")
	assert.Same(t, original, categorizeError("gemini", fmt.Errorf("wrapped: %w", original)))
}

func TestStatusErrorQuotaBody(t *testing.T) {
	pe := statusError("gemini", 400, "Quota exceeded for quota metric")
	assert.Equal(t, CategoryQuotaExceeded, pe.Category)
	assert.True(t, pe.Quota())

	pe = statusError("groq", 418, strings.Repeat("x", 300))
	assert.Equal(t, CategoryUnknown, pe.Category)
	assert.True(t, strings.HasSuffix(pe.Message, "..."))
	assert.False(t, pe.Quota())
}

func TestPromptsCarryInputs(t *testing.T) {
	intent := BuildIntentPrompt(`I spent "1500" on rent`, "hi", "business")
	assert.Contains(t, intent, `"I spent \"1500\" on rent"`)
	assert.Contains(t, intent, `The user's language is "hi"`)
	assert.Contains(t, intent, "CHAT MODE: business")
	assert.Contains(t, intent, "item_clarification")

	receipt := BuildReceiptPrompt("Rice 2 Kg 120", "ta")
	assert.Contains(t, receipt, "Rice 2 Kg 120")
	assert.Contains(t, receipt, "ocr_quality")
	assert.Contains(t, receipt, "rejected_items")

	assert.Contains(t, GetOCRPrompt(), "raw_document_text")
}
