package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigKeyPool(t *testing.T) {
	t.Setenv("GEMINI_API_KEY_1", "key-a")
	t.Setenv("GEMINI_API_KEY_2", "your-gemini-key-here")
	t.Setenv("GEMINI_API_KEY_3", "")
	t.Setenv("GEMINI_API_KEYS", "key-b, key-a ,key-c")
	t.Setenv("GROQ_API_KEY", "your-groq-key")
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("MISTRAL_API_KEY", "")

	LoadConfig()

	assert.Equal(t, []string{"key-a", "key-b", "key-c"}, GEMINI_API_KEYS)
	assert.Empty(t, GROQ_API_KEY)
	assert.True(t, HasTextProvider())
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PROVIDER_TIMEOUT_SECONDS", "not-a-number")
	t.Setenv("ENABLE_IMAGE_PREPROCESSING", "false")
	t.Setenv("TEXT_REQUEST_TIMEOUT_SECONDS", "")
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("OCR_MODEL_NAME", "")

	LoadConfig()

	assert.Equal(t, 10, PROVIDER_TIMEOUT)
	assert.Equal(t, 15, TEXT_REQUEST_TIMEOUT)
	assert.False(t, ENABLE_IMAGE_PREPROCESSING)
	assert.Equal(t, "gemini-1.5-flash", GEMINI_MODEL)
	assert.Equal(t, GEMINI_MODEL, OCR_MODEL_NAME)
}

func TestFilterKeys(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, filterKeys([]string{" a ", "", "your-key", "b", "a"}))
	assert.Empty(t, filterKeys(nil))
}
