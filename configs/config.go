// config.go - Configuration loaded from environment variables

package configs

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var (
	// Text-generation providers, in priority order: Groq, Anthropic, Mistral, Gemini
	GROQ_API_KEY      string
	GROQ_MODEL        string
	ANTHROPIC_API_KEY string
	ANTHROPIC_MODEL   string
	MISTRAL_API_KEY   string
	MISTRAL_MODEL     string
	MISTRAL_OCR_MODEL string

	// Gemini key pool (rotated on failure)
	GEMINI_API_KEYS []string
	GEMINI_MODEL    string
	OCR_MODEL_NAME  string

	// Speech-to-text (Groq whisper endpoint)
	SPEECH_MODEL string

	// Timeouts in seconds
	PROVIDER_TIMEOUT        int // per provider call
	TEXT_REQUEST_TIMEOUT    int // outer timeout around intent resolution
	RECEIPT_REQUEST_TIMEOUT int // outer timeout around OCR + extraction

	// Requests per minute allowed per provider (0 = unlimited)
	PROVIDER_RPM int

	// Server Configuration
	PORT            string
	UPLOAD_DIR      string
	ALLOWED_ORIGINS string

	// Logging
	LOG_LEVEL  string
	LOG_FORMAT string

	// MongoDB Configuration
	MONGO_URI     string
	MONGO_DB_NAME string

	// Image preprocessing settings
	ENABLE_IMAGE_PREPROCESSING bool
	MAX_IMAGE_DIMENSION        int
)

// LoadConfig loads configuration from environment variables
func LoadConfig() {
	// Load .env file if exists (for local development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	GROQ_API_KEY = getEnvKey("GROQ_API_KEY")
	GROQ_MODEL = getEnv("GROQ_MODEL", "llama3-8b-8192")
	ANTHROPIC_API_KEY = getEnvKey("ANTHROPIC_API_KEY")
	ANTHROPIC_MODEL = getEnv("ANTHROPIC_MODEL", "claude-3-haiku-20240307")
	MISTRAL_API_KEY = getEnvKey("MISTRAL_API_KEY")
	MISTRAL_MODEL = getEnv("MISTRAL_MODEL", "mistral-small-latest")
	MISTRAL_OCR_MODEL = getEnv("MISTRAL_OCR_MODEL", "mistral-ocr-latest")

	// Numbered keys first, then the comma separated list
	GEMINI_API_KEYS = filterKeys(append(
		[]string{os.Getenv("GEMINI_API_KEY_1"), os.Getenv("GEMINI_API_KEY_2"), os.Getenv("GEMINI_API_KEY_3")},
		getEnvList("GEMINI_API_KEYS")...,
	))
	GEMINI_MODEL = getEnv("GEMINI_MODEL", "gemini-1.5-flash")
	OCR_MODEL_NAME = getEnv("OCR_MODEL_NAME", GEMINI_MODEL)

	SPEECH_MODEL = getEnv("SPEECH_MODEL", "whisper-large-v3")

	PROVIDER_TIMEOUT = getEnvInt("PROVIDER_TIMEOUT_SECONDS", 10)
	TEXT_REQUEST_TIMEOUT = getEnvInt("TEXT_REQUEST_TIMEOUT_SECONDS", 15)
	RECEIPT_REQUEST_TIMEOUT = getEnvInt("RECEIPT_REQUEST_TIMEOUT_SECONDS", 45)
	PROVIDER_RPM = getEnvInt("PROVIDER_RPM", 30)

	PORT = getEnv("PORT", "8000")
	UPLOAD_DIR = getEnv("UPLOAD_DIR", "uploads")
	ALLOWED_ORIGINS = getEnv("ALLOWED_ORIGINS", "*")

	LOG_LEVEL = getEnv("LOG_LEVEL", "info")
	LOG_FORMAT = getEnv("LOG_FORMAT", "text")

	MONGO_URI = getEnv("MONGO_URI", "mongodb://localhost:27017")
	MONGO_DB_NAME = getEnv("MONGO_DB_NAME", "bizsakhi")

	ENABLE_IMAGE_PREPROCESSING = getEnvBool("ENABLE_IMAGE_PREPROCESSING", true)
	MAX_IMAGE_DIMENSION = getEnvInt("MAX_IMAGE_DIMENSION", 2000)

	if !HasTextProvider() {
		log.Println("⚠️  No AI provider keys configured, running on pattern matching only")
	}

	log.Println("✓ Configuration loaded successfully")
}

// HasTextProvider reports whether at least one text-generation provider has a key.
func HasTextProvider() bool {
	return GROQ_API_KEY != "" || ANTHROPIC_API_KEY != "" || MISTRAL_API_KEY != "" || len(GEMINI_API_KEYS) > 0
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvKey returns an API key, treating template placeholders as unset.
func getEnvKey(key string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if isPlaceholder(value) {
		return ""
	}
	return value
}

func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	return strings.Split(value, ",")
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func isPlaceholder(value string) bool {
	return value == "" || strings.Contains(value, "your-")
}

// filterKeys trims, drops placeholders and removes duplicates while keeping order.
func filterKeys(keys []string) []string {
	seen := make(map[string]bool, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if isPlaceholder(k) || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}
