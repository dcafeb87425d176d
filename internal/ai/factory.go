// factory.go - Builds the provider chain and OCR chain from configuration

package ai

import (
	"time"

	"github.com/bizsakhi/sakhi_ai_core/configs"
	"github.com/bizsakhi/sakhi_ai_core/internal/common"
	"github.com/bizsakhi/sakhi_ai_core/internal/ratelimit"
)

// BuildGateway wires the text providers in priority order:
// Groq, Anthropic, Mistral, then the Gemini key pool.
// Providers without a key are left out.
func BuildGateway() *Gateway {
	timeout := time.Duration(configs.PROVIDER_TIMEOUT) * time.Second
	route := func(p Provider, keys ...string) Route {
		return Route{
			Provider: p,
			Keys:     NewKeyPool(nonEmpty(keys)...),
			Timeout:  timeout,
			Limiter:  ratelimit.PerMinute(configs.PROVIDER_RPM),
		}
	}

	g := NewGateway(
		route(NewGroqProvider(configs.GROQ_MODEL), configs.GROQ_API_KEY),
		route(NewAnthropicProvider(configs.ANTHROPIC_MODEL), configs.ANTHROPIC_API_KEY),
		route(NewMistralChatProvider(configs.MISTRAL_MODEL), configs.MISTRAL_API_KEY),
		route(NewGeminiProvider(configs.GEMINI_MODEL), configs.GEMINI_API_KEYS...),
	)

	log := common.GetLogger()
	if g.Available() {
		log.Infof("🤖 AI providers: %v", g.Providers())
	} else {
		log.Warn("⚠️  No AI providers available, intent resolution uses local fallback only")
	}
	return g
}

// BuildOCR wires Gemini vision first and Mistral OCR second.
func BuildOCR() *OCRChain {
	var providers []OCRProvider
	if keys := NewKeyPool(configs.GEMINI_API_KEYS...); keys != nil {
		providers = append(providers, NewGeminiOCR(configs.OCR_MODEL_NAME, keys))
	}
	if configs.MISTRAL_API_KEY != "" {
		providers = append(providers, NewMistralOCR(configs.MISTRAL_API_KEY, configs.MISTRAL_OCR_MODEL))
	}

	chain := NewOCRChain(providers...)
	if !chain.Available() {
		common.GetLogger().Warn("⚠️  No OCR provider configured, receipt uploads will fail")
	}
	return chain
}

func nonEmpty(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}
