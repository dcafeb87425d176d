// resolver.go - Tiered intent resolution: fast pattern, AI provider chain, local fallback

package intent

import (
	"context"
	"regexp"
	"strings"

	"github.com/bizsakhi/sakhi_ai_core/internal/ai"
	"github.com/bizsakhi/sakhi_ai_core/internal/common"
	"github.com/bizsakhi/sakhi_ai_core/internal/metrics"
	"github.com/bizsakhi/sakhi_ai_core/internal/models"
	"github.com/bizsakhi/sakhi_ai_core/internal/processor"
	"github.com/bizsakhi/sakhi_ai_core/internal/response"
)

// Tier labels for the resolution metric.
const (
	TierPattern  = "pattern"
	TierAI       = "ai"
	TierFallback = "fallback"
)

// Confidence of the local fallback answers.
const (
	FallbackBusinessConfidence = 0.6
	FallbackOffTopicConfidence = 0.8
)

// Completer is the part of the provider gateway the resolver needs.
type Completer interface {
	CompleteJSON(ctx context.Context, prompt string, out any) error
}

// Resolver decides what a chat message means. It never returns an error:
// every failure degrades to the next tier.
type Resolver struct {
	matcher  *processor.PatternMatcher
	gateway  Completer
	composer *response.Composer
}

// NewResolver creates a resolver. gateway may be nil, in which case only the
// pattern and local tiers run.
func NewResolver(gateway Completer, composer *response.Composer) *Resolver {
	if composer == nil {
		composer = response.NewComposer()
	}
	return &Resolver{
		matcher:  processor.NewPatternMatcher(composer),
		gateway:  gateway,
		composer: composer,
	}
}

// Resolve classifies msg. The result always has a non-empty ResponseMessage.
func (r *Resolver) Resolve(ctx context.Context, msg models.Message) models.IntentResult {
	reqCtx := common.FromContext(ctx)
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return r.record(TierFallback, r.Fallback(msg))
	}

	if msg.ChatMode == models.ChatModeBusiness {
		if guess := r.matcher.Detect(text, msg.Language); guess != nil {
			reqCtx.LogInfo("⚡ Fast path matched %s of ₹%s", guess.Kind, models.FormatAmount(guess.Amount))
			return r.record(TierPattern, guess.ToResult())
		}
	}

	if r.gateway == nil {
		return r.record(TierFallback, r.Fallback(msg))
	}

	var raw models.RawIntentResult
	prompt := ai.BuildIntentPrompt(text, msg.Language, string(msg.ChatMode))
	if err := r.gateway.CompleteJSON(ctx, prompt, &raw); err != nil {
		reqCtx.LogWarning("AI intent resolution failed, using local fallback: %v", err)
		return r.record(TierFallback, r.Fallback(msg))
	}

	return r.record(TierAI, r.finish(raw.Normalize(), msg))
}

// finish enforces the chat-mode rules on a parsed provider answer.
func (r *Resolver) finish(res models.IntentResult, msg models.Message) models.IntentResult {
	if res.Intent.IsTransaction() {
		td, ok := res.Transaction()
		switch {
		case msg.ChatMode != models.ChatModeBusiness, processor.IsInterrogative(msg.Text), !ok || td.Amount <= 0:
			res = downgrade(res)
		default:
			td.Amount = models.ClampAmount(td.Amount)
			if strings.TrimSpace(td.Category) == "" {
				td.Category = "General"
			}
		}
	}

	if res.ResponseMessage == "" {
		res.ResponseMessage = r.composer.DefaultMessage(res, msg.Language)
	}
	return res
}

// downgrade turns a transaction that must not be recorded into a plain
// answer. The provider's message claimed a write, so it is dropped too.
func downgrade(res models.IntentResult) models.IntentResult {
	res.Intent = models.IntentConversational
	res.Action = models.DefaultAction
	res.Data = models.GenericData{}
	res.ResponseMessage = ""
	return res
}

var greetingWords = map[string]bool{
	"hi": true, "hello": true, "hey": true, "namaste": true, "namaskar": true, "vanakkam": true,
}

var nativeGreetings = []string{"नमस्ते", "हैलो", "வணக்கம்", "ഹലോ", "నమస్కారం", "ನಮಸ್ಕಾರ", "નમસ્તે", "নমস্কার", "नमस्कार"}

var businessKeywords = regexp.MustCompile(`(?i)\b(?:` + strings.Join([]string{
	"expenses?", "income", "inventory", "business", "money", "profit", "loss",
	"bills?", "receipts?", "invoices?", "gst", "tax", "sales?", "sell", "purchases?", "costs?",
	"revenue", "accounts?", "finance", "budget", "cash", "payments?", "customers?",
	"suppliers?", "stock", "products?", "services?", "app", "features?", "help",
}, "|") + `)\b`)

var nativeBusinessKeywords = []string{
	"खर्च", "आय", "व्यापार", "बिक्री", "स्टॉक", "पैसा", "मुनाफा", "रसीद",
	"செலவு", "வருமானம்", "வணிகம்", "சரக்கு",
	"ചെലവ്", "വരുമാനം", "ബിസിനസ്",
}

// Fallback answers without any I/O. It cannot fail.
func (r *Resolver) Fallback(msg models.Message) models.IntentResult {
	text := strings.TrimSpace(msg.Text)

	if isGreeting(text) {
		return models.IntentResult{
			Intent:            models.IntentConversational,
			Action:            models.DefaultAction,
			Confidence:        FallbackOffTopicConfidence,
			Data:              models.GenericData{"fallback_used": true},
			ResponseMessage:   r.composer.Message(response.EventGreeting, msg.Language),
			IsBusinessRelated: true,
		}
	}

	if isBusinessRelated(text) {
		return models.IntentResult{
			Intent:            models.IntentConversational,
			Action:            models.DefaultAction,
			Confidence:        FallbackBusinessConfidence,
			Data:              models.GenericData{"fallback_used": true},
			ResponseMessage:   r.composer.Message(response.EventBusinessHelp, msg.Language),
			IsBusinessRelated: true,
		}
	}

	return models.IntentResult{
		Intent:            models.IntentOffTopic,
		Action:            "redirect",
		Confidence:        FallbackOffTopicConfidence,
		Data:              models.GenericData{"fallback_used": true},
		ResponseMessage:   r.composer.Message(response.EventOffTopic, msg.Language),
		IsBusinessRelated: false,
	}
}

func isGreeting(text string) bool {
	lower := strings.ToLower(text)
	for _, w := range strings.Fields(lower) {
		if greetingWords[strings.Trim(w, "!.,?;:")] {
			return true
		}
	}
	for _, g := range nativeGreetings {
		if strings.Contains(text, g) {
			return true
		}
	}
	return false
}

func isBusinessRelated(text string) bool {
	if businessKeywords.MatchString(text) {
		return true
	}
	for _, k := range nativeBusinessKeywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

func (r *Resolver) record(tier string, res models.IntentResult) models.IntentResult {
	metrics.Get().ResolutionTier.WithLabelValues(tier, string(res.Intent)).Inc()
	return res
}
