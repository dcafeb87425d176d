// advisor.go - Answers loan scheme questions from the catalogue, with AI wording when available

package loan

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/bizsakhi/sakhi_ai_core/internal/ai"
	"github.com/bizsakhi/sakhi_ai_core/internal/common"
	"github.com/bizsakhi/sakhi_ai_core/internal/metrics"
)

// Answer sources.
const (
	SourceAI       = "ai"
	SourceFallback = "fallback"
)

// fallbackShown is how many schemes the templated answer lists.
const fallbackShown = 3

// Completer is the part of the provider gateway the advisor needs.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Answer is the reply to one loan question.
type Answer struct {
	Query             string  `json:"query"`
	Response          string  `json:"response"`
	RelevantSchemes   []Match `json:"relevant_schemes"`
	TotalSchemesFound int     `json:"total_schemes_found"`
	Language          string  `json:"language"`
	DetectedLanguage  string  `json:"detected_language"`
	Source            string  `json:"source"`
}

// Advisor finds the schemes that fit a question and explains them. Like
// the intent resolver it never fails: without a gateway, or when every
// provider fails, the answer is templated from the matched schemes.
type Advisor struct {
	index   *Index
	gateway Completer
}

// NewAdvisor creates an advisor over the built-in catalogue. gateway may be nil.
func NewAdvisor(gateway Completer) *Advisor {
	return &Advisor{index: NewIndex(DefaultSchemes()), gateway: gateway}
}

// Schemes lists every scheme in the catalogue.
func (a *Advisor) Schemes() []Scheme {
	return a.index.Schemes()
}

// Query answers question in lang. An empty or "auto" lang is detected from
// the script the question is written in.
func (a *Advisor) Query(ctx context.Context, question, lang string) Answer {
	reqCtx := common.FromContext(ctx)

	if lang == "" || lang == "auto" {
		lang = DetectLanguage(question)
	}
	matches := a.index.Search(question, DefaultTopK)
	if matches == nil {
		matches = []Match{}
	}
	reqCtx.LogInfo("Loan query matched %d schemes", len(matches))

	ans := Answer{
		Query:             question,
		RelevantSchemes:   matches,
		TotalSchemesFound: len(matches),
		Language:          lang,
		DetectedLanguage:  lang,
		Source:            SourceFallback,
	}

	if a.gateway != nil {
		reqCtx.StartStep("loan_answer")
		text, err := a.gateway.Complete(ctx, ai.BuildLoanPrompt(question, lang, schemeContext(matches)))
		reqCtx.EndStep(stepStatus(err), nil, err)
		if err == nil && strings.TrimSpace(text) != "" {
			ans.Response = strings.TrimSpace(text)
			ans.Source = SourceAI
		} else if err != nil {
			reqCtx.LogWarning("AI loan answer failed, using template: %v", err)
		}
	}
	if ans.Source == SourceFallback {
		ans.Response = templatedAnswer(question, matches, lang)
	}

	metrics.Get().LoanQueries.WithLabelValues(ans.Source).Inc()
	return ans
}

func stepStatus(err error) string {
	if err != nil {
		return "failed"
	}
	return "success"
}

func schemeContext(matches []Match) string {
	var b strings.Builder
	for _, m := range matches {
		fmt.Fprintf(&b, "Scheme: %s\nDescription: %s\nEligibility: %s\nMaximum Amount: %s\nInterest Rate: %s\nTenure: %s\nApplication Process: %s\nRequired Documents: %s\nBenefits: %s\nContact: %s\n\n",
			m.Name, m.Description, m.Eligibility, m.MaxAmount, m.InterestRate, m.Tenure,
			m.ApplicationProcess, strings.Join(m.DocumentsRequired, ", "), strings.Join(m.Benefits, ", "), m.Contact)
	}
	return b.String()
}

func templatedAnswer(question string, matches []Match, lang string) string {
	t, ok := answerTexts[lang]
	if !ok {
		lang = "en"
		t = answerTexts["en"]
	}

	var b strings.Builder
	fmt.Fprintf(&b, t.greeting, question)
	b.WriteString("\n\n")
	for i, m := range matches {
		if i == fallbackShown {
			break
		}
		fmt.Fprintf(&b, "• %s\n  - %s: %s\n  - %s: %s\n  - %s: %s\n\n",
			m.LocalName(lang),
			t.maxAmount, m.MaxAmount,
			t.interest, m.InterestRate,
			t.eligibility, m.LocalEligibility(lang))
	}
	b.WriteString(t.closing)
	return b.String()
}

var scripts = []struct {
	table *unicode.RangeTable
	code  string
}{
	{unicode.Devanagari, "hi"},
	{unicode.Tamil, "ta"},
	{unicode.Malayalam, "ml"},
	{unicode.Telugu, "te"},
	{unicode.Kannada, "kn"},
	{unicode.Gujarati, "gu"},
	{unicode.Bengali, "bn"},
}

// DetectLanguage guesses the language code from the first Indian script
// found in text, checking Devanagari first. Marathi shares Devanagari with
// Hindi and is reported as "hi". Everything else is "en".
func DetectLanguage(text string) string {
	for _, s := range scripts {
		for _, r := range text {
			if unicode.Is(s.table, r) {
				return s.code
			}
		}
	}
	return "en"
}
