// search.go - TF-IDF retrieval over the scheme catalogue with a keyword fallback

package loan

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Search tuning.
const (
	DefaultTopK     = 5
	MinSimilarity   = 0.05
	minTokenRunes   = 2
	minQueryWordLen = 4
)

// Match is a scheme with how well it fits the question.
type Match struct {
	Scheme
	SimilarityScore float64 `json:"similarity_score"`
}

// Conversational phrasing mapped to the catalogue's vocabulary. Every
// pattern that matches adds its keywords to the query.
var queryExpansions = []struct {
	pattern  *regexp.Regexp
	keywords string
}{
	{regexp.MustCompile(`i need|i want|i am looking for|i require|मुझे चाहिए|मुझे जरूरत है|मैं ढूंढ रही हूं`), "loan"},
	{regexp.MustCompile(`business|व्यवसाय|काम|धंधा|enterprise|startup|shop|store|restaurant|catering|food`), "business loan"},
	{regexp.MustCompile(`women|woman|महिला|स्त्री|lady|female`), "women entrepreneur loan"},
	{regexp.MustCompile(`money|amount|राशि|पैसा|fund|capital|investment`), "loan amount"},
	{regexp.MustCompile(`start|begin|शुरू|expand|grow|बढ़ाना|improve|upgrade`), "business expansion"},
	{regexp.MustCompile(`food|catering|cooking|खाना|रसोई|kitchen|restaurant`), "food business loan"},
	{regexp.MustCompile(`small|छोटा|micro|tiny|mini`), "small business loan"},
	{regexp.MustCompile(`help|सहायता|support|guidance|मदद`), "loan assistance"},
	{regexp.MustCompile(`government|सरकार|sarkari|official|scheme|योजना`), "government scheme"},
	{regexp.MustCompile(`mudra|मुद्रा`), "mudra loan"},
	{regexp.MustCompile(`job|employment|रोजगार|work`), "employment generation"},
	{regexp.MustCompile(`group|समूह|collective|together|साथ`), "group loan"},
	{regexp.MustCompile(`youth|young|युवा|new|नया`), "youth loan"},
	{regexp.MustCompile(`empower|सशक्त|strength|शक्ति|power`), "empowerment loan"},
}

var loanWords = setOf(
	"loan", "lone", "लोन", "ऋण", "कर्ज", "udhar", "उधार",
	"business", "व्यवसाय", "enterprise", "उद्यम",
	"money", "पैसा", "राशि", "amount", "fund", "capital",
	"women", "महिला", "woman", "स्त्री", "lady",
	"start", "शुरू", "begin", "startup", "new",
	"help", "सहायता", "support", "मदद", "guidance",
	"scheme", "योजना", "program", "कार्यक्रम",
	"government", "सरकार", "sarkari", "official",
)

// Keyword groups for the fallback search when no scheme is similar enough.
var fallbackKeywords = [][]string{
	{"mudra", "मुद्रा"},
	{"annapurna", "अन्नपूर्णा"},
	{"udyogini", "उद्योगिनी"},
	{"stand up", "standup", "india"},
	{"stree shakti", "स्त्री शक्ति"},
	{"pmegp", "employment", "रोजगार"},
	{"shg", "group", "समूह"},
	{"food", "catering", "kitchen", "खाना", "रसोई"},
	{"women", "woman", "महिला", "स्त्री"},
	{"small", "micro", "छोटा", "सूक्ष्म"},
	{"business", "enterprise", "व्यवसाय", "उद्यम"},
}

var stopWords = setOf(
	"a", "about", "above", "after", "again", "against", "all", "also", "am", "an", "and", "any", "are", "as", "at",
	"be", "because", "been", "before", "being", "below", "between", "both", "but", "by",
	"can", "could", "did", "do", "does", "doing", "down", "during", "each", "either", "etc",
	"few", "for", "from", "further", "get", "had", "has", "have", "having", "he", "her", "here", "hers", "him", "his", "how",
	"i", "if", "in", "into", "is", "it", "its", "itself", "just", "least", "less", "many", "may", "me", "more", "most", "much", "must", "my",
	"no", "nor", "not", "now", "of", "off", "on", "once", "one", "only", "or", "other", "our", "ours", "out", "over", "own",
	"per", "please", "same", "she", "should", "so", "some", "such", "than", "that", "the", "their", "them", "then", "there", "these", "they", "this", "those", "three", "through", "to", "too",
	"under", "until", "up", "upon", "us", "very", "was", "we", "were", "what", "when", "where", "which", "while", "who", "whom", "why", "will", "with", "within", "would",
	"you", "your", "yours",
)

func setOf(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

// Index ranks schemes against a question. It is immutable once built and
// safe for concurrent use.
type Index struct {
	schemes []Scheme
	idf     map[string]float64
	vectors []map[string]float64
}

// NewIndex builds the TF-IDF vectors for schemes.
func NewIndex(schemes []Scheme) *Index {
	idx := &Index{schemes: schemes, idf: map[string]float64{}}

	docs := make([][]string, len(schemes))
	df := map[string]int{}
	for i, s := range schemes {
		docs[i] = tokenize(s.document())
		seen := map[string]bool{}
		for _, t := range docs[i] {
			if !seen[t] {
				seen[t] = true
				df[t]++
			}
		}
	}
	n := float64(len(schemes))
	for term, count := range df {
		idx.idf[term] = math.Log((1+n)/(1+float64(count))) + 1
	}
	for _, tokens := range docs {
		idx.vectors = append(idx.vectors, idx.vectorize(tokens))
	}
	return idx
}

// Schemes returns the catalogue the index was built from.
func (x *Index) Schemes() []Scheme {
	return x.schemes
}

// Search returns up to topK schemes whose similarity to query exceeds
// MinSimilarity, best first. When none does, it falls back to keyword
// matching on scheme names, descriptions and categories.
func (x *Index) Search(query string, topK int) []Match {
	if topK <= 0 {
		topK = DefaultTopK
	}
	q := x.vectorize(tokenize(ExpandQuery(query)))

	ranked := make([]Match, 0, len(x.schemes))
	for i, s := range x.schemes {
		ranked = append(ranked, Match{Scheme: s, SimilarityScore: dot(q, x.vectors[i])})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].SimilarityScore > ranked[j].SimilarityScore })
	if len(ranked) > topK {
		ranked = ranked[:topK]
	}

	var out []Match
	for _, m := range ranked {
		if m.SimilarityScore > MinSimilarity {
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return x.keywordSearch(query, topK)
	}
	return out
}

// keywordSearch scores 3 for a keyword in the name, 2 in the description
// and 1 in the category, for every keyword the query mentions.
func (x *Index) keywordSearch(query string, topK int) []Match {
	q := strings.ToLower(query)
	out := []Match{}
	for _, s := range x.schemes {
		name := strings.ToLower(s.Name)
		desc := strings.ToLower(s.Description)
		category := strings.ToLower(s.Category)

		score := 0
		for _, group := range fallbackKeywords {
			for _, kw := range group {
				if !strings.Contains(q, kw) {
					continue
				}
				switch {
				case strings.Contains(name, kw):
					score += 3
				case strings.Contains(desc, kw):
					score += 2
				case strings.Contains(category, kw):
					score++
				}
			}
		}
		if score > 0 {
			out = append(out, Match{Scheme: s, SimilarityScore: float64(score) / 10})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SimilarityScore > out[j].SimilarityScore })
	if len(out) > topK {
		out = out[:topK]
	}
	return out
}

// ExpandQuery rewrites a conversational question into catalogue keywords
// followed by its loan words and longer words. A question that yields
// nothing is returned lowercased.
func ExpandQuery(query string) string {
	q := strings.ToLower(strings.TrimSpace(query))

	var parts []string
	for _, e := range queryExpansions {
		if e.pattern.MatchString(q) {
			parts = append(parts, e.keywords)
		}
	}
	for _, w := range strings.Fields(q) {
		if _, ok := loanWords[w]; ok || utf8.RuneCountInString(w) >= minQueryWordLen {
			parts = append(parts, w)
		}
	}
	if len(parts) == 0 {
		return q
	}
	return strings.Join(parts, " ")
}

func (x *Index) vectorize(tokens []string) map[string]float64 {
	v := map[string]float64{}
	for _, t := range tokens {
		if _, ok := x.idf[t]; ok {
			v[t]++
		}
	}
	var norm float64
	for t, tf := range v {
		w := tf * x.idf[t]
		v[t] = w
		norm += w * w
	}
	if norm == 0 {
		return v
	}
	norm = math.Sqrt(norm)
	for t := range v {
		v[t] /= norm
	}
	return v
}

func dot(a, b map[string]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for t, w := range a {
		sum += w * b[t]
	}
	return sum
}

// tokenize lowercases text and splits it into words of two or more
// letters, digits or combining marks, dropping English stop words.
func tokenize(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsMark(r)
	})
	out := words[:0]
	for _, w := range words {
		if utf8.RuneCountInString(w) < minTokenRunes {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		out = append(out, w)
	}
	return out
}
