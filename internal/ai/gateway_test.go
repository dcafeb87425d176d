package ai

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bizsakhi/sakhi_ai_core/internal/common"
	"github.com/bizsakhi/sakhi_ai_core/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	name    string
	mu      sync.Mutex
	keys    []string
	respond func(ctx context.Context, key string) (string, error)
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Send(ctx context.Context, apiKey, _ string) (string, error) {
	f.mu.Lock()
	f.keys = append(f.keys, apiKey)
	f.mu.Unlock()
	return f.respond(ctx, apiKey)
}

func (f *fakeProvider) calledWith() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.keys))
	copy(out, f.keys)
	return out
}

func answer(text string) func(context.Context, string) (string, error) {
	return func(context.Context, string) (string, error) { return text, nil }
}

func failWith(status int) func(context.Context, string) (string, error) {
	return func(context.Context, string) (string, error) {
		return "", statusError("fake", status, "boom")
	}
}

func TestGatewayFallsThroughInOrder(t *testing.T) {
	metrics.ResetForTesting()

	groq := &fakeProvider{name: "groq", respond: failWith(500)}
	anthropic := &fakeProvider{name: "anthropic", respond: answer("hello from claude")}
	mistral := &fakeProvider{name: "mistral", respond: answer("never reached")}

	g := NewGateway(
		Route{Provider: groq, Keys: NewKeyPool("g1")},
		Route{Provider: anthropic, Keys: NewKeyPool("a1")},
		Route{Provider: mistral, Keys: NewKeyPool("m1")},
	)

	text, err := g.Complete(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "hello from claude", text)
	assert.Equal(t, []string{"g1"}, groq.calledWith())
	assert.Equal(t, []string{"a1"}, anthropic.calledWith())
	assert.Empty(t, mistral.calledWith())

	m := metrics.Get()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProviderRequests.WithLabelValues("groq", CategoryServerError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProviderRequests.WithLabelValues("anthropic", "success")))
}

func TestGatewayDropsRoutesWithoutKeys(t *testing.T) {
	g := NewGateway(
		Route{Provider: &fakeProvider{name: "groq"}, Keys: NewKeyPool()},
		Route{Provider: &fakeProvider{name: "gemini"}, Keys: NewKeyPool("k")},
	)
	assert.Equal(t, []string{"gemini"}, g.Providers())
	assert.True(t, g.Available())

	empty := NewGateway()
	assert.False(t, empty.Available())
	_, err := empty.Complete(context.Background(), "hi")
	assert.ErrorIs(t, err, common.ErrProviderUnavailable)
}

func TestGatewayRotatesKeysOnQuota(t *testing.T) {
	metrics.ResetForTesting()

	gemini := &fakeProvider{name: "gemini", respond: func(_ context.Context, key string) (string, error) {
		if key == "k1" {
			return "", statusError("gemini", 429, "Resource has been exhausted")
		}
		return "ok", nil
	}}
	pool := NewKeyPool("k1", "k2", "k3")
	g := NewGateway(Route{Provider: gemini, Keys: pool})

	text, err := g.Complete(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
	assert.Equal(t, []string{"k1", "k2"}, gemini.calledWith())
	assert.Equal(t, 1, pool.Cursor())

	// The next call starts from the key that worked
	_, err = g.Complete(context.Background(), "again")
	require.NoError(t, err)
	assert.Equal(t, []string{"k1", "k2", "k2"}, gemini.calledWith())
}

func TestGatewayRestoresCursorWhenAllKeysFail(t *testing.T) {
	metrics.ResetForTesting()

	gemini := &fakeProvider{name: "gemini", respond: failWith(429)}
	pool := NewKeyPool("k1", "k2", "k3")
	pool.Rotate()
	g := NewGateway(Route{Provider: gemini, Keys: pool})

	_, err := g.Complete(context.Background(), "hi")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrProviderUnavailable)
	assert.Equal(t, []string{"k2", "k3", "k1"}, gemini.calledWith())
	assert.Equal(t, 1, pool.Cursor())
}

func TestGatewayServerErrorTriesRemainingKeys(t *testing.T) {
	metrics.ResetForTesting()

	gemini := &fakeProvider{name: "gemini", respond: func(_ context.Context, key string) (string, error) {
		if key == "k1" {
			return "", statusError("gemini", 503, "overloaded")
		}
		return "from " + key, nil
	}}
	groq := &fakeProvider{name: "groq", respond: answer("fine")}
	keys := NewKeyPool("k1", "k2", "k3")
	g := NewGateway(
		Route{Provider: gemini, Keys: keys},
		Route{Provider: groq, Keys: NewKeyPool("g1")},
	)

	text, err := g.Complete(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "from k2", text)
	assert.Equal(t, []string{"k1", "k2"}, gemini.calledWith())
	assert.Empty(t, groq.calledWith())
	assert.Equal(t, 1, keys.Cursor())
}

func TestGatewayMalformedAnswerTriesNextKey(t *testing.T) {
	metrics.ResetForTesting()

	p := &fakeProvider{name: "groq", respond: func(_ context.Context, key string) (string, error) {
		if key == "g1" {
			return "not json at all", nil
		}
		return `{"intent": "income"}`, nil
	}}
	g := NewGateway(Route{Provider: p, Keys: NewKeyPool("g1", "g2")})

	var out struct {
		Intent string `json:"intent"`
	}
	require.NoError(t, g.CompleteJSON(context.Background(), "prompt", &out))
	assert.Equal(t, "income", out.Intent)
	assert.Equal(t, []string{"g1", "g2"}, p.calledWith())
}

func TestGatewayServerErrorsExhaustKeysThenFallBack(t *testing.T) {
	metrics.ResetForTesting()

	gemini := &fakeProvider{name: "gemini", respond: failWith(500)}
	groq := &fakeProvider{name: "groq", respond: answer("fine")}
	keys := NewKeyPool("k1", "k2")
	g := NewGateway(
		Route{Provider: gemini, Keys: keys},
		Route{Provider: groq, Keys: NewKeyPool("g1")},
	)

	text, err := g.Complete(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "fine", text)
	assert.Equal(t, []string{"k1", "k2"}, gemini.calledWith())
	assert.Equal(t, 0, keys.Cursor())
}

func TestGatewayCompleteJSONSkipsMalformedAnswers(t *testing.T) {
	metrics.ResetForTesting()

	chatty := &fakeProvider{name: "groq", respond: answer("Sure! I think this is an expense.")}
	good := &fakeProvider{name: "anthropic", respond: answer("```json\n{\"intent\": \"expense\", \"confidence\": 0.9}\n```")}
	g := NewGateway(
		Route{Provider: chatty, Keys: NewKeyPool("g1")},
		Route{Provider: good, Keys: NewKeyPool("a1")},
	)

	var out struct {
		Intent     string  `json:"intent"`
		Confidence float64 `json:"confidence"`
	}
	out.Intent = "stale"
	require.NoError(t, g.CompleteJSON(context.Background(), "prompt", &out))
	assert.Equal(t, "expense", out.Intent)
	assert.Equal(t, 0.9, out.Confidence)

	m := metrics.Get()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProviderRequests.WithLabelValues("groq", CategoryMalformedResponse)))
}

func TestGatewayCompleteJSONAllMalformed(t *testing.T) {
	metrics.ResetForTesting()

	g := NewGateway(Route{Provider: &fakeProvider{name: "groq", respond: answer("nope")}, Keys: NewKeyPool("g1")})

	var out map[string]any
	err := g.CompleteJSON(context.Background(), "prompt", &out)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrProviderUnavailable)

	assert.Error(t, g.CompleteJSON(context.Background(), "prompt", out))
}

func TestGatewayEmptyCompletionIsFailure(t *testing.T) {
	metrics.ResetForTesting()

	blank := &fakeProvider{name: "groq", respond: answer("   ")}
	backup := &fakeProvider{name: "mistral", respond: answer("text")}
	g := NewGateway(
		Route{Provider: blank, Keys: NewKeyPool("g1")},
		Route{Provider: backup, Keys: NewKeyPool("m1")},
	)

	text, err := g.Complete(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "text", text)
}

func TestGatewayPerAttemptTimeout(t *testing.T) {
	metrics.ResetForTesting()

	slow := &fakeProvider{name: "groq", respond: func(ctx context.Context, _ string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}}
	fast := &fakeProvider{name: "anthropic", respond: answer("quick")}
	g := NewGateway(
		Route{Provider: slow, Keys: NewKeyPool("g1"), Timeout: 20 * time.Millisecond},
		Route{Provider: fast, Keys: NewKeyPool("a1"), Timeout: time.Second},
	)

	started := time.Now()
	text, err := g.Complete(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "quick", text)
	assert.Less(t, time.Since(started), time.Second)

	m := metrics.Get()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProviderRequests.WithLabelValues("groq", CategoryTimeout)))
}

func TestGatewayStopsWhenCallerCancels(t *testing.T) {
	metrics.ResetForTesting()

	p := &fakeProvider{name: "groq", respond: answer("late")}
	g := NewGateway(Route{Provider: p, Keys: NewKeyPool("g1")})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Complete(ctx, "hi")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrProviderUnavailable))
	assert.Empty(t, p.calledWith())
}

func TestGatewayConcurrentCalls(t *testing.T) {
	metrics.ResetForTesting()

	gemini := &fakeProvider{name: "gemini", respond: func(_ context.Context, key string) (string, error) {
		if key == "k1" {
			return "", statusError("gemini", 429, "quota")
		}
		return "ok", nil
	}}
	pool := NewKeyPool("k1", "k2", "k3")
	g := NewGateway(Route{Provider: gemini, Keys: pool})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			text, err := g.Complete(context.Background(), "hi")
			assert.NoError(t, err)
			assert.Equal(t, "ok", text)
		}()
	}
	wg.Wait()

	assert.Contains(t, []int{1, 2}, pool.Cursor())
}
