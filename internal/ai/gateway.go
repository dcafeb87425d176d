// gateway.go - Ordered fallback across text providers with per-provider key rotation

package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/bizsakhi/sakhi_ai_core/internal/common"
	"github.com/bizsakhi/sakhi_ai_core/internal/metrics"
	"github.com/bizsakhi/sakhi_ai_core/internal/ratelimit"
)

// Route is one provider in the fallback chain.
type Route struct {
	Provider Provider
	Keys     *KeyPool
	Timeout  time.Duration
	Limiter  *ratelimit.RateLimiter
}

// Gateway tries routes in order until one returns usable text. Any failure
// moves on to the next key of the same provider, and only then to the next
// provider. It never retries the same key within one call.
type Gateway struct {
	routes []Route
}

// NewGateway builds a gateway over routes; routes without keys are dropped.
func NewGateway(routes ...Route) *Gateway {
	g := &Gateway{}
	for _, r := range routes {
		if r.Provider == nil || r.Keys == nil || r.Keys.Len() == 0 {
			continue
		}
		g.routes = append(g.routes, r)
	}
	return g
}

// Providers lists the configured provider names in priority order.
func (g *Gateway) Providers() []string {
	names := make([]string, 0, len(g.routes))
	for _, r := range g.routes {
		names = append(names, r.Provider.Name())
	}
	return names
}

// Available reports whether at least one provider is configured.
func (g *Gateway) Available() bool {
	return g != nil && len(g.routes) > 0
}

// Complete returns the first non-empty completion, stripped of code fences.
// When every provider fails the error wraps common.ErrProviderUnavailable.
func (g *Gateway) Complete(ctx context.Context, prompt string) (string, error) {
	return g.walk(ctx, prompt, func(string) error { return nil })
}

// CompleteJSON decodes the first completion that is valid JSON for out.
// A provider that answers with something else counts as failed and the
// next provider is tried.
func (g *Gateway) CompleteJSON(ctx context.Context, prompt string, out any) error {
	target := reflect.ValueOf(out)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		return fmt.Errorf("CompleteJSON needs a non-nil pointer, got %T", out)
	}

	_, err := g.walk(ctx, prompt, func(text string) error {
		candidate := prepareJSON(text)
		if !json.Valid([]byte(candidate)) {
			return errors.New("response is not valid JSON")
		}
		target.Elem().Set(reflect.Zero(target.Elem().Type()))
		return json.Unmarshal([]byte(candidate), out)
	})
	return err
}

func (g *Gateway) walk(ctx context.Context, prompt string, accept func(string) error) (string, error) {
	reqCtx := common.FromContext(ctx)
	if !g.Available() {
		return "", fmt.Errorf("%w: no providers configured", common.ErrProviderUnavailable)
	}

	var lastErr error
	for _, route := range g.routes {
		name := route.Provider.Name()
		start := route.Keys.Cursor()

		for i := 0; i < route.Keys.Len(); i++ {
			if err := ctx.Err(); err != nil {
				return "", fmt.Errorf("%w: %v", common.ErrProviderUnavailable, err)
			}

			idx := (start + i) % route.Keys.Len()
			text, err := g.attempt(ctx, route, idx, prompt)
			if err == nil {
				text = StripCodeFence(text)
				if acceptErr := accept(text); acceptErr != nil {
					err = malformedError(name, acceptErr.Error())
				}
			}

			if err == nil {
				route.Keys.markCurrent(idx)
				metrics.Get().ProviderRequests.WithLabelValues(name, "success").Inc()
				if lastErr != nil {
					reqCtx.LogInfo("%s answered with key #%d after earlier failures", name, idx+1)
				}
				return text, nil
			}

			pe := categorizeError(name, err)
			metrics.Get().ProviderRequests.WithLabelValues(name, pe.Category).Inc()
			reqCtx.LogWarning("%s key #%d failed: [%s] %s", name, idx+1, pe.Category, pe.Message)
			lastErr = pe
			route.Keys.advanceFrom(idx)
		}

		// Every key of this provider failed in this call
		route.Keys.restore(start)
	}

	reqCtx.LogError("All AI providers failed, last error: %v", lastErr)
	return "", fmt.Errorf("%w: all providers failed: %v", common.ErrProviderUnavailable, lastErr)
}

func (g *Gateway) attempt(ctx context.Context, route Route, idx int, prompt string) (string, error) {
	attemptCtx := ctx
	if route.Timeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, route.Timeout)
		defer cancel()
	}

	if route.Limiter != nil {
		if err := route.Limiter.Wait(attemptCtx); err != nil {
			return "", &ProviderError{
				Provider: route.Provider.Name(),
				Category: CategoryTimeout,
				Message:  "local request budget exhausted",
				Err:      err,
			}
		}
	}

	started := time.Now()
	text, err := route.Provider.Send(attemptCtx, route.Keys.key(idx), prompt)
	metrics.Get().ProviderLatency.WithLabelValues(route.Provider.Name()).Observe(time.Since(started).Seconds())
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", malformedError(route.Provider.Name(), "empty completion")
	}
	return text, nil
}
