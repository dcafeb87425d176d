// request_context.go - Request tracking and logging system

package common

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RequestContext tracks the entire request lifecycle with timing and token usage
type RequestContext struct {
	RequestID string
	UserID    string
	StartTime time.Time

	mu               sync.Mutex
	steps            []StepLog
	totalTokens      TokenUsage
	currentStep      string
	currentStepStart time.Time
	log              *logrus.Entry
}

// StepLog represents a single processing step
type StepLog struct {
	Name      string      `json:"name"`
	StartTime time.Time   `json:"start_time"`
	Duration  int64       `json:"duration_ms"`
	Status    string      `json:"status"` // "success", "failed", "fallback"
	Tokens    *TokenUsage `json:"tokens,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// TokenUsage tracks API token consumption
type TokenUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// NewRequestContext creates a new request tracking context
func NewRequestContext(userID string) *RequestContext {
	reqID := uuid.New().String()
	now := time.Now()

	entry := GetLogger().WithFields(logrus.Fields{
		"request_id": reqID,
		"user_id":    userID,
	})
	entry.Infof("🚀 New request received at %s", now.Format("15:04:05"))

	return &RequestContext{
		RequestID: reqID,
		UserID:    userID,
		StartTime: now,
		log:       entry,
	}
}

type requestContextKey struct{}

// WithRequestContext attaches rc to ctx.
func WithRequestContext(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, requestContextKey{}, rc)
}

// FromContext returns the RequestContext stored in ctx. When none is present a
// detached context is returned so callers can always log.
func FromContext(ctx context.Context) *RequestContext {
	if ctx != nil {
		if rc, ok := ctx.Value(requestContextKey{}).(*RequestContext); ok && rc != nil {
			return rc
		}
	}
	return &RequestContext{
		RequestID: "-",
		StartTime: time.Now(),
		log:       GetLogger().WithField("request_id", "-"),
	}
}

// StartStep begins tracking a new processing step
func (rc *RequestContext) StartStep(stepName string) {
	rc.mu.Lock()
	rc.currentStep = stepName
	rc.currentStepStart = time.Now()
	rc.mu.Unlock()

	rc.log.WithField("step", stepName).Info("┌── step started")
}

// EndStep completes the current step and records timing
func (rc *RequestContext) EndStep(status string, tokens *TokenUsage, err error) {
	rc.mu.Lock()
	duration := time.Since(rc.currentStepStart).Milliseconds()
	step := StepLog{
		Name:      rc.currentStep,
		StartTime: rc.currentStepStart,
		Duration:  duration,
		Status:    status,
		Tokens:    tokens,
	}
	if tokens != nil {
		rc.totalTokens.add(*tokens)
	}
	if err != nil {
		step.Error = err.Error()
	}
	rc.steps = append(rc.steps, step)
	rc.currentStep = ""
	rc.mu.Unlock()

	entry := rc.log.WithFields(logrus.Fields{
		"step":        step.Name,
		"status":      status,
		"duration_ms": duration,
	})
	if err != nil {
		entry.WithError(err).Warn("❌ step failed")
		return
	}
	if tokens != nil {
		entry = entry.WithField("tokens", tokens.TotalTokens)
	}
	entry.Info("└── ✅ step done")
}

// AddTokens records token usage reported by a provider outside of a step.
func (rc *RequestContext) AddTokens(tokens TokenUsage) {
	rc.mu.Lock()
	rc.totalTokens.add(tokens)
	rc.mu.Unlock()
}

func (t *TokenUsage) add(other TokenUsage) {
	t.InputTokens += other.InputTokens
	t.OutputTokens += other.OutputTokens
	t.TotalTokens += other.TotalTokens
}

// Steps returns a copy of the completed steps.
func (rc *RequestContext) Steps() []StepLog {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	out := make([]StepLog, len(rc.steps))
	copy(out, rc.steps)
	return out
}

// GetSummary returns a final summary of the entire request
func (rc *RequestContext) GetSummary() map[string]interface{} {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	totalDuration := time.Since(rc.StartTime).Milliseconds()
	stepBreakdown := make(map[string]int64, len(rc.steps))
	for _, step := range rc.steps {
		stepBreakdown[step.Name] = step.Duration
	}

	rc.log.WithFields(logrus.Fields{
		"duration_ms": totalDuration,
		"steps":       len(rc.steps),
		"tokens":      rc.totalTokens.TotalTokens,
	}).Info("🎯 request finished")

	return map[string]interface{}{
		"request_id":        rc.RequestID,
		"total_duration_ms": totalDuration,
		"step_breakdown":    stepBreakdown,
		"total_steps":       len(rc.steps),
		"token_usage":       rc.totalTokens,
	}
}

// GetPartialSummary returns a summary of completed steps (for timeout scenarios)
func (rc *RequestContext) GetPartialSummary() map[string]interface{} {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	completed := []string{}
	for _, step := range rc.steps {
		if step.Status == "success" {
			completed = append(completed, step.Name)
		}
	}
	return map[string]interface{}{
		"completed_steps": completed,
		"total_steps":     len(rc.steps),
		"current_step":    rc.currentStep,
	}
}

// Logger exposes the request-scoped log entry.
func (rc *RequestContext) Logger() *logrus.Entry {
	return rc.log
}

// LogInfo logs info-level message with request ID field
func (rc *RequestContext) LogInfo(format string, args ...interface{}) {
	rc.log.Info("ℹ️  " + fmt.Sprintf(format, args...))
}

// LogWarning logs warning-level message with request ID field
func (rc *RequestContext) LogWarning(format string, args ...interface{}) {
	rc.log.Warn("⚠️  " + fmt.Sprintf(format, args...))
}

// LogError logs error-level message with request ID field
func (rc *RequestContext) LogError(format string, args ...interface{}) {
	rc.log.Error("❌ " + fmt.Sprintf(format, args...))
}
