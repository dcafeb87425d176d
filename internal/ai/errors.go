// errors.go - Provider error categorization

package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/bizsakhi/sakhi_ai_core/internal/common"
	"google.golang.org/api/googleapi"
)

// Error categories reported in logs and metrics.
const (
	CategoryBadRequest        = "bad_request"
	CategoryUnauthorized      = "unauthorized"
	CategoryForbidden         = "forbidden"
	CategoryNotFound          = "not_found"
	CategoryPayloadTooLarge   = "payload_too_large"
	CategoryRateLimit         = "rate_limit"
	CategoryQuotaExceeded     = "quota_exceeded"
	CategoryServerError       = "server_error"
	CategoryTimeout           = "timeout"
	CategoryCanceled          = "canceled"
	CategoryNetworkError      = "network_error"
	CategoryMalformedResponse = "malformed_response"
	CategoryUnknown           = "unknown"
)

// ProviderError is a categorized failure of one provider call.
type ProviderError struct {
	Provider   string
	Category   string
	StatusCode int
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: [%s] %s (status: %d)", e.Provider, e.Category, e.Message, e.StatusCode)
}

// Unwrap exposes both the pipeline sentinel for the category and the
// original cause, so errors.Is works for either.
func (e *ProviderError) Unwrap() []error {
	sentinel := common.ErrProviderUnavailable
	switch e.Category {
	case CategoryRateLimit, CategoryQuotaExceeded:
		sentinel = common.ErrQuotaExceeded
	case CategoryMalformedResponse:
		sentinel = common.ErrMalformedProviderResponse
	}
	if e.Err == nil {
		return []error{sentinel}
	}
	return []error{sentinel, e.Err}
}

// Quota reports whether the failure was a rate or quota rejection.
func (e *ProviderError) Quota() bool {
	return e.Category == CategoryRateLimit || e.Category == CategoryQuotaExceeded
}

// categorizeError maps any adapter error onto a ProviderError.
func categorizeError(provider string, err error) *ProviderError {
	if err == nil {
		return nil
	}

	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe
	}

	providerErr := &ProviderError{
		Provider: provider,
		Category: CategoryUnknown,
		Message:  err.Error(),
		Err:      err,
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		providerErr.StatusCode = apiErr.Code
		providerErr.Category, providerErr.Message = categorizeStatus(apiErr.Code, apiErr.Message)
		return providerErr
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		providerErr.Category = CategoryTimeout
		providerErr.Message = "request timeout"
		return providerErr
	case errors.Is(err, context.Canceled):
		providerErr.Category = CategoryCanceled
		providerErr.Message = "request was canceled"
		return providerErr
	}

	errMsg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "limit"):
		providerErr.Category = CategoryQuotaExceeded
	case strings.Contains(errMsg, "timeout") || strings.Contains(errMsg, "deadline"):
		providerErr.Category = CategoryTimeout
	case strings.Contains(errMsg, "connection") || strings.Contains(errMsg, "network") || strings.Contains(errMsg, "no such host"):
		providerErr.Category = CategoryNetworkError
	}
	return providerErr
}

// statusError builds a ProviderError for a non-2xx HTTP response.
func statusError(provider string, statusCode int, body string) *ProviderError {
	category, message := categorizeStatus(statusCode, body)
	// Some providers answer quota exhaustion with 400/403 and a message.
	lower := strings.ToLower(body)
	if category != CategoryRateLimit && (strings.Contains(lower, "quota") || strings.Contains(lower, "rate limit")) {
		category = CategoryQuotaExceeded
	}
	return &ProviderError{
		Provider:   provider,
		Category:   category,
		StatusCode: statusCode,
		Message:    message,
	}
}

// malformedError reports a 2xx response without usable content.
func malformedError(provider, reason string) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Category: CategoryMalformedResponse,
		Message:  reason,
	}
}

func categorizeStatus(code int, detail string) (string, string) {
	switch code {
	case http.StatusBadRequest:
		return CategoryBadRequest, "invalid request format or parameters"
	case http.StatusUnauthorized:
		return CategoryUnauthorized, "invalid API key or authentication failed"
	case http.StatusForbidden:
		return CategoryForbidden, "API key lacks required permissions"
	case http.StatusNotFound:
		return CategoryNotFound, "model not found or invalid endpoint"
	case http.StatusRequestEntityTooLarge:
		return CategoryPayloadTooLarge, "request size exceeds limit"
	case http.StatusTooManyRequests:
		return CategoryRateLimit, "rate limit exceeded"
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return CategoryServerError, fmt.Sprintf("server error (%d)", code)
	}
	if code >= 500 {
		return CategoryServerError, fmt.Sprintf("server error (%d)", code)
	}
	return CategoryUnknown, fmt.Sprintf("API error (%d): %s", code, truncate(detail, 200))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
