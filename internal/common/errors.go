// errors.go - Failure taxonomy shared by the AI pipeline

package common

import "errors"

// Sentinel errors for the pipeline. Every one of them is recovered inside the
// core; none is ever surfaced to an HTTP caller.
var (
	// ErrProviderUnavailable covers network, auth and server failures of a
	// text-generation provider. Recovered by trying the next key or provider.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrMalformedProviderResponse means the provider answered but the body had
	// no usable text or was not the JSON we asked for.
	ErrMalformedProviderResponse = errors.New("malformed provider response")

	// ErrQuotaExceeded is a quota or rate limit rejection. It is treated as
	// unavailable and triggers key rotation.
	ErrQuotaExceeded = errors.New("provider quota exceeded")

	// ErrOCRTooNoisy is the terminal quality gate: terrible OCR and no item survived.
	ErrOCRTooNoisy = errors.New("ocr text too noisy")

	// ErrValidationRejected marks a single item that failed name or amount rules.
	ErrValidationRejected = errors.New("item rejected by validation")
)

// IsProviderFailure reports whether err should make the gateway move on to
// the next key or provider.
func IsProviderFailure(err error) bool {
	return errors.Is(err, ErrProviderUnavailable) ||
		errors.Is(err, ErrQuotaExceeded) ||
		errors.Is(err, ErrMalformedProviderResponse)
}
