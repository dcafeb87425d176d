// provider.go - Provider interfaces for text generation and OCR

package ai

import "context"

// Provider is one text-generation backend. Send performs exactly one call
// with the given key and returns the raw text the model produced.
type Provider interface {
	Name() string
	Send(ctx context.Context, apiKey, prompt string) (string, error)
}

// OCRProvider reads the text printed on a receipt photo.
type OCRProvider interface {
	Name() string
	ExtractText(ctx context.Context, imageData []byte, mimeType string) (string, error)
}
