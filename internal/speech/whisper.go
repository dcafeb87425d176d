// whisper.go - Speech-to-text through the Groq Whisper transcription endpoint

package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/bizsakhi/sakhi_ai_core/internal/common"
)

// GroqTranscriptionURL is the OpenAI-compatible Whisper endpoint on Groq.
const GroqTranscriptionURL = "https://api.groq.com/openai/v1/audio/transcriptions"

// Transcription is what a Transcriber heard.
type Transcription struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Language   string  `json:"language"`
}

// Transcriber turns recorded audio into text. language is a hint and may be
// empty for auto-detection.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename, language string) (Transcription, error)
}

// WhisperTranscriber posts audio to a Whisper-compatible HTTP API.
type WhisperTranscriber struct {
	apiKey    string
	endpoint  string
	modelName string
	client    *http.Client
}

// NewWhisperTranscriber creates a transcriber for the Groq endpoint.
func NewWhisperTranscriber(apiKey, modelName string) *WhisperTranscriber {
	return &WhisperTranscriber{
		apiKey:    apiKey,
		endpoint:  GroqTranscriptionURL,
		modelName: modelName,
		client:    &http.Client{Timeout: 60 * time.Second},
	}
}

// WithEndpoint points the transcriber at another Whisper-compatible server.
func (w *WhisperTranscriber) WithEndpoint(endpoint string) *WhisperTranscriber {
	w.endpoint = endpoint
	return w
}

type verboseTranscription struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	Segments []struct {
		AvgLogprob float64 `json:"avg_logprob"`
	} `json:"segments"`
}

// Transcribe uploads audio and returns the text, a confidence in [0, 1]
// derived from the segment log probabilities, and the ISO language code.
func (w *WhisperTranscriber) Transcribe(ctx context.Context, audio []byte, filename, language string) (Transcription, error) {
	if len(audio) == 0 {
		return Transcription{}, fmt.Errorf("empty audio")
	}
	if filename == "" {
		filename = "audio.wav"
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return Transcription{}, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return Transcription{}, fmt.Errorf("failed to write audio: %w", err)
	}
	fields := map[string]string{
		"model":           w.modelName,
		"response_format": "verbose_json",
		"temperature":     "0",
	}
	if code := LanguageCode(language); code != "" {
		fields["language"] = code
	}
	for k, v := range fields {
		if err := form.WriteField(k, v); err != nil {
			return Transcription{}, fmt.Errorf("failed to write field %s: %w", k, err)
		}
	}
	if err := form.Close(); err != nil {
		return Transcription{}, fmt.Errorf("failed to close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.endpoint, &body)
	if err != nil {
		return Transcription{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+w.apiKey)

	resp, err := w.client.Do(req)
	if err != nil {
		return Transcription{}, fmt.Errorf("%w: whisper request failed: %v", common.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Transcription{}, fmt.Errorf("%w: failed to read whisper response: %v", common.ErrProviderUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		sentinel := common.ErrProviderUnavailable
		if resp.StatusCode == http.StatusTooManyRequests {
			sentinel = common.ErrQuotaExceeded
		}
		return Transcription{}, fmt.Errorf("%w: whisper status %d: %s", sentinel, resp.StatusCode, truncate(string(raw), 200))
	}

	var parsed verboseTranscription
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Transcription{}, fmt.Errorf("%w: %v", common.ErrMalformedProviderResponse, err)
	}

	detected := LanguageCode(parsed.Language)
	if detected == "" {
		detected = LanguageCode(language)
	}
	out := Transcription{
		Text:       strings.TrimSpace(parsed.Text),
		Confidence: confidence(parsed),
		Language:   detected,
	}
	common.FromContext(ctx).LogInfo("Transcribed %d bytes of audio (%s, confidence %.2f)", len(audio), out.Language, out.Confidence)
	return out, nil
}

// confidence is exp(mean avg_logprob) over all segments, 0 without segments.
func confidence(v verboseTranscription) float64 {
	if len(v.Segments) == 0 {
		return 0
	}
	var sum float64
	for _, s := range v.Segments {
		sum += s.AvgLogprob
	}
	c := math.Exp(sum / float64(len(v.Segments)))
	return math.Max(0, math.Min(1, c))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
