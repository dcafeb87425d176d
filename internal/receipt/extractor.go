// extractor.go - Receipt item extraction: sanitize, AI buckets, validation, regex fallback

package receipt

import (
	"context"
	"strings"

	"github.com/bizsakhi/sakhi_ai_core/internal/ai"
	"github.com/bizsakhi/sakhi_ai_core/internal/common"
	"github.com/bizsakhi/sakhi_ai_core/internal/metrics"
	"github.com/bizsakhi/sakhi_ai_core/internal/models"
	"github.com/bizsakhi/sakhi_ai_core/internal/processor"
	"github.com/bizsakhi/sakhi_ai_core/internal/response"
)

// Confidence reported for the non-AI outcomes.
const (
	FallbackConfidence = 0.8
	FailedConfidence   = 0.1
)

// Completer is the part of the provider gateway the extractor needs.
type Completer interface {
	CompleteJSON(ctx context.Context, prompt string, out any) error
}

// OCRService reads the text printed on a receipt photo.
type OCRService interface {
	ExtractText(ctx context.Context, imageData []byte, mimeType string) (string, error)
}

// Preprocessor prepares a photo for OCR and returns the new bytes and mime type.
type Preprocessor interface {
	Process(data []byte, mimeType string) ([]byte, string, error)
}

// Extractor turns receipt text into validated line items. Like the intent
// resolver it never returns an error; failures become ocr_failed or the
// regex fallback.
type Extractor struct {
	gateway      Completer
	fallback     *processor.FallbackExtractor
	composer     *response.Composer
	ocr          OCRService
	preprocessor Preprocessor
}

// NewExtractor creates an extractor. gateway may be nil, in which case every
// receipt goes straight to the regex fallback.
func NewExtractor(gateway Completer, composer *response.Composer) *Extractor {
	if composer == nil {
		composer = response.NewComposer()
	}
	return &Extractor{
		gateway:  gateway,
		fallback: processor.NewFallbackExtractor(),
		composer: composer,
	}
}

// WithImageSupport enables ExtractImage. pre is optional.
func (e *Extractor) WithImageSupport(ocr OCRService, pre Preprocessor) *Extractor {
	e.ocr = ocr
	e.preprocessor = pre
	return e
}

// Extract reads ocrText and returns a business_analysis or ocr_failed result
// with a non-empty message.
func (e *Extractor) Extract(ctx context.Context, ocrText, language string) models.IntentResult {
	reqCtx := common.FromContext(ctx)

	if strings.TrimSpace(ocrText) == "" {
		return e.record(e.empty(models.NewReceiptData(models.SourceAI), language))
	}

	cleaned := processor.CleanOCRText(ocrText)
	if cleaned == "" {
		reqCtx.LogWarning("No usable receipt lines left after sanitizing: %v", common.ErrOCRTooNoisy)
		return e.record(e.ocrFailed(nil, language))
	}

	if e.gateway == nil {
		return e.record(e.Fallback(ocrText, language))
	}

	var raw models.RawReceiptResult
	if err := e.gateway.CompleteJSON(ctx, ai.BuildReceiptPrompt(cleaned, language), &raw); err != nil {
		reqCtx.LogWarning("AI receipt extraction failed, using regex fallback: %v", err)
		return e.record(e.Fallback(ocrText, language))
	}

	data, rejected := validate(raw.Data, e.composer, language)
	if rejected > 0 {
		reqCtx.LogInfo("Dropped %d receipt items that failed name validation", rejected)
	}

	if data.ItemCount() == 0 {
		if data.OCRQuality == models.OCRQualityTerrible {
			reqCtx.LogWarning("Receipt rejected: %v", common.ErrOCRTooNoisy)
			return e.record(e.ocrFailed(data, language))
		}
		reqCtx.LogInfo("AI kept no items (quality %s), trying regex fallback", data.OCRQuality)
		return e.record(e.Fallback(ocrText, language))
	}

	res := models.IntentResult{
		Intent:            models.IntentBusinessAnalysis,
		Action:            "add_multiple",
		Confidence:        raw.Confidence.Float(models.DefaultConfidence),
		Data:              data,
		ResponseMessage:   e.composer.ReceiptMessage(data, language),
		IsBusinessRelated: true,
	}
	if len(data.UnclearItems) > 0 {
		res.Action = "clarify"
		res.NeedsClarification = true
	}
	res.Normalize()

	reqCtx.LogInfo("Receipt extracted: %d clear, %d unclear, %d rejected",
		len(data.ClearItems), len(data.UnclearItems), len(data.RejectedItems))
	return e.record(res)
}

// Fallback runs the regex extractor only. It performs no I/O and cannot fail.
// A receipt with a readable amount but no item lines still answers with
// that total.
func (e *Extractor) Fallback(ocrText, language string) models.IntentResult {
	data := e.fallback.Extract(ocrText)
	if data.ItemCount() == 0 && (data.TotalAmount == nil || *data.TotalAmount <= 0) {
		return e.empty(data, language)
	}
	return models.IntentResult{
		Intent:            models.IntentBusinessAnalysis,
		Action:            "add_multiple",
		Confidence:        FallbackConfidence,
		Data:              data,
		ResponseMessage:   e.composer.ReceiptMessage(data, language),
		IsBusinessRelated: true,
	}
}

// ExtractImage preprocesses a photo, runs OCR and extracts the items. A
// missing OCR service or an OCR failure yields ocr_failed.
func (e *Extractor) ExtractImage(ctx context.Context, imageData []byte, mimeType, language string) models.IntentResult {
	reqCtx := common.FromContext(ctx)

	if e.ocr == nil || len(imageData) == 0 {
		return e.record(e.Unreadable(language))
	}

	if e.preprocessor != nil {
		reqCtx.StartStep("image_preprocessing")
		processed, outType, err := e.preprocessor.Process(imageData, mimeType)
		if err != nil {
			reqCtx.EndStep("fallback", nil, err)
			reqCtx.LogWarning("Image preprocessing failed, sending the original: %v", err)
		} else {
			reqCtx.EndStep("success", nil, nil)
			imageData, mimeType = processed, outType
		}
	}

	reqCtx.StartStep("ocr")
	text, err := e.ocr.ExtractText(ctx, imageData, mimeType)
	if err != nil {
		reqCtx.EndStep("failed", nil, err)
		reqCtx.LogError("OCR failed: %v", err)
		return e.record(e.Unreadable(language))
	}
	reqCtx.EndStep("success", nil, nil)

	return e.Extract(ctx, text, language)
}

func (e *Extractor) empty(data *models.ReceiptData, language string) models.IntentResult {
	return models.IntentResult{
		Intent:            models.IntentBusinessAnalysis,
		Action:            "none",
		Confidence:        0,
		Data:              data,
		ResponseMessage:   e.composer.Message(response.EventReceiptEmpty, language),
		IsBusinessRelated: true,
	}
}

func (e *Extractor) ocrFailed(data *models.ReceiptData, language string) models.IntentResult {
	if data == nil {
		data = models.NewReceiptData(models.SourceAI)
	}
	data.OCRQuality = models.OCRQualityTerrible
	return models.IntentResult{
		Intent:            models.IntentOCRFailed,
		Action:            "retry",
		Confidence:        FailedConfidence,
		Data:              data,
		ResponseMessage:   e.composer.Message(response.EventOCRFailed, language),
		IsBusinessRelated: true,
	}
}

// Unreadable is the answer for a photo that could not be read at all.
func (e *Extractor) Unreadable(language string) models.IntentResult {
	res := e.ocrFailed(nil, language)
	res.ResponseMessage = e.composer.Message(response.EventReceiptUnreadable, language)
	return res
}

func (e *Extractor) record(res models.IntentResult) models.IntentResult {
	source := models.SourceAI
	if rd, ok := res.Receipt(); ok && rd.Source != "" {
		source = rd.Source
	}
	metrics.Get().ReceiptOutcome.WithLabelValues(source, string(res.Intent)).Inc()
	return res
}
