// receipts.go - Receipt upload, structured receipt and item confirmation handlers

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/bizsakhi/sakhi_ai_core/internal/models"
	"github.com/bizsakhi/sakhi_ai_core/internal/receipt"
	"github.com/bizsakhi/sakhi_ai_core/internal/response"
	"github.com/bizsakhi/sakhi_ai_core/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

var (
	errUploadTooLarge  = fmt.Errorf("upload exceeds %d bytes", MaxUploadBytes)
	errEmptyTranscript = errors.New("no speech recognised")
)

// ReceiptTextRequest is the body of POST /api/v1/receipt/text.
type ReceiptTextRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	OCRText  string `json:"ocr_text"`
	Language string `json:"language"`
}

// StructuredReceiptRequest is the body of POST /api/v1/receipt/structured.
type StructuredReceiptRequest struct {
	UserID   string                    `json:"user_id" binding:"required"`
	Language string                    `json:"language"`
	Receipt  receipt.StructuredReceipt `json:"receipt"`
}

// ConfirmedItem is one row of the clarification table after the user chose
// its category.
type ConfirmedItem struct {
	Name        string                  `json:"name"`
	Category    string                  `json:"category"`
	Quantity    *models.FlexibleFloat64 `json:"quantity"`
	Amount      *models.FlexibleFloat64 `json:"amount"`
	CostPerUnit *models.FlexibleFloat64 `json:"cost_per_unit"`
	UnitPrice   *models.FlexibleFloat64 `json:"unit_price"`
	Unit        string                  `json:"unit"`
}

// ConfirmItemsRequest is the body of POST /api/v1/confirm-items.
type ConfirmItemsRequest struct {
	UserID   string          `json:"user_id" binding:"required"`
	Language string          `json:"language"`
	Items    []ConfirmedItem `json:"items"`
}

// ReceiptTextHandler handles POST /api/v1/receipt/text.
func (s *Server) ReceiptTextHandler(c *gin.Context) {
	var req ReceiptTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success":  false,
			"error":    "Invalid request format",
			"details":  err.Error(),
			"expected": "JSON with user_id and ocr_text",
		})
		return
	}

	ctx, reqCtx := begin(c, req.UserID)
	reqCtx.LogInfo("🧾 Receipt text received | %d chars", len(req.OCRText))

	res := within(ctx, s.receiptTimeout,
		func(ctx context.Context) models.IntentResult { return s.extractor.Extract(ctx, req.OCRText, req.Language) },
		func() models.IntentResult { return s.extractor.Fallback(req.OCRText, req.Language) },
	)
	payload := s.composer.Compose(res, req.Language)
	s.remember(ctx, req.UserID, "Receipt text", payload, "receipt")

	c.JSON(http.StatusOK, gin.H{
		"payload":    payload,
		"request_id": reqCtx.RequestID,
		"steps":      reqCtx.GetSummary(),
	})
}

// ReceiptImageHandler handles POST /api/v1/receipt/image: multipart "image"
// plus user_id and language form fields.
func (s *Server) ReceiptImageHandler(c *gin.Context) {
	userID := c.PostForm("user_id")
	language := c.PostForm("language")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "user_id is required"})
		return
	}
	image, _, err := readUpload(c, "image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "image file is required", "details": err.Error()})
		return
	}
	mimeType := uploadMimeType(c, "image", image)

	ctx, reqCtx := begin(c, userID)
	reqCtx.LogInfo("📷 Receipt image received | %d bytes | %s", len(image), mimeType)

	res := within(ctx, s.receiptTimeout,
		func(ctx context.Context) models.IntentResult {
			return s.extractor.ExtractImage(ctx, image, mimeType, language)
		},
		func() models.IntentResult { return s.extractor.Unreadable(language) },
	)
	payload := s.composer.Compose(res, language)
	s.remember(ctx, userID, "Receipt image", payload, "image")

	c.JSON(http.StatusOK, gin.H{
		"payload":    payload,
		"request_id": reqCtx.RequestID,
		"steps":      reqCtx.GetSummary(),
	})
}

// StructuredReceiptHandler handles POST /api/v1/receipt/structured.
func (s *Server) StructuredReceiptHandler(c *gin.Context) {
	var req StructuredReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success":  false,
			"error":    "Invalid request format",
			"details":  err.Error(),
			"expected": "JSON with user_id and receipt{merchant, items, totals}",
		})
		return
	}

	ctx, reqCtx := begin(c, req.UserID)
	res := s.extractor.FromStructured(req.Receipt, req.Language)
	payload := s.composer.Compose(res, req.Language)
	s.remember(ctx, req.UserID, "Structured receipt", payload, "image")

	c.JSON(http.StatusOK, gin.H{
		"payload":    payload,
		"request_id": reqCtx.RequestID,
	})
}

// ConfirmItemsHandler handles POST /api/v1/confirm-items. Nothing is written
// while any item is still unclear.
func (s *Server) ConfirmItemsHandler(c *gin.Context) {
	var req ConfirmItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success":  false,
			"error":    "Invalid request format",
			"details":  err.Error(),
			"expected": "JSON with user_id and items",
		})
		return
	}
	if s.ledger == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "ledger is not configured"})
		return
	}

	ctx, reqCtx := begin(c, req.UserID)
	reqCtx.LogInfo("Processing %d confirmed items", len(req.Items))

	pending := 0
	for _, item := range req.Items {
		if cat, ok := models.ParseCategory(item.Category); ok && cat == models.CategoryUnclear {
			pending++
		}
	}
	if pending > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success":    false,
			"message":    s.composer.Message(response.EventItemsNeedCategory, req.Language, pending),
			"request_id": reqCtx.RequestID,
		})
		return
	}

	results := make([]storage.Result, 0, len(req.Items))
	succeeded := 0
	for _, item := range req.Items {
		res, err := s.confirm(ctx, req.UserID, item)
		if err != nil {
			reqCtx.LogWarning("Confirmed item %q not saved: %v", item.Name, err)
			res.Success = false
		}
		if res.Success {
			succeeded++
		}
		results = append(results, res)
	}

	message := s.composer.Message(response.EventItemsProcessed, req.Language, succeeded)
	if err := s.ledger.SaveChatHistory(ctx, req.UserID, fmt.Sprintf("Confirmed %d items", len(req.Items)),
		message, "confirmation", "item_confirmation"); err != nil {
		reqCtx.LogWarning("Failed to save chat history: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"message":          message,
		"business_results": results,
		"processed_count":  succeeded,
		"request_id":       reqCtx.RequestID,
	})
}

// confirm routes one item to the ledger by its category. Unknown categories
// are booked as expenses.
func (s *Server) confirm(ctx context.Context, userID string, item ConfirmedItem) (storage.Result, error) {
	name := strings.TrimSpace(item.Name)
	if name == "" {
		name = "Unknown Item"
	}
	quantity := item.Quantity.Float(1)
	if quantity <= 0 {
		quantity = 1
	}
	amount := models.ClampAmount(item.Amount.Float(0))

	cat, ok := models.ParseCategory(item.Category)
	if !ok {
		cat = models.CategoryExpense
	}

	switch cat {
	case models.CategoryIncome:
		return s.ledger.AddIncome(ctx, userID, amount, itemDescription(name, quantity), "sales", "user_confirmed")
	case models.CategoryInventory:
		cost := item.CostPerUnit.Float(0)
		if cost <= 0 {
			cost = item.UnitPrice.Float(0)
		}
		if cost <= 0 {
			cost = perUnit(amount, quantity)
		}
		unit := item.Unit
		if unit == "" {
			unit = "pieces"
		}
		return s.ledger.AddInventoryItem(ctx, userID, name, quantity, unit, cost)
	}
	return s.ledger.AddExpense(ctx, userID, amount, itemDescription(name, quantity), "general", "user_confirmed")
}

// uploadMimeType prefers the part's declared type and sniffs otherwise.
func uploadMimeType(c *gin.Context, field string, data []byte) string {
	if fh, err := c.FormFile(field); err == nil {
		if ct := fh.Header.Get("Content-Type"); ct != "" && ct != "application/octet-stream" {
			return ct
		}
	}
	return http.DetectContentType(data)
}

func perUnit(amount, quantity float64) float64 {
	if quantity <= 0 {
		return amount
	}
	return decimal.NewFromFloat(amount).Div(decimal.NewFromFloat(quantity)).Round(2).InexactFloat64()
}

func formatQuantity(q float64) string {
	return decimal.NewFromFloat(q).String()
}
