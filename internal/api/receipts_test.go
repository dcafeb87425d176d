package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bizsakhi/sakhi_ai_core/internal/intent"
	"github.com/bizsakhi/sakhi_ai_core/internal/receipt"
	"github.com/bizsakhi/sakhi_ai_core/internal/response"
	"github.com/bizsakhi/sakhi_ai_core/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const stationeryReceipt = "ABC Stationers\n2 Notebooks Rs.100\n1 x Coffee Mug - Rs.250\nTotal: ₹350"

type stubOCR struct {
	text string
	err  error
}

func (s stubOCR) ExtractText(context.Context, []byte, string) (string, error) {
	return s.text, s.err
}

func imageRequest(t *testing.T, userID string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("user_id", userID))
	require.NoError(t, mw.WriteField("language", "en"))
	part, err := mw.CreateFormFile("image", "receipt.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("\x89PNG\r\n\x1a\nnot really a png"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/receipt/image", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestReceiptTextUsesRegexWithoutProviders(t *testing.T) {
	ledger := &mockLedger{}
	ledger.On("SaveChatHistory", mock.Anything, "user-1", "Receipt text", mock.Anything, "receipt", "business_analysis").Return(nil)

	router := newTestServer(ledger, nil).Router()
	w := postJSON(t, router, "/api/v1/receipt/text", ReceiptTextRequest{UserID: "user-1", OCRText: stationeryReceipt, Language: "en"})

	require.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	assert.True(t, env.Payload.Success)
	assert.Equal(t, "business_analysis", env.Payload.Intent)
	assert.Equal(t, "add_multiple", env.Payload.Action)
	assert.Equal(t, "pattern", env.Payload.Data["source"])
	ledger.AssertExpectations(t)
}

func TestReceiptTextEmpty(t *testing.T) {
	router := newTestServer(nil, nil).Router()
	w := postJSON(t, router, "/api/v1/receipt/text", ReceiptTextRequest{UserID: "user-1"})

	env := decode(t, w)
	assert.Equal(t, "business_analysis", env.Payload.Intent)
	assert.Equal(t, response.Render(response.EventReceiptEmpty, "en"), env.Payload.Message)
}

func TestReceiptImage(t *testing.T) {
	srv := NewServer(Config{
		Resolver:  intent.NewResolver(nil, nil),
		Extractor: receipt.NewExtractor(nil, nil).WithImageSupport(stubOCR{text: stationeryReceipt}, nil),
	})

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, imageRequest(t, "user-1"))

	require.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	assert.Equal(t, "business_analysis", env.Payload.Intent)
	assert.NotEmpty(t, env.Payload.Message)
}

func TestReceiptImageOCRFailure(t *testing.T) {
	srv := NewServer(Config{
		Resolver:  intent.NewResolver(nil, nil),
		Extractor: receipt.NewExtractor(nil, nil).WithImageSupport(stubOCR{err: errors.New("vision down")}, nil),
	})

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, imageRequest(t, "user-1"))

	require.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	assert.False(t, env.Payload.Success)
	assert.Equal(t, "ocr_failed", env.Payload.Intent)
	assert.Equal(t, response.Render(response.EventReceiptUnreadable, "en"), env.Payload.Message)
}

func TestReceiptImageRequiresFile(t *testing.T) {
	router := newTestServer(nil, nil).Router()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/receipt/image", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStructuredReceipt(t *testing.T) {
	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(`{
		"user_id": "user-1",
		"language": "en",
		"receipt": {
			"merchant": {"name": "Sharma General Store"},
			"items": [
				{"name": "Samsung Galaxy A54", "quantity": 2, "unit_price": 25000},
				{"name": "Rice Bag", "quantity": 3, "total_price": 1200, "unit": "kg"}
			],
			"totals": {"total": 51200}
		}
	}`), &body))

	router := newTestServer(nil, nil).Router()
	w := postJSON(t, router, "/api/v1/receipt/structured", body)

	require.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	assert.Equal(t, "item_clarification", env.Payload.Intent)
	assert.True(t, env.Payload.NeedsClarification)
	assert.Len(t, env.Payload.ClarificationItems, 2)
	assert.Equal(t, "I found 2 items from your receipt. Please review and confirm the categorization:", env.Payload.Message)
}

func TestConfirmItemsRoutesByCategory(t *testing.T) {
	ledger := &mockLedger{}
	ledger.On("AddIncome", mock.Anything, "user-1", 40.0, "2x Tea", "sales", "user_confirmed").
		Return(storage.Result{Success: true, Message: "ok"}, nil).Once()
	ledger.On("AddExpense", mock.Anything, "user-1", 5000.0, "Shop rent", "general", "user_confirmed").
		Return(storage.Result{Success: true, Message: "ok"}, nil).Once()
	ledger.On("AddInventoryItem", mock.Anything, "user-1", "Rice Bag", 3.0, "kg", 400.0).
		Return(storage.Result{Success: true, Message: "ok"}, nil).Once()
	ledger.On("SaveChatHistory", mock.Anything, "user-1", "Confirmed 3 items", "✅ Successfully processed 3 items!", "confirmation", "item_confirmation").
		Return(nil).Once()

	router := newTestServer(ledger, nil).Router()
	w := postJSON(t, router, "/api/v1/confirm-items", map[string]any{
		"user_id":  "user-1",
		"language": "en",
		"items": []map[string]any{
			{"name": "Tea", "category": "income", "quantity": 2, "amount": 40},
			{"name": "Shop rent", "category": "expense", "amount": "5,000"},
			{"name": "Rice Bag", "category": "inventory", "quantity": "3", "amount": 1200, "unit": "kg"},
		},
	})

	require.Equal(t, http.StatusOK, w.Code)
	var out struct {
		Success        bool             `json:"success"`
		Message        string           `json:"message"`
		ProcessedCount int              `json:"processed_count"`
		Results        []storage.Result `json:"business_results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.True(t, out.Success)
	assert.Equal(t, 3, out.ProcessedCount)
	assert.Len(t, out.Results, 3)
	ledger.AssertExpectations(t)
}

func TestConfirmItemsCountsFailures(t *testing.T) {
	ledger := &mockLedger{}
	ledger.On("AddExpense", mock.Anything, "user-1", 0.0, "Pen", "general", "user_confirmed").
		Return(storage.Result{Message: "expense amount must be positive"}, errors.New("invalid expense amount 0"))
	ledger.On("SaveChatHistory", mock.Anything, "user-1", "Confirmed 1 items", "✅ Successfully processed 0 items!", "confirmation", "item_confirmation").
		Return(nil)

	router := newTestServer(ledger, nil).Router()
	w := postJSON(t, router, "/api/v1/confirm-items", map[string]any{
		"user_id": "user-1",
		"items":   []map[string]any{{"name": "Pen", "category": "expense"}},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"processed_count":0`)
	ledger.AssertExpectations(t)
}

func TestConfirmItemsRefusesUnclear(t *testing.T) {
	ledger := &mockLedger{}

	router := newTestServer(ledger, nil).Router()
	w := postJSON(t, router, "/api/v1/confirm-items", map[string]any{
		"user_id":  "user-1",
		"language": "en",
		"items": []map[string]any{
			{"name": "Tea", "category": "income", "amount": 40},
			{"name": "Samsung Galaxy A54", "category": "unclear", "amount": 50000},
		},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Please choose expense or inventory for 1 item(s) before saving.")
	ledger.AssertNotCalled(t, "AddIncome", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestWithin(t *testing.T) {
	fast := within(context.Background(), time.Second,
		func(context.Context) string { return "work" },
		func() string { return "fallback" },
	)
	assert.Equal(t, "work", fast)

	release := make(chan struct{})
	defer close(release)
	slow := within(context.Background(), 10*time.Millisecond,
		func(context.Context) string { <-release; return "work" },
		func() string { return "fallback" },
	)
	assert.Equal(t, "fallback", slow)
}
