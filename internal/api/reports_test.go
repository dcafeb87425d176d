package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bizsakhi/sakhi_ai_core/internal/loan"
	"github.com/bizsakhi/sakhi_ai_core/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, router http.Handler, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestIncomeSummaryHandler(t *testing.T) {
	ledger := &mockLedger{}
	ledger.On("IncomeSummary", mock.Anything, "user-1").Return(storage.TransactionSummary{
		Total:              1500.5,
		TotalTransactions:  2,
		RecentTransactions: []storage.Transaction{{ID: "i2", Amount: 500.5}, {ID: "i1", Amount: 1000}},
	}, nil)
	router := newTestServer(ledger, nil).Router()

	w, body := get(t, router, "/api/v1/summary/income?user_id=user-1")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, 1500.5, body["total_income"])
	assert.Equal(t, 2.0, body["total_transactions"])
	assert.Len(t, body["recent_transactions"], 2)
	ledger.AssertExpectations(t)
}

func TestExpenseSummaryHandlerFailure(t *testing.T) {
	ledger := &mockLedger{}
	ledger.On("ExpenseSummary", mock.Anything, "user-1").Return(storage.TransactionSummary{}, errors.New("connection refused"))
	router := newTestServer(ledger, nil).Router()

	w, body := get(t, router, "/api/v1/summary/expense?user_id=user-1")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "failed to load expenses", body["error"])
}

func TestSummaryRequiresUser(t *testing.T) {
	router := newTestServer(&mockLedger{}, nil).Router()

	w, body := get(t, router, "/api/v1/summary/inventory")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "user_id is required", body["error"])
}

func TestSummaryWithoutLedger(t *testing.T) {
	router := newTestServer(nil, nil).Router()

	w, _ := get(t, router, "/api/v1/summary/income?user_id=user-1")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestInventorySummaryHandler(t *testing.T) {
	ledger := &mockLedger{}
	pen := storage.InventoryItem{ID: "b", ProductName: "Pen", Quantity: 3, TotalValue: 30, IsLowStock: true}
	ledger.On("InventorySummary", mock.Anything, "user-1").Return(storage.InventorySummary{
		TotalItems:    2,
		TotalValue:    510,
		LowStockCount: 1,
		LowStockItems: []storage.InventoryItem{pen},
		AllItems:      []storage.InventoryItem{{ID: "a", ProductName: "Notebook", Quantity: 12, TotalValue: 480}, pen},
	}, nil)
	router := newTestServer(ledger, nil).Router()

	w, body := get(t, router, "/api/v1/summary/inventory?user_id=user-1")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2.0, body["total_items"])
	assert.Equal(t, 510.0, body["total_value"])
	assert.Equal(t, 1.0, body["low_stock_count"])
	assert.Len(t, body["all_items"], 2)
}

func TestProfitLossHandler(t *testing.T) {
	ledger := &mockLedger{}
	ledger.On("ProfitLossSummary", mock.Anything, "user-1").Return(storage.Summary{
		TotalIncome: 1000, TotalExpenses: 400, NetProfit: 600, ProfitMargin: 60, Status: storage.StatusProfit,
	}, nil)
	router := newTestServer(ledger, nil).Router()

	w, body := get(t, router, "/api/v1/summary/profit-loss?user_id=user-1")

	assert.Equal(t, http.StatusOK, w.Code)
	summary := body["summary"].(map[string]any)
	assert.Equal(t, 600.0, summary["net_profit"])
	assert.Equal(t, "profit", summary["profit_status"])
}

func TestChatHistoryHandler(t *testing.T) {
	ledger := &mockLedger{}
	ledger.On("ChatHistory", mock.Anything, "user-1", 2).Return([]storage.HistoryMessage{
		{ID: "h1_user", Sender: "user", Text: "hello"},
		{ID: "h1_ai", Sender: "ai", Text: "hi there"},
	}, nil)
	router := newTestServer(ledger, nil).Router()

	w, body := get(t, router, "/api/v1/chat/history?user_id=user-1&limit=2")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2.0, body["total_count"])
	messages := body["messages"].([]any)
	assert.Equal(t, "user", messages[0].(map[string]any)["sender"])
	ledger.AssertExpectations(t)
}

func TestChatHistoryDefaultsAndRejectsLimit(t *testing.T) {
	ledger := &mockLedger{}
	ledger.On("ChatHistory", mock.Anything, "user-1", storage.DefaultHistoryLimit).Return([]storage.HistoryMessage{}, nil)
	router := newTestServer(ledger, nil).Router()

	w, body := get(t, router, "/api/v1/chat/history?user_id=user-1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0.0, body["total_count"])

	w, _ = get(t, router, "/api/v1/chat/history?user_id=user-1&limit=abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	ledger.AssertExpectations(t)
}

func newLoanServer(ledger Ledger) *gin.Engine {
	s := newTestServer(ledger, nil)
	s.loans = loan.NewAdvisor(nil)
	return s.Router()
}

func TestLoanQueryHandler(t *testing.T) {
	ledger := &mockLedger{}
	ledger.On("SaveChatHistory", mock.Anything, "user-1", "I need a loan for my catering business",
		mock.MatchedBy(func(reply string) bool { return len(reply) > 0 }), LoanMessageType, LoanIntent).Return(nil)
	router := newLoanServer(ledger)

	w := postJSON(t, router, "/api/v1/loan/query", LoanQueryRequest{
		UserID: "user-1",
		Query:  "I need a loan for my catering business",
	})

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Success           bool         `json:"success"`
		Response          string       `json:"response"`
		RelevantSchemes   []loan.Match `json:"relevant_schemes"`
		TotalSchemesFound int          `json:"total_schemes_found"`
		Language          string       `json:"language"`
		RequestID         string       `json:"request_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "en", body.Language)
	require.NotEmpty(t, body.RelevantSchemes)
	assert.Equal(t, "annapurna_scheme", body.RelevantSchemes[0].ID)
	assert.Equal(t, len(body.RelevantSchemes), body.TotalSchemesFound)
	assert.Contains(t, body.Response, "Annapurna Scheme")
	assert.NotEmpty(t, body.RequestID)
	ledger.AssertExpectations(t)
}

func TestLoanQueryRequiresQuery(t *testing.T) {
	ledger := &mockLedger{}
	router := newLoanServer(ledger)

	w := postJSON(t, router, "/api/v1/loan/query", LoanQueryRequest{UserID: "user-1", Query: "   "})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	ledger.AssertNotCalled(t, "SaveChatHistory", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLoanQueryWithoutUserSkipsHistory(t *testing.T) {
	ledger := &mockLedger{}
	router := newLoanServer(ledger)

	w := postJSON(t, router, "/api/v1/loan/query", LoanQueryRequest{Query: "मुद्रा लोन", Language: "auto"})

	assert.Equal(t, http.StatusOK, w.Code)
	ledger.AssertNotCalled(t, "SaveChatHistory", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLoanSchemesHandler(t *testing.T) {
	router := newLoanServer(nil)

	w, body := get(t, router, "/api/v1/loan/schemes")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5.0, body["total_schemes"])
	schemes := body["schemes"].([]any)
	assert.Equal(t, "Annapurna Scheme", schemes[0].(map[string]any)["name"])
}

func TestLoanRoutesWithoutAdvisor(t *testing.T) {
	router := newTestServer(nil, nil).Router()

	w, _ := get(t, router, "/api/v1/loan/schemes")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
