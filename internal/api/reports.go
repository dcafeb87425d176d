// reports.go - Summary, chat history and loan scheme handlers

package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/bizsakhi/sakhi_ai_core/internal/common"
	"github.com/bizsakhi/sakhi_ai_core/internal/loan"
	"github.com/bizsakhi/sakhi_ai_core/internal/storage"
	"github.com/gin-gonic/gin"
)

// History entry labels for loan questions.
const (
	LoanMessageType = "loan_query"
	LoanIntent      = "loan_inquiry"
)

// LoanQueryRequest is the body of POST /api/v1/loan/query. UserID is
// optional; without it the exchange is not kept in chat history.
type LoanQueryRequest struct {
	UserID   string `json:"user_id"`
	Query    string `json:"query"`
	Language string `json:"language"`
}

type loanQueryResponse struct {
	Success bool `json:"success"`
	loan.Answer
	RequestID string `json:"request_id"`
}

// readUser checks the ledger and the user_id query parameter shared by the
// read endpoints, answering the request itself when either is missing.
func (s *Server) readUser(c *gin.Context) (string, bool) {
	if s.ledger == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "ledger is not configured"})
		return "", false
	}
	userID := strings.TrimSpace(c.Query("user_id"))
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "user_id is required"})
		return "", false
	}
	return userID, true
}

func readFailed(ctx context.Context, c *gin.Context, what string, err error) {
	common.FromContext(ctx).LogError("Failed to load %s: %v", what, err)
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to load " + what})
}

// IncomeSummaryHandler handles GET /api/v1/summary/income.
func (s *Server) IncomeSummaryHandler(c *gin.Context) {
	s.transactionSummary(c, "income", "total_income", s.ledgerIncome)
}

// ExpenseSummaryHandler handles GET /api/v1/summary/expense.
func (s *Server) ExpenseSummaryHandler(c *gin.Context) {
	s.transactionSummary(c, "expenses", "total_expenses", s.ledgerExpenses)
}

func (s *Server) ledgerIncome(ctx context.Context, userID string) (storage.TransactionSummary, error) {
	return s.ledger.IncomeSummary(ctx, userID)
}

func (s *Server) ledgerExpenses(ctx context.Context, userID string) (storage.TransactionSummary, error) {
	return s.ledger.ExpenseSummary(ctx, userID)
}

func (s *Server) transactionSummary(c *gin.Context, what, totalKey string, load func(context.Context, string) (storage.TransactionSummary, error)) {
	userID, ok := s.readUser(c)
	if !ok {
		return
	}
	ctx, _ := begin(c, userID)

	summary, err := load(ctx, userID)
	if err != nil {
		readFailed(ctx, c, what, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":             true,
		totalKey:              summary.Total,
		"total_transactions":  summary.TotalTransactions,
		"recent_transactions": summary.RecentTransactions,
	})
}

// InventorySummaryHandler handles GET /api/v1/summary/inventory.
func (s *Server) InventorySummaryHandler(c *gin.Context) {
	userID, ok := s.readUser(c)
	if !ok {
		return
	}
	ctx, _ := begin(c, userID)

	summary, err := s.ledger.InventorySummary(ctx, userID)
	if err != nil {
		readFailed(ctx, c, "inventory", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"total_items":     summary.TotalItems,
		"total_value":     summary.TotalValue,
		"low_stock_count": summary.LowStockCount,
		"low_stock_items": summary.LowStockItems,
		"all_items":       summary.AllItems,
	})
}

// ProfitLossHandler handles GET /api/v1/summary/profit-loss.
func (s *Server) ProfitLossHandler(c *gin.Context) {
	userID, ok := s.readUser(c)
	if !ok {
		return
	}
	ctx, _ := begin(c, userID)

	summary, err := s.ledger.ProfitLossSummary(ctx, userID)
	if err != nil {
		readFailed(ctx, c, "profit and loss", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "summary": summary})
}

// ChatHistoryHandler handles GET /api/v1/chat/history?user_id=&limit=.
func (s *Server) ChatHistoryHandler(c *gin.Context) {
	userID, ok := s.readUser(c)
	if !ok {
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(storage.DefaultHistoryLimit)))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "limit must be a positive number"})
		return
	}
	ctx, _ := begin(c, userID)

	messages, err := s.ledger.ChatHistory(ctx, userID, limit)
	if err != nil {
		readFailed(ctx, c, "chat history", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"messages":    messages,
		"total_count": len(messages),
	})
}

// LoanQueryHandler handles POST /api/v1/loan/query.
func (s *Server) LoanQueryHandler(c *gin.Context) {
	if s.loans == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "loan advisor is not configured"})
		return
	}
	var req LoanQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success":  false,
			"error":    "Query is required",
			"expected": "JSON with query and optional user_id and language",
		})
		return
	}

	ctx, reqCtx := begin(c, req.UserID)
	reqCtx.LogInfo("🏦 Loan query received | language: %s", req.Language)

	queryCtx, cancel := context.WithTimeout(ctx, s.textTimeout)
	ans := s.loans.Query(queryCtx, req.Query, req.Language)
	cancel()

	s.saveHistory(ctx, req.UserID, req.Query, ans.Response, LoanMessageType, LoanIntent)
	c.JSON(http.StatusOK, loanQueryResponse{Success: true, Answer: ans, RequestID: reqCtx.RequestID})
}

// LoanSchemesHandler handles GET /api/v1/loan/schemes.
func (s *Server) LoanSchemesHandler(c *gin.Context) {
	if s.loans == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "loan advisor is not configured"})
		return
	}
	schemes := s.loans.Schemes()
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"schemes":       schemes,
		"total_schemes": len(schemes),
	})
}
