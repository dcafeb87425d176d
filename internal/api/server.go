// server.go - HTTP boundary: dependencies, router and routes

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/bizsakhi/sakhi_ai_core/internal/loan"
	"github.com/bizsakhi/sakhi_ai_core/internal/models"
	"github.com/bizsakhi/sakhi_ai_core/internal/receipt"
	"github.com/bizsakhi/sakhi_ai_core/internal/response"
	"github.com/bizsakhi/sakhi_ai_core/internal/speech"
	"github.com/bizsakhi/sakhi_ai_core/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Default outer timeouts, used when Config leaves them zero.
const (
	DefaultTextTimeout    = 15 * time.Second
	DefaultReceiptTimeout = 45 * time.Second
	MaxUploadBytes        = 10 << 20
)

// IntentResolver is the chat side of the core.
type IntentResolver interface {
	Resolve(ctx context.Context, msg models.Message) models.IntentResult
	Fallback(msg models.Message) models.IntentResult
}

// ReceiptExtractor is the receipt side of the core.
type ReceiptExtractor interface {
	Extract(ctx context.Context, ocrText, language string) models.IntentResult
	ExtractImage(ctx context.Context, imageData []byte, mimeType, language string) models.IntentResult
	Fallback(ocrText, language string) models.IntentResult
	Unreadable(language string) models.IntentResult
	FromStructured(r receipt.StructuredReceipt, language string) models.IntentResult
}

// Ledger is where confirmed money and stock movements are written. The core
// never writes; only this layer does.
type Ledger interface {
	AddIncome(ctx context.Context, userID string, amount float64, description, category, source string) (storage.Result, error)
	AddExpense(ctx context.Context, userID string, amount float64, description, category, source string) (storage.Result, error)
	AddInventoryItem(ctx context.Context, userID, productName string, quantity float64, unit string, costPerUnit float64) (storage.Result, error)
	SaveChatHistory(ctx context.Context, userID, message, response, messageType, intent string) error
	ProfitLossSummary(ctx context.Context, userID string) (storage.Summary, error)
	ClearExpenses(ctx context.Context, userID string) (storage.Result, error)
	ClearIncome(ctx context.Context, userID string) (storage.Result, error)
	ClearChatHistory(ctx context.Context, userID string) (storage.Result, error)
	ClearAll(ctx context.Context, userID string) (storage.Result, error)
	IncomeSummary(ctx context.Context, userID string) (storage.TransactionSummary, error)
	ExpenseSummary(ctx context.Context, userID string) (storage.TransactionSummary, error)
	InventorySummary(ctx context.Context, userID string) (storage.InventorySummary, error)
	ChatHistory(ctx context.Context, userID string, limit int) ([]storage.HistoryMessage, error)
}

// LoanAdvisor answers questions about government loan schemes.
type LoanAdvisor interface {
	Query(ctx context.Context, question, lang string) loan.Answer
	Schemes() []loan.Scheme
}

// Config wires the server. Transcriber may be nil, which disables /voice.
// Loans may be nil, which disables the /loan routes.
type Config struct {
	Resolver       IntentResolver
	Extractor      ReceiptExtractor
	Ledger         Ledger
	Transcriber    speech.Transcriber
	Loans          LoanAdvisor
	Composer       *response.Composer
	TextTimeout    time.Duration
	ReceiptTimeout time.Duration
	AllowedOrigins []string
}

// Server holds the handlers' dependencies.
type Server struct {
	resolver       IntentResolver
	extractor      ReceiptExtractor
	ledger         Ledger
	transcriber    speech.Transcriber
	loans          LoanAdvisor
	composer       *response.Composer
	textTimeout    time.Duration
	receiptTimeout time.Duration
	allowedOrigins []string
}

// NewServer creates a server from cfg.
func NewServer(cfg Config) *Server {
	s := &Server{
		resolver:       cfg.Resolver,
		extractor:      cfg.Extractor,
		ledger:         cfg.Ledger,
		transcriber:    cfg.Transcriber,
		loans:          cfg.Loans,
		composer:       cfg.Composer,
		textTimeout:    cfg.TextTimeout,
		receiptTimeout: cfg.ReceiptTimeout,
		allowedOrigins: cfg.AllowedOrigins,
	}
	if s.composer == nil {
		s.composer = response.NewComposer()
	}
	if s.textTimeout <= 0 {
		s.textTimeout = DefaultTextTimeout
	}
	if s.receiptTimeout <= 0 {
		s.receiptTimeout = DefaultReceiptTimeout
	}
	return s
}

// Router builds the gin engine with every route.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestMetrics(), corsMiddleware(s.allowedOrigins))

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	router.GET("/health", s.HealthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/chat", s.ChatHandler)
		v1.POST("/voice", s.VoiceHandler)
		v1.POST("/receipt/text", s.ReceiptTextHandler)
		v1.POST("/receipt/image", s.ReceiptImageHandler)
		v1.POST("/receipt/structured", s.StructuredReceiptHandler)
		v1.POST("/confirm-items", s.ConfirmItemsHandler)
		v1.GET("/chat/history", s.ChatHistoryHandler)
		v1.GET("/summary/income", s.IncomeSummaryHandler)
		v1.GET("/summary/expense", s.ExpenseSummaryHandler)
		v1.GET("/summary/inventory", s.InventorySummaryHandler)
		v1.GET("/summary/profit-loss", s.ProfitLossHandler)
		v1.POST("/loan/query", s.LoanQueryHandler)
		v1.GET("/loan/schemes", s.LoanSchemesHandler)
	}
	return router
}

// HealthHandler reports liveness and which optional features are wired.
func (s *Server) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "sakhi-ai-core",
		"version": "1.0.0",
		"features": gin.H{
			"ledger": s.ledger != nil,
			"voice":  s.transcriber != nil,
			"loans":  s.loans != nil,
		},
	})
}
