// main.go - The entry point and router setup.

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bizsakhi/sakhi_ai_core/configs"
	"github.com/bizsakhi/sakhi_ai_core/internal/ai"
	"github.com/bizsakhi/sakhi_ai_core/internal/api"
	"github.com/bizsakhi/sakhi_ai_core/internal/common"
	"github.com/bizsakhi/sakhi_ai_core/internal/intent"
	"github.com/bizsakhi/sakhi_ai_core/internal/loan"
	"github.com/bizsakhi/sakhi_ai_core/internal/processor"
	"github.com/bizsakhi/sakhi_ai_core/internal/receipt"
	"github.com/bizsakhi/sakhi_ai_core/internal/response"
	"github.com/bizsakhi/sakhi_ai_core/internal/speech"
	"github.com/bizsakhi/sakhi_ai_core/internal/storage"
	"github.com/gin-gonic/gin"
)

func main() {
	// Step 0: Load configuration from environment variables
	configs.LoadConfig()
	log := common.SetupLogger(configs.LOG_LEVEL, configs.LOG_FORMAT)

	if ginMode := os.Getenv("GIN_MODE"); ginMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Step 1: Ledger
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, err := storage.Connect(ctx, configs.MONGO_URI)
	cancel()
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer storage.Disconnect(client)

	ledger := storage.NewLedger(client.Database(configs.MONGO_DB_NAME))
	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	if err := ledger.EnsureIndexes(ctx); err != nil {
		log.Warnf("⚠️  Failed to create ledger indexes: %v", err)
	}
	cancel()

	// Step 2: AI core
	composer := response.NewComposer()
	gateway := ai.BuildGateway()

	var completer interface {
		intent.Completer
		receipt.Completer
		loan.Completer
	}
	if gateway.Available() {
		completer = gateway
	}

	var pre receipt.Preprocessor
	if configs.ENABLE_IMAGE_PREPROCESSING {
		pre = processor.NewImagePreprocessor(configs.MAX_IMAGE_DIMENSION)
	}
	extractor := receipt.NewExtractor(completer, composer).WithImageSupport(ai.BuildOCR(), pre)

	var transcriber speech.Transcriber
	if configs.GROQ_API_KEY != "" {
		transcriber = speech.NewWhisperTranscriber(configs.GROQ_API_KEY, configs.SPEECH_MODEL)
	} else {
		log.Warn("⚠️  GROQ_API_KEY not set, voice messages are disabled")
	}

	// Step 3: HTTP server
	server := api.NewServer(api.Config{
		Resolver:       intent.NewResolver(completer, composer),
		Extractor:      extractor,
		Ledger:         ledger,
		Transcriber:    transcriber,
		Loans:          loan.NewAdvisor(completer),
		Composer:       composer,
		TextTimeout:    time.Duration(configs.TEXT_REQUEST_TIMEOUT) * time.Second,
		ReceiptTimeout: time.Duration(configs.RECEIPT_REQUEST_TIMEOUT) * time.Second,
		AllowedOrigins: strings.Split(configs.ALLOWED_ORIGINS, ","),
	})

	srv := &http.Server{
		Addr:           ":" + configs.PORT,
		Handler:        server.Router(),
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   time.Duration(configs.RECEIPT_REQUEST_TIMEOUT+15) * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		log.Infof("🚀 Starting server on :%s", configs.PORT)
		log.Info("API Endpoints:")
		for _, route := range []string{
			"POST /api/v1/chat",
			"POST /api/v1/voice",
			"POST /api/v1/receipt/text",
			"POST /api/v1/receipt/image",
			"POST /api/v1/receipt/structured",
			"POST /api/v1/confirm-items",
			"GET  /api/v1/chat/history",
			"GET  /api/v1/summary/{income,expense,inventory,profit-loss}",
			"POST /api/v1/loan/query",
			"GET  /api/v1/loan/schemes",
			"GET  /health",
			"GET  /metrics",
		} {
			log.Infof("  %s", route)
		}

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Setup graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}
