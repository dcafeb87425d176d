// handlers.go - Chat and voice handlers

package api

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/bizsakhi/sakhi_ai_core/internal/models"
	"github.com/bizsakhi/sakhi_ai_core/internal/response"
	"github.com/gin-gonic/gin"
)

// ChatRequest is the body of POST /api/v1/chat.
type ChatRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	Message  string `json:"message" binding:"required"`
	Language string `json:"language"`
	ChatMode string `json:"chat_mode"`
}

// ChatHandler handles POST /api/v1/chat.
func (s *Server) ChatHandler(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success":  false,
			"error":    "Invalid request format",
			"details":  err.Error(),
			"expected": "JSON with user_id and message",
		})
		return
	}

	ctx, reqCtx := begin(c, req.UserID)
	reqCtx.LogInfo("💬 Chat message received | mode: %s | language: %s", req.ChatMode, req.Language)

	msg := models.Message{
		Text:     req.Message,
		Language: req.Language,
		ChatMode: models.ParseChatMode(req.ChatMode),
	}
	payload := s.converse(ctx, req.UserID, msg, "text")
	c.JSON(http.StatusOK, gin.H{
		"payload":    payload,
		"request_id": reqCtx.RequestID,
	})
}

// VoiceHandler handles POST /api/v1/voice: multipart "audio" plus user_id,
// language and chat_mode form fields.
func (s *Server) VoiceHandler(c *gin.Context) {
	if s.transcriber == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error":   "speech recognition is not configured",
		})
		return
	}

	userID := c.PostForm("user_id")
	language := c.PostForm("language")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "user_id is required"})
		return
	}
	audio, filename, err := readUpload(c, "audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "audio file is required", "details": err.Error()})
		return
	}

	ctx, reqCtx := begin(c, userID)
	reqCtx.StartStep("speech_to_text")
	transcript, err := s.transcriber.Transcribe(ctx, audio, filename, language)
	if err == nil && strings.TrimSpace(transcript.Text) == "" {
		err = errEmptyTranscript
	}
	if err != nil {
		reqCtx.EndStep("failed", nil, err)
		reqCtx.LogError("Transcription failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"success":    false,
			"message":    s.composer.Message(response.EventRequestFailed, language),
			"request_id": reqCtx.RequestID,
		})
		return
	}
	reqCtx.EndStep("success", nil, nil)
	reqCtx.LogInfo("🎤 Transcribed %d chars (confidence %.2f)", len(transcript.Text), transcript.Confidence)

	if language == "" {
		language = transcript.Language
	}
	msg := models.Message{
		Text:     transcript.Text,
		Language: language,
		ChatMode: models.ParseChatMode(c.PostForm("chat_mode")),
	}
	payload := s.converse(ctx, userID, msg, "voice")
	c.JSON(http.StatusOK, gin.H{
		"payload":       payload,
		"transcription": transcript,
		"request_id":    reqCtx.RequestID,
	})
}

// converse is the shared chat flow: clear commands, resolution under the
// outer timeout, ledger side effects and chat history.
func (s *Server) converse(ctx context.Context, userID string, msg models.Message, source string) response.Payload {
	if s.ledger != nil {
		if cmd := detectClearCommand(msg.Text); cmd != clearNone {
			return s.runClear(ctx, userID, cmd, msg.Language)
		}
	}

	res := within(ctx, s.textTimeout,
		func(ctx context.Context) models.IntentResult { return s.resolver.Resolve(ctx, msg) },
		func() models.IntentResult { return s.resolver.Fallback(msg) },
	)

	var writeErr error
	if s.ledger != nil {
		switch {
		case res.Intent.IsTransaction() && msg.ChatMode == models.ChatModeBusiness:
			res, writeErr = s.record(ctx, userID, res, source, msg.Language)
		case res.Intent == models.IntentQuery:
			res = s.summarize(ctx, userID, res, msg.Language)
		}
	}

	payload := s.composer.Compose(res, msg.Language)
	if writeErr != nil {
		payload.Success = false
	}
	s.remember(ctx, userID, msg.Text, payload, source)
	return payload
}

// readUpload reads a multipart file field, capped at MaxUploadBytes.
func readUpload(c *gin.Context, field string) ([]byte, string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, "", err
	}
	if fh.Size > MaxUploadBytes {
		return nil, "", errUploadTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxUploadBytes+1))
	if err != nil {
		return nil, "", err
	}
	if len(data) > MaxUploadBytes {
		return nil, "", errUploadTooLarge
	}
	return data, fh.Filename, nil
}
