// commands.go - Ledger side effects of a chat answer: clear commands, recording, summaries

package api

import (
	"context"
	"fmt"
	"strings"

	"github.com/bizsakhi/sakhi_ai_core/internal/common"
	"github.com/bizsakhi/sakhi_ai_core/internal/models"
	"github.com/bizsakhi/sakhi_ai_core/internal/response"
	"github.com/bizsakhi/sakhi_ai_core/internal/storage"
)

type clearCommand string

const (
	clearNone     clearCommand = ""
	clearExpenses clearCommand = "expense_clear"
	clearIncome   clearCommand = "income_clear"
	clearChat     clearCommand = "chat_clear"
	clearAll      clearCommand = "all_clear"
)

// Checked in order: "clear all expenses" clears expenses only.
var clearPhrases = []struct {
	command clearCommand
	phrases []string
}{
	{clearExpenses, []string{
		"clear expense", "delete expense", "remove expense", "reset expense", "make expense 0", "expense to 0",
		"खर्च साफ", "खर्च हटा", "खर्च शून्य",
	}},
	{clearIncome, []string{
		"clear income", "delete income", "remove income", "reset income", "make income 0", "income to 0",
		"आय साफ", "आय हटा", "आय शून्य",
	}},
	{clearChat, []string{
		"clear chat", "delete chat", "remove chat", "reset chat", "clear history", "delete history",
		"चैट साफ", "चैट हटा", "इतिहास साफ",
	}},
	{clearAll, []string{
		"clear all", "delete all", "reset all", "clear everything", "reset everything",
		"सब साफ", "सब हटा", "सब कुछ साफ",
	}},
}

// detectClearCommand recognises the destructive commands that bypass intent
// resolution entirely.
func detectClearCommand(message string) clearCommand {
	lower := strings.ToLower(strings.TrimSpace(message))
	for _, group := range clearPhrases {
		for _, p := range group.phrases {
			if strings.Contains(lower, p) {
				return group.command
			}
		}
	}
	return clearNone
}

// runClear executes cmd against the ledger and returns the composed answer.
func (s *Server) runClear(ctx context.Context, userID string, cmd clearCommand, language string) response.Payload {
	reqCtx := common.FromContext(ctx)

	var (
		run   func(context.Context, string) (storage.Result, error)
		event response.Event
	)
	switch cmd {
	case clearExpenses:
		run, event = s.ledger.ClearExpenses, response.EventExpensesCleared
	case clearIncome:
		run, event = s.ledger.ClearIncome, response.EventIncomeCleared
	case clearChat:
		run, event = s.ledger.ClearChatHistory, response.EventChatCleared
	default:
		run, event = s.ledger.ClearAll, response.EventAllCleared
	}

	reqCtx.StartStep(string(cmd))
	res, err := run(ctx, userID)
	if err != nil {
		reqCtx.EndStep("failed", nil, err)
		reqCtx.LogError("Clear command %s failed: %v", cmd, err)
		p := s.composer.Compose(models.IntentResult{
			Intent:            models.IntentConversational,
			Action:            "clear",
			Data:              models.GenericData{"command": string(cmd)},
			ResponseMessage:   s.composer.Message(response.EventRequestFailed, language),
			IsBusinessRelated: true,
		}, language)
		p.Success = false
		return p
	}
	reqCtx.EndStep("success", nil, nil)
	reqCtx.LogInfo("%s", res.Message)

	data := models.GenericData{"command": string(cmd)}
	for k, v := range res.Data {
		data[k] = v
	}
	return s.composer.Compose(models.IntentResult{
		Intent:            models.IntentConversational,
		Action:            "clear",
		Confidence:        1,
		Data:              data,
		ResponseMessage:   s.composer.Message(event, language),
		IsBusinessRelated: true,
	}, language)
}

// ActionRecordFailed replaces "add" on a transaction the ledger did not save.
const ActionRecordFailed = "record_failed"

// record writes a business-mode transaction answer to the ledger. A failed
// write replaces the success message so the user is not told it was saved,
// and the error is returned so the payload can be marked failed.
func (s *Server) record(ctx context.Context, userID string, res models.IntentResult, source, language string) (models.IntentResult, error) {
	td, ok := res.Transaction()
	if !ok || res.Action != "add" || td.Amount <= 0 {
		return res, nil
	}
	reqCtx := common.FromContext(ctx)

	var err error
	switch res.Intent {
	case models.IntentIncome:
		_, err = s.ledger.AddIncome(ctx, userID, td.Amount, td.Description, td.Category, source)
	case models.IntentExpense:
		_, err = s.ledger.AddExpense(ctx, userID, td.Amount, td.Description, td.Category, source)
	case models.IntentInventory:
		name := td.ItemName
		if name == "" {
			name = td.Description
		}
		qty := models.ClampQuantity(td.Quantity)
		_, err = s.ledger.AddInventoryItem(ctx, userID, name, float64(qty), "", perUnit(td.Amount, float64(qty)))
	default:
		return res, nil
	}

	if err != nil {
		reqCtx.LogError("Failed to record %s of ₹%s: %v", res.Intent, models.FormatAmount(td.Amount), err)
		res.Action = ActionRecordFailed
		res.ResponseMessage = s.composer.Message(response.EventRequestFailed, language)
		return res, err
	}
	reqCtx.LogInfo("Recorded %s of ₹%s", res.Intent, models.FormatAmount(td.Amount))
	return res, nil
}

// summarize answers a query with the user's profit and loss position.
func (s *Server) summarize(ctx context.Context, userID string, res models.IntentResult, language string) models.IntentResult {
	summary, err := s.ledger.ProfitLossSummary(ctx, userID)
	if err != nil {
		common.FromContext(ctx).LogWarning("Profit and loss summary unavailable: %v", err)
		res.ResponseMessage = s.composer.Message(response.EventSummaryUnavailable, language)
		return res
	}
	if summary.IncomeCount == 0 && summary.ExpenseCount == 0 {
		res.ResponseMessage = s.composer.Message(response.EventSummaryUnavailable, language)
		return res
	}

	res.Data = models.GenericData{
		"total_income":             summary.TotalIncome,
		"total_expenses":           summary.TotalExpenses,
		"net_profit":               summary.NetProfit,
		"profit_margin_percentage": summary.ProfitMargin,
		"profit_status":            summary.Status,
	}
	res.ResponseMessage = s.composer.ProfitLoss(summary.TotalIncome, summary.TotalExpenses, summary.NetProfit, summary.ProfitMargin, language)
	return res
}

// remember saves one exchange. Failures are logged and otherwise ignored.
func (s *Server) remember(ctx context.Context, userID, message string, p response.Payload, messageType string) {
	s.saveHistory(ctx, userID, message, p.Message, messageType, string(p.Intent))
}

func (s *Server) saveHistory(ctx context.Context, userID, message, reply, messageType, intent string) {
	if s.ledger == nil || userID == "" {
		return
	}
	if err := s.ledger.SaveChatHistory(ctx, userID, message, reply, messageType, intent); err != nil {
		common.FromContext(ctx).LogWarning("Failed to save chat history: %v", err)
	}
}

func itemDescription(name string, quantity float64) string {
	if quantity > 1 {
		return fmt.Sprintf("%sx %s", formatQuantity(quantity), name)
	}
	return name
}
