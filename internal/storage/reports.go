// reports.go - Read-side views over the ledger for the summary screens

package storage

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RecentLimit is how many of the latest transactions a summary lists.
const RecentLimit = 5

// DefaultHistoryLimit bounds the chat history when the caller gives none.
const DefaultHistoryLimit = 50

// TransactionSummary totals one side of the ledger.
type TransactionSummary struct {
	Total              float64       `json:"total"`
	TotalTransactions  int           `json:"total_transactions"`
	RecentTransactions []Transaction `json:"recent_transactions"`
}

// InventorySummary is the stock position of a user.
type InventorySummary struct {
	TotalItems    int             `json:"total_items"`
	TotalValue    float64         `json:"total_value"`
	LowStockCount int             `json:"low_stock_count"`
	LowStockItems []InventoryItem `json:"low_stock_items"`
	AllItems      []InventoryItem `json:"all_items"`
}

// HistoryMessage is one bubble of the chat history screen.
type HistoryMessage struct {
	ID          string `json:"id"`
	Sender      string `json:"sender"`
	Text        string `json:"text"`
	Timestamp   string `json:"timestamp"`
	MessageType string `json:"message_type"`
	Intent      string `json:"intent,omitempty"`
}

// IncomeSummary totals income and lists the latest entries.
func (l *Ledger) IncomeSummary(ctx context.Context, userID string) (TransactionSummary, error) {
	return l.transactionSummary(ctx, IncomeCollection, userID)
}

// ExpenseSummary totals expenses and lists the latest entries.
func (l *Ledger) ExpenseSummary(ctx context.Context, userID string) (TransactionSummary, error) {
	return l.transactionSummary(ctx, ExpenseCollection, userID)
}

func (l *Ledger) transactionSummary(ctx context.Context, coll, userID string) (TransactionSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := l.collection(coll).Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return TransactionSummary{}, fmt.Errorf("failed to query %s: %w", coll, err)
	}
	defer cursor.Close(ctx)

	var rows []Transaction
	if err := cursor.All(ctx, &rows); err != nil {
		return TransactionSummary{}, fmt.Errorf("failed to read %s: %w", coll, err)
	}

	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(decimal.NewFromFloat(r.Amount))
	}
	recent := rows
	if len(recent) > RecentLimit {
		recent = recent[:RecentLimit]
	}
	if recent == nil {
		recent = []Transaction{}
	}
	return TransactionSummary{
		Total:              total.Round(2).InexactFloat64(),
		TotalTransactions:  len(rows),
		RecentTransactions: recent,
	}, nil
}

// InventorySummary values the user's stock and flags low items.
func (l *Ledger) InventorySummary(ctx context.Context, userID string) (InventorySummary, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "product_name", Value: 1}})
	cursor, err := l.collection(InventoryCollection).Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return InventorySummary{}, fmt.Errorf("failed to query inventory: %w", err)
	}
	defer cursor.Close(ctx)

	items := []InventoryItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return InventorySummary{}, fmt.Errorf("failed to read inventory: %w", err)
	}

	total := decimal.Zero
	low := []InventoryItem{}
	for _, it := range items {
		total = total.Add(decimal.NewFromFloat(it.TotalValue))
		if it.Quantity <= LowStockThreshold {
			low = append(low, it)
		}
	}
	return InventorySummary{
		TotalItems:    len(items),
		TotalValue:    total.Round(2).InexactFloat64(),
		LowStockCount: len(low),
		LowStockItems: low,
		AllItems:      items,
	}, nil
}

// ChatHistory returns the latest exchanges as alternating user and ai
// messages, oldest first.
func (l *Ledger) ChatHistory(ctx context.Context, userID string, limit int) ([]HistoryMessage, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}}).SetLimit(int64(limit))
	cursor, err := l.collection(ChatHistoryCollection).Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat history: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []ChatEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to read chat history: %w", err)
	}

	messages := make([]HistoryMessage, 0, len(entries)*2)
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		ts := e.Date.UTC().Format("2006-01-02T15:04:05Z")
		messages = append(messages,
			HistoryMessage{ID: e.ID + "_user", Sender: "user", Text: e.Message, Timestamp: ts, MessageType: e.MessageType},
			HistoryMessage{ID: e.ID + "_ai", Sender: "ai", Text: e.Response, Timestamp: ts, MessageType: "response", Intent: e.Intent},
		)
	}
	return messages, nil
}
