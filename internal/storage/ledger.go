// ledger.go - Income, expense, inventory and chat history records

package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bizsakhi/sakhi_ai_core/internal/common"
	"github.com/bizsakhi/sakhi_ai_core/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// LowStockThreshold marks inventory that needs restocking.
const LowStockThreshold = 5.0

// Result is what every ledger write reports back to the boundary.
type Result struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// Transaction is one income or expense record.
type Transaction struct {
	ID          string    `bson:"_id" json:"id"`
	UserID      string    `bson:"user_id" json:"user_id"`
	Amount      float64   `bson:"amount" json:"amount"`
	Description string    `bson:"description" json:"description"`
	Category    string    `bson:"category" json:"category"`
	Source      string    `bson:"source" json:"source"`
	Date        time.Time `bson:"date" json:"date"`
}

// InventoryItem is the running stock of one product.
type InventoryItem struct {
	ID          string    `bson:"_id" json:"id"`
	UserID      string    `bson:"user_id" json:"user_id"`
	ProductName string    `bson:"product_name" json:"product_name"`
	Quantity    float64   `bson:"quantity" json:"quantity"`
	Unit        string    `bson:"unit" json:"unit"`
	CostPerUnit float64   `bson:"cost_per_unit" json:"cost_per_unit"`
	TotalValue  float64   `bson:"total_value" json:"total_value"`
	IsLowStock  bool      `bson:"is_low_stock" json:"is_low_stock"`
	LastUpdated time.Time `bson:"last_updated" json:"last_updated"`
}

// ChatEntry is one exchange kept for the chat history screen.
type ChatEntry struct {
	ID          string    `bson:"_id" json:"id"`
	UserID      string    `bson:"user_id" json:"user_id"`
	Message     string    `bson:"message" json:"message"`
	Response    string    `bson:"response" json:"response"`
	MessageType string    `bson:"message_type" json:"message_type"`
	Intent      string    `bson:"intent" json:"intent"`
	Date        time.Time `bson:"date" json:"date"`
}

// AddIncome records an income entry.
func (l *Ledger) AddIncome(ctx context.Context, userID string, amount float64, description, category, source string) (Result, error) {
	return l.addTransaction(ctx, IncomeCollection, "income", userID, amount, description, category, source)
}

// AddExpense records an expense entry.
func (l *Ledger) AddExpense(ctx context.Context, userID string, amount float64, description, category, source string) (Result, error) {
	return l.addTransaction(ctx, ExpenseCollection, "expense", userID, amount, description, category, source)
}

func (l *Ledger) addTransaction(ctx context.Context, coll, kind, userID string, amount float64, description, category, source string) (Result, error) {
	if amount <= 0 {
		return Result{Message: fmt.Sprintf("%s amount must be positive", kind)}, fmt.Errorf("invalid %s amount %v", kind, amount)
	}
	if strings.TrimSpace(category) == "" {
		category = "General"
	}
	if strings.TrimSpace(description) == "" {
		description = fmt.Sprintf("%s - ₹%s", category, models.FormatAmount(amount))
	}
	if source == "" {
		source = "text"
	}

	tx := Transaction{
		ID:          uuid.New().String(),
		UserID:      userID,
		Amount:      models.ClampAmount(amount),
		Description: description,
		Category:    category,
		Source:      source,
		Date:        l.now(),
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()
	if _, err := l.collection(coll).InsertOne(ctx, tx); err != nil {
		return Result{Message: fmt.Sprintf("failed to add %s", kind)}, fmt.Errorf("failed to insert %s: %w", kind, err)
	}

	common.FromContext(ctx).LogInfo("%s added: ₹%s - %s", kind, models.FormatAmount(tx.Amount), tx.Description)
	return Result{
		Success: true,
		Message: fmt.Sprintf("✅ %s of ₹%s added: %s", titleCase(kind), models.FormatAmount(tx.Amount), tx.Description),
		Data: map[string]any{
			"id":          tx.ID,
			"amount":      tx.Amount,
			"description": tx.Description,
			"category":    tx.Category,
			"date":        tx.Date,
		},
	}, nil
}

// AddInventoryItem adds stock for a product, merging with an existing record
// of the same name. A non-positive costPerUnit keeps the previous cost.
func (l *Ledger) AddInventoryItem(ctx context.Context, userID, productName string, quantity float64, unit string, costPerUnit float64) (Result, error) {
	productName = strings.TrimSpace(productName)
	if productName == "" || quantity <= 0 {
		return Result{Message: "invalid inventory item"}, fmt.Errorf("invalid inventory item %q x %v", productName, quantity)
	}
	if unit == "" {
		unit = "pieces"
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()
	coll := l.collection(InventoryCollection)
	filter := bson.M{"user_id": userID, "product_name": productName}

	var existing InventoryItem
	err := coll.FindOne(ctx, filter).Decode(&existing)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		item := InventoryItem{
			ID:          uuid.New().String(),
			UserID:      userID,
			ProductName: productName,
			Quantity:    quantity,
			Unit:        unit,
			CostPerUnit: costPerUnit,
			TotalValue:  stockValue(quantity, costPerUnit),
			IsLowStock:  quantity <= LowStockThreshold,
			LastUpdated: l.now(),
		}
		if _, err := coll.InsertOne(ctx, item); err != nil {
			return Result{Message: "failed to add inventory"}, fmt.Errorf("failed to insert inventory: %w", err)
		}
		return inventoryResult(fmt.Sprintf("✅ %s added to stock: %s %s", productName, formatQty(quantity), unit), item), nil

	case err != nil:
		return Result{Message: "failed to add inventory"}, fmt.Errorf("failed to query inventory: %w", err)
	}

	existing.Quantity += quantity
	if costPerUnit > 0 {
		existing.CostPerUnit = costPerUnit
	}
	existing.TotalValue = stockValue(existing.Quantity, existing.CostPerUnit)
	existing.IsLowStock = existing.Quantity <= LowStockThreshold
	existing.LastUpdated = l.now()

	update := bson.M{"$set": bson.M{
		"quantity":      existing.Quantity,
		"cost_per_unit": existing.CostPerUnit,
		"total_value":   existing.TotalValue,
		"is_low_stock":  existing.IsLowStock,
		"last_updated":  existing.LastUpdated,
	}}
	if _, err := coll.UpdateByID(ctx, existing.ID, update); err != nil {
		return Result{Message: "failed to update inventory"}, fmt.Errorf("failed to update inventory: %w", err)
	}
	return inventoryResult(fmt.Sprintf("✅ %s stock updated: %s %s", productName, formatQty(existing.Quantity), existing.Unit), existing), nil
}

// SaveChatHistory stores one exchange. Callers treat failures as best effort.
func (l *Ledger) SaveChatHistory(ctx context.Context, userID, message, response, messageType, intent string) error {
	if messageType == "" {
		messageType = "text"
	}
	entry := ChatEntry{
		ID:          uuid.New().String(),
		UserID:      userID,
		Message:     message,
		Response:    response,
		MessageType: messageType,
		Intent:      intent,
		Date:        l.now(),
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()
	if _, err := l.collection(ChatHistoryCollection).InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to save chat history: %w", err)
	}
	return nil
}

// ClearExpenses deletes every expense of the user.
func (l *Ledger) ClearExpenses(ctx context.Context, userID string) (Result, error) {
	return l.clear(ctx, ExpenseCollection, "expenses", userID)
}

// ClearIncome deletes every income record of the user.
func (l *Ledger) ClearIncome(ctx context.Context, userID string) (Result, error) {
	return l.clear(ctx, IncomeCollection, "income records", userID)
}

// ClearChatHistory deletes the user's chat history.
func (l *Ledger) ClearChatHistory(ctx context.Context, userID string) (Result, error) {
	return l.clear(ctx, ChatHistoryCollection, "chat messages", userID)
}

// ClearAll deletes the user's expenses, income, inventory and chat history.
func (l *Ledger) ClearAll(ctx context.Context, userID string) (Result, error) {
	counts := make(map[string]any, 4)
	order := []struct{ coll, label string }{
		{ExpenseCollection, "expenses"},
		{IncomeCollection, "income"},
		{InventoryCollection, "inventory"},
		{ChatHistoryCollection, "chat messages"},
	}
	parts := make([]string, 0, len(order))
	for _, o := range order {
		n, err := l.deleteAll(ctx, o.coll, userID)
		if err != nil {
			return Result{Message: "failed to clear data", Data: counts}, err
		}
		counts[o.coll] = n
		parts = append(parts, fmt.Sprintf("%d %s", n, o.label))
	}
	return Result{
		Success: true,
		Message: "✅ Successfully cleared all data: " + strings.Join(parts, ", "),
		Data:    counts,
	}, nil
}

func (l *Ledger) clear(ctx context.Context, coll, label, userID string) (Result, error) {
	n, err := l.deleteAll(ctx, coll, userID)
	if err != nil {
		return Result{Message: "failed to clear " + label}, err
	}
	return Result{
		Success: true,
		Message: fmt.Sprintf("✅ Successfully cleared %d %s", n, label),
		Data:    map[string]any{"deleted": n},
	}, nil
}

func (l *Ledger) deleteAll(ctx context.Context, coll, userID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()
	res, err := l.collection(coll).DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("failed to clear %s: %w", coll, err)
	}
	return res.DeletedCount, nil
}

func inventoryResult(message string, item InventoryItem) Result {
	return Result{
		Success: true,
		Message: message,
		Data: map[string]any{
			"id":           item.ID,
			"product_name": item.ProductName,
			"quantity":     item.Quantity,
			"unit":         item.Unit,
			"total_value":  item.TotalValue,
			"is_low_stock": item.IsLowStock,
		},
	}
}

func stockValue(quantity, costPerUnit float64) float64 {
	return decimal.NewFromFloat(quantity).Mul(decimal.NewFromFloat(costPerUnit)).Round(2).InexactFloat64()
}

func formatQty(q float64) string {
	return decimal.NewFromFloat(q).String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
