// mongodb.go - MongoDB connection and the ledger collections

package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/bizsakhi/sakhi_ai_core/internal/common"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	IncomeCollection      = "income"
	ExpenseCollection     = "expenses"
	InventoryCollection   = "inventory"
	ChatHistoryCollection = "chat_history"
)

// DefaultOpTimeout bounds every single ledger operation.
const DefaultOpTimeout = 5 * time.Second

// Connect opens a client, verifies it with a ping and returns it. The caller
// owns the client and closes it with Disconnect.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	common.GetLogger().Info("✅ Connected to MongoDB successfully!")
	return client, nil
}

// Disconnect closes the client, logging instead of failing.
func Disconnect(client *mongo.Client) {
	if client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		common.GetLogger().WithError(err).Warn("MongoDB disconnect failed")
		return
	}
	common.GetLogger().Info("MongoDB connection closed")
}

// Ledger persists confirmed bookkeeping entries and chat history. Every
// method is scoped to one user.
type Ledger struct {
	db      *mongo.Database
	timeout time.Duration
	now     func() time.Time
}

// NewLedger wraps db.
func NewLedger(db *mongo.Database) *Ledger {
	return &Ledger{
		db:      db,
		timeout: DefaultOpTimeout,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// EnsureIndexes creates the per-user lookup indexes. Safe to call repeatedly.
func (l *Ledger) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	byUser := mongo.IndexModel{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: -1}}}
	for _, name := range []string{IncomeCollection, ExpenseCollection, ChatHistoryCollection} {
		if _, err := l.db.Collection(name).Indexes().CreateOne(ctx, byUser); err != nil {
			return fmt.Errorf("failed to index %s: %w", name, err)
		}
	}

	product := mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "product_name", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := l.db.Collection(InventoryCollection).Indexes().CreateOne(ctx, product); err != nil {
		return fmt.Errorf("failed to index %s: %w", InventoryCollection, err)
	}
	return nil
}

func (l *Ledger) collection(name string) *mongo.Collection {
	return l.db.Collection(name)
}
