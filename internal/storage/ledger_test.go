package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

var fixedNow = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func newTestLedger(mt *mtest.T) *Ledger {
	l := NewLedger(mt.DB)
	l.now = func() time.Time { return fixedNow }
	return l
}

func TestLedgerTransactions(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("add income", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		l := newTestLedger(mt)

		res, err := l.AddIncome(context.Background(), "user-1", 10000, "", "sales", "")
		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.Equal(t, "✅ Income of ₹10000.0 added: sales - ₹10000.0", res.Message)
		assert.Equal(t, 10000.0, res.Data["amount"])
		assert.NotEmpty(t, res.Data["id"])

		sent := mt.GetStartedEvent()
		require.NotNil(t, sent)
		assert.Equal(t, "insert", sent.CommandName)
	})

	mt.Run("add expense defaults category", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		l := newTestLedger(mt)

		res, err := l.AddExpense(context.Background(), "user-1", 2000, "Shop rent", "", "voice")
		require.NoError(t, err)
		assert.Equal(t, "General", res.Data["category"])
		assert.Equal(t, "✅ Expense of ₹2000.0 added: Shop rent", res.Message)
	})

	mt.Run("rejects non-positive amounts without a write", func(mt *mtest.T) {
		l := newTestLedger(mt)

		res, err := l.AddExpense(context.Background(), "user-1", 0, "nothing", "", "")
		assert.Error(t, err)
		assert.False(t, res.Success)
		assert.Nil(t, mt.GetStartedEvent())
	})

	mt.Run("write error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key error"}))
		l := newTestLedger(mt)

		res, err := l.AddIncome(context.Background(), "user-1", 500, "tea", "sales", "text")
		assert.Error(t, err)
		assert.False(t, res.Success)
		assert.NotEmpty(t, res.Message)
	})
}

func TestLedgerInventory(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("new product", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "sakhi.inventory", mtest.FirstBatch),
			mtest.CreateSuccessResponse(),
		)
		l := newTestLedger(mt)

		res, err := l.AddInventoryItem(context.Background(), "user-1", "Samsung Galaxy", 5, "", 25000)
		require.NoError(t, err)
		assert.Equal(t, "✅ Samsung Galaxy added to stock: 5 pieces", res.Message)
		assert.Equal(t, 125000.0, res.Data["total_value"])
		assert.Equal(t, true, res.Data["is_low_stock"])
	})

	mt.Run("existing product merges quantity", func(mt *mtest.T) {
		existing := bson.D{
			{Key: "_id", Value: "inv-1"},
			{Key: "user_id", Value: "user-1"},
			{Key: "product_name", Value: "Notebook"},
			{Key: "quantity", Value: 10.0},
			{Key: "unit", Value: "pieces"},
			{Key: "cost_per_unit", Value: 40.0},
			{Key: "total_value", Value: 400.0},
		}
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "sakhi.inventory", mtest.FirstBatch, existing),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
		)
		l := newTestLedger(mt)

		res, err := l.AddInventoryItem(context.Background(), "user-1", "Notebook", 2, "pieces", 0)
		require.NoError(t, err)
		assert.Equal(t, "✅ Notebook stock updated: 12 pieces", res.Message)
		assert.Equal(t, 12.0, res.Data["quantity"])
		assert.Equal(t, 480.0, res.Data["total_value"])
		assert.Equal(t, false, res.Data["is_low_stock"])
	})

	mt.Run("invalid item", func(mt *mtest.T) {
		l := newTestLedger(mt)
		_, err := l.AddInventoryItem(context.Background(), "user-1", "  ", 1, "", 10)
		assert.Error(t, err)
	})
}

func TestLedgerClear(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("clear expenses", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 3}))
		l := newTestLedger(mt)

		res, err := l.ClearExpenses(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Equal(t, "✅ Successfully cleared 3 expenses", res.Message)
		assert.Equal(t, int64(3), res.Data["deleted"])
	})

	mt.Run("clear all", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 2}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 7}),
		)
		l := newTestLedger(mt)

		res, err := l.ClearAll(context.Background(), "user-1")
		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.Equal(t, "✅ Successfully cleared all data: 2 expenses, 1 income, 0 inventory, 7 chat messages", res.Message)
	})

	mt.Run("clear failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 13, Message: "unauthorized", Name: "Unauthorized"}))
		l := newTestLedger(mt)

		res, err := l.ClearChatHistory(context.Background(), "user-1")
		assert.Error(t, err)
		assert.False(t, res.Success)
	})
}

func TestLedgerChatHistory(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("save", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		l := newTestLedger(mt)

		err := l.SaveChatHistory(context.Background(), "user-1", "expense is Rs 2000", "✅ Expense of ₹2000.0 recorded successfully!", "", "expense")
		assert.NoError(t, err)
	})
}

func TestProfitLossSummary(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("profit", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "sakhi.income", mtest.FirstBatch,
				bson.D{{Key: "amount", Value: 10000.0}},
				bson.D{{Key: "amount", Value: 2500.5}},
			),
			mtest.CreateCursorResponse(0, "sakhi.expenses", mtest.FirstBatch,
				bson.D{{Key: "amount", Value: 4000.25}},
			),
		)
		l := newTestLedger(mt)

		s, err := l.ProfitLossSummary(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Equal(t, 12500.5, s.TotalIncome)
		assert.Equal(t, 4000.25, s.TotalExpenses)
		assert.Equal(t, 8500.25, s.NetProfit)
		assert.Equal(t, 68.0, s.ProfitMargin)
		assert.Equal(t, 2, s.IncomeCount)
		assert.Equal(t, 1, s.ExpenseCount)
		assert.Equal(t, StatusProfit, s.Status)
	})

	mt.Run("no income is break even or loss", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "sakhi.income", mtest.FirstBatch),
			mtest.CreateCursorResponse(0, "sakhi.expenses", mtest.FirstBatch,
				bson.D{{Key: "amount", Value: 300.0}},
			),
		)
		l := newTestLedger(mt)

		s, err := l.ProfitLossSummary(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Equal(t, -300.0, s.NetProfit)
		assert.Equal(t, 0.0, s.ProfitMargin)
		assert.Equal(t, StatusLoss, s.Status)
	})
}

func TestEnsureIndexes(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("creates one index per collection", func(mt *mtest.T) {
		for i := 0; i < 4; i++ {
			mt.AddMockResponses(mtest.CreateSuccessResponse())
		}
		require.NoError(t, newTestLedger(mt).EnsureIndexes(context.Background()))
	})
}
