// summary.go - Profit and loss summary over the ledger

package storage

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Profit statuses.
const (
	StatusProfit    = "profit"
	StatusLoss      = "loss"
	StatusBreakEven = "break_even"
)

// Summary is the user's profit and loss position.
type Summary struct {
	TotalIncome   float64 `json:"total_income"`
	TotalExpenses float64 `json:"total_expenses"`
	NetProfit     float64 `json:"net_profit"`
	ProfitMargin  float64 `json:"profit_margin_percentage"`
	IncomeCount   int     `json:"income_count"`
	ExpenseCount  int     `json:"expense_count"`
	Status        string  `json:"profit_status"`
}

// ProfitLossSummary totals the user's income and expenses. The margin is
// net profit as a percentage of income, 0 when there is no income.
func (l *Ledger) ProfitLossSummary(ctx context.Context, userID string) (Summary, error) {
	income, incomeCount, err := l.sumAmounts(ctx, IncomeCollection, userID)
	if err != nil {
		return Summary{}, err
	}
	expenses, expenseCount, err := l.sumAmounts(ctx, ExpenseCollection, userID)
	if err != nil {
		return Summary{}, err
	}

	net := income.Sub(expenses)
	margin := decimal.Zero
	if income.IsPositive() {
		margin = net.Div(income).Mul(decimal.NewFromInt(100)).Round(1)
	}

	s := Summary{
		TotalIncome:   income.Round(2).InexactFloat64(),
		TotalExpenses: expenses.Round(2).InexactFloat64(),
		NetProfit:     net.Round(2).InexactFloat64(),
		ProfitMargin:  margin.InexactFloat64(),
		IncomeCount:   incomeCount,
		ExpenseCount:  expenseCount,
		Status:        StatusBreakEven,
	}
	switch net.Sign() {
	case 1:
		s.Status = StatusProfit
	case -1:
		s.Status = StatusLoss
	}
	return s, nil
}

func (l *Ledger) sumAmounts(ctx context.Context, coll, userID string) (decimal.Decimal, int, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"amount": 1})
	cursor, err := l.collection(coll).Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("failed to query %s: %w", coll, err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Amount float64 `bson:"amount"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return decimal.Zero, 0, fmt.Errorf("failed to read %s: %w", coll, err)
	}

	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(decimal.NewFromFloat(r.Amount))
	}
	return total, len(rows), nil
}
