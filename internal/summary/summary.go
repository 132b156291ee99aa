package summary

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/aifinance/aifinance-backend/internal/formatutil"
	"github.com/aifinance/aifinance-backend/internal/transactions"
)

// Repo aggregates a user's transaction list into dashboard numbers.
type Repo struct {
	Tx *transactions.Repo
}

// Summary is the dashboard card payload. Display fields are pre-formatted so
// the client renders them verbatim.
type Summary struct {
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Net          decimal.Decimal `json:"net"`
	Count        int             `json:"count"`
	Currency     string          `json:"currency"`
	Display      Display         `json:"display"`
}

type Display struct {
	Income  string `json:"income"`
	Expense string `json:"expense"`
	Net     string `json:"net"`
}

// GetByUser sums the list, optionally filtered to a YYYY-MM month.
func (r Repo) GetByUser(userID, month string) (Summary, error) {
	list, err := r.Tx.List(userID, 0)
	if err != nil {
		return Summary{}, err
	}

	income := decimal.Zero
	expense := decimal.Zero
	count := 0
	for _, t := range list {
		if month != "" && !strings.HasPrefix(t.Date, month+"-") {
			continue
		}
		count++
		if t.IsExpense {
			expense = expense.Add(t.Amount)
		} else {
			income = income.Add(t.Amount)
		}
	}

	net := income.Sub(expense)
	return Summary{
		TotalIncome:  income,
		TotalExpense: expense,
		Net:          net,
		Count:        count,
		Currency:     "USD",
		Display: Display{
			Income:  formatutil.FormatCurrency(income.InexactFloat64()),
			Expense: formatutil.FormatCurrency(expense.InexactFloat64()),
			Net:     formatutil.FormatCurrency(net.InexactFloat64()),
		},
	}, nil
}
