package transactions

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aifinance/aifinance-backend/internal/formatutil"
	"github.com/aifinance/aifinance-backend/internal/localstore"
	"github.com/aifinance/aifinance-backend/internal/money"
)

// Fabricated enrichment scores attached to every entry.
const (
	fakeAIConfidence = 0.93
	fakeFraudScore   = 0.02
)

// Repo reads and writes per-user transaction lists in the local record store.
// Lists are newest-first and append-only.
type Repo struct {
	kv  *localstore.Store
	now func() time.Time
}

func NewRepo(kv *localstore.Store) *Repo {
	return &Repo{kv: kv, now: time.Now}
}

// CreateInput is the add-transaction form payload.
type CreateInput struct {
	Description   string      `json:"description"`
	Amount        float64     `json:"amount"`
	Currency      string      `json:"currency"`
	Category      string      `json:"category"`
	Subcategory   string      `json:"subcategory"`
	Date          string      `json:"date"`
	IsExpense     bool        `json:"is_expense"`
	Merchant      string      `json:"merchant"`
	PaymentMethod string      `json:"payment_method"`
	Tags          []string    `json:"tags"`
	Recurrence    *Recurrence `json:"recurrence"`
	Location      *Location   `json:"location"`
	ReceiptID     string      `json:"receipt_id"`
}

func key(userID string) string {
	return StoreKeyPrefix + userID
}

// Add validates in, builds the entry, and prepends it to the user's list.
func (r *Repo) Add(userID string, in CreateInput) (*Transaction, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("user id required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("description required")
	}

	amount, err := money.FromFloat(in.Amount)
	if err != nil {
		return nil, err
	}

	date := strings.TrimSpace(in.Date)
	if date == "" {
		date = r.now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("date must be YYYY-MM-DD")
	}

	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = "USD"
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = "other"
	}

	txn := &Transaction{
		ID:            formatutil.RandomID(12),
		Description:   strings.TrimSpace(in.Description),
		Amount:        amount,
		Currency:      currency,
		Category:      category,
		Subcategory:   strings.TrimSpace(in.Subcategory),
		Date:          date,
		IsExpense:     in.IsExpense,
		Merchant:      strings.TrimSpace(in.Merchant),
		PaymentMethod: strings.TrimSpace(in.PaymentMethod),
		Tags:          in.Tags,
		Recurrence:    in.Recurrence,
		Location:      in.Location,
		ReceiptID:     strings.TrimSpace(in.ReceiptID),
		Metadata: Metadata{
			AIConfidence: fakeAIConfidence,
			FraudScore:   fakeFraudScore,
		},
		CreatedAt: r.now(),
	}

	list, err := r.List(userID, 0)
	if err != nil {
		return nil, err
	}

	list = append([]Transaction{*txn}, list...)
	if err := r.kv.SetJSON(key(userID), list); err != nil {
		return nil, fmt.Errorf("persist transactions: %w", err)
	}
	return txn, nil
}

// List returns the user's transactions, newest first. limit <= 0 means all.
func (r *Repo) List(userID string, limit int) ([]Transaction, error) {
	var list []Transaction
	if _, err := r.kv.GetJSON(key(userID), &list); err != nil {
		return nil, err
	}
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

// Summary aggregates income, expense, and the dominant expense category.
func (r *Repo) Summary(userID string) (Summary, error) {
	list, err := r.List(userID, 0)
	if err != nil {
		return Summary{}, err
	}

	var s Summary
	s.Income = decimal.Zero
	s.Expense = decimal.Zero
	byCategory := map[string]decimal.Decimal{}

	for _, t := range list {
		if t.IsExpense {
			s.Expense = s.Expense.Add(t.Amount)
			byCategory[t.Category] = byCategory[t.Category].Add(t.Amount)
		} else {
			s.Income = s.Income.Add(t.Amount)
		}
	}
	s.Net = s.Income.Sub(s.Expense)
	s.Count = len(list)

	if s.Expense.IsPositive() {
		top := ""
		topAmount := decimal.Zero
		for cat, amt := range byCategory {
			if amt.GreaterThan(topAmount) || (amt.Equal(topAmount) && cat < top) {
				top, topAmount = cat, amt
			}
		}
		s.TopCategory = top
		pct, _ := topAmount.Div(s.Expense).Mul(decimal.NewFromInt(100)).Float64()
		s.TopCategoryP = formatutil.RoundTo(pct, 1)
	}
	return s, nil
}
