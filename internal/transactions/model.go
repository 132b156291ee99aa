package transactions

import (
	"time"

	"github.com/shopspring/decimal"
)

// StoreKeyPrefix namespaces each user's transaction list in the record store.
const StoreKeyPrefix = "user_transactions_"

// Recurrence describes a repeating transaction.
type Recurrence struct {
	Frequency string `json:"frequency"` // daily | weekly | monthly | yearly
	Interval  int    `json:"interval,omitempty"`
}

// Location is an optional geotag on a transaction.
type Location struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Label string  `json:"label,omitempty"`
}

// Metadata carries the fabricated enrichment scores the dashboard displays.
// Constants, not model output.
type Metadata struct {
	AIConfidence float64 `json:"ai_confidence"`
	FraudScore   float64 `json:"fraud_score"`
}

// Transaction is one ledger entry. The list is append-only: there is no edit
// or delete path.
type Transaction struct {
	ID            string          `json:"id"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Category      string          `json:"category"`
	Subcategory   string          `json:"subcategory,omitempty"`
	Date          string          `json:"date"` // YYYY-MM-DD
	IsExpense     bool            `json:"is_expense"`
	Merchant      string          `json:"merchant,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	Tags          []string        `json:"tags,omitempty"`
	Recurrence    *Recurrence     `json:"recurrence,omitempty"`
	Location      *Location       `json:"location,omitempty"`
	ReceiptID     string          `json:"receipt_id,omitempty"`
	Metadata      Metadata        `json:"metadata"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Summary aggregates a user's list for the dashboard cards.
type Summary struct {
	Income       decimal.Decimal `json:"income"`
	Expense      decimal.Decimal `json:"expense"`
	Net          decimal.Decimal `json:"net"`
	Count        int             `json:"count"`
	TopCategory  string          `json:"top_category,omitempty"`
	TopCategoryP float64         `json:"top_category_percent,omitempty"`
}
