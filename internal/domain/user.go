package domain

import "time"

// AccountType partitions the user base; it drives routing and feature access.
type AccountType string

const (
	AccountConsumer AccountType = "consumer"
	AccountBusiness AccountType = "business"
)

// Valid reports whether t is one of the two known account types.
func (t AccountType) Valid() bool {
	return t == AccountConsumer || t == AccountBusiness
}

// HomePath is the dashboard a user of the given type lands on.
func (t AccountType) HomePath() string {
	if t == AccountBusiness {
		return "/business/admin"
	}
	return "/dashboard"
}

// Plan is the subscription tier controlling feature-flag unlocks.
type Plan string

const (
	PlanFree       Plan = "free"
	PlanPro        Plan = "pro"
	PlanPremium    Plan = "premium"
	PlanEnterprise Plan = "enterprise"
)

// ConsumerProfile carries the consumer-only attributes of a user.
type ConsumerProfile struct {
	MonthlyIncome float64  `json:"monthly_income"`
	CreditScore   int      `json:"credit_score"`
	Goals         []string `json:"goals,omitempty"`
	RiskProfile   string   `json:"risk_profile,omitempty"`
}

// BusinessProfile carries the business-only attributes of a user.
type BusinessProfile struct {
	CompanyName string `json:"company_name"`
	CompanySize string `json:"company_size,omitempty"`
	Industry    string `json:"industry,omitempty"`
	Role        string `json:"role,omitempty"`
	Department  string `json:"department,omitempty"`
}

// User represents a persisted user record. Auth here is a stub: the record is
// fabricated from the submitted email, and the password hash is stored but
// never compared against anything.
type User struct {
	ID           string           `json:"id"`
	Email        string           `json:"email"`
	FullName     string           `json:"full_name"`
	PasswordHash string           `json:"-"`
	AccountType  AccountType      `json:"account_type"`
	Plan         Plan             `json:"plan"`
	CreatedAt    time.Time        `json:"created_at"`
	LastLoginAt  time.Time        `json:"last_login_at"`
	Consumer     *ConsumerProfile `json:"consumer,omitempty"`
	Business     *BusinessProfile `json:"business,omitempty"`
}
