package auth

import (
	"errors"
	"strings"

	"github.com/aifinance/aifinance-backend/internal/domain"
)

// ErrNotAuthenticated is returned by operations that need a live session.
var ErrNotAuthenticated = errors.New("not authenticated")

// businessKeywords make an email look like a work address. The scan covers
// the whole address, so both "ceo@gmail.com" and "jane@corp.io" match.
var businessKeywords = []string{
	"business", "corp", "company", "enterprise", "inc", "llc", "ltd",
	"admin", "office", "finance", "accounting", "ceo", "cfo", "founder",
}

// DeriveAccountType guesses consumer vs business from the email string.
// Heuristic only; the user can switch later.
func DeriveAccountType(email string) domain.AccountType {
	lowered := strings.ToLower(email)
	for _, kw := range businessKeywords {
		if strings.Contains(lowered, kw) {
			return domain.AccountBusiness
		}
	}
	return domain.AccountConsumer
}
