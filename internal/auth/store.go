package auth

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/aifinance/aifinance-backend/internal/domain"
	"github.com/aifinance/aifinance-backend/internal/formatutil"
	"github.com/aifinance/aifinance-backend/internal/localstore"
)

// Record keys in the local store.
const (
	KeyUser        = "aifinance_user"
	KeyToken       = "aifinance_token"
	KeyTokenExpiry = "aifinance_token_expiry"
)

// ValidationError reports per-field input failures. Never fatal: handlers
// render it inline.
type ValidationError map[string]string

func (e ValidationError) Error() string {
	parts := make([]string, 0, len(e))
	for field, msg := range e {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Session is the authenticated state a request sees. There is no ambient
// singleton: callers receive it explicitly from Store methods.
type Session struct {
	User      *domain.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// Store is the mock auth store. It fabricates users and tokens and persists
// them to the local record store; no credentials are ever verified. The
// latency field simulates remote round-trips. Writes are last-write-wins.
type Store struct {
	kv      *localstore.Store
	latency time.Duration
	now     func() time.Time
}

func NewStore(kv *localstore.Store, latency time.Duration) *Store {
	return &Store{kv: kv, latency: latency, now: time.Now}
}

// RegisterInput is the register form payload.
type RegisterInput struct {
	FullName    string             `json:"full_name"`
	Email       string             `json:"email"`
	Password    string             `json:"password"`
	AccountType domain.AccountType `json:"account_type"`
	CompanyName string             `json:"company_name"`
	AcceptTerms bool               `json:"accept_terms"`
}

// Login fabricates a session for any well-formed email/password pair. The
// password is hashed into the record and never compared: this is a stub, and
// stays one until real credential verification ships.
func (s *Store) Login(email, password string) (*Session, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	verr := ValidationError{}
	if email == "" {
		verr["email"] = "email is required"
	} else if !strings.Contains(email, "@") {
		verr["email"] = "enter a valid email"
	}
	if password == "" {
		verr["password"] = "password is required"
	} else if len(password) < 6 {
		verr["password"] = "password must be at least 6 characters"
	}
	if len(verr) > 0 {
		return nil, verr
	}

	s.simulateLatency()

	accountType := DeriveAccountType(email)
	user := s.fabricateUser(email, nameFromEmail(email), accountType)
	if accountType == domain.AccountBusiness {
		user.Business.CompanyName = companyFromEmail(email)
	}
	if err := s.hashPassword(user, password); err != nil {
		return nil, err
	}

	return s.persistSession(user)
}

// Register validates the form and fabricates a session, like Login but with
// caller-chosen name and account type.
func (s *Store) Register(in RegisterInput) (*Session, error) {
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.FullName = strings.TrimSpace(in.FullName)
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	if !in.AccountType.Valid() {
		in.AccountType = domain.AccountConsumer
	}

	verr := ValidationError{}
	if in.FullName == "" {
		verr["full_name"] = "name is required"
	}
	if !formatutil.IsValidEmail(in.Email) {
		verr["email"] = "enter a valid email"
	}
	if len(in.Password) < 6 {
		verr["password"] = "password must be at least 6 characters"
	}
	if !in.AcceptTerms {
		verr["accept_terms"] = "you must accept the terms"
	}
	if in.AccountType == domain.AccountBusiness && in.CompanyName == "" {
		verr["company_name"] = "company name is required for business accounts"
	}
	if len(verr) > 0 {
		return nil, verr
	}

	s.simulateLatency()

	user := s.fabricateUser(in.Email, in.FullName, in.AccountType)
	if in.AccountType == domain.AccountBusiness {
		user.Business.CompanyName = in.CompanyName
	}
	if err := s.hashPassword(user, in.Password); err != nil {
		return nil, err
	}

	return s.persistSession(user)
}

// Logout clears all persisted auth state.
func (s *Store) Logout() error {
	for _, key := range []string{KeyUser, KeyToken, KeyTokenExpiry} {
		if err := s.kv.Remove(key); err != nil {
			return fmt.Errorf("clear %s: %w", key, err)
		}
	}
	return nil
}

// SwitchAccountType flips the current user between consumer and business,
// keeping prior profile values and filling type defaults for the rest. The
// caller is expected to send the user to the matching dashboard afterwards.
func (s *Store) SwitchAccountType(target domain.AccountType) (*Session, error) {
	if !target.Valid() {
		return nil, ValidationError{"account_type": "unknown account type"}
	}

	sess, err := s.Session()
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrNotAuthenticated
	}

	s.simulateLatency()

	user := sess.User
	user.AccountType = target
	user.Plan = defaultPlan(target)
	fillProfileDefaults(user)

	if err := s.kv.SetJSON(KeyUser, user); err != nil {
		return nil, fmt.Errorf("persist user: %w", err)
	}
	sess.User = user
	return sess, nil
}

// Session returns the current session, or nil when unauthenticated. An
// expired token silently clears every stored auth key; the caller just sees
// an unauthenticated state.
func (s *Store) Session() (*Session, error) {
	rawExpiry, ok := s.kv.Get(KeyTokenExpiry)
	if !ok {
		return nil, nil
	}
	expiryMS, err := strconv.ParseInt(strings.TrimSpace(rawExpiry), 10, 64)
	if err != nil || s.now().UnixMilli() > expiryMS {
		// Corrupt or expired: drop everything, no user-visible error.
		_ = s.Logout()
		return nil, nil
	}

	token, ok := s.kv.Get(KeyToken)
	if !ok || strings.TrimSpace(token) == "" {
		return nil, nil
	}

	var user domain.User
	found, err := s.kv.GetJSON(KeyUser, &user)
	if err != nil {
		_ = s.Logout()
		return nil, nil
	}
	if !found {
		return nil, nil
	}

	return &Session{
		User:      &user,
		Token:     token,
		ExpiresAt: time.UnixMilli(expiryMS),
	}, nil
}

func (s *Store) persistSession(user *domain.User) (*Session, error) {
	token, expiresAt, err := MintToken(user.ID, s.now())
	if err != nil {
		return nil, fmt.Errorf("mint token: %w", err)
	}

	if err := s.kv.SetJSON(KeyUser, user); err != nil {
		return nil, fmt.Errorf("persist user: %w", err)
	}
	if err := s.kv.Set(KeyToken, token); err != nil {
		return nil, fmt.Errorf("persist token: %w", err)
	}
	if err := s.kv.Set(KeyTokenExpiry, strconv.FormatInt(expiresAt.UnixMilli(), 10)); err != nil {
		return nil, fmt.Errorf("persist expiry: %w", err)
	}

	return &Session{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *Store) fabricateUser(email, fullName string, accountType domain.AccountType) *domain.User {
	now := s.now()
	user := &domain.User{
		ID:          uuid.NewString(),
		Email:       email,
		FullName:    fullName,
		AccountType: accountType,
		Plan:        defaultPlan(accountType),
		CreatedAt:   now,
		LastLoginAt: now,
	}
	fillProfileDefaults(user)
	return user
}

func (s *Store) hashPassword(user *domain.User, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hashed)
	return nil
}

func (s *Store) simulateLatency() {
	if s.latency > 0 {
		time.Sleep(s.latency)
	}
}

// Demo accounts get the top paid tier of their type so the dashboards have
// something to show.
func defaultPlan(t domain.AccountType) domain.Plan {
	if t == domain.AccountBusiness {
		return domain.PlanEnterprise
	}
	return domain.PlanPremium
}

func fillProfileDefaults(user *domain.User) {
	switch user.AccountType {
	case domain.AccountConsumer:
		if user.Consumer == nil {
			user.Consumer = &domain.ConsumerProfile{
				MonthlyIncome: 5200,
				CreditScore:   720,
				Goals:         []string{"emergency_fund", "retirement"},
				RiskProfile:   "moderate",
			}
		}
	case domain.AccountBusiness:
		if user.Business == nil {
			user.Business = &domain.BusinessProfile{
				CompanyName: "My Company",
				CompanySize: "11-50",
				Industry:    "technology",
				Role:        "owner",
				Department:  "finance",
			}
		}
	}
}

func nameFromEmail(email string) string {
	local := email
	if i := strings.IndexByte(email, '@'); i > 0 {
		local = email[:i]
	}
	local = strings.NewReplacer(".", " ", "_", " ", "-", " ").Replace(local)
	words := strings.Fields(local)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	if len(words) == 0 {
		return "User"
	}
	return strings.Join(words, " ")
}

func companyFromEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at < 0 || at+1 >= len(email) {
		return "My Company"
	}
	d := email[at+1:]
	if i := strings.IndexByte(d, '.'); i > 0 {
		d = d[:i]
	}
	if d == "" {
		return "My Company"
	}
	return strings.ToUpper(d[:1]) + d[1:]
}
