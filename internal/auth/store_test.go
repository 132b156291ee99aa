package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/aifinance/aifinance-backend/internal/domain"
	"github.com/aifinance/aifinance-backend/internal/localstore"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	kv, err := localstore.Open(t.TempDir())
	require.NoError(t, err)
	return NewStore(kv, 0)
}

func TestLogin_Validation(t *testing.T) {
	s := newTestStore(t)

	cases := []struct {
		name     string
		email    string
		password string
		field    string
	}{
		{"empty email", "", "secret1", "email"},
		{"email without at", "not-an-email", "secret1", "email"},
		{"empty password", "a@b.com", "", "password"},
		{"short password", "a@b.com", "12345", "password"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Login(tc.email, tc.password)
			var verr ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr, tc.field)
		})
	}
}

func TestLogin_FabricatesConsumer(t *testing.T) {
	s := newTestStore(t)

	sess, err := s.Login("jane.doe@gmail.com", "secret1")
	require.NoError(t, err)
	require.NotNil(t, sess)

	user := sess.User
	assert.Equal(t, domain.AccountConsumer, user.AccountType)
	assert.Equal(t, domain.PlanPremium, user.Plan)
	assert.Equal(t, "Jane Doe", user.FullName)
	assert.NotEmpty(t, user.ID)
	require.NotNil(t, user.Consumer)
	assert.Nil(t, user.Business)

	// The hash is stored but nothing ever compares it: mock auth.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")))

	// All three record keys are persisted.
	persisted, err := s.Session()
	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.Equal(t, sess.Token, persisted.Token)
	assert.Equal(t, user.ID, persisted.User.ID)
}

func TestLogin_BusinessKeywordEmail(t *testing.T) {
	s := newTestStore(t)

	sess, err := s.Login("ceo@acme.com", "secret1")
	require.NoError(t, err)

	user := sess.User
	assert.Equal(t, domain.AccountBusiness, user.AccountType)
	assert.Equal(t, domain.PlanEnterprise, user.Plan)
	require.NotNil(t, user.Business)
	assert.Equal(t, "Acme", user.Business.CompanyName)
}

func TestLogin_AnyPasswordAccepted(t *testing.T) {
	s := newTestStore(t)

	first, err := s.Login("jane@gmail.com", "password-one")
	require.NoError(t, err)
	second, err := s.Login("jane@gmail.com", "totally-different")
	require.NoError(t, err)

	// No stored credential is consulted; both fabricate fresh sessions.
	assert.NotEqual(t, first.User.ID, second.User.ID)
}

func TestRegister_Validation(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Register(RegisterInput{
		Email:       "bad",
		Password:    "123",
		AccountType: domain.AccountBusiness,
	})
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr, "full_name")
	assert.Contains(t, verr, "email")
	assert.Contains(t, verr, "password")
	assert.Contains(t, verr, "accept_terms")
	assert.Contains(t, verr, "company_name")
}

func TestRegister_Business(t *testing.T) {
	s := newTestStore(t)

	sess, err := s.Register(RegisterInput{
		FullName:    "Ada Lovelace",
		Email:       "ada@babbage.io",
		Password:    "difference-engine",
		AccountType: domain.AccountBusiness,
		CompanyName: "Analytical Engines Ltd",
		AcceptTerms: true,
	})
	require.NoError(t, err)

	user := sess.User
	assert.Equal(t, domain.AccountBusiness, user.AccountType)
	assert.Equal(t, "Ada Lovelace", user.FullName)
	require.NotNil(t, user.Business)
	assert.Equal(t, "Analytical Engines Ltd", user.Business.CompanyName)
}

func TestSession_ExpiredTokenClearsState(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Login("jane@gmail.com", "secret1")
	require.NoError(t, err)

	// Jump past the 7-day expiry.
	s.now = func() time.Time { return time.Now().Add(TokenTTL + time.Hour) }

	sess, err := s.Session()
	require.NoError(t, err)
	assert.Nil(t, sess)

	for _, key := range []string{KeyUser, KeyToken, KeyTokenExpiry} {
		_, ok := s.kv.Get(key)
		assert.Falsef(t, ok, "expected %s to be cleared", key)
	}
}

func TestSession_CorruptExpiryClearsState(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.kv.Set(KeyTokenExpiry, "not-a-number"))

	sess, err := s.Session()
	require.NoError(t, err)
	assert.Nil(t, sess)
	_, ok := s.kv.Get(KeyTokenExpiry)
	assert.False(t, ok)
}

func TestLogout(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Login("jane@gmail.com", "secret1")
	require.NoError(t, err)
	require.NoError(t, s.Logout())

	sess, err := s.Session()
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestSwitchAccountType(t *testing.T) {
	s := newTestStore(t)

	t.Run("requires a session", func(t *testing.T) {
		_, err := s.SwitchAccountType(domain.AccountBusiness)
		assert.ErrorIs(t, err, ErrNotAuthenticated)
	})

	t.Run("consumer to business", func(t *testing.T) {
		_, err := s.Login("jane@gmail.com", "secret1")
		require.NoError(t, err)

		sess, err := s.SwitchAccountType(domain.AccountBusiness)
		require.NoError(t, err)

		user := sess.User
		assert.Equal(t, domain.AccountBusiness, user.AccountType)
		assert.Equal(t, domain.PlanEnterprise, user.Plan)
		require.NotNil(t, user.Business)
		// Prior consumer attributes survive the switch.
		require.NotNil(t, user.Consumer)
		assert.Equal(t, 720, user.Consumer.CreditScore)
	})

	t.Run("rejects unknown types", func(t *testing.T) {
		_, err := s.SwitchAccountType(domain.AccountType("admin"))
		var verr ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

func TestTokenRoundTrip(t *testing.T) {
	token, expiresAt, err := MintToken("user-123", time.Now())
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(TokenTTL), expiresAt, time.Minute)

	userID, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)

	_, err = ParseToken("garbage")
	assert.Error(t, err)
}

func TestDeriveAccountType(t *testing.T) {
	assert.Equal(t, domain.AccountConsumer, DeriveAccountType("jane@gmail.com"))
	assert.Equal(t, domain.AccountBusiness, DeriveAccountType("jane@bigcorp.com"))
	assert.Equal(t, domain.AccountBusiness, DeriveAccountType("finance@startup.io"))
	assert.Equal(t, domain.AccountBusiness, DeriveAccountType("CEO@Example.com"))
}
