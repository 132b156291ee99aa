package gatekeeper

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aifinance/aifinance-backend/internal/domain"
)

func TestDecide_PassthroughSkipsAuth(t *testing.T) {
	for _, path := range []string{"/api/transactions", "/api/auth/login", "/_next/app.js", "/favicon.ico", "/logo.svg"} {
		d := Decide(Input{Path: path, Authenticated: false})
		assert.Falsef(t, d.Redirect, "expected pass-through for %s", path)
	}
}

func TestDecide_UnauthenticatedRedirectsToLogin(t *testing.T) {
	t.Run("consumer route carries redirect and type", func(t *testing.T) {
		d := Decide(Input{Path: "/dashboard"})
		assert.True(t, d.Redirect)
		assert.Equal(t, "/login", d.Target)
		assert.Equal(t, "/dashboard", d.Params.Get("redirect"))
		assert.Equal(t, "consumer", d.Params.Get("type"))
		assert.Equal(t, ReasonUnauthenticated, d.Reason)
	})

	t.Run("business route carries business type hint", func(t *testing.T) {
		d := Decide(Input{Path: "/business/reports"})
		assert.True(t, d.Redirect)
		assert.Equal(t, "/business/reports", d.Params.Get("redirect"))
		assert.Equal(t, "business", d.Params.Get("type"))
	})

	t.Run("shared route omits redirect parameter", func(t *testing.T) {
		d := Decide(Input{Path: "/settings"})
		assert.True(t, d.Redirect)
		assert.Equal(t, "/login", d.Target)
		assert.Empty(t, d.Params.Get("redirect"))
		assert.Empty(t, d.Params.Get("type"))
	})

	t.Run("public routes pass", func(t *testing.T) {
		for _, path := range []string{"/", "/login", "/pricing", "/about"} {
			d := Decide(Input{Path: path})
			assert.Falsef(t, d.Redirect, "expected pass-through for %s", path)
		}
	})
}

func TestDecide_BusinessUserOnConsumerRoutes(t *testing.T) {
	t.Run("generic dashboard is an account type mismatch", func(t *testing.T) {
		d := Decide(Input{Path: "/dashboard", Authenticated: true, UserType: domain.AccountBusiness})
		assert.True(t, d.Redirect)
		assert.Equal(t, "/business/admin", d.Target)
		assert.Equal(t, ReasonAccountTypeMismatch, d.Reason)
		assert.Empty(t, d.Params)
	})

	t.Run("other consumer features are named in the query", func(t *testing.T) {
		d := Decide(Input{Path: "/investments", Authenticated: true, UserType: domain.AccountBusiness})
		assert.True(t, d.Redirect)
		assert.Equal(t, "/business/admin", d.Target)
		assert.Equal(t, ReasonFeatureNotAvailable, d.Reason)
		assert.Equal(t, "feature_not_available", d.Params.Get("message"))
		assert.Equal(t, "investments", d.Params.Get("feature"))
	})

	t.Run("nested consumer paths use the top segment", func(t *testing.T) {
		d := Decide(Input{Path: "/goals/retirement", Authenticated: true, UserType: domain.AccountBusiness})
		assert.Equal(t, "goals", d.Params.Get("feature"))
	})
}

func TestDecide_ConsumerUserOnBusinessRoutes(t *testing.T) {
	d := Decide(Input{Path: "/business/team", Authenticated: true, UserType: domain.AccountConsumer})
	assert.True(t, d.Redirect)
	assert.Equal(t, ReasonUpgradeRequired, d.Reason)
	assert.Equal(t, "/dashboard?message=business_feature_requested&upgrade=true", d.Location())
}

func TestDecide_AuthenticatedLanding(t *testing.T) {
	t.Run("business goes to business home", func(t *testing.T) {
		d := Decide(Input{Path: "/", Authenticated: true, UserType: domain.AccountBusiness})
		assert.True(t, d.Redirect)
		assert.Equal(t, "/business/admin", d.Target)
		assert.Equal(t, ReasonAlreadyAuthed, d.Reason)
	})

	t.Run("consumer goes to dashboard", func(t *testing.T) {
		d := Decide(Input{Path: "/", Authenticated: true, UserType: domain.AccountConsumer})
		assert.True(t, d.Redirect)
		assert.Equal(t, "/dashboard", d.Target)
	})
}

func TestDecide_MatchingTypePasses(t *testing.T) {
	d := Decide(Input{Path: "/dashboard", Authenticated: true, UserType: domain.AccountConsumer})
	assert.False(t, d.Redirect)

	d = Decide(Input{Path: "/business/admin", Authenticated: true, UserType: domain.AccountBusiness})
	assert.False(t, d.Redirect)

	d = Decide(Input{Path: "/settings", Authenticated: true, UserType: domain.AccountConsumer})
	assert.False(t, d.Redirect)
}

func TestDecide_Journey(t *testing.T) {
	assert.Equal(t, "visitor", Decide(Input{Path: "/pricing"}).Journey)
	assert.Equal(t, "consumer", Decide(Input{Path: "/dashboard", Authenticated: true, UserType: domain.AccountConsumer}).Journey)
	assert.Equal(t, "business", Decide(Input{Path: "/", Authenticated: true, UserType: domain.AccountBusiness}).Journey)
	assert.Equal(t, "authenticated", Decide(Input{Path: "/pricing", Authenticated: true}).Journey)
}

// Decide is pure: same input, same decision.
func TestDecide_Deterministic(t *testing.T) {
	in := Input{Path: "/business/expenses", Authenticated: true, UserType: domain.AccountConsumer}
	assert.Equal(t, Decide(in), Decide(in))
}
