package gatekeeper

import (
	"net/url"
	"strings"

	"github.com/aifinance/aifinance-backend/internal/domain"
	"github.com/aifinance/aifinance-backend/internal/routes"
)

// Redirect reasons surfaced through the X-Redirect-Reason header.
const (
	ReasonUnauthenticated     = "unauthenticated"
	ReasonAccountTypeMismatch = "account_type_mismatch"
	ReasonFeatureNotAvailable = "feature_not_available"
	ReasonUpgradeRequired     = "upgrade_required"
	ReasonAlreadyAuthed       = "already_authenticated"
)

// Input is everything the policy looks at for one request.
type Input struct {
	Path          string
	Authenticated bool
	// UserType is empty when the cookie is missing or malformed.
	UserType domain.AccountType
}

// Decision is the outcome of one policy evaluation. The policy cannot fail:
// anything it does not understand passes through or counts as unauthenticated.
type Decision struct {
	Redirect bool
	Target   string
	Params   url.Values
	Reason   string
	Journey  string
}

// Location renders the redirect target including query parameters.
func (d Decision) Location() string {
	if len(d.Params) == 0 {
		return d.Target
	}
	return d.Target + "?" + d.Params.Encode()
}

// Decide runs the redirect decision table. Rules are evaluated in precedence
// order; the first hit wins. A business user requesting exactly /dashboard is
// resolved once, as an account-type mismatch.
func Decide(in Input) Decision {
	class := routes.Classify(in.Path)
	journey := journeyFor(in)

	// 1. Static assets and API calls skip auth entirely.
	if class.Passthrough {
		return Decision{Journey: journey}
	}

	// 2. Anything non-public needs a token.
	if !class.Public && !in.Authenticated {
		params := url.Values{}
		if !class.Shared {
			params.Set("redirect", in.Path)
		}
		if class.Business {
			params.Set("type", string(domain.AccountBusiness))
		} else if class.Consumer {
			params.Set("type", string(domain.AccountConsumer))
		}
		return Decision{
			Redirect: true,
			Target:   "/login",
			Params:   params,
			Reason:   ReasonUnauthenticated,
			Journey:  journey,
		}
	}

	// 3. Business users do not get the consumer surface.
	if in.Authenticated && in.UserType == domain.AccountBusiness && class.Consumer {
		if in.Path == "/dashboard" {
			return Decision{
				Redirect: true,
				Target:   domain.AccountBusiness.HomePath(),
				Reason:   ReasonAccountTypeMismatch,
				Journey:  journey,
			}
		}
		params := url.Values{}
		params.Set("message", ReasonFeatureNotAvailable)
		params.Set("feature", featureName(in.Path))
		return Decision{
			Redirect: true,
			Target:   domain.AccountBusiness.HomePath(),
			Params:   params,
			Reason:   ReasonFeatureNotAvailable,
			Journey:  journey,
		}
	}

	// 4. Consumer users hitting business routes get an upgrade nudge.
	if in.Authenticated && in.UserType == domain.AccountConsumer && class.Business {
		params := url.Values{}
		params.Set("message", "business_feature_requested")
		params.Set("upgrade", "true")
		return Decision{
			Redirect: true,
			Target:   domain.AccountConsumer.HomePath(),
			Params:   params,
			Reason:   ReasonUpgradeRequired,
			Journey:  journey,
		}
	}

	// 5. Authenticated users on the landing page go home.
	if in.Authenticated && in.Path == "/" {
		home := domain.AccountConsumer.HomePath()
		if in.UserType == domain.AccountBusiness {
			home = domain.AccountBusiness.HomePath()
		}
		return Decision{
			Redirect: true,
			Target:   home,
			Reason:   ReasonAlreadyAuthed,
			Journey:  journey,
		}
	}

	// 6. Everything else passes through.
	return Decision{Journey: journey}
}

func journeyFor(in Input) string {
	if !in.Authenticated {
		return "visitor"
	}
	if in.UserType.Valid() {
		return string(in.UserType)
	}
	return "authenticated"
}

// featureName names the consumer feature a path points at ("/investments/x"
// -> "investments") for the redirect query string.
func featureName(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		trimmed = trimmed[:i]
	}
	if trimmed == "" {
		return "dashboard"
	}
	return trimmed
}
