package routes

import "strings"

// The route surface is static. A path belongs to a list when it matches a
// route exactly or sits under it ("/business/team/invite" is a business
// route). The four guarded lists must stay disjoint or the redirect policy
// becomes ambiguous; routes_test.go enforces that.

var PublicRoutes = []string{
	"/",
	"/login",
	"/register",
	"/about",
	"/pricing",
	"/contact",
	"/terms",
	"/privacy",
}

var ConsumerRoutes = []string{
	"/dashboard",
	"/transactions",
	"/budgets",
	"/goals",
	"/investments",
	"/insights",
}

var BusinessRoutes = []string{
	"/business/admin",
	"/business/team",
	"/business/expenses",
	"/business/reports",
	"/business/settings",
}

var SharedRoutes = []string{
	"/profile",
	"/settings",
	"/support",
	"/billing",
}

// passthroughPrefixes are never subject to auth checks.
var passthroughPrefixes = []string{
	"/api",
	"/_next",
	"/static",
	"/favicon.ico",
	"/health",
	"/healthz",
}

// Classification holds the independent list memberships of a path.
type Classification struct {
	Public      bool
	Consumer    bool
	Business    bool
	Shared      bool
	Passthrough bool
}

// Guarded reports whether the path falls under any auth-relevant list.
func (c Classification) Guarded() bool {
	return c.Consumer || c.Business || c.Shared
}

// Classify categorizes path against the static route lists.
func Classify(path string) Classification {
	return Classification{
		Public:      matchesAny(path, PublicRoutes),
		Consumer:    matchesAny(path, ConsumerRoutes),
		Business:    matchesAny(path, BusinessRoutes),
		Shared:      matchesAny(path, SharedRoutes),
		Passthrough: isPassthrough(path),
	}
}

// Matches reports whether path equals route or sits under it.
func Matches(path, route string) bool {
	return path == route || strings.HasPrefix(path, route+"/")
}

func matchesAny(path string, list []string) bool {
	for _, route := range list {
		if Matches(path, route) {
			return true
		}
	}
	return false
}

func isPassthrough(path string) bool {
	for _, p := range passthroughPrefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	// Static files carry an extension ("/logo.svg", "/manifest.json").
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		if strings.ContainsRune(path[i+1:], '.') {
			return true
		}
	}
	return false
}
