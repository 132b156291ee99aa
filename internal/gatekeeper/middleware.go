package gatekeeper

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/aifinance/aifinance-backend/internal/domain"
)

// Session cookie names shared with the auth handlers.
const (
	CookieAuthToken = "auth_token"
	CookieUserType  = "user_type"
)

// Diagnostic headers attached by the middleware.
const (
	HeaderRedirectReason = "X-Redirect-Reason"
	HeaderOriginalPath   = "X-Original-Path"
	HeaderUserType       = "X-User-Type"
	HeaderUserJourney    = "X-User-Journey"
	HeaderDuration       = "X-Middleware-Duration"
)

// Middleware classifies every request and applies the redirect policy before
// any handler runs. It never errors: missing or malformed cookies just mean
// the request is unauthenticated.
func Middleware(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()

		token := strings.TrimSpace(c.Cookies(CookieAuthToken))
		userType := domain.AccountType(c.Cookies(CookieUserType))
		if !userType.Valid() {
			userType = ""
		}

		decision := Decide(Input{
			Path:          path,
			Authenticated: token != "",
			UserType:      userType,
		})

		setSecurityHeaders(c)
		c.Set(HeaderUserJourney, decision.Journey)
		c.Set(HeaderDuration, time.Since(start).String())

		if !decision.Redirect {
			return c.Next()
		}

		c.Set(HeaderRedirectReason, decision.Reason)
		c.Set(HeaderOriginalPath, path)
		if userType != "" {
			c.Set(HeaderUserType, string(userType))
		}

		logger.Info("redirect",
			zap.String("path", path),
			zap.String("to", decision.Location()),
			zap.String("reason", decision.Reason),
			zap.String("journey", decision.Journey),
		)

		return c.Redirect(decision.Location(), fiber.StatusTemporaryRedirect)
	}
}

func setSecurityHeaders(c *fiber.Ctx) {
	c.Set("X-Frame-Options", "DENY")
	c.Set("X-Content-Type-Options", "nosniff")
	c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
	c.Set("X-Robots-Tag", "noindex, nofollow")
}
