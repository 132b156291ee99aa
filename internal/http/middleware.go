package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/aifinance/aifinance-backend/internal/auth"
	"github.com/aifinance/aifinance-backend/internal/gatekeeper"
)

// SessionMiddleware guards API endpoints. It loads the stored session (which
// also runs the expiry check) and requires the caller's token to match it.
// The token comes from the auth cookie or an Authorization bearer header.
func SessionMiddleware(store *auth.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Session()
		if err != nil || sess == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
		}

		token := strings.TrimSpace(c.Cookies(gatekeeper.CookieAuthToken))
		if token == "" {
			header := strings.TrimSpace(c.Get("Authorization"))
			parts := strings.SplitN(header, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				token = strings.TrimSpace(parts[1])
			}
		}
		if token == "" || token != sess.Token {
			return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
		}

		c.Locals("session", sess)
		c.Locals("user_id", sess.User.ID)
		return c.Next()
	}
}
