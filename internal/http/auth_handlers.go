package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/aifinance/aifinance-backend/internal/audit"
	"github.com/aifinance/aifinance-backend/internal/auth"
	"github.com/aifinance/aifinance-backend/internal/domain"
	"github.com/aifinance/aifinance-backend/internal/gatekeeper"
	"github.com/aifinance/aifinance-backend/internal/localstore"
)

// AuthHandler exposes the mock auth store over HTTP and maintains the
// session cookies the gatekeeper reads.
type AuthHandler struct {
	Auth         *auth.Store
	KV           *localstore.Store
	CookieSecure bool
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type switchRequest struct {
	AccountType domain.AccountType `json:"account_type"`
}

type sessionResponse struct {
	User      *domain.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	Flags     auth.Flags   `json:"flags"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body loginRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	sess, err := h.Auth.Login(body.Email, body.Password)
	if err != nil {
		return validationOrInternal(c, err)
	}

	h.setSessionCookies(c, sess)
	h.writeAudit(sess.User.ID, "login", nil)
	return c.JSON(sessionResponseFrom(sess))
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var body auth.RegisterInput
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	sess, err := h.Auth.Register(body)
	if err != nil {
		return validationOrInternal(c, err)
	}

	h.setSessionCookies(c, sess)
	h.writeAudit(sess.User.ID, "register", map[string]string{
		"account_type": string(sess.User.AccountType),
	})
	return c.Status(fiber.StatusCreated).JSON(sessionResponseFrom(sess))
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	userID := ""
	if sess, err := h.Auth.Session(); err == nil && sess != nil {
		userID = sess.User.ID
	}

	if err := h.Auth.Logout(); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not clear session")
	}

	h.clearSessionCookies(c)
	h.writeAudit(userID, "logout", nil)
	return c.JSON(fiber.Map{"ok": true})
}

// Switch flips the account type and tells the client where to land next.
func (h *AuthHandler) Switch(c *fiber.Ctx) error {
	var body switchRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	sess, err := h.Auth.SwitchAccountType(body.AccountType)
	if err != nil {
		if errors.Is(err, auth.ErrNotAuthenticated) {
			return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
		}
		return validationOrInternal(c, err)
	}

	h.setSessionCookies(c, sess)
	h.writeAudit(sess.User.ID, "switch_account_type", map[string]string{
		"account_type": string(sess.User.AccountType),
	})
	return c.JSON(fiber.Map{
		"user":     sess.User,
		"redirect": sess.User.AccountType.HomePath(),
	})
}

// Me returns the authenticated user. Runs behind SessionMiddleware.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	sess, ok := c.Locals("session").(*auth.Session)
	if !ok || sess == nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(sessionResponseFrom(sess))
}

// Flags is deliberately public: an unauthenticated caller gets the all-false
// table rather than an error.
func (h *AuthHandler) Flags(c *fiber.Ctx) error {
	var user *domain.User
	if sess, err := h.Auth.Session(); err == nil && sess != nil {
		user = sess.User
	}
	return c.JSON(fiber.Map{"flags": auth.ComputeFlags(user)})
}

func sessionResponseFrom(sess *auth.Session) sessionResponse {
	return sessionResponse{
		User:      sess.User,
		Token:     sess.Token,
		ExpiresAt: sess.ExpiresAt,
		Flags:     auth.ComputeFlags(sess.User),
	}
}

func validationOrInternal(c *fiber.Ctx, err error) error {
	var verr auth.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":  "validation_failed",
			"fields": verr,
		})
	}
	return fiber.NewError(fiber.StatusInternalServerError, "internal error")
}

func (h *AuthHandler) setSessionCookies(c *fiber.Ctx, sess *auth.Session) {
	maxAge := int(time.Until(sess.ExpiresAt).Seconds())
	c.Cookie(&fiber.Cookie{
		Name:     gatekeeper.CookieAuthToken,
		Value:    sess.Token,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   h.CookieSecure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	c.Cookie(&fiber.Cookie{
		Name:     gatekeeper.CookieUserType,
		Value:    string(sess.User.AccountType),
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   h.CookieSecure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

func (h *AuthHandler) clearSessionCookies(c *fiber.Ctx) {
	for _, name := range []string{gatekeeper.CookieAuthToken, gatekeeper.CookieUserType} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			Secure:   h.CookieSecure,
			SameSite: fiber.CookieSameSiteStrictMode,
		})
	}
}

func (h *AuthHandler) writeAudit(userID, action string, detail map[string]string) {
	// Best effort; the operation already succeeded.
	_ = audit.Write(h.KV, audit.Entry{UserID: userID, Action: action, Detail: detail})
}
