package admin

import (
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/aifinance/aifinance-backend/internal/audit"
	"github.com/aifinance/aifinance-backend/internal/auth"
	"github.com/aifinance/aifinance-backend/internal/localstore"
	"github.com/aifinance/aifinance-backend/internal/transactions"
)

// RequireAdminAPIKey guards the ops endpoints. A missing server-side key
// hard-fails rather than accidentally opening the surface.
func RequireAdminAPIKey() fiber.Handler {
	key := strings.TrimSpace(os.Getenv("ADMIN_API_KEY"))
	if key == "" {
		return func(c *fiber.Ctx) error {
			return fiber.NewError(fiber.StatusInternalServerError, "ADMIN_API_KEY not set")
		}
	}

	return func(c *fiber.Ctx) error {
		got := strings.TrimSpace(c.Get("X-Admin-Key"))
		if got == "" || got != key {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid admin key")
		}
		return c.Next()
	}
}

// Handler exposes read-only diagnostics over the local record store.
type Handler struct {
	KV   *localstore.Store
	Auth *auth.Store
}

func NewHandler(kv *localstore.Store, authStore *auth.Store) *Handler {
	return &Handler{KV: kv, Auth: authStore}
}

type StatsResponse struct {
	StoreKeys        int      `json:"store_keys"`
	SessionActive    bool     `json:"session_active"`
	SessionUserID    string   `json:"session_user_id,omitempty"`
	TransactionLists []string `json:"transaction_lists"`
}

// Stats summarizes the local store for debugging a demo deployment.
func (h *Handler) Stats(c *fiber.Ctx) error {
	resp := StatsResponse{
		StoreKeys:        h.KV.Len(),
		TransactionLists: []string{},
	}

	if sess, err := h.Auth.Session(); err == nil && sess != nil {
		resp.SessionActive = true
		resp.SessionUserID = sess.User.ID
	}

	for _, key := range h.KV.Keys() {
		if strings.HasPrefix(key, transactions.StoreKeyPrefix) {
			resp.TransactionLists = append(resp.TransactionLists, strings.TrimPrefix(key, transactions.StoreKeyPrefix))
		}
	}
	return c.JSON(resp)
}

// Audit returns the recent audit trail, newest first.
func (h *Handler) Audit(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	trail, err := audit.List(h.KV, limit)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to read audit trail")
	}
	if trail == nil {
		trail = []audit.Entry{}
	}
	return c.JSON(fiber.Map{"entries": trail})
}
