package summary

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/aifinance/aifinance-backend/internal/auth"
)

type Handler struct {
	Repo Repo
}

func (h Handler) GetSummary(c *fiber.Ctx) error {
	sess, ok := c.Locals("session").(*auth.Session)
	if !ok || sess == nil || sess.User == nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	month := strings.TrimSpace(c.Query("month")) // YYYY-MM or empty
	if month != "" && !validMonth(month) {
		return fiber.NewError(fiber.StatusBadRequest, "month must be YYYY-MM")
	}

	s, err := h.Repo.GetByUser(sess.User.ID, month)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch summary")
	}
	return c.JSON(s)
}

func validMonth(s string) bool {
	if len(s) != 7 || s[4] != '-' {
		return false
	}
	for i, r := range s {
		if i == 4 {
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
