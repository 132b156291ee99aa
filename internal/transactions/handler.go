package transactions

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/aifinance/aifinance-backend/internal/auth"
	"github.com/aifinance/aifinance-backend/internal/money"
)

type Handler struct {
	Repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{Repo: repo}
}

func sessionFrom(c *fiber.Ctx) (*auth.Session, bool) {
	sess, ok := c.Locals("session").(*auth.Session)
	return sess, ok && sess != nil && sess.User != nil
}

// Create appends a transaction to the caller's list and echoes it back.
func (h *Handler) Create(c *fiber.Ctx) error {
	sess, ok := sessionFrom(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var body CreateInput
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	txn, err := h.Repo.Add(sess.User.ID, body)
	if err != nil {
		if errors.Is(err, money.ErrInvalidAmount) {
			return fiber.NewError(fiber.StatusBadRequest, "amount must be a positive number")
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(txn)
}

// List returns the caller's transactions, newest first.
func (h *Handler) List(c *fiber.Ctx) error {
	sess, ok := sessionFrom(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	limit := c.QueryInt("limit", 50)
	items, err := h.Repo.List(sess.User.ID, limit)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load transactions")
	}
	if items == nil {
		items = []Transaction{}
	}
	return c.JSON(fiber.Map{"items": items})
}

// GetSummary returns the aggregate cards for the dashboard.
func (h *Handler) GetSummary(c *fiber.Ctx) error {
	sess, ok := sessionFrom(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	s, err := h.Repo.Summary(sess.User.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to compute summary")
	}
	return c.JSON(s)
}
