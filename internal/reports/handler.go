package reports

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/aifinance/aifinance-backend/internal/auth"
	"github.com/aifinance/aifinance-backend/internal/transactions"
)

type Handler struct {
	Tx *transactions.Repo
}

func NewHandler(tx *transactions.Repo) *Handler {
	return &Handler{Tx: tx}
}

type StatementResponse struct {
	Currency     string                     `json:"currency"`
	From         string                     `json:"from"`
	To           string                     `json:"to"`
	TotalIncome  decimal.Decimal            `json:"total_income"`
	TotalExpense decimal.Decimal            `json:"total_expense"`
	Balance      decimal.Decimal            `json:"balance"`
	Items        []transactions.Transaction `json:"items"`
}

// Statement returns the user's entries for a date range, newest first.
func (h *Handler) Statement(c *fiber.Ctx) error {
	sess, ok := c.Locals("session").(*auth.Session)
	if !ok || sess == nil || sess.User == nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	from, to, err := rangeFromQuery(c)
	if err != nil {
		return err
	}

	resp, err := h.buildStatement(sess.User.ID, from, to)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed statement")
	}
	return c.JSON(resp)
}

func (h *Handler) buildStatement(userID, from, to string) (StatementResponse, error) {
	list, err := h.Tx.List(userID, 0)
	if err != nil {
		return StatementResponse{}, err
	}

	resp := StatementResponse{
		Currency:     "USD",
		From:         from,
		To:           to,
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
		Items:        []transactions.Transaction{},
	}

	for _, t := range list {
		if t.Date < from || t.Date > to {
			continue
		}
		if strings.TrimSpace(t.Currency) != "" {
			resp.Currency = t.Currency
		}
		if t.IsExpense {
			resp.TotalExpense = resp.TotalExpense.Add(t.Amount)
		} else {
			resp.TotalIncome = resp.TotalIncome.Add(t.Amount)
		}
		resp.Items = append(resp.Items, t)
	}
	resp.Balance = resp.TotalIncome.Sub(resp.TotalExpense)
	return resp, nil
}

// rangeFromQuery reads from/to, defaulting to the trailing 30 days.
func rangeFromQuery(c *fiber.Ctx) (string, string, error) {
	from := strings.TrimSpace(c.Query("from"))
	to := strings.TrimSpace(c.Query("to"))
	if from == "" || to == "" {
		end := time.Now()
		start := end.AddDate(0, 0, -29)
		from = start.Format("2006-01-02")
		to = end.Format("2006-01-02")
	}

	if _, err := time.Parse("2006-01-02", from); err != nil {
		return "", "", fiber.NewError(fiber.StatusBadRequest, "from must be YYYY-MM-DD")
	}
	if _, err := time.Parse("2006-01-02", to); err != nil {
		return "", "", fiber.NewError(fiber.StatusBadRequest, "to must be YYYY-MM-DD")
	}
	return from, to, nil
}
