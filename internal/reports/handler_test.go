package reports

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aifinance/aifinance-backend/internal/auth"
	"github.com/aifinance/aifinance-backend/internal/domain"
	"github.com/aifinance/aifinance-backend/internal/localstore"
	"github.com/aifinance/aifinance-backend/internal/transactions"
)

func newReportsApp(t *testing.T) (*fiber.App, *transactions.Repo) {
	t.Helper()

	kv, err := localstore.Open(t.TempDir())
	require.NoError(t, err)
	repo := transactions.NewRepo(kv)
	h := NewHandler(repo)

	sess := &auth.Session{
		User:      &domain.User{ID: "u1", AccountType: domain.AccountConsumer},
		Token:     "tok",
		ExpiresAt: time.Now().Add(time.Hour),
	}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("session", sess)
		return c.Next()
	})
	app.Get("/api/reports/statement", h.Statement)
	app.Get("/api/reports/statement.pdf", h.StatementPDF)
	return app, repo
}

func TestStatement_FiltersByRange(t *testing.T) {
	app, repo := newReportsApp(t)

	_, err := repo.Add("u1", transactions.CreateInput{Description: "Inside", Amount: 100, Date: "2026-08-10"})
	require.NoError(t, err)
	_, err = repo.Add("u1", transactions.CreateInput{Description: "Outside", Amount: 50, Date: "2026-06-01", IsExpense: true})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/reports/statement?from=2026-08-01&to=2026-08-31", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body StatementResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Items, 1)
	assert.Equal(t, "Inside", body.Items[0].Description)
	assert.Equal(t, "100", body.TotalIncome.String())
	assert.Equal(t, "0", body.TotalExpense.String())
}

func TestStatement_RejectsBadDates(t *testing.T) {
	app, _ := newReportsApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/reports/statement?from=nope&to=2026-08-31", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStatementPDF_ContentType(t *testing.T) {
	app, repo := newReportsApp(t)

	_, err := repo.Add("u1", transactions.CreateInput{Description: "Coffee", Amount: 4.5, IsExpense: true, Date: "2026-08-10"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/reports/statement.pdf?from=2026-08-01&to=2026-08-31", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "aifinance-statement-")
}
