package admin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aifinance/aifinance-backend/internal/auth"
	"github.com/aifinance/aifinance-backend/internal/localstore"
	"github.com/aifinance/aifinance-backend/internal/transactions"
)

func TestRequireAdminAPIKey(t *testing.T) {
	t.Setenv("ADMIN_API_KEY", "sekret")

	app := fiber.New()
	app.Get("/api/admin/stats", RequireAdminAPIKey(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	t.Run("missing key rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid key passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
		req.Header.Set("X-Admin-Key", "sekret")
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestStats(t *testing.T) {
	kv, err := localstore.Open(t.TempDir())
	require.NoError(t, err)
	authStore := auth.NewStore(kv, 0)
	txRepo := transactions.NewRepo(kv)

	sess, err := authStore.Login("jane@gmail.com", "secret1")
	require.NoError(t, err)
	_, err = txRepo.Add(sess.User.ID, transactions.CreateInput{Description: "Coffee", Amount: 3})
	require.NoError(t, err)

	app := fiber.New()
	h := NewHandler(kv, authStore)
	app.Get("/stats", h.Stats)

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body StatsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.SessionActive)
	assert.Equal(t, sess.User.ID, body.SessionUserID)
	assert.Equal(t, []string{sess.User.ID}, body.TransactionLists)
	assert.GreaterOrEqual(t, body.StoreKeys, 4)
}
