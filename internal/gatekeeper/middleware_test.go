package gatekeeper

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	app.Use(Middleware(zap.NewNop()))
	app.All("/*", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestMiddleware_UnauthenticatedRedirect(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
	assert.Equal(t, "/login?redirect=%2Fdashboard&type=consumer", resp.Header.Get("Location"))
	assert.Equal(t, ReasonUnauthenticated, resp.Header.Get(HeaderRedirectReason))
	assert.Equal(t, "/dashboard", resp.Header.Get(HeaderOriginalPath))
	assert.Equal(t, "visitor", resp.Header.Get(HeaderUserJourney))
}

func TestMiddleware_SecurityHeadersAlwaysSet(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/pricing", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "strict-origin-when-cross-origin", resp.Header.Get("Referrer-Policy"))
	assert.NotEmpty(t, resp.Header.Get(HeaderDuration))
}

func TestMiddleware_BusinessCookieOnConsumerRoute(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: CookieAuthToken, Value: "tok"})
	req.AddCookie(&http.Cookie{Name: CookieUserType, Value: "business"})

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
	assert.Equal(t, "/business/admin", resp.Header.Get("Location"))
	assert.Equal(t, ReasonAccountTypeMismatch, resp.Header.Get(HeaderRedirectReason))
	assert.Equal(t, "business", resp.Header.Get(HeaderUserType))
}

func TestMiddleware_MalformedTypeCookieTreatedAsUntyped(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: CookieAuthToken, Value: "tok"})
	req.AddCookie(&http.Cookie{Name: CookieUserType, Value: "admin"})

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	// Unknown user types are neither business nor consumer; the consumer
	// route passes because only a business type triggers the mismatch rule.
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "authenticated", resp.Header.Get(HeaderUserJourney))
}

func TestMiddleware_APIPassesWithoutAuth(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/api/anything", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Header.Get(HeaderRedirectReason))
}
