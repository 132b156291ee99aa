package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aifinance/aifinance-backend/internal/admin"
	handlers "github.com/aifinance/aifinance-backend/internal/http"
	"github.com/aifinance/aifinance-backend/internal/reports"
	"github.com/aifinance/aifinance-backend/internal/summary"
	"github.com/aifinance/aifinance-backend/internal/transactions"
)

type Router struct {
	AuthHandler    *handlers.AuthHandler
	PageHandler    *handlers.PageHandler
	TxHandler      *transactions.Handler
	SummaryHandler *summary.Handler
	ReportsHandler *reports.Handler
	AdminHandler   *admin.Handler

	SessionMW fiber.Handler
	AuthRL    fiber.Handler
	WriteRL   fiber.Handler
}

func (r *Router) RegisterRoutes(app *fiber.App) {
	if r.AuthHandler != nil {
		app.Post("/api/auth/login", r.AuthRL, r.AuthHandler.Login)
		app.Post("/api/auth/register", r.AuthRL, r.AuthHandler.Register)
		app.Post("/api/auth/logout", r.AuthHandler.Logout)
		app.Post("/api/auth/switch", r.SessionMW, r.AuthHandler.Switch)
		app.Get("/api/me", r.SessionMW, r.AuthHandler.Me)
		app.Get("/api/me/flags", r.AuthHandler.Flags)
	}

	if r.TxHandler != nil {
		app.Post("/api/transactions", r.SessionMW, r.WriteRL, r.TxHandler.Create)
		app.Get("/api/transactions", r.SessionMW, r.TxHandler.List)
		app.Get("/api/transactions/summary", r.SessionMW, r.TxHandler.GetSummary)
	}

	if r.SummaryHandler != nil {
		app.Get("/api/summary", r.SessionMW, r.SummaryHandler.GetSummary)
	}

	if r.ReportsHandler != nil {
		app.Get("/api/reports/statement", r.SessionMW, r.ReportsHandler.Statement)
		app.Get("/api/reports/statement.pdf", r.SessionMW, r.ReportsHandler.StatementPDF)
	}

	if r.AdminHandler != nil {
		adminMW := admin.RequireAdminAPIKey()
		app.Get("/api/admin/stats", adminMW, r.AdminHandler.Stats)
		app.Get("/api/admin/audit", adminMW, r.AdminHandler.Audit)
	}

	// Page stubs last: everything the API did not claim renders a routing
	// document for the gatekeeper to act on.
	if r.PageHandler != nil {
		app.Get("/*", r.PageHandler.Serve)
	}
}
