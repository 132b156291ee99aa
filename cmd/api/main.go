package main

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/aifinance/aifinance-backend/internal/admin"
	"github.com/aifinance/aifinance-backend/internal/auth"
	"github.com/aifinance/aifinance-backend/internal/config"
	"github.com/aifinance/aifinance-backend/internal/gatekeeper"
	apphttp "github.com/aifinance/aifinance-backend/internal/http"
	"github.com/aifinance/aifinance-backend/internal/localstore"
	"github.com/aifinance/aifinance-backend/internal/reports"
	"github.com/aifinance/aifinance-backend/internal/router"
	"github.com/aifinance/aifinance-backend/internal/summary"
	"github.com/aifinance/aifinance-backend/internal/transactions"
)

func main() {
	cfg, err := config.Load(os.Getenv("AIFINANCE_CONFIG"))
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	logger, err := buildLogger(cfg)
	if err != nil {
		log.Fatalf("error building logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	kv, err := localstore.Open(cfg.DataDir)
	if err != nil {
		logger.Fatal("error opening record store", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "internal server error"

			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
				message = fiberErr.Message
			}

			return c.Status(code).JSON(fiber.Map{"error": message})
		},
	})

	app.Use(router.CorsMiddleware(cfg.CORSOrigin))
	app.Use(requestLogger(logger))
	app.Use(gatekeeper.Middleware(logger))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	authStore := auth.NewStore(kv, cfg.AuthLatency)
	txRepo := transactions.NewRepo(kv)

	r := &router.Router{
		AuthHandler: &apphttp.AuthHandler{
			Auth:         authStore,
			KV:           kv,
			CookieSecure: cfg.CookieSecure,
		},
		PageHandler:    &apphttp.PageHandler{},
		TxHandler:      transactions.NewHandler(txRepo),
		SummaryHandler: &summary.Handler{Repo: summary.Repo{Tx: txRepo}},
		ReportsHandler: reports.NewHandler(txRepo),
		AdminHandler:   admin.NewHandler(kv, authStore),
		SessionMW:      apphttp.SessionMiddleware(authStore),
		AuthRL:         router.RateLimitAuth(cfg.RateLimitAuthMax, cfg.RateLimitAuthWindow),
		WriteRL:        router.RateLimitWrite(cfg.RateLimitWriteMax, cfg.RateLimitWriteWindow),
	}
	r.RegisterRoutes(app)

	logger.Info("listening", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func buildLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func requestLogger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		logger.Info("request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
		)
		return err
	}
}
