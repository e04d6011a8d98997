package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/spendwise-app/spendwise-backend/internal/audit"
	"github.com/spendwise-app/spendwise-backend/internal/auth"
	"github.com/spendwise-app/spendwise-backend/internal/budget"
	"github.com/spendwise-app/spendwise-backend/internal/config"
	"github.com/spendwise-app/spendwise-backend/internal/expense"
	apphttp "github.com/spendwise-app/spendwise-backend/internal/http"
	"github.com/spendwise-app/spendwise-backend/internal/reports"
	"github.com/spendwise-app/spendwise-backend/internal/router"
	"github.com/spendwise-app/spendwise-backend/internal/user"
)

func main() {
	_ = godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("error creating pgx pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		slog.Error("error pinging database", "error", err)
		os.Exit(1)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: apphttp.ErrorHandler,
	})

	app.Use(router.CorsMiddleware(cfg.CORSOrigin))
	app.Use(router.RequestLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	recorder := &audit.Recorder{Pool: pool}

	userRepo := user.NewRepository(pool)
	expenseRepo := expense.NewRepository(pool)
	budgetRepo := budget.NewRepository(pool)

	r := &router.Router{
		AuthHandler:    &apphttp.AuthHandler{Users: userRepo, Tokens: tokens, Audit: recorder},
		ExpenseHandler: expense.NewHandler(expenseRepo, recorder),
		BudgetHandler:  budget.NewHandler(budgetRepo, expenseRepo, recorder),
		ReportsHandler: reports.NewHandler(expenseRepo, budgetRepo),
		AuthMW:         auth.Middleware(tokens, pool),
		AuthRL:         router.RateLimitAuth(cfg.AuthRateMax),
		WriteRL:        router.RateLimitWrite(cfg.WriteRateMax),
	}
	r.RegisterRoutes(app)

	slog.Info("listening", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
