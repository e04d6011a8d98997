package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spendwise-app/spendwise-backend/internal/budget"
	"github.com/spendwise-app/spendwise-backend/internal/expense"
	handlers "github.com/spendwise-app/spendwise-backend/internal/http"
	"github.com/spendwise-app/spendwise-backend/internal/reports"
)

type Router struct {
	AuthHandler    *handlers.AuthHandler
	ExpenseHandler *expense.Handler
	BudgetHandler  *budget.Handler
	ReportsHandler *reports.Handler

	AuthMW  fiber.Handler
	AuthRL  fiber.Handler
	WriteRL fiber.Handler
}

func (r *Router) RegisterRoutes(app *fiber.App) {
	authRL := r.AuthRL
	if authRL == nil {
		authRL = passthrough
	}
	writeRL := r.WriteRL
	if writeRL == nil {
		writeRL = passthrough
	}

	app.Post("/api/auth/signup", authRL, r.AuthHandler.Signup)
	app.Post("/api/auth/login", authRL, r.AuthHandler.Login)
	app.Get("/api/me", r.AuthMW, r.AuthHandler.Me)

	// Static segments must be registered before the :id route.
	app.Get("/api/expense/summary/categories", r.AuthMW, r.ExpenseHandler.Summary)
	app.Get("/api/expense/export/csv", r.AuthMW, r.ReportsHandler.ExportCSV)
	app.Get("/api/expense/export/pdf", r.AuthMW, r.ReportsHandler.ExportPDF)
	app.Get("/api/expense", r.AuthMW, r.ExpenseHandler.List)
	app.Get("/api/expense/:id", r.AuthMW, r.ExpenseHandler.Get)
	app.Post("/api/expense", r.AuthMW, writeRL, r.ExpenseHandler.Create)
	app.Put("/api/expense/:id", r.AuthMW, writeRL, r.ExpenseHandler.Update)
	app.Delete("/api/expense/:id", r.AuthMW, writeRL, r.ExpenseHandler.Delete)

	app.Get("/api/budget/summary", r.AuthMW, r.BudgetHandler.Summary)
	app.Get("/api/budget", r.AuthMW, r.BudgetHandler.List)
	app.Post("/api/budget", r.AuthMW, writeRL, r.BudgetHandler.Create)
	app.Put("/api/budget/:category", r.AuthMW, writeRL, r.BudgetHandler.Update)
	app.Delete("/api/budget/:category", r.AuthMW, writeRL, r.BudgetHandler.Delete)

	app.Get("/api/dashboard", r.AuthMW, r.ReportsHandler.Dashboard)
}

func passthrough(c *fiber.Ctx) error {
	return c.Next()
}
