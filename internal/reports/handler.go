package reports

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spendwise-app/spendwise-backend/internal/auth"
	"github.com/spendwise-app/spendwise-backend/internal/budget"
	"github.com/spendwise-app/spendwise-backend/internal/domain"
	"github.com/spendwise-app/spendwise-backend/internal/expense"
)

type Handler struct {
	Expenses expense.Store
	Budgets  budget.Store

	// now is swappable in tests; defaults to time.Now.
	now func() time.Time
}

func NewHandler(expenses expense.Store, budgets budget.Store) *Handler {
	return &Handler{Expenses: expenses, Budgets: budgets, now: time.Now}
}

// fetchFiltered loads owner-scoped expenses for the request's date
// range and optional category filter.
func (h *Handler) fetchFiltered(c *fiber.Ctx) ([]expense.Expense, expense.DateRange, string, error) {
	userID, ok := auth.UserID(c)
	if !ok {
		return nil, expense.DateRange{}, "", fiber.ErrUnauthorized
	}

	rng, err := expense.ParseDateRange(c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		return nil, rng, "", fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	category := ""
	if raw := strings.TrimSpace(c.Query("category")); raw != "" {
		category = domain.NormalizeCategory(raw)
		if category == "" {
			return nil, rng, "", fiber.NewError(fiber.StatusBadRequest, "category is not one of the known categories")
		}
	}

	items, err := h.Expenses.ListByUser(userContext(c), userID, rng)
	if err != nil {
		return nil, rng, "", fiber.NewError(fiber.StatusInternalServerError, "Error fetching expenses")
	}

	if category != "" {
		filtered := make([]expense.Expense, 0, len(items))
		for _, e := range items {
			if e.Category == category {
				filtered = append(filtered, e)
			}
		}
		items = filtered
	}
	return items, rng, category, nil
}

func (h *Handler) ExportCSV(c *fiber.Ctx) error {
	items, _, _, err := h.fetchFiltered(c)
	if err != nil {
		return err
	}

	data, err := BuildCSV(items)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error generating CSV")
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="expenses.csv"`)
	return c.Send(data)
}

func (h *Handler) ExportPDF(c *fiber.Ctx) error {
	items, rng, category, err := h.fetchFiltered(c)
	if err != nil {
		return err
	}

	data, err := BuildPDF(items, rng, category)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error generating PDF")
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="expenses.pdf"`)
	return c.Send(data)
}

// Dashboard computes the derived aggregates the home screen renders:
// current-month and last-7-days totals, category totals, and budget
// alerts at the fixed threshold.
func (h *Handler) Dashboard(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	ctx := userContext(c)
	expenses, err := h.Expenses.ListByUser(ctx, userID, expense.DateRange{})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error fetching expenses")
	}
	budgets, err := h.Budgets.ListByUser(ctx, userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error fetching budgets")
	}

	now := h.now()
	monthExpenses := CurrentMonth(expenses, now)

	spend := make(map[string]float64, len(monthExpenses))
	for _, ct := range CategoryTotals(monthExpenses) {
		spend[ct.Category] = ct.Total
	}

	return c.JSON(Dashboard{
		CurrentMonthTotal: Total(monthExpenses),
		Last7DaysTotal:    Total(LastNDays(expenses, now, 7)),
		Last7Days:         DailyTotals(expenses, now, 7),
		CategoryTotals:    CategoryTotals(monthExpenses),
		Alerts:            BudgetAlerts(budgets, spend),
	})
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
