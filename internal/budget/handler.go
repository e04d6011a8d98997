package budget

import (
	"context"
	"math"

	"github.com/gofiber/fiber/v2"

	"github.com/spendwise-app/spendwise-backend/internal/audit"
	"github.com/spendwise-app/spendwise-backend/internal/auth"
	"github.com/spendwise-app/spendwise-backend/internal/domain"
	"github.com/spendwise-app/spendwise-backend/internal/expense"
)

// SpendSource supplies aggregated expense totals for the summary
// endpoint; *expense.Repository satisfies it.
type SpendSource interface {
	SpendByCategory(ctx context.Context, userID string, rng expense.DateRange) (map[string]float64, error)
}

type Handler struct {
	Store Store
	Spend SpendSource
	Audit *audit.Recorder
}

func NewHandler(store Store, spend SpendSource, rec *audit.Recorder) *Handler {
	return &Handler{Store: store, Spend: spend, Audit: rec}
}

type createRequest struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

type updateRequest struct {
	Amount float64 `json:"amount"`
}

func (h *Handler) List(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	items, err := h.Store.ListByUser(userContext(c), userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error fetching budgets")
	}
	return c.JSON(items)
}

func (h *Handler) Create(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	category := domain.NormalizeCategory(req.Category)
	if category == "" {
		return fiber.NewError(fiber.StatusBadRequest, "category is not one of the known categories")
	}
	if !validAmount(req.Amount) {
		return fiber.NewError(fiber.StatusBadRequest, "amount must be greater than zero")
	}

	b := &Budget{UserID: userID, Category: category, Amount: req.Amount}
	if err := h.Store.Insert(userContext(c), b); err != nil {
		if err == ErrDuplicateCategory {
			return fiber.NewError(fiber.StatusBadRequest,
				"Budget for this category already exists. Use update instead.")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Error creating budget")
	}

	h.Audit.Record(userContext(c), audit.Entry{
		UserID:     userID,
		Action:     "budget.create",
		EntityType: "budget",
		EntityID:   b.ID,
		IP:         c.IP(),
	})

	return c.Status(fiber.StatusCreated).JSON(b)
}

func (h *Handler) Update(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	category := domain.NormalizeCategory(c.Params("category"))
	if category == "" {
		return fiber.NewError(fiber.StatusNotFound, "Budget not found for this category")
	}

	var req updateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if !validAmount(req.Amount) {
		return fiber.NewError(fiber.StatusBadRequest, "amount must be greater than zero")
	}

	b, err := h.Store.UpdateAmount(userContext(c), userID, category, req.Amount)
	if err != nil {
		if err == ErrNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Budget not found for this category")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Error updating budget")
	}

	h.Audit.Record(userContext(c), audit.Entry{
		UserID:     userID,
		Action:     "budget.update",
		EntityType: "budget",
		EntityID:   b.ID,
		IP:         c.IP(),
	})

	return c.JSON(b)
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	category := domain.NormalizeCategory(c.Params("category"))
	if category == "" {
		return fiber.NewError(fiber.StatusNotFound, "Budget not found for this category")
	}

	if err := h.Store.Delete(userContext(c), userID, category); err != nil {
		if err == ErrNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Budget not found for this category")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Error deleting budget")
	}

	h.Audit.Record(userContext(c), audit.Entry{
		UserID:     userID,
		Action:     "budget.delete",
		EntityType: "budget",
		EntityID:   category,
		IP:         c.IP(),
	})

	return c.JSON(fiber.Map{"message": "Budget deleted successfully"})
}

func (h *Handler) Summary(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	rng, err := expense.ParseDateRange(c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	ctx := userContext(c)
	spend, err := h.Spend.SpendByCategory(ctx, userID, rng)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error generating budget summary")
	}
	budgets, err := h.Store.ListByUser(ctx, userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error generating budget summary")
	}

	return c.JSON(BuildSummary(budgets, spend))
}

func validAmount(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
