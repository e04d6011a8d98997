package expense

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spendwise-app/spendwise-backend/internal/audit"
	"github.com/spendwise-app/spendwise-backend/internal/auth"
	"github.com/spendwise-app/spendwise-backend/internal/domain"
)

type Handler struct {
	Store Store
	Audit *audit.Recorder
}

func NewHandler(store Store, rec *audit.Recorder) *Handler {
	return &Handler{Store: store, Audit: rec}
}

type upsertRequest struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
}

// validate normalizes the request body into Fields, defaulting the
// date to now when omitted.
func (req *upsertRequest) validate() (Fields, *fiber.Error) {
	var f Fields

	f.Description = strings.TrimSpace(req.Description)
	if f.Description == "" {
		return f, fiber.NewError(fiber.StatusBadRequest, "description is required")
	}

	if req.Amount <= 0 || math.IsNaN(req.Amount) || math.IsInf(req.Amount, 0) {
		return f, fiber.NewError(fiber.StatusBadRequest, "amount must be greater than zero")
	}
	f.Amount = req.Amount

	f.Category = domain.NormalizeCategory(req.Category)
	if f.Category == "" {
		return f, fiber.NewError(fiber.StatusBadRequest, "category is not one of the known categories")
	}

	if strings.TrimSpace(req.Date) == "" {
		f.Date = time.Now().UTC()
	} else {
		date, err := ParseDate(req.Date)
		if err != nil {
			return f, fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD")
		}
		f.Date = date
	}

	return f, nil
}

func (h *Handler) List(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	rng, err := ParseDateRange(c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	items, err := h.Store.ListByUser(userContext(c), userID, rng)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error fetching expenses")
	}
	return c.JSON(items)
}

func (h *Handler) Get(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	id, ok := parseID(c)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Expense not found")
	}

	e, err := h.Store.GetByID(userContext(c), userID, id)
	if err != nil {
		if err == ErrNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Expense not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Error fetching expense")
	}
	return c.JSON(e)
}

func (h *Handler) Create(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var req upsertRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	f, ferr := req.validate()
	if ferr != nil {
		return ferr
	}

	e := &Expense{
		UserID:      userID,
		Description: f.Description,
		Amount:      f.Amount,
		Category:    f.Category,
		Date:        f.Date,
	}
	if err := h.Store.Insert(userContext(c), e); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error creating expense")
	}

	h.Audit.Record(userContext(c), audit.Entry{
		UserID:     userID,
		Action:     "expense.create",
		EntityType: "expense",
		EntityID:   e.ID,
		IP:         c.IP(),
	})

	return c.Status(fiber.StatusCreated).JSON(e)
}

func (h *Handler) Update(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	id, ok := parseID(c)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Expense not found")
	}

	var req upsertRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	f, ferr := req.validate()
	if ferr != nil {
		return ferr
	}

	e, err := h.Store.Update(userContext(c), userID, id, f)
	if err != nil {
		if err == ErrNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Expense not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Error updating expense")
	}

	h.Audit.Record(userContext(c), audit.Entry{
		UserID:     userID,
		Action:     "expense.update",
		EntityType: "expense",
		EntityID:   e.ID,
		IP:         c.IP(),
	})

	return c.JSON(e)
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	id, ok := parseID(c)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Expense not found")
	}

	if err := h.Store.Delete(userContext(c), userID, id); err != nil {
		if err == ErrNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Expense not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Error deleting expense")
	}

	h.Audit.Record(userContext(c), audit.Entry{
		UserID:     userID,
		Action:     "expense.delete",
		EntityType: "expense",
		EntityID:   id,
		IP:         c.IP(),
	})

	return c.JSON(fiber.Map{"message": "Expense deleted successfully"})
}

func (h *Handler) Summary(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	rng, err := ParseDateRange(c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	summary, err := h.Store.SummaryByCategory(userContext(c), userID, rng)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error generating expense summary")
	}
	return c.JSON(summary)
}

// parseID rejects malformed uuids up front; they can never match an
// owned record, so the caller treats them as not found.
func parseID(c *fiber.Ctx) (string, bool) {
	id := strings.TrimSpace(c.Params("id"))
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
