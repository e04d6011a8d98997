package budget

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spendwise-app/spendwise-backend/internal/auth"
	"github.com/spendwise-app/spendwise-backend/internal/expense"
	apphttp "github.com/spendwise-app/spendwise-backend/internal/http"
)

const (
	aliceID = "11111111-1111-1111-1111-111111111111"
	bobID   = "22222222-2222-2222-2222-222222222222"
)

type memBudgetStore struct {
	items  []Budget
	nextID int
}

func (s *memBudgetStore) ListByUser(_ context.Context, userID string) ([]Budget, error) {
	out := make([]Budget, 0)
	for _, b := range s.items {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

func (s *memBudgetStore) Insert(_ context.Context, b *Budget) error {
	for _, existing := range s.items {
		if existing.UserID == b.UserID && existing.Category == b.Category {
			return ErrDuplicateCategory
		}
	}
	s.nextID++
	b.ID = fmt.Sprintf("00000000-0000-0000-0000-%012d", s.nextID)
	b.CreatedAt = time.Now()
	s.items = append(s.items, *b)
	return nil
}

func (s *memBudgetStore) UpdateAmount(_ context.Context, userID, category string, amount float64) (*Budget, error) {
	for i := range s.items {
		if s.items[i].UserID == userID && s.items[i].Category == category {
			s.items[i].Amount = amount
			b := s.items[i]
			return &b, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memBudgetStore) Delete(_ context.Context, userID, category string) error {
	for i := range s.items {
		if s.items[i].UserID == userID && s.items[i].Category == category {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// memSpend serves fixed per-category totals.
type memSpend map[string]map[string]float64 // userID -> category -> spent

func (m memSpend) SpendByCategory(_ context.Context, userID string, _ expense.DateRange) (map[string]float64, error) {
	return m[userID], nil
}

func newBudgetApp(store Store, spend SpendSource) (*fiber.App, *auth.Tokens) {
	tokens := auth.NewTokens([]byte("test-secret"), time.Hour)
	handler := NewHandler(store, spend, nil)

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	mw := auth.Middleware(tokens, nil)
	app.Get("/api/budget/summary", mw, handler.Summary)
	app.Get("/api/budget", mw, handler.List)
	app.Post("/api/budget", mw, handler.Create)
	app.Put("/api/budget/:category", mw, handler.Update)
	app.Delete("/api/budget/:category", mw, handler.Delete)
	return app, tokens
}

func doJSON(t *testing.T, app *fiber.App, tokens *auth.Tokens, userID, method, path string, payload any) *http.Response {
	t.Helper()
	var raw []byte
	if payload != nil {
		var err error
		raw, err = json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	token, err := tokens.Issue(userID)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func TestCreateBudget(t *testing.T) {
	app, tokens := newBudgetApp(&memBudgetStore{}, memSpend{})

	resp := doJSON(t, app, tokens, aliceID, http.MethodPost, "/api/budget", map[string]any{
		"category": "food", "amount": 100.0,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}

	var b Budget
	if err := json.NewDecoder(resp.Body).Decode(&b); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b.Category != "food" || b.Amount != 100.0 || b.UserID != aliceID {
		t.Errorf("Unexpected budget: %+v", b)
	}
}

func TestCreateBudgetDuplicateCategory(t *testing.T) {
	app, tokens := newBudgetApp(&memBudgetStore{}, memSpend{})

	first := doJSON(t, app, tokens, aliceID, http.MethodPost, "/api/budget", map[string]any{
		"category": "food", "amount": 100.0,
	})
	if first.StatusCode != http.StatusCreated {
		t.Fatalf("Expected status %d, got %d", http.StatusCreated, first.StatusCode)
	}

	dup := doJSON(t, app, tokens, aliceID, http.MethodPost, "/api/budget", map[string]any{
		"category": "food", "amount": 200.0,
	})
	if dup.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status %d for duplicate, got %d", http.StatusBadRequest, dup.StatusCode)
	}

	// The same category is allowed for a different user.
	other := doJSON(t, app, tokens, bobID, http.MethodPost, "/api/budget", map[string]any{
		"category": "food", "amount": 50.0,
	})
	if other.StatusCode != http.StatusCreated {
		t.Errorf("Expected status %d for another user, got %d", http.StatusCreated, other.StatusCode)
	}
}

func TestBudgetValidation(t *testing.T) {
	app, tokens := newBudgetApp(&memBudgetStore{}, memSpend{})

	cases := []map[string]any{
		{"category": "gadgets", "amount": 100.0},
		{"category": "food", "amount": 0.0},
		{"category": "food", "amount": -5.0},
	}
	for _, payload := range cases {
		resp := doJSON(t, app, tokens, aliceID, http.MethodPost, "/api/budget", payload)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected status %d for %v, got %d", http.StatusBadRequest, payload, resp.StatusCode)
		}
	}
}

func TestUpdateDeleteBudgetByCategory(t *testing.T) {
	app, tokens := newBudgetApp(&memBudgetStore{}, memSpend{})

	doJSON(t, app, tokens, aliceID, http.MethodPost, "/api/budget", map[string]any{
		"category": "food", "amount": 100.0,
	})

	resp := doJSON(t, app, tokens, aliceID, http.MethodPut, "/api/budget/food", map[string]any{
		"amount": 150.0,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	var b Budget
	if err := json.NewDecoder(resp.Body).Decode(&b); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b.Amount != 150.0 {
		t.Errorf("Expected amount 150, got %v", b.Amount)
	}

	resp = doJSON(t, app, tokens, aliceID, http.MethodPut, "/api/budget/travel", map[string]any{
		"amount": 10.0,
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected status %d for unbudgeted category, got %d", http.StatusNotFound, resp.StatusCode)
	}

	resp = doJSON(t, app, tokens, aliceID, http.MethodDelete, "/api/budget/food", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	resp = doJSON(t, app, tokens, aliceID, http.MethodDelete, "/api/budget/food", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected status %d for a second delete, got %d", http.StatusNotFound, resp.StatusCode)
	}
}

func TestBudgetSummary(t *testing.T) {
	spend := memSpend{aliceID: {"food": 4.5, "travel": 260.0}}
	app, tokens := newBudgetApp(&memBudgetStore{}, spend)

	doJSON(t, app, tokens, aliceID, http.MethodPost, "/api/budget", map[string]any{
		"category": "food", "amount": 100.0,
	})
	doJSON(t, app, tokens, aliceID, http.MethodPost, "/api/budget", map[string]any{
		"category": "travel", "amount": 200.0,
	})
	doJSON(t, app, tokens, aliceID, http.MethodPost, "/api/budget", map[string]any{
		"category": "housing", "amount": 800.0,
	})

	resp := doJSON(t, app, tokens, aliceID, http.MethodGet, "/api/budget/summary", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var rows []SummaryRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}

	byCat := make(map[string]SummaryRow, len(rows))
	for _, r := range rows {
		byCat[r.Category] = r
	}

	food := byCat["food"]
	if food.Budgeted != 100.0 || food.Spent != 4.5 || food.Remaining != 95.5 {
		t.Errorf("Unexpected food row: %+v", food)
	}
	if food.PercentUsed != "4.50" {
		t.Errorf("Expected percentUsed \"4.50\", got %q", food.PercentUsed)
	}

	// Overspent: percent clamps at 100, remaining goes negative.
	travel := byCat["travel"]
	if travel.PercentUsed != "100.00" {
		t.Errorf("Expected clamped percentUsed \"100.00\", got %q", travel.PercentUsed)
	}
	if travel.Remaining != -60.0 {
		t.Errorf("Expected remaining -60, got %v", travel.Remaining)
	}

	// No spending at all.
	housing := byCat["housing"]
	if housing.Spent != 0 || housing.PercentUsed != "0.00" {
		t.Errorf("Unexpected housing row: %+v", housing)
	}
}
