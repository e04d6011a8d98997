package reports

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendwise-app/spendwise-backend/internal/budget"
	"github.com/spendwise-app/spendwise-backend/internal/expense"
)

// AlertThreshold is the budget usage percentage that triggers an alert.
const AlertThreshold = 80.0

type DayTotal struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

type BudgetAlert struct {
	Category    string  `json:"category"`
	PercentUsed float64 `json:"percentUsed"`
}

type Dashboard struct {
	CurrentMonthTotal float64         `json:"currentMonthTotal"`
	Last7DaysTotal    float64         `json:"last7DaysTotal"`
	Last7Days         []DayTotal      `json:"last7Days"`
	CategoryTotals    []CategoryTotal `json:"categoryTotals"`
	Alerts            []BudgetAlert   `json:"alerts"`
}

// CurrentMonth keeps expenses dated in the same month as now.
func CurrentMonth(expenses []expense.Expense, now time.Time) []expense.Expense {
	out := make([]expense.Expense, 0)
	for _, e := range expenses {
		if e.Date.Year() == now.Year() && e.Date.Month() == now.Month() {
			out = append(out, e)
		}
	}
	return out
}

// LastNDays keeps expenses from the n calendar days ending today.
func LastNDays(expenses []expense.Expense, now time.Time, n int) []expense.Expense {
	start := now.AddDate(0, 0, -(n - 1)).Truncate(24 * time.Hour)
	out := make([]expense.Expense, 0)
	for _, e := range expenses {
		if !e.Date.Before(start) && !e.Date.After(now) {
			out = append(out, e)
		}
	}
	return out
}

func Total(expenses []expense.Expense) float64 {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(decimal.NewFromFloat(e.Amount))
	}
	return total.InexactFloat64()
}

// DailyTotals buckets the last n days into one entry per day, oldest
// first, including zero days so bar charts stay aligned.
func DailyTotals(expenses []expense.Expense, now time.Time, n int) []DayTotal {
	byDay := make(map[string]decimal.Decimal, n)
	for _, e := range LastNDays(expenses, now, n) {
		key := e.Date.Format("2006-01-02")
		byDay[key] = byDay[key].Add(decimal.NewFromFloat(e.Amount))
	}

	out := make([]DayTotal, 0, n)
	for i := n - 1; i >= 0; i-- {
		key := now.AddDate(0, 0, -i).Format("2006-01-02")
		out = append(out, DayTotal{Date: key, Total: byDay[key].InexactFloat64()})
	}
	return out
}

// CategoryTotals sums per category, sorted descending by total.
func CategoryTotals(expenses []expense.Expense) []CategoryTotal {
	byCat := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		byCat[e.Category] = byCat[e.Category].Add(decimal.NewFromFloat(e.Amount))
	}

	out := make([]CategoryTotal, 0, len(byCat))
	for cat, total := range byCat {
		out = append(out, CategoryTotal{Category: cat, Total: total.InexactFloat64()})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// BudgetAlerts flags budgets whose usage crossed the threshold. The
// percentage is left unclamped; clamping is a display concern.
func BudgetAlerts(budgets []budget.Budget, spend map[string]float64) []BudgetAlert {
	out := make([]BudgetAlert, 0)
	for _, b := range budgets {
		pct := budget.PercentUsed(b.Amount, spend[b.Category])
		if pct >= AlertThreshold {
			out = append(out, BudgetAlert{Category: b.Category, PercentUsed: pct})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PercentUsed > out[j].PercentUsed })
	return out
}
