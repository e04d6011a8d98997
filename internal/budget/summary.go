package budget

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// BuildSummary joins budgets against per-category spending totals.
// Money math runs through decimals so repeated cents never drift.
func BuildSummary(budgets []Budget, spend map[string]float64) []SummaryRow {
	rows := make([]SummaryRow, 0, len(budgets))
	for _, b := range budgets {
		budgeted := decimal.NewFromFloat(b.Amount)
		spent := decimal.NewFromFloat(spend[b.Category])
		remaining := budgeted.Sub(spent)

		percent := decimal.Zero
		if budgeted.IsPositive() {
			percent = spent.Div(budgeted).Mul(hundred)
		}
		if percent.GreaterThan(hundred) {
			percent = hundred
		}

		rows = append(rows, SummaryRow{
			Category:    b.Category,
			Budgeted:    budgeted.InexactFloat64(),
			Spent:       spent.InexactFloat64(),
			Remaining:   remaining.InexactFloat64(),
			PercentUsed: percent.StringFixed(2),
		})
	}
	return rows
}

// PercentUsed reports spent/budgeted*100 unclamped, for callers that
// need the raw ratio (alert thresholds).
func PercentUsed(budgeted, spent float64) float64 {
	if budgeted <= 0 {
		return 0
	}
	b := decimal.NewFromFloat(budgeted)
	s := decimal.NewFromFloat(spent)
	return s.Div(b).Mul(hundred).InexactFloat64()
}
