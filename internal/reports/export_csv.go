package reports

import (
	"bytes"
	"encoding/csv"

	"github.com/shopspring/decimal"

	"github.com/spendwise-app/spendwise-backend/internal/expense"
)

// BuildCSV renders expenses as Date,Description,Category,Amount rows
// with a totals row appended.
func BuildCSV(expenses []expense.Expense) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Date", "Description", "Category", "Amount"}); err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, e := range expenses {
		amount := decimal.NewFromFloat(e.Amount)
		total = total.Add(amount)
		row := []string{
			e.Date.Format("2006-01-02"),
			e.Description,
			e.Category,
			amount.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	if err := w.Write([]string{"", "", "Total", total.StringFixed(2)}); err != nil {
		return nil, err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
