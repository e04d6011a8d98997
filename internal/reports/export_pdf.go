package reports

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/spendwise-app/spendwise-backend/internal/expense"
)

// BuildPDF renders the filtered expense list as a paginated table.
func BuildPDF(expenses []expense.Expense, rng expense.DateRange, category string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Expense Report", false)
	pdf.SetAutoPageBreak(false, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Expense Report")
	pdf.Ln(10)

	if rng.Start != nil || rng.End != nil {
		pdf.SetFont("Helvetica", "", 12)
		start, end := "All", "All"
		if rng.Start != nil {
			start = rng.Start.Format("2006-01-02")
		}
		if rng.End != nil {
			end = rng.End.Format("2006-01-02")
		}
		pdf.Cell(0, 8, fmt.Sprintf("Date Range: %s to %s", start, end))
		pdf.Ln(8)
	}
	if category != "" {
		pdf.SetFont("Helvetica", "", 12)
		pdf.Cell(0, 8, "Category: "+titleCase(category))
		pdf.Ln(8)
	}
	pdf.Ln(2)

	writeHeader(pdf)

	_, pageH := pdf.GetPageSize()
	total := decimal.Zero
	for _, e := range expenses {
		if pdf.GetY() > pageH-25 {
			pdf.AddPage()
			writeHeader(pdf)
		}
		amount := decimal.NewFromFloat(e.Amount)
		total = total.Add(amount)

		pdf.SetFont("Helvetica", "", 10)
		pdf.Cell(28, 7, e.Date.Format("01/02/2006"))
		pdf.Cell(82, 7, truncate(e.Description, 48))
		pdf.Cell(40, 7, titleCase(e.Category))
		pdf.Cell(30, 7, amount.StringFixed(2))
		pdf.Ln(7)
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(150, 8, "Total")
	pdf.Cell(30, 8, total.StringFixed(2))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeHeader(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(28, 7, "Date")
	pdf.Cell(82, 7, "Description")
	pdf.Cell(40, 7, "Category")
	pdf.Cell(30, 7, "Amount")
	pdf.Ln(8)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
