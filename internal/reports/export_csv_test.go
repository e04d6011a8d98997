package reports

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/spendwise-app/spendwise-backend/internal/expense"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestBuildCSV(t *testing.T) {
	expenses := []expense.Expense{
		{Description: "Coffee", Amount: 4.50, Category: "food", Date: day("2024-01-05")},
		{Description: "Train, downtown", Amount: 2.75, Category: "transportation", Date: day("2024-01-04")},
	}

	data, err := BuildCSV(expenses)
	if err != nil {
		t.Fatalf("BuildCSV: %v", err)
	}

	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("parse generated CSV: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("Expected header + 2 rows + totals, got %d rows", len(rows))
	}

	header := strings.Join(rows[0], ",")
	if header != "Date,Description,Category,Amount" {
		t.Errorf("Unexpected header: %s", header)
	}
	if rows[1][0] != "2024-01-05" || rows[1][3] != "4.50" {
		t.Errorf("Unexpected first row: %v", rows[1])
	}
	// Commas inside fields survive the round trip.
	if rows[2][1] != "Train, downtown" {
		t.Errorf("Unexpected second row: %v", rows[2])
	}

	totals := rows[3]
	if totals[2] != "Total" || totals[3] != "7.25" {
		t.Errorf("Unexpected totals row: %v", totals)
	}
}

func TestBuildCSVEmpty(t *testing.T) {
	data, err := BuildCSV(nil)
	if err != nil {
		t.Fatalf("BuildCSV: %v", err)
	}

	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("parse generated CSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected header + totals, got %d rows", len(rows))
	}
	if rows[1][3] != "0.00" {
		t.Errorf("Expected zero total, got %v", rows[1])
	}
}

func TestBuildPDF(t *testing.T) {
	start, end := day("2024-01-01"), day("2024-01-31")
	expenses := []expense.Expense{
		{Description: "Coffee", Amount: 4.50, Category: "food", Date: day("2024-01-05")},
	}

	data, err := BuildPDF(expenses, expense.DateRange{Start: &start, End: &end}, "food")
	if err != nil {
		t.Fatalf("BuildPDF: %v", err)
	}
	if len(data) == 0 || !strings.HasPrefix(string(data), "%PDF") {
		t.Errorf("Expected a PDF document, got %d bytes", len(data))
	}
}

func TestBuildPDFPaginates(t *testing.T) {
	expenses := make([]expense.Expense, 120)
	for i := range expenses {
		expenses[i] = expense.Expense{
			Description: "Item",
			Amount:      1.00,
			Category:    "other",
			Date:        day("2024-01-05"),
		}
	}

	data, err := BuildPDF(expenses, expense.DateRange{}, "")
	if err != nil {
		t.Fatalf("BuildPDF: %v", err)
	}
	// 120 rows cannot fit on one A4 page. A single-page document has
	// one /Type /Page object plus the /Type /Pages tree node.
	if n := strings.Count(string(data), "/Type /Page"); n < 3 {
		t.Errorf("Expected a multi-page document, found %d page markers", n)
	}
}
