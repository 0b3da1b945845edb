package report

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/expense-tools/expense-atlas/pkg/models/domain"
)

// RenderCSV serializes filtered expenses as the export document: a header
// row, one row per expense in store order, a category-totals section in
// first-seen order, and the grand total. Every field is double-quoted;
// withUsername drops the Username column for user-scoped exports.
func RenderCSV(expenses []domain.Expense, kind domain.ReportKind, withUsername bool) []byte {
	var csv strings.Builder

	dateHeader := "Date"
	if kind == domain.ReportMonthly {
		dateHeader = "Month"
	}

	if withUsername {
		writeRow(&csv, "Username", dateHeader, "Category", "Amount", "Note")
	} else {
		writeRow(&csv, dateHeader, "Category", "Amount", "Note")
	}

	totals := make(map[string]decimal.Decimal)
	order := make([]string, 0)
	grandTotal := decimal.Zero

	for _, e := range expenses {
		category := e.DisplayCategory()
		date := displayDate(e.ExpenseDate, kind)

		if withUsername {
			writeRow(&csv, e.Username, date, category, e.Amount.String(), e.Note)
		} else {
			writeRow(&csv, date, category, e.Amount.String(), e.Note)
		}

		if _, seen := totals[category]; !seen {
			order = append(order, category)
		}
		totals[category] = totals[category].Add(e.Amount)
		grandTotal = grandTotal.Add(e.Amount)
	}

	csv.WriteString("\n")
	writeRow(&csv, "--- Category Totals ---")
	writeRow(&csv, "Category", "Total Amount")
	for _, category := range order {
		writeRow(&csv, category, totals[category].String())
	}

	csv.WriteString("\n")
	writeRow(&csv, "Total Expense:", grandTotal.String())

	return []byte(csv.String())
}

func writeRow(b *strings.Builder, fields ...string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(`"`)
		b.WriteString(sanitize(f))
		b.WriteString(`"`)
	}
	b.WriteString("\n")
}

// sanitize renders blank fields as empty strings and doubles embedded
// quotes. Commas need no treatment since every field is quoted.
func sanitize(field string) string {
	if strings.TrimSpace(field) == "" {
		return ""
	}
	return strings.ReplaceAll(field, `"`, `""`)
}
