package report

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/expense-tools/expense-atlas/pkg/models/domain"
)

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRenderCSV(t *testing.T) {
	t.Run("empty input renders headers and zero total", func(t *testing.T) {
		doc := RenderCSV(nil, domain.ReportDaily, true)

		expected := strings.Join([]string{
			`"Username","Date","Category","Amount","Note"`,
			``,
			`"--- Category Totals ---"`,
			`"Category","Total Amount"`,
			``,
			`"Total Expense:","0"`,
			``,
		}, "\n")
		assert.Equal(t, expected, string(doc))
	})

	t.Run("full document with rows and totals in first-seen order", func(t *testing.T) {
		expenses := []domain.Expense{
			{
				Username:     "alice",
				CategoryName: "Travel",
				Amount:       amount("100"),
				ExpenseDate:  date(2024, time.March, 1),
				Note:         "flight",
			},
			{
				Username:     "bob",
				CategoryName: "Food",
				Amount:       amount("12.5"),
				ExpenseDate:  date(2024, time.March, 2),
				Note:         "lunch",
			},
			{
				Username:     "alice",
				CategoryName: "Travel",
				Amount:       amount("50"),
				ExpenseDate:  date(2024, time.March, 3),
				Note:         "hotel",
			},
		}

		doc := RenderCSV(expenses, domain.ReportDaily, true)

		expected := strings.Join([]string{
			`"Username","Date","Category","Amount","Note"`,
			`"alice","2024-03-01","Travel","100","flight"`,
			`"bob","2024-03-02","Food","12.5","lunch"`,
			`"alice","2024-03-03","Travel","50","hotel"`,
			``,
			`"--- Category Totals ---"`,
			`"Category","Total Amount"`,
			`"Travel","150"`,
			`"Food","12.5"`,
			``,
			`"Total Expense:","162.5"`,
			``,
		}, "\n")
		assert.Equal(t, expected, string(doc))
	})

	t.Run("monthly kind uses Month header and month display", func(t *testing.T) {
		expenses := []domain.Expense{
			{
				Username:     "alice",
				CategoryName: "Food",
				Amount:       amount("10"),
				ExpenseDate:  date(2024, time.January, 5),
			},
		}

		doc := RenderCSV(expenses, domain.ReportMonthly, true)

		assert.Contains(t, string(doc), `"Username","Month","Category","Amount","Note"`)
		assert.Contains(t, string(doc), `"alice","January 2024","Food","10",""`)
	})

	t.Run("user-scoped document drops the username column", func(t *testing.T) {
		expenses := []domain.Expense{
			{
				CategoryName: "Food",
				Amount:       amount("10"),
				ExpenseDate:  date(2024, time.January, 5),
				Note:         "lunch",
			},
		}

		doc := RenderCSV(expenses, domain.ReportDaily, false)

		assert.Contains(t, string(doc), `"Date","Category","Amount","Note"`)
		assert.Contains(t, string(doc), `"2024-01-05","Food","10","lunch"`)
		assert.NotContains(t, string(doc), "Username")
	})

	t.Run("double quotes in notes are doubled", func(t *testing.T) {
		expenses := []domain.Expense{
			{
				Username:     "alice",
				CategoryName: "Food",
				Amount:       amount("10"),
				ExpenseDate:  date(2024, time.January, 5),
				Note:         `He said "hi"`,
			},
		}

		doc := RenderCSV(expenses, domain.ReportDaily, true)

		assert.Contains(t, string(doc), `"He said ""hi"""`)
	})

	t.Run("whitespace-only fields render empty", func(t *testing.T) {
		expenses := []domain.Expense{
			{
				Username:     "alice",
				CategoryName: "Food",
				Amount:       amount("10"),
				ExpenseDate:  date(2024, time.January, 5),
				Note:         "   ",
			},
		}

		doc := RenderCSV(expenses, domain.ReportDaily, true)

		assert.Contains(t, string(doc), `"alice","2024-01-05","Food","10",""`)
	})

	t.Run("uncategorized expenses group under Uncategorized", func(t *testing.T) {
		expenses := []domain.Expense{
			{
				Username:    "alice",
				Amount:      amount("10"),
				ExpenseDate: date(2024, time.January, 5),
			},
		}

		doc := RenderCSV(expenses, domain.ReportDaily, true)

		assert.Contains(t, string(doc), `"Uncategorized","10"`)
	})
}
