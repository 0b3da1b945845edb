package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tools/expense-atlas/pkg/models/domain"
)

const (
	dailyDisplayLayout   = "2006-01-02"
	monthlyDisplayLayout = "January 2006"
)

func displayDate(date time.Time, kind domain.ReportKind) string {
	if kind == domain.ReportMonthly {
		return date.Format(monthlyDisplayLayout)
	}
	return date.Format(dailyDisplayLayout)
}

// Aggregate groups filtered expenses by category display name in a single
// pass. Categories appear in first-seen order, expenses keep their
// encounter order within each group, and the grand total is the sum of
// all category totals. An empty input yields zero categories and a zero
// total.
func Aggregate(expenses []domain.Expense, kind domain.ReportKind) domain.Summary {
	summary := domain.Summary{
		Categories:   []domain.CategoryGroup{},
		TotalExpense: decimal.Zero,
	}

	index := make(map[string]int)
	for _, e := range expenses {
		name := e.DisplayCategory()
		i, seen := index[name]
		if !seen {
			i = len(summary.Categories)
			index[name] = i
			summary.Categories = append(summary.Categories, domain.CategoryGroup{
				Category:    name,
				TotalAmount: decimal.Zero,
			})
		}

		group := &summary.Categories[i]
		group.TotalAmount = group.TotalAmount.Add(e.Amount)
		group.Expenses = append(group.Expenses, domain.SummaryRow{
			Username: e.Username,
			Date:     displayDate(e.ExpenseDate, kind),
			Amount:   e.Amount,
			Note:     e.Note,
		})

		summary.TotalExpense = summary.TotalExpense.Add(e.Amount)
	}

	return summary
}
