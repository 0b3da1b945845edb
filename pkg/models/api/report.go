package api

import "github.com/shopspring/decimal"

type SummaryRow struct {
	Username string          `json:"username,omitempty"`
	Date     string          `json:"date"`
	Amount   decimal.Decimal `json:"amount"`
	Note     string          `json:"note"`
}

type CategorySummary struct {
	Category    string          `json:"category"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Expenses    []SummaryRow    `json:"expenses"`
}

// ExpenseSummary is the JSON form of an aggregation result.
type ExpenseSummary struct {
	Categories   []CategorySummary `json:"categories"`
	TotalExpense decimal.Decimal   `json:"totalExpense"`
}
