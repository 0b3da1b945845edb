package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ReportKind string

const (
	ReportDaily   ReportKind = "daily"
	ReportMonthly ReportKind = "monthly"
)

type RangeKind string

const (
	RangeLastMonth   RangeKind = "lastMonth"
	RangeLast3Months RangeKind = "last3Months"
	RangeCustom      RangeKind = "custom"
)

// ReportRequest describes one summary or export call. Daily reports carry
// optional StartDate/EndDate; monthly custom reports carry the four
// month/year bounds. Username and Category filters apply to admin-wide
// reports only.
type ReportRequest struct {
	Kind  ReportKind
	Range RangeKind

	StartDate *time.Time
	EndDate   *time.Time

	StartMonth *int
	StartYear  *int
	EndMonth   *int
	EndYear    *int

	Username string
	Category string
}

// Interval is the resolved inclusive date range for a report. A nil bound
// means unbounded on that side; date filtering applies only when both
// bounds are set.
type Interval struct {
	From *time.Time
	To   *time.Time
}

// SummaryRow is one expense as it appears in a report, with the date
// already formatted for the report kind.
type SummaryRow struct {
	Username string
	Date     string
	Amount   decimal.Decimal
	Note     string
}

// CategoryGroup holds the expenses of one category in encounter order
// together with the category total.
type CategoryGroup struct {
	Category    string
	TotalAmount decimal.Decimal
	Expenses    []SummaryRow
}

// Summary is the aggregation result: categories in first-seen order plus
// the grand total across all of them.
type Summary struct {
	Categories   []CategoryGroup
	TotalExpense decimal.Decimal
}

// AllUsersReport is the admin expense listing filtered by an explicit
// username allow-list. NotFoundUsernames holds requested names absent from
// the full expense set, computed before the allow-list is applied.
type AllUsersReport struct {
	Expenses          []Expense
	NotFoundUsernames []string
}
