package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// UncategorizedName is the display name used when an expense has no category.
const UncategorizedName = "Uncategorized"

type User struct {
	ID        int64
	Username  string
	Email     string
	FirstName string
	LastName  string
	Phone     string
	Address   string
	Role      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Category struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Expense is an expense record joined with its owner and category names.
// CategoryID is nil for uncategorized expenses; CategoryName and Username
// are resolved by the store and may be empty depending on the query scope.
type Expense struct {
	ID           int64
	UserID       int64
	CategoryID   *int64
	CategoryName string
	Username     string
	Amount       decimal.Decimal
	ExpenseDate  time.Time
	Note         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DisplayCategory returns the category name for grouping and rendering,
// falling back to UncategorizedName.
func (e Expense) DisplayCategory() string {
	if e.CategoryName == "" {
		return UncategorizedName
	}
	return e.CategoryName
}
