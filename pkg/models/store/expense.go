package store

import (
	"errors"
	"time"
)

// ErrNotFound is the shared sentinel stores return when a lookup matches
// nothing.
var ErrNotFound = errors.New("not found")

// ExpenseRecord is the row shape of the expenses table. Dates and amounts
// are stored as TEXT ("2006-01-02" and decimal strings); adapters convert
// to domain types.
type ExpenseRecord struct {
	ID           int64
	UserID       int64
	CategoryID   *int64
	CategoryName string
	Username     string
	Amount       string
	ExpenseDate  string
	Note         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ExpenseFilter narrows an admin-wide expense query. String filters are
// exact matches; date bounds are inclusive and applied only when both are
// present.
type ExpenseFilter struct {
	Username string
	Category string
	From     *time.Time
	To       *time.Time
}

type UserRecord struct {
	ID           int64
	Username     string
	Email        string
	FirstName    string
	LastName     string
	Phone        string
	Address      string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type CategoryRecord struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ReportLogRecord is one CSV-export audit row.
type ReportLogRecord struct {
	ID        int64
	UserID    int64
	CreatedAt time.Time
}
