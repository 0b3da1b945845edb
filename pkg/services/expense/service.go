package expense

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tools/expense-atlas/pkg/adapters"
	"github.com/expense-tools/expense-atlas/pkg/models/domain"
	"github.com/expense-tools/expense-atlas/pkg/models/store"
)

var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrInvalidCategory = errors.New("category does not exist")
	ErrIDMismatch      = errors.New("expense id in path does not match body")
)

// ValidationError reports a rejected expense field.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Store is the expense persistence surface. ListAll returns every user's
// expenses joined with usernames and category names.
type Store interface {
	ListByUser(ctx context.Context, userID int64, from, to *time.Time) ([]store.ExpenseRecord, error)
	ListAll(ctx context.Context) ([]store.ExpenseRecord, error)
	GetByID(ctx context.Context, id int64) (store.ExpenseRecord, error)
	Create(ctx context.Context, rec store.ExpenseRecord) (int64, error)
	Update(ctx context.Context, rec store.ExpenseRecord) error
	Delete(ctx context.Context, id int64) error
}

// CategoryChecker is the slice of the category store needed to validate
// expense categories.
type CategoryChecker interface {
	GetByID(ctx context.Context, id int64) (store.CategoryRecord, error)
}

type Service interface {
	List(ctx context.Context, userID int64) ([]domain.Expense, error)
	Get(ctx context.Context, userID, expenseID int64) (domain.Expense, error)
	Create(ctx context.Context, userID int64, e domain.Expense) (domain.Expense, error)
	Update(ctx context.Context, userID, expenseID int64, e domain.Expense) (domain.Expense, error)
	Delete(ctx context.Context, userID, expenseID int64) error
	AllUsers(ctx context.Context, usernames []string) (domain.AllUsersReport, error)
}

type service struct {
	expenses   Store
	categories CategoryChecker
	now        func() time.Time
}

func NewService(expenses Store, categories CategoryChecker) Service {
	return &service{
		expenses:   expenses,
		categories: categories,
		now:        time.Now,
	}
}

func (s *service) List(ctx context.Context, userID int64) ([]domain.Expense, error) {
	records, err := s.expenses.ListByUser(ctx, userID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return adapters.MapStoreExpensesToDomain(records)
}

func (s *service) Get(ctx context.Context, userID, expenseID int64) (domain.Expense, error) {
	rec, err := s.owned(ctx, userID, expenseID)
	if err != nil {
		return domain.Expense{}, err
	}
	return adapters.MapStoreExpenseToDomain(rec)
}

func (s *service) Create(ctx context.Context, userID int64, e domain.Expense) (domain.Expense, error) {
	if err := s.validate(ctx, e); err != nil {
		return domain.Expense{}, err
	}

	e.UserID = userID
	rec := adapters.MapDomainExpenseToStore(e)
	rec.UserID = userID

	id, err := s.expenses.Create(ctx, rec)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("create expense: %w", err)
	}

	created, err := s.expenses.GetByID(ctx, id)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("reload expense: %w", err)
	}
	return adapters.MapStoreExpenseToDomain(created)
}

func (s *service) Update(ctx context.Context, userID, expenseID int64, e domain.Expense) (domain.Expense, error) {
	if e.ID != 0 && e.ID != expenseID {
		return domain.Expense{}, ErrIDMismatch
	}
	if _, err := s.owned(ctx, userID, expenseID); err != nil {
		return domain.Expense{}, err
	}
	if err := s.validate(ctx, e); err != nil {
		return domain.Expense{}, err
	}

	rec := adapters.MapDomainExpenseToStore(e)
	rec.ID = expenseID
	rec.UserID = userID

	if err := s.expenses.Update(ctx, rec); err != nil {
		return domain.Expense{}, fmt.Errorf("update expense: %w", err)
	}

	updated, err := s.expenses.GetByID(ctx, expenseID)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("reload expense: %w", err)
	}
	return adapters.MapStoreExpenseToDomain(updated)
}

func (s *service) Delete(ctx context.Context, userID, expenseID int64) error {
	if _, err := s.owned(ctx, userID, expenseID); err != nil {
		return err
	}
	if err := s.expenses.Delete(ctx, expenseID); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}

// AllUsers lists every user's expenses, optionally narrowed to an
// explicit username allow-list. Names that match nothing in the full set
// are reported back; the missing-name check runs against the unfiltered
// set so a name outside the allow-list result is still recognized.
func (s *service) AllUsers(ctx context.Context, usernames []string) (domain.AllUsersReport, error) {
	records, err := s.expenses.ListAll(ctx)
	if err != nil {
		return domain.AllUsersReport{}, fmt.Errorf("list all expenses: %w", err)
	}

	expenses, err := adapters.MapStoreExpensesToDomain(records)
	if err != nil {
		return domain.AllUsersReport{}, err
	}

	report := domain.AllUsersReport{
		Expenses:          expenses,
		NotFoundUsernames: []string{},
	}
	if len(usernames) == 0 {
		return report, nil
	}

	known := make(map[string]bool, len(expenses))
	for _, e := range expenses {
		known[e.Username] = true
	}

	allowed := make(map[string]bool, len(usernames))
	for _, name := range usernames {
		allowed[name] = true
		if !known[name] {
			report.NotFoundUsernames = append(report.NotFoundUsernames, name)
		}
	}

	filtered := make([]domain.Expense, 0, len(expenses))
	for _, e := range expenses {
		if allowed[e.Username] {
			filtered = append(filtered, e)
		}
	}
	report.Expenses = filtered

	return report, nil
}

func (s *service) owned(ctx context.Context, userID, expenseID int64) (store.ExpenseRecord, error) {
	rec, err := s.expenses.GetByID(ctx, expenseID)
	if errors.Is(err, store.ErrNotFound) {
		return store.ExpenseRecord{}, ErrExpenseNotFound
	}
	if err != nil {
		return store.ExpenseRecord{}, fmt.Errorf("get expense: %w", err)
	}
	if rec.UserID != userID {
		// Ownership failures read as absence to the caller.
		return store.ExpenseRecord{}, ErrExpenseNotFound
	}
	return rec, nil
}

func (s *service) validate(ctx context.Context, e domain.Expense) error {
	if !e.Amount.GreaterThan(decimal.Zero) {
		return &ValidationError{"amount must be greater than zero"}
	}

	today := s.now()
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	if e.ExpenseDate.After(today) {
		return &ValidationError{"expense date must not be in the future"}
	}

	if e.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *e.CategoryID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidCategory
			}
			return fmt.Errorf("check category: %w", err)
		}
	}
	return nil
}
