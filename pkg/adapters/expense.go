package adapters

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tools/expense-atlas/pkg/models/api"
	"github.com/expense-tools/expense-atlas/pkg/models/domain"
	"github.com/expense-tools/expense-atlas/pkg/models/store"
)

// DateLayout is the TEXT form expense dates take in the store and on the
// wire.
const DateLayout = "2006-01-02"

func MapStoreExpenseToDomain(rec store.ExpenseRecord) (domain.Expense, error) {
	amount, err := decimal.NewFromString(rec.Amount)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("parse amount %q: %w", rec.Amount, err)
	}

	date, err := time.Parse(DateLayout, rec.ExpenseDate)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("parse expense date %q: %w", rec.ExpenseDate, err)
	}

	return domain.Expense{
		ID:           rec.ID,
		UserID:       rec.UserID,
		CategoryID:   rec.CategoryID,
		CategoryName: rec.CategoryName,
		Username:     rec.Username,
		Amount:       amount,
		ExpenseDate:  date,
		Note:         rec.Note,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}, nil
}

func MapStoreExpensesToDomain(recs []store.ExpenseRecord) ([]domain.Expense, error) {
	expenses := make([]domain.Expense, 0, len(recs))
	for _, rec := range recs {
		e, err := MapStoreExpenseToDomain(rec)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, nil
}

func MapDomainExpenseToStore(e domain.Expense) store.ExpenseRecord {
	return store.ExpenseRecord{
		ID:          e.ID,
		UserID:      e.UserID,
		CategoryID:  e.CategoryID,
		Amount:      e.Amount.String(),
		ExpenseDate: e.ExpenseDate.Format(DateLayout),
		Note:        e.Note,
	}
}

func MapDomainExpenseToAPI(e domain.Expense) api.Expense {
	return api.Expense{
		ID:          e.ID,
		Category:    e.DisplayCategory(),
		Amount:      e.Amount,
		ExpenseDate: e.ExpenseDate.Format(DateLayout),
		Note:        e.Note,
	}
}

func MapStoreUserToDomain(rec store.UserRecord) domain.User {
	return domain.User{
		ID:        rec.ID,
		Username:  rec.Username,
		Email:     rec.Email,
		FirstName: rec.FirstName,
		LastName:  rec.LastName,
		Phone:     rec.Phone,
		Address:   rec.Address,
		Role:      rec.Role,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

func MapDomainUserToAPI(u domain.User) api.UserProfile {
	return api.UserProfile{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Address:   u.Address,
		Role:      u.Role,
	}
}

func MapStoreCategoryToDomain(rec store.CategoryRecord) domain.Category {
	return domain.Category{
		ID:          rec.ID,
		Name:        rec.Name,
		Description: rec.Description,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}

func MapDomainCategoryToAPI(c domain.Category) api.Category {
	return api.Category{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
	}
}

func MapDomainSummaryToAPI(s domain.Summary) api.ExpenseSummary {
	categories := make([]api.CategorySummary, 0, len(s.Categories))
	for _, group := range s.Categories {
		rows := make([]api.SummaryRow, 0, len(group.Expenses))
		for _, row := range group.Expenses {
			rows = append(rows, api.SummaryRow{
				Username: row.Username,
				Date:     row.Date,
				Amount:   row.Amount,
				Note:     row.Note,
			})
		}
		categories = append(categories, api.CategorySummary{
			Category:    group.Category,
			TotalAmount: group.TotalAmount,
			Expenses:    rows,
		})
	}
	return api.ExpenseSummary{
		Categories:   categories,
		TotalExpense: s.TotalExpense,
	}
}
