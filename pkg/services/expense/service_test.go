package expense

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/expense-tools/expense-atlas/pkg/models/domain"
	"github.com/expense-tools/expense-atlas/pkg/models/store"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) ListByUser(ctx context.Context, userID int64, from, to *time.Time) ([]store.ExpenseRecord, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.ExpenseRecord), args.Error(1)
}

func (m *mockStore) ListAll(ctx context.Context) ([]store.ExpenseRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.ExpenseRecord), args.Error(1)
}

func (m *mockStore) GetByID(ctx context.Context, id int64) (store.ExpenseRecord, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(store.ExpenseRecord), args.Error(1)
}

func (m *mockStore) Create(ctx context.Context, rec store.ExpenseRecord) (int64, error) {
	args := m.Called(ctx, rec)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) Update(ctx context.Context, rec store.ExpenseRecord) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *mockStore) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockCategories struct {
	mock.Mock
}

func (m *mockCategories) GetByID(ctx context.Context, id int64) (store.CategoryRecord, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(store.CategoryRecord), args.Error(1)
}

func newTestService(expenses *mockStore, categories *mockCategories) *service {
	return &service{
		expenses:   expenses,
		categories: categories,
		now:        func() time.Time { return time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC) },
	}
}

func validExpense() domain.Expense {
	return domain.Expense{
		Amount:      decimal.NewFromInt(10),
		ExpenseDate: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		Note:        "lunch",
	}
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects non-positive amount", func(t *testing.T) {
		svc := newTestService(&mockStore{}, &mockCategories{})

		e := validExpense()
		e.Amount = decimal.Zero

		_, err := svc.Create(ctx, 1, e)
		var validation *ValidationError
		assert.ErrorAs(t, err, &validation)
	})

	t.Run("rejects future expense date", func(t *testing.T) {
		svc := newTestService(&mockStore{}, &mockCategories{})

		e := validExpense()
		e.ExpenseDate = time.Date(2024, time.June, 16, 0, 0, 0, 0, time.UTC)

		_, err := svc.Create(ctx, 1, e)
		var validation *ValidationError
		assert.ErrorAs(t, err, &validation)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		categories := &mockCategories{}
		categories.On("GetByID", ctx, int64(99)).Return(store.CategoryRecord{}, store.ErrNotFound)
		svc := newTestService(&mockStore{}, categories)

		e := validExpense()
		catID := int64(99)
		e.CategoryID = &catID

		_, err := svc.Create(ctx, 1, e)
		assert.ErrorIs(t, err, ErrInvalidCategory)
	})

	t.Run("persists and reloads the created row", func(t *testing.T) {
		expenses := &mockStore{}
		svc := newTestService(expenses, &mockCategories{})

		expenses.On("Create", ctx, mock.MatchedBy(func(rec store.ExpenseRecord) bool {
			return rec.UserID == 1 && rec.Amount == "10" && rec.ExpenseDate == "2024-06-01"
		})).Return(int64(42), nil)
		expenses.On("GetByID", ctx, int64(42)).Return(store.ExpenseRecord{
			ID: 42, UserID: 1, Amount: "10", ExpenseDate: "2024-06-01", Note: "lunch",
		}, nil)

		created, err := svc.Create(ctx, 1, validExpense())

		require.NoError(t, err)
		assert.Equal(t, int64(42), created.ID)
		expenses.AssertExpectations(t)
	})
}

func TestService_Ownership(t *testing.T) {
	ctx := context.Background()

	t.Run("someone else's expense reads as not found", func(t *testing.T) {
		expenses := &mockStore{}
		expenses.On("GetByID", ctx, int64(5)).Return(store.ExpenseRecord{ID: 5, UserID: 2}, nil)
		svc := newTestService(expenses, &mockCategories{})

		_, err := svc.Get(ctx, 1, 5)
		assert.ErrorIs(t, err, ErrExpenseNotFound)
	})

	t.Run("delete checks ownership first", func(t *testing.T) {
		expenses := &mockStore{}
		expenses.On("GetByID", ctx, int64(5)).Return(store.ExpenseRecord{}, store.ErrNotFound)
		svc := newTestService(expenses, &mockCategories{})

		err := svc.Delete(ctx, 1, 5)
		assert.ErrorIs(t, err, ErrExpenseNotFound)
		expenses.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("update rejects mismatched body id", func(t *testing.T) {
		svc := newTestService(&mockStore{}, &mockCategories{})

		e := validExpense()
		e.ID = 9

		_, err := svc.Update(ctx, 1, 5, e)
		assert.ErrorIs(t, err, ErrIDMismatch)
	})
}

func TestService_AllUsers(t *testing.T) {
	ctx := context.Background()

	records := []store.ExpenseRecord{
		{ID: 1, Username: "alice", CategoryName: "Food", Amount: "10", ExpenseDate: "2024-01-05"},
		{ID: 2, Username: "bob", CategoryName: "Food", Amount: "5", ExpenseDate: "2024-01-06"},
		{ID: 3, Username: "alice", CategoryName: "Travel", Amount: "50", ExpenseDate: "2024-01-07"},
	}

	t.Run("no allow-list returns everything", func(t *testing.T) {
		expenses := &mockStore{}
		expenses.On("ListAll", ctx).Return(records, nil)
		svc := newTestService(expenses, &mockCategories{})

		report, err := svc.AllUsers(ctx, nil)

		require.NoError(t, err)
		assert.Len(t, report.Expenses, 3)
		assert.Empty(t, report.NotFoundUsernames)
	})

	t.Run("missing names are reported against the unfiltered set", func(t *testing.T) {
		expenses := &mockStore{}
		expenses.On("ListAll", ctx).Return(records, nil)
		svc := newTestService(expenses, &mockCategories{})

		report, err := svc.AllUsers(ctx, []string{"alice", "carol"})

		require.NoError(t, err)
		assert.Equal(t, []string{"carol"}, report.NotFoundUsernames)
		require.Len(t, report.Expenses, 2)
		for _, e := range report.Expenses {
			assert.Equal(t, "alice", e.Username)
		}
	})
}
