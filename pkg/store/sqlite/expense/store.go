package expense

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/expense-tools/expense-atlas/pkg/models/store"
)

const dateLayout = "2006-01-02"

// Store reads and writes expense rows. Every read joins usernames and
// category names so callers never chase foreign keys.
type Store interface {
	ListByUser(ctx context.Context, userID int64, from, to *time.Time) ([]store.ExpenseRecord, error)
	ListAll(ctx context.Context) ([]store.ExpenseRecord, error)
	ListFiltered(ctx context.Context, filter store.ExpenseFilter) ([]store.ExpenseRecord, error)
	GetByID(ctx context.Context, id int64) (store.ExpenseRecord, error)
	Create(ctx context.Context, rec store.ExpenseRecord) (int64, error)
	Update(ctx context.Context, rec store.ExpenseRecord) error
	Delete(ctx context.Context, id int64) error
}

type expenseStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &expenseStore{db: db}, nil
}

const selectExpense = `
	SELECT e.id, e.user_id, e.category_id, COALESCE(c.name, ''), u.username,
	       e.amount, e.expense_date, e.note, e.created_at, e.updated_at
	FROM expenses e
	JOIN users u ON u.id = e.user_id
	LEFT JOIN categories c ON c.id = e.category_id`

func (s *expenseStore) ListByUser(ctx context.Context, userID int64, from, to *time.Time) ([]store.ExpenseRecord, error) {
	query := selectExpense + ` WHERE e.user_id = ?`
	args := []any{userID}

	if from != nil && to != nil {
		query += ` AND e.expense_date >= ? AND e.expense_date <= ?`
		args = append(args, from.Format(dateLayout), to.Format(dateLayout))
	}
	query += ` ORDER BY e.id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()
	return scanExpenseRows(rows)
}

func (s *expenseStore) ListAll(ctx context.Context) ([]store.ExpenseRecord, error) {
	return s.ListFiltered(ctx, store.ExpenseFilter{})
}

// ListFiltered narrows the full expense set by exact username and category
// matches plus an inclusive date range. Date bounds apply only when both
// are present; TEXT comparison is safe because dates are stored
// YYYY-MM-DD.
func (s *expenseStore) ListFiltered(ctx context.Context, filter store.ExpenseFilter) ([]store.ExpenseRecord, error) {
	query := selectExpense + ` WHERE 1 = 1`
	args := []any{}

	if filter.Username != "" {
		query += ` AND u.username = ?`
		args = append(args, filter.Username)
	}
	if filter.Category != "" {
		query += ` AND c.name = ?`
		args = append(args, filter.Category)
	}
	if filter.From != nil && filter.To != nil {
		query += ` AND e.expense_date >= ? AND e.expense_date <= ?`
		args = append(args, filter.From.Format(dateLayout), filter.To.Format(dateLayout))
	}
	query += ` ORDER BY e.id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()
	return scanExpenseRows(rows)
}

func (s *expenseStore) GetByID(ctx context.Context, id int64) (store.ExpenseRecord, error) {
	row := s.db.QueryRowContext(ctx, selectExpense+` WHERE e.id = ?`, id)

	rec, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ExpenseRecord{}, store.ErrNotFound
	}
	if err != nil {
		return store.ExpenseRecord{}, fmt.Errorf("get expense: %w", err)
	}
	return rec, nil
}

func (s *expenseStore) Create(ctx context.Context, rec store.ExpenseRecord) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO expenses (user_id, category_id, amount, expense_date, note)
		VALUES (?, ?, ?, ?, ?)`,
		rec.UserID, rec.CategoryID, rec.Amount, rec.ExpenseDate, rec.Note,
	)
	if err != nil {
		return 0, fmt.Errorf("insert expense: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

func (s *expenseStore) Update(ctx context.Context, rec store.ExpenseRecord) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE expenses
		SET category_id = ?, amount = ?, expense_date = ?, note = ?,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		rec.CategoryID, rec.Amount, rec.ExpenseDate, rec.Note, rec.ID,
	)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *expenseStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (store.ExpenseRecord, error) {
	var rec store.ExpenseRecord
	err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.CategoryID,
		&rec.CategoryName,
		&rec.Username,
		&rec.Amount,
		&rec.ExpenseDate,
		&rec.Note,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	return rec, err
}

func scanExpenseRows(rows *sql.Rows) ([]store.ExpenseRecord, error) {
	records := make([]store.ExpenseRecord, 0)
	for rows.Next() {
		rec, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return records, nil
}
