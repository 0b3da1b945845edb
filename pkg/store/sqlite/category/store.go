package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/expense-tools/expense-atlas/pkg/models/store"
)

type Store interface {
	List(ctx context.Context) ([]store.CategoryRecord, error)
	GetByID(ctx context.Context, id int64) (store.CategoryRecord, error)
	GetByName(ctx context.Context, name string) (store.CategoryRecord, error)
	Create(ctx context.Context, rec store.CategoryRecord) (int64, error)
	Update(ctx context.Context, rec store.CategoryRecord) error
	Delete(ctx context.Context, id int64) error
}

type categoryStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &categoryStore{db: db}, nil
}

const selectCategory = `
	SELECT id, name, description, created_at, updated_at
	FROM categories`

func (s *categoryStore) List(ctx context.Context) ([]store.CategoryRecord, error) {
	rows, err := s.db.QueryContext(ctx, selectCategory+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	records := make([]store.CategoryRecord, 0)
	for rows.Next() {
		var rec store.CategoryRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Description, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return records, nil
}

func (s *categoryStore) GetByID(ctx context.Context, id int64) (store.CategoryRecord, error) {
	return s.get(ctx, selectCategory+` WHERE id = ?`, id)
}

func (s *categoryStore) GetByName(ctx context.Context, name string) (store.CategoryRecord, error) {
	return s.get(ctx, selectCategory+` WHERE name = ?`, name)
}

func (s *categoryStore) Create(ctx context.Context, rec store.CategoryRecord) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (name, description)
		VALUES (?, ?)`,
		rec.Name, rec.Description,
	)
	if err != nil {
		return 0, fmt.Errorf("insert category: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

func (s *categoryStore) Update(ctx context.Context, rec store.CategoryRecord) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE categories
		SET name = ?, description = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		rec.Name, rec.Description, rec.ID,
	)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
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

func (s *categoryStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
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

func (s *categoryStore) get(ctx context.Context, query string, arg any) (store.CategoryRecord, error) {
	var rec store.CategoryRecord
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&rec.ID, &rec.Name, &rec.Description, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return store.CategoryRecord{}, store.ErrNotFound
	}
	if err != nil {
		return store.CategoryRecord{}, fmt.Errorf("get category: %w", err)
	}
	return rec, nil
}
