package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/expense-tools/expense-atlas/pkg/models/store"
)

type Store interface {
	Create(ctx context.Context, rec store.UserRecord) (int64, error)
	GetByID(ctx context.Context, id int64) (store.UserRecord, error)
	GetByEmail(ctx context.Context, email string) (store.UserRecord, error)
	GetByUsername(ctx context.Context, username string) (store.UserRecord, error)
}

type userStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &userStore{db: db}, nil
}

const selectUser = `
	SELECT id, username, email, first_name, last_name, phone, address,
	       password_hash, role, created_at, updated_at
	FROM users`

func (s *userStore) Create(ctx context.Context, rec store.UserRecord) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO users (username, email, first_name, last_name, phone, address, password_hash, role)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Username, rec.Email, rec.FirstName, rec.LastName,
		rec.Phone, rec.Address, rec.PasswordHash, rec.Role,
	)
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

func (s *userStore) GetByID(ctx context.Context, id int64) (store.UserRecord, error) {
	return s.get(ctx, selectUser+` WHERE id = ?`, id)
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (store.UserRecord, error) {
	return s.get(ctx, selectUser+` WHERE email = ?`, email)
}

func (s *userStore) GetByUsername(ctx context.Context, username string) (store.UserRecord, error) {
	return s.get(ctx, selectUser+` WHERE username = ?`, username)
}

func (s *userStore) get(ctx context.Context, query string, arg any) (store.UserRecord, error) {
	var rec store.UserRecord
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&rec.ID,
		&rec.Username,
		&rec.Email,
		&rec.FirstName,
		&rec.LastName,
		&rec.Phone,
		&rec.Address,
		&rec.PasswordHash,
		&rec.Role,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return store.UserRecord{}, store.ErrNotFound
	}
	if err != nil {
		return store.UserRecord{}, fmt.Errorf("get user: %w", err)
	}
	return rec, nil
}
