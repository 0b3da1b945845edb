package reportlog

import (
	"context"
	"database/sql"
	"fmt"
)

// Store appends CSV-export audit rows.
type Store interface {
	Record(ctx context.Context, userID int64) error
}

type reportLogStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &reportLogStore{db: db}, nil
}

func (s *reportLogStore) Record(ctx context.Context, userID int64) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO report_logs (user_id) VALUES (?)`, userID)
	if err != nil {
		return fmt.Errorf("insert report log: %w", err)
	}
	return nil
}
