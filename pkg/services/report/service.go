package report

import (
	"context"
	"fmt"
	"time"

	"github.com/expense-tools/expense-atlas/pkg/adapters"
	"github.com/expense-tools/expense-atlas/pkg/models/domain"
	"github.com/expense-tools/expense-atlas/pkg/models/store"
)

// ExpenseSource is the slice of the expense store the report pipeline
// needs: filtered admin-wide listing and per-user listing.
type ExpenseSource interface {
	ListFiltered(ctx context.Context, filter store.ExpenseFilter) ([]store.ExpenseRecord, error)
	ListByUser(ctx context.Context, userID int64, from, to *time.Time) ([]store.ExpenseRecord, error)
}

// Auditor records that a CSV export happened. Implementations must not
// block the export path.
type Auditor interface {
	ReportExported(ctx context.Context, userID int64)
}

type Service interface {
	Summary(ctx context.Context, req domain.ReportRequest) (domain.Summary, error)
	ExportCSV(ctx context.Context, userID int64, req domain.ReportRequest) ([]byte, error)
	UserSummary(ctx context.Context, userID int64, req domain.ReportRequest) (domain.Summary, error)
	ExportUserCSV(ctx context.Context, userID int64, req domain.ReportRequest) ([]byte, error)
}

type service struct {
	expenses ExpenseSource
	audit    Auditor
	now      func() time.Time
}

func NewService(expenses ExpenseSource, audit Auditor) Service {
	return &service{
		expenses: expenses,
		audit:    audit,
		now:      time.Now,
	}
}

// Summary resolves the requested range, fetches matching expenses across
// all users and aggregates them by category. Range validation happens
// before any store access.
func (s *service) Summary(ctx context.Context, req domain.ReportRequest) (domain.Summary, error) {
	expenses, err := s.fetchAll(ctx, req)
	if err != nil {
		return domain.Summary{}, err
	}
	return Aggregate(expenses, req.Kind), nil
}

func (s *service) ExportCSV(ctx context.Context, userID int64, req domain.ReportRequest) ([]byte, error) {
	expenses, err := s.fetchAll(ctx, req)
	if err != nil {
		return nil, err
	}

	doc := RenderCSV(expenses, req.Kind, true)
	s.audit.ReportExported(ctx, userID)
	return doc, nil
}

func (s *service) UserSummary(ctx context.Context, userID int64, req domain.ReportRequest) (domain.Summary, error) {
	expenses, err := s.fetchUser(ctx, userID, req)
	if err != nil {
		return domain.Summary{}, err
	}
	return Aggregate(expenses, req.Kind), nil
}

func (s *service) ExportUserCSV(ctx context.Context, userID int64, req domain.ReportRequest) ([]byte, error) {
	expenses, err := s.fetchUser(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	doc := RenderCSV(expenses, req.Kind, false)
	s.audit.ReportExported(ctx, userID)
	return doc, nil
}

func (s *service) fetchAll(ctx context.Context, req domain.ReportRequest) ([]domain.Expense, error) {
	interval, err := ResolveInterval(req, s.now())
	if err != nil {
		return nil, err
	}

	records, err := s.expenses.ListFiltered(ctx, store.ExpenseFilter{
		Username: req.Username,
		Category: req.Category,
		From:     interval.From,
		To:       interval.To,
	})
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}

	return adapters.MapStoreExpensesToDomain(records)
}

func (s *service) fetchUser(ctx context.Context, userID int64, req domain.ReportRequest) ([]domain.Expense, error) {
	interval, err := ResolveInterval(req, s.now())
	if err != nil {
		return nil, err
	}

	records, err := s.expenses.ListByUser(ctx, userID, interval.From, interval.To)
	if err != nil {
		return nil, fmt.Errorf("list user expenses: %w", err)
	}

	return adapters.MapStoreExpensesToDomain(records)
}
