package category

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/expense-tools/expense-atlas/pkg/adapters"
	"github.com/expense-tools/expense-atlas/pkg/models/domain"
	"github.com/expense-tools/expense-atlas/pkg/models/store"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrDuplicateName    = errors.New("category name already exists")
	ErrNameRequired     = errors.New("category name is required")
)

type Store interface {
	List(ctx context.Context) ([]store.CategoryRecord, error)
	GetByID(ctx context.Context, id int64) (store.CategoryRecord, error)
	GetByName(ctx context.Context, name string) (store.CategoryRecord, error)
	Create(ctx context.Context, rec store.CategoryRecord) (int64, error)
	Update(ctx context.Context, rec store.CategoryRecord) error
	Delete(ctx context.Context, id int64) error
}

type Service interface {
	List(ctx context.Context) ([]domain.Category, error)
	Get(ctx context.Context, id int64) (domain.Category, error)
	Create(ctx context.Context, c domain.Category) (domain.Category, error)
	Update(ctx context.Context, id int64, c domain.Category) (domain.Category, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	categories Store
}

func NewService(categories Store) Service {
	return &service{categories: categories}
}

func (s *service) List(ctx context.Context) ([]domain.Category, error) {
	records, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	categories := make([]domain.Category, 0, len(records))
	for _, rec := range records {
		categories = append(categories, adapters.MapStoreCategoryToDomain(rec))
	}
	return categories, nil
}

func (s *service) Get(ctx context.Context, id int64) (domain.Category, error) {
	rec, err := s.categories.GetByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Category{}, ErrCategoryNotFound
	}
	if err != nil {
		return domain.Category{}, fmt.Errorf("get category: %w", err)
	}
	return adapters.MapStoreCategoryToDomain(rec), nil
}

func (s *service) Create(ctx context.Context, c domain.Category) (domain.Category, error) {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return domain.Category{}, ErrNameRequired
	}

	if err := s.ensureNameFree(ctx, name, 0); err != nil {
		return domain.Category{}, err
	}

	id, err := s.categories.Create(ctx, store.CategoryRecord{
		Name:        name,
		Description: c.Description,
	})
	if err != nil {
		return domain.Category{}, fmt.Errorf("create category: %w", err)
	}

	return s.Get(ctx, id)
}

func (s *service) Update(ctx context.Context, id int64, c domain.Category) (domain.Category, error) {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return domain.Category{}, ErrNameRequired
	}

	if _, err := s.Get(ctx, id); err != nil {
		return domain.Category{}, err
	}
	if err := s.ensureNameFree(ctx, name, id); err != nil {
		return domain.Category{}, err
	}

	err := s.categories.Update(ctx, store.CategoryRecord{
		ID:          id,
		Name:        name,
		Description: c.Description,
	})
	if err != nil {
		return domain.Category{}, fmt.Errorf("update category: %w", err)
	}

	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func (s *service) ensureNameFree(ctx context.Context, name string, selfID int64) error {
	existing, err := s.categories.GetByName(ctx, name)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("check category name: %w", err)
	}
	if existing.ID != selfID {
		return ErrDuplicateName
	}
	return nil
}
