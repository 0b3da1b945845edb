package category

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/expense-tools/expense-atlas/pkg/adapters"
	"github.com/expense-tools/expense-atlas/pkg/handlers/respond"
	"github.com/expense-tools/expense-atlas/pkg/models/api"
	"github.com/expense-tools/expense-atlas/pkg/models/domain"
	"github.com/expense-tools/expense-atlas/pkg/services/category"
)

type Handler struct {
	categories category.Service
}

func NewHandler(categories category.Service) *Handler {
	return &Handler{categories: categories}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	categories, err := h.categories.List(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to list categories")
		respond.JSON(w, r, api.Fail(http.StatusInternalServerError, "Failed to list categories", err.Error()))
		return
	}

	out := make([]api.Category, 0, len(categories))
	for _, c := range categories {
		out = append(out, adapters.MapDomainCategoryToAPI(c))
	}
	respond.JSON(w, r, api.OK(http.StatusOK, "Categories retrieved successfully", out))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.JSON(w, r, api.Fail(http.StatusBadRequest, "Invalid category id", err.Error()))
		return
	}

	c, err := h.categories.Get(r.Context(), id)
	if h.writeCategoryError(w, r, err, "Failed to get category") {
		return
	}

	respond.JSON(w, r, api.OK(http.StatusOK, "Category retrieved successfully", adapters.MapDomainCategoryToAPI(c)))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req api.Category
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.JSON(w, r, api.Fail(http.StatusBadRequest, "Invalid request body", err.Error()))
		return
	}

	c, err := h.categories.Create(r.Context(), domain.Category{
		Name:        req.Name,
		Description: req.Description,
	})
	if h.writeCategoryError(w, r, err, "Failed to create category") {
		return
	}

	respond.JSON(w, r, api.OK(http.StatusCreated, "Category created successfully", adapters.MapDomainCategoryToAPI(c)))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.JSON(w, r, api.Fail(http.StatusBadRequest, "Invalid category id", err.Error()))
		return
	}

	var req api.Category
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.JSON(w, r, api.Fail(http.StatusBadRequest, "Invalid request body", err.Error()))
		return
	}

	c, err := h.categories.Update(r.Context(), id, domain.Category{
		Name:        req.Name,
		Description: req.Description,
	})
	if h.writeCategoryError(w, r, err, "Failed to update category") {
		return
	}

	respond.JSON(w, r, api.OK(http.StatusOK, "Category updated successfully", adapters.MapDomainCategoryToAPI(c)))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.JSON(w, r, api.Fail(http.StatusBadRequest, "Invalid category id", err.Error()))
		return
	}

	if h.writeCategoryError(w, r, h.categories.Delete(r.Context(), id), "Failed to delete category") {
		return
	}

	respond.JSON(w, r, api.OK(http.StatusOK, "Category deleted successfully", nil))
}

func (h *Handler) writeCategoryError(w http.ResponseWriter, r *http.Request, err error, message string) bool {
	if err == nil {
		return false
	}

	switch {
	case errors.Is(err, category.ErrCategoryNotFound):
		respond.JSON(w, r, api.Fail(http.StatusNotFound, "Category not found"))
	case errors.Is(err, category.ErrDuplicateName):
		respond.JSON(w, r, api.Fail(http.StatusConflict, message, err.Error()))
	case errors.Is(err, category.ErrNameRequired):
		respond.JSON(w, r, api.Fail(http.StatusBadRequest, message, err.Error()))
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("category operation failed")
		respond.JSON(w, r, api.Fail(http.StatusInternalServerError, message, err.Error()))
	}
	return true
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
