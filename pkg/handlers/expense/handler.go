package expense

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/expense-tools/expense-atlas/pkg/adapters"
	"github.com/expense-tools/expense-atlas/pkg/handlers/respond"
	"github.com/expense-tools/expense-atlas/pkg/models/api"
	"github.com/expense-tools/expense-atlas/pkg/models/domain"
	"github.com/expense-tools/expense-atlas/pkg/services/auth"
	"github.com/expense-tools/expense-atlas/pkg/services/expense"
)

type Handler struct {
	expenses expense.Service
}

func NewHandler(expenses expense.Service) *Handler {
	return &Handler{expenses: expenses}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := auth.IdentityFromContext(ctx)
	if !ok || id.UserID == 0 {
		respond.JSON(w, r, api.Fail(http.StatusNotFound, "User not found"))
		return
	}

	expenses, err := h.expenses.List(ctx, id.UserID)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to list expenses")
		respond.JSON(w, r, api.Fail(http.StatusInternalServerError, "Failed to list expenses", err.Error()))
		return
	}

	out := make([]api.Expense, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, adapters.MapDomainExpenseToAPI(e))
	}
	respond.JSON(w, r, api.OK(http.StatusOK, "Expenses retrieved successfully", out))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := auth.IdentityFromContext(ctx)
	if !ok || id.UserID == 0 {
		respond.JSON(w, r, api.Fail(http.StatusNotFound, "User not found"))
		return
	}

	expenseID, err := pathID(r)
	if err != nil {
		respond.JSON(w, r, api.Fail(http.StatusBadRequest, "Invalid expense id", err.Error()))
		return
	}

	e, err := h.expenses.Get(ctx, id.UserID, expenseID)
	if h.writeExpenseError(w, r, err, "Failed to get expense") {
		return
	}

	respond.JSON(w, r, api.OK(http.StatusOK, "Expense retrieved successfully", adapters.MapDomainExpenseToAPI(e)))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := auth.IdentityFromContext(ctx)
	if !ok || id.UserID == 0 {
		respond.JSON(w, r, api.Fail(http.StatusNotFound, "User not found"))
		return
	}

	e, ok := h.decodeExpense(w, r)
	if !ok {
		return
	}

	created, err := h.expenses.Create(ctx, id.UserID, e)
	if h.writeExpenseError(w, r, err, "Failed to create expense") {
		return
	}

	respond.JSON(w, r, api.OK(http.StatusCreated, "Expense created successfully", adapters.MapDomainExpenseToAPI(created)))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := auth.IdentityFromContext(ctx)
	if !ok || id.UserID == 0 {
		respond.JSON(w, r, api.Fail(http.StatusNotFound, "User not found"))
		return
	}

	expenseID, err := pathID(r)
	if err != nil {
		respond.JSON(w, r, api.Fail(http.StatusBadRequest, "Invalid expense id", err.Error()))
		return
	}

	e, ok := h.decodeExpense(w, r)
	if !ok {
		return
	}

	updated, err := h.expenses.Update(ctx, id.UserID, expenseID, e)
	if h.writeExpenseError(w, r, err, "Failed to update expense") {
		return
	}

	respond.JSON(w, r, api.OK(http.StatusOK, "Expense updated successfully", adapters.MapDomainExpenseToAPI(updated)))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := auth.IdentityFromContext(ctx)
	if !ok || id.UserID == 0 {
		respond.JSON(w, r, api.Fail(http.StatusNotFound, "User not found"))
		return
	}

	expenseID, err := pathID(r)
	if err != nil {
		respond.JSON(w, r, api.Fail(http.StatusBadRequest, "Invalid expense id", err.Error()))
		return
	}

	if h.writeExpenseError(w, r, h.expenses.Delete(ctx, id.UserID, expenseID), "Failed to delete expense") {
		return
	}

	respond.JSON(w, r, api.OK(http.StatusOK, "Expense deleted successfully", nil))
}

// AllUsers lists every user's expenses, optionally narrowed by a
// comma-separated userNames query parameter.
func (h *Handler) AllUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var usernames []string
	if raw := r.URL.Query().Get("userNames"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				usernames = append(usernames, name)
			}
		}
	}

	report, err := h.expenses.AllUsers(ctx, usernames)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to list all users expenses")
		respond.JSON(w, r, api.Fail(http.StatusInternalServerError, "Failed to list expenses", err.Error()))
		return
	}

	out := api.AllUsersExpenses{
		Expenses:          make([]api.ExpenseDetails, 0, len(report.Expenses)),
		NotFoundUsernames: report.NotFoundUsernames,
	}
	for _, e := range report.Expenses {
		out.Expenses = append(out.Expenses, api.ExpenseDetails{
			Expense:  adapters.MapDomainExpenseToAPI(e),
			Username: e.Username,
		})
	}

	respond.JSON(w, r, api.OK(http.StatusOK, "Expenses retrieved successfully", out))
}

func (h *Handler) decodeExpense(w http.ResponseWriter, r *http.Request) (domain.Expense, bool) {
	var req api.ExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.JSON(w, r, api.Fail(http.StatusBadRequest, "Invalid request body", err.Error()))
		return domain.Expense{}, false
	}

	date, err := time.Parse(adapters.DateLayout, req.ExpenseDate)
	if err != nil {
		respond.JSON(w, r, api.Fail(http.StatusBadRequest, "Invalid expense date", "expenseDate must be formatted YYYY-MM-DD"))
		return domain.Expense{}, false
	}

	return domain.Expense{
		ID:          req.ID,
		CategoryID:  req.CategoryID,
		Amount:      req.Amount,
		ExpenseDate: date,
		Note:        req.Note,
	}, true
}

// writeExpenseError maps service errors to envelopes; returns true when a
// response was written.
func (h *Handler) writeExpenseError(w http.ResponseWriter, r *http.Request, err error, message string) bool {
	if err == nil {
		return false
	}

	var validation *expense.ValidationError
	switch {
	case errors.Is(err, expense.ErrExpenseNotFound):
		respond.JSON(w, r, api.Fail(http.StatusNotFound, "Expense not found"))
	case errors.Is(err, expense.ErrInvalidCategory):
		respond.JSON(w, r, api.Fail(http.StatusBadRequest, message, err.Error()))
	case errors.Is(err, expense.ErrIDMismatch):
		respond.JSON(w, r, api.Fail(http.StatusBadRequest, message, err.Error()))
	case errors.As(err, &validation):
		respond.JSON(w, r, api.Fail(http.StatusBadRequest, message, validation.Message))
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("expense operation failed")
		respond.JSON(w, r, api.Fail(http.StatusInternalServerError, message, err.Error()))
	}
	return true
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
