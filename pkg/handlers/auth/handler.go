package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/expense-tools/expense-atlas/pkg/adapters"
	"github.com/expense-tools/expense-atlas/pkg/handlers/respond"
	"github.com/expense-tools/expense-atlas/pkg/models/api"
	"github.com/expense-tools/expense-atlas/pkg/services/auth"
)

type Handler struct {
	users auth.Service
}

func NewHandler(users auth.Service) *Handler {
	return &Handler{users: users}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.JSON(w, r, api.Fail(http.StatusBadRequest, "Invalid request body", err.Error()))
		return
	}

	user, err := h.users.Register(ctx, req)
	var validation *auth.ValidationError
	switch {
	case errors.As(err, &validation):
		respond.JSON(w, r, api.Fail(http.StatusBadRequest, "Registration failed", validation.Message))
		return
	case errors.Is(err, auth.ErrDuplicateUser):
		respond.JSON(w, r, api.Fail(http.StatusConflict, "Registration failed", err.Error()))
		return
	case err != nil:
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to register user")
		respond.JSON(w, r, api.Fail(http.StatusInternalServerError, "Registration failed", err.Error()))
		return
	}

	respond.JSON(w, r, api.OK(http.StatusCreated, "User registered successfully", adapters.MapDomainUserToAPI(user)))
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.JSON(w, r, api.Fail(http.StatusBadRequest, "Invalid request body", err.Error()))
		return
	}

	token, err := h.users.Login(ctx, req)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		respond.JSON(w, r, api.Fail(http.StatusUnauthorized, "Login failed", err.Error()))
		return
	case err != nil:
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to log in user")
		respond.JSON(w, r, api.Fail(http.StatusInternalServerError, "Login failed", err.Error()))
		return
	}

	respond.JSON(w, r, api.OK(http.StatusOK, "Login successful", api.TokenResponse{Token: token}))
}

// MyProfile returns the caller's profile. An unusable identity maps to a
// 404 envelope rather than 401; callers rely on that distinction.
func (h *Handler) MyProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := auth.IdentityFromContext(ctx)
	if !ok || id.UserID == 0 {
		respond.JSON(w, r, api.Fail(http.StatusNotFound, "User not found"))
		return
	}

	user, err := h.users.Profile(ctx, id.UserID)
	switch {
	case errors.Is(err, auth.ErrUserNotFound):
		respond.JSON(w, r, api.Fail(http.StatusNotFound, "User not found"))
		return
	case err != nil:
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to load profile")
		respond.JSON(w, r, api.Fail(http.StatusInternalServerError, "Failed to load profile", err.Error()))
		return
	}

	respond.JSON(w, r, api.OK(http.StatusOK, "Profile retrieved successfully", adapters.MapDomainUserToAPI(user)))
}
