package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/expense-tools/expense-atlas/pkg/adapters"
	"github.com/expense-tools/expense-atlas/pkg/models/api"
	"github.com/expense-tools/expense-atlas/pkg/models/domain"
	"github.com/expense-tools/expense-atlas/pkg/models/store"
)

const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDuplicateUser      = errors.New("username or email already registered")
	ErrUserNotFound       = errors.New("user not found")
)

// ValidationError reports a rejected registration field.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// UserStore is the user persistence surface the auth service needs.
type UserStore interface {
	Create(ctx context.Context, rec store.UserRecord) (int64, error)
	GetByEmail(ctx context.Context, email string) (store.UserRecord, error)
	GetByUsername(ctx context.Context, username string) (store.UserRecord, error)
	GetByID(ctx context.Context, id int64) (store.UserRecord, error)
}

type Service interface {
	Register(ctx context.Context, req api.RegisterRequest) (domain.User, error)
	Login(ctx context.Context, req api.LoginRequest) (string, error)
	Profile(ctx context.Context, userID int64) (domain.User, error)
}

type service struct {
	users  UserStore
	issuer *TokenIssuer
}

func NewService(users UserStore, issuer *TokenIssuer) Service {
	return &service{users: users, issuer: issuer}
}

func (s *service) Register(ctx context.Context, req api.RegisterRequest) (domain.User, error) {
	if err := validateRegistration(req); err != nil {
		return domain.User{}, err
	}

	if _, err := s.users.GetByUsername(ctx, req.Username); err == nil {
		return domain.User{}, ErrDuplicateUser
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, fmt.Errorf("check username: %w", err)
	}
	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return domain.User{}, ErrDuplicateUser
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, fmt.Errorf("check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	role := req.Role
	if role != RoleAdmin {
		role = RoleUser
	}

	rec := store.UserRecord{
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Address:      req.Address,
		PasswordHash: string(hash),
		Role:         role,
	}

	id, err := s.users.Create(ctx, rec)
	if err != nil {
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	rec.ID = id

	return adapters.MapStoreUserToDomain(rec), nil
}

func (s *service) Login(ctx context.Context, req api.LoginRequest) (string, error) {
	rec, err := s.users.GetByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("lookup user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(req.Password)) != nil {
		return "", ErrInvalidCredentials
	}

	return s.issuer.Issue(Identity{
		UserID:   rec.ID,
		Username: rec.Username,
		Role:     rec.Role,
	})
}

func (s *service) Profile(ctx context.Context, userID int64) (domain.User, error) {
	rec, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("lookup user: %w", err)
	}
	return adapters.MapStoreUserToDomain(rec), nil
}

func validateRegistration(req api.RegisterRequest) error {
	if req.Username == "" {
		return &ValidationError{"username is required"}
	}
	if strings.ContainsAny(req.Username, " \t") {
		return &ValidationError{"username must not contain spaces"}
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return &ValidationError{"email is not a valid address"}
	}
	return validatePassword(req.Password)
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return &ValidationError{"password must be at least 8 characters"}
	}
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsSpace(r):
			return &ValidationError{"password must not contain spaces"}
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}
	if !upper {
		return &ValidationError{"password must contain an uppercase letter"}
	}
	if !lower {
		return &ValidationError{"password must contain a lowercase letter"}
	}
	if !digit {
		return &ValidationError{"password must contain a digit"}
	}
	if !special {
		return &ValidationError{"password must contain a special character"}
	}
	return nil
}
