package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/expense-tools/expense-atlas/pkg/models/api"
	"github.com/expense-tools/expense-atlas/pkg/models/store"
)

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) Create(ctx context.Context, rec store.UserRecord) (int64, error) {
	args := m.Called(ctx, rec)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (store.UserRecord, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(store.UserRecord), args.Error(1)
}

func (m *mockUserStore) GetByUsername(ctx context.Context, username string) (store.UserRecord, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(store.UserRecord), args.Error(1)
}

func (m *mockUserStore) GetByID(ctx context.Context, id int64) (store.UserRecord, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(store.UserRecord), args.Error(1)
}

func validRegistration() api.RegisterRequest {
	return api.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "Sup3r$ecret",
	}
}

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		name     string
		password string
		valid    bool
	}{
		{"valid", "Sup3r$ecret", true},
		{"too short", "S3c$et", false},
		{"no uppercase", "sup3r$ecret", false},
		{"no lowercase", "SUP3R$ECRET", false},
		{"no digit", "Super$ecret", false},
		{"no special character", "Sup3rSecret", false},
		{"contains space", "Sup3r $ecret", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validatePassword(tc.password)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects username with spaces", func(t *testing.T) {
		svc := NewService(&mockUserStore{}, NewTokenIssuer("secret"))

		req := validRegistration()
		req.Username = "al ice"

		_, err := svc.Register(ctx, req)
		var validation *ValidationError
		assert.ErrorAs(t, err, &validation)
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		svc := NewService(&mockUserStore{}, NewTokenIssuer("secret"))

		req := validRegistration()
		req.Email = "not-an-email"

		_, err := svc.Register(ctx, req)
		var validation *ValidationError
		assert.ErrorAs(t, err, &validation)
	})

	t.Run("rejects duplicate username", func(t *testing.T) {
		users := &mockUserStore{}
		users.On("GetByUsername", ctx, "alice").Return(store.UserRecord{ID: 1}, nil)
		svc := NewService(users, NewTokenIssuer("secret"))

		_, err := svc.Register(ctx, validRegistration())
		assert.ErrorIs(t, err, ErrDuplicateUser)
	})

	t.Run("hashes the password and defaults the role", func(t *testing.T) {
		users := &mockUserStore{}
		users.On("GetByUsername", ctx, "alice").Return(store.UserRecord{}, store.ErrNotFound)
		users.On("GetByEmail", ctx, "alice@example.com").Return(store.UserRecord{}, store.ErrNotFound)
		users.On("Create", ctx, mock.MatchedBy(func(rec store.UserRecord) bool {
			hashed := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte("Sup3r$ecret")) == nil
			return hashed && rec.Role == RoleUser
		})).Return(int64(1), nil)
		svc := NewService(users, NewTokenIssuer("secret"))

		user, err := svc.Register(ctx, validRegistration())

		require.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
		users.AssertExpectations(t)
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("Sup3r$ecret"), bcrypt.MinCost)
	require.NoError(t, err)

	record := store.UserRecord{
		ID:           1,
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: string(hash),
		Role:         RoleUser,
	}

	t.Run("issues a parseable token on success", func(t *testing.T) {
		users := &mockUserStore{}
		users.On("GetByEmail", ctx, "alice@example.com").Return(record, nil)
		issuer := NewTokenIssuer("secret")
		svc := NewService(users, issuer)

		token, err := svc.Login(ctx, api.LoginRequest{Email: "alice@example.com", Password: "Sup3r$ecret"})
		require.NoError(t, err)

		id, err := issuer.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, int64(1), id.UserID)
		assert.Equal(t, "alice", id.Username)
		assert.Equal(t, RoleUser, id.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := &mockUserStore{}
		users.On("GetByEmail", ctx, "alice@example.com").Return(record, nil)
		svc := NewService(users, NewTokenIssuer("secret"))

		_, err := svc.Login(ctx, api.LoginRequest{Email: "alice@example.com", Password: "wrong"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		users := &mockUserStore{}
		users.On("GetByEmail", ctx, "nobody@example.com").Return(store.UserRecord{}, store.ErrNotFound)
		svc := NewService(users, NewTokenIssuer("secret"))

		_, err := svc.Login(ctx, api.LoginRequest{Email: "nobody@example.com", Password: "Sup3r$ecret"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestTokenIssuer_Parse(t *testing.T) {
	t.Run("rejects a token signed with a different secret", func(t *testing.T) {
		token, err := NewTokenIssuer("one").Issue(Identity{UserID: 1})
		require.NoError(t, err)

		_, err = NewTokenIssuer("two").Parse(token)
		assert.Error(t, err)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := NewTokenIssuer("secret").Parse("not.a.token")
		assert.Error(t, err)
	})
}
