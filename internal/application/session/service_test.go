package session

import (
	"context"
	"fmt"
	"testing"

	"github.com/crystal-land-academy/api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockJWTSigner struct{ mock.Mock }

func (m *mockJWTSigner) Sign(userID, role string) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}

func hashedUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.User{
		UserID:       "user-1",
		Email:        "admin@school.test",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}
}

func TestLogin_Success(t *testing.T) {
	us, signer := &mockUserStore{}, &mockJWTSigner{}
	us.On("GetByEmail", mock.Anything, "admin@school.test").Return(hashedUser(t, "secret123"), nil)
	signer.On("Sign", "user-1", domain.RoleAdmin).Return("bearer-token", nil)

	bearer, u, err := NewService(us, signer).Login(context.Background(), domain.LoginRequest{
		Email:    "admin@school.test",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "bearer-token", bearer)
	assert.Equal(t, "user-1", u.UserID)
}

func TestLogin_UnknownEmail(t *testing.T) {
	us, signer := &mockUserStore{}, &mockJWTSigner{}
	us.On("GetByEmail", mock.Anything, "ghost@school.test").
		Return(nil, fmt.Errorf("user not found: %w", domain.ErrNotFound))

	_, _, err := NewService(us, signer).Login(context.Background(), domain.LoginRequest{
		Email:    "ghost@school.test",
		Password: "whatever1",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_WrongPassword(t *testing.T) {
	us, signer := &mockUserStore{}, &mockJWTSigner{}
	us.On("GetByEmail", mock.Anything, "admin@school.test").Return(hashedUser(t, "secret123"), nil)

	_, _, err := NewService(us, signer).Login(context.Background(), domain.LoginRequest{
		Email:    "admin@school.test",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	signer.AssertNotCalled(t, "Sign")
}

func TestCurrentUser_ReturnsAccount(t *testing.T) {
	us, signer := &mockUserStore{}, &mockJWTSigner{}
	us.On("Get", mock.Anything, "user-1").Return(hashedUser(t, "secret123"), nil)

	u, err := NewService(us, signer).CurrentUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "admin@school.test", u.Email)
}

func TestCurrentUser_NotFound(t *testing.T) {
	us, signer := &mockUserStore{}, &mockJWTSigner{}
	us.On("Get", mock.Anything, "ghost").
		Return(nil, fmt.Errorf("user not found: %w", domain.ErrNotFound))

	_, err := NewService(us, signer).CurrentUser(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLogin_ValidatesBody(t *testing.T) {
	us, signer := &mockUserStore{}, &mockJWTSigner{}

	_, _, err := NewService(us, signer).Login(context.Background(), domain.LoginRequest{Email: "not-an-email"})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
	us.AssertNotCalled(t, "GetByEmail")
}
