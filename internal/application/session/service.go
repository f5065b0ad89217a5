package session

import (
	"context"
	"fmt"

	"github.com/crystal-land-academy/api/internal/domain"
	"github.com/crystal-land-academy/api/internal/pkg/validate"
	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	Login(ctx context.Context, req domain.LoginRequest) (bearer string, user *domain.User, err error)
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type jwtSigner interface {
	Sign(userID, role string) (string, error)
}

type service struct {
	users userStore
	jwt   jwtSigner
}

func NewService(users userStore, jwt jwtSigner) Service {
	return &service{users: users, jwt: jwt}
}

// Login checks credentials and issues a bearer token. Unknown email and bad
// password produce the same error so callers can't probe accounts.
func (s *service) Login(ctx context.Context, req domain.LoginRequest) (string, *domain.User, error) {
	if err := validate.Struct(req); err != nil {
		return "", nil, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}

	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return "", nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return "", nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}

	bearer, err := s.jwt.Sign(u.UserID, u.Role)
	if err != nil {
		return "", nil, err
	}
	return bearer, u, nil
}

// CurrentUser resolves the account behind a set of bearer claims.
func (s *service) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.Get(ctx, userID)
}
