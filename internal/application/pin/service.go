package pin

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"regexp"
	"time"

	"github.com/crystal-land-academy/api/internal/domain"
	"github.com/crystal-land-academy/api/internal/infrastructure/smtp"
	"github.com/crystal-land-academy/api/internal/infrastructure/sns"
)

const (
	pinLength   = 11
	maxAttempts = 10
	pinLifetime = 30 * 24 * time.Hour
)

var pinFormat = regexp.MustCompile(`^\d{11}$`)

// Messages returned for verification failures. These are part of the API
// contract, clients match on them.
const (
	msgInvalidFormat = "Invalid PIN format."
	msgNotFound      = "PIN does not exist."
	msgAlreadyUsed   = "PIN has already been used."
	msgExpired       = "PIN has expired."
)

type Service interface {
	Generate(ctx context.Context, req domain.GeneratePinRequest) (*domain.Pin, error)
	Verify(ctx context.Context, pinValue string) (*domain.PinVerification, error)
}

type pinStore interface {
	PutIfAbsent(ctx context.Context, p *domain.Pin) error
	Get(ctx context.Context, pin string) (*domain.Pin, error)
	Exists(ctx context.Context, pin string) (bool, error)
}

type service struct {
	repo      pinStore
	mailer    smtp.Mailer
	smsSender sns.SMSSender
	now       func() time.Time
}

func NewService(repo pinStore, mailer smtp.Mailer, smsSender sns.SMSSender) Service {
	return &service{repo: repo, mailer: mailer, smsSender: smsSender, now: time.Now}
}

// Generate draws random 11-digit candidates until one is free, up to
// maxAttempts. The conditional put closes the gap between the existence
// check and the write: a lost race costs one attempt instead of failing
// the request.
func (s *service) Generate(ctx context.Context, req domain.GeneratePinRequest) (*domain.Pin, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		candidate, err := randomPin()
		if err != nil {
			return nil, err
		}
		exists, err := s.repo.Exists(ctx, candidate)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}

		now := s.now().UTC()
		p := &domain.Pin{
			Pin:       candidate,
			CreatedAt: now,
			ExpiresAt: now.Add(pinLifetime),
			IsUsed:    false,
		}
		if err := s.repo.PutIfAbsent(ctx, p); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				continue
			}
			return nil, err
		}

		s.deliver(ctx, req, candidate)
		return p, nil
	}
	return nil, fmt.Errorf("could not generate a unique pin after %d attempts: %w", maxAttempts, domain.ErrPinExhausted)
}

// Verify runs the format → existence → usage → expiry chain. Business-rule
// failures come back as a structured result, never as an error.
func (s *service) Verify(ctx context.Context, pinValue string) (*domain.PinVerification, error) {
	if !pinFormat.MatchString(pinValue) {
		return &domain.PinVerification{IsValid: false, Message: msgInvalidFormat}, nil
	}

	p, err := s.repo.Get(ctx, pinValue)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.PinVerification{IsValid: false, Message: msgNotFound}, nil
		}
		return nil, err
	}
	if p.IsUsed {
		return &domain.PinVerification{IsValid: false, Message: msgAlreadyUsed}, nil
	}
	if s.now().After(p.ExpiresAt) {
		return &domain.PinVerification{IsValid: false, Message: msgExpired}, nil
	}

	// Note: verification does not consume the pin. is_used stays false until
	// a consume step exists.
	return &domain.PinVerification{
		IsValid: true,
		Pin:     &domain.PinSummary{Pin: p.Pin, ExpiresAt: p.ExpiresAt},
	}, nil
}

// deliver sends the fresh pin to any requested channels. Delivery problems
// are logged, not fatal — the pin is already persisted.
func (s *service) deliver(ctx context.Context, req domain.GeneratePinRequest, pin string) {
	if req.Email != nil && s.mailer != nil {
		if err := s.mailer.SendEmail(*req.Email, "Your access PIN", "Your PIN: "+pin); err != nil {
			slog.Warn("failed to email pin", "err", err)
		}
	}
	if req.Phone != nil && s.smsSender != nil {
		if err := s.smsSender.SendSMS(ctx, *req.Phone, "Your PIN: "+pin); err != nil {
			slog.Warn("failed to SMS pin", "err", err)
		}
	}
}

// randomPin draws a uniform 11-digit decimal string in [10^10, 10^11).
func randomPin() (string, error) {
	min := new(big.Int).Exp(big.NewInt(10), big.NewInt(pinLength-1), nil)
	span := new(big.Int).Mul(min, big.NewInt(9))
	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", err
	}
	return n.Add(n, min).String(), nil
}
