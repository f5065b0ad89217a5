package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/crystal-land-academy/api/internal/domain"
	"github.com/crystal-land-academy/api/internal/pkg/id"
	"github.com/crystal-land-academy/api/internal/pkg/validate"
)

const (
	notificationLifetime = 30 * 24 * time.Hour

	// Record timestamps are kept in West Africa Time; the upstream system
	// applies the same fixed shift before computing expiry.
	clockOffset = time.Hour
)

type Service interface {
	Create(ctx context.Context, req domain.CreateNotificationRequest) (*domain.Notification, error)
	List(ctx context.Context, userID string, status *domain.NotificationStatus) ([]domain.NotificationView, error)
}

type notificationStore interface {
	Put(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID string) ([]domain.Notification, error)
}

type service struct {
	repo notificationStore
	now  func() time.Time
}

func NewService(repo notificationStore) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Create(ctx context.Context, req domain.CreateNotificationRequest) (*domain.Notification, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	if !req.Type.IsValid() {
		return nil, fmt.Errorf("invalid notification type %q: %w", req.Type, domain.ErrBadRequest)
	}

	createdAt := s.now().UTC().Add(clockOffset)
	n := &domain.Notification{
		NotificationID: id.New(),
		UserID:         req.UserID,
		Type:           req.Type,
		Message:        req.Message,
		Metadata:       req.Metadata,
		Status:         domain.NotificationUnread,
		CreatedAt:      createdAt,
		ExpiresAt:      createdAt.Add(notificationLifetime),
	}
	if err := s.repo.Put(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// List returns the user's unexpired notifications newest first, optionally
// narrowed to one status.
func (s *service) List(ctx context.Context, userID string, status *domain.NotificationStatus) ([]domain.NotificationView, error) {
	if userID == "" {
		return nil, fmt.Errorf("userId is required: %w", domain.ErrBadRequest)
	}

	notifications, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	views := make([]domain.NotificationView, 0, len(notifications))
	for _, n := range notifications {
		if !n.ExpiresAt.After(now) {
			continue
		}
		if status != nil && n.Status != *status {
			continue
		}
		views = append(views, domain.NotificationView{
			NotificationID: n.NotificationID,
			Type:           n.Type,
			Message:        n.Message,
			Status:         n.Status,
			CreatedAt:      n.CreatedAt,
			Metadata:       n.Metadata,
		})
	}
	return views, nil
}
