package domain

import "time"

// NotificationType is the closed set of notification categories.
type NotificationType string

const (
	NotificationSuccess NotificationType = "success"
	NotificationError   NotificationType = "error"
	NotificationInfo    NotificationType = "info"
	NotificationWarning NotificationType = "warning"
)

// IsValid reports whether t is one of the four allowed values.
func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationSuccess, NotificationError, NotificationInfo, NotificationWarning:
		return true
	}
	return false
}

// NotificationStatus tracks read state. Records are created unread; nothing
// in this API flips them, the field only feeds the list filter.
type NotificationStatus string

const (
	NotificationUnread NotificationStatus = "unread"
	NotificationRead   NotificationStatus = "read"
)

type Notification struct {
	NotificationID string                 `json:"id" dynamodbav:"notification_id"`
	UserID         string                 `json:"userId" dynamodbav:"user_id"`
	Type           NotificationType       `json:"type" dynamodbav:"type"`
	Message        string                 `json:"message" dynamodbav:"message"`
	Metadata       map[string]interface{} `json:"metadata,omitempty" dynamodbav:"metadata"`
	Status         NotificationStatus     `json:"status" dynamodbav:"status"`
	CreatedAt      time.Time              `json:"createdAt" dynamodbav:"created_at"`
	ExpiresAt      time.Time              `json:"expiresAt" dynamodbav:"expires_at"`
}

// CreateNotificationRequest carries the create body. Metadata is an arbitrary
// key-value mapping; values may be numbers, nested objects, anything JSON.
type CreateNotificationRequest struct {
	UserID   string                 `json:"userId" validate:"required"`
	Type     NotificationType       `json:"type" validate:"required"`
	Message  string                 `json:"message" validate:"required"`
	Metadata map[string]interface{} `json:"metadata"`
}

// NotificationView is the list projection: identity plus the fields a client
// renders.
type NotificationView struct {
	NotificationID string                 `json:"id"`
	Type           NotificationType       `json:"type"`
	Message        string                 `json:"message"`
	Status         NotificationStatus     `json:"status"`
	CreatedAt      time.Time              `json:"createdAt"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}
