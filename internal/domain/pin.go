package domain

import "time"

// Pin is an 11-digit access code with a 30-day lifetime.
// PK: pin (the code itself — uniqueness is the table's key constraint).
type Pin struct {
	Pin       string    `json:"pin" dynamodbav:"pin"`
	CreatedAt time.Time `json:"createdAt" dynamodbav:"created_at"`
	ExpiresAt time.Time `json:"expiresAt" dynamodbav:"expires_at"`
	IsUsed    bool      `json:"isUsed" dynamodbav:"is_used"`
	UsedBy    *string   `json:"usedBy,omitempty" dynamodbav:"used_by"`
}

// GeneratePinRequest optionally names delivery targets for the fresh PIN.
type GeneratePinRequest struct {
	Email *string `json:"email" validate:"omitempty,email"`
	Phone *string `json:"phone"`
}

type VerifyPinRequest struct {
	Pin string `json:"pin" validate:"required"`
}

// PinVerification is the structured outcome of a verification attempt.
// Business-rule failures (bad format, unknown, used, expired) are carried
// here, not as errors.
type PinVerification struct {
	IsValid bool        `json:"isValid"`
	Message string      `json:"message,omitempty"`
	Pin     *PinSummary `json:"pin,omitempty"`
}

// PinSummary is the projection returned to a successful verifier.
type PinSummary struct {
	Pin       string    `json:"pin"`
	ExpiresAt time.Time `json:"expiresAt"`
}
