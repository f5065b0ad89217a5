package domain

import "time"

// Role names used by the route gates.
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// User is an account that can hold a session. PK: user_id. GSI: email-index.
type User struct {
	UserID       string    `json:"id" dynamodbav:"user_id"`
	Email        string    `json:"email" dynamodbav:"email"`
	PasswordHash string    `json:"-" dynamodbav:"password_hash"`
	Role         string    `json:"role" dynamodbav:"role"`
	FirstName    string    `json:"firstName" dynamodbav:"first_name"`
	LastName     string    `json:"lastName" dynamodbav:"last_name"`
	CreatedAt    time.Time `json:"createdAt" dynamodbav:"created_at"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
