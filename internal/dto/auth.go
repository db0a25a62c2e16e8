package dto

import "github.com/parancompany/navycamp-api/internal/models"

// LoginRequest is the POST /auth/login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the issued token and account profile.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int64        `json:"expiresIn"`
	User      *models.User `json:"user"`
}

// RegisterRequest creates a new account (admin only).
type RegisterRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Name     string  `json:"name" validate:"required"`
	Role     string  `json:"role" validate:"required"`
	Fleet    *string `json:"fleet"`
	Ship     *string `json:"ship"`
	Phone    *string `json:"phone"`
}

// AccessRequestInput is the schedule access contact form forwarded by email.
type AccessRequestInput struct {
	Name   string `json:"name" validate:"required"`
	Rank   string `json:"rank" validate:"required"`
	Unit   string `json:"unit" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
	Phone  string `json:"phone" validate:"required"`
	Reason string `json:"reason" validate:"required"`
}
