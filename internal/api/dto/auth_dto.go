package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// AdminRegisterRequest payload.
type AdminRegisterRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Mobile     string `json:"mobile"`
	Department string `json:"department"`
}

// AdminLoginRequest payload.
type AdminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyOTPRequest payload.
type VerifyOTPRequest struct {
	UserID string `json:"userId"`
	OTP    string `json:"otp"`
}

// ResendOTPRequest payload.
type ResendOTPRequest struct {
	UserID string `json:"userId"`
}

// AuthResponse carries an issued token.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// OTPPendingResponse tells the client to complete the OTP step.
type OTPPendingResponse struct {
	RequireOTP bool   `json:"requireOTP"`
	UserID     string `json:"userId"`
}

// AdminSummary is the minimal admin shape embedded in other responses.
type AdminSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AdminResponse is the full admin profile.
type AdminResponse struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Mobile     string     `json:"mobile,omitempty"`
	Department string     `json:"department,omitempty"`
	IsActive   bool       `json:"isActive"`
	LastLogin  *time.Time `json:"lastLogin,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// NewAdminResponse maps a domain admin. The password hash never leaves the
// service.
func NewAdminResponse(a *domain.Admin) AdminResponse {
	return AdminResponse{
		ID:         a.ID,
		Name:       a.Name,
		Email:      a.Email,
		Mobile:     a.Mobile,
		Department: a.Department,
		IsActive:   a.IsActive,
		LastLogin:  a.LastLogin,
		CreatedAt:  a.CreatedAt,
	}
}
