package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// AuthHandler exposes admin authentication endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.AdminRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body")
	}

	admin, err := h.auth.Register(c.Context(), service.AdminRegisterInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Mobile:     req.Mobile,
		Department: req.Department,
	})
	if err != nil {
		return err
	}

	return dto.JSON(c, http.StatusCreated, dto.OKMessage("Admin registered successfully", dto.NewAdminResponse(admin)))
}

// Login handles POST /api/auth/login. With a mail transport configured the
// response asks for OTP verification; otherwise a token is issued directly.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body")
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password are required")
	}

	result, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	if result.RequireOTP {
		return dto.JSON(c, http.StatusOK, dto.OKMessage("OTP sent to your email", dto.OTPPendingResponse{
			RequireOTP: true,
			UserID:     result.AdminID,
		}))
	}
	return dto.JSON(c, http.StatusOK, dto.OKMessage("Login successful", fiber.Map{
		"user": dto.NewAdminResponse(result.Admin),
		"auth": dto.AuthResponse{Token: result.Token, ExpiresAt: result.ExpiresAt},
	}))
}

// VerifyOTP handles POST /api/auth/verify-otp.
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req dto.VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body")
	}
	if req.UserID == "" || req.OTP == "" {
		return apperrors.NewValidationError("userId and otp are required")
	}

	result, err := h.auth.VerifyOTP(c.Context(), req.UserID, req.OTP)
	if err != nil {
		return err
	}

	return dto.JSON(c, http.StatusOK, dto.OKMessage("Login successful", fiber.Map{
		"user": dto.NewAdminResponse(result.Admin),
		"auth": dto.AuthResponse{Token: result.Token, ExpiresAt: result.ExpiresAt},
	}))
}

// ResendOTP handles POST /api/auth/resend-otp.
func (h *AuthHandler) ResendOTP(c *fiber.Ctx) error {
	var req dto.ResendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body")
	}
	if req.UserID == "" {
		return apperrors.NewValidationError("userId is required")
	}

	if err := h.auth.ResendOTP(c.Context(), req.UserID); err != nil {
		return err
	}
	return dto.JSON(c, http.StatusOK, dto.OKMessage("OTP sent to your email", nil))
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	admin, ok := auth.AdminFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("admin required")
	}
	return dto.JSON(c, http.StatusOK, dto.OK(dto.NewAdminResponse(admin)))
}
