package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// OTPStore persists pending login OTPs.
type OTPStore interface {
	Put(ctx context.Context, adminID, otp string) error
	Verify(ctx context.Context, adminID, otp string) error
}

// OTPSender delivers a login OTP to an admin.
type OTPSender interface {
	SendOTPEmail(ctx context.Context, email, name, otp string) error
}

// AuthService handles admin registration and the two-step OTP login.
type AuthService struct {
	admins    repository.AdminRepository
	tokens    *auth.TokenManager
	otps      OTPStore
	otpSender OTPSender
	logger    *zap.Logger
	authCfg   config.AuthConfig
	smtpCfg   config.SMTPConfig
}

// NewAuthService creates the service.
func NewAuthService(admins repository.AdminRepository, tokens *auth.TokenManager, otps OTPStore, otpSender OTPSender, logger *zap.Logger, authCfg config.AuthConfig, smtpCfg config.SMTPConfig) *AuthService {
	return &AuthService{
		admins:    admins,
		tokens:    tokens,
		otps:      otps,
		otpSender: otpSender,
		logger:    logger,
		authCfg:   authCfg,
		smtpCfg:   smtpCfg,
	}
}

// AdminRegisterInput carries signup fields.
type AdminRegisterInput struct {
	Name       string
	Email      string
	Password   string
	Mobile     string
	Department string
}

// LoginResult is returned from Login. When RequireOTP is set the caller must
// complete the flow with VerifyOTP; otherwise Token is ready to use.
type LoginResult struct {
	RequireOTP bool
	AdminID    string
	Token      string
	ExpiresAt  time.Time
	Admin      *domain.Admin
}

// Register creates a new admin account.
func (s *AuthService) Register(ctx context.Context, input AdminRegisterInput) (*domain.Admin, error) {
	var missing []string
	if strings.TrimSpace(input.Name) == "" {
		missing = append(missing, "name is required")
	}
	if strings.TrimSpace(input.Email) == "" {
		missing = append(missing, "email is required")
	}
	if len(input.Password) < 6 {
		missing = append(missing, "password must be at least 6 characters")
	}
	if len(missing) > 0 {
		return nil, apperrors.NewValidationError(missing...)
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := s.admins.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewDuplicateKey("email")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.authCfg.BcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	admin := &domain.Admin{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hash,
		Mobile:       strings.TrimSpace(input.Mobile),
		Department:   strings.TrimSpace(input.Department),
		IsActive:     true,
	}
	if admin.Department == "" {
		admin.Department = domain.DepartmentAdmin
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, apperrors.MapError(err)
	}
	return admin, nil
}

// Login checks credentials and either issues a token directly (no mail
// transport configured) or sends an OTP and asks the caller to verify it.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	admin, err := s.admins.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("Invalid email or password")
		}
		return nil, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(admin.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("Invalid email or password")
	}
	if !admin.IsActive {
		return nil, apperrors.NewUnauthorized("Account is deactivated")
	}

	if !s.smtpCfg.Configured() {
		// No mail transport: skip the OTP step so local setups can log in.
		return s.issueToken(ctx, admin)
	}

	if err := s.sendOTP(ctx, admin); err != nil {
		return nil, err
	}
	return &LoginResult{RequireOTP: true, AdminID: admin.ID}, nil
}

// VerifyOTP consumes the pending OTP and issues a token.
func (s *AuthService) VerifyOTP(ctx context.Context, adminID, otp string) (*LoginResult, error) {
	admin, err := s.admins.GetByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("Invalid or expired OTP")
		}
		return nil, apperrors.MapError(err)
	}

	if err := s.otps.Verify(ctx, adminID, otp); err != nil {
		if errors.Is(err, auth.ErrOTPInvalid) {
			return nil, apperrors.NewUnauthorized("Invalid or expired OTP")
		}
		return nil, apperrors.MapError(err)
	}
	return s.issueToken(ctx, admin)
}

// ResendOTP generates and sends a fresh OTP, replacing any pending one.
func (s *AuthService) ResendOTP(ctx context.Context, adminID string) error {
	admin, err := s.admins.GetByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Admin")
		}
		return apperrors.MapError(err)
	}
	return s.sendOTP(ctx, admin)
}

// Me returns the admin profile.
func (s *AuthService) Me(ctx context.Context, adminID string) (*domain.Admin, error) {
	admin, err := s.admins.GetByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Admin")
		}
		return nil, apperrors.MapError(err)
	}
	return admin, nil
}

func (s *AuthService) sendOTP(ctx context.Context, admin *domain.Admin) error {
	otp := auth.GenerateOTP()
	if err := s.otps.Put(ctx, admin.ID, otp); err != nil {
		return apperrors.NewInternalError(err)
	}
	if err := s.otpSender.SendOTPEmail(ctx, admin.Email, admin.Name, otp); err != nil {
		s.logger.Error("failed to send login OTP",
			zap.String("admin_id", admin.ID),
			zap.Error(err))
		return apperrors.NewInternalError(err)
	}
	return nil
}

func (s *AuthService) issueToken(ctx context.Context, admin *domain.Admin) (*LoginResult, error) {
	token, expiresAt, err := s.tokens.GenerateToken(admin.ID, admin.Department)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	now := time.Now()
	admin.LastLogin = &now
	if err := s.admins.Update(ctx, admin); err != nil {
		s.logger.Warn("failed to record last login", zap.String("admin_id", admin.ID), zap.Error(err))
	}

	return &LoginResult{
		AdminID:   admin.ID,
		Token:     token,
		ExpiresAt: expiresAt,
		Admin:     admin,
	}, nil
}
