package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

type fakeOTPStore struct {
	codes map[string]string
}

func newFakeOTPStore() *fakeOTPStore {
	return &fakeOTPStore{codes: map[string]string{}}
}

func (s *fakeOTPStore) Put(_ context.Context, adminID, otp string) error {
	s.codes[adminID] = otp
	return nil
}

func (s *fakeOTPStore) Verify(_ context.Context, adminID, otp string) error {
	stored, ok := s.codes[adminID]
	if !ok || stored != otp {
		return auth.ErrOTPInvalid
	}
	delete(s.codes, adminID)
	return nil
}

type fakeOTPSender struct {
	sent []string
}

func (s *fakeOTPSender) SendOTPEmail(_ context.Context, email, _, otp string) error {
	s.sent = append(s.sent, email+":"+otp)
	return nil
}

func newAuthServiceFixture(smtpHost string) (*AuthService, *fakeAdminRepo, *fakeOTPStore, *fakeOTPSender) {
	admins := &fakeAdminRepo{}
	otps := newFakeOTPStore()
	sender := &fakeOTPSender{}
	tokens := auth.NewTokenManager("test-secret", 60)

	svc := NewAuthService(admins, tokens, otps, sender, zap.NewNop(),
		config.AuthConfig{JWTSecret: "test-secret", AccessTokenTTLMinutes: 60, OTPTTLMinutes: 10, BcryptCost: 4},
		config.SMTPConfig{Host: smtpHost})
	return svc, admins, otps, sender
}

func registerAdmin(t *testing.T, svc *AuthService) *domain.Admin {
	t.Helper()
	admin, err := svc.Register(context.Background(), AdminRegisterInput{
		Name:     "Ops Admin",
		Email:    "ops@corp.example",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return admin
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _, _ := newAuthServiceFixture("")
	registerAdmin(t, svc)

	_, err := svc.Register(context.Background(), AdminRegisterInput{
		Name:     "Other",
		Email:    "OPS@corp.example",
		Password: "hunter22",
	})
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "DUPLICATE_KEY" || domainErr.HTTPStatus != 400 {
		t.Errorf("error = %v, want 400 DUPLICATE_KEY", err)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, _, _, _ := newAuthServiceFixture("")
	registerAdmin(t, svc)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown email", "nobody@corp.example", "hunter22"},
		{"wrong password", "ops@corp.example", "wrong"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tc.email, tc.password)
			var domainErr *apperrors.DomainError
			if !errors.As(err, &domainErr) || domainErr.HTTPStatus != 401 {
				t.Errorf("error = %v, want 401", err)
			}
		})
	}
}

func TestLoginDeactivatedAdmin(t *testing.T) {
	svc, admins, _, _ := newAuthServiceFixture("")
	admin := registerAdmin(t, svc)
	admin.IsActive = false
	_ = admins.Update(context.Background(), admin)

	_, err := svc.Login(context.Background(), "ops@corp.example", "hunter22")
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.HTTPStatus != 401 {
		t.Errorf("error = %v, want 401", err)
	}
}

func TestLoginWithoutMailTransportIssuesTokenDirectly(t *testing.T) {
	svc, admins, _, sender := newAuthServiceFixture("")
	admin := registerAdmin(t, svc)

	result, err := svc.Login(context.Background(), "ops@corp.example", "hunter22")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.RequireOTP {
		t.Error("requireOTP set without a mail transport")
	}
	if result.Token == "" {
		t.Error("token missing")
	}
	if len(sender.sent) != 0 {
		t.Errorf("sent %d OTP mails, want 0", len(sender.sent))
	}

	stored, _ := admins.GetByID(context.Background(), admin.ID)
	if stored.LastLogin == nil {
		t.Error("lastLogin not recorded")
	}
}

func TestLoginWithMailTransportRequiresOTP(t *testing.T) {
	svc, _, otps, sender := newAuthServiceFixture("smtp.corp.example")
	admin := registerAdmin(t, svc)

	result, err := svc.Login(context.Background(), "ops@corp.example", "hunter22")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !result.RequireOTP || result.AdminID != admin.ID {
		t.Errorf("result = %+v, want requireOTP for admin", result)
	}
	if result.Token != "" {
		t.Error("token issued before OTP verification")
	}
	if len(sender.sent) != 1 {
		t.Fatalf("sent %d OTP mails, want 1", len(sender.sent))
	}
	if _, ok := otps.codes[admin.ID]; !ok {
		t.Error("OTP not stored")
	}
}

func TestVerifyOTP(t *testing.T) {
	svc, _, otps, _ := newAuthServiceFixture("smtp.corp.example")
	admin := registerAdmin(t, svc)
	if _, err := svc.Login(context.Background(), "ops@corp.example", "hunter22"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	otp := otps.codes[admin.ID]

	t.Run("wrong code rejected", func(t *testing.T) {
		_, err := svc.VerifyOTP(context.Background(), admin.ID, "000000")
		var domainErr *apperrors.DomainError
		if !errors.As(err, &domainErr) || domainErr.HTTPStatus != 401 {
			t.Errorf("error = %v, want 401", err)
		}
	})

	t.Run("correct code issues token once", func(t *testing.T) {
		result, err := svc.VerifyOTP(context.Background(), admin.ID, otp)
		if err != nil {
			t.Fatalf("VerifyOTP: %v", err)
		}
		if result.Token == "" {
			t.Error("token missing after OTP verification")
		}

		// The code is consumed on success.
		if _, err := svc.VerifyOTP(context.Background(), admin.ID, otp); err == nil {
			t.Error("OTP accepted twice")
		}
	})
}
