package auth

import (
	"context"
	"errors"
	"math/rand"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrOTPInvalid is returned for a wrong or expired OTP.
var ErrOTPInvalid = errors.New("invalid or expired OTP")

// GenerateOTP returns a random 6-digit one-time password.
func GenerateOTP() string {
	return strconv.Itoa(100000 + rand.Intn(900000))
}

// OTPStore keeps pending login OTPs in Redis with a TTL. An OTP is
// single-use: verification deletes it.
type OTPStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewOTPStore builds the store.
func NewOTPStore(client *redis.Client, ttlMinutes int) *OTPStore {
	if ttlMinutes <= 0 {
		ttlMinutes = 10
	}
	return &OTPStore{client: client, ttl: time.Duration(ttlMinutes) * time.Minute}
}

// Put stores the OTP for the admin, replacing any pending one.
func (s *OTPStore) Put(ctx context.Context, adminID, otp string) error {
	return s.client.Set(ctx, otpKey(adminID), otp, s.ttl).Err()
}

// Verify checks and consumes the pending OTP for the admin.
func (s *OTPStore) Verify(ctx context.Context, adminID, otp string) error {
	stored, err := s.client.Get(ctx, otpKey(adminID)).Result()
	if errors.Is(err, redis.Nil) {
		return ErrOTPInvalid
	}
	if err != nil {
		return err
	}
	if stored != otp {
		return ErrOTPInvalid
	}
	return s.client.Del(ctx, otpKey(adminID)).Err()
}

func otpKey(adminID string) string {
	return "otp:admin:" + adminID
}
