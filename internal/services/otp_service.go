package services

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/logeshwaran0404/Albany-VSM-sub001/domain"
)

// OTPServiceImpl implements domain.OTPService using Redis persistence.
// A challenge lives under one key per (destination, purpose) pair, so a new
// send overwrites any pending challenge for that pair. Attempt counting uses
// INCR and consumption uses GETDEL; both are single commands, which
// serializes concurrent verifies on the same key without any in-process
// locking. Distinct pairs never contend.
type OTPServiceImpl struct {
	notificationSvc domain.NotificationService
	redisClient     *redis.Client
	config          OTPConfig
	now             func() time.Time
}

type OTPConfig struct {
	Length       int
	TTL          time.Duration
	MaxAttempts  int
	ResendWindow time.Duration
}

// NewOTPService creates a new Redis-based OTP service
func NewOTPService(notificationSvc domain.NotificationService, redisClient *redis.Client, config OTPConfig) *OTPServiceImpl {
	return &OTPServiceImpl{
		notificationSvc: notificationSvc,
		redisClient:     redisClient,
		config:          config,
		now:             time.Now,
	}
}

// WithTimeFunc overrides the clock. Test hook.
func (s *OTPServiceImpl) WithTimeFunc(now func() time.Time) *OTPServiceImpl {
	s.now = now
	return s
}

func challengeKey(destination, purpose string) string {
	return fmt.Sprintf("otp:ch:%s:%s", purpose, destination)
}

func attemptsKey(destination, purpose string) string {
	return fmt.Sprintf("otp:att:%s:%s", purpose, destination)
}

func resendKey(destination, purpose string) string {
	return fmt.Sprintf("otp:res:%s:%s", purpose, destination)
}

// Send implements domain.OTPService. It invalidates any pending challenge
// for the same (destination, purpose) pair and dispatches the new code via
// the notification collaborator.
func (s *OTPServiceImpl) Send(ctx context.Context, destination, purpose string) (*domain.OTPChallenge, error) {
	if purpose != domain.OTPPurposeLogin && purpose != domain.OTPPurposeRegistration {
		return nil, domain.ErrOTPBadPurpose
	}

	chKey := challengeKey(destination, purpose)
	attKey := attemptsKey(destination, purpose)
	resKey := resendKey(destination, purpose)

	// Resend throttle per pair
	ttl, err := s.redisClient.TTL(ctx, resKey).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: otp resend check: %v", domain.ErrUpstream, err)
	}
	if ttl > 0 {
		return nil, fmt.Errorf("%w: retry in %ds", domain.ErrOTPResendLimit, int64(ttl.Seconds()))
	}

	code, err := s.generateSecureCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP code: %w", err)
	}

	createdAt := s.now()
	challenge := &domain.OTPChallenge{
		ID:          uuid.NewString(),
		Destination: destination,
		Purpose:     purpose,
		Code:        code,
		CreatedAt:   createdAt,
		ExpiresAt:   createdAt.Add(s.config.TTL),
		Attempts:    0,
		Consumed:    false,
	}

	data, err := json.Marshal(challenge)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal challenge: %w", err)
	}

	// Keys outlive the challenge TTL by one period so a post-expiry verify
	// reports EXPIRED rather than NOT_FOUND; Redis eviction is the backstop.
	storageTTL := 2 * s.config.TTL

	pipe := s.redisClient.TxPipeline()
	pipe.Set(ctx, chKey, data, storageTTL)
	pipe.Set(ctx, attKey, 0, storageTTL)
	pipe.Set(ctx, resKey, 1, s.config.ResendWindow)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("%w: otp store: %v", domain.ErrUpstream, err)
	}

	if err := s.deliver(destination, code); err != nil {
		// Roll back so the undeliverable code cannot be guessed at.
		s.redisClient.Del(ctx, chKey, attKey, resKey)
		return nil, fmt.Errorf("%w: otp delivery: %v", domain.ErrUpstream, err)
	}

	return challenge, nil
}

// Verify implements domain.OTPService. On a code match the challenge is
// consumed exactly once: the loser of a concurrent race observes NOT_FOUND.
func (s *OTPServiceImpl) Verify(ctx context.Context, destination, purpose, code string) error {
	chKey := challengeKey(destination, purpose)
	attKey := attemptsKey(destination, purpose)

	attempts, err := s.redisClient.Incr(ctx, attKey).Result()
	if err != nil {
		return fmt.Errorf("%w: otp attempts: %v", domain.ErrUpstream, err)
	}

	if attempts > int64(s.config.MaxAttempts) {
		s.redisClient.Del(ctx, chKey, attKey)
		return domain.ErrOTPMaxAttempts
	}

	data, err := s.redisClient.Get(ctx, chKey).Result()
	if err == redis.Nil {
		// INCR above may have resurrected the counter after a discard.
		if attempts == 1 {
			s.redisClient.Del(ctx, attKey)
		}
		return domain.ErrOTPNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: otp lookup: %v", domain.ErrUpstream, err)
	}

	var challenge domain.OTPChallenge
	if err := json.Unmarshal([]byte(data), &challenge); err != nil {
		return fmt.Errorf("failed to unmarshal challenge: %w", err)
	}

	if challenge.Expired(s.now()) {
		s.redisClient.Del(ctx, chKey, attKey)
		return domain.ErrOTPExpired
	}

	if challenge.Code != code {
		return domain.ErrOTPMismatch
	}

	// Consume exactly once
	if err := s.redisClient.GetDel(ctx, chKey).Err(); err != nil {
		if err == redis.Nil {
			return domain.ErrOTPNotFound
		}
		return fmt.Errorf("%w: otp consume: %v", domain.ErrUpstream, err)
	}
	s.redisClient.Del(ctx, attKey)

	return nil
}

// deliver routes the code to the destination by channel: email addresses get
// SMTP, anything else is treated as a phone number.
func (s *OTPServiceImpl) deliver(destination, code string) error {
	minutes := int(s.config.TTL.Minutes())
	if strings.Contains(destination, "@") {
		body := fmt.Sprintf("Your Albany Auto Service verification code is %s. It is valid for %d minutes.", code, minutes)
		return s.notificationSvc.SendEmail(destination, "Your verification code", body)
	}
	message := fmt.Sprintf("Your Albany Auto Service verification code is: %s. Valid for %d minutes.", code, minutes)
	return s.notificationSvc.SendSMS(destination, message)
}

// generateSecureCode generates a cryptographically secure numeric code
func (s *OTPServiceImpl) generateSecureCode() (string, error) {
	digits := make([]byte, s.config.Length)

	for i := 0; i < s.config.Length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}

	return string(digits), nil
}
