package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/logeshwaran0404/Albany-VSM-sub001/domain"
	"github.com/logeshwaran0404/Albany-VSM-sub001/internal/mocks"
)

// setupTestRedis creates an in-memory Redis instance for testing
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(func() { mr.Close() })

	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func testOTPConfig() OTPConfig {
	return OTPConfig{
		Length:       6,
		TTL:          5 * time.Minute,
		MaxAttempts:  3,
		ResendWindow: 0,
	}
}

// newOTPServiceForTest builds an OTP service against miniredis with a
// controllable clock.
func newOTPServiceForTest(t *testing.T, cfg OTPConfig) (*OTPServiceImpl, *mocks.MockNotificationService, *time.Time) {
	t.Helper()

	client := setupTestRedis(t)
	notificationSvc := mocks.NewMockNotificationService()

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc := NewOTPService(notificationSvc, client, cfg).
		WithTimeFunc(func() time.Time { return now })

	return svc, notificationSvc, &now
}

func TestOTPService_SendDeliversByChannel(t *testing.T) {
	tests := []struct {
		name        string
		destination string
		wantSMS     bool
		wantEmail   bool
	}{
		{name: "phone destination uses SMS", destination: "+15550001111", wantSMS: true},
		{name: "email destination uses email", destination: "customer@example.com", wantEmail: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, notificationSvc, _ := newOTPServiceForTest(t, testOTPConfig())

			var smsTo, emailTo, delivered string
			notificationSvc.SendSMSFunc = func(to, message string) error {
				smsTo, delivered = to, message
				return nil
			}
			notificationSvc.SendEmailFunc = func(to, subject, body string) error {
				emailTo, delivered = to, body
				return nil
			}

			challenge, err := svc.Send(context.Background(), tt.destination, domain.OTPPurposeLogin)
			if err != nil {
				t.Fatalf("Send returned error: %v", err)
			}

			if len(challenge.Code) != 6 {
				t.Errorf("code length = %d, want 6", len(challenge.Code))
			}
			if challenge.Attempts != 0 || challenge.Consumed {
				t.Errorf("fresh challenge should be pending: %+v", challenge)
			}
			if tt.wantSMS && smsTo != tt.destination {
				t.Errorf("SMS went to %q, want %q", smsTo, tt.destination)
			}
			if tt.wantEmail && emailTo != tt.destination {
				t.Errorf("email went to %q, want %q", emailTo, tt.destination)
			}
			if !strings.Contains(delivered, challenge.Code) {
				t.Errorf("delivered message %q does not carry the code", delivered)
			}
		})
	}
}

func TestOTPService_SendRejectsUnknownPurpose(t *testing.T) {
	svc, _, _ := newOTPServiceForTest(t, testOTPConfig())

	if _, err := svc.Send(context.Background(), "+15550001111", "password_reset"); err != domain.ErrOTPBadPurpose {
		t.Errorf("err = %v, want %v", err, domain.ErrOTPBadPurpose)
	}
}

func TestOTPService_ResendThrottle(t *testing.T) {
	cfg := testOTPConfig()
	cfg.ResendWindow = 60 * time.Second
	svc, _, _ := newOTPServiceForTest(t, cfg)

	if _, err := svc.Send(context.Background(), "+15550001111", domain.OTPPurposeLogin); err != nil {
		t.Fatalf("first send: %v", err)
	}

	_, err := svc.Send(context.Background(), "+15550001111", domain.OTPPurposeLogin)
	if !errors.Is(err, domain.ErrOTPResendLimit) {
		t.Errorf("second send err = %v, want %v", err, domain.ErrOTPResendLimit)
	}

	// A different purpose for the same destination is a distinct pair.
	if _, err := svc.Send(context.Background(), "+15550001111", domain.OTPPurposeRegistration); err != nil {
		t.Errorf("send for distinct purpose: %v", err)
	}
}

func TestOTPService_VerifyHappyPathAndReplay(t *testing.T) {
	svc, _, _ := newOTPServiceForTest(t, testOTPConfig())
	ctx := context.Background()

	challenge, err := svc.Send(ctx, "+15550001111", domain.OTPPurposeLogin)
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}

	if err := svc.Verify(ctx, "+15550001111", domain.OTPPurposeLogin, challenge.Code); err != nil {
		t.Fatalf("first verify err = %v, want nil", err)
	}

	// Replay with the same correct code must fail: consumed exactly once.
	if err := svc.Verify(ctx, "+15550001111", domain.OTPPurposeLogin, challenge.Code); err != domain.ErrOTPNotFound {
		t.Errorf("replay err = %v, want %v", err, domain.ErrOTPNotFound)
	}
}

func TestOTPService_VerifyMismatchKeepsChallengePending(t *testing.T) {
	svc, _, _ := newOTPServiceForTest(t, testOTPConfig())
	ctx := context.Background()

	challenge, err := svc.Send(ctx, "+15550001111", domain.OTPPurposeLogin)
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}

	if err := svc.Verify(ctx, "+15550001111", domain.OTPPurposeLogin, "000000"); err != domain.ErrOTPMismatch {
		t.Fatalf("mismatch err = %v, want %v", err, domain.ErrOTPMismatch)
	}

	// Retry with the right code is still allowed.
	if err := svc.Verify(ctx, "+15550001111", domain.OTPPurposeLogin, challenge.Code); err != nil {
		t.Errorf("verify after mismatch err = %v, want nil", err)
	}
}

func TestOTPService_VerifyAttemptExhaustion(t *testing.T) {
	cfg := testOTPConfig()
	cfg.MaxAttempts = 3
	svc, _, _ := newOTPServiceForTest(t, cfg)
	ctx := context.Background()

	challenge, err := svc.Send(ctx, "+15550001111", domain.OTPPurposeLogin)
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := svc.Verify(ctx, "+15550001111", domain.OTPPurposeLogin, "000000"); err != domain.ErrOTPMismatch {
			t.Fatalf("attempt %d err = %v, want %v", i+1, err, domain.ErrOTPMismatch)
		}
	}

	// Fourth attempt is rejected even with the correct code.
	if err := svc.Verify(ctx, "+15550001111", domain.OTPPurposeLogin, challenge.Code); err != domain.ErrOTPMaxAttempts {
		t.Errorf("exhausted err = %v, want %v", err, domain.ErrOTPMaxAttempts)
	}

	// The challenge was discarded with the counter.
	if err := svc.Verify(ctx, "+15550001111", domain.OTPPurposeLogin, challenge.Code); err != domain.ErrOTPNotFound {
		t.Errorf("post-exhaustion err = %v, want %v", err, domain.ErrOTPNotFound)
	}
}

func TestOTPService_VerifyExpired(t *testing.T) {
	svc, _, now := newOTPServiceForTest(t, testOTPConfig())
	ctx := context.Background()

	challenge, err := svc.Send(ctx, "+15550001111", domain.OTPPurposeRegistration)
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}

	*now = now.Add(5*time.Minute + time.Second)

	if err := svc.Verify(ctx, "+15550001111", domain.OTPPurposeRegistration, challenge.Code); err != domain.ErrOTPExpired {
		t.Errorf("expired err = %v, want %v", err, domain.ErrOTPExpired)
	}

	// The expired challenge was discarded.
	if err := svc.Verify(ctx, "+15550001111", domain.OTPPurposeRegistration, challenge.Code); err != domain.ErrOTPNotFound {
		t.Errorf("post-expiry err = %v, want %v", err, domain.ErrOTPNotFound)
	}
}

func TestOTPService_ResendInvalidatesPriorChallenge(t *testing.T) {
	svc, _, _ := newOTPServiceForTest(t, testOTPConfig())
	ctx := context.Background()

	first, err := svc.Send(ctx, "+15550001111", domain.OTPPurposeLogin)
	if err != nil {
		t.Fatalf("first send: %v", err)
	}
	second, err := svc.Send(ctx, "+15550001111", domain.OTPPurposeLogin)
	if err != nil {
		t.Fatalf("second send: %v", err)
	}

	if first.Code != second.Code {
		// The stale code must never verify once superseded.
		if err := svc.Verify(ctx, "+15550001111", domain.OTPPurposeLogin, first.Code); err != domain.ErrOTPMismatch {
			t.Errorf("stale code err = %v, want %v", err, domain.ErrOTPMismatch)
		}
	}

	if err := svc.Verify(ctx, "+15550001111", domain.OTPPurposeLogin, second.Code); err != nil {
		t.Errorf("current code err = %v, want nil", err)
	}
}

func TestOTPService_VerifyWithoutSend(t *testing.T) {
	svc, _, _ := newOTPServiceForTest(t, testOTPConfig())

	if err := svc.Verify(context.Background(), "+15550001111", domain.OTPPurposeLogin, "123456"); err != domain.ErrOTPNotFound {
		t.Errorf("err = %v, want %v", err, domain.ErrOTPNotFound)
	}
}

func TestOTPService_DeliveryFailureRollsBack(t *testing.T) {
	svc, notificationSvc, _ := newOTPServiceForTest(t, testOTPConfig())
	ctx := context.Background()

	notificationSvc.SendSMSFunc = func(to, message string) error {
		return errors.New("twilio unreachable")
	}

	_, err := svc.Send(ctx, "+15550001111", domain.OTPPurposeLogin)
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("err = %v, want wrapped %v", err, domain.ErrUpstream)
	}

	// No challenge may linger after a failed dispatch.
	notificationSvc.SendSMSFunc = nil
	if err := svc.Verify(ctx, "+15550001111", domain.OTPPurposeLogin, "123456"); err != domain.ErrOTPNotFound {
		t.Errorf("verify after rollback err = %v, want %v", err, domain.ErrOTPNotFound)
	}
}
