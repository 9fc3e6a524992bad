package mocks

import (
	"context"
	"time"

	"github.com/logeshwaran0404/Albany-VSM-sub001/domain"
)

// MockOTPService implements domain.OTPService for testing
type MockOTPService struct {
	SendFunc   func(ctx context.Context, destination, purpose string) (*domain.OTPChallenge, error)
	VerifyFunc func(ctx context.Context, destination, purpose, code string) error
}

// NewMockOTPService creates a new MockOTPService with default behaviors
func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

func (m *MockOTPService) Send(ctx context.Context, destination, purpose string) (*domain.OTPChallenge, error) {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, destination, purpose)
	}
	now := time.Now()
	return &domain.OTPChallenge{
		ID:          "mock-challenge",
		Destination: destination,
		Purpose:     purpose,
		Code:        "123456",
		CreatedAt:   now,
		ExpiresAt:   now.Add(5 * time.Minute),
	}, nil
}

func (m *MockOTPService) Verify(ctx context.Context, destination, purpose, code string) error {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, destination, purpose, code)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.OTPService = (*MockOTPService)(nil)
