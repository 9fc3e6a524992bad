package mocks

import (
	"context"

	"github.com/logeshwaran0404/Albany-VSM-sub001/domain"
)

// MockAuthService implements domain.AuthService for testing
type MockAuthService struct {
	LoginWithPasswordFunc func(ctx context.Context, email, password, wantRole string) (*domain.AuthResult, error)
	RequestOTPFunc        func(ctx context.Context, destination, purpose string) error
	VerifyOTPFunc         func(ctx context.Context, destination, purpose, code string, reg *domain.Registration) (*domain.AuthResult, error)
	ChangePasswordFunc    func(ctx context.Context, identityID uint, currentPassword, newPassword string) error
	ProfileFunc           func(ctx context.Context, identityID uint) (*domain.Identity, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func (m *MockAuthService) LoginWithPassword(ctx context.Context, email, password, wantRole string) (*domain.AuthResult, error) {
	if m.LoginWithPasswordFunc != nil {
		return m.LoginWithPasswordFunc(ctx, email, password, wantRole)
	}
	return nil, domain.ErrInvalidCredentials
}

func (m *MockAuthService) RequestOTP(ctx context.Context, destination, purpose string) error {
	if m.RequestOTPFunc != nil {
		return m.RequestOTPFunc(ctx, destination, purpose)
	}
	return nil
}

func (m *MockAuthService) VerifyOTP(ctx context.Context, destination, purpose, code string, reg *domain.Registration) (*domain.AuthResult, error) {
	if m.VerifyOTPFunc != nil {
		return m.VerifyOTPFunc(ctx, destination, purpose, code, reg)
	}
	return nil, domain.ErrOTPNotFound
}

func (m *MockAuthService) ChangePassword(ctx context.Context, identityID uint, currentPassword, newPassword string) error {
	if m.ChangePasswordFunc != nil {
		return m.ChangePasswordFunc(ctx, identityID, currentPassword, newPassword)
	}
	return nil
}

func (m *MockAuthService) Profile(ctx context.Context, identityID uint) (*domain.Identity, error) {
	if m.ProfileFunc != nil {
		return m.ProfileFunc(ctx, identityID)
	}
	return nil, domain.ErrIdentityNotFound
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
