package mocks

import (
	"time"

	"github.com/logeshwaran0404/Albany-VSM-sub001/domain"
)

// MockTokenService implements domain.TokenService for testing
type MockTokenService struct {
	IssueFunc    func(identity *domain.Identity) (string, *domain.TokenClaims, error)
	ValidateFunc func(token string) (*domain.TokenClaims, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

func (m *MockTokenService) Issue(identity *domain.Identity) (string, *domain.TokenClaims, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(identity)
	}
	now := time.Now()
	return "mock-token", &domain.TokenClaims{
		Subject:   identity.ID,
		Role:      identity.Role,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(15 * time.Minute).Unix(),
	}, nil
}

func (m *MockTokenService) Validate(token string) (*domain.TokenClaims, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(token)
	}
	return nil, domain.ErrTokenMalformed
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
