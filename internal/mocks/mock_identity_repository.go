package mocks

import (
	"context"

	"github.com/logeshwaran0404/Albany-VSM-sub001/domain"
)

// MockIdentityRepository implements domain.IdentityRepository for testing
type MockIdentityRepository struct {
	CreateFunc         func(ctx context.Context, identity *domain.Identity) error
	FindByEmailFunc    func(ctx context.Context, email string) (*domain.Identity, error)
	FindByPhoneFunc    func(ctx context.Context, phone string) (*domain.Identity, error)
	FindByIDFunc       func(ctx context.Context, id uint) (*domain.Identity, error)
	ExistsByEmailFunc  func(ctx context.Context, email string) (bool, error)
	UpdatePasswordFunc func(ctx context.Context, id uint, passwordHash string) error
}

// NewMockIdentityRepository creates a new MockIdentityRepository with default behaviors
func NewMockIdentityRepository() *MockIdentityRepository {
	return &MockIdentityRepository{}
}

func (m *MockIdentityRepository) Create(ctx context.Context, identity *domain.Identity) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, identity)
	}
	identity.ID = 1
	return nil
}

func (m *MockIdentityRepository) FindByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, domain.ErrIdentityNotFound
}

func (m *MockIdentityRepository) FindByPhone(ctx context.Context, phone string) (*domain.Identity, error) {
	if m.FindByPhoneFunc != nil {
		return m.FindByPhoneFunc(ctx, phone)
	}
	return nil, domain.ErrIdentityNotFound
}

func (m *MockIdentityRepository) FindByID(ctx context.Context, id uint) (*domain.Identity, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrIdentityNotFound
}

func (m *MockIdentityRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

func (m *MockIdentityRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, id, passwordHash)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.IdentityRepository = (*MockIdentityRepository)(nil)
