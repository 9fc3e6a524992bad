package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/logeshwaran0404/Albany-VSM-sub001/domain"
)

// IdentityRepositoryImpl implements domain.IdentityRepository using GORM.
type IdentityRepositoryImpl struct {
	db *gorm.DB
}

// DBIdentity represents the database model for Identity (with GORM tags).
type DBIdentity struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;size:255"`
	Phone        string `gorm:"index;size:32"`
	FirstName    string `gorm:"size:128"`
	LastName     string `gorm:"size:128"`
	PasswordHash string `gorm:"column:password"`
	Role         string `gorm:"index;size:64"`
	IsActive     bool   `gorm:"index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBIdentity) TableName() string {
	return "identities"
}

// NewIdentityRepository creates a new identity repository
func NewIdentityRepository(db *gorm.DB) domain.IdentityRepository {
	return &IdentityRepositoryImpl{db: db}
}

// Create implements domain.IdentityRepository. Emails are stored lowercased
// so the unique index enforces case-insensitive uniqueness.
func (r *IdentityRepositoryImpl) Create(ctx context.Context, identity *domain.Identity) error {
	dbIdentity := r.domainToDB(identity)
	dbIdentity.Email = strings.ToLower(dbIdentity.Email)
	if err := r.db.WithContext(ctx).Create(dbIdentity).Error; err != nil {
		return fmt.Errorf("%w: create identity: %v", domain.ErrUpstream, err)
	}
	identity.ID = dbIdentity.ID
	return nil
}

// FindByEmail implements domain.IdentityRepository. Lookup is
// case-insensitive.
func (r *IdentityRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	var dbIdentity DBIdentity
	err := r.db.WithContext(ctx).Where("LOWER(email) = ?", strings.ToLower(email)).First(&dbIdentity).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("%w: find by email: %v", domain.ErrUpstream, err)
	}
	return r.dbToDomain(&dbIdentity), nil
}

// FindByPhone implements domain.IdentityRepository
func (r *IdentityRepositoryImpl) FindByPhone(ctx context.Context, phone string) (*domain.Identity, error) {
	var dbIdentity DBIdentity
	err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&dbIdentity).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("%w: find by phone: %v", domain.ErrUpstream, err)
	}
	return r.dbToDomain(&dbIdentity), nil
}

// FindByID implements domain.IdentityRepository
func (r *IdentityRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Identity, error) {
	var dbIdentity DBIdentity
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbIdentity).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("%w: find by id: %v", domain.ErrUpstream, err)
	}
	return r.dbToDomain(&dbIdentity), nil
}

// ExistsByEmail implements domain.IdentityRepository
func (r *IdentityRepositoryImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&DBIdentity{}).
		Where("LOWER(email) = ?", strings.ToLower(email)).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("%w: exists by email: %v", domain.ErrUpstream, err)
	}
	return count > 0, nil
}

// UpdatePassword implements domain.IdentityRepository
func (r *IdentityRepositoryImpl) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	res := r.db.WithContext(ctx).Model(&DBIdentity{}).Where("id = ?", id).Update("password", passwordHash)
	if res.Error != nil {
		return fmt.Errorf("%w: update password: %v", domain.ErrUpstream, res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrIdentityNotFound
	}
	return nil
}

// domainToDB converts a domain identity to the database model
func (r *IdentityRepositoryImpl) domainToDB(identity *domain.Identity) *DBIdentity {
	return &DBIdentity{
		ID:           identity.ID,
		Email:        identity.Email,
		Phone:        identity.Phone,
		FirstName:    identity.FirstName,
		LastName:     identity.LastName,
		PasswordHash: identity.PasswordHash,
		Role:         identity.Role,
		IsActive:     identity.IsActive,
	}
}

// dbToDomain converts a database model to the domain identity
func (r *IdentityRepositoryImpl) dbToDomain(dbIdentity *DBIdentity) *domain.Identity {
	return &domain.Identity{
		ID:           dbIdentity.ID,
		Email:        dbIdentity.Email,
		Phone:        dbIdentity.Phone,
		FirstName:    dbIdentity.FirstName,
		LastName:     dbIdentity.LastName,
		PasswordHash: dbIdentity.PasswordHash,
		Role:         dbIdentity.Role,
		IsActive:     dbIdentity.IsActive,
		CreatedAt:    dbIdentity.CreatedAt,
		UpdatedAt:    dbIdentity.UpdatedAt,
	}
}
