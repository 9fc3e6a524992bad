package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/logeshwaran0404/Albany-VSM-sub001/domain"
)

// AuthServiceImpl implements domain.AuthService. It composes the credential
// store, password hasher, token issuer and OTP manager into the login,
// registration and password-change use cases.
type AuthServiceImpl struct {
	identityRepo domain.IdentityRepository
	passwordSvc  domain.PasswordService
	tokenSvc     domain.TokenService
	otpSvc       domain.OTPService
}

// NewAuthService creates a new auth service
func NewAuthService(
	identityRepo domain.IdentityRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	otpSvc domain.OTPService,
) domain.AuthService {
	return &AuthServiceImpl{
		identityRepo: identityRepo,
		passwordSvc:  passwordSvc,
		tokenSvc:     tokenSvc,
		otpSvc:       otpSvc,
	}
}

// LoginWithPassword implements domain.AuthService. Lookup and verify
// failures both collapse to ErrInvalidCredentials so callers cannot probe
// which accounts exist; the audit log keeps the distinction.
func (s *AuthServiceImpl) LoginWithPassword(ctx context.Context, email, password, wantRole string) (*domain.AuthResult, error) {
	identity, err := s.identityRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrIdentityNotFound {
			log.Printf("LOGIN_DENIED: reason=unknown_email email=%s", email)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !identity.IsActive {
		log.Printf("LOGIN_DENIED: reason=inactive identity_id=%d", identity.ID)
		return nil, domain.ErrIdentityInactive
	}

	if identity.PasswordHash == "" || !s.passwordSvc.Verify(identity.PasswordHash, password) {
		log.Printf("LOGIN_DENIED: reason=bad_password identity_id=%d", identity.ID)
		return nil, domain.ErrInvalidCredentials
	}

	if identity.Role != wantRole {
		log.Printf("LOGIN_DENIED: reason=role_mismatch identity_id=%d role=%s want=%s", identity.ID, identity.Role, wantRole)
		return nil, domain.ErrRoleMismatch
	}

	return s.issueFor(identity)
}

// RequestOTP implements domain.AuthService. Login requires an existing
// active customer for the destination; registration requires the
// destination to be unclaimed.
func (s *AuthServiceImpl) RequestOTP(ctx context.Context, destination, purpose string) error {
	switch purpose {
	case domain.OTPPurposeLogin:
		identity, err := s.findByDestination(ctx, destination)
		if err != nil {
			return err
		}
		if identity.Role != domain.RoleCustomer {
			return domain.ErrRoleMismatch
		}
		if !identity.IsActive {
			return domain.ErrIdentityInactive
		}

	case domain.OTPPurposeRegistration:
		taken, err := s.destinationTaken(ctx, destination)
		if err != nil {
			return err
		}
		if taken {
			return domain.ErrIdentityExists
		}

	default:
		return domain.ErrOTPBadPurpose
	}

	_, err := s.otpSvc.Send(ctx, destination, purpose)
	return err
}

// VerifyOTP implements domain.AuthService. A verified login issues a token
// for the existing identity; a verified registration creates the customer
// identity first.
func (s *AuthServiceImpl) VerifyOTP(ctx context.Context, destination, purpose, code string, reg *domain.Registration) (*domain.AuthResult, error) {
	if err := s.otpSvc.Verify(ctx, destination, purpose, code); err != nil {
		return nil, err
	}

	switch purpose {
	case domain.OTPPurposeLogin:
		identity, err := s.findByDestination(ctx, destination)
		if err != nil {
			return nil, err
		}
		log.Printf("OTP_LOGIN: identity_id=%d destination=%s", identity.ID, destination)
		return s.issueFor(identity)

	case domain.OTPPurposeRegistration:
		identity := s.newCustomer(destination, reg)
		if err := s.identityRepo.Create(ctx, identity); err != nil {
			return nil, err
		}
		log.Printf("CUSTOMER_REGISTERED: identity_id=%d destination=%s", identity.ID, destination)
		return s.issueFor(identity)

	default:
		return nil, domain.ErrOTPBadPurpose
	}
}

// ChangePassword implements domain.AuthService
func (s *AuthServiceImpl) ChangePassword(ctx context.Context, identityID uint, currentPassword, newPassword string) error {
	identity, err := s.identityRepo.FindByID(ctx, identityID)
	if err != nil {
		return err
	}

	if identity.PasswordHash == "" || !s.passwordSvc.Verify(identity.PasswordHash, currentPassword) {
		log.Printf("PASSWORD_CHANGE_DENIED: reason=bad_current identity_id=%d", identity.ID)
		return domain.ErrInvalidCredentials
	}

	digest, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.identityRepo.UpdatePassword(ctx, identity.ID, digest); err != nil {
		return err
	}
	log.Printf("PASSWORD_CHANGED: identity_id=%d", identity.ID)
	return nil
}

// Profile implements domain.AuthService
func (s *AuthServiceImpl) Profile(ctx context.Context, identityID uint) (*domain.Identity, error) {
	return s.identityRepo.FindByID(ctx, identityID)
}

// issueFor signs a token for the identity with its current role. Role is
// captured at issuance; staleness is bounded by the token lifetime.
func (s *AuthServiceImpl) issueFor(identity *domain.Identity) (*domain.AuthResult, error) {
	token, claims, err := s.tokenSvc.Issue(identity)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &domain.AuthResult{
		Identity:  identity,
		Token:     token,
		ExpiresIn: claims.ExpiresAt - claims.IssuedAt,
	}, nil
}

func (s *AuthServiceImpl) findByDestination(ctx context.Context, destination string) (*domain.Identity, error) {
	if strings.Contains(destination, "@") {
		return s.identityRepo.FindByEmail(ctx, destination)
	}
	return s.identityRepo.FindByPhone(ctx, destination)
}

func (s *AuthServiceImpl) destinationTaken(ctx context.Context, destination string) (bool, error) {
	if strings.Contains(destination, "@") {
		return s.identityRepo.ExistsByEmail(ctx, destination)
	}
	_, err := s.identityRepo.FindByPhone(ctx, destination)
	if err == domain.ErrIdentityNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// newCustomer builds the identity created by a verified registration.
// OTP-only customers carry no password digest.
func (s *AuthServiceImpl) newCustomer(destination string, reg *domain.Registration) *domain.Identity {
	identity := &domain.Identity{
		Role:      domain.RoleCustomer,
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if strings.Contains(destination, "@") {
		identity.Email = destination
	} else {
		identity.Phone = destination
	}
	if reg != nil {
		identity.FirstName = reg.FirstName
		identity.LastName = reg.LastName
		if identity.Email == "" {
			identity.Email = reg.Email
		}
		if identity.Phone == "" {
			identity.Phone = reg.Phone
		}
	}
	return identity
}
