package domain

import "context"

// IdentityRepository defines credential-store access. It is the only
// component permitted to touch persisted identity state.
type IdentityRepository interface {
	Create(ctx context.Context, identity *Identity) error
	FindByEmail(ctx context.Context, email string) (*Identity, error)
	FindByPhone(ctx context.Context, phone string) (*Identity, error)
	FindByID(ctx context.Context, id uint) (*Identity, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
}

// PasswordService defines one-way secret hashing.
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService issues and validates session tokens. Validation is a pure
// function of (token, key, time) and safe for concurrent use.
type TokenService interface {
	Issue(identity *Identity) (string, *TokenClaims, error)
	Validate(token string) (*TokenClaims, error)
}

// OTPService manages one-time-code challenges keyed by (destination, purpose).
type OTPService interface {
	Send(ctx context.Context, destination, purpose string) (*OTPChallenge, error)
	Verify(ctx context.Context, destination, purpose, code string) error
}

// NotificationService delivers codes to a destination out of band.
type NotificationService interface {
	SendSMS(to, message string) error
	SendEmail(to, subject, body string) error
}

// AuthService composes the authentication use cases exposed at the boundary.
type AuthService interface {
	LoginWithPassword(ctx context.Context, email, password, wantRole string) (*AuthResult, error)
	RequestOTP(ctx context.Context, destination, purpose string) error
	VerifyOTP(ctx context.Context, destination, purpose, code string, reg *Registration) (*AuthResult, error)
	ChangePassword(ctx context.Context, identityID uint, currentPassword, newPassword string) error
	Profile(ctx context.Context, identityID uint) (*Identity, error)
}
