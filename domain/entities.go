package domain

import "time"

// Roles known to the system. Role comparison is exact membership everywhere;
// admin does not implicitly inherit advisor-only routes.
const (
	RoleAdmin          = "admin"
	RoleServiceAdvisor = "service_advisor"
	RoleCustomer       = "customer"
)

// OTP purposes. Login and registration are distinct exchanges with distinct
// side effects on verification.
const (
	OTPPurposeLogin        = "login"
	OTPPurposeRegistration = "registration"
)

// Identity represents a principal in the service center.
// PasswordHash is empty for OTP-only customers.
type Identity struct {
	ID           uint
	Email        string
	Phone        string
	FirstName    string
	LastName     string
	PasswordHash string `gorm:"column:password"`
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TokenClaims represents the claim set carried by a session token.
type TokenClaims struct {
	Subject   uint   `json:"sub"`
	Role      string `json:"role"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// AuthResult represents a successful authentication outcome.
type AuthResult struct {
	Identity  *Identity
	Token     string
	ExpiresIn int64
}

// OTPChallenge represents a pending one-time-code exchange. At most one
// unconsumed challenge exists per (destination, purpose) pair.
type OTPChallenge struct {
	ID          string    `json:"id"`
	Destination string    `json:"destination"`
	Purpose     string    `json:"purpose"`
	Code        string    `json:"code"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
	Attempts    int       `json:"attempts"`
	Consumed    bool      `json:"consumed"`
}

// Expired reports whether the challenge is past its expiry at t.
func (c *OTPChallenge) Expired(t time.Time) bool {
	return !t.Before(c.ExpiresAt)
}

// AccessRule maps a route pattern to the set of roles permitted to reach it.
// Public rules allow anonymous access. The rule list is immutable after
// startup; evaluation is first-listed-match-wins.
type AccessRule struct {
	Pattern string   `yaml:"path"`
	Methods []string `yaml:"methods"`
	Roles   []string `yaml:"roles"`
	Public  bool     `yaml:"public"`
}

// AllowsRole reports whether role is in the rule's allowed set.
func (r *AccessRule) AllowsRole(role string) bool {
	for _, allowed := range r.Roles {
		if allowed == role {
			return true
		}
	}
	return false
}

// Registration carries the profile fields supplied alongside a verified
// registration OTP.
type Registration struct {
	Email     string
	Phone     string
	FirstName string
	LastName  string
}
