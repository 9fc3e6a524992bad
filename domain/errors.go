package domain

import "errors"

// Authentication errors
var (
	ErrIdentityNotFound   = errors.New("identity not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrIdentityExists     = errors.New("identity already exists")
	ErrIdentityInactive   = errors.New("identity is inactive")
	ErrRoleMismatch       = errors.New("role not permitted for this endpoint")
)

// OTP errors
var (
	ErrOTPNotFound    = errors.New("otp challenge not found")
	ErrOTPExpired     = errors.New("otp challenge has expired")
	ErrOTPMismatch    = errors.New("otp code does not match")
	ErrOTPMaxAttempts = errors.New("maximum otp attempts exceeded")
	ErrOTPResendLimit = errors.New("otp resend limit exceeded")
	ErrOTPBadPurpose  = errors.New("unknown otp purpose")
)

// Token errors
var (
	ErrTokenMissing          = errors.New("token missing")
	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenInvalidSignature = errors.New("token signature invalid")
	ErrTokenExpired          = errors.New("token expired")
)

// Authorization errors
var (
	ErrForbidden = errors.New("access denied for role")
)

// Upstream errors. Wrapped around credential-store and notification
// failures; retryable, surfaced as 5xx at the boundary.
var (
	ErrUpstream = errors.New("upstream dependency failure")
)
