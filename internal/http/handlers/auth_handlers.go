package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/logeshwaran0404/Albany-VSM-sub001/domain"
	"github.com/logeshwaran0404/Albany-VSM-sub001/internal/http/middleware"
)

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	authSvc domain.AuthService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService) *AuthHandlers {
	return &AuthHandlers{authSvc: authSvc}
}

// LoginRequest represents a password login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// OTPSendRequest represents a code request for a destination
type OTPSendRequest struct {
	Destination string `json:"destination" binding:"required"`
	Purpose     string `json:"purpose" binding:"required"`
}

// OTPVerifyRequest represents OTP verification. The profile fields are only
// consulted for the registration purpose.
type OTPVerifyRequest struct {
	Destination string `json:"destination" binding:"required"`
	Purpose     string `json:"purpose" binding:"required"`
	Code        string `json:"code" binding:"required"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

// ChangePasswordRequest represents an advisor password change
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// AdminLogin handles administrator password login
func (h *AuthHandlers) AdminLogin(c *gin.Context) {
	h.login(c, domain.RoleAdmin)
}

// AdvisorLogin handles service advisor password login
func (h *AuthHandlers) AdvisorLogin(c *gin.Context) {
	h.login(c, domain.RoleServiceAdvisor)
}

func (h *AuthHandlers) login(c *gin.Context, wantRole string) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.LoginWithPassword(c.Request.Context(), req.Email, req.Password, wantRole)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			// One message for unknown email and wrong password.
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		case errors.Is(err, domain.ErrIdentityInactive):
			c.JSON(http.StatusForbidden, gin.H{"error": "Account is inactive"})
		case errors.Is(err, domain.ErrRoleMismatch):
			c.JSON(http.StatusForbidden, gin.H{"error": "Account is not permitted to use this login"})
		case errors.Is(err, domain.ErrUpstream):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service temporarily unavailable"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		}
		return
	}

	c.JSON(http.StatusOK, tokenResponse(result))
}

// SendOTP handles code generation and dispatch. The response never carries
// the code.
func (h *AuthHandlers) SendOTP(c *gin.Context) {
	var req OTPSendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.authSvc.RequestOTP(c.Request.Context(), req.Destination, req.Purpose)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOTPBadPurpose):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown purpose"})
		case errors.Is(err, domain.ErrIdentityNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "No account found for this destination"})
		case errors.Is(err, domain.ErrIdentityExists):
			c.JSON(http.StatusConflict, gin.H{"error": "An account already exists for this destination"})
		case errors.Is(err, domain.ErrRoleMismatch):
			c.JSON(http.StatusForbidden, gin.H{"error": "OTP login is for customer accounts"})
		case errors.Is(err, domain.ErrIdentityInactive):
			c.JSON(http.StatusForbidden, gin.H{"error": "Account is inactive"})
		case errors.Is(err, domain.ErrOTPResendLimit):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Please wait before requesting another code"})
		case errors.Is(err, domain.ErrUpstream):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Could not send verification code"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not send verification code"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Verification code sent"})
}

// VerifyOTP handles code verification. Success returns a session token;
// rejections are typed (expired vs wrong code) since no enumeration risk
// exists for OTP.
func (h *AuthHandlers) VerifyOTP(c *gin.Context) {
	var req OTPVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reg := &domain.Registration{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	}

	result, err := h.authSvc.VerifyOTP(c.Request.Context(), req.Destination, req.Purpose, req.Code, reg)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOTPNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "No pending code for this destination"})
		case errors.Is(err, domain.ErrOTPExpired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Code has expired, request a new one"})
		case errors.Is(err, domain.ErrOTPMaxAttempts):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many attempts, request a new code"})
		case errors.Is(err, domain.ErrOTPMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Incorrect code"})
		case errors.Is(err, domain.ErrOTPBadPurpose):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown purpose"})
		case errors.Is(err, domain.ErrIdentityNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "No account found for this destination"})
		case errors.Is(err, domain.ErrUpstream):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service temporarily unavailable"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Verification failed"})
		}
		return
	}

	c.JSON(http.StatusOK, tokenResponse(result))
}

// ChangePassword handles an authenticated advisor password change
func (h *AuthHandlers) ChangePassword(c *gin.Context) {
	subjectID, _, ok := middleware.Subject(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization required"})
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.authSvc.ChangePassword(c.Request.Context(), subjectID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Current password is incorrect"})
		case errors.Is(err, domain.ErrIdentityNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		case errors.Is(err, domain.ErrUpstream):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service temporarily unavailable"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Password change failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed"})
}

// Me returns the authenticated subject's profile
func (h *AuthHandlers) Me(c *gin.Context) {
	subjectID, _, ok := middleware.Subject(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization required"})
		return
	}

	identity, err := h.authSvc.Profile(c.Request.Context(), subjectID)
	if err != nil {
		if errors.Is(err, domain.ErrIdentityNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        identity.ID,
		"email":     identity.Email,
		"phone":     identity.Phone,
		"firstName": identity.FirstName,
		"lastName":  identity.LastName,
		"role":      identity.Role,
		"isActive":  identity.IsActive,
	})
}

func tokenResponse(result *domain.AuthResult) gin.H {
	return gin.H{
		"token":     result.Token,
		"role":      result.Identity.Role,
		"firstName": result.Identity.FirstName,
		"lastName":  result.Identity.LastName,
		"email":     result.Identity.Email,
		"expiresIn": result.ExpiresIn,
	}
}
