package auth

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/logeshwaran0404/Albany-VSM-sub001/domain"
)

func testTTLs() map[string]time.Duration {
	return map[string]time.Duration{
		domain.RoleAdmin:          30 * time.Minute,
		domain.RoleServiceAdvisor: 2 * time.Hour,
		domain.RoleCustomer:       24 * time.Hour,
	}
}

func testIdentity(role string) *domain.Identity {
	return &domain.Identity{
		ID:       42,
		Email:    "advisor@albanyvsm.example",
		Role:     role,
		IsActive: true,
	}
}

func TestJWTService_IssueAndValidate(t *testing.T) {
	svc := NewJWTService("test-secret", "albany-vsm", testTTLs(), 15*time.Minute)

	token, claims, err := svc.Issue(testIdentity(domain.RoleServiceAdvisor))
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if len(strings.Split(token, ".")) != 3 {
		t.Fatalf("expected compact three-segment token, got %q", token)
	}

	got, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if got.Subject != 42 {
		t.Errorf("subject = %d, want 42", got.Subject)
	}
	if got.Role != domain.RoleServiceAdvisor {
		t.Errorf("role = %q, want %q", got.Role, domain.RoleServiceAdvisor)
	}
	if got.ExpiresAt != claims.ExpiresAt || got.IssuedAt != claims.IssuedAt {
		t.Errorf("claims timestamps changed across validate: got %+v want %+v", got, claims)
	}
}

func TestJWTService_PerRoleTTL(t *testing.T) {
	svc := NewJWTService("test-secret", "albany-vsm", testTTLs(), 15*time.Minute)

	tests := []struct {
		role string
		want time.Duration
	}{
		{domain.RoleAdmin, 30 * time.Minute},
		{domain.RoleServiceAdvisor, 2 * time.Hour},
		{domain.RoleCustomer, 24 * time.Hour},
		{"unknown_role", 15 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			_, claims, err := svc.Issue(testIdentity(tt.role))
			if err != nil {
				t.Fatalf("Issue returned error: %v", err)
			}
			if got := claims.ExpiresAt - claims.IssuedAt; got != int64(tt.want.Seconds()) {
				t.Errorf("ttl = %ds, want %v", got, tt.want)
			}
		})
	}
}

func TestJWTService_ExpiryWindow(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ttl := 30 * time.Minute

	now := issuedAt
	svc := NewJWTService("test-secret", "albany-vsm", testTTLs(), 15*time.Minute).
		WithTimeFunc(func() time.Time { return now })

	token, _, err := svc.Issue(testIdentity(domain.RoleAdmin))
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	tests := []struct {
		name    string
		at      time.Time
		wantErr error
	}{
		{name: "valid at issuance", at: issuedAt, wantErr: nil},
		{name: "valid just before expiry", at: issuedAt.Add(ttl - time.Second), wantErr: nil},
		{name: "expired exactly at expiry", at: issuedAt.Add(ttl), wantErr: domain.ErrTokenExpired},
		{name: "expired after expiry", at: issuedAt.Add(ttl + time.Hour), wantErr: domain.ErrTokenExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now = tt.at
			_, err := svc.Validate(token)
			if err != tt.wantErr {
				t.Errorf("Validate at %v: err = %v, want %v", tt.at, err, tt.wantErr)
			}
		})
	}
}

func TestJWTService_TamperedClaimsRejected(t *testing.T) {
	svc := NewJWTService("test-secret", "albany-vsm", testTTLs(), 15*time.Minute)

	token, _, err := svc.Issue(testIdentity(domain.RoleCustomer))
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	// Swap the claims segment for one asserting the admin role. The
	// signature no longer covers the payload, so validation must fail.
	parts := strings.Split(token, ".")
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	forged := strings.Replace(string(payload), domain.RoleCustomer, domain.RoleAdmin, 1)
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(forged))
	tampered := strings.Join(parts, ".")

	if _, err := svc.Validate(tampered); err != domain.ErrTokenInvalidSignature {
		t.Errorf("Validate(tampered) err = %v, want %v", err, domain.ErrTokenInvalidSignature)
	}
}

func TestJWTService_WrongKeyRejected(t *testing.T) {
	issuer := NewJWTService("secret-a", "albany-vsm", testTTLs(), 15*time.Minute)
	validator := NewJWTService("secret-b", "albany-vsm", testTTLs(), 15*time.Minute)

	token, _, err := issuer.Issue(testIdentity(domain.RoleAdmin))
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := validator.Validate(token); err != domain.ErrTokenInvalidSignature {
		t.Errorf("Validate with wrong key err = %v, want %v", err, domain.ErrTokenInvalidSignature)
	}
}

func TestJWTService_MalformedTokens(t *testing.T) {
	svc := NewJWTService("test-secret", "albany-vsm", testTTLs(), 15*time.Minute)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "empty", token: "", wantErr: domain.ErrTokenMissing},
		{name: "garbage", token: "not-a-token", wantErr: domain.ErrTokenMalformed},
		{name: "two segments", token: "abc.def", wantErr: domain.ErrTokenMalformed},
		{name: "junk segments", token: "a.b.c", wantErr: domain.ErrTokenMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Validate(tt.token); err != tt.wantErr {
				t.Errorf("Validate(%q) err = %v, want %v", tt.token, err, tt.wantErr)
			}
		})
	}
}
