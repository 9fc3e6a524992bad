package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/logeshwaran0404/Albany-VSM-sub001/domain"
)

// JWTServiceImpl implements domain.TokenService. Tokens are HS256-signed and
// self-contained: the validator needs only the secret key and a clock.
type JWTServiceImpl struct {
	secretKey  []byte
	issuer     string
	ttls       map[string]time.Duration
	defaultTTL time.Duration
	now        func() time.Time
}

// NewJWTService creates a token service. ttls maps role to session lifetime;
// roles without an entry get defaultTTL.
func NewJWTService(secretKey, issuer string, ttls map[string]time.Duration, defaultTTL time.Duration) *JWTServiceImpl {
	return &JWTServiceImpl{
		secretKey:  []byte(secretKey),
		issuer:     issuer,
		ttls:       ttls,
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

// WithTimeFunc overrides the clock. Test hook.
func (j *JWTServiceImpl) WithTimeFunc(now func() time.Time) *JWTServiceImpl {
	j.now = now
	return j
}

// generateJTI creates a unique JWT ID
func (j *JWTServiceImpl) generateJTI() string {
	bytes := make([]byte, 16)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// TTLFor returns the session lifetime issued for the given role.
func (j *JWTServiceImpl) TTLFor(role string) time.Duration {
	if ttl, ok := j.ttls[role]; ok && ttl > 0 {
		return ttl
	}
	return j.defaultTTL
}

// Issue implements domain.TokenService. The signature covers every claim,
// so tampering with subject or role is detectable at validation.
func (j *JWTServiceImpl) Issue(identity *domain.Identity) (string, *domain.TokenClaims, error) {
	now := j.now()
	exp := now.Add(j.TTLFor(identity.Role))

	claims := jwt.MapClaims{
		"sub":  identity.ID,
		"role": identity.Role,
		"iss":  j.issuer,
		"iat":  now.Unix(),
		"exp":  exp.Unix(),
		"jti":  j.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", nil, err
	}

	return signed, &domain.TokenClaims{
		Subject:   identity.ID,
		Role:      identity.Role,
		IssuedAt:  now.Unix(),
		ExpiresAt: exp.Unix(),
	}, nil
}

// Validate implements domain.TokenService. Pure function of the token, the
// secret key and the clock; no I/O, safe on every request.
func (j *JWTServiceImpl) Validate(tokenString string) (*domain.TokenClaims, error) {
	if tokenString == "" {
		return nil, domain.ErrTokenMissing
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenMalformed
		}
		return j.secretKey, nil
	}, jwt.WithTimeFunc(func() time.Time { return j.now() }))

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, domain.ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, domain.ErrTokenInvalidSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, domain.ErrTokenExpired
		default:
			return nil, domain.ErrTokenMalformed
		}
	}
	if !token.Valid {
		return nil, domain.ErrTokenInvalidSignature
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}
	role, ok := claims["role"].(string)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}
	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	// Expiry is exclusive: a token is invalid at exactly exp, which is
	// stricter than the parser's check.
	if !j.now().Before(time.Unix(int64(exp), 0)) {
		return nil, domain.ErrTokenExpired
	}

	return &domain.TokenClaims{
		Subject:   uint(sub),
		Role:      role,
		IssuedAt:  int64(iat),
		ExpiresAt: int64(exp),
	}, nil
}
