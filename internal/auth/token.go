// ABOUTME: JWT token issue and verification for authenticating API requests
// ABOUTME: Uses HS256 signing with a secret injected at construction

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token errors
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
	ErrMissingClaim = errors.New("missing required claim")
)

// TokenTTL is the lifetime of issued tokens. Expiry granularity is seconds
// (JWT NumericDate).
const TokenTTL = time.Hour

// MinSecretLength is the minimum signing secret size in bytes (256 bits).
const MinSecretLength = 32

// Claims is the identity payload carried inside a verified token. It exists
// only between Verify and the request that consumed it; nothing persists it.
type Claims struct {
	UserID    int64
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// tokenClaims is the wire shape of the JWT payload.
type tokenClaims struct {
	jwt.RegisteredClaims
	UserID int64  `json:"userId"`
	Role   string `json:"role"`
}

// TokenVerifier verifies a raw token and recovers its claims.
type TokenVerifier interface {
	Verify(tokenString string) (*Claims, error)
}

// TokenIssuer issues a signed token for a user id and role.
type TokenIssuer interface {
	Issue(userID int64, role Role) (string, error)
}

// JWTVerifier implements TokenIssuer and TokenVerifier using HS256 JWTs.
type JWTVerifier struct {
	secret []byte
}

// NewJWTVerifier creates a verifier with the given secret. The secret must be
// at least MinSecretLength bytes; a missing or short secret is a
// configuration error, not something to limp along with.
func NewJWTVerifier(secret []byte) (*JWTVerifier, error) {
	if len(secret) == 0 {
		return nil, errors.New("jwt secret not configured")
	}
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d bytes, got %d", MinSecretLength, len(secret))
	}
	return &JWTVerifier{secret: secret}, nil
}

// Issue creates a signed token for the given user with claims
// {userId, role, iat: now, exp: now + TokenTTL}.
func (v *JWTVerifier) Issue(userID int64, role Role) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
		UserID: userID,
		Role:   string(role),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}

// Verify checks the token signature and expiry and recovers the claims.
// Returns ErrExpiredToken for an otherwise-valid but stale token and
// ErrInvalidToken for everything else.
func (v *JWTVerifier) Verify(tokenString string) (*Claims, error) {
	parsed := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, parsed, func(token *jwt.Token) (interface{}, error) {
		// Only accept HMAC; the caller must not get to pick the algorithm.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if parsed.UserID == 0 {
		return nil, fmt.Errorf("%w: userId", ErrMissingClaim)
	}
	role, err := ParseRole(parsed.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: role", ErrMissingClaim)
	}
	if parsed.ExpiresAt == nil || parsed.IssuedAt == nil {
		return nil, fmt.Errorf("%w: exp", ErrMissingClaim)
	}

	return &Claims{
		UserID:    parsed.UserID,
		Role:      role,
		IssuedAt:  parsed.IssuedAt.Time,
		ExpiresAt: parsed.ExpiresAt.Time,
	}, nil
}
