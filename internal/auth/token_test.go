// ABOUTME: Unit tests for JWT token issue and verification
// ABOUTME: Covers round-trips, invalid tokens, expiry, and tamper detection

package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// testSecret is a 32-byte secret that meets MinSecretLength requirement.
var testSecret = []byte("token-test-secret-32-bytes-long!")

func TestNewJWTVerifier_SecretValidation(t *testing.T) {
	tests := []struct {
		name    string
		secret  []byte
		wantErr bool
	}{
		{name: "empty secret", secret: nil, wantErr: true},
		{name: "short secret", secret: []byte("too-short"), wantErr: true},
		{name: "exactly 32 bytes", secret: testSecret, wantErr: false},
		{name: "longer than 32 bytes", secret: append([]byte{}, append(testSecret, 'x')...), wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewJWTVerifier(tt.secret)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewJWTVerifier() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestJWTVerifier_RoundTrip(t *testing.T) {
	verifier, err := NewJWTVerifier(testSecret)
	if err != nil {
		t.Fatalf("NewJWTVerifier() error = %v", err)
	}

	tests := []struct {
		userID int64
		role   Role
	}{
		{userID: 1, role: RoleAdmin},
		{userID: 42, role: RoleProjectManager},
		{userID: 7, role: RoleMember},
		{userID: 99, role: RoleViewer},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			token, err := verifier.Issue(tt.userID, tt.role)
			if err != nil {
				t.Fatalf("Issue() error = %v", err)
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				t.Fatalf("Verify() error = %v", err)
			}

			if claims.UserID != tt.userID {
				t.Errorf("Verify() UserID = %d, want %d", claims.UserID, tt.userID)
			}
			if claims.Role != tt.role {
				t.Errorf("Verify() Role = %q, want %q", claims.Role, tt.role)
			}

			// exp = iat + 1h, seconds granularity
			if got := claims.ExpiresAt.Sub(claims.IssuedAt); got != TokenTTL {
				t.Errorf("expiry window = %v, want %v", got, TokenTTL)
			}
		})
	}
}

func TestJWTVerifier_InvalidToken(t *testing.T) {
	verifier, _ := NewJWTVerifier(testSecret)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "garbage token", token: "not-a-jwt-token"},
		{name: "malformed JWT", token: "header.payload.signature"},
		{
			name: "wrong secret",
			token: func() string {
				other, _ := NewJWTVerifier([]byte("a-different-secret-32-bytes-long"))
				token, _ := other.Issue(1, RoleMember)
				return token
			}(),
		},
		{
			name: "unknown role claim",
			token: func() string {
				// Signed correctly but carries a role outside the enum.
				claims := tokenClaims{
					RegisteredClaims: jwt.RegisteredClaims{
						IssuedAt:  jwt.NewNumericDate(time.Now()),
						ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
					},
					UserID: 1,
					Role:   "project manager",
				}
				token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
				return token
			}(),
		},
		{
			name: "missing userId claim",
			token: func() string {
				claims := tokenClaims{
					RegisteredClaims: jwt.RegisteredClaims{
						IssuedAt:  jwt.NewNumericDate(time.Now()),
						ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
					},
					Role: "member",
				}
				token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
				return token
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := verifier.Verify(tt.token)
			if err == nil {
				t.Error("Verify() should have returned an error")
			}
			if errors.Is(err, ErrExpiredToken) {
				t.Errorf("Verify() error = %v, should not classify as expired", err)
			}
		})
	}
}

func TestJWTVerifier_ExpiredToken(t *testing.T) {
	verifier, _ := NewJWTVerifier(testSecret)

	// Correctly signed token that expired an hour ago.
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
		UserID: 1,
		Role:   "member",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}

	_, err = verifier.Verify(token)
	if err == nil {
		t.Fatal("Verify() should have returned an error for expired token")
	}
	if !errors.Is(err, ErrExpiredToken) {
		t.Errorf("Verify() error = %v, want ErrExpiredToken", err)
	}
}

func TestJWTVerifier_TamperedToken(t *testing.T) {
	verifier, _ := NewJWTVerifier(testSecret)

	token, err := verifier.Issue(123, RoleMember)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	// Altering a single byte of the token must break verification: payload
	// changes invalidate the signature, signature changes stop matching the
	// payload, and separator changes break parsing. The final byte is skipped
	// because base64 trailing bits there are not significant.
	for i := 0; i < len(token)-1; i++ {
		replacement := byte('A')
		if token[i] == 'A' {
			replacement = 'B'
		}
		tampered := token[:i] + string(replacement) + token[i+1:]
		if tampered == token {
			continue
		}
		if _, err := verifier.Verify(tampered); err == nil {
			t.Errorf("Verify() accepted token tampered at byte %d", i)
		}
	}

	// Sanity check: the untampered token still verifies.
	if _, err := verifier.Verify(token); err != nil {
		t.Errorf("Verify() error = %v on untampered token", err)
	}

	// Truncated token must also fail.
	if _, err := verifier.Verify(strings.TrimSuffix(token, token[len(token)-4:])); err == nil {
		t.Error("Verify() accepted truncated token")
	}
}
