// ABOUTME: HTTP middleware for JWT authentication and role authorization
// ABOUTME: Extracts the bearer token, verifies it, and gates by allowed roles

package auth

import (
	"net/http"
	"strings"
)

// extractBearerToken extracts a bearer token from the Authorization header.
// Returns the token and an error message (empty if successful).
func extractBearerToken(authHeader string) (string, string) {
	if authHeader == "" {
		return "", "missing authorization header"
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", "invalid authorization header format"
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" {
		return "", "empty token"
	}
	return token, ""
}

// Middleware creates an HTTP middleware that authenticates requests. It
// verifies the bearer token and attaches the resulting Identity to the
// request context. Any verification failure is a 401, never a crash.
func Middleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, errMsg := extractBearerToken(r.Header.Get("Authorization"))
			if errMsg != "" {
				unauthorized(w, errMsg)
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				unauthorized(w, "invalid token")
				return
			}

			id := &Identity{UserID: claims.UserID, Role: claims.Role}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// RequireRoles creates an HTTP middleware that admits the request only if the
// authenticated identity's role is in the allowed set. Must be used after
// Middleware. The check is resource-agnostic and runs before any resource
// load, so unauthorized callers never cause a store lookup.
func RequireRoles(allowed ...Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := FromContext(r.Context())
			if id == nil {
				unauthorized(w, "not authenticated")
				return
			}

			if !id.Role.In(allowed...) {
				forbidden(w, "access denied")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	http.Error(w, `{"message":"`+msg+`"}`, http.StatusUnauthorized)
}

func forbidden(w http.ResponseWriter, msg string) {
	http.Error(w, `{"message":"`+msg+`"}`, http.StatusForbidden)
}
