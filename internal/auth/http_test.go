// ABOUTME: Tests for HTTP authentication middleware and the role gate
// ABOUTME: Covers token extraction, verification failures, and role admission

package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// httpTestSecret is a 32-byte secret that meets MinSecretLength requirement.
var httpTestSecret = []byte("http-middleware-test-secret-32b!")

func TestMiddleware_ValidToken(t *testing.T) {
	verifier, err := NewJWTVerifier(httpTestSecret)
	if err != nil {
		t.Fatalf("NewJWTVerifier() error = %v", err)
	}

	token, _ := verifier.Issue(123, RoleMember)

	var gotIdentity *Identity
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIdentity = FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	Middleware(verifier)(handler).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if gotIdentity == nil {
		t.Fatal("expected Identity in context")
	}
	if gotIdentity.UserID != 123 {
		t.Errorf("expected user id 123, got %d", gotIdentity.UserID)
	}
	if gotIdentity.Role != RoleMember {
		t.Errorf("expected role member, got %q", gotIdentity.Role)
	}
}

func TestMiddleware_Rejections(t *testing.T) {
	verifier, _ := NewJWTVerifier(httpTestSecret)

	otherVerifier, _ := NewJWTVerifier([]byte("a-different-secret-32-bytes-long"))
	forgedToken, _ := otherVerifier.Issue(123, RoleMember)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "no bearer prefix", header: "Token abc123"},
		{name: "empty token", header: "Bearer "},
		{name: "garbage token", header: "Bearer not-a-jwt"},
		{name: "forged token", header: "Bearer " + forgedToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Error("handler should not be called")
			})

			req := httptest.NewRequest(http.MethodGet, "/projects", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			Middleware(verifier)(handler).ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected status 401, got %d", rec.Code)
			}
		})
	}
}

func TestRequireRoles(t *testing.T) {
	allowed := []Role{RoleProjectManager, RoleMember}

	tests := []struct {
		name     string
		identity *Identity
		want     int
	}{
		{name: "allowed role", identity: &Identity{UserID: 1, Role: RoleMember}, want: http.StatusOK},
		{name: "other allowed role", identity: &Identity{UserID: 2, Role: RoleProjectManager}, want: http.StatusOK},
		{name: "role outside set", identity: &Identity{UserID: 3, Role: RoleViewer}, want: http.StatusForbidden},
		{name: "admin not implicitly allowed", identity: &Identity{UserID: 4, Role: RoleAdmin}, want: http.StatusForbidden},
		{name: "unrecognized role", identity: &Identity{UserID: 5, Role: Role("superuser")}, want: http.StatusForbidden},
		{name: "no identity", identity: nil, want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodDelete, "/projects", nil)
			if tt.identity != nil {
				req = req.WithContext(WithIdentity(req.Context(), tt.identity))
			}
			rec := httptest.NewRecorder()

			RequireRoles(allowed...)(handler).ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("expected status %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantToken string
		wantError bool
	}{
		{name: "valid", header: "Bearer abc123", wantToken: "abc123"},
		{name: "missing", header: "", wantError: true},
		{name: "wrong scheme", header: "Basic abc123", wantError: true},
		{name: "empty token", header: "Bearer ", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, errMsg := extractBearerToken(tt.header)
			if tt.wantError {
				if errMsg == "" {
					t.Error("expected an error message")
				}
				return
			}
			if errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if token != tt.wantToken {
				t.Errorf("token = %q, want %q", token, tt.wantToken)
			}
		})
	}
}
