// ABOUTME: Signup and login handlers issuing access tokens
// ABOUTME: Login is rate limited and never distinguishes unknown email from bad password

package api

import (
	"errors"
	"net/http"

	"github.com/taskgate/taskgate/internal/auth"
	"github.com/taskgate/taskgate/internal/store"
)

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Message string    `json:"message"`
	Token   string    `json:"token"`
	User    *userJSON `json:"user,omitempty"`
}

func (a *API) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		badRequest(w, "name, email, and password are required")
		return
	}

	role, err := auth.ParseRole(req.Role)
	if err != nil {
		badRequest(w, "invalid role")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		a.respondError(w, r, err)
		return
	}

	user := &store.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := a.store.CreateUser(r.Context(), user); err != nil {
		a.respondError(w, r, err)
		return
	}

	token, err := a.issuer.Issue(user.ID, user.Role)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.metrics.RecordTokenIssued()

	uj := toUserJSON(user)
	writeJSON(w, http.StatusCreated, tokenResponse{
		Message: "User created successfully",
		Token:   token,
		User:    &uj,
	})
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	if a.loginLimiter != nil && !a.loginLimiter.Allow() {
		a.metrics.RecordAuthFailure("rate_limited")
		writeJSON(w, http.StatusTooManyRequests, errorResponse{Message: "too many login attempts"})
		return
	}

	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		badRequest(w, "email and password are required")
		return
	}

	user, err := a.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			a.loginFailed(w)
			return
		}
		a.respondError(w, r, err)
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		a.loginFailed(w)
		return
	}

	token, err := a.issuer.Issue(user.ID, user.Role)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.metrics.RecordTokenIssued()

	writeJSON(w, http.StatusOK, tokenResponse{
		Message: "Login successful",
		Token:   token,
	})
}

// loginFailed reports a credential failure. Unknown email and wrong password
// produce the identical response so the endpoint cannot be used to probe for
// registered addresses.
func (a *API) loginFailed(w http.ResponseWriter) {
	a.metrics.RecordAuthFailure("bad_credentials")
	writeJSON(w, http.StatusUnauthorized, errorResponse{Message: "invalid credentials"})
}
