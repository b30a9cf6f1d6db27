// ABOUTME: HTTP API surface wiring handlers, auth gates, and middleware
// ABOUTME: Every protected route composes authenticate, role gate, then handler

package api

import (
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/taskgate/taskgate/internal/auth"
	"github.com/taskgate/taskgate/internal/metrics"
	"github.com/taskgate/taskgate/internal/store"
)

// Options holds the tunables the API does not own.
type Options struct {
	// LoginPerMinute caps login attempts across the instance. Zero disables
	// the limiter.
	LoginPerMinute int
	LoginBurst     int
}

// API holds the handler dependencies and registers the HTTP routes.
type API struct {
	store        store.Store
	issuer       auth.TokenIssuer
	verifier     auth.TokenVerifier
	logger       *slog.Logger
	metrics      metrics.Recorder
	loginLimiter *rate.Limiter
}

// New creates an API backed by the given store and token service.
func New(st store.Store, tokens *auth.JWTVerifier, rec metrics.Recorder, opts Options) *API {
	a := &API{
		store:    st,
		issuer:   tokens,
		verifier: tokens,
		logger:   slog.Default().With("component", "api"),
		metrics:  rec,
	}

	if opts.LoginPerMinute > 0 {
		burst := opts.LoginBurst
		if burst <= 0 {
			burst = opts.LoginPerMinute
		}
		a.loginLimiter = rate.NewLimiter(rate.Limit(float64(opts.LoginPerMinute)/60.0), burst)
	}

	return a
}

// Handler returns the fully wired HTTP handler: routes plus request logging
// and metrics middleware.
func (a *API) Handler() http.Handler {
	mux := http.NewServeMux()
	a.RegisterRoutes(mux)
	return a.requestLogger(mux)
}

// RegisterRoutes registers all API routes on the given mux. The role sets on
// each route are the complete authorization surface; handlers only add
// per-resource ownership checks on top.
func (a *API) RegisterRoutes(mux *http.ServeMux) {
	authed := auth.Middleware(a.verifier)
	pmOnly := auth.RequireRoles(auth.RoleProjectManager)
	pmOrMember := auth.RequireRoles(auth.RoleProjectManager, auth.RoleMember)
	anyRole := auth.RequireRoles(auth.RoleProjectManager, auth.RoleMember, auth.RoleViewer)

	// Public routes
	a.route(mux, "POST /signup", http.HandlerFunc(a.handleSignup))
	a.route(mux, "POST /login", http.HandlerFunc(a.handleLogin))

	// Projects
	a.route(mux, "POST /projects", authed(pmOnly(http.HandlerFunc(a.handleProjectCreate))))
	a.route(mux, "PUT /projects", authed(pmOnly(http.HandlerFunc(a.handleProjectUpdate))))
	a.route(mux, "DELETE /projects", authed(pmOnly(http.HandlerFunc(a.handleProjectDelete))))
	a.route(mux, "GET /projects", authed(anyRole(http.HandlerFunc(a.handleProjectList))))

	// Project membership
	a.route(mux, "POST /projects/{id}/members", authed(pmOnly(http.HandlerFunc(a.handleMemberAdd))))
	a.route(mux, "DELETE /projects/{id}/members/{userId}", authed(pmOnly(http.HandlerFunc(a.handleMemberRemove))))

	// Tasks
	a.route(mux, "POST /tasks", authed(pmOrMember(http.HandlerFunc(a.handleTaskCreate))))
	a.route(mux, "PUT /tasks", authed(pmOrMember(http.HandlerFunc(a.handleTaskUpdate))))
	a.route(mux, "DELETE /tasks", authed(pmOnly(http.HandlerFunc(a.handleTaskDelete))))
	a.route(mux, "GET /tasks", authed(anyRole(http.HandlerFunc(a.handleTaskList))))

	// Comments: any authenticated user passes the role gate; the ownership
	// policy decides update and delete per resource.
	a.route(mux, "POST /comments", authed(http.HandlerFunc(a.handleCommentCreate)))
	a.route(mux, "PUT /comments", authed(http.HandlerFunc(a.handleCommentUpdate)))
	a.route(mux, "DELETE /comments", authed(http.HandlerFunc(a.handleCommentDelete)))
	a.route(mux, "GET /comments/{taskId}", authed(http.HandlerFunc(a.handleCommentList)))

	// Liveness
	a.route(mux, "GET /healthz", http.HandlerFunc(a.handleHealthz))
}

// route registers a handler wrapped with metrics instrumentation for its
// pattern. The pattern is captured here so labels stay low-cardinality.
func (a *API) route(mux *http.ServeMux, pattern string, h http.Handler) {
	mux.Handle(pattern, a.instrument(pattern, h))
}

func (a *API) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
