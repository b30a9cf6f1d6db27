// Package auth provides authentication and role authorization for taskgate.
//
// # Token Lifecycle
//
// Identity tokens are HS256-signed JWTs carrying {userId, role, iat, exp}
// with a fixed one-hour lifetime:
//
//	verifier, err := auth.NewJWTVerifier(secret)
//	token, err := verifier.Issue(userID, auth.RoleMember)
//	claims, err := verifier.Verify(token)
//
// The signing secret is injected once at construction and never read from
// the environment inside business logic, so tests run with a fixed secret.
// Secrets shorter than 32 bytes are rejected at construction.
//
// # Request Pipeline
//
// Every protected endpoint composes two gates in a fixed order:
//
//	auth.Middleware(verifier)        // 401 on missing/invalid/expired token
//	auth.RequireRoles(roles...)      // 403 unless identity.Role is allowed
//
// Middleware is the single trust boundary. It verifies the bearer token and
// attaches an Identity to the request context; downstream stages read the
// Identity with FromContext and never touch the raw token again.
//
// # Roles
//
// Role is a closed enumeration (admin, project_manager, member, viewer).
// ParseRole rejects unknown strings, so a role spelling that drifts from the
// canonical form is an explicit error instead of a check that quietly never
// matches.
//
// Resource-specific admission rules (ownership) live in internal/policy;
// this package is deliberately resource-agnostic.
package auth
