// ABOUTME: Role enumeration and per-operation allowed-role sets
// ABOUTME: Roles are a closed type so a misspelled role cannot compile

package auth

import "fmt"

// Role is a coarse-grained permission label attached to a user.
type Role string

const (
	RoleAdmin          Role = "admin"
	RoleProjectManager Role = "project_manager"
	RoleMember         Role = "member"
	RoleViewer         Role = "viewer"
)

// ValidRoles lists all roles a user can hold.
var ValidRoles = []Role{
	RoleAdmin,
	RoleProjectManager,
	RoleMember,
	RoleViewer,
}

// ParseRole converts a raw string into a Role. Unknown strings are rejected
// rather than passed through, so a role that drifted from the canonical
// spelling fails loudly instead of silently denying everything.
func ParseRole(s string) (Role, error) {
	for _, r := range ValidRoles {
		if s == string(r) {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// In returns true if the role is a member of the given set.
func (r Role) In(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}
