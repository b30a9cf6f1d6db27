// ABOUTME: Ownership policy: resource-specific admission rules beyond role checks
// ABOUTME: Evaluated only after the role gate admits and the resource is fetched

package policy

import (
	"errors"

	"github.com/taskgate/taskgate/internal/auth"
	"github.com/taskgate/taskgate/internal/store"
)

// ErrDenied is returned when the identity's relationship to the resource does
// not admit the action. Surfaced to clients identically to a role denial.
var ErrDenied = errors.New("access denied")

// CommentUpdate admits only the comment's author. There is deliberately no
// admin override here; update is stricter than delete.
func CommentUpdate(id *auth.Identity, comment *store.Comment) error {
	if comment.UserID == id.UserID {
		return nil
	}
	return ErrDenied
}

// CommentDelete admits the comment's author or an admin.
func CommentDelete(id *auth.Identity, comment *store.Comment) error {
	if comment.UserID == id.UserID || id.Role == auth.RoleAdmin {
		return nil
	}
	return ErrDenied
}

// ProjectVisible reports whether the identity may see the project: the owner
// or any member. The owner is implicitly a member and need not appear in the
// member set.
func ProjectVisible(id *auth.Identity, project *store.Project) bool {
	if project.OwnerID == id.UserID {
		return true
	}
	for _, member := range project.Members {
		if member == id.UserID {
			return true
		}
	}
	return false
}

// TaskVisible reports whether the identity may see a task, which follows the
// visibility of the task's project.
func TaskVisible(id *auth.Identity, project *store.Project) bool {
	return ProjectVisible(id, project)
}
