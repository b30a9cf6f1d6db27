// ABOUTME: JSON response and request-decoding helpers for the API
// ABOUTME: Maps store and policy errors to HTTP statuses in one place

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/taskgate/taskgate/internal/policy"
	"github.com/taskgate/taskgate/internal/store"
)

// maxBodyBytes caps request bodies. Nothing in the API legitimately needs
// more than this.
const maxBodyBytes = 1 << 20

// errorResponse is the JSON shape for every non-2xx response.
type errorResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// badRequest reports a validation failure to the client.
func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Message: msg})
}

// respondError maps an error from the store or policy layer to an HTTP
// status. Internal failures are logged with their cause and reported to the
// client as a generic 500; the cause never reaches the response body.
func (a *API) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Message: "not found"})
	case errors.Is(err, policy.ErrDenied):
		a.metrics.RecordAuthFailure("forbidden")
		writeJSON(w, http.StatusForbidden, errorResponse{Message: "access denied"})
	case errors.Is(err, store.ErrDuplicateEmail):
		// The signup surface reports duplicates as a plain client error.
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "user already exists"})
	default:
		a.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "internal server error"})
	}
}

// decodeJSON decodes the request body into v, rejecting unknown fields and
// oversized bodies.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decoding request body: %w", err)
	}
	return nil
}

// JSON projections. Password hashes and other store-internal fields never
// appear here.

type userJSON struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
}

type projectJSON struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	OwnerID     int64   `json:"ownerId"`
	Members     []int64 `json:"members"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

type taskJSON struct {
	ID          int64   `json:"id"`
	ProjectID   int64   `json:"projectId"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	AssigneeID  *int64  `json:"assigneeId"`
	DueDate     *string `json:"dueDate"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

type commentJSON struct {
	ID        int64  `json:"id"`
	TaskID    int64  `json:"taskId"`
	ProjectID int64  `json:"projectId"`
	UserID    int64  `json:"userId"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toUserJSON(u *store.User) userJSON {
	return userJSON{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

func toProjectJSON(p *store.Project) projectJSON {
	members := p.Members
	if members == nil {
		members = []int64{}
	}
	return projectJSON{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		OwnerID:     p.OwnerID,
		Members:     members,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
	}
}

func toTaskJSON(t *store.Task) taskJSON {
	var due *string
	if t.DueDate != nil {
		s := t.DueDate.Format(time.RFC3339)
		due = &s
	}
	return taskJSON{
		ID:          t.ID,
		ProjectID:   t.ProjectID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		AssigneeID:  t.AssigneeID,
		DueDate:     due,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.Format(time.RFC3339),
	}
}

func toCommentJSON(c *store.Comment) commentJSON {
	return commentJSON{
		ID:        c.ID,
		TaskID:    c.TaskID,
		ProjectID: c.ProjectID,
		UserID:    c.UserID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.Format(time.RFC3339),
	}
}
