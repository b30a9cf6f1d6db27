// ABOUTME: Project CRUD and membership handlers
// ABOUTME: Mutations are gated by role only; reads apply the membership filter

package api

import (
	"net/http"
	"strconv"

	"github.com/taskgate/taskgate/internal/auth"
	"github.com/taskgate/taskgate/internal/store"
)

type createProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type updateProjectRequest struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type deleteProjectRequest struct {
	ID int64 `json:"id"`
}

type addMemberRequest struct {
	UserID int64 `json:"userId"`
}

func (a *API) handleProjectCreate(w http.ResponseWriter, r *http.Request) {
	id := auth.MustFromContext(r.Context())

	var req createProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Name == "" {
		badRequest(w, "name is required")
		return
	}

	project := &store.Project{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     id.UserID,
	}
	if err := a.store.CreateProject(r.Context(), project); err != nil {
		a.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Project created successfully",
		"project": toProjectJSON(project),
	})
}

func (a *API) handleProjectList(w http.ResponseWriter, r *http.Request) {
	id := auth.MustFromContext(r.Context())

	projects, err := a.store.ListProjectsForUser(r.Context(), id.UserID)
	if err != nil {
		a.respondError(w, r, err)
		return
	}

	out := make([]projectJSON, 0, len(projects))
	for _, p := range projects {
		out = append(out, toProjectJSON(p))
	}
	writeJSON(w, http.StatusOK, map[string]any{"projects": out})
}

// handleProjectUpdate lets any project manager modify any project. The gate
// is role-based only; there is no per-project ownership refinement on this
// route (see DESIGN.md).
func (a *API) handleProjectUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.ID == 0 {
		badRequest(w, "id is required")
		return
	}
	if req.Name == "" {
		badRequest(w, "name is required")
		return
	}

	project, err := a.store.GetProject(r.Context(), req.ID)
	if err != nil {
		a.respondError(w, r, err)
		return
	}

	project.Name = req.Name
	project.Description = req.Description
	if err := a.store.UpdateProject(r.Context(), project); err != nil {
		a.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Project updated successfully",
		"project": toProjectJSON(project),
	})
}

func (a *API) handleProjectDelete(w http.ResponseWriter, r *http.Request) {
	var req deleteProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.ID == 0 {
		badRequest(w, "id is required")
		return
	}

	if err := a.store.DeleteProject(r.Context(), req.ID); err != nil {
		a.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "Project deleted successfully"})
}

func (a *API) handleMemberAdd(w http.ResponseWriter, r *http.Request) {
	projectID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		badRequest(w, "invalid project id")
		return
	}

	var req addMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.UserID == 0 {
		badRequest(w, "userId is required")
		return
	}

	// The member must be a real account; a dangling membership row would
	// never grant anyone visibility.
	if _, err := a.store.GetUser(r.Context(), req.UserID); err != nil {
		a.respondError(w, r, err)
		return
	}

	if err := a.store.AddProjectMember(r.Context(), projectID, req.UserID); err != nil {
		a.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "Member added successfully"})
}

func (a *API) handleMemberRemove(w http.ResponseWriter, r *http.Request) {
	projectID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		badRequest(w, "invalid project id")
		return
	}
	userID, err := strconv.ParseInt(r.PathValue("userId"), 10, 64)
	if err != nil {
		badRequest(w, "invalid user id")
		return
	}

	if err := a.store.RemoveProjectMember(r.Context(), projectID, userID); err != nil {
		a.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "Member removed successfully"})
}
