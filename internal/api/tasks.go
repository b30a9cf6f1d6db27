// ABOUTME: Task CRUD handlers with status and priority validation
// ABOUTME: Tasks are always created PENDING; listing applies the membership filter

package api

import (
	"net/http"
	"time"

	"github.com/taskgate/taskgate/internal/auth"
	"github.com/taskgate/taskgate/internal/store"
)

type createTaskRequest struct {
	ProjectID   int64   `json:"projectId"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Priority    string  `json:"priority"`
	AssigneeID  *int64  `json:"assigneeId"`
	DueDate     *string `json:"dueDate"`
}

type updateTaskRequest struct {
	ID          int64   `json:"id"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	AssigneeID  *int64  `json:"assigneeId"`
	DueDate     *string `json:"dueDate"`
}

type deleteTaskRequest struct {
	ID int64 `json:"id"`
}

func validTaskStatus(s string) bool {
	switch s {
	case store.TaskStatusPending, store.TaskStatusInProgress, store.TaskStatusCompleted:
		return true
	}
	return false
}

func validTaskPriority(p string) bool {
	switch p {
	case store.TaskPriorityLow, store.TaskPriorityMedium, store.TaskPriorityHigh:
		return true
	}
	return false
}

func parseDueDate(s string) (*time.Time, bool) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, false
	}
	return &t, true
}

func (a *API) handleTaskCreate(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.ProjectID == 0 {
		badRequest(w, "projectId is required")
		return
	}
	if req.Title == "" {
		badRequest(w, "title is required")
		return
	}
	if req.Priority != "" && !validTaskPriority(req.Priority) {
		badRequest(w, "invalid priority")
		return
	}

	// The task must land in a real project; the 404 here also covers
	// projects deleted between the client's read and this write.
	if _, err := a.store.GetProject(r.Context(), req.ProjectID); err != nil {
		a.respondError(w, r, err)
		return
	}

	task := &store.Task{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		AssigneeID:  req.AssigneeID,
	}
	if req.DueDate != nil {
		due, ok := parseDueDate(*req.DueDate)
		if !ok {
			badRequest(w, "invalid dueDate, want RFC3339")
			return
		}
		task.DueDate = due
	}

	if err := a.store.CreateTask(r.Context(), task); err != nil {
		a.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Task created successfully",
		"task":    toTaskJSON(task),
	})
}

func (a *API) handleTaskList(w http.ResponseWriter, r *http.Request) {
	id := auth.MustFromContext(r.Context())

	tasks, err := a.store.ListTasksForUser(r.Context(), id.UserID)
	if err != nil {
		a.respondError(w, r, err)
		return
	}

	out := make([]taskJSON, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskJSON(t))
	}
	writeJSON(w, http.StatusOK, map[string]any{"tasks": out})
}

func (a *API) handleTaskUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.ID == 0 {
		badRequest(w, "id is required")
		return
	}

	task, err := a.store.GetTask(r.Context(), req.ID)
	if err != nil {
		a.respondError(w, r, err)
		return
	}

	if req.Title != nil {
		if *req.Title == "" {
			badRequest(w, "title cannot be empty")
			return
		}
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		if !validTaskStatus(*req.Status) {
			badRequest(w, "invalid status")
			return
		}
		task.Status = *req.Status
	}
	if req.Priority != nil {
		if !validTaskPriority(*req.Priority) {
			badRequest(w, "invalid priority")
			return
		}
		task.Priority = *req.Priority
	}
	if req.AssigneeID != nil {
		task.AssigneeID = req.AssigneeID
	}
	if req.DueDate != nil {
		due, ok := parseDueDate(*req.DueDate)
		if !ok {
			badRequest(w, "invalid dueDate, want RFC3339")
			return
		}
		task.DueDate = due
	}

	if err := a.store.UpdateTask(r.Context(), task); err != nil {
		a.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Task updated successfully",
		"task":    toTaskJSON(task),
	})
}

func (a *API) handleTaskDelete(w http.ResponseWriter, r *http.Request) {
	var req deleteTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.ID == 0 {
		badRequest(w, "id is required")
		return
	}

	if err := a.store.DeleteTask(r.Context(), req.ID); err != nil {
		a.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "Task deleted successfully"})
}
