// ABOUTME: Comment handlers where the ownership policy does the gating
// ABOUTME: Update is author-only; delete admits the author or an admin

package api

import (
	"net/http"
	"strconv"

	"github.com/taskgate/taskgate/internal/auth"
	"github.com/taskgate/taskgate/internal/policy"
	"github.com/taskgate/taskgate/internal/store"
)

type createCommentRequest struct {
	TaskID  int64  `json:"taskId"`
	Content string `json:"content"`
}

type updateCommentRequest struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
}

type deleteCommentRequest struct {
	ID int64 `json:"id"`
}

func (a *API) handleCommentCreate(w http.ResponseWriter, r *http.Request) {
	id := auth.MustFromContext(r.Context())

	var req createCommentRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.TaskID == 0 {
		badRequest(w, "taskId is required")
		return
	}
	if req.Content == "" {
		badRequest(w, "content is required")
		return
	}

	task, err := a.store.GetTask(r.Context(), req.TaskID)
	if err != nil {
		a.respondError(w, r, err)
		return
	}

	comment := &store.Comment{
		TaskID:    task.ID,
		ProjectID: task.ProjectID,
		UserID:    id.UserID,
		Content:   req.Content,
	}
	if err := a.store.CreateComment(r.Context(), comment); err != nil {
		a.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Comment created successfully",
		"comment": toCommentJSON(comment),
	})
}

func (a *API) handleCommentUpdate(w http.ResponseWriter, r *http.Request) {
	id := auth.MustFromContext(r.Context())

	var req updateCommentRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.ID == 0 {
		badRequest(w, "id is required")
		return
	}
	if req.Content == "" {
		badRequest(w, "content is required")
		return
	}

	// Fetch fresh, then check ownership against the stored author. The
	// request body is never trusted for authorship.
	comment, err := a.store.GetComment(r.Context(), req.ID)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	if err := policy.CommentUpdate(id, comment); err != nil {
		a.respondError(w, r, err)
		return
	}

	comment.Content = req.Content
	if err := a.store.UpdateComment(r.Context(), comment); err != nil {
		a.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Comment updated successfully",
		"comment": toCommentJSON(comment),
	})
}

func (a *API) handleCommentDelete(w http.ResponseWriter, r *http.Request) {
	id := auth.MustFromContext(r.Context())

	var req deleteCommentRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.ID == 0 {
		badRequest(w, "id is required")
		return
	}

	comment, err := a.store.GetComment(r.Context(), req.ID)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	if err := policy.CommentDelete(id, comment); err != nil {
		a.respondError(w, r, err)
		return
	}

	if err := a.store.DeleteComment(r.Context(), comment.ID); err != nil {
		a.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "Comment deleted successfully"})
}

func (a *API) handleCommentList(w http.ResponseWriter, r *http.Request) {
	taskID, err := strconv.ParseInt(r.PathValue("taskId"), 10, 64)
	if err != nil {
		badRequest(w, "invalid task id")
		return
	}

	if _, err := a.store.GetTask(r.Context(), taskID); err != nil {
		a.respondError(w, r, err)
		return
	}

	comments, err := a.store.ListCommentsByTask(r.Context(), taskID)
	if err != nil {
		a.respondError(w, r, err)
		return
	}

	out := make([]commentJSON, 0, len(comments))
	for _, c := range comments {
		out = append(out, toCommentJSON(c))
	}
	writeJSON(w, http.StatusOK, map[string]any{"comments": out})
}
