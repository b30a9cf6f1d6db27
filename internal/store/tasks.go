// ABOUTME: Task entity store methods backed by SQLite
// ABOUTME: Tasks belong to exactly one project; visibility follows the project

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// CreateTask inserts a new task and fills in its generated id. New tasks are
// always PENDING; priority defaults to MEDIUM when unset.
func (s *SQLiteStore) CreateTask(ctx context.Context, task *Task) error {
	now := time.Now().UTC()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	task.UpdatedAt = now
	task.Status = TaskStatusPending
	if task.Priority == "" {
		task.Priority = TaskPriorityMedium
	}

	query := `
		INSERT INTO tasks (project_id, title, description, status, priority, assignee_id, due_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	res, err := s.db.ExecContext(ctx, query,
		task.ProjectID,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.AssigneeID,
		formatNullableTime(task.DueDate),
		task.CreatedAt.Format(time.RFC3339),
		task.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("creating task: %w", err)
	}

	task.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading task id: %w", err)
	}

	s.logger.Debug("created task", "task_id", task.ID, "project_id", task.ProjectID)
	return nil
}

// GetTask retrieves a task by id. Returns ErrNotFound if it doesn't exist.
func (s *SQLiteStore) GetTask(ctx context.Context, id int64) (*Task, error) {
	query := `
		SELECT id, project_id, title, description, status, priority, assignee_id, due_date, created_at, updated_at
		FROM tasks WHERE id = ?
	`

	task, err := scanTaskFields(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return task, err
}

// UpdateTask updates a task's mutable fields. Returns ErrNotFound if the task
// doesn't exist. The owning project is never changed.
func (s *SQLiteStore) UpdateTask(ctx context.Context, task *Task) error {
	task.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE tasks SET title = ?, description = ?, status = ?, priority = ?, assignee_id = ?, due_date = ?, updated_at = ?
		WHERE id = ?
	`

	res, err := s.db.ExecContext(ctx, query,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.AssigneeID,
		formatNullableTime(task.DueDate),
		task.UpdatedAt.Format(time.RFC3339),
		task.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	s.logger.Debug("updated task", "task_id", task.ID)
	return nil
}

// DeleteTask deletes a task by id. Comments under it cascade. Returns
// ErrNotFound if the task doesn't exist.
func (s *SQLiteStore) DeleteTask(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	s.logger.Debug("deleted task", "task_id", id)
	return nil
}

// ListTasksForUser returns tasks in projects where the user is the owner or a
// member, ordered by id.
func (s *SQLiteStore) ListTasksForUser(ctx context.Context, userID int64) ([]*Task, error) {
	query := `
		SELECT DISTINCT t.id, t.project_id, t.title, t.description, t.status, t.priority, t.assignee_id, t.due_date, t.created_at, t.updated_at
		FROM tasks t
		JOIN projects p ON p.id = t.project_id
		LEFT JOIN project_members pm ON pm.project_id = p.id
		WHERE p.owner_id = ? OR pm.user_id = ?
		ORDER BY t.id
	`

	rows, err := s.db.QueryContext(ctx, query, userID, userID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	tasks := []*Task{}
	for rows.Next() {
		task, err := scanTaskFields(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}

	return tasks, nil
}

func scanTaskFields(row rowScanner) (*Task, error) {
	var task Task
	var assigneeID sql.NullInt64
	var dueDateStr sql.NullString
	var createdAtStr, updatedAtStr string

	err := row.Scan(&task.ID, &task.ProjectID, &task.Title, &task.Description,
		&task.Status, &task.Priority, &assigneeID, &dueDateStr, &createdAtStr, &updatedAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}

	if assigneeID.Valid {
		task.AssigneeID = &assigneeID.Int64
	}
	if dueDateStr.Valid {
		due, err := time.Parse(time.RFC3339, dueDateStr.String)
		if err != nil {
			return nil, fmt.Errorf("parsing due_date: %w", err)
		}
		task.DueDate = &due
	}
	if task.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if task.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}

	return &task, nil
}

// formatNullableTime formats an optional time as RFC3339, or nil for SQL NULL.
func formatNullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}
