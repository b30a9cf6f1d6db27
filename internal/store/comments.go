// ABOUTME: Comment entity store methods backed by SQLite
// ABOUTME: Authorship is fixed at creation; updates only ever touch content

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// CreateComment inserts a new comment and fills in its generated id.
func (s *SQLiteStore) CreateComment(ctx context.Context, comment *Comment) error {
	now := time.Now().UTC()
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = now
	}
	comment.UpdatedAt = now

	query := `
		INSERT INTO comments (task_id, project_id, user_id, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	res, err := s.db.ExecContext(ctx, query,
		comment.TaskID,
		comment.ProjectID,
		comment.UserID,
		comment.Content,
		comment.CreatedAt.Format(time.RFC3339),
		comment.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("creating comment: %w", err)
	}

	comment.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading comment id: %w", err)
	}

	s.logger.Debug("created comment", "comment_id", comment.ID, "task_id", comment.TaskID, "user_id", comment.UserID)
	return nil
}

// GetComment retrieves a comment by id. Returns ErrNotFound if it doesn't exist.
func (s *SQLiteStore) GetComment(ctx context.Context, id int64) (*Comment, error) {
	query := `
		SELECT id, task_id, project_id, user_id, content, created_at, updated_at
		FROM comments WHERE id = ?
	`

	comment, err := scanCommentFields(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return comment, err
}

// UpdateComment updates a comment's content. The author column is
// deliberately not in the UPDATE; authorship is immutable. Returns
// ErrNotFound if the comment doesn't exist.
func (s *SQLiteStore) UpdateComment(ctx context.Context, comment *Comment) error {
	comment.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE comments SET content = ?, updated_at = ?
		WHERE id = ?
	`

	res, err := s.db.ExecContext(ctx, query,
		comment.Content,
		comment.UpdatedAt.Format(time.RFC3339),
		comment.ID,
	)
	if err != nil {
		return fmt.Errorf("updating comment: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	s.logger.Debug("updated comment", "comment_id", comment.ID)
	return nil
}

// DeleteComment deletes a comment by id. Returns ErrNotFound if the comment
// doesn't exist.
func (s *SQLiteStore) DeleteComment(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting comment: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	s.logger.Debug("deleted comment", "comment_id", id)
	return nil
}

// ListCommentsByTask returns all comments on a task, oldest first.
func (s *SQLiteStore) ListCommentsByTask(ctx context.Context, taskID int64) ([]*Comment, error) {
	query := `
		SELECT id, task_id, project_id, user_id, content, created_at, updated_at
		FROM comments WHERE task_id = ?
		ORDER BY created_at, id
	`

	rows, err := s.db.QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	defer rows.Close()

	comments := []*Comment{}
	for rows.Next() {
		comment, err := scanCommentFields(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating comments: %w", err)
	}

	return comments, nil
}

func scanCommentFields(row rowScanner) (*Comment, error) {
	var comment Comment
	var createdAtStr, updatedAtStr string

	err := row.Scan(&comment.ID, &comment.TaskID, &comment.ProjectID, &comment.UserID,
		&comment.Content, &createdAtStr, &updatedAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning comment: %w", err)
	}

	if comment.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if comment.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}

	return &comment, nil
}
