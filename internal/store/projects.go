// ABOUTME: Project entity store methods backed by SQLite
// ABOUTME: Includes the membership set that drives project and task visibility

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// CreateProject inserts a new project and fills in its generated id.
func (s *SQLiteStore) CreateProject(ctx context.Context, project *Project) error {
	now := time.Now().UTC()
	if project.CreatedAt.IsZero() {
		project.CreatedAt = now
	}
	project.UpdatedAt = now

	query := `
		INSERT INTO projects (name, description, owner_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`

	res, err := s.db.ExecContext(ctx, query,
		project.Name,
		project.Description,
		project.OwnerID,
		project.CreatedAt.Format(time.RFC3339),
		project.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("creating project: %w", err)
	}

	project.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading project id: %w", err)
	}

	s.logger.Debug("created project", "project_id", project.ID, "owner_id", project.OwnerID)
	return nil
}

// GetProject retrieves a project by id with its member set loaded.
// Returns ErrNotFound if it doesn't exist.
func (s *SQLiteStore) GetProject(ctx context.Context, id int64) (*Project, error) {
	query := `
		SELECT id, name, description, owner_id, created_at, updated_at
		FROM projects WHERE id = ?
	`

	project, err := scanProject(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}

	project.Members, err = s.listMembers(ctx, project.ID)
	if err != nil {
		return nil, err
	}

	return project, nil
}

// UpdateProject updates a project's name and description. Returns ErrNotFound
// if the project doesn't exist. Ownership is never reassigned here.
func (s *SQLiteStore) UpdateProject(ctx context.Context, project *Project) error {
	project.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE projects SET name = ?, description = ?, updated_at = ?
		WHERE id = ?
	`

	res, err := s.db.ExecContext(ctx, query,
		project.Name,
		project.Description,
		project.UpdatedAt.Format(time.RFC3339),
		project.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	s.logger.Debug("updated project", "project_id", project.ID)
	return nil
}

// DeleteProject deletes a project by id. Tasks and comments under it cascade.
// Returns ErrNotFound if the project doesn't exist.
func (s *SQLiteStore) DeleteProject(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	s.logger.Debug("deleted project", "project_id", id)
	return nil
}

// ListProjectsForUser returns projects where the user is the owner or a
// member, ordered by id. Other tenants' projects are never included.
func (s *SQLiteStore) ListProjectsForUser(ctx context.Context, userID int64) ([]*Project, error) {
	query := `
		SELECT DISTINCT p.id, p.name, p.description, p.owner_id, p.created_at, p.updated_at
		FROM projects p
		LEFT JOIN project_members pm ON pm.project_id = p.id
		WHERE p.owner_id = ? OR pm.user_id = ?
		ORDER BY p.id
	`

	rows, err := s.db.QueryContext(ctx, query, userID, userID)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	projects := []*Project{}
	for rows.Next() {
		project, err := scanProjectRow(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}

	for _, p := range projects {
		p.Members, err = s.listMembers(ctx, p.ID)
		if err != nil {
			return nil, err
		}
	}

	return projects, nil
}

// AddProjectMember adds a user to a project's member set. Idempotent - adding
// an existing member succeeds silently. Returns ErrNotFound if the project
// doesn't exist.
func (s *SQLiteStore) AddProjectMember(ctx context.Context, projectID, userID int64) error {
	if _, err := s.GetProject(ctx, projectID); err != nil {
		return err
	}

	query := `
		INSERT OR IGNORE INTO project_members (project_id, user_id, created_at)
		VALUES (?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query, projectID, userID, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("adding project member: %w", err)
	}

	s.logger.Debug("added project member", "project_id", projectID, "user_id", userID)
	return nil
}

// RemoveProjectMember removes a user from a project's member set. Idempotent -
// removing a non-member succeeds silently.
func (s *SQLiteStore) RemoveProjectMember(ctx context.Context, projectID, userID int64) error {
	query := `DELETE FROM project_members WHERE project_id = ? AND user_id = ?`

	_, err := s.db.ExecContext(ctx, query, projectID, userID)
	if err != nil {
		return fmt.Errorf("removing project member: %w", err)
	}

	s.logger.Debug("removed project member", "project_id", projectID, "user_id", userID)
	return nil
}

// listMembers returns the member user ids for a project, ordered by user id.
func (s *SQLiteStore) listMembers(ctx context.Context, projectID int64) ([]int64, error) {
	query := `SELECT user_id FROM project_members WHERE project_id = ? ORDER BY user_id`

	rows, err := s.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing project members: %w", err)
	}
	defer rows.Close()

	members := []int64{}
	for rows.Next() {
		var userID int64
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("scanning project member: %w", err)
		}
		members = append(members, userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating project members: %w", err)
	}

	return members, nil
}

// rowScanner abstracts sql.Row and sql.Rows for shared scan helpers.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row *sql.Row) (*Project, error) {
	project, err := scanProjectFields(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return project, err
}

func scanProjectRow(rows *sql.Rows) (*Project, error) {
	return scanProjectFields(rows)
}

func scanProjectFields(row rowScanner) (*Project, error) {
	var project Project
	var createdAtStr, updatedAtStr string

	err := row.Scan(&project.ID, &project.Name, &project.Description, &project.OwnerID, &createdAtStr, &updatedAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}

	if project.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if project.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}

	return &project, nil
}
