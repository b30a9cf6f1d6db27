// ABOUTME: Comment store tests covering CRUD and per-task listing
// ABOUTME: Updates never touch the author column

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskgate/taskgate/internal/auth"
)

// setupCommentFixtures creates a user, project, and task to hang comments on.
func setupCommentFixtures(t *testing.T, s *SQLiteStore) (*User, *Project, *Task) {
	t.Helper()
	ctx := context.Background()

	user := createTestUser(t, s, "author@example.com", auth.RoleMember)
	project := createTestProject(t, s, user.ID, "P1")
	task := &Task{ProjectID: project.ID, Title: "t"}
	require.NoError(t, s.CreateTask(ctx, task))

	return user, project, task
}

func TestStore_CreateComment(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	user, project, task := setupCommentFixtures(t, s)

	comment := &Comment{TaskID: task.ID, ProjectID: project.ID, UserID: user.ID, Content: "first!"}
	require.NoError(t, s.CreateComment(ctx, comment))
	assert.NotZero(t, comment.ID)

	retrieved, err := s.GetComment(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "first!", retrieved.Content)
	assert.Equal(t, user.ID, retrieved.UserID)
	assert.Equal(t, task.ID, retrieved.TaskID)
	assert.Equal(t, project.ID, retrieved.ProjectID)
}

func TestStore_UpdateComment_PreservesAuthor(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	user, project, task := setupCommentFixtures(t, s)

	comment := &Comment{TaskID: task.ID, ProjectID: project.ID, UserID: user.ID, Content: "before"}
	require.NoError(t, s.CreateComment(ctx, comment))

	// Even a caller that tampers with UserID in the struct cannot reassign
	// authorship; the UPDATE only touches content.
	comment.Content = "after"
	comment.UserID = 9999
	require.NoError(t, s.UpdateComment(ctx, comment))

	retrieved, err := s.GetComment(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", retrieved.Content)
	assert.Equal(t, user.ID, retrieved.UserID)

	err = s.UpdateComment(ctx, &Comment{ID: 9999, Content: "ghost"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_DeleteComment(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	user, project, task := setupCommentFixtures(t, s)

	comment := &Comment{TaskID: task.ID, ProjectID: project.ID, UserID: user.ID, Content: "doomed"}
	require.NoError(t, s.CreateComment(ctx, comment))

	require.NoError(t, s.DeleteComment(ctx, comment.ID))
	_, err := s.GetComment(ctx, comment.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.DeleteComment(ctx, comment.ID), ErrNotFound)
}

func TestStore_ListCommentsByTask(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	user, project, task := setupCommentFixtures(t, s)
	otherTask := &Task{ProjectID: project.ID, Title: "other"}
	require.NoError(t, s.CreateTask(ctx, otherTask))

	for _, content := range []string{"one", "two"} {
		require.NoError(t, s.CreateComment(ctx, &Comment{
			TaskID: task.ID, ProjectID: project.ID, UserID: user.ID, Content: content,
		}))
	}
	require.NoError(t, s.CreateComment(ctx, &Comment{
		TaskID: otherTask.ID, ProjectID: project.ID, UserID: user.ID, Content: "elsewhere",
	}))

	comments, err := s.ListCommentsByTask(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "one", comments[0].Content)
	assert.Equal(t, "two", comments[1].Content)

	comments, err = s.ListCommentsByTask(ctx, 9999)
	require.NoError(t, err)
	assert.Empty(t, comments)
}
