// ABOUTME: Shared test helper and user store tests against real SQLite
// ABOUTME: Uses a temp-dir database per test for isolation

package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskgate/taskgate/internal/auth"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)

	t.Cleanup(func() {
		store.Close()
	})

	return store
}

// createTestUser inserts a user with the given email and role.
func createTestUser(t *testing.T, s *SQLiteStore, email string, role auth.Role) *User {
	t.Helper()
	user := &User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "$2a$10$fakehashfakehashfakehashfakehash",
		Role:         role,
	}
	require.NoError(t, s.CreateUser(context.Background(), user))
	return user
}

func TestStore_CreateUser(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	user := &User{
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$somehash",
		Role:         auth.RoleProjectManager,
	}
	require.NoError(t, s.CreateUser(ctx, user))
	assert.NotZero(t, user.ID, "CreateUser should fill in the generated id")

	retrieved, err := s.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", retrieved.Name)
	assert.Equal(t, "alice@example.com", retrieved.Email)
	assert.Equal(t, auth.RoleProjectManager, retrieved.Role)
	assert.Equal(t, "$2a$10$somehash", retrieved.PasswordHash)
	assert.False(t, retrieved.CreatedAt.IsZero())
}

func TestStore_CreateUser_DuplicateEmail(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	createTestUser(t, s, "dup@example.com", auth.RoleMember)

	err := s.CreateUser(ctx, &User{
		Name:         "Second",
		Email:        "dup@example.com",
		PasswordHash: "$2a$10$otherhash",
		Role:         auth.RoleViewer,
	})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestStore_GetUserByEmail(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	created := createTestUser(t, s, "lookup@example.com", auth.RoleViewer)

	retrieved, err := s.GetUserByEmail(ctx, "lookup@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, retrieved.ID)

	_, err = s.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_GetUser_NotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.GetUser(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}
