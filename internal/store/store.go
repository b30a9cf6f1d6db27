// ABOUTME: Store interfaces and data types for taskgate persistence
// ABOUTME: Defines User, Project, Task, Comment structs and per-entity interfaces

package store

import (
	"context"
	"errors"
	"time"

	"github.com/taskgate/taskgate/internal/auth"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail is returned when creating a user with an email that is
// already registered
var ErrDuplicateEmail = errors.New("email already exists")

// User represents a registered account. The password hash is bcrypt and never
// leaves this layer.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         auth.Role
	CreatedAt    time.Time
}

// Project represents a project owned by a user. Members holds the user ids of
// the project's members; the owner is implicitly a member for access purposes
// and is not duplicated in the set.
type Project struct {
	ID          int64
	Name        string
	Description string
	OwnerID     int64
	Members     []int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskStatus constants for task lifecycle states
const (
	TaskStatusPending    = "PENDING" // all tasks are created in this state
	TaskStatusInProgress = "IN_PROGRESS"
	TaskStatusCompleted  = "COMPLETED"
)

// TaskPriority constants
const (
	TaskPriorityLow    = "LOW"
	TaskPriorityMedium = "MEDIUM" // default when the caller does not specify
	TaskPriorityHigh   = "HIGH"
)

// Task represents a unit of work belonging to exactly one project.
type Task struct {
	ID          int64
	ProjectID   int64
	Title       string
	Description string
	Status      string // PENDING, IN_PROGRESS, COMPLETED
	Priority    string // LOW, MEDIUM, HIGH
	AssigneeID  *int64
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Comment represents a comment on a task. UserID is the author and is fixed
// at creation; authorship never changes. ProjectID is carried redundantly so
// ownership checks need a single fetch.
type Comment struct {
	ID        int64
	TaskID    int64
	ProjectID int64
	UserID    int64
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserStore defines credential-store operations: lookup by email at login,
// lookup by id for everything else.
type UserStore interface {
	CreateUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, id int64) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}

// ProjectStore defines project persistence and membership management.
type ProjectStore interface {
	CreateProject(ctx context.Context, project *Project) error
	GetProject(ctx context.Context, id int64) (*Project, error)
	UpdateProject(ctx context.Context, project *Project) error
	DeleteProject(ctx context.Context, id int64) error

	// ListProjectsForUser returns projects where the user is the owner or a
	// member. This is the membership filter behind GET /projects.
	ListProjectsForUser(ctx context.Context, userID int64) ([]*Project, error)

	AddProjectMember(ctx context.Context, projectID, userID int64) error
	RemoveProjectMember(ctx context.Context, projectID, userID int64) error
}

// TaskStore defines task persistence.
type TaskStore interface {
	CreateTask(ctx context.Context, task *Task) error
	GetTask(ctx context.Context, id int64) (*Task, error)
	UpdateTask(ctx context.Context, task *Task) error
	DeleteTask(ctx context.Context, id int64) error

	// ListTasksForUser returns tasks in projects where the user is the owner
	// or a member. This is the membership filter behind GET /tasks.
	ListTasksForUser(ctx context.Context, userID int64) ([]*Task, error)
}

// CommentStore defines comment persistence.
type CommentStore interface {
	CreateComment(ctx context.Context, comment *Comment) error
	GetComment(ctx context.Context, id int64) (*Comment, error)
	UpdateComment(ctx context.Context, comment *Comment) error
	DeleteComment(ctx context.Context, id int64) error
	ListCommentsByTask(ctx context.Context, taskID int64) ([]*Comment, error)
}

// Store combines all entity stores. SQLiteStore implements it in a single
// struct; handlers depend on the narrow interfaces.
type Store interface {
	UserStore
	ProjectStore
	TaskStore
	CommentStore

	// Close releases any resources held by the store
	Close() error
}
