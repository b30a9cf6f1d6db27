// Package store provides persistent storage for taskgate using SQLite.
//
// # Architecture
//
// The store package uses an interface-driven architecture with one interface
// per entity:
//
//   - UserStore: the credential store (lookup by email at login, by id elsewhere)
//   - ProjectStore: projects plus the membership set behind visibility
//   - TaskStore: tasks, always belonging to exactly one project
//   - CommentStore: comments with immutable authorship
//
// SQLiteStore implements all interfaces in a single struct; handlers depend
// on the narrow interface for the entity they touch. The access-control
// layer treats this package as the single source of truth and re-fetches a
// resource before every ownership decision.
//
// # SQLite Configuration
//
// The store uses SQLite with WAL mode for concurrent reads:
//
//	PRAGMA journal_mode=WAL;
//	PRAGMA foreign_keys=ON;
//
// The schema is created automatically on startup. Timestamps are stored as
// RFC3339 strings.
//
// # Error Handling
//
// Common errors:
//
//   - ErrNotFound: requested entity does not exist
//   - ErrDuplicateEmail: signup with an already-registered email
//
// All methods accept context.Context. No operation retries; failures surface
// to the caller immediately.
package store
