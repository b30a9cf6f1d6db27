// Package policy holds the ownership rules: per-resource admission decisions
// that the role gate cannot express, based on the relationship between the
// requesting identity and the specific resource instance.
//
// Policy functions are pure: they take an already-authenticated Identity and
// an already-fetched resource, and either admit (nil / true) or deny
// (ErrDenied / false). Callers fetch the resource fresh from the store before
// every evaluation; nothing here is cached or trusted from an earlier request.
//
// The current rules:
//
//   - Comment update: author only. No admin override.
//   - Comment delete: author or admin.
//   - Project/task visibility: project owner or member.
//
// Project and task mutations carry no per-project ownership refinement: any
// project_manager may modify any project. That behavior is intentional and
// kept as-is; see DESIGN.md for the discussion.
package policy
