// Package api is the HTTP surface of taskgate. Each protected route composes
// the same pipeline: authenticate the bearer token, gate by allowed roles,
// load the target resource, evaluate the ownership policy, then mutate or
// read through the store.
//
// The role sets are declared once, at route registration; handlers never
// re-check roles. Ownership decisions live in internal/policy and always run
// against a freshly fetched resource. Responses are JSON; error bodies carry
// a single message field and internal failure detail stays in the logs.
package api
