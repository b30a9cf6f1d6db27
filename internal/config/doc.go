// Package config loads and validates the taskgate configuration.
//
// Configuration is a single YAML file with ${VAR_NAME} environment variable
// expansion applied before parsing. It is loaded once at startup and treated
// as immutable for the process lifetime; the pieces each component needs
// (signing secret, database path, addresses) are injected explicitly.
//
// Validation runs at load time: a missing or undersized jwt_secret is a
// startup failure, never a runtime surprise.
package config
