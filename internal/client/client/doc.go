// Package client bootstraps the local side of the grain CLI.
//
// It opens the SQLite database, applies the embedded goose migrations and
// builds the repositories the session store persists into.
//
// See Also
//
//   - DB helpers:   InitDatabase, RunMigrations
//   - Repositories: NewRepositories
package client
