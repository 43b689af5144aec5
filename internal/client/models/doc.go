// Package models defines the client-side data models of the grain CLI:
// account credentials and sessions, and photo feed items as returned by the
// photo API.
package models
