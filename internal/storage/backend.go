// Package storage owns the backing selection for the process. The backing is
// decided once at boot: PostgreSQL when DATABASE_URL is set and reachable,
// otherwise the in-process store. The choice is never revisited per request.
package storage

import "errors"

// Kind identifies the active backing.
type Kind string

const (
	KindPostgres Kind = "postgres"
	KindMemory   Kind = "memory"
)

// ErrStorageUnavailable reports that the relational backing was selected but
// could not be reached at boot. It degrades the process to the in-memory
// backing; it never fails an individual request.
var ErrStorageUnavailable = errors.New("storage unavailable")

// Default credentials seeded into a fresh backing so the app is usable
// immediately after boot.
const (
	SeedUserEmail     = "admin@test.com"
	SeedUserPassword  = "password123"
	SeedUserUsername  = "admin"
	SeedUserFirstName = "John"
	SeedUserLastName  = "Doe"
)
