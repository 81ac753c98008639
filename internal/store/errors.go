package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when a user with the same email
	// (case-insensitively) already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUserNotFound is returned when a lookup or single-row update matches
	// no user.
	ErrUserNotFound = errors.New("user not found")
)

// Low-level storage errors. These are returned (or wrapped) when an
// operation fails before any domain logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or INSERT ...
	// RETURNING fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing an UPDATE fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning a user row fails.
	ErrScanningRow = errors.New("failed to scan user row")

	// ErrRedisUnavailable wraps every Redis failure of the revocation store.
	ErrRedisUnavailable = errors.New("redis unavailable")

	// ErrConnectingDB is returned when the database cannot be opened or pinged.
	ErrConnectingDB = errors.New("error connecting to database")
)
