package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrTodoNotFound is returned when a query or update targets a todo
	// that does not exist in the database.
	ErrTodoNotFound = errors.New("todo was not found")

	// ErrTodoAlreadyExists is returned when an INSERT violates the primary
	// key, i.e. a todo with the same ID is already stored. A retried
	// create pending operation hits this after a lost acknowledgement.
	ErrTodoAlreadyExists = errors.New("todo already exists")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRows is returned when scanning column values from a
	// result set fails.
	ErrScanningRows = errors.New("failed to scan todo rows")
)
