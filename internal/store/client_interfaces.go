package store

import (
	"github.com/ametelin/localtodo/models"
)

// KeyValueStore is the persistence substrate injected into the local store.
// Implementations must be safe for use by a single writer; the local store
// serialises all access behind its own mutex.
//
// Get returns an empty string (and a nil error) for an absent key, mirroring
// the null-on-miss contract of session storage substrates.
type KeyValueStore interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// LocalStore is the single in-process source of truth for UI-visible todo
// state. All reads and writes, from any caller, go through it.
//
// Every write applies the cache mutation and appends exactly one pending
// operation as one atomic unit, then synchronously notifies subscribers.
// Writes never wait on the network: local success is unconditional, remote
// durability is the reconciler's job.
type LocalStore interface {
	// Snapshot returns the current todo collection. The returned slice is
	// cached and reference-stable between writes; callers must treat it as
	// read-only.
	Snapshot() ([]models.Todo, error)

	// Get returns the todo with the given ID, reporting whether it exists.
	Get(id string) (models.Todo, bool, error)

	// Subscribe registers fn to be invoked after every successful mutation.
	// The returned function removes the subscription.
	Subscribe(fn func()) (unsubscribe func())

	// Create assigns a local-prefixed ID and default timestamps, prepends
	// the todo to the collection, and appends a create operation.
	Create(req models.CreateTodoRequest) (models.Todo, error)

	// Update merges change into the matching todo and bumps updatedAt.
	// An unknown ID is a no-op on the cache but the operation is still
	// appended; the second return reports whether the todo was found.
	Update(id string, change models.TodoChange) (models.Todo, bool, error)

	// Toggle flips the completion state and bumps updatedAt.
	Toggle(id string) (models.Todo, bool, error)

	// Delete removes the todo, reporting whether it existed.
	Delete(id string) (bool, error)

	// ClearCompleted removes all completed todos and appends a single
	// clear-all operation regardless of how many were removed.
	ClearCompleted() (int, error)

	// BatchToggle sets the completion state for all matching IDs in one
	// pass and appends exactly one batch-toggle operation.
	BatchToggle(ids []string, completed bool) (int, error)

	// BatchDelete removes all matching IDs in one pass and appends exactly
	// one batch-delete operation.
	BatchDelete(ids []string) (int, error)

	// PendingOperations returns the unacknowledged log, oldest first.
	PendingOperations() ([]models.PendingOperation, error)

	// MarkSynced removes the given operations from the log. Unknown IDs
	// are ignored, so repeated acknowledgement is a no-op.
	MarkSynced(opIDs []string) error

	// UpdateTodoID rewrites the todo's ID and every pending operation
	// reference from oldID to newID as a single update, so no operation is
	// ever orphaned by a stale local ID.
	UpdateTodoID(oldID, newID string) error

	// Hydrate merges an authoritative remote snapshot into the cache.
	// Remote records win for any ID they carry, except that a locally
	// newer copy (by updatedAt) of the same ID is kept. Local-only records
	// survive only while unsynced and without a case-insensitive title
	// match in the remote set. Hydrate never touches the pending log.
	Hydrate(remote []models.Todo) error
}
