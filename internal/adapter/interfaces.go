package adapter

import (
	"context"

	"github.com/ametelin/localtodo/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// RemoteAPI is the client's view of the remote todo backend. The
// reconciliation engine replays pending operations through it and hydrates
// the local cache from List.
//
// All mutations are addressed by remote IDs; Create is the only call that
// mints one.
type RemoteAPI interface {
	// Create stores a new todo remotely and returns the server-assigned ID.
	Create(ctx context.Context, req models.CreateTodoRequest) (string, error)

	// Update applies a partial change to the todo with the given remote ID.
	Update(ctx context.Context, id string, change models.TodoChange) error

	// Toggle flips the completion state of the todo.
	Toggle(ctx context.Context, id string) error

	// Delete removes the todo. Deleting an absent ID succeeds.
	Delete(ctx context.Context, id string) error

	// BatchToggle sets the completion state for several todos at once.
	BatchToggle(ctx context.Context, ids []string, completed bool) error

	// BatchDelete removes several todos at once.
	BatchDelete(ctx context.Context, ids []string) error

	// ClearCompleted removes every completed todo.
	ClearCompleted(ctx context.Context) error

	// List returns the authoritative remote todo set.
	List(ctx context.Context) ([]models.Todo, error)
}
