package service

import (
	"context"
	"time"

	"github.com/ametelin/localtodo/models"
)

// TodoService is the client-side application surface over the local store.
// All mutations are optimistic: they apply to the local cache synchronously
// and are replayed against the remote backend by the [Reconciler].
type TodoService interface {
	Create(req models.CreateTodoRequest) (models.Todo, error)
	Get(id string) (models.Todo, bool, error)
	List(filter models.TodoFilter) ([]models.Todo, error)
	Update(id string, change models.TodoChange) (models.Todo, bool, error)
	Toggle(id string) (models.Todo, bool, error)
	Delete(id string) (bool, error)
	ClearCompleted() (int, error)
	BatchToggle(ids []string, completed bool) (int, error)
	BatchDelete(ids []string) (int, error)
	Stats() (models.TodoStats, error)
	PendingCount() (int, error)
	Subscribe(fn func()) func()
}

// Reconciler drains the pending-operation log against the remote backend and
// merges the remote truth back into the local cache.
type Reconciler interface {
	// Drain replays pending operations in FIFO order. It returns the number
	// of operations acknowledged in this pass. Operations whose remote call
	// fails stay pending, and later operations for the same entity are held
	// back until the next pass.
	Drain(ctx context.Context) (int, error)

	// Hydrate fetches the remote todo set and merges it into the local cache.
	Hydrate(ctx context.Context) error

	// FullSync is Drain followed by Hydrate.
	FullSync(ctx context.Context) error
}

// SyncJob runs FullSync on a ticker in the background.
type SyncJob interface {
	Start(ctx context.Context, interval time.Duration)
	Stop()
}
