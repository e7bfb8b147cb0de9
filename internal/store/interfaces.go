package store

import (
	"context"
	"time"

	"github.com/ametelin/localtodo/models"
)

// TodoRepository is the reference backend's authoritative todo storage.
// It is the server-side counterpart of the client's LocalStore: where the
// client records optimistic mutations, the repository records acknowledged
// truth.
type TodoRepository interface {
	// CreateTodo persists the given todo. The caller assigns the
	// remote-prefixed ID before calling.
	CreateTodo(ctx context.Context, todo models.Todo) error

	// GetTodo returns the todo with the given ID or ErrTodoNotFound.
	GetTodo(ctx context.Context, id string) (models.Todo, error)

	// ListTodos returns todos matching the filter, ordered and paginated
	// per the filter's sort settings.
	ListTodos(ctx context.Context, filter models.TodoFilter) ([]models.Todo, error)

	// UpdateTodo applies a partial change and bumps updated_at.
	// Returns ErrTodoNotFound if no row matches.
	UpdateTodo(ctx context.Context, id string, change models.TodoChange, now time.Time) (models.Todo, error)

	// ToggleTodo flips the completion state and maintains completed_at.
	// Returns ErrTodoNotFound if no row matches.
	ToggleTodo(ctx context.Context, id string, now time.Time) (models.Todo, error)

	// DeleteTodo removes the todo. Deleting an absent ID is not an error;
	// the mutation is idempotent so a retried pending operation cannot
	// fail permanently.
	DeleteTodo(ctx context.Context, id string) error

	// BatchToggle sets the completion state for all matching IDs and
	// returns the number of affected rows.
	BatchToggle(ctx context.Context, ids []string, completed bool, now time.Time) (int64, error)

	// BatchDelete removes all matching IDs and returns the number of
	// removed rows.
	BatchDelete(ctx context.Context, ids []string) (int64, error)

	// ClearCompleted removes every completed todo and returns the number
	// of removed rows.
	ClearCompleted(ctx context.Context) (int64, error)
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
