package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ametelin/localtodo/internal/logger"
	"github.com/ametelin/localtodo/models"
)

// todoRepository is the SQL-backed implementation of [TodoRepository]. It
// executes all todo CRUD operations against the "todos" table and works over
// both supported dialects through the embedded [*DB]'s placeholder format.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that database interactions are traced with
// structured fields.
type todoRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewTodoRepository constructs a [TodoRepository] backed by the provided
// database connection and logger.
func NewTodoRepository(db *DB, logger *logger.Logger) TodoRepository {
	logger.Debug().Msg("creating todo repository")
	return &todoRepository{
		db:     db,
		logger: logger,
	}
}

// CreateTodo persists the todo. A primary key collision maps to
// [ErrTodoAlreadyExists] so that a redelivered create is distinguishable from
// a hard failure.
func (r *todoRepository) CreateTodo(ctx context.Context, todo models.Todo) error {
	log := logger.FromContext(ctx)

	query, args, err := r.buildInsertQuery(todo)
	if err != nil {
		log.Err(err).Str("func", "todoRepository.CreateTodo").Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		if IsUniqueViolation(err) || isSQLiteUniqueViolation(err) {
			return ErrTodoAlreadyExists
		}
		log.Err(err).Str("func", "todoRepository.CreateTodo").Str("todo_id", todo.ID).Msg("failed to insert todo")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// GetTodo returns the todo with the given ID or [ErrTodoNotFound].
func (r *todoRepository) GetTodo(ctx context.Context, id string) (models.Todo, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.buildGetQuery(id)
	if err != nil {
		log.Err(err).Str("func", "todoRepository.GetTodo").Msg("failed to build query")
		return models.Todo{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	todo, err := scanTodo(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Todo{}, ErrTodoNotFound
		}
		log.Err(err).Str("func", "todoRepository.GetTodo").Str("todo_id", id).Msg("failed to scan todo")
		return models.Todo{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return todo, nil
}

// ListTodos returns todos matching the filter, ordered and paginated in SQL.
func (r *todoRepository) ListTodos(ctx context.Context, filter models.TodoFilter) ([]models.Todo, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.buildListQuery(filter)
	if err != nil {
		log.Err(err).Str("func", "todoRepository.ListTodos").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "todoRepository.ListTodos").Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	todos := make([]models.Todo, 0)
	for rows.Next() {
		todo, scanErr := scanTodo(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "todoRepository.ListTodos").Msg("failed to scan todo row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		todos = append(todos, todo)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "todoRepository.ListTodos").Msg("row iteration error")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return todos, nil
}

// UpdateTodo applies a partial change, bumps updated_at, and returns the
// canonical row via a RETURNING clause. [ErrTodoNotFound] when no row matches.
func (r *todoRepository) UpdateTodo(ctx context.Context, id string, change models.TodoChange, now time.Time) (models.Todo, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.buildUpdateQuery(id, change, now)
	if err != nil {
		log.Err(err).Str("func", "todoRepository.UpdateTodo").Msg("failed to build query")
		return models.Todo{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	todo, err := scanTodo(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Todo{}, ErrTodoNotFound
		}
		log.Err(err).Str("func", "todoRepository.UpdateTodo").Str("todo_id", id).Msg("failed to update todo")
		return models.Todo{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return todo, nil
}

// ToggleTodo flips the completion state in a single statement and returns the
// updated row. [ErrTodoNotFound] when no row matches.
func (r *todoRepository) ToggleTodo(ctx context.Context, id string, now time.Time) (models.Todo, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.buildToggleQuery(id, now)
	if err != nil {
		log.Err(err).Str("func", "todoRepository.ToggleTodo").Msg("failed to build query")
		return models.Todo{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	todo, err := scanTodo(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Todo{}, ErrTodoNotFound
		}
		log.Err(err).Str("func", "todoRepository.ToggleTodo").Str("todo_id", id).Msg("failed to toggle todo")
		return models.Todo{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return todo, nil
}

// DeleteTodo removes the todo. Deleting an absent ID is not an error.
func (r *todoRepository) DeleteTodo(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	query, args, err := r.buildDeleteQuery(id)
	if err != nil {
		log.Err(err).Str("func", "todoRepository.DeleteTodo").Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "todoRepository.DeleteTodo").Str("todo_id", id).Msg("failed to delete todo")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// BatchToggle sets the completion state for all matching IDs and returns the
// number of affected rows. Unknown IDs are skipped.
func (r *todoRepository) BatchToggle(ctx context.Context, ids []string, completed bool, now time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	if len(ids) == 0 {
		return 0, nil
	}

	query, args, err := r.buildBatchToggleQuery(ids, completed, now)
	if err != nil {
		log.Err(err).Str("func", "todoRepository.BatchToggle").Msg("failed to build query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "todoRepository.BatchToggle").Int("ids_count", len(ids)).Msg("failed to toggle todos")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return res.RowsAffected()
}

// BatchDelete removes all matching IDs and returns the number of removed rows.
func (r *todoRepository) BatchDelete(ctx context.Context, ids []string) (int64, error) {
	log := logger.FromContext(ctx)

	if len(ids) == 0 {
		return 0, nil
	}

	query, args, err := r.buildBatchDeleteQuery(ids)
	if err != nil {
		log.Err(err).Str("func", "todoRepository.BatchDelete").Msg("failed to build query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "todoRepository.BatchDelete").Int("ids_count", len(ids)).Msg("failed to delete todos")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return res.RowsAffected()
}

// ClearCompleted removes every completed todo and returns the number of
// removed rows.
func (r *todoRepository) ClearCompleted(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.buildClearCompletedQuery()
	if err != nil {
		log.Err(err).Str("func", "todoRepository.ClearCompleted").Msg("failed to build query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "todoRepository.ClearCompleted").Msg("failed to clear completed todos")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return res.RowsAffected()
}

// rowScanner abstracts *sql.Row and *sql.Rows for the shared column mapping.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(row rowScanner) (models.Todo, error) {
	var (
		todo        models.Todo
		priority    string
		completedAt sql.NullTime
	)
	err := row.Scan(&todo.ID, &todo.Title, &todo.Description, &priority, &todo.Completed,
		&todo.CreatedAt, &todo.UpdatedAt, &completedAt)
	if err != nil {
		return models.Todo{}, err
	}
	todo.Priority = models.Priority(priority)
	if completedAt.Valid {
		at := completedAt.Time
		todo.CompletedAt = &at
	}
	return todo, nil
}
