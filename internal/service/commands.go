package service

import (
	"context"

	"github.com/ametelin/localtodo/internal/command"
	"github.com/ametelin/localtodo/models"
)

var priorityEnum = []string{
	string(models.PriorityLow),
	string(models.PriorityMedium),
	string(models.PriorityHigh),
}

// RegisterTodoCommands registers the todo command set on the registry. Each
// command wraps a [TodoService] call in the uniform result envelope.
func RegisterTodoCommands(registry *command.Registry, todos TodoService) {
	registry.Register(command.Command{
		Name:        "todo-create",
		Description: "Create a new todo item",
		Parameters: []command.Parameter{
			{Name: "title", Type: command.TypeString, Description: "Todo title", Required: true},
			{Name: "description", Type: command.TypeString, Description: "Optional longer description"},
			{Name: "priority", Type: command.TypeString, Description: "Importance level", Enum: priorityEnum},
			{Name: "completed", Type: command.TypeBoolean, Description: "Create in completed state"},
		},
		Handler: func(ctx context.Context, in command.Input) command.Result {
			title := in.String("title", "")
			if title == "" {
				return command.Fail(command.ValidationError("title must not be empty", "Provide a non-empty title"))
			}

			todo, err := todos.Create(models.CreateTodoRequest{
				Title:       title,
				Description: in.String("description", ""),
				Priority:    models.Priority(in.String("priority", "")),
				Completed:   in.Bool("completed", false),
			})
			if err != nil {
				return command.Fail(command.ExecutionError(err))
			}
			return command.Ok(todo)
		},
	})

	registry.Register(command.Command{
		Name:        "todo-list",
		Description: "List todos with optional filtering and sorting",
		Parameters: []command.Parameter{
			{Name: "completed", Type: command.TypeBoolean, Description: "Filter by completion state"},
			{Name: "priority", Type: command.TypeString, Description: "Filter by priority", Enum: priorityEnum},
			{Name: "search", Type: command.TypeString, Description: "Substring match on title and description"},
			{Name: "sortBy", Type: command.TypeString, Description: "Sort key", Enum: []string{"createdAt", "updatedAt", "title", "priority"}},
			{Name: "sortOrder", Type: command.TypeString, Description: "Sort direction", Enum: []string{"asc", "desc"}},
			{Name: "limit", Type: command.TypeNumber, Description: "Maximum number of results"},
			{Name: "offset", Type: command.TypeNumber, Description: "Number of results to skip"},
		},
		Handler: func(ctx context.Context, in command.Input) command.Result {
			filter := models.TodoFilter{
				Completed: in.BoolPtr("completed"),
				Search:    in.String("search", ""),
				SortBy:    in.String("sortBy", ""),
				SortOrder: in.String("sortOrder", ""),
				Limit:     in.IntPtr("limit"),
				Offset:    in.IntPtr("offset"),
			}
			if p := in.StringPtr("priority"); p != nil {
				priority := models.Priority(*p)
				filter.Priority = &priority
			}

			list, err := todos.List(filter)
			if err != nil {
				return command.Fail(command.ExecutionError(err))
			}
			return command.Ok(map[string]any{
				"todos": list,
				"count": len(list),
			})
		},
	})

	registry.Register(command.Command{
		Name:        "todo-get",
		Description: "Get a single todo by ID",
		Parameters: []command.Parameter{
			{Name: "id", Type: command.TypeString, Description: "Todo ID", Required: true},
		},
		Handler: func(ctx context.Context, in command.Input) command.Result {
			id := in.String("id", "")
			todo, found, err := todos.Get(id)
			if err != nil {
				return command.Fail(command.ExecutionError(err))
			}
			if !found {
				return command.Fail(command.NotFoundError("Todo", id))
			}
			return command.Ok(todo)
		},
	})

	registry.Register(command.Command{
		Name:        "todo-update",
		Description: "Update fields of an existing todo",
		Parameters: []command.Parameter{
			{Name: "id", Type: command.TypeString, Description: "Todo ID", Required: true},
			{Name: "title", Type: command.TypeString, Description: "New title"},
			{Name: "description", Type: command.TypeString, Description: "New description"},
			{Name: "priority", Type: command.TypeString, Description: "New priority", Enum: priorityEnum},
			{Name: "completed", Type: command.TypeBoolean, Description: "New completion state"},
		},
		Handler: func(ctx context.Context, in command.Input) command.Result {
			id := in.String("id", "")

			change := models.TodoChange{
				Title:       in.StringPtr("title"),
				Description: in.StringPtr("description"),
				Completed:   in.BoolPtr("completed"),
			}
			if p := in.StringPtr("priority"); p != nil {
				priority := models.Priority(*p)
				change.Priority = &priority
			}
			if change.Empty() {
				return command.Fail(command.NoChangesError())
			}
			if change.Title != nil && *change.Title == "" {
				return command.Fail(command.ValidationError("title must not be empty", "Provide a non-empty title or omit the field"))
			}

			// fail fast instead of the store's silent no-op
			if _, found, err := todos.Get(id); err != nil {
				return command.Fail(command.ExecutionError(err))
			} else if !found {
				return command.Fail(command.NotFoundError("Todo", id))
			}

			todo, _, err := todos.Update(id, change)
			if err != nil {
				return command.Fail(command.ExecutionError(err))
			}
			return command.Ok(todo)
		},
	})

	registry.Register(command.Command{
		Name:        "todo-toggle",
		Description: "Toggle the completion state of a todo",
		Parameters: []command.Parameter{
			{Name: "id", Type: command.TypeString, Description: "Todo ID", Required: true},
		},
		Handler: func(ctx context.Context, in command.Input) command.Result {
			id := in.String("id", "")
			todo, found, err := todos.Toggle(id)
			if err != nil {
				return command.Fail(command.ExecutionError(err))
			}
			if !found {
				return command.Fail(command.NotFoundError("Todo", id))
			}
			return command.Ok(todo)
		},
	})

	registry.Register(command.Command{
		Name:        "todo-delete",
		Description: "Delete a todo by ID",
		Parameters: []command.Parameter{
			{Name: "id", Type: command.TypeString, Description: "Todo ID", Required: true},
		},
		Handler: func(ctx context.Context, in command.Input) command.Result {
			id := in.String("id", "")
			found, err := todos.Delete(id)
			if err != nil {
				return command.Fail(command.ExecutionError(err))
			}
			if !found {
				return command.Fail(command.NotFoundError("Todo", id))
			}
			return command.Ok(map[string]any{"id": id, "deleted": true})
		},
	})

	registry.Register(command.Command{
		Name:        "todo-clear",
		Description: "Remove all completed todos",
		Handler: func(ctx context.Context, in command.Input) command.Result {
			cleared, err := todos.ClearCompleted()
			if err != nil {
				return command.Fail(command.ExecutionError(err))
			}
			return command.Ok(map[string]any{"cleared": cleared})
		},
	})

	registry.Register(command.Command{
		Name:        "todo-stats",
		Description: "Summary statistics over all todos",
		Handler: func(ctx context.Context, in command.Input) command.Result {
			stats, err := todos.Stats()
			if err != nil {
				return command.Fail(command.ExecutionError(err))
			}
			return command.Ok(stats)
		},
	})

	registry.Register(command.Command{
		Name:        "todo-batch-toggle",
		Description: "Set the completion state for several todos at once",
		Parameters: []command.Parameter{
			{Name: "ids", Type: command.TypeArray, Description: "Todo IDs", Required: true},
			{Name: "completed", Type: command.TypeBoolean, Description: "Target completion state", Required: true},
		},
		Handler: func(ctx context.Context, in command.Input) command.Result {
			ids := in.StringSlice("ids")
			if len(ids) == 0 {
				return command.Fail(command.ValidationError("ids must not be empty", "Provide at least one todo ID"))
			}
			affected, err := todos.BatchToggle(ids, in.Bool("completed", false))
			if err != nil {
				return command.Fail(command.ExecutionError(err))
			}
			return command.Ok(map[string]any{"affected": affected})
		},
	})

	registry.Register(command.Command{
		Name:        "todo-batch-delete",
		Description: "Delete several todos at once",
		Parameters: []command.Parameter{
			{Name: "ids", Type: command.TypeArray, Description: "Todo IDs", Required: true},
		},
		Handler: func(ctx context.Context, in command.Input) command.Result {
			ids := in.StringSlice("ids")
			if len(ids) == 0 {
				return command.Fail(command.ValidationError("ids must not be empty", "Provide at least one todo ID"))
			}
			removed, err := todos.BatchDelete(ids)
			if err != nil {
				return command.Fail(command.ExecutionError(err))
			}
			return command.Ok(map[string]any{"removed": removed})
		},
	})
}
