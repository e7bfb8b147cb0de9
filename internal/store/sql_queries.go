package store

import (
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/ametelin/localtodo/models"
)

// todoColumns is the column list shared by every SELECT and RETURNING clause.
const todoColumns = "id, title, description, priority, completed, created_at, updated_at, completed_at"

// priorityRankExpr orders rows low < medium < high regardless of the
// lexicographic order of the stored strings.
const priorityRankExpr = "CASE priority WHEN 'low' THEN 0 WHEN 'medium' THEN 1 WHEN 'high' THEN 2 ELSE -1 END"

func (r *todoRepository) buildInsertQuery(todo models.Todo) (string, []any, error) {
	return r.db.builder().
		Insert("todos").
		Columns("id", "title", "description", "priority", "completed", "created_at", "updated_at", "completed_at").
		Values(todo.ID, todo.Title, todo.Description, string(todo.Priority), todo.Completed,
			todo.CreatedAt, todo.UpdatedAt, todo.CompletedAt).
		ToSql()
}

func (r *todoRepository) buildGetQuery(id string) (string, []any, error) {
	return r.db.builder().
		Select(strings.Split(todoColumns, ", ")...).
		From("todos").
		Where(sq.Eq{"id": id}).
		ToSql()
}

func (r *todoRepository) buildListQuery(filter models.TodoFilter) (string, []any, error) {
	q := r.db.builder().
		Select(strings.Split(todoColumns, ", ")...).
		From("todos")

	if filter.Completed != nil {
		q = q.Where(sq.Eq{"completed": *filter.Completed})
	}
	if filter.Priority != nil {
		q = q.Where(sq.Eq{"priority": string(*filter.Priority)})
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where(sq.Or{
			sq.Like{"LOWER(title)": pattern},
			sq.Like{"LOWER(description)": pattern},
		})
	}

	column := "created_at"
	switch filter.SortBy {
	case "title":
		column = "title"
	case "priority":
		column = priorityRankExpr
	case "updatedAt":
		column = "updated_at"
	}
	direction := "DESC"
	if filter.SortOrder == "asc" {
		direction = "ASC"
	}
	q = q.OrderBy(column + " " + direction)

	if filter.Limit != nil && *filter.Limit >= 0 {
		q = q.Limit(uint64(*filter.Limit))
	}
	if filter.Offset != nil && *filter.Offset > 0 {
		q = q.Offset(uint64(*filter.Offset))
	}

	return q.ToSql()
}

func (r *todoRepository) buildUpdateQuery(id string, change models.TodoChange, now time.Time) (string, []any, error) {
	q := r.db.builder().
		Update("todos").
		Set("updated_at", now)

	if change.Title != nil {
		q = q.Set("title", *change.Title)
	}
	if change.Description != nil {
		q = q.Set("description", *change.Description)
	}
	if change.Priority != nil {
		q = q.Set("priority", string(*change.Priority))
	}
	if change.Completed != nil {
		q = q.Set("completed", *change.Completed)
		if *change.Completed {
			// Set on the transition to completed only; COALESCE keeps
			// the original timestamp for an already-completed row.
			q = q.Set("completed_at", sq.Expr("COALESCE(completed_at, ?)", now))
		} else {
			q = q.Set("completed_at", nil)
		}
	}

	return q.Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + todoColumns).
		ToSql()
}

func (r *todoRepository) buildToggleQuery(id string, now time.Time) (string, []any, error) {
	return r.db.builder().
		Update("todos").
		Set("completed", sq.Expr("NOT completed")).
		Set("completed_at", sq.Expr("CASE WHEN completed THEN NULL ELSE ? END", now)).
		Set("updated_at", now).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + todoColumns).
		ToSql()
}

func (r *todoRepository) buildDeleteQuery(id string) (string, []any, error) {
	return r.db.builder().
		Delete("todos").
		Where(sq.Eq{"id": id}).
		ToSql()
}

func (r *todoRepository) buildBatchToggleQuery(ids []string, completed bool, now time.Time) (string, []any, error) {
	q := r.db.builder().
		Update("todos").
		Set("completed", completed).
		Set("updated_at", now)

	if completed {
		q = q.Set("completed_at", sq.Expr("COALESCE(completed_at, ?)", now))
	} else {
		q = q.Set("completed_at", nil)
	}

	return q.Where(sq.Eq{"id": ids}).ToSql()
}

func (r *todoRepository) buildBatchDeleteQuery(ids []string) (string, []any, error) {
	return r.db.builder().
		Delete("todos").
		Where(sq.Eq{"id": ids}).
		ToSql()
}

func (r *todoRepository) buildClearCompletedQuery() (string, []any, error) {
	return r.db.builder().
		Delete("todos").
		Where(sq.Eq{"completed": true}).
		ToSql()
}
