package store

import (
	"strings"
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ametelin/localtodo/internal/logger"
	"github.com/ametelin/localtodo/models"
)

func newQueryTestRepo(placeholder sq.PlaceholderFormat) *todoRepository {
	return &todoRepository{
		db: &DB{
			placeholder:        placeholder,
			errorClassificator: NewPostgresErrorClassifier(),
			logger:             logger.Nop(),
		},
		logger: logger.Nop(),
	}
}

func Test_buildListQuery_NoFilter(t *testing.T) {
	repo := newQueryTestRepo(sq.Dollar)

	query, args, err := repo.buildListQuery(models.TodoFilter{})
	require.NoError(t, err)
	require.Empty(t, args)

	q := strings.ToLower(query)
	require.Contains(t, q, "select")
	require.Contains(t, q, "from todos")
	require.NotContains(t, q, "where")
	require.Contains(t, q, "order by created_at desc")

	for _, col := range []string{"id", "title", "description", "priority", "completed", "created_at", "updated_at", "completed_at"} {
		require.Contains(t, q, col)
	}
}

func Test_buildListQuery_AllFilters(t *testing.T) {
	repo := newQueryTestRepo(sq.Dollar)
	completed := false
	priority := models.PriorityHigh
	limit, offset := 10, 5

	query, args, err := repo.buildListQuery(models.TodoFilter{
		Completed: &completed,
		Priority:  &priority,
		Search:    "Groceries",
		SortBy:    "title",
		SortOrder: "asc",
		Limit:     &limit,
		Offset:    &offset,
	})
	require.NoError(t, err)

	q := strings.ToLower(query)
	assert.Contains(t, q, "completed =")
	assert.Contains(t, q, "priority =")
	assert.Contains(t, q, "lower(title) like")
	assert.Contains(t, q, "lower(description) like")
	assert.Contains(t, q, "order by title asc")
	assert.Contains(t, q, "limit 10")
	assert.Contains(t, q, "offset 5")

	// search pattern is lowercased before it hits the database
	assert.Contains(t, args, "%groceries%")
	assert.Contains(t, args, false)
	assert.Contains(t, args, "high")
}

func Test_buildListQuery_PrioritySortUsesRankExpression(t *testing.T) {
	repo := newQueryTestRepo(sq.Dollar)

	query, _, err := repo.buildListQuery(models.TodoFilter{SortBy: "priority"})
	require.NoError(t, err)

	require.Contains(t, query, "CASE priority WHEN 'low' THEN 0")
	require.Contains(t, query, "DESC")
}

func Test_buildUpdateQuery_PartialChange(t *testing.T) {
	repo := newQueryTestRepo(sq.Dollar)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	title := "renamed"

	query, args, err := repo.buildUpdateQuery("remote-1", models.TodoChange{Title: &title}, now)
	require.NoError(t, err)

	q := strings.ToLower(query)
	assert.Contains(t, q, "update todos")
	assert.Contains(t, q, "updated_at =")
	assert.Contains(t, q, "title =")
	assert.NotContains(t, q, "description")
	assert.NotContains(t, q, "priority")
	assert.Contains(t, q, "returning")
	assert.Contains(t, args, "renamed")
	assert.Contains(t, args, "remote-1")
}

func Test_buildUpdateQuery_CompleteTransitionPreservesTimestamp(t *testing.T) {
	repo := newQueryTestRepo(sq.Dollar)
	now := time.Now()
	completed := true

	query, _, err := repo.buildUpdateQuery("remote-1", models.TodoChange{Completed: &completed}, now)
	require.NoError(t, err)

	// an already-completed row keeps its original completed_at
	require.Contains(t, query, "COALESCE(completed_at,")
}

func Test_buildToggleQuery(t *testing.T) {
	repo := newQueryTestRepo(sq.Question)
	now := time.Now()

	query, args, err := repo.buildToggleQuery("remote-1", now)
	require.NoError(t, err)

	q := strings.ToLower(query)
	assert.Contains(t, q, "completed = not completed")
	assert.Contains(t, q, "case when completed then null else ? end")
	assert.Contains(t, q, "returning")
	assert.Contains(t, args, "remote-1")
}

func Test_buildBatchQueries_UseINClause(t *testing.T) {
	repo := newQueryTestRepo(sq.Dollar)
	ids := []string{"remote-1", "remote-2", "remote-3"}

	query, args, err := repo.buildBatchDeleteQuery(ids)
	require.NoError(t, err)
	assert.Contains(t, strings.ToLower(query), "id in ($1,$2,$3)")
	assert.Len(t, args, 3)

	query, args, err = repo.buildBatchToggleQuery(ids, true, time.Now())
	require.NoError(t, err)
	assert.Contains(t, strings.ToLower(query), "id in (")
	assert.Contains(t, args, true)
}

func Test_buildClearCompletedQuery(t *testing.T) {
	repo := newQueryTestRepo(sq.Dollar)

	query, args, err := repo.buildClearCompletedQuery()
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM todos WHERE completed = $1", query)
	assert.Equal(t, []any{true}, args)
}
