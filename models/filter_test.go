package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func testTodos() []Todo {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []Todo{
		{ID: "1", Title: "Buy milk", Priority: PriorityLow, CreatedAt: base, UpdatedAt: base},
		{ID: "2", Title: "Write report", Description: "quarterly numbers", Priority: PriorityHigh, Completed: true, CreatedAt: base.Add(time.Hour), UpdatedAt: base.Add(3 * time.Hour)},
		{ID: "3", Title: "Call plumber", Priority: PriorityMedium, CreatedAt: base.Add(2 * time.Hour), UpdatedAt: base.Add(2 * time.Hour)},
	}
}

func TestTodoFilter_Apply(t *testing.T) {
	todos := testTodos()

	tests := []struct {
		name    string
		filter  TodoFilter
		wantIDs []string
	}{
		{
			name:    "no filter sorts by createdAt desc",
			filter:  TodoFilter{},
			wantIDs: []string{"3", "2", "1"},
		},
		{
			name:    "completed filter",
			filter:  TodoFilter{Completed: ptr(true)},
			wantIDs: []string{"2"},
		},
		{
			name:    "priority filter",
			filter:  TodoFilter{Priority: ptr(PriorityLow)},
			wantIDs: []string{"1"},
		},
		{
			name:    "search matches title case-insensitively",
			filter:  TodoFilter{Search: "MILK"},
			wantIDs: []string{"1"},
		},
		{
			name:    "search matches description",
			filter:  TodoFilter{Search: "quarterly"},
			wantIDs: []string{"2"},
		},
		{
			name:    "sort by title asc",
			filter:  TodoFilter{SortBy: "title", SortOrder: "asc"},
			wantIDs: []string{"1", "3", "2"},
		},
		{
			name:    "sort by priority desc",
			filter:  TodoFilter{SortBy: "priority"},
			wantIDs: []string{"2", "3", "1"},
		},
		{
			name:    "limit and offset",
			filter:  TodoFilter{SortOrder: "asc", Offset: ptr(1), Limit: ptr(1)},
			wantIDs: []string{"2"},
		},
		{
			name:    "offset past the end yields empty",
			filter:  TodoFilter{Offset: ptr(10)},
			wantIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Apply(todos)
			ids := make([]string, 0, len(got))
			for _, td := range got {
				ids = append(ids, td.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestTodoChange_Apply(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	todo := Todo{ID: "1", Title: "old", Priority: PriorityMedium}

	change := TodoChange{Title: ptr("new"), Completed: ptr(true)}
	change.Apply(&todo, now)

	assert.Equal(t, "new", todo.Title)
	assert.True(t, todo.Completed)
	require.NotNil(t, todo.CompletedAt)
	assert.Equal(t, now, *todo.CompletedAt)
	// priority untouched
	assert.Equal(t, PriorityMedium, todo.Priority)

	// un-completing clears the completion timestamp
	TodoChange{Completed: ptr(false)}.Apply(&todo, now.Add(time.Hour))
	assert.False(t, todo.Completed)
	assert.Nil(t, todo.CompletedAt)
}

func TestComputeStats(t *testing.T) {
	stats := ComputeStats(testTodos())

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 2, stats.Pending)
	assert.Equal(t, PriorityStats{Low: 1, Medium: 1, High: 1}, stats.ByPriority)
	assert.InDelta(t, 1.0/3.0, stats.CompletionRate, 1e-9)

	empty := ComputeStats(nil)
	assert.Zero(t, empty.CompletionRate)
}

func TestIsLocalID(t *testing.T) {
	assert.True(t, IsLocalID(NewLocalID()))
	assert.False(t, IsLocalID(NewRemoteID()))
	assert.False(t, IsLocalID("todo-123"))
}
