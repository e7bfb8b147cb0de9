package models

import (
	"sort"
	"strings"
)

// TodoFilter narrows and orders a todo listing. Nil pointer fields mean
// "no filter on this dimension".
type TodoFilter struct {
	Completed *bool     `json:"completed,omitempty"`
	Priority  *Priority `json:"priority,omitempty"`
	Search    string    `json:"search,omitempty"`
	SortBy    string    `json:"sortBy,omitempty"`
	SortOrder string    `json:"sortOrder,omitempty"`
	Limit     *int      `json:"limit,omitempty"`
	Offset    *int      `json:"offset,omitempty"`
}

// Apply filters, sorts, and paginates todos according to f. The input slice
// is not modified. Unknown sortBy values fall back to createdAt; the default
// order is descending.
func (f TodoFilter) Apply(todos []Todo) []Todo {
	out := make([]Todo, 0, len(todos))
	search := strings.ToLower(f.Search)
	for _, t := range todos {
		if f.Completed != nil && t.Completed != *f.Completed {
			continue
		}
		if f.Priority != nil && t.Priority != *f.Priority {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(t.Title), search) &&
			!strings.Contains(strings.ToLower(t.Description), search) {
			continue
		}
		out = append(out, t)
	}

	sortBy := f.SortBy
	if sortBy == "" {
		sortBy = "createdAt"
	}
	desc := f.SortOrder != "asc"

	sort.SliceStable(out, func(i, j int) bool {
		var less bool
		switch sortBy {
		case "title":
			less = out[i].Title < out[j].Title
		case "priority":
			less = out[i].Priority.Rank() < out[j].Priority.Rank()
		case "updatedAt":
			less = out[i].UpdatedAt.Before(out[j].UpdatedAt)
		default:
			less = out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		if desc {
			return !less && !equalByKey(out[i], out[j], sortBy)
		}
		return less
	})

	offset := 0
	if f.Offset != nil && *f.Offset > 0 {
		offset = *f.Offset
	}
	if offset >= len(out) {
		return []Todo{}
	}
	out = out[offset:]

	if f.Limit != nil && *f.Limit >= 0 && *f.Limit < len(out) {
		out = out[:*f.Limit]
	}

	return out
}

func equalByKey(a, b Todo, key string) bool {
	switch key {
	case "title":
		return a.Title == b.Title
	case "priority":
		return a.Priority.Rank() == b.Priority.Rank()
	case "updatedAt":
		return a.UpdatedAt.Equal(b.UpdatedAt)
	default:
		return a.CreatedAt.Equal(b.CreatedAt)
	}
}
