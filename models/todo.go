package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// LocalIDPrefix marks identifiers generated on the client before the todo has
// been acknowledged by the remote backend. Whether an entity has been durably
// synced is decidable from its ID alone.
const LocalIDPrefix = "local-"

// RemoteIDPrefix marks identifiers assigned by the remote backend.
const RemoteIDPrefix = "remote-"

// Priority is the importance level of a todo item.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the known priority levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Rank returns the sort weight of the priority, low first.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 0
	case PriorityMedium:
		return 1
	case PriorityHigh:
		return 2
	}
	return -1
}

// Todo is a single todo item. While its ID carries the local prefix the
// client owns the canonical record; after sync the record is a cached replica
// of the remote backend's copy.
type Todo struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    Priority   `json:"priority"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// NewLocalID returns a fresh client-generated todo identifier.
func NewLocalID() string {
	return LocalIDPrefix + uuid.NewString()
}

// NewRemoteID returns a fresh server-assigned todo identifier.
func NewRemoteID() string {
	return RemoteIDPrefix + uuid.NewString()
}

// IsLocalID reports whether id was generated locally and has not yet been
// remapped to a remote identifier.
func IsLocalID(id string) bool {
	return strings.HasPrefix(id, LocalIDPrefix)
}

// TodoChange is a partial update to a todo. Nil fields are left untouched,
// which distinguishes "not provided" from an explicit zero value.
type TodoChange struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	Completed   *bool     `json:"completed,omitempty"`
}

// Empty reports whether the change carries no fields at all.
func (c TodoChange) Empty() bool {
	return c.Title == nil && c.Description == nil && c.Priority == nil && c.Completed == nil
}

// Apply merges the change into t and maintains the completedAt timestamp:
// it is set on the transition to completed and cleared on the way back.
// The caller is responsible for bumping UpdatedAt.
func (c TodoChange) Apply(t *Todo, now time.Time) {
	if c.Title != nil {
		t.Title = *c.Title
	}
	if c.Description != nil {
		t.Description = *c.Description
	}
	if c.Priority != nil {
		t.Priority = *c.Priority
	}
	if c.Completed != nil {
		if *c.Completed && !t.Completed {
			at := now
			t.CompletedAt = &at
		} else if !*c.Completed {
			t.CompletedAt = nil
		}
		t.Completed = *c.Completed
	}
}
