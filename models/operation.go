package models

import (
	"time"

	"github.com/google/uuid"
)

// OperationType identifies the kind of local mutation recorded in the
// pending-operation log.
type OperationType string

const (
	OpCreate      OperationType = "create"
	OpUpdate      OperationType = "update"
	OpToggle      OperationType = "toggle"
	OpDelete      OperationType = "delete"
	OpClearAll    OperationType = "clear-all"
	OpBatchToggle OperationType = "batch-toggle"
	OpBatchDelete OperationType = "batch-delete"
)

// PendingOperation is an immutable log record of one accepted local mutation.
// It is retained until the remote backend acknowledges it; the log doubles as
// the retry queue, so an unacknowledged operation is by definition still
// pending.
type PendingOperation struct {
	ID        string        `json:"id"`
	Type      OperationType `json:"type"`
	EntityID  string        `json:"entityId,omitempty"`
	EntityIDs []string      `json:"entityIds,omitempty"`
	Data      *TodoChange   `json:"data,omitempty"`
	Completed *bool         `json:"completed,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// NewOperationID returns a fresh pending-operation identifier.
func NewOperationID() string {
	return "op-" + uuid.NewString()
}

// References reports whether the operation targets the given entity, either
// directly or as part of a batch.
func (op PendingOperation) References(id string) bool {
	if op.EntityID == id {
		return true
	}
	for _, eid := range op.EntityIDs {
		if eid == id {
			return true
		}
	}
	return false
}
