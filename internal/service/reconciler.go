package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ametelin/localtodo/internal/adapter"
	"github.com/ametelin/localtodo/internal/logger"
	"github.com/ametelin/localtodo/internal/store"
	"github.com/ametelin/localtodo/models"
)

// reconciler replays the pending-operation log against the remote backend.
// One Drain pass walks the log in FIFO order; acknowledged operations are
// removed via MarkSynced, failed ones stay pending and hold back every later
// operation that touches the same entity.
type reconciler struct {
	store  store.LocalStore
	remote adapter.RemoteAPI
	logger *logger.Logger
}

// NewReconciler constructs a [Reconciler] over the local store and remote API.
func NewReconciler(localStore store.LocalStore, remote adapter.RemoteAPI, log *logger.Logger) Reconciler {
	return &reconciler{
		store:  localStore,
		remote: remote,
		logger: log,
	}
}

func (r *reconciler) Drain(ctx context.Context) (int, error) {
	ops, err := r.store.PendingOperations()
	if err != nil {
		return 0, fmt.Errorf("load pending operations: %w", err)
	}
	if len(ops) == 0 {
		return 0, nil
	}

	// Entities that were created locally and deleted before ever syncing.
	// Every operation touching them is moot and can be acknowledged without
	// a remote call.
	pruned := prunableEntities(ops)

	remap := make(map[string]string) // local ID -> remote ID, this pass
	blocked := make(map[string]bool) // entities with a failed op this pass
	synced := 0

	for _, op := range ops {
		if err = ctx.Err(); err != nil {
			return synced, err
		}

		// Remap before anything else: blocking and failure tracking must see
		// the same entity ID for every op in the chain, or an op queued under
		// the pre-create local ID could slip past a failure recorded under
		// the remote one. Pruned entities never enter the remap because their
		// create is acknowledged without a replay.
		op = remapOperation(op, remap)

		if isBlocked(op, blocked) {
			r.logger.Debug().Str("op_id", op.ID).Str("type", string(op.Type)).
				Msg("operation held back behind a failed one")
			continue
		}

		if mootErr := r.ackIfMoot(op, pruned, &synced); mootErr != nil {
			return synced, mootErr
		} else if op.EntityID != "" && pruned[op.EntityID] {
			continue
		}

		remoteID, replayErr := r.replay(ctx, op, pruned)
		if replayErr != nil {
			r.logger.Warn().Err(replayErr).Str("op_id", op.ID).Str("type", string(op.Type)).
				Msg("replay failed, operation stays pending")
			block(op, blocked)
			continue
		}

		if op.Type == models.OpCreate && remoteID != "" {
			if err = r.store.UpdateTodoID(op.EntityID, remoteID); err != nil {
				return synced, fmt.Errorf("remap todo id: %w", err)
			}
			remap[op.EntityID] = remoteID
		}

		if err = r.store.MarkSynced([]string{op.ID}); err != nil {
			return synced, fmt.Errorf("mark operation synced: %w", err)
		}
		synced++
	}

	return synced, nil
}

func (r *reconciler) Hydrate(ctx context.Context) error {
	remote, err := r.remote.List(ctx)
	if err != nil {
		return fmt.Errorf("list remote todos: %w", err)
	}
	if err = r.store.Hydrate(remote); err != nil {
		return fmt.Errorf("hydrate local store: %w", err)
	}
	r.logger.Debug().Int("remote_count", len(remote)).Msg("hydrated local store")
	return nil
}

func (r *reconciler) FullSync(ctx context.Context) error {
	synced, err := r.Drain(ctx)
	if err != nil {
		return fmt.Errorf("drain: %w", err)
	}
	r.logger.Debug().Int("synced", synced).Msg("drain pass finished")

	return r.Hydrate(ctx)
}

// ackIfMoot acknowledges a single-entity operation on a pruned entity.
func (r *reconciler) ackIfMoot(op models.PendingOperation, pruned map[string]bool, synced *int) error {
	if op.EntityID == "" || !pruned[op.EntityID] {
		return nil
	}
	if err := r.store.MarkSynced([]string{op.ID}); err != nil {
		return fmt.Errorf("mark moot operation synced: %w", err)
	}
	r.logger.Debug().Str("op_id", op.ID).Str("entity_id", op.EntityID).
		Msg("pruned operation for entity deleted before sync")
	*synced++
	return nil
}

// replay performs the remote call for one operation. For creates it returns
// the server-assigned ID. Batch operations drop pruned members first; if
// nothing remains the operation is acknowledged without a remote call.
func (r *reconciler) replay(ctx context.Context, op models.PendingOperation, pruned map[string]bool) (string, error) {
	switch op.Type {
	case models.OpCreate:
		req := models.CreateTodoRequest{}
		if op.Data != nil {
			if op.Data.Title != nil {
				req.Title = *op.Data.Title
			}
			if op.Data.Description != nil {
				req.Description = *op.Data.Description
			}
			if op.Data.Priority != nil {
				req.Priority = *op.Data.Priority
			}
			if op.Data.Completed != nil {
				req.Completed = *op.Data.Completed
			}
		}
		return r.remote.Create(ctx, req)

	case models.OpUpdate:
		change := models.TodoChange{}
		if op.Data != nil {
			change = *op.Data
		}
		return "", r.remote.Update(ctx, op.EntityID, change)

	case models.OpToggle:
		return "", r.remote.Toggle(ctx, op.EntityID)

	case models.OpDelete:
		err := r.remote.Delete(ctx, op.EntityID)
		if errors.Is(err, adapter.ErrNotFound) {
			// already gone remotely, same outcome
			return "", nil
		}
		return "", err

	case models.OpClearAll:
		return "", r.remote.ClearCompleted(ctx)

	case models.OpBatchToggle:
		ids := withoutPruned(op.EntityIDs, pruned)
		if len(ids) == 0 {
			return "", nil
		}
		completed := false
		if op.Completed != nil {
			completed = *op.Completed
		}
		return "", r.remote.BatchToggle(ctx, ids, completed)

	case models.OpBatchDelete:
		ids := withoutPruned(op.EntityIDs, pruned)
		if len(ids) == 0 {
			return "", nil
		}
		return "", r.remote.BatchDelete(ctx, ids)
	}

	return "", fmt.Errorf("unknown operation type %q", op.Type)
}

// prunableEntities returns the local-only entity IDs that have a pending
// delete somewhere in the log. Their whole operation history nets out to
// nothing the remote ever needs to see.
func prunableEntities(ops []models.PendingOperation) map[string]bool {
	pruned := make(map[string]bool)
	for _, op := range ops {
		switch op.Type {
		case models.OpDelete:
			if models.IsLocalID(op.EntityID) {
				pruned[op.EntityID] = true
			}
		case models.OpBatchDelete:
			for _, id := range op.EntityIDs {
				if models.IsLocalID(id) {
					pruned[id] = true
				}
			}
		}
	}
	return pruned
}

func remapOperation(op models.PendingOperation, remap map[string]string) models.PendingOperation {
	if len(remap) == 0 {
		return op
	}
	if newID, ok := remap[op.EntityID]; ok {
		op.EntityID = newID
	}
	if len(op.EntityIDs) > 0 {
		ids := make([]string, len(op.EntityIDs))
		for i, id := range op.EntityIDs {
			if newID, ok := remap[id]; ok {
				ids[i] = newID
			} else {
				ids[i] = id
			}
		}
		op.EntityIDs = ids
	}
	return op
}

func isBlocked(op models.PendingOperation, blocked map[string]bool) bool {
	if len(blocked) == 0 {
		return false
	}
	if blocked[op.EntityID] {
		return true
	}
	for _, id := range op.EntityIDs {
		if blocked[id] {
			return true
		}
	}
	return false
}

func block(op models.PendingOperation, blocked map[string]bool) {
	if op.EntityID != "" {
		blocked[op.EntityID] = true
	}
	for _, id := range op.EntityIDs {
		blocked[id] = true
	}
}

func withoutPruned(ids []string, pruned map[string]bool) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !pruned[id] {
			out = append(out, id)
		}
	}
	return out
}
