package store

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ametelin/localtodo/internal/logger"
	"github.com/ametelin/localtodo/models"
)

// Persisted keys. Todos and the pending log live under distinct keys so each
// can be read and written independently.
const (
	todosKey      = "localtodo.todos"
	pendingOpsKey = "localtodo.pending_ops"
)

type localStore struct {
	kv  KeyValueStore
	log *logger.Logger
	now func() time.Time

	mu sync.Mutex

	// snapshotRaw is the raw serialized value the cached snapshot was
	// decoded from. Comparing it against the substrate's current value is
	// the cheap change check that keeps Snapshot reference-stable.
	snapshotRaw string
	snapshot    []models.Todo

	listeners  map[int]func()
	nextListID int
}

// NewLocalStore constructs a LocalStore over the given substrate. The store
// owns its listener set and snapshot cache as instance state, so independent
// stores (e.g. in tests) never interfere with each other.
func NewLocalStore(kv KeyValueStore, log *logger.Logger) LocalStore {
	return &localStore{
		kv:        kv,
		log:       log,
		now:       time.Now,
		listeners: map[int]func(){},
	}
}

func (s *localStore) Snapshot() ([]models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadTodos()
}

func (s *localStore) Get(id string) (models.Todo, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	todos, err := s.loadTodos()
	if err != nil {
		return models.Todo{}, false, err
	}
	for _, t := range todos {
		if t.ID == id {
			return t, true, nil
		}
	}
	return models.Todo{}, false, nil
}

func (s *localStore) Subscribe(fn func()) func() {
	s.mu.Lock()
	id := s.nextListID
	s.nextListID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *localStore) Create(req models.CreateTodoRequest) (models.Todo, error) {
	now := s.now()
	todo := models.Todo{
		ID:          models.NewLocalID(),
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Completed:   req.Completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if todo.Priority == "" {
		todo.Priority = models.PriorityMedium
	}
	if todo.Completed {
		at := now
		todo.CompletedAt = &at
	}

	op := models.PendingOperation{
		ID:       models.NewOperationID(),
		Type:     models.OpCreate,
		EntityID: todo.ID,
		Data: &models.TodoChange{
			Title:       &todo.Title,
			Description: &todo.Description,
			Priority:    &todo.Priority,
			Completed:   &todo.Completed,
		},
		Timestamp: now,
	}

	err := s.mutate(op, func(todos []models.Todo) []models.Todo {
		// newest first, same as the UI renders it
		return append([]models.Todo{todo}, todos...)
	})
	if err != nil {
		return models.Todo{}, err
	}
	return todo, nil
}

func (s *localStore) Update(id string, change models.TodoChange) (models.Todo, bool, error) {
	now := s.now()
	var updated models.Todo
	var found bool

	change0 := change
	op := models.PendingOperation{
		ID:        models.NewOperationID(),
		Type:      models.OpUpdate,
		EntityID:  id,
		Data:      &change0,
		Timestamp: now,
	}

	err := s.mutate(op, func(todos []models.Todo) []models.Todo {
		for i := range todos {
			if todos[i].ID != id {
				continue
			}
			change.Apply(&todos[i], now)
			todos[i].UpdatedAt = now
			updated = todos[i]
			found = true
			break
		}
		return todos
	})
	if err != nil {
		return models.Todo{}, false, err
	}
	if !found {
		s.log.Debug().Str("id", id).Msg("update for unknown todo, cache untouched")
	}
	return updated, found, nil
}

func (s *localStore) Toggle(id string) (models.Todo, bool, error) {
	now := s.now()
	var toggled models.Todo
	var found bool

	op := models.PendingOperation{
		ID:        models.NewOperationID(),
		Type:      models.OpToggle,
		EntityID:  id,
		Timestamp: now,
	}

	err := s.mutate(op, func(todos []models.Todo) []models.Todo {
		for i := range todos {
			if todos[i].ID != id {
				continue
			}
			todos[i].Completed = !todos[i].Completed
			if todos[i].Completed {
				at := now
				todos[i].CompletedAt = &at
			} else {
				todos[i].CompletedAt = nil
			}
			todos[i].UpdatedAt = now
			toggled = todos[i]
			found = true
			break
		}
		return todos
	})
	if err != nil {
		return models.Todo{}, false, err
	}
	return toggled, found, nil
}

func (s *localStore) Delete(id string) (bool, error) {
	var found bool

	op := models.PendingOperation{
		ID:        models.NewOperationID(),
		Type:      models.OpDelete,
		EntityID:  id,
		Timestamp: s.now(),
	}

	err := s.mutate(op, func(todos []models.Todo) []models.Todo {
		out := todos[:0]
		for _, t := range todos {
			if t.ID == id {
				found = true
				continue
			}
			out = append(out, t)
		}
		return out
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

func (s *localStore) ClearCompleted() (int, error) {
	var removed int

	// one log entry for the whole bulk action, not one per todo
	op := models.PendingOperation{
		ID:        models.NewOperationID(),
		Type:      models.OpClearAll,
		Timestamp: s.now(),
	}

	err := s.mutate(op, func(todos []models.Todo) []models.Todo {
		out := todos[:0]
		for _, t := range todos {
			if t.Completed {
				removed++
				continue
			}
			out = append(out, t)
		}
		return out
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

func (s *localStore) BatchToggle(ids []string, completed bool) (int, error) {
	now := s.now()
	var affected int

	completed0 := completed
	op := models.PendingOperation{
		ID:        models.NewOperationID(),
		Type:      models.OpBatchToggle,
		EntityIDs: append([]string(nil), ids...),
		Completed: &completed0,
		Timestamp: now,
	}

	idSet := toSet(ids)
	err := s.mutate(op, func(todos []models.Todo) []models.Todo {
		for i := range todos {
			if !idSet[todos[i].ID] {
				continue
			}
			if completed && !todos[i].Completed {
				at := now
				todos[i].CompletedAt = &at
			} else if !completed {
				todos[i].CompletedAt = nil
			}
			todos[i].Completed = completed
			todos[i].UpdatedAt = now
			affected++
		}
		return todos
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

func (s *localStore) BatchDelete(ids []string) (int, error) {
	var removed int

	op := models.PendingOperation{
		ID:        models.NewOperationID(),
		Type:      models.OpBatchDelete,
		EntityIDs: append([]string(nil), ids...),
		Timestamp: s.now(),
	}

	idSet := toSet(ids)
	err := s.mutate(op, func(todos []models.Todo) []models.Todo {
		out := todos[:0]
		for _, t := range todos {
			if idSet[t.ID] {
				removed++
				continue
			}
			out = append(out, t)
		}
		return out
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

func (s *localStore) PendingOperations() ([]models.PendingOperation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ops, err := s.loadOps()
	if err != nil {
		return nil, err
	}
	return append([]models.PendingOperation(nil), ops...), nil
}

func (s *localStore) MarkSynced(opIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ops, err := s.loadOps()
	if err != nil {
		return err
	}

	acked := toSet(opIDs)
	kept := ops[:0]
	for _, op := range ops {
		if acked[op.ID] {
			continue
		}
		kept = append(kept, op)
	}
	if len(kept) == len(ops) {
		// nothing matched; acknowledging twice is a no-op
		return nil
	}
	return s.saveOps(kept)
}

func (s *localStore) UpdateTodoID(oldID, newID string) error {
	s.mu.Lock()
	var notify func()
	defer func() {
		s.mu.Unlock()
		if notify != nil {
			notify()
		}
	}()

	todos, err := s.loadTodos()
	if err != nil {
		return err
	}
	ops, err := s.loadOps()
	if err != nil {
		return err
	}

	remapped := append([]models.Todo(nil), todos...)
	for i := range remapped {
		if remapped[i].ID == oldID {
			remapped[i].ID = newID
		}
	}
	for i := range ops {
		if ops[i].EntityID == oldID {
			ops[i].EntityID = newID
		}
		for j := range ops[i].EntityIDs {
			if ops[i].EntityIDs[j] == oldID {
				ops[i].EntityIDs[j] = newID
			}
		}
	}

	// both rewrites are one logical update: persist todos and ops before
	// anyone can observe the new ID
	if err = s.saveTodosAndOps(remapped, ops); err != nil {
		return err
	}

	notify = s.collectListeners()
	return nil
}

func (s *localStore) Hydrate(remote []models.Todo) error {
	s.mu.Lock()
	var notify func()
	defer func() {
		s.mu.Unlock()
		if notify != nil {
			notify()
		}
	}()

	local, err := s.loadTodos()
	if err != nil {
		return err
	}

	byID := make(map[string]models.Todo, len(local))
	remoteTitles := make(map[string]bool, len(remote))
	for _, t := range local {
		byID[t.ID] = t
	}
	for _, t := range remote {
		remoteTitles[strings.ToLower(t.Title)] = true
	}

	merged := make([]models.Todo, 0, len(remote)+len(local))
	for _, rt := range remote {
		// the remote is authoritative for any ID it returns, except when
		// a local write raced the hydrate: then the locally newer copy
		// survives until the next drain pushes it out
		if lt, ok := byID[rt.ID]; ok && lt.UpdatedAt.After(rt.UpdatedAt) {
			merged = append(merged, lt)
			continue
		}
		merged = append(merged, rt)
	}

	seen := make(map[string]bool, len(remote))
	for _, rt := range remote {
		seen[rt.ID] = true
	}
	for _, lt := range local {
		if seen[lt.ID] {
			continue
		}
		// keep only unsynced local entities; matching titles are treated
		// as an already-synced duplicate awaiting its ID remap. This is a
		// heuristic, not an identity guarantee: two genuinely distinct
		// todos sharing a title would be collapsed here.
		if models.IsLocalID(lt.ID) && !remoteTitles[strings.ToLower(lt.Title)] {
			merged = append(merged, lt)
		}
	}

	// the pending log is deliberately untouched: only MarkSynced
	// acknowledges operations
	if err = s.saveTodos(merged); err != nil {
		return err
	}

	notify = s.collectListeners()
	return nil
}

// mutate applies fn to the todo collection and appends op to the pending log
// as one atomic unit under the store mutex, then notifies subscribers.
func (s *localStore) mutate(op models.PendingOperation, fn func([]models.Todo) []models.Todo) error {
	s.mu.Lock()
	var notify func()
	defer func() {
		s.mu.Unlock()
		if notify != nil {
			notify()
		}
	}()

	todos, err := s.loadTodos()
	if err != nil {
		return err
	}
	ops, err := s.loadOps()
	if err != nil {
		return err
	}

	next := fn(append([]models.Todo(nil), todos...))
	if err = s.saveTodosAndOps(next, append(ops, op)); err != nil {
		return err
	}

	notify = s.collectListeners()
	return nil
}

// collectListeners returns a closure invoking the current subscriber set.
// Must be called with the mutex held; the closure must be invoked after
// releasing it so a listener can re-enter Snapshot.
func (s *localStore) collectListeners() func() {
	fns := make([]func(), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	return func() {
		for _, fn := range fns {
			fn()
		}
	}
}

// loadTodos decodes the persisted collection, reusing the cached snapshot
// when the raw value is unchanged. Must be called with the mutex held.
func (s *localStore) loadTodos() ([]models.Todo, error) {
	raw, err := s.kv.Get(todosKey)
	if err != nil {
		return nil, fmt.Errorf("read todos key: %w", err)
	}
	if raw == s.snapshotRaw && s.snapshot != nil {
		return s.snapshot, nil
	}

	todos := []models.Todo{}
	if raw != "" {
		if err = json.Unmarshal([]byte(raw), &todos); err != nil {
			return nil, fmt.Errorf("decode todos: %w", err)
		}
	}
	s.snapshotRaw = raw
	s.snapshot = todos
	return todos, nil
}

// saveTodosAndOps persists the collection and the pending log as a pair. The
// substrate offers no multi-key transaction, so a failed ops write rolls the
// todos key back: a mutation must never land without its operation.
func (s *localStore) saveTodosAndOps(todos []models.Todo, ops []models.PendingOperation) error {
	prevRaw, prevSnapshot := s.snapshotRaw, s.snapshot

	if err := s.saveTodos(todos); err != nil {
		return err
	}
	if err := s.saveOps(ops); err != nil {
		if undoErr := s.kv.Set(todosKey, prevRaw); undoErr != nil {
			return fmt.Errorf("%w (restoring todos key: %v)", err, undoErr)
		}
		s.snapshotRaw, s.snapshot = prevRaw, prevSnapshot
		return err
	}
	return nil
}

func (s *localStore) saveTodos(todos []models.Todo) error {
	raw, err := json.Marshal(todos)
	if err != nil {
		return fmt.Errorf("encode todos: %w", err)
	}
	if err = s.kv.Set(todosKey, string(raw)); err != nil {
		return fmt.Errorf("write todos key: %w", err)
	}
	s.snapshotRaw = string(raw)
	s.snapshot = todos
	return nil
}

func (s *localStore) loadOps() ([]models.PendingOperation, error) {
	raw, err := s.kv.Get(pendingOpsKey)
	if err != nil {
		return nil, fmt.Errorf("read pending ops key: %w", err)
	}
	ops := []models.PendingOperation{}
	if raw != "" {
		if err = json.Unmarshal([]byte(raw), &ops); err != nil {
			return nil, fmt.Errorf("decode pending ops: %w", err)
		}
	}
	return ops, nil
}

func (s *localStore) saveOps(ops []models.PendingOperation) error {
	raw, err := json.Marshal(ops)
	if err != nil {
		return fmt.Errorf("encode pending ops: %w", err)
	}
	if err = s.kv.Set(pendingOpsKey, string(raw)); err != nil {
		return fmt.Errorf("write pending ops key: %w", err)
	}
	return nil
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
