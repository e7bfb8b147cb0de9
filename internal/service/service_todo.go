package service

import (
	"github.com/ametelin/localtodo/internal/logger"
	"github.com/ametelin/localtodo/internal/store"
	"github.com/ametelin/localtodo/models"
)

// todoService is a thin application layer over [store.LocalStore]. Filtering
// and statistics run against the in-memory snapshot; everything else
// delegates straight to the store.
type todoService struct {
	store  store.LocalStore
	logger *logger.Logger
}

// NewTodoService constructs a [TodoService] over the given local store.
func NewTodoService(localStore store.LocalStore, log *logger.Logger) TodoService {
	return &todoService{
		store:  localStore,
		logger: log,
	}
}

func (s *todoService) Create(req models.CreateTodoRequest) (models.Todo, error) {
	return s.store.Create(req)
}

func (s *todoService) Get(id string) (models.Todo, bool, error) {
	return s.store.Get(id)
}

func (s *todoService) List(filter models.TodoFilter) ([]models.Todo, error) {
	todos, err := s.store.Snapshot()
	if err != nil {
		return nil, err
	}
	return filter.Apply(todos), nil
}

func (s *todoService) Update(id string, change models.TodoChange) (models.Todo, bool, error) {
	return s.store.Update(id, change)
}

func (s *todoService) Toggle(id string) (models.Todo, bool, error) {
	return s.store.Toggle(id)
}

func (s *todoService) Delete(id string) (bool, error) {
	return s.store.Delete(id)
}

func (s *todoService) ClearCompleted() (int, error) {
	return s.store.ClearCompleted()
}

func (s *todoService) BatchToggle(ids []string, completed bool) (int, error) {
	return s.store.BatchToggle(ids, completed)
}

func (s *todoService) BatchDelete(ids []string) (int, error) {
	return s.store.BatchDelete(ids)
}

func (s *todoService) Stats() (models.TodoStats, error) {
	todos, err := s.store.Snapshot()
	if err != nil {
		return models.TodoStats{}, err
	}
	return models.ComputeStats(todos), nil
}

func (s *todoService) PendingCount() (int, error) {
	ops, err := s.store.PendingOperations()
	if err != nil {
		return 0, err
	}
	return len(ops), nil
}

func (s *todoService) Subscribe(fn func()) func() {
	return s.store.Subscribe(fn)
}
