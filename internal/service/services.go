package service

import (
	"github.com/ametelin/localtodo/internal/adapter"
	"github.com/ametelin/localtodo/internal/command"
	"github.com/ametelin/localtodo/internal/logger"
	"github.com/ametelin/localtodo/internal/store"
)

// ClientServices wires the client-side application layer: the optimistic todo
// service, the command registry over it, and the reconciliation machinery.
type ClientServices struct {
	Todos      TodoService
	Registry   *command.Registry
	Reconciler Reconciler
	SyncJob    SyncJob
}

// NewClientServices builds the full client service graph over the local store
// and remote API.
func NewClientServices(localStore store.LocalStore, remote adapter.RemoteAPI, log *logger.Logger) *ClientServices {
	todos := NewTodoService(localStore, log.GetChildLogger())
	registry := command.NewRegistry(log.GetChildLogger())
	RegisterTodoCommands(registry, todos)

	reconciler := NewReconciler(localStore, remote, log.GetChildLogger())

	return &ClientServices{
		Todos:      todos,
		Registry:   registry,
		Reconciler: reconciler,
		SyncJob:    NewSyncJob(reconciler, log.GetChildLogger()),
	}
}
