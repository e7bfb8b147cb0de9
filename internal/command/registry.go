package command

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ametelin/localtodo/internal/logger"
)

// Handler executes a command against validated input and returns the result
// envelope. Handlers may return Fail results freely; they should not panic,
// but the registry recovers if one does.
type Handler func(ctx context.Context, input Input) Result

// Command is a named, schema-described operation.
type Command struct {
	Name        string
	Description string
	Parameters  []Parameter
	Handler     Handler
}

// Registry dispatches commands by name. Execute never panics across the
// public boundary and always returns a well-formed [Result].
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
	logger   *logger.Logger
}

// NewRegistry constructs an empty command registry.
func NewRegistry(log *logger.Logger) *Registry {
	return &Registry{
		commands: make(map[string]Command),
		logger:   log,
	}
}

// Register adds a command. Registering a duplicate name replaces the earlier
// definition; the replacement is logged.
func (r *Registry) Register(cmd Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.commands[cmd.Name]; exists {
		r.logger.Warn().Str("command", cmd.Name).Msg("replacing registered command")
	}
	r.commands[cmd.Name] = cmd
}

// Get returns the command definition and whether it is registered.
func (r *Registry) Get(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Has reports whether a command name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// List returns the registered command names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Commands returns the registered command definitions in name order.
func (r *Registry) Commands() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmds := make([]Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
	return cmds
}

// Execute dispatches the named command. The result always carries execution
// time metadata. Failure modes, in order of checking:
//   - unknown name → COMMAND_NOT_FOUND listing the registered names
//   - input violating the parameter schema → VALIDATION_ERROR
//   - handler panic → EXECUTION_ERROR
func (r *Registry) Execute(ctx context.Context, name string, input Input) (result Result) {
	started := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error().Str("command", name).Any("panic", rec).Msg("command handler panicked")
			result = Fail(ExecutionError(fmt.Errorf("command '%s' panicked: %v", name, rec)))
		}
		stamp(&result, started)
	}()

	cmd, ok := r.Get(name)
	if !ok {
		r.logger.Warn().Str("command", name).Msg("unknown command")
		return Fail(CommandNotFoundError(name, r.List()))
	}

	if input == nil {
		input = Input{}
	}
	if verr := validateInput(cmd.Parameters, input); verr != nil {
		return Fail(verr)
	}

	r.logger.Debug().Str("command", name).Msg("executing command")
	return cmd.Handler(ctx, input)
}

func stamp(result *Result, started time.Time) {
	if result.Metadata == nil {
		result.Metadata = &Metadata{}
	}
	result.Metadata.ExecutionTimeMs = time.Since(started).Milliseconds()
	result.Metadata.Timestamp = started.UTC().Format(time.RFC3339)
}
