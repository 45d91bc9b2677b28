package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"vidio/internal/logging"
)

// ErrAlreadyDiscovered is returned when Discover runs a second time.
var ErrAlreadyDiscovered = errors.New("commands already discovered")

// Command is the hook a command implementation exposes to be registered.
type Command interface {
	// Name is the user-facing verb, e.g. "to-gif".
	Name() string
	// Register attaches the command's cobra definition to parent.
	Register(parent *cobra.Command)
}

// Registry holds the commands attached to one root command.
type Registry struct {
	logger     *slog.Logger
	commands   map[string]Command
	discovered bool
}

// New creates an empty registry. A nil logger discards debug output.
func New(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Registry{
		logger:   logger.With(logging.FieldComponent, "registry"),
		commands: make(map[string]Command),
	}
}

// Discover registers every candidate implementing Command on parent and
// returns how many were registered. It may only run once per registry.
// Duplicate names panic.
func (r *Registry) Discover(parent *cobra.Command, candidates ...any) (int, error) {
	if r.discovered {
		return 0, ErrAlreadyDiscovered
	}
	r.discovered = true

	count := 0
	for _, candidate := range candidates {
		cmd, ok := candidate.(Command)
		if !ok {
			r.logger.Debug("skipping candidate without register hook", "type", fmt.Sprintf("%T", candidate))
			continue
		}
		name := cmd.Name()
		if _, exists := r.commands[name]; exists {
			panic(fmt.Sprintf("command with name '%s' already registered", name))
		}
		r.logger.Debug("registering command", "name", name)
		cmd.Register(parent)
		r.commands[name] = cmd
		count++
	}
	return count, nil
}

// Names returns the registered command names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the command registered under name.
func (r *Registry) Lookup(name string) (Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// NameFromIdentifier converts a Go-style identifier into a command name.
func NameFromIdentifier(identifier string) string {
	return strings.ReplaceAll(strings.TrimSpace(identifier), "_", "-")
}
