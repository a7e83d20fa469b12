package registry

import (
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/vk/compilekit/internal/config"
	"github.com/vk/compilekit/internal/parser"
	"github.com/vk/compilekit/internal/task"
)

// Module is the interface that all task modules must implement to be
// registered.
type Module interface {
	Register(r *Registry)
}

// Env is what a factory can use besides the task definition.
type Env struct {
	// Types resolves parser type names.
	Types parser.Provider
	// Out is where tasks that print write to.
	Out io.Writer
}

// Factory builds a task from its definition.
type Factory func(def *config.Task, env Env) (task.Task, error)

// Registry holds the registered task factories for a single application
// instance.
type Registry struct {
	factories map[string]Factory
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under a task type name.
func (r *Registry) Register(typeName string, f Factory) {
	if _, exists := r.factories[typeName]; exists {
		panic(fmt.Sprintf("task type '%s' already registered", typeName))
	}
	if f == nil {
		panic(fmt.Sprintf("task type '%s' registered without a factory", typeName))
	}
	slog.Debug("Registering task type.", "type", typeName)
	r.factories[typeName] = f
}

// Factory returns the factory registered under typeName.
func (r *Registry) Factory(typeName string) (Factory, bool) {
	f, ok := r.factories[typeName]
	return f, ok
}

// Types lists the registered task type names in sorted order.
func (r *Registry) Types() []string {
	names := make([]string, 0, len(r.factories))
	for n := range r.factories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ParserType resolves def.Parser in env. Factories of parsing tasks use it.
func ParserType(def *config.Task, env Env) (*parser.Type, error) {
	if def.Parser == "" {
		return nil, fmt.Errorf("task '%s': 'parser' is required for type '%s'", def.Name, def.Type)
	}
	if env.Types == nil {
		return nil, fmt.Errorf("task '%s': no parser types available", def.Name)
	}
	typ, ok := env.Types.Type(def.Parser)
	if !ok {
		return nil, fmt.Errorf("task '%s': unknown parser type '%s'", def.Name, def.Parser)
	}
	return typ, nil
}
