package env_vars

import (
	"os"
	"sort"
	"strings"

	"github.com/vk/compilekit/internal/config"
	"github.com/vk/compilekit/internal/registry"
	"github.com/vk/compilekit/internal/task"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Read returns the environment variables whose names start with prefix.
func Read(prefix string) map[string]any {
	envMap := make(map[string]any)
	for _, e := range os.Environ() {
		pair := strings.SplitN(e, "=", 2)
		if len(pair) == 2 && strings.HasPrefix(pair[0], prefix) {
			envMap[pair[0]] = pair[1]
		}
	}
	return envMap
}

// New returns a global task that outputs the environment, filtered by
// prefix, as a map.
func New(name, prefix string) task.Task {
	return task.Func(name, task.Global, nil,
		[]task.Slot{task.Out[map[string]any]("env")},
		func(inv task.Invocation, _ []any) ([]any, error) {
			env := Read(prefix)
			names := make([]string, 0, len(env))
			for k := range env {
				names = append(names, k)
			}
			sort.Strings(names)
			inv.Logger().Debug("Environment captured.", "count", len(env), "names", names)
			return []any{env}, nil
		})
}

// Register registers the "env_vars" task type. Its "prefix" option filters
// variable names.
func (m *Module) Register(r *registry.Registry) {
	r.Register("env_vars", func(def *config.Task, _ registry.Env) (task.Task, error) {
		prefix, _ := def.Option("prefix", "").(string)
		return New(def.Name, prefix), nil
	})
}
