package print

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/vk/compilekit/internal/config"
	"github.com/vk/compilekit/internal/registry"
	"github.com/vk/compilekit/internal/task"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// New returns a per-code task that writes its input to w, one line per code
// unit. Maps are printed one key per line in sorted order.
func New(name string, w io.Writer) task.Task {
	return task.Func(name, task.PerCode,
		[]task.Slot{task.Any("value")}, nil,
		func(inv task.Invocation, ins []any) ([]any, error) {
			where := name
			if c, ok := inv.Session.CurrentCode(); ok {
				where = c.String()
			}
			return nil, Write(w, where, ins[0])
		})
}

// Write prints value under a heading.
func Write(w io.Writer, heading string, value any) error {
	if _, err := fmt.Fprintf(w, "%s:\n", heading); err != nil {
		return err
	}

	m, ok := value.(map[string]any)
	if !ok {
		if value == nil {
			_, err := fmt.Fprintln(w, "      (null)")
			return err
		}
		_, err := fmt.Fprintf(w, "      %v\n", value)
		return err
	}

	// Sort keys for consistent output
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "      %s = %v\n", k, m[k]); err != nil {
			return err
		}
	}
	return nil
}

// Register registers the "print" task type. It writes to the environment's
// output, or standard output when there is none.
func (m *Module) Register(r *registry.Registry) {
	r.Register("print", func(def *config.Task, env registry.Env) (task.Task, error) {
		w := env.Out
		if w == nil {
			w = os.Stdout
		}
		return New(def.Name, w), nil
	})
}
