package task

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vk/compilekit/internal/ref"
)

var (
	// ErrArity is returned when the number of bindings does not match the
	// task's slots.
	ErrArity = errors.New("incompatible binding count")
	// ErrNilTask is returned when an entry is built without a task.
	ErrNilTask = errors.New("entry has no task")
	// ErrEmptyBinding is returned for a relative binding with an empty name.
	ErrEmptyBinding = errors.New("empty binding name")
)

// Binding names where a slot reads from or writes to.
type Binding struct {
	name     string
	ref      ref.DataRef
	absolute bool
}

// Bind returns a relative binding. The engine resolves it against the task's
// scope and the cursor.
func Bind(name string) Binding {
	return Binding{name: name}
}

// BindRef returns a binding to a fixed datum.
func BindRef(r ref.DataRef) Binding {
	return Binding{name: r.Name(), ref: r, absolute: true}
}

// Names turns plain names into relative bindings.
func Names(names ...string) []Binding {
	bs := make([]Binding, len(names))
	for i, n := range names {
		bs[i] = Bind(n)
	}
	return bs
}

// ParseBinding reads a binding from text. Text in data reference form (for
// example `data["x"]` or `feeder[0].data["x"]`) is absolute; anything else
// is a relative name.
func ParseBinding(s string) (Binding, error) {
	if strings.HasPrefix(s, "data[") || strings.HasPrefix(s, "feeder[") {
		r, err := ref.ParseData(s)
		if err != nil {
			return Binding{}, err
		}
		return BindRef(r), nil
	}
	if s == "" {
		return Binding{}, ErrEmptyBinding
	}
	return Bind(s), nil
}

// Name is the data name the binding addresses.
func (b Binding) Name() string { return b.name }

// Ref returns the fixed datum of an absolute binding.
func (b Binding) Ref() (ref.DataRef, bool) { return b.ref, b.absolute }

func (b Binding) String() string {
	if b.absolute {
		return b.ref.String()
	}
	return b.name
}

// Entry binds a task to the data it reads and writes.
type Entry struct {
	task Task
	ins  []Binding
	outs []Binding
}

// NewEntry validates the bindings against the task's slots.
func NewEntry(t Task, ins, outs []Binding) (*Entry, error) {
	if t == nil {
		return nil, ErrNilTask
	}
	if len(ins) != len(t.Inputs()) {
		return nil, fmt.Errorf("task %q: %w: %d inputs for %d slots", t.Name(), ErrArity, len(ins), len(t.Inputs()))
	}
	if len(outs) != len(t.Outputs()) {
		return nil, fmt.Errorf("task %q: %w: %d outputs for %d slots", t.Name(), ErrArity, len(outs), len(t.Outputs()))
	}
	for _, bs := range [][]Binding{ins, outs} {
		for i, b := range bs {
			if _, abs := b.Ref(); !abs && b.name == "" {
				return nil, fmt.Errorf("task %q binding #%d: %w", t.Name(), i, ErrEmptyBinding)
			}
		}
	}
	return &Entry{
		task: t,
		ins:  append([]Binding(nil), ins...),
		outs: append([]Binding(nil), outs...),
	}, nil
}

// MustEntry is NewEntry that panics on error. Use it while assembling a
// fixed pipeline.
func MustEntry(t Task, ins, outs []Binding) *Entry {
	e, err := NewEntry(t, ins, outs)
	if err != nil {
		panic(err)
	}
	return e
}

// Task returns the bound task.
func (e *Entry) Task() Task { return e.task }

// Inputs returns the input bindings in slot order.
func (e *Entry) Inputs() []Binding { return e.ins }

// Outputs returns the output bindings in slot order.
func (e *Entry) Outputs() []Binding { return e.outs }

func (e *Entry) String() string {
	in := make([]string, len(e.ins))
	for i, b := range e.ins {
		in[i] = b.String()
	}
	out := make([]string, len(e.outs))
	for i, b := range e.outs {
		out[i] = b.String()
	}
	return fmt.Sprintf("%s(%s) -> (%s)", e.task.Name(), strings.Join(in, ", "), strings.Join(out, ", "))
}
