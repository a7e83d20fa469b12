package task

import (
	"context"
	"log/slog"
	"reflect"

	"github.com/vk/compilekit/internal/ctxlog"
	"github.com/vk/compilekit/internal/diag"
	"github.com/vk/compilekit/internal/ref"
	"github.com/vk/compilekit/internal/session"
)

// Scope says how often a task runs.
type Scope int

const (
	// Global tasks run once per compilation.
	Global Scope = iota
	// PerFeeder tasks run once for every feeder.
	PerFeeder
	// PerCode tasks run once for every code unit of every feeder.
	PerCode
)

func (s Scope) String() string {
	switch s {
	case Global:
		return "global"
	case PerFeeder:
		return "per-feeder"
	case PerCode:
		return "per-code"
	default:
		return "unknown"
	}
}

// DataScope is the data tier a task of this scope writes relative outputs
// to.
func (s Scope) DataScope() ref.Scope {
	switch s {
	case PerFeeder:
		return ref.ScopeFeeder
	case PerCode:
		return ref.ScopeCode
	default:
		return ref.ScopeGlobal
	}
}

// Slot is one declared input or output.
type Slot struct {
	Name string
	// Type is checked against values crossing the slot. Nil accepts anything.
	Type reflect.Type
	// Default replaces a missing input. Ignored on outputs.
	Default any
}

// Accepts reports whether v may flow through the slot. Nil always passes.
func (s Slot) Accepts(v any) bool {
	if s.Type == nil || v == nil {
		return true
	}
	return reflect.TypeOf(v).AssignableTo(s.Type)
}

// TypeOf returns the reflect.Type of T, including interface types.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// In declares an input slot of type T.
func In[T any](name string) Slot {
	return Slot{Name: name, Type: TypeOf[T]()}
}

// InDefault declares an input slot of type T with a default.
func InDefault[T any](name string, def T) Slot {
	return Slot{Name: name, Type: TypeOf[T](), Default: def}
}

// Out declares an output slot of type T.
func Out[T any](name string) Slot {
	return Slot{Name: name, Type: TypeOf[T]()}
}

// Any declares a slot that accepts any value.
func Any(name string) Slot {
	return Slot{Name: name}
}

// Invocation is what a task gets to see of the run it is part of.
type Invocation struct {
	Ctx context.Context
	// Index is the position of the entry in the pipeline.
	Index   int
	Entry   *Entry
	Session *session.Session
}

// Logger returns the run's logger.
func (inv Invocation) Logger() *slog.Logger {
	return ctxlog.FromContext(inv.Ctx)
}

// Report records a diagnostic at offset in the current code unit, or without
// an origin outside a per-code run.
func (inv Invocation) Report(kind diag.Kind, text string, cause error, offset int) diag.Message {
	return inv.Session.ReportAt(kind, text, cause, offset)
}

// Task is a named unit of work with fixed inputs, outputs and scope.
type Task interface {
	Name() string
	Scope() Scope
	Inputs() []Slot
	Outputs() []Slot
	// Run computes outputs from inputs. ins has one value per input slot,
	// already resolved and defaulted. A nil result means nothing to store.
	// A returned error stops the pipeline.
	Run(inv Invocation, ins []any) ([]any, error)
}

// Base carries the static description of a task. Embed it to get Name,
// Scope, Inputs and Outputs.
type Base struct {
	TaskName  string
	TaskScope Scope
	In        []Slot
	Out       []Slot
}

func (b Base) Name() string    { return b.TaskName }
func (b Base) Scope() Scope    { return b.TaskScope }
func (b Base) Inputs() []Slot  { return b.In }
func (b Base) Outputs() []Slot { return b.Out }

// RunFunc is the body of a Func task.
type RunFunc func(inv Invocation, ins []any) ([]any, error)

type funcTask struct {
	Base
	run RunFunc
}

// Func builds a task from a plain function.
func Func(name string, scope Scope, ins, outs []Slot, run RunFunc) Task {
	if run == nil {
		panic("task: Func " + name + " has no body")
	}
	return &funcTask{Base: Base{TaskName: name, TaskScope: scope, In: ins, Out: outs}, run: run}
}

func (f *funcTask) Run(inv Invocation, ins []any) ([]any, error) {
	return f.run(inv, ins)
}
