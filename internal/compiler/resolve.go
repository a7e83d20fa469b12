package compiler

import (
	"fmt"

	"github.com/vk/compilekit/internal/datastore"
	"github.com/vk/compilekit/internal/ref"
	"github.com/vk/compilekit/internal/session"
	"github.com/vk/compilekit/internal/task"
)

// lookup reads a binding, searching a relative name from the task's scope
// outwards.
func lookup(s *session.Session, scope task.Scope, b task.Binding) (any, bool) {
	if r, ok := b.Ref(); ok {
		return datastore.Get(s, r)
	}
	if scope == task.PerCode {
		if c, ok := s.CurrentCode(); ok {
			if v, ok := s.GetCodeData(c, b.Name()); ok {
				return v, true
			}
		}
	}
	if scope == task.PerCode || scope == task.PerFeeder {
		if f, ok := s.CurrentFeeder(); ok {
			if v, ok := s.GetFeederData(f, b.Name()); ok {
				return v, true
			}
		}
	}
	return s.GetArbitrary(b.Name())
}

// target returns the datum a binding writes to.
func target(s *session.Session, scope task.Scope, b task.Binding) (ref.DataRef, error) {
	if r, ok := b.Ref(); ok {
		return r, nil
	}
	switch scope {
	case task.PerCode:
		c, ok := s.CurrentCode()
		if !ok {
			return ref.DataRef{}, fmt.Errorf("no current code unit for output %q", b.Name())
		}
		return ref.OnCode(c, b.Name()), nil
	case task.PerFeeder:
		f, ok := s.CurrentFeeder()
		if !ok {
			return ref.DataRef{}, fmt.Errorf("no current feeder for output %q", b.Name())
		}
		return ref.OnFeeder(f, b.Name()), nil
	default:
		return ref.Global(b.Name()), nil
	}
}

func resolveInputs(s *session.Session, t task.Task, bindings []task.Binding) ([]any, error) {
	slots := t.Inputs()
	ins := make([]any, len(slots))
	for i, slot := range slots {
		v, ok := lookup(s, t.Scope(), bindings[i])
		if !ok {
			v = slot.Default
		}
		if !slot.Accepts(v) {
			return nil, fmt.Errorf("input %q (%s) expects %s but got %T", slot.Name, bindings[i], slot.Type, v)
		}
		ins[i] = v
	}
	return ins, nil
}

// storeOutputs writes outs through the output bindings. Writes to a code
// name the feeder does not have are dropped, as the store does.
func storeOutputs(s *session.Session, t task.Task, bindings []task.Binding, outs []any) error {
	slots := t.Outputs()
	if len(outs) != len(slots) {
		return fmt.Errorf("returned %d outputs for %d slots", len(outs), len(slots))
	}
	for i, slot := range slots {
		if !slot.Accepts(outs[i]) {
			return fmt.Errorf("output %q (%s) expects %s but got %T", slot.Name, bindings[i], slot.Type, outs[i])
		}
	}
	for i := range slots {
		r, err := target(s, t.Scope(), bindings[i])
		if err != nil {
			return err
		}
		if _, err := datastore.Set(s, r, outs[i]); err != nil {
			return err
		}
	}
	return nil
}
