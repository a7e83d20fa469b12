// Package task defines the unit of work run by the pipeline engine and the
// entry that binds it to concrete data.
//
// A Task declares a scope (run once, once per feeder, once per code unit),
// ordered input slots and ordered output slots. Slots have a name, a Go type
// and, for inputs, an optional default used when nothing is stored under the
// bound name.
//
// An Entry binds every slot of a task to a Binding. Bindings are either
// relative names, resolved by the engine against the cursor and the task's
// scope, or absolute ref.DataRef values. Arity is checked when the entry is
// built; a mismatch is a pipeline assembly bug, not a compilation error.
package task
