package config

import "github.com/zclconf/go-cty/cty"

// Model is the unified, format-agnostic representation of a pipeline
// definition.
type Model struct {
	Pipeline *Pipeline
}

// Pipeline is an ordered list of tasks plus what they need.
type Pipeline struct {
	Name string
	// Data is copied into the session's global data before the first task.
	Data map[string]any
	// Tokens are pattern parser types available to the tasks by name.
	Tokens []*Token
	Tasks  []*Task
}

// Token is a named regular expression parser type.
type Token struct {
	Name    string
	Pattern string
}

// Task is one pipeline entry: a task type from the registry plus its
// bindings.
type Task struct {
	Name string
	// Type names the registry factory.
	Type string
	// Parser names the parser type for parsing and compiling tasks.
	Parser string
	// Inputs and Outputs are binding strings, either a plain name or an
	// absolute data reference such as data["x"].
	Inputs  []string
	Outputs []string

	// FromParseResult and SaveParseResult shape compile tasks.
	FromParseResult bool
	SaveParseResult bool
	// ResultType converts compiled values. cty.NilType when unset.
	ResultType cty.Type

	// Options holds any other attributes for the factory.
	Options map[string]any
}

// Option returns a factory option or def when it is missing.
func (t *Task) Option(name string, def any) any {
	if v, ok := t.Options[name]; ok && v != nil {
		return v
	}
	return def
}
