package parser

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
)

// Result is a successful parse.
type Result struct {
	// Type is the name of the parser type that produced the result, if any.
	Type  string
	Start int
	End   int
	// Text is the matched source, src[Start:End].
	Text string
	// Value is the backend specific parse tree.
	Value any
}

// Len returns the number of bytes consumed.
func (r *Result) Len() int { return r.End - r.Start }

// Parser parses source starting at offset.
type Parser interface {
	Parse(src string, offset int) (*Result, error)
}

// Func adapts a function to Parser.
type Func func(src string, offset int) (*Result, error)

func (f Func) Parse(src string, offset int) (*Result, error) { return f(src, offset) }

// SyntaxError reports input that started to match but is malformed.
type SyntaxError struct {
	// Offset is where the problem is, in bytes from the start of src.
	Offset int
	Diags  hcl.Diagnostics
}

func (e *SyntaxError) Error() string {
	if len(e.Diags) == 0 {
		return fmt.Sprintf("syntax error at offset %d", e.Offset)
	}
	return e.Diags.Error()
}

// CompileFunc turns a parse result into a value. vars holds named values
// the compilation may refer to.
type CompileFunc func(r *Result, vars map[string]any) (any, error)

// Type is a named parser with an optional compiler.
type Type struct {
	Name    string
	Parser  Parser
	Compile CompileFunc
}

// Parse runs the type's parser and stamps the result with the type name.
func (t *Type) Parse(src string, offset int) (*Result, error) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(src) {
		return nil, fmt.Errorf("offset %d is past the end of the source (%d bytes)", offset, len(src))
	}
	r, err := t.Parser.Parse(src, offset)
	if r != nil {
		r.Type = t.Name
	}
	return r, err
}

// Provider looks up parser types by name.
type Provider interface {
	Type(name string) (*Type, bool)
}

// Types is a Provider backed by a map.
type Types map[string]*Type

// NewTypes builds a Types from ts. A later type replaces an earlier one of
// the same name.
func NewTypes(ts ...*Type) Types {
	m := make(Types, len(ts))
	for _, t := range ts {
		m[t.Name] = t
	}
	return m
}

// Type implements Provider.
func (ts Types) Type(name string) (*Type, bool) {
	t, ok := ts[name]
	return t, ok
}

// Names lists the type names in sorted order.
func (ts Types) Names() []string {
	names := make([]string, 0, len(ts))
	for n := range ts {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Chain is a Provider that asks each provider in turn.
type Chain []Provider

// Type implements Provider.
func (c Chain) Type(name string) (*Type, bool) {
	for _, p := range c {
		if p == nil {
			continue
		}
		if t, ok := p.Type(name); ok {
			return t, true
		}
	}
	return nil, false
}
