// internal/ref/types.go
package ref

// FeederRef identifies one feeder by its index in the run's feeder list.
type FeederRef struct {
	Index int
}

// Feeder returns the handle of the feeder at index.
func Feeder(index int) FeederRef {
	return FeederRef{Index: index}
}

// CodeRef identifies one code unit as (feeder, code name). Code names are
// unique within a feeder only.
type CodeRef struct {
	Feeder FeederRef
	Name   string
}

// Code returns the handle of the code unit called name in the feeder at
// feederIndex.
func Code(feederIndex int, name string) CodeRef {
	return CodeRef{Feeder: Feeder(feederIndex), Name: name}
}

// ShareCode builds a CodeRef on top of an existing feeder handle.
func ShareCode(f FeederRef, name string) CodeRef {
	return CodeRef{Feeder: f, Name: name}
}

// FeederIndex is shorthand for c.Feeder.Index.
func (c CodeRef) FeederIndex() int {
	return c.Feeder.Index
}

// Scope classifies what a DataRef is attached to.
type Scope int

const (
	// ScopeGlobal is arbitrary data keyed only by name.
	ScopeGlobal Scope = iota
	// ScopeFeeder is data attached to one feeder.
	ScopeFeeder
	// ScopeCode is data attached to one code unit.
	ScopeCode
)

func (s Scope) String() string {
	switch s {
	case ScopeGlobal:
		return "global"
	case ScopeFeeder:
		return "feeder"
	case ScopeCode:
		return "code"
	default:
		return "unknown"
	}
}

// DataRef names a datum together with the container it lives in. The zero
// value is the global datum with an empty name.
type DataRef struct {
	scope Scope
	code  CodeRef
	name  string
}

// Global returns a reference to arbitrary (unattached) data.
func Global(name string) DataRef {
	return DataRef{scope: ScopeGlobal, name: name}
}

// OnFeeder returns a reference to data attached to feeder f.
func OnFeeder(f FeederRef, name string) DataRef {
	return DataRef{scope: ScopeFeeder, code: CodeRef{Feeder: f}, name: name}
}

// OnCode returns a reference to data attached to code unit c.
func OnCode(c CodeRef, name string) DataRef {
	return DataRef{scope: ScopeCode, code: c, name: name}
}

// Scope reports what the reference is attached to.
func (d DataRef) Scope() Scope { return d.scope }

// Name is the datum name.
func (d DataRef) Name() string { return d.name }

// FeederRef returns the feeder the datum is attached to. It is false for
// global data. Code-scoped data reports the feeder owning the code unit.
func (d DataRef) FeederRef() (FeederRef, bool) {
	if d.scope == ScopeGlobal {
		return FeederRef{}, false
	}
	return d.code.Feeder, true
}

// CodeRef returns the code unit the datum is attached to, if any.
func (d DataRef) CodeRef() (CodeRef, bool) {
	if d.scope != ScopeCode {
		return CodeRef{}, false
	}
	return d.code, true
}

// WithName returns a reference to another datum in the same container.
func (d DataRef) WithName(name string) DataRef {
	d.name = name
	return d
}
