// Package datastore defines the interface for the compilation data store: the
// mutable container that holds every datum produced or consumed while a
// pipeline runs.
//
// # Three Tiers
//
// Data is addressed by the handles in package ref and lives in one of three
// tiers:
//   - **Arbitrary** data, keyed only by name, insertion ordered.
//   - **Feeder** data, one map per feeder.
//   - **Code** data, one map per code unit of every feeder.
//
// # Shape vs Values
//
// The shape of a store (feeder count and the code names of each feeder) is
// fixed when the store is built. Only values change afterwards. This mirrors
// the topology/state split used elsewhere: shape queries never race with value
// writes because the shape cannot change.
//
// # Failure Policy
//
// Writing feeder or code data at a feeder index outside [0, FeederCount())
// fails with ErrIndexOutOfRange. Writing code data under a code name the
// feeder does not have is a silent no-op that reports stored == false. Reads
// never fail; missing data reads as (nil, false).
//
// Implementations are not safe for concurrent use. A pipeline run is strictly
// sequential.
package datastore

import (
	"errors"

	"github.com/vk/compilekit/internal/ref"
)

// ErrIndexOutOfRange is returned when a feeder index does not name a feeder
// of the store.
var ErrIndexOutOfRange = errors.New("feeder index is out of range")

// Shape is the read-only structure of a store.
type Shape interface {
	// FeederCount returns the number of feeders.
	FeederCount() int

	// CodeCount returns the number of code units of the feeder, or 0 when
	// the index does not name a feeder.
	CodeCount(feederIndex int) int

	// CodeName returns the name of the code unit at (feederIndex, codeIndex),
	// or "" when either index is out of range.
	CodeName(feederIndex, codeIndex int) string
}

// Store is the interface for the compilation data store.
type Store interface {
	Shape

	// SetArbitrary inserts or overwrites a global datum and returns the value.
	// The first insertion of a name fixes its position in ArbitraryNames.
	SetArbitrary(name string, value any) any

	// GetArbitrary returns a global datum.
	GetArbitrary(name string) (any, bool)

	// ArbitraryNames lists global data names in insertion order.
	ArbitraryNames() []string

	// SetFeederData stores a datum on a feeder. It returns ErrIndexOutOfRange
	// when the feeder does not exist.
	SetFeederData(f ref.FeederRef, name string, value any) error

	// GetFeederData returns a datum stored on a feeder.
	GetFeederData(f ref.FeederRef, name string) (any, bool)

	// SetCodeData stores a datum on a code unit. It returns
	// ErrIndexOutOfRange when the feeder does not exist, and (false, nil)
	// without storing anything when the feeder has no such code name.
	SetCodeData(c ref.CodeRef, name string, value any) (bool, error)

	// GetCodeData returns a datum stored on a code unit.
	GetCodeData(c ref.CodeRef, name string) (any, bool)

	// Contains reports whether the container addressed by r exists and holds
	// r's name.
	Contains(r ref.DataRef) bool

	// Freeze asks the store to become immutable. Freezing is accepted but
	// not enforced: it always returns true and writes keep working.
	Freeze() bool

	// FreezeData asks for one datum to become immutable. Accepted but not
	// enforced, like Freeze.
	FreezeData(r ref.DataRef) bool
}

// Get reads the datum addressed by r from s, dispatching on r's scope.
func Get(s Store, r ref.DataRef) (any, bool) {
	switch r.Scope() {
	case ref.ScopeCode:
		c, _ := r.CodeRef()
		return s.GetCodeData(c, r.Name())
	case ref.ScopeFeeder:
		f, _ := r.FeederRef()
		return s.GetFeederData(f, r.Name())
	default:
		return s.GetArbitrary(r.Name())
	}
}

// Set writes the datum addressed by r into s, dispatching on r's scope. The
// stored result follows the per-scope policy: false with a nil error means
// the code name was unknown and nothing was written.
func Set(s Store, r ref.DataRef, value any) (bool, error) {
	switch r.Scope() {
	case ref.ScopeCode:
		c, _ := r.CodeRef()
		return s.SetCodeData(c, r.Name(), value)
	case ref.ScopeFeeder:
		f, _ := r.FeederRef()
		if err := s.SetFeederData(f, r.Name(), value); err != nil {
			return false, err
		}
		return true, nil
	default:
		s.SetArbitrary(r.Name(), value)
		return true, nil
	}
}

// CodeNames returns the code names of a feeder in index order.
func CodeNames(s Shape, feederIndex int) []string {
	n := s.CodeCount(feederIndex)
	names := make([]string, 0, n)
	for i := 0; i < n; i++ {
		names = append(names, s.CodeName(feederIndex, i))
	}
	return names
}
