package inmemorydata

import (
	"fmt"

	"github.com/vk/compilekit/internal/datastore"
	"github.com/vk/compilekit/internal/ref"
)

// feederRecord owns everything attached to one feeder.
type feederRecord struct {
	codeNames []string
	codeIndex map[string]int
	data      map[string]any   // nil until first write
	codeData  []map[string]any // entries nil until first write
}

func newFeederRecord(codeNames []string) *feederRecord {
	rec := &feederRecord{
		codeNames: append([]string(nil), codeNames...),
		codeIndex: make(map[string]int, len(codeNames)),
		codeData:  make([]map[string]any, len(codeNames)),
	}
	for i, name := range codeNames {
		if _, dup := rec.codeIndex[name]; !dup {
			rec.codeIndex[name] = i
		}
	}
	return rec
}

// Simple is a store that owns all of its data.
type Simple struct {
	arbitrary map[string]any
	order     []string
	feeders   []*feederRecord
}

var _ datastore.Store = (*Simple)(nil)

// NewSimple creates a store with one feeder per element of codeNames; each
// element lists that feeder's code names in index order.
func NewSimple(codeNames ...[]string) *Simple {
	s := &Simple{feeders: make([]*feederRecord, len(codeNames))}
	for i, names := range codeNames {
		s.feeders[i] = newFeederRecord(names)
	}
	return s
}

// NewDerive creates a Simple with the same shape as src. No values are
// copied, so the derived store starts with empty arbitrary, feeder and code
// data.
func NewDerive(src datastore.Shape) *Simple {
	if src == nil {
		panic("inmemorydata: NewDerive called with a nil source")
	}
	codeNames := make([][]string, src.FeederCount())
	for fi := range codeNames {
		codeNames[fi] = datastore.CodeNames(src, fi)
	}
	return NewSimple(codeNames...)
}

func (s *Simple) feeder(index int) (*feederRecord, bool) {
	if index < 0 || index >= len(s.feeders) {
		return nil, false
	}
	return s.feeders[index], true
}

// FeederCount returns the number of feeders.
func (s *Simple) FeederCount() int {
	return len(s.feeders)
}

// CodeCount returns the number of code units of a feeder.
func (s *Simple) CodeCount(feederIndex int) int {
	rec, ok := s.feeder(feederIndex)
	if !ok {
		return 0
	}
	return len(rec.codeNames)
}

// CodeName returns the code name at (feederIndex, codeIndex).
func (s *Simple) CodeName(feederIndex, codeIndex int) string {
	rec, ok := s.feeder(feederIndex)
	if !ok || codeIndex < 0 || codeIndex >= len(rec.codeNames) {
		return ""
	}
	return rec.codeNames[codeIndex]
}

// SetArbitrary stores a global datum.
func (s *Simple) SetArbitrary(name string, value any) any {
	if s.arbitrary == nil {
		s.arbitrary = make(map[string]any)
	}
	if _, exists := s.arbitrary[name]; !exists {
		s.order = append(s.order, name)
	}
	s.arbitrary[name] = value
	return value
}

// GetArbitrary returns a global datum.
func (s *Simple) GetArbitrary(name string) (any, bool) {
	v, ok := s.arbitrary[name]
	return v, ok
}

// ArbitraryNames lists global names in first-insertion order.
func (s *Simple) ArbitraryNames() []string {
	return append([]string(nil), s.order...)
}

// SetFeederData stores a datum on a feeder.
func (s *Simple) SetFeederData(f ref.FeederRef, name string, value any) error {
	rec, ok := s.feeder(f.Index)
	if !ok {
		return fmt.Errorf("set %s on %s: %w", name, f, datastore.ErrIndexOutOfRange)
	}
	if rec.data == nil {
		rec.data = make(map[string]any)
	}
	rec.data[name] = value
	return nil
}

// GetFeederData returns a datum stored on a feeder.
func (s *Simple) GetFeederData(f ref.FeederRef, name string) (any, bool) {
	rec, ok := s.feeder(f.Index)
	if !ok {
		return nil, false
	}
	v, ok := rec.data[name]
	return v, ok
}

// SetCodeData stores a datum on a code unit. An unknown code name stores
// nothing and reports false without an error.
func (s *Simple) SetCodeData(c ref.CodeRef, name string, value any) (bool, error) {
	rec, ok := s.feeder(c.FeederIndex())
	if !ok {
		return false, fmt.Errorf("set %s on %s: %w", name, c, datastore.ErrIndexOutOfRange)
	}
	ci, ok := rec.codeIndex[c.Name]
	if !ok {
		return false, nil
	}
	if rec.codeData[ci] == nil {
		rec.codeData[ci] = make(map[string]any)
	}
	rec.codeData[ci][name] = value
	return true, nil
}

// GetCodeData returns a datum stored on a code unit.
func (s *Simple) GetCodeData(c ref.CodeRef, name string) (any, bool) {
	rec, ok := s.feeder(c.FeederIndex())
	if !ok {
		return nil, false
	}
	ci, ok := rec.codeIndex[c.Name]
	if !ok {
		return nil, false
	}
	v, ok := rec.codeData[ci][name]
	return v, ok
}

// Contains reports whether the datum addressed by r is present.
func (s *Simple) Contains(r ref.DataRef) bool {
	_, ok := datastore.Get(s, r)
	return ok
}

// Freeze is accepted but has no effect.
func (s *Simple) Freeze() bool {
	return true
}

// FreezeData is accepted but has no effect.
func (s *Simple) FreezeData(ref.DataRef) bool {
	return true
}
