package inmemorydata

import (
	"github.com/vk/compilekit/internal/datastore"
	"github.com/vk/compilekit/internal/ref"
)

// Link is a store that forwards every call to a target store.
type Link struct {
	target datastore.Store
}

var _ datastore.Store = (*Link)(nil)

// NewLink returns a store that reads and writes through target.
func NewLink(target datastore.Store) *Link {
	if target == nil {
		panic("inmemorydata: NewLink called with a nil target")
	}
	return &Link{target: target}
}

// Target returns the store l forwards to.
func (l *Link) Target() datastore.Store { return l.target }

func (l *Link) FeederCount() int { return l.target.FeederCount() }

func (l *Link) CodeCount(feederIndex int) int { return l.target.CodeCount(feederIndex) }

func (l *Link) CodeName(feederIndex, codeIndex int) string {
	return l.target.CodeName(feederIndex, codeIndex)
}

func (l *Link) SetArbitrary(name string, value any) any {
	return l.target.SetArbitrary(name, value)
}

func (l *Link) GetArbitrary(name string) (any, bool) {
	return l.target.GetArbitrary(name)
}

func (l *Link) ArbitraryNames() []string {
	return l.target.ArbitraryNames()
}

func (l *Link) SetFeederData(f ref.FeederRef, name string, value any) error {
	return l.target.SetFeederData(f, name, value)
}

func (l *Link) GetFeederData(f ref.FeederRef, name string) (any, bool) {
	return l.target.GetFeederData(f, name)
}

func (l *Link) SetCodeData(c ref.CodeRef, name string, value any) (bool, error) {
	return l.target.SetCodeData(c, name, value)
}

func (l *Link) GetCodeData(c ref.CodeRef, name string) (any, bool) {
	return l.target.GetCodeData(c, name)
}

func (l *Link) Contains(r ref.DataRef) bool {
	return l.target.Contains(r)
}

func (l *Link) Freeze() bool {
	return l.target.Freeze()
}

func (l *Link) FreezeData(r ref.DataRef) bool {
	return l.target.FreezeData(r)
}
