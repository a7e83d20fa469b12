package session

import (
	"path/filepath"

	"github.com/google/uuid"
	"github.com/vk/compilekit/internal/datastore"
	"github.com/vk/compilekit/internal/diag"
	"github.com/vk/compilekit/internal/feeder"
	"github.com/vk/compilekit/internal/inmemorydata"
	"github.com/vk/compilekit/internal/ref"
)

// Well-known data names seeded into every session.
const (
	DataFeeder = "Feeder"
	DataCode   = "Code"
	DataSource = "Source"
)

// Session is the context of one compilation run.
type Session struct {
	datastore.Store
	*diag.Log

	id      uuid.UUID
	feeders []feeder.Feeder

	feederPos int // -1 when not iterating
	codePos   int // -1 when not iterating codes
	stoppedAt int // -1 unless the pipeline stopped early
}

// New creates a session over feeders with its own data store. Nil entries
// are kept as feeders without code units.
func New(feeders ...feeder.Feeder) *Session {
	codeNames := make([][]string, len(feeders))
	for i, f := range feeders {
		if f == nil {
			continue
		}
		names := make([]string, f.CodeCount())
		for j := range names {
			names[j] = f.CodeName(j)
		}
		codeNames[i] = names
	}
	s := newSession(feeders, inmemorydata.NewSimple(codeNames...))
	s.seed()
	return s
}

func newSession(feeders []feeder.Feeder, store datastore.Store) *Session {
	s := &Session{
		Store:     store,
		id:        uuid.New(),
		feeders:   append([]feeder.Feeder(nil), feeders...),
		feederPos: -1,
		codePos:   -1,
		stoppedAt: -1,
	}
	s.Log = diag.NewLog(s)
	return s
}

func (s *Session) seed() {
	for fi, f := range s.feeders {
		if f == nil {
			continue
		}
		fr := ref.Feeder(fi)
		// The index is in range by construction.
		_ = s.SetFeederData(fr, DataFeeder, f)
		for ci := 0; ci < f.CodeCount(); ci++ {
			cr := ref.ShareCode(fr, f.CodeName(ci))
			code, err := f.Code(ci)
			if err != nil {
				s.Fatal("Unable to load "+cr.String()+".", err)
				continue
			}
			_, _ = s.SetCodeData(cr, DataCode, code)
			_, _ = s.SetCodeData(cr, DataSource, code.Source())
		}
	}
}

// Linked returns a session over the same feeders that reads and writes the
// data of s through a link. The new session has its own diagnostics log and
// cursor.
func (s *Session) Linked() *Session {
	return newSession(s.feeders, inmemorydata.NewLink(s.Store))
}

// Derived returns a session over the same feeders with an independent store
// of the same shape, seeded afresh. Nothing else is carried over from s.
func (s *Session) Derived() *Session {
	d := newSession(s.feeders, inmemorydata.NewDerive(s.Store))
	d.seed()
	return d
}

// Stop records that the pipeline stopped at task index i without running the
// remaining tasks.
func (s *Session) Stop(i int) { s.stoppedAt = i }

// StoppedAt returns the task index the pipeline stopped at, if it stopped
// early.
func (s *Session) StoppedAt() (int, bool) { return s.stoppedAt, s.stoppedAt >= 0 }

// ID identifies the run.
func (s *Session) ID() uuid.UUID { return s.id }

// Feeder returns the feeder at index.
func (s *Session) Feeder(index int) (feeder.Feeder, bool) {
	v, ok := s.GetFeederData(ref.Feeder(index), DataFeeder)
	if !ok {
		return nil, false
	}
	f, ok := v.(feeder.Feeder)
	return f, ok
}

// Code returns the seeded code unit c.
func (s *Session) Code(c ref.CodeRef) (*feeder.Code, bool) {
	v, ok := s.GetCodeData(c, DataCode)
	if !ok {
		return nil, false
	}
	code, ok := v.(*feeder.Code)
	return code, ok
}

// Source returns the source text of c.
func (s *Session) Source(c ref.CodeRef) (string, bool) {
	v, ok := s.GetCodeData(c, DataSource)
	if !ok {
		return "", false
	}
	src, ok := v.(string)
	return src, ok
}

// Locate implements diag.Locator.
func (s *Session) Locate(c ref.CodeRef) (diag.Positioner, bool) {
	code, ok := s.Code(c)
	if !ok {
		return nil, false
	}
	return code, true
}

// Filename is the display path of c: the feeder base joined with the code
// name.
func (s *Session) Filename(c ref.CodeRef) string {
	f, ok := s.Feeder(c.FeederIndex())
	if !ok || f.Base() == "" {
		return c.Name
	}
	return filepath.Join(f.Base(), c.Name)
}

// ReportAt records a message pointing at offset in the current code unit.
// Outside a code walk the message has no origin.
func (s *Session) ReportAt(kind diag.Kind, text string, cause error, offset int) diag.Message {
	if c, ok := s.CurrentCode(); ok {
		return s.Report(kind, text, cause, &c, offset)
	}
	return s.Report(kind, text, cause, nil, 0)
}
