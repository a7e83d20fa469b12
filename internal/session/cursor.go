package session

import "github.com/vk/compilekit/internal/ref"

// StartFeeder positions the cursor on the first feeder. It returns false when
// there are no feeders.
func (s *Session) StartFeeder() bool {
	s.codePos = -1
	if s.FeederCount() == 0 {
		s.feederPos = -1
		return false
	}
	s.feederPos = 0
	return true
}

// NextFeeder advances to the next feeder. It returns false, and leaves the
// cursor unset, once feeders are exhausted.
func (s *Session) NextFeeder() bool {
	if s.feederPos < 0 {
		return false
	}
	s.feederPos++
	if s.feederPos >= s.FeederCount() {
		s.feederPos = -1
		return false
	}
	return true
}

// StartCode positions the cursor on the first code unit of the first feeder
// that has one. It returns false when there are no code units at all.
func (s *Session) StartCode() bool {
	return s.seekCode(0, 0)
}

// NextCode advances to the next code unit in (feeder, code) order.
func (s *Session) NextCode() bool {
	if s.codePos < 0 {
		return false
	}
	return s.seekCode(s.feederPos, s.codePos+1)
}

func (s *Session) seekCode(fi, ci int) bool {
	for ; fi < s.FeederCount(); fi, ci = fi+1, 0 {
		if ci < s.CodeCount(fi) {
			s.feederPos, s.codePos = fi, ci
			return true
		}
	}
	s.feederPos, s.codePos = -1, -1
	return false
}

// SeekFeeder places the cursor on feeder fi with no current code unit. It
// returns false, leaving the cursor unset, when fi is out of range.
func (s *Session) SeekFeeder(fi int) bool {
	s.codePos = -1
	if fi < 0 || fi >= s.FeederCount() {
		s.feederPos = -1
		return false
	}
	s.feederPos = fi
	return true
}

// SeekCode places the cursor on code unit ci of feeder fi. It returns false,
// leaving the cursor unset, when there is no such unit.
func (s *Session) SeekCode(fi, ci int) bool {
	if fi < 0 || fi >= s.FeederCount() || ci < 0 || ci >= s.CodeCount(fi) {
		s.feederPos, s.codePos = -1, -1
		return false
	}
	s.feederPos, s.codePos = fi, ci
	return true
}

// Rewind clears the cursor.
func (s *Session) Rewind() {
	s.feederPos, s.codePos = -1, -1
}

// CurrentFeeder returns the feeder under the cursor.
func (s *Session) CurrentFeeder() (ref.FeederRef, bool) {
	if s.feederPos < 0 {
		return ref.FeederRef{}, false
	}
	return ref.Feeder(s.feederPos), true
}

// CurrentCode returns the code unit under the cursor.
func (s *Session) CurrentCode() (ref.CodeRef, bool) {
	if s.feederPos < 0 || s.codePos < 0 {
		return ref.CodeRef{}, false
	}
	return ref.Code(s.feederPos, s.CodeName(s.feederPos, s.codePos)), true
}
