package diag

import (
	"strconv"
	"strings"

	"github.com/vk/compilekit/internal/ref"
)

// Positioner converts a byte offset into a 1-based line and column.
type Positioner interface {
	PositionOf(offset int) (line, column int)
}

// Locator finds the unit a message originates from.
type Locator interface {
	Locate(c ref.CodeRef) (Positioner, bool)
}

// Log is the ordered, append-only list of messages of one run. The zero
// value is an empty log with no locator.
type Log struct {
	locator  Locator
	messages []Message
	errors   int
	fatals   int
}

// NewLog returns an empty log that resolves origins through locator, which
// may be nil.
func NewLog(locator Locator) *Log {
	return &Log{locator: locator}
}

// Append records a message that was built elsewhere. Its origin is taken as
// is.
func (l *Log) Append(m Message) {
	switch m.Kind {
	case KindError:
		l.errors++
	case KindFatal:
		l.errors++
		l.fatals++
	}
	l.messages = append(l.messages, m)
}

// Report records a message. When origin is non-nil the message points at
// offset inside that unit, and line and column are resolved now.
func (l *Log) Report(kind Kind, text string, cause error, origin *ref.CodeRef, offset int) Message {
	m := Message{Kind: kind, Text: text, Cause: cause}
	if origin != nil {
		o := &Origin{Code: *origin, Offset: offset}
		if l.locator != nil {
			if p, ok := l.locator.Locate(*origin); ok && p != nil {
				o.Line, o.Column = p.PositionOf(offset)
			}
		}
		m.Origin = o
	}
	l.Append(m)
	return m
}

// Info records an informational message without an origin.
func (l *Log) Info(text string) { l.Report(KindMessage, text, nil, nil, 0) }

// Warning records a warning without an origin.
func (l *Log) Warning(text string, cause error) { l.Report(KindWarning, text, cause, nil, 0) }

// Error records an error without an origin.
func (l *Log) Error(text string, cause error) { l.Report(KindError, text, cause, nil, 0) }

// Fatal records a fatal error without an origin.
func (l *Log) Fatal(text string, cause error) { l.Report(KindFatal, text, cause, nil, 0) }

// HasError reports whether any error or fatal error was recorded.
func (l *Log) HasError() bool { return l.errors != 0 }

// HasFatalError reports whether any fatal error was recorded.
func (l *Log) HasFatalError() bool { return l.fatals != 0 }

// ErrorCount includes fatal errors.
func (l *Log) ErrorCount() int { return l.errors }

func (l *Log) FatalCount() int { return l.fatals }

// Len returns the number of messages.
func (l *Log) Len() int { return len(l.messages) }

// At returns the i-th message, or false when i is out of range.
func (l *Log) At(i int) (Message, bool) {
	if i < 0 || i >= len(l.messages) {
		return Message{}, false
	}
	return l.messages[i], true
}

// Messages returns a copy of all messages in report order.
func (l *Log) Messages() []Message {
	return append([]Message(nil), l.messages...)
}

// String lists every message, numbered from 0.
func (l *Log) String() string {
	if len(l.messages) == 0 {
		return "0 message(s)\n"
	}
	var b strings.Builder
	b.WriteString(strconv.Itoa(len(l.messages)))
	b.WriteString(" message(s):")
	for i, m := range l.messages {
		b.WriteString("\nMessage #")
		b.WriteString(strconv.Itoa(i))
		b.WriteString(": ")
		b.WriteString(m.String())
	}
	return b.String()
}
