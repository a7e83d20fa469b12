package diag

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vk/compilekit/internal/ref"
)

// Kind is the severity of a message.
type Kind int

const (
	// KindMessage is informational.
	KindMessage Kind = iota
	// KindWarning is informational.
	KindWarning
	// KindError increments the error count. On its own it does not stop a
	// pipeline.
	KindError
	// KindFatal increments both the error and fatal counts and stops the
	// pipeline at the next check.
	KindFatal
)

func (k Kind) String() string {
	switch k {
	case KindMessage:
		return "Message"
	case KindWarning:
		return "Warning"
	case KindError:
		return "Error"
	case KindFatal:
		return "Fatal Error"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	switch k {
	case KindMessage:
		return []byte("message"), nil
	case KindWarning:
		return []byte("warning"), nil
	case KindError:
		return []byte("error"), nil
	case KindFatal:
		return []byte("fatal"), nil
	}
	return nil, fmt.Errorf("unknown message kind %d", int(k))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "message":
		*k = KindMessage
	case "warning":
		*k = KindWarning
	case "error":
		*k = KindError
	case "fatal":
		*k = KindFatal
	default:
		return fmt.Errorf("unknown message kind %q", string(b))
	}
	return nil
}

// Origin is where in the sources a message points to.
type Origin struct {
	Code   ref.CodeRef `json:"code"`
	Offset int         `json:"offset"`
	// Line and Column are 1-based; both are 0 when the unit could not be
	// located at report time.
	Line   int `json:"line,omitempty"`
	Column int `json:"column,omitempty"`
}

// Resolved reports whether Line and Column are known.
func (o Origin) Resolved() bool { return o.Line > 0 }

func (o Origin) String() string {
	if !o.Resolved() {
		return fmt.Sprintf("%s@%d", o.Code, o.Offset)
	}
	return fmt.Sprintf("%s:%d:%d", o.Code, o.Line, o.Column)
}

// Message is one diagnostic.
type Message struct {
	Kind   Kind
	Text   string
	Cause  error
	Origin *Origin
}

// IsError reports whether m counts towards the error total.
func (m Message) IsError() bool { return m.Kind == KindError || m.Kind == KindFatal }

func (m Message) String() string {
	var b strings.Builder
	b.WriteString(m.Kind.String())
	b.WriteString(": ")
	b.WriteString(m.Text)
	if m.Origin != nil {
		b.WriteString(" (at ")
		b.WriteString(m.Origin.String())
		b.WriteString(")")
	}
	if m.Cause != nil {
		if !strings.HasSuffix(m.Text, "\n") {
			b.WriteString("\n")
		}
		b.WriteString("Caused by: ")
		b.WriteString(m.Cause.Error())
	}
	return b.String()
}

type messageJSON struct {
	Kind   Kind    `json:"kind"`
	Text   string  `json:"text"`
	Cause  string  `json:"cause,omitempty"`
	Origin *Origin `json:"origin,omitempty"`
}

// MarshalJSON encodes the message with its cause flattened to a string.
func (m Message) MarshalJSON() ([]byte, error) {
	out := messageJSON{Kind: m.Kind, Text: m.Text, Origin: m.Origin}
	if m.Cause != nil {
		out.Cause = m.Cause.Error()
	}
	return json.Marshal(out)
}
