// internal/ref/format.go
package ref

import (
	"fmt"
	"strconv"
	"strings"
)

// String serializes the handle into its canonical form, e.g. `feeder[2]`.
func (f FeederRef) String() string {
	return fmt.Sprintf("feeder[%d]", f.Index)
}

// String serializes the handle into its canonical form, e.g.
// `feeder[0].code["main.hcl"]`.
func (c CodeRef) String() string {
	return fmt.Sprintf("%s.code[%s]", c.Feeder.String(), strconv.Quote(c.Name))
}

// String serializes the reference into its canonical form.
func (d DataRef) String() string {
	var sb strings.Builder
	switch d.scope {
	case ScopeFeeder:
		sb.WriteString(d.code.Feeder.String())
		sb.WriteRune('.')
	case ScopeCode:
		sb.WriteString(d.code.String())
		sb.WriteRune('.')
	}
	sb.WriteString("data[")
	sb.WriteString(strconv.Quote(d.name))
	sb.WriteRune(']')
	return sb.String()
}

// MarshalText implements encoding.TextMarshaler.
func (f FeederRef) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// MarshalText implements encoding.TextMarshaler.
func (c CodeRef) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// MarshalText implements encoding.TextMarshaler.
func (d DataRef) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *FeederRef) UnmarshalText(b []byte) error {
	d, err := Parse(string(b))
	if err != nil {
		return err
	}
	fr, ok := d.feederOnly()
	if !ok {
		return fmt.Errorf("%q is not a feeder reference", string(b))
	}
	*f = fr
	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *CodeRef) UnmarshalText(b []byte) error {
	d, err := Parse(string(b))
	if err != nil {
		return err
	}
	cr, ok := d.codeOnly()
	if !ok {
		return fmt.Errorf("%q is not a code reference", string(b))
	}
	*c = cr
	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *DataRef) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	if !parsed.isData {
		return fmt.Errorf("%q is not a data reference", string(b))
	}
	*d = parsed.data
	return nil
}
