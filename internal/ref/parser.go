// internal/ref/parser.go
package ref

import (
	"fmt"
	"regexp"
	"strconv"
)

// Each segment is matched in turn at the head of the remaining input.
var (
	feederSegment = regexp.MustCompile(`^feeder\[(\d+)\]`)
	codeSegment   = regexp.MustCompile(`^\.code\[("(?:[^"\\]|\\.)*")\]`)
	dataSegment   = regexp.MustCompile(`^\.?data\[("(?:[^"\\]|\\.)*")\]$`)
)

// Parsed is the result of parsing a canonical handle string. Exactly one of
// the Feeder/Code/Data forms is populated, in order of specificity.
type Parsed struct {
	feeder   FeederRef
	code     CodeRef
	data     DataRef
	isCode   bool
	isData   bool
	isFeeder bool
}

// DataRef returns the parsed data reference, if the input named one.
func (p Parsed) DataRef() (DataRef, bool) { return p.data, p.isData }

func (p Parsed) feederOnly() (FeederRef, bool) {
	return p.feeder, p.isFeeder && !p.isCode && !p.isData
}

func (p Parsed) codeOnly() (CodeRef, bool) {
	return p.code, p.isCode && !p.isData
}

// Parse reads any canonical handle string produced by String.
func Parse(raw string) (Parsed, error) {
	if raw == "" {
		return Parsed{}, fmt.Errorf("reference cannot be empty")
	}

	var p Parsed
	rest := raw

	if m := feederSegment.FindStringSubmatch(rest); m != nil {
		index, err := strconv.Atoi(m[1])
		if err != nil {
			return Parsed{}, fmt.Errorf("invalid feeder index in %q: %w", raw, err)
		}
		p.feeder = Feeder(index)
		p.isFeeder = true
		rest = rest[len(m[0]):]

		if m := codeSegment.FindStringSubmatch(rest); m != nil {
			name, err := strconv.Unquote(m[1])
			if err != nil {
				return Parsed{}, fmt.Errorf("invalid code name in %q: %w", raw, err)
			}
			p.code = ShareCode(p.feeder, name)
			p.isCode = true
			rest = rest[len(m[0]):]
		}
	}

	if rest == "" {
		if !p.isFeeder {
			return Parsed{}, fmt.Errorf("invalid reference %q", raw)
		}
		return p, nil
	}

	// A data segment must follow a dot unless it is the whole string.
	if p.isFeeder && rest[0] != '.' {
		return Parsed{}, fmt.Errorf("invalid reference %q", raw)
	}
	if !p.isFeeder && rest[0] == '.' {
		return Parsed{}, fmt.Errorf("invalid reference %q", raw)
	}
	m := dataSegment.FindStringSubmatch(rest)
	if m == nil {
		return Parsed{}, fmt.Errorf("invalid data segment %q in %q", rest, raw)
	}
	name, err := strconv.Unquote(m[1])
	if err != nil {
		return Parsed{}, fmt.Errorf("invalid data name in %q: %w", raw, err)
	}

	switch {
	case p.isCode:
		p.data = OnCode(p.code, name)
	case p.isFeeder:
		p.data = OnFeeder(p.feeder, name)
	default:
		p.data = Global(name)
	}
	p.isData = true
	return p, nil
}

// ParseData parses a canonical data reference string.
func ParseData(raw string) (DataRef, error) {
	p, err := Parse(raw)
	if err != nil {
		return DataRef{}, err
	}
	d, ok := p.DataRef()
	if !ok {
		return DataRef{}, fmt.Errorf("%q is not a data reference", raw)
	}
	return d, nil
}
