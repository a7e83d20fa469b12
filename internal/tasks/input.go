package tasks

import (
	"fmt"

	"github.com/vk/compilekit/internal/session"
)

// Slot names shared by the stock tasks.
const (
	SlotSource      = "source"
	SlotOffset      = "offset"
	SlotEnd         = "end"
	SlotType        = "type"
	SlotParseResult = "parse_result"
	SlotValue       = "value"
	SlotLength      = "length"
	SlotReferences  = "references"
	SlotFunctions   = "functions"
)

// sourceOf turns an input into source text. A nil input has no source.
func sourceOf(v any) (string, bool) {
	switch s := v.(type) {
	case nil:
		return "", false
	case string:
		return s, true
	case []byte:
		return string(s), true
	case fmt.Stringer:
		return s.String(), true
	default:
		return fmt.Sprint(v), true
	}
}

// intOf reads a position input. Option data decoded from HCL or YAML may
// carry numbers as floats.
func intOf(v any, def int) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return def
	}
}

// Globals returns the session's global data as compilation variables.
func Globals(s *session.Session) map[string]any {
	names := s.ArbitraryNames()
	vars := make(map[string]any, len(names))
	for _, name := range names {
		if v, ok := s.GetArbitrary(name); ok {
			vars[name] = v
		}
	}
	return vars
}
