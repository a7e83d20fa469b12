package tasks

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vk/compilekit/internal/diag"
	"github.com/vk/compilekit/internal/parser"
	"github.com/vk/compilekit/internal/task"
)

// Texts of the parse diagnostics.
const (
	TextNoMatch  = "no match"
	TextLeftOver = "left-over token"
)

// match runs typ at offset. Failures are reported as fatal and yield nil.
func match(inv task.Invocation, typ *parser.Type, src string, offset int) *parser.Result {
	r, err := typ.Parse(src, offset)
	if err == nil && r != nil {
		return r
	}
	at := offset
	var se *parser.SyntaxError
	if errors.As(err, &se) {
		at = se.Offset
	}
	inv.Report(diag.KindFatal, fmt.Sprintf("%s: expected %s", TextNoMatch, typ.Name), err, at)
	return nil
}

// matchAll is match that also requires everything after the match to be
// whitespace.
func matchAll(inv task.Invocation, typ *parser.Type, src string) *parser.Result {
	r := match(inv, typ, src, 0)
	if r == nil {
		return nil
	}
	if strings.TrimSpace(src[r.End:]) != "" {
		inv.Report(diag.KindError, TextLeftOver, nil, r.End)
		return nil
	}
	return r
}

// matchUntil is match that requires the match to stop exactly at end. A
// negative end means the end of the source.
func matchUntil(inv task.Invocation, typ *parser.Type, src string, offset, end int) *parser.Result {
	if end < 0 {
		end = len(src)
	}
	r := match(inv, typ, src, offset)
	if r == nil {
		return nil
	}
	if r.End != end {
		inv.Report(diag.KindError, TextLeftOver, nil, r.End)
		return nil
	}
	return r
}

// ParseTask parses the whole of its source input with one parser type.
type ParseTask struct {
	task.Base
	typ *parser.Type
}

// Parse returns a per-code task that parses the source input with typ and
// outputs the *parser.Result.
func Parse(name string, typ *parser.Type) *ParseTask {
	return &ParseTask{
		Base: task.Base{
			TaskName:  name,
			TaskScope: task.PerCode,
			In:        []task.Slot{task.Any(SlotSource)},
			Out:       []task.Slot{task.Out[*parser.Result](SlotParseResult)},
		},
		typ: typ,
	}
}

func (t *ParseTask) Run(inv task.Invocation, ins []any) ([]any, error) {
	src, ok := sourceOf(ins[0])
	if !ok {
		return nil, nil
	}
	r := matchAll(inv, t.typ, src)
	if r == nil {
		return nil, nil
	}
	return []any{r}, nil
}

// PartialParseTask parses a slice of its source input.
type PartialParseTask struct {
	task.Base
	typ *parser.Type
}

// PartialParse returns a per-code task with inputs source, offset and end.
// The match must start at offset and stop exactly at end. Negative positions
// mean the start and the end of the source.
func PartialParse(name string, typ *parser.Type) *PartialParseTask {
	return &PartialParseTask{
		Base: task.Base{
			TaskName:  name,
			TaskScope: task.PerCode,
			In: []task.Slot{
				task.Any(SlotSource),
				{Name: SlotOffset, Default: -1},
				{Name: SlotEnd, Default: -1},
			},
			Out: []task.Slot{task.Out[*parser.Result](SlotParseResult)},
		},
		typ: typ,
	}
}

func (t *PartialParseTask) Run(inv task.Invocation, ins []any) ([]any, error) {
	src, ok := sourceOf(ins[0])
	if !ok {
		return nil, nil
	}
	r := matchUntil(inv, t.typ, src, intOf(ins[1], -1), intOf(ins[2], -1))
	if r == nil {
		return nil, nil
	}
	return []any{r}, nil
}

// TokenParseTask parses with a parser type chosen by name at run time.
type TokenParseTask struct {
	task.Base
	types parser.Provider
}

// TokenParse returns a per-code task with inputs type, source, offset and
// end. The type name is looked up in types; an unknown name is fatal.
func TokenParse(name string, types parser.Provider) *TokenParseTask {
	return &TokenParseTask{
		Base: task.Base{
			TaskName:  name,
			TaskScope: task.PerCode,
			In: []task.Slot{
				task.InDefault(SlotType, ""),
				task.Any(SlotSource),
				{Name: SlotOffset, Default: -1},
				{Name: SlotEnd, Default: -1},
			},
			Out: []task.Slot{task.Out[*parser.Result](SlotParseResult)},
		},
		types: types,
	}
}

func (t *TokenParseTask) Run(inv task.Invocation, ins []any) ([]any, error) {
	src, ok := sourceOf(ins[1])
	if !ok {
		return nil, nil
	}
	typeName, _ := ins[0].(string)
	typ, ok := t.types.Type(typeName)
	if !ok {
		inv.Report(diag.KindFatal, fmt.Sprintf("unknown token type %q", typeName), nil, 0)
		return nil, nil
	}
	r := matchUntil(inv, typ, src, intOf(ins[2], -1), intOf(ins[3], -1))
	if r == nil {
		return nil, nil
	}
	return []any{r}, nil
}
