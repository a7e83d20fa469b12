package tasks

import (
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/compilekit/internal/ctyconv"
	"github.com/vk/compilekit/internal/diag"
	"github.com/vk/compilekit/internal/parser"
	"github.com/vk/compilekit/internal/task"
	"github.com/zclconf/go-cty/cty"
)

// TextCompileFailed is the text of the diagnostic for a failed compilation.
const TextCompileFailed = "compilation failed"

// CompileOptions selects the shape of a CompileTask.
type CompileOptions struct {
	// FromParseResult takes a *parser.Result input instead of source text.
	FromParseResult bool
	// SaveParseResult adds the parse result as a second output.
	SaveParseResult bool
	// ResultType, when set, converts the compiled value to this type.
	ResultType cty.Type
}

// CompileTask turns source or a parse result into a value with the parser
// type's compiler. Global data is visible to the compiler as variables.
type CompileTask struct {
	task.Base
	typ  *parser.Type
	opts CompileOptions
}

// Compile returns a per-code compile task. It panics when typ has no
// compiler.
func Compile(name string, typ *parser.Type, opts CompileOptions) *CompileTask {
	if typ.Compile == nil {
		panic("tasks: parser type " + typ.Name + " has no compiler")
	}
	in := task.Any(SlotSource)
	if opts.FromParseResult {
		in = task.In[*parser.Result](SlotParseResult)
	}
	out := []task.Slot{task.Any(SlotValue)}
	if opts.SaveParseResult {
		out = append(out, task.Out[*parser.Result](SlotParseResult))
	}
	return &CompileTask{
		Base: task.Base{
			TaskName:  name,
			TaskScope: task.PerCode,
			In:        []task.Slot{in},
			Out:       out,
		},
		typ:  typ,
		opts: opts,
	}
}

func (t *CompileTask) Run(inv task.Invocation, ins []any) ([]any, error) {
	if ins[0] == nil {
		return nil, nil
	}

	var r *parser.Result
	if t.opts.FromParseResult {
		r = ins[0].(*parser.Result)
	} else {
		src, _ := sourceOf(ins[0])
		if r = matchAll(inv, t.typ, src); r == nil {
			return nil, nil
		}
	}

	v, err := t.typ.Compile(r, Globals(inv.Session))
	if err == nil {
		v, err = ctyconv.Conform(v, t.opts.ResultType)
	}
	if err != nil {
		inv.Report(diag.KindError, fmt.Sprintf("%s: %s", TextCompileFailed, t.typ.Name), err, failureOffset(err, r.Start))
		return nil, nil
	}

	if t.opts.SaveParseResult {
		return []any{v, r}, nil
	}
	return []any{v}, nil
}

// failureOffset finds the source offset an error points at.
func failureOffset(err error, fallback int) int {
	var diags hcl.Diagnostics
	if errors.As(err, &diags) {
		for _, d := range diags {
			if d.Severity == hcl.DiagError && d.Subject != nil {
				return d.Subject.Start.Byte
			}
		}
	}
	var se *parser.SyntaxError
	if errors.As(err, &se) {
		return se.Offset
	}
	return fallback
}
