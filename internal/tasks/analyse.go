package tasks

import (
	"fmt"

	"github.com/apparentlymart/go-textseg/v15/textseg"
	"github.com/hashicorp/hcl/v2"
	"github.com/vk/compilekit/internal/diag"
	"github.com/vk/compilekit/internal/hclexpr"
	"github.com/vk/compilekit/internal/parser"
	"github.com/vk/compilekit/internal/task"
)

// SourceLength returns a per-code task that counts the characters of its
// source input. Characters are grapheme clusters.
func SourceLength(name string) task.Task {
	return task.Func(name, task.PerCode,
		[]task.Slot{task.Any(SlotSource)},
		[]task.Slot{task.Out[int](SlotLength)},
		func(inv task.Invocation, ins []any) ([]any, error) {
			src, ok := sourceOf(ins[0])
			if !ok {
				return nil, nil
			}
			n, err := textseg.TokenCount([]byte(src), textseg.ScanGraphemeClusters)
			if err != nil {
				return nil, err
			}
			return []any{n}, nil
		})
}

// References returns a per-code task that lists the variables and functions
// an HCL parse result uses. Both outputs are sorted []string.
func References(name string) task.Task {
	return task.Func(name, task.PerCode,
		[]task.Slot{task.In[*parser.Result](SlotParseResult)},
		[]task.Slot{task.Out[[]string](SlotReferences), task.Out[[]string](SlotFunctions)},
		func(inv task.Invocation, ins []any) ([]any, error) {
			r, _ := ins[0].(*parser.Result)
			if r == nil {
				return nil, nil
			}
			c := hclexpr.NewContainer()
			switch v := r.Value.(type) {
			case hcl.Expression:
				c.Add(v)
			case *hcl.File:
				if diags := c.AddBody(v.Body); diags.HasErrors() {
					inv.Report(diag.KindWarning, "only attributes are analysed", diags, r.Start)
				}
			default:
				inv.Report(diag.KindWarning, fmt.Sprintf("%s results cannot be analysed", r.Type), nil, r.Start)
				return nil, nil
			}
			return []any{c.ReferenceKeys(), c.CalledFunctions()}, nil
		})
}
