package parser

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/compilekit/internal/ctyconv"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// Names of the built-in parser types.
const (
	TypeIdentifier    = "identifier"
	TypeNumber        = "number"
	TypeWhitespace    = "whitespace"
	TypeHCLBody       = "hcl_body"
	TypeHCLExpression = "hcl_expression"
)

// Builtins returns the built-in parser types. HCL diagnostics name the
// source filename.
func Builtins(filename string) Types {
	return NewTypes(
		&Type{Name: TypeIdentifier, Parser: MustRegexp(`[A-Za-z_][A-Za-z0-9_]*`), Compile: CompileText},
		&Type{Name: TypeNumber, Parser: MustRegexp(`-?[0-9]+(?:\.[0-9]+)?`), Compile: compileNumber},
		&Type{Name: TypeWhitespace, Parser: MustRegexp(`\s+`)},
		&Type{Name: TypeHCLBody, Parser: HCLBody(filename), Compile: CompileHCLBody},
		&Type{Name: TypeHCLExpression, Parser: HCLExpression(filename), Compile: CompileHCLExpression},
	)
}

// CompileText returns the matched text.
func CompileText(r *Result, _ map[string]any) (any, error) {
	return r.Text, nil
}

func compileNumber(r *Result, _ map[string]any) (any, error) {
	return strconv.ParseFloat(r.Text, 64)
}

// Functions available to compiled HCL.
var Functions = map[string]function.Function{
	"abs":       stdlib.AbsoluteFunc,
	"coalesce":  stdlib.CoalesceFunc,
	"concat":    stdlib.ConcatFunc,
	"format":    stdlib.FormatFunc,
	"join":      stdlib.JoinFunc,
	"keys":      stdlib.KeysFunc,
	"length":    stdlib.LengthFunc,
	"lower":     stdlib.LowerFunc,
	"max":       stdlib.MaxFunc,
	"min":       stdlib.MinFunc,
	"split":     stdlib.SplitFunc,
	"substr":    stdlib.SubstrFunc,
	"trimspace": stdlib.TrimSpaceFunc,
	"upper":     stdlib.UpperFunc,
	"values":    stdlib.ValuesFunc,
}

// EvalContext builds an hcl.EvalContext exposing vars as variables next to
// Functions. Names that are not valid identifiers are skipped.
func EvalContext(vars map[string]any) (*hcl.EvalContext, error) {
	ctx := &hcl.EvalContext{Variables: make(map[string]cty.Value, len(vars)), Functions: Functions}
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if !hclsyntax.ValidIdentifier(name) {
			continue
		}
		v, err := ctyconv.FromGo(vars[name])
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", name, err)
		}
		ctx.Variables[name] = v
	}
	return ctx, nil
}

// referenced narrows vars to the root names the traversals use, so data an
// expression never mentions cannot fail its evaluation.
func referenced(vars map[string]any, traversals []hcl.Traversal) map[string]any {
	out := make(map[string]any, len(traversals))
	for _, t := range traversals {
		name := t.RootName()
		if v, ok := vars[name]; ok {
			out[name] = v
		}
	}
	return out
}

// CompileHCLExpression evaluates a parsed expression with vars in scope and
// returns the value as a plain Go value.
func CompileHCLExpression(r *Result, vars map[string]any) (any, error) {
	expr, ok := r.Value.(hcl.Expression)
	if !ok {
		return nil, fmt.Errorf("%s result holds %T, not an expression", r.Type, r.Value)
	}
	ectx, err := EvalContext(referenced(vars, expr.Variables()))
	if err != nil {
		return nil, err
	}
	val, diags := expr.Value(ectx)
	if diags.HasErrors() {
		return nil, diags
	}
	return ctyconv.ToGo(val)
}

// CompileHCLBody evaluates every top-level attribute of a parsed body and
// returns them as a map. Blocks are not allowed.
func CompileHCLBody(r *Result, vars map[string]any) (any, error) {
	file, ok := r.Value.(*hcl.File)
	if !ok {
		return nil, fmt.Errorf("%s result holds %T, not a file", r.Type, r.Value)
	}
	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}
	var used []hcl.Traversal
	for _, attr := range attrs {
		used = append(used, attr.Expr.Variables()...)
	}
	ectx, err := EvalContext(referenced(vars, used))
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(ectx)
		if diags.HasErrors() {
			return nil, diags
		}
		gv, err := ctyconv.ToGo(val)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", name, err)
		}
		out[name] = gv
	}
	return out, nil
}
