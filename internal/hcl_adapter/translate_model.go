// This file contains the logic for translating HCL schema structs into the
// format-agnostic configuration model defined in the config package.

package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/compilekit/internal/config"
	"github.com/vk/compilekit/internal/ctxlog"
	"github.com/vk/compilekit/internal/ctyconv"
	"github.com/zclconf/go-cty/cty"
)

// Values of a task's `from` attribute.
const (
	FromCode        = "code"
	FromParseResult = "parse_result"
)

func translatePipeline(ctx context.Context, name string, p *Pipeline) (*config.Pipeline, error) {
	out := &config.Pipeline{Name: name}

	data, err := staticObject(ctx, p.Data, "data")
	if err != nil {
		return nil, fmt.Errorf("pipeline '%s': %w", name, err)
	}
	out.Data = data

	for _, tok := range p.Tokens {
		out.Tokens = append(out.Tokens, &config.Token{Name: tok.Name, Pattern: tok.Pattern})
	}
	for _, t := range p.Tasks {
		task, err := translateTask(ctx, t)
		if err != nil {
			return nil, fmt.Errorf("pipeline '%s': %w", name, err)
		}
		out.Tasks = append(out.Tasks, task)
	}
	return out, nil
}

func translateTask(ctx context.Context, t *Task) (*config.Task, error) {
	logger := ctxlog.FromContext(ctx).With("task", t.Name, "task_type", t.Type)
	logger.Debug("Translating HCL task to internal config model.")

	out := &config.Task{
		Name:            t.Name,
		Type:            t.Type,
		Parser:          t.Parser,
		Inputs:          t.Inputs,
		Outputs:         t.Outputs,
		SaveParseResult: t.SaveParseResult,
		ResultType:      cty.NilType,
	}

	switch t.From {
	case "", FromCode:
	case FromParseResult:
		out.FromParseResult = true
	default:
		return nil, fmt.Errorf("task '%s': 'from' must be %q or %q, got %q", t.Name, FromCode, FromParseResult, t.From)
	}

	if isExprDefined(ctx, t.ResultType, "result_type") {
		ty, err := ctyconv.TypeOf(t.ResultType)
		if err != nil {
			return nil, fmt.Errorf("task '%s' result_type: %w", t.Name, err)
		}
		out.ResultType = ty
	}

	opts, err := staticObject(ctx, t.Options, "options")
	if err != nil {
		return nil, fmt.Errorf("task '%s': %w", t.Name, err)
	}
	out.Options = opts
	return out, nil
}

// staticObject evaluates an attribute without variables and requires an
// object or map. A missing attribute yields nil.
func staticObject(ctx context.Context, expr hcl.Expression, attrName string) (map[string]any, error) {
	if !isExprDefined(ctx, expr, attrName) {
		return nil, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("'%s': %w", attrName, diags)
	}
	if val.IsNull() {
		return nil, nil
	}
	if !val.Type().IsObjectType() && !val.Type().IsMapType() {
		return nil, fmt.Errorf("'%s' must be an object, got %s", attrName, val.Type().FriendlyName())
	}
	gv, err := ctyconv.ToGo(val)
	if err != nil {
		return nil, fmt.Errorf("'%s': %w", attrName, err)
	}
	m, _ := gv.(map[string]any)
	return m, nil
}

// isExprDefined checks if an HCL expression was actually present in the source
// code. The HCL decoder populates omitted optional expression fields with
// zero-width placeholders, so a nil check is not enough.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	if expr == nil {
		return false
	}
	exprRange := expr.Range()
	isDefined := exprRange.End.Byte > exprRange.Start.Byte

	ctxlog.FromContext(ctx).Debug("Checking if HCL attribute was explicitly defined.",
		"attribute", attrName,
		"hcl_range", exprRange.String(),
		"is_defined", isDefined,
	)
	return isDefined
}
