package parser

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
)

const extraCharacters = "Extra characters after expression"

func startPos(src string, offset int) hcl.Pos {
	pos := hcl.Pos{Line: 1, Column: 1, Byte: offset}
	for i := 0; i < offset; i++ {
		if src[i] == '\n' {
			pos.Line++
			pos.Column = 1
		} else {
			pos.Column++
		}
	}
	return pos
}

func errorOffset(diags hcl.Diagnostics, fallback int) int {
	for _, d := range diags {
		if d.Severity == hcl.DiagError && d.Subject != nil {
			return d.Subject.Start.Byte
		}
	}
	return fallback
}

// HCLBody parses the rest of the source as an HCL configuration body.
// Result.Value is the *hcl.File. A body always consumes all input, so
// syntax errors are returned as *SyntaxError.
func HCLBody(filename string) Parser {
	return Func(func(src string, offset int) (*Result, error) {
		file, diags := hclsyntax.ParseConfig([]byte(src[offset:]), filename, startPos(src, offset))
		if diags.HasErrors() {
			return nil, &SyntaxError{Offset: errorOffset(diags, offset), Diags: diags}
		}
		return &Result{Start: offset, End: len(src), Text: src[offset:], Value: file}, nil
	})
}

// HCLExpression parses one HCL expression at the offset. Trailing input is
// left unconsumed; Result.End is where the expression stops. Result.Value is
// the hclsyntax.Expression.
func HCLExpression(filename string) Parser {
	return Func(func(src string, offset int) (*Result, error) {
		expr, diags := hclsyntax.ParseExpression([]byte(src[offset:]), filename, startPos(src, offset))

		var rest hcl.Diagnostics
		for _, d := range diags {
			if d.Summary != extraCharacters {
				rest = append(rest, d)
			}
		}
		if rest.HasErrors() {
			return nil, &SyntaxError{Offset: errorOffset(rest, offset), Diags: rest}
		}
		if expr == nil {
			return nil, nil
		}
		end := expr.Range().End.Byte
		if end < offset || end > len(src) {
			end = len(src)
		}
		return &Result{Start: offset, End: end, Text: src[offset:end], Value: expr}, nil
	})
}
