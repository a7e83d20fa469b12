package diag

import (
	"io"

	"github.com/hashicorp/hcl/v2"
)

// ToHCL converts m into an hcl.Diagnostic. Errors and fatal errors become
// hcl.DiagError; messages and warnings become hcl.DiagWarning. filename is
// used for the subject range when m has a resolved origin.
func ToHCL(m Message, filename string) *hcl.Diagnostic {
	d := &hcl.Diagnostic{
		Severity: hcl.DiagWarning,
		Summary:  m.Kind.String() + ": " + m.Text,
	}
	if m.IsError() {
		d.Severity = hcl.DiagError
		d.Summary = m.Text
		if m.Kind == KindFatal {
			d.Summary = "Fatal: " + m.Text
		}
	}
	if m.Kind == KindWarning {
		d.Summary = m.Text
	}
	if m.Cause != nil {
		d.Detail = m.Cause.Error()
	}
	if m.Origin != nil && m.Origin.Resolved() {
		pos := hcl.Pos{Line: m.Origin.Line, Column: m.Origin.Column, Byte: m.Origin.Offset}
		end := hcl.Pos{Line: pos.Line, Column: pos.Column + 1, Byte: pos.Byte + 1}
		d.Subject = &hcl.Range{Filename: filename, Start: pos, End: end}
	}
	return d
}

// Render writes diags in the hcl text format. Diagnostics whose subject file
// is present in files are shown with a source snippet.
func Render(w io.Writer, diags hcl.Diagnostics, files map[string]*hcl.File, width uint, color bool) error {
	wr := hcl.NewDiagnosticTextWriter(w, files, width, color)
	return wr.WriteDiagnostics(diags)
}
