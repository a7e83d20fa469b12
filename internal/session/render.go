package session

import (
	"io"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/compilekit/internal/diag"
)

// Diagnostics converts the log into hcl diagnostics together with the source
// files they point into.
func (s *Session) Diagnostics() (hcl.Diagnostics, map[string]*hcl.File) {
	files := make(map[string]*hcl.File)
	diags := make(hcl.Diagnostics, 0, s.Len())
	for _, m := range s.Messages() {
		name := ""
		if m.Origin != nil {
			name = s.Filename(m.Origin.Code)
			if _, seen := files[name]; !seen {
				if src, ok := s.Source(m.Origin.Code); ok {
					files[name] = &hcl.File{Bytes: []byte(src)}
				}
			}
		}
		diags = append(diags, diag.ToHCL(m, name))
	}
	return diags, files
}

// WriteDiagnostics renders every message with source snippets.
func (s *Session) WriteDiagnostics(w io.Writer, width uint, color bool) error {
	diags, files := s.Diagnostics()
	return diag.Render(w, diags, files, width, color)
}
