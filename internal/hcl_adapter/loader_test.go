package hcl_adapter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/compilekit/internal/config"
	"github.com/vk/compilekit/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func load(t *testing.T, paths ...string) (*config.Model, error) {
	t.Helper()
	return NewLoader().Load(ctxlog.Discard(context.Background()), paths...)
}

var typeComparer = cmp.Comparer(func(a, b cty.Type) bool {
	if a == cty.NilType || b == cty.NilType {
		return a == b
	}
	return a.Equals(b)
})

func TestLoad_FullPipeline(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"pipeline.hcl": `
pipeline "calc" {
  data = {
    x    = 1
    name = "n"
  }

  token "word" {
    pattern = "[a-z]+"
  }

  task "parse" {
    type    = "parse"
    parser  = "hcl_expression"
    inputs  = ["Source"]
    outputs = ["ast"]
  }

  task "eval" {
    type              = "compile"
    parser            = "hcl_expression"
    from              = "parse_result"
    save_parse_result = true
    result_type       = list(string)
    inputs            = ["ast"]
    outputs           = ["value", "ast2"]
  }

  task "env" {
    type    = "env_vars"
    outputs = ["data[\"env\"]"]
    options = { prefix = "APP_" }
  }
}
`,
		"notes.txt": "not hcl",
	})

	model, err := load(t, dir)
	require.NoError(t, err)

	want := &config.Pipeline{
		Name:   "calc",
		Data:   map[string]any{"x": 1.0, "name": "n"},
		Tokens: []*config.Token{{Name: "word", Pattern: "[a-z]+"}},
		Tasks: []*config.Task{
			{Name: "parse", Type: "parse", Parser: "hcl_expression", Inputs: []string{"Source"}, Outputs: []string{"ast"}, ResultType: cty.NilType},
			{Name: "eval", Type: "compile", Parser: "hcl_expression", Inputs: []string{"ast"}, Outputs: []string{"value", "ast2"},
				FromParseResult: true, SaveParseResult: true, ResultType: cty.List(cty.String)},
			{Name: "env", Type: "env_vars", Outputs: []string{`data["env"]`}, Options: map[string]any{"prefix": "APP_"}, ResultType: cty.NilType},
		},
	}
	if diff := cmp.Diff(want, model.Pipeline, typeComparer); diff != "" {
		t.Errorf("pipeline mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_SplitAcrossPaths(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a/other.hcl":    `something "ignored" {}`,
		"b/pipeline.hcl": `pipeline "p" {}`,
	})

	model, err := load(t, filepath.Join(dir, "a"), filepath.Join(dir, "b", "pipeline.hcl"))
	require.NoError(t, err)
	assert.Equal(t, "p", model.Pipeline.Name)
	assert.Empty(t, model.Pipeline.Tasks)
	assert.Nil(t, model.Pipeline.Data)
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{"no pipeline", map[string]string{"a.hcl": ``}, "no pipeline block found"},
		{"duplicate in file", map[string]string{"a.hcl": "pipeline \"a\" {}\npipeline \"b\" {}\n"}, "Duplicate \"pipeline\" block"},
		{"duplicate across files", map[string]string{"a.hcl": `pipeline "a" {}`, "b.hcl": `pipeline "b" {}`}, "a pipeline is already defined"},
		{"syntax", map[string]string{"a.hcl": `pipeline "a" {`}, "failed to parse HCL file"},
		{"unknown attribute", map[string]string{"a.hcl": `pipeline "a" { nope = 1 }`}, "failed to decode pipeline"},
		{"bad from", map[string]string{"a.hcl": `pipeline "a" {
  task "t" {
    type = "compile"
    from = "somewhere"
  }
}`}, "'from' must be"},
		{"bad result type", map[string]string{"a.hcl": `pipeline "a" {
  task "t" {
    type        = "compile"
    result_type = thing
  }
}`}, "result_type"},
		{"data not an object", map[string]string{"a.hcl": `pipeline "a" { data = [1] }`}, "'data' must be an object"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := writeFiles(t, tc.files)
			_, err := load(t, dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoad_MissingPath(t *testing.T) {
	_, err := load(t, filepath.Join(t.TempDir(), "missing.hcl"))
	assert.ErrorContains(t, err, "error accessing path")
}

func TestLoader_Files(t *testing.T) {
	dir := writeFiles(t, map[string]string{"p.hcl": `pipeline "p" {}`})
	l := NewLoader()
	_, err := l.Load(ctxlog.Discard(context.Background()), dir)
	require.NoError(t, err)
	assert.Contains(t, l.Files(), filepath.Join(dir, "p.hcl"))
}
