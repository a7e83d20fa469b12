package integration_tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/compilekit/internal/testutil"
)

// TestPipeline_TokenParseByDataKind verifies that a token_parse task picks its
// parser type from global data and that the result feeds a compile task.
func TestPipeline_TokenParseByDataKind(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{
		"pipeline.hcl": `
pipeline "words" {
  data = { kind = "word" }

  token "word" {
    pattern = "[a-z]+"
  }

  task "scan" {
    type    = "token_parse"
    inputs  = ["kind", "Source", "offset", "end"]
    outputs = ["ast"]
  }

  task "emit" {
    type    = "compile"
    parser  = "word"
    from    = "parse_result"
    inputs  = ["ast"]
    outputs = ["value"]
  }

  task "show" {
    type   = "print"
    inputs = ["value"]
  }
}
`,
		"src/a.src": "hello",
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, testutil.Options{})

	// --- Assert ---
	require.NoError(t, result.Err)
	testutil.AssertTaskRan(t, result, "scan")
	testutil.AssertTaskRan(t, result, "emit")
	testutil.AssertOutputLines(t, result, `feeder[0].code["a.src"]:`, "      hello")
}

// TestPipeline_PartialParseUsesDataOffsets verifies that partial parsing reads
// its window from global data.
func TestPipeline_PartialParseUsesDataOffsets(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{
		"pipeline.hcl": `
pipeline "window" {
  data = {
    from = 6
    to   = 11
  }

  token "word" {
    pattern = "[a-z]+"
  }

  task "slice" {
    type    = "partial_parse"
    parser  = "word"
    inputs  = ["Source", "from", "to"]
    outputs = ["ast"]
  }

  task "emit" {
    type    = "compile"
    parser  = "word"
    from    = "parse_result"
    inputs  = ["ast"]
    outputs = ["value"]
  }

  task "show" {
    type   = "print"
    inputs = ["value"]
  }
}
`,
		"src/a.src": "hello world",
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, testutil.Options{})

	// --- Assert ---
	require.NoError(t, result.Err)
	testutil.AssertOutputLines(t, result, "      world")
	assert.NotContains(t, result.Output, "hello")
}

// TestPipeline_LeftOverIsNotFatal verifies that trailing input is reported as
// an error while later code units still run.
func TestPipeline_LeftOverIsNotFatal(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{
		"pipeline.hcl": `
pipeline "words" {
  token "word" {
    pattern = "[a-z]+"
  }

  task "scan" {
    type    = "parse"
    parser  = "word"
    inputs  = ["Source"]
    outputs = ["ast"]
  }

  task "emit" {
    type    = "compile"
    parser  = "word"
    from    = "parse_result"
    inputs  = ["ast"]
    outputs = ["value"]
  }

  task "show" {
    type   = "print"
    inputs = ["value"]
  }
}
`,
		"src/a.src": "abc 123",
		"src/b.src": "def",
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, testutil.Options{})

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.Contains(t, result.Output, "left-over token")
	testutil.AssertOutputLines(t, result, `feeder[0].code["b.src"]:`, "      def")
}

// TestPipeline_NoMatchIsFatal verifies that a failed parse stops the pipeline
// and the run reports a fatal result.
func TestPipeline_NoMatchIsFatal(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{
		"pipeline.hcl": `
pipeline "numbers" {
  task "scan" {
    type    = "parse"
    parser  = "number"
    inputs  = ["Source"]
    outputs = ["ast"]
  }

  task "show" {
    type   = "print"
    inputs = ["Source"]
  }
}
`,
		"src/a.src": "abc",
		"src/b.src": "42",
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, testutil.Options{})

	// --- Assert ---
	require.Error(t, result.Err)
	assert.Contains(t, result.Output, "no match")
	testutil.AssertTaskNotRan(t, result, "show")
	assert.NotContains(t, result.Output, `code["b.src"]:`)
}
