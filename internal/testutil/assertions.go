package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertTaskRan checks the log output within a HarnessResult to confirm that
// a task ran at least once.
func AssertTaskRan(t *testing.T, result *HarnessResult, taskName string) {
	t.Helper()

	expectedLogSubstring := fmt.Sprintf("task=%s", taskName)
	require.True(t,
		strings.Contains(result.LogOutput, "Running task.") && strings.Contains(result.LogOutput, expectedLogSubstring),
		"expected log output for task '%s' was not found in logs", taskName,
	)
}

// AssertTaskNotRan is the opposite of AssertTaskRan.
func AssertTaskNotRan(t *testing.T, result *HarnessResult, taskName string) {
	t.Helper()

	for _, line := range strings.Split(result.LogOutput, "\n") {
		if strings.Contains(line, "Running task.") && strings.Contains(line, fmt.Sprintf("task=%s ", taskName)) {
			t.Fatalf("task '%s' ran but should not have", taskName)
		}
	}
}

// AssertOutputLines checks that the output holds want in order, ignoring
// other lines in between.
func AssertOutputLines(t *testing.T, result *HarnessResult, want ...string) {
	t.Helper()

	rest := result.Output
	for _, w := range want {
		i := strings.Index(rest, w)
		require.True(t, i >= 0, "expected %q in output (in order), got:\n%s", w, result.Output)
		rest = rest[i+len(w):]
	}
}
