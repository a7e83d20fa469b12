package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/compilekit/internal/app"
	"github.com/vk/compilekit/internal/registry"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Output    string
	LogOutput string
	Err       error
	App       *app.App
}

// Options tunes a harness run. Paths and DataPath are relative to the
// temporary root.
type Options struct {
	Paths    []string
	DataPath string
	Modules  []registry.Module
}

// RunIntegrationTest provides a standardized harness for running integration
// tests using a default background context. files must include
// "pipeline.hcl"; sources default to the "src" folder.
func RunIntegrationTest(t *testing.T, files map[string]string, opts Options) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, opts)
}

// RunIntegrationTestWithContext provides a standardized harness for running
// integration tests with a specific context provided by the caller.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, opts Options) *HarnessResult {
	t.Helper()

	// 1. Write all files to a temporary root.
	tmpDir := app.WriteFiles(t, files)

	// 2. Configure the app relative to the root.
	if len(opts.Paths) == 0 {
		opts.Paths = []string{"src"}
	}
	cfg := app.Config{PipelinePath: filepath.Join(tmpDir, "pipeline.hcl")}
	for _, p := range opts.Paths {
		cfg.Paths = append(cfg.Paths, filepath.Join(tmpDir, filepath.FromSlash(p)))
	}
	if opts.DataPath != "" {
		cfg.DataPath = filepath.Join(tmpDir, filepath.FromSlash(opts.DataPath))
	}
	appConfig, err := app.NewConfig(cfg)
	require.NoError(t, err)

	// 3. Build the app, turning registration panics into errors.
	var testApp *app.App
	var out, logs *app.SafeBuffer
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		testApp, out, logs = app.SetupAppTest(t, appConfig, opts.Modules...)
	}()
	if panicErr != nil {
		return &HarnessResult{Err: fmt.Errorf("application startup panicked | %v", panicErr)}
	}

	// 4. Run.
	runErr := testApp.Run(ctx)

	if os.Getenv("COMPILEKIT_TEST_LOGS") == "true" {
		t.Logf("--- Output for %s ---\n%s", t.Name(), out.String())
	}

	return &HarnessResult{
		Output:    out.String(),
		LogOutput: logs.String(),
		Err:       runErr,
		App:       testApp,
	}
}
