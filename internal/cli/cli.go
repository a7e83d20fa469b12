package cli

import (
	"io"
	"log/slog"
	"time"

	"github.com/alecthomas/kong"
	"github.com/vk/compilekit/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// flags is the kong grammar. Every flag can also come from a COMPILEKIT_*
// environment variable.
type flags struct {
	Pipeline    string        `short:"p" help:"Pipeline definition: an .hcl file or a directory of them." env:"COMPILEKIT_PIPELINE"`
	Data        string        `short:"d" help:"YAML file with option data, overriding the pipeline's data." env:"COMPILEKIT_DATA"`
	Suffix      string        `help:"Folder feeders keep files ending with this suffix." default:".src" env:"COMPILEKIT_SUFFIX"`
	MetricsFile string        `help:"Write Prometheus metrics to this file after each compilation." env:"COMPILEKIT_METRICS_FILE"`
	Healthcheck int           `name:"healthcheck-port" help:"Port for the health check and metrics server. 0 is disabled." default:"0" env:"COMPILEKIT_HEALTHCHECK_PORT"`
	Watch       bool          `short:"w" help:"Recompile whenever a source, the pipeline or the data file changes." env:"COMPILEKIT_WATCH"`
	Debounce    time.Duration `help:"Quiet period before recompiling in watch mode." default:"200ms" env:"COMPILEKIT_DEBOUNCE"`
	LogFormat   string        `help:"Log output format." enum:"text,json" default:"text" env:"COMPILEKIT_LOG_FORMAT"`
	LogLevel    string        `help:"Logging level." enum:"debug,info,warn,error" default:"info" env:"COMPILEKIT_LOG_LEVEL"`
	Width       uint          `help:"Wrap diagnostics at this width. 0 disables wrapping." default:"0" env:"COMPILEKIT_WIDTH"`
	Color       bool          `help:"Colorize diagnostics." env:"COMPILEKIT_COLOR"`

	Paths []string `arg:"" optional:"" name:"path" help:"Source files or folders, one feeder each."`
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	var f flags
	exited := false
	parser, err := kong.New(&f,
		kong.Name("compilekit"),
		kong.Description("Compilekit - runs a compilation pipeline over source files and reports diagnostics."),
		kong.Writers(output, output),
		kong.Exit(func(int) { exited = true }),
	)
	if err != nil {
		return nil, false, err
	}

	kctx, err := parser.Parse(args)
	if exited {
		return nil, true, nil
	}
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if len(f.Paths) == 0 {
		slog.Debug("No source path provided, printing usage and exiting.")
		_ = kctx.PrintUsage(false)
		return nil, true, nil
	}

	config, err := app.NewConfig(app.Config{
		Paths:           f.Paths,
		PipelinePath:    f.Pipeline,
		DataPath:        f.Data,
		Suffix:          f.Suffix,
		MetricsFile:     f.MetricsFile,
		HealthcheckPort: f.Healthcheck,
		Watch:           f.Watch,
		Debounce:        f.Debounce,
		LogFormat:       f.LogFormat,
		LogLevel:        f.LogLevel,
		Width:           f.Width,
		Color:           f.Color,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
