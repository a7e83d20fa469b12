package app

import (
	"errors"
	"time"
)

// Defaults applied by NewConfig.
const (
	DefaultSuffix   = ".src"
	DefaultDebounce = 200 * time.Millisecond
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Paths        []string // source files or folders, one feeder each
	PipelinePath string   // hcl file or folder
	DataPath     string   // yaml option data
	Suffix       string   // folder feeders keep files with this suffix

	MetricsFile     string
	HealthcheckPort int

	Watch    bool
	Debounce time.Duration

	LogFormat string
	LogLevel  string

	// Width wraps rendered diagnostics; 0 disables wrapping.
	Width uint
	Color bool
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.PipelinePath == "" {
		return nil, errors.New("PipelinePath is a required configuration field and cannot be empty")
	}
	if len(cfg.Paths) == 0 {
		return nil, errors.New("at least one source path is required")
	}
	if cfg.HealthcheckPort < 0 {
		return nil, errors.New("HealthcheckPort cannot be negative")
	}
	if cfg.Suffix == "" {
		cfg.Suffix = DefaultSuffix
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	return &cfg, nil
}
