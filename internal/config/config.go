// Package config defines the report run configuration and its loading hooks.
//
// Conventions:
// - Defaults come from New; files and environment are layered by Load.
// - Command-line overrides are applied as Options after the environment.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
)

// Defaults.
const (
	DefaultTitle         = "Airfoil Analysis Report"
	DefaultFileExtension = ".txt"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
	DefaultMinDrag       = 1e-9
)

// Config contains process configuration.
type Config struct {
	// InputDirectory holds the polar files. Subdirectories are not searched.
	InputDirectory string `koanf:"input_directory" validate:"required"`

	// OutputPath is the PDF report written at the end of a successful run.
	OutputPath string `koanf:"output_path" validate:"required"`

	// IncludeContents adds a table of contents and page footers.
	IncludeContents bool `koanf:"include_toc"`

	// Title is printed on the title page.
	Title string `koanf:"title" validate:"required"`

	// FileExtension selects input files, case-insensitive.
	FileExtension string `koanf:"file_extension" validate:"required"`

	// Workers bounds parse concurrency; 0 means one per CPU, 1 is sequential.
	Workers int `koanf:"workers" validate:"gte=0"`

	// MinDrag is the drag floor below which a sample cannot be an efficiency point.
	MinDrag float64 `koanf:"min_drag" validate:"gte=0"`

	// FailFast aborts the run on the first malformed file instead of skipping it.
	FailFast bool `koanf:"fail_fast"`

	// SummaryPath optionally receives an xlsx ranking summary.
	SummaryPath string `koanf:"summary_path" validate:"omitempty,endswith=.xlsx"`

	// MetricsPath optionally receives run metrics in Prometheus textfile format.
	MetricsPath string `koanf:"metrics_path"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn warning error"`

	// LogFormat selects text or json log output.
	LogFormat string `koanf:"log_format" validate:"oneof=text json"`
}

// New creates a Config with defaults and applies opts. Context is accepted
// first to satisfy the project-wide convention and is currently unused.
func New(_ context.Context, opts ...Option) *Config {
	c := &Config{
		Title:         DefaultTitle,
		FileExtension: DefaultFileExtension,
		MinDrag:       DefaultMinDrag,
		LogLevel:      DefaultLogLevel,
		LogFormat:     DefaultLogFormat,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
