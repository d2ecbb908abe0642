package config

// Option overrides one configuration value.
type Option func(*Config)

// WithInputDirectory sets the input directory.
func WithInputDirectory(dir string) Option {
	return func(c *Config) { c.InputDirectory = dir }
}

// WithOutputPath sets the report path.
func WithOutputPath(path string) Option {
	return func(c *Config) { c.OutputPath = path }
}

// WithContents toggles the table of contents.
func WithContents(include bool) Option {
	return func(c *Config) { c.IncludeContents = include }
}

// WithTitle sets the report title.
func WithTitle(title string) Option {
	return func(c *Config) { c.Title = title }
}

// WithFileExtension sets the input file extension.
func WithFileExtension(ext string) Option {
	return func(c *Config) { c.FileExtension = ext }
}

// WithWorkers sets parse concurrency.
func WithWorkers(n int) Option {
	return func(c *Config) { c.Workers = n }
}

// WithMinDrag sets the drag floor.
func WithMinDrag(v float64) Option {
	return func(c *Config) { c.MinDrag = v }
}

// WithFailFast toggles strict mode.
func WithFailFast(failFast bool) Option {
	return func(c *Config) { c.FailFast = failFast }
}

// WithSummaryPath sets the xlsx summary path.
func WithSummaryPath(path string) Option {
	return func(c *Config) { c.SummaryPath = path }
}

// WithMetricsPath sets the metrics textfile path.
func WithMetricsPath(path string) Option {
	return func(c *Config) { c.MetricsPath = path }
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) Option {
	return func(c *Config) { c.LogLevel = level }
}

// WithLogFormat sets the log format.
func WithLogFormat(format string) Option {
	return func(c *Config) { c.LogFormat = format }
}
