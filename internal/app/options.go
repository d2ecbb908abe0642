package app

import (
	"time"

	"github.com/okian/polarreport/internal/config"
	"github.com/okian/polarreport/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithConfig applies every run setting from cfg.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		if cfg == nil {
			return
		}
		s.inputDir = cfg.InputDirectory
		s.outputPath = cfg.OutputPath
		s.contents = cfg.IncludeContents
		s.failFast = cfg.FailFast
		s.workers = cfg.Workers
		s.summaryPath = cfg.SummaryPath
		s.metricsPath = cfg.MetricsPath
		if cfg.FileExtension != "" {
			s.extension = cfg.FileExtension
		}
		if cfg.Title != "" {
			s.title = cfg.Title
		}
		if cfg.MinDrag >= 0 {
			s.minDrag = cfg.MinDrag
		}
	}
}

// WithInputDirectory sets the directory scanned for polar files.
func WithInputDirectory(dir string) Option {
	return func(s *Service) { s.inputDir = dir }
}

// WithOutputPath sets the report path.
func WithOutputPath(path string) Option {
	return func(s *Service) { s.outputPath = path }
}

// WithFileExtension sets the input file extension.
func WithFileExtension(ext string) Option {
	return func(s *Service) {
		if ext != "" {
			s.extension = ext
		}
	}
}

// WithTitle sets the title page text.
func WithTitle(title string) Option {
	return func(s *Service) {
		if title != "" {
			s.title = title
		}
	}
}

// WithContents toggles the table of contents.
func WithContents(include bool) Option {
	return func(s *Service) { s.contents = include }
}

// WithWorkers sets parse concurrency. Zero means one worker per CPU.
func WithWorkers(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.workers = n
		}
	}
}

// WithMinDrag sets the drag floor for efficiency extraction.
func WithMinDrag(v float64) Option {
	return func(s *Service) {
		if v >= 0 {
			s.minDrag = v
		}
	}
}

// WithFailFast makes the first malformed file abort the run.
func WithFailFast(failFast bool) Option {
	return func(s *Service) { s.failFast = failFast }
}

// WithSummaryPath enables the xlsx ranking summary.
func WithSummaryPath(path string) Option {
	return func(s *Service) { s.summaryPath = path }
}

// WithMetricsPath enables the Prometheus textfile export.
func WithMetricsPath(path string) Option {
	return func(s *Service) { s.metricsPath = path }
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}
