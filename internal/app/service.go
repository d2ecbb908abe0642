// Package app runs the polar report pipeline: discover, parse, rank, compose
// and write.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/okian/polarreport/internal/adapters/document"
	"github.com/okian/polarreport/internal/adapters/export"
	"github.com/okian/polarreport/internal/adapters/source"
	"github.com/okian/polarreport/internal/adapters/worker"
	"github.com/okian/polarreport/internal/domain/efficiency"
	"github.com/okian/polarreport/internal/domain/model"
	"github.com/okian/polarreport/internal/domain/polar"
	"github.com/okian/polarreport/internal/domain/ranking"
	"github.com/okian/polarreport/internal/domain/report"
	"github.com/okian/polarreport/pkg/logger"
	"github.com/okian/polarreport/pkg/metrics"
)

// Failure reasons recorded in metrics.
const (
	reasonIO        = "io"
	reasonData      = "data"
	reasonNoPolars  = "no_polars"
	reasonCancelled = "cancelled"
	reasonOther     = "other"
)

// Summary describes a finished run.
type Summary struct {
	RunID      string
	Discovered int
	Entries    []model.ReportEntry
	Skipped    []model.SkippedFile
	Pages      int
	Bytes      int64
	OutputPath string

	// SummaryPath is set when a workbook was written.
	SummaryPath string
	Duration    time.Duration
}

// Service runs report generation for one input directory.
type Service struct {
	inputDir    string
	outputPath  string
	extension   string
	title       string
	contents    bool
	workers     int
	minDrag     float64
	failFast    bool
	summaryPath string
	metricsPath string

	logger logger.Logger
	now    func() time.Time
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		extension: source.DefaultExtension,
		title:     report.DefaultTitle,
		minDrag:   efficiency.DefaultMinDrag,
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("app")
	}
	return s
}

// Run executes the pipeline once. On failure nothing is left at the output
// paths; per-file data errors are skipped and listed in the summary unless
// fail-fast is enabled.
func (s *Service) Run(ctx context.Context) (sum Summary, err error) {
	start := s.now()
	sum.RunID = uuid.NewString()
	log := s.logger.With(logger.String("run_id", sum.RunID))

	defer func() {
		sum.Duration = s.now().Sub(start)
		if err != nil {
			metrics.RecordRunFailure(sum.Duration, failureReason(err))
			log.Error(ctx, "report run failed", logger.Error(err), logger.Duration("elapsed", sum.Duration))
		} else {
			metrics.RecordRunSuccess(sum.Duration, s.now())
		}
		s.exportMetrics(ctx, log)
	}()

	if s.inputDir == "" || s.outputPath == "" {
		return sum, ErrMissingPaths
	}

	log.Info(ctx, "report run started",
		logger.String("input", s.inputDir),
		logger.String("output", s.outputPath),
		logger.Bool("contents", s.contents),
		logger.Bool("failFast", s.failFast))

	files, err := source.Discover(s.inputDir, s.extension)
	if err != nil {
		return sum, err
	}
	sum.Discovered = len(files)
	metrics.UpdateFilesDiscovered(len(files))
	log.Info(ctx, "input files discovered", logger.Int("count", len(files)))

	extractor := efficiency.New(efficiency.WithMinDrag(s.minDrag))
	pool := worker.NewPool(
		worker.NewAnalyzer(polar.New(), extractor),
		worker.WithWorkers(s.workers),
		worker.WithFailFast(s.failFast),
	)
	results, err := pool.Run(ctx, files)
	if err != nil {
		return sum, err
	}

	candidates, skipped := s.collect(ctx, log, results)
	sum.Skipped = skipped
	if len(candidates) == 0 {
		return sum, fmt.Errorf("%w: %d files discovered, %d skipped", ErrNoPolars, len(files), len(skipped))
	}

	sum.Entries = ranking.Rank(candidates)

	doc := document.New()
	composer := report.NewComposer(
		report.WithTitle(s.title),
		report.WithContents(s.contents),
		report.WithExtractor(extractor),
	)
	if sum.Pages, err = composer.Compose(ctx, doc, sum.Entries); err != nil {
		return sum, err
	}
	if err = ctx.Err(); err != nil {
		return sum, err
	}

	if sum.Bytes, err = document.WriteFile(s.outputPath, doc); err != nil {
		return sum, err
	}
	sum.OutputPath = s.outputPath
	metrics.UpdateReportBytes(sum.Bytes)

	if s.summaryPath != "" {
		if err = s.writeWorkbook(sum.RunID, sum.Entries, sum.Skipped); err != nil {
			// All or nothing: drop the report written above.
			_ = os.Remove(s.outputPath)
			sum.OutputPath = ""
			return sum, err
		}
		sum.SummaryPath = s.summaryPath
	}

	log.Info(ctx, "report written",
		logger.String("output", sum.OutputPath),
		logger.Int("airfoils", len(sum.Entries)),
		logger.Int("skipped", len(sum.Skipped)),
		logger.Int("pages", sum.Pages),
		logger.Int("sheets", doc.Sheets()),
		logger.Any("bytes", sum.Bytes))
	return sum, nil
}

// collect splits pool results into ranking candidates and skipped files,
// keeping discovery order.
func (s *Service) collect(ctx context.Context, log logger.Logger, results []worker.Result) ([]ranking.Candidate, []model.SkippedFile) {
	var (
		candidates []ranking.Candidate
		skipped    []model.SkippedFile
	)
	for _, r := range results {
		if !r.OK() {
			metrics.RecordFileSkipped(r.Stage)
			log.Warn(ctx, "skipping polar file",
				logger.String("file", r.File.Name),
				logger.String("stage", r.Stage),
				logger.Error(r.Err))
			skipped = append(skipped, model.SkippedFile{Source: r.File.Path, Stage: r.Stage, Err: r.Err})
			continue
		}
		for _, issue := range r.Issues {
			metrics.RecordIdentityIssue(string(issue))
			log.Warn(ctx, "incomplete polar identity",
				logger.String("file", r.File.Name),
				logger.String("issue", string(issue)))
		}
		metrics.RecordFileParsed(len(r.Polar.Samples))
		log.Debug(ctx, "polar analysed",
			logger.String("file", r.File.Name),
			logger.String("airfoil", r.Polar.Name),
			logger.Float64("cl", r.Point.CL),
			logger.Float64("ratio", r.Point.Ratio),
			logger.Duration("elapsed", r.Elapsed))
		candidates = append(candidates, ranking.Candidate{Polar: r.Polar, Point: r.Point})
	}
	return candidates, skipped
}

func (s *Service) writeWorkbook(runID string, entries []model.ReportEntry, skipped []model.SkippedFile) error {
	wb, err := export.NewWorkbook(entries, skipped, export.WithRunID(runID), export.WithTitle(s.title))
	if err != nil {
		return err
	}
	defer func() { _ = wb.Close() }()

	_, err = document.WriteFile(s.summaryPath, wb)
	return err
}

// exportMetrics writes the metrics textfile. A failure here does not fail the run.
func (s *Service) exportMetrics(ctx context.Context, log logger.Logger) {
	if s.metricsPath == "" {
		return
	}
	if err := metrics.WriteTextfile(s.metricsPath); err != nil {
		log.Warn(ctx, "metrics textfile not written", logger.String("path", s.metricsPath), logger.Error(err))
	}
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return reasonCancelled
	case errors.Is(err, ErrNoPolars):
		return reasonNoPolars
	case errors.Is(err, model.ErrData):
		return reasonData
	case errors.Is(err, model.ErrIO):
		return reasonIO
	default:
		return reasonOther
	}
}
