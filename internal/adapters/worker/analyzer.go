package worker

import (
	"context"
	"time"

	"github.com/okian/polarreport/internal/adapters/source"
	"github.com/okian/polarreport/internal/domain/efficiency"
	"github.com/okian/polarreport/internal/domain/polar"
	"github.com/okian/polarreport/pkg/metrics"
)

// Analyzer reads a polar file, parses it and extracts its efficiency point.
type Analyzer struct {
	parser    *polar.Parser
	extractor *efficiency.Extractor
}

// NewAnalyzer creates an Analyzer. Nil collaborators fall back to defaults.
func NewAnalyzer(parser *polar.Parser, extractor *efficiency.Extractor) *Analyzer {
	if parser == nil {
		parser = polar.New()
	}
	if extractor == nil {
		extractor = efficiency.New()
	}
	return &Analyzer{parser: parser, extractor: extractor}
}

// Process implements Processor.
func (a *Analyzer) Process(ctx context.Context, f source.File) (res Result, err error) {
	start := time.Now()
	defer func() {
		res.Elapsed = time.Since(start)
		metrics.RecordParseLatency(float64(res.Elapsed.Microseconds()) / 1000)
	}()

	if err := ctx.Err(); err != nil {
		return res, err
	}

	r, err := source.Open(f)
	if err != nil {
		return res, err
	}
	defer func() { _ = r.Close() }()

	parsed, err := a.parser.Parse(f.Path, r)
	if err != nil {
		res.Stage = StageParse
		return res, err
	}
	res.Polar = parsed.Polar
	res.Issues = parsed.Issues

	pt, err := a.extractor.Extract(parsed.Polar)
	if err != nil {
		res.Stage = StageEfficiency
		return res, err
	}
	res.Point = pt
	return res, nil
}
