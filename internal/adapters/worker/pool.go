// Package worker parses and analyses polar files with bounded concurrency.
package worker

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/polarreport/internal/adapters/source"
	"github.com/okian/polarreport/internal/domain/model"
	"github.com/okian/polarreport/internal/domain/polar"
	"github.com/okian/polarreport/pkg/logger"
	"github.com/okian/polarreport/pkg/metrics"
)

// Stages at which a file can be excluded from the report.
const (
	StageParse      = "parse"
	StageEfficiency = "efficiency"
)

// Result is the outcome of processing one file.
type Result struct {
	File   source.File
	Polar  model.AirfoilPolar
	Point  model.EfficiencyPoint
	Issues []polar.Issue

	// Err is a per-file data error. A result with Err set is excluded from
	// the report; Stage tells where it failed.
	Err   error
	Stage string

	Elapsed time.Duration
}

// OK reports whether the file made it into the report.
func (r Result) OK() bool { return r.Err == nil }

// Processor turns one file into a result. Errors matching model.ErrData are
// per-file failures; anything else aborts the pool.
type Processor interface {
	Process(ctx context.Context, f source.File) (Result, error)
}

// Pool runs a Processor over a list of files.
type Pool struct {
	processor Processor
	workers   int
	failFast  bool
	logger    logger.Logger
}

// NewPool creates a pool. Without WithWorkers it uses one worker per CPU.
func NewPool(processor Processor, opts ...Option) *Pool {
	p := &Pool{
		processor: processor,
		workers:   runtime.NumCPU(),
		logger:    logger.Get().Named("worker-pool"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Workers returns the concurrency limit.
func (p *Pool) Workers() int { return p.workers }

// Run processes every file and returns the results in input order, whatever
// the order of completion. The first fatal error cancels the remaining work;
// in fail-fast mode a data error is fatal too.
func (p *Pool) Run(ctx context.Context, files []source.File) ([]Result, error) {
	results := make([]Result, len(files))
	metrics.UpdateWorkerCount(p.workers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i, f := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := p.processor.Process(gctx, f)
			res.File = f
			if err != nil {
				if !errors.Is(err, model.ErrData) || p.failFast {
					return fmt.Errorf("process %s: %w", f.Name, err)
				}
				res.Err = err
				p.logger.Debug(gctx, "file excluded",
					logger.String("file", f.Name),
					logger.String("stage", res.Stage),
					logger.Error(err))
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// Cancellation before the first job leaves nothing for Wait to report.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
