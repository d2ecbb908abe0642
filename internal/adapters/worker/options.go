package worker

import (
	"github.com/okian/polarreport/pkg/logger"
)

// Option applies a configuration option to the Pool.
type Option func(*Pool)

// WithWorkers sets the number of files processed concurrently.
// Values below one keep the default; one processes files sequentially.
func WithWorkers(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithFailFast makes a per-file data error abort the whole run.
func WithFailFast(failFast bool) Option {
	return func(p *Pool) {
		p.failFast = failFast
	}
}

// WithLogger sets a custom logger for the pool.
func WithLogger(l logger.Logger) Option {
	return func(p *Pool) {
		if l != nil {
			p.logger = l
		}
	}
}
