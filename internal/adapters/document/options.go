package document

import (
	"gonum.org/v1/plot/vg"

	"github.com/okian/polarreport/pkg/logger"
)

// Option configures a PDF document.
type Option func(*PDF)

// WithPageSize sets the sheet size. Non-positive values are ignored.
func WithPageSize(width, height vg.Length) Option {
	return func(d *PDF) {
		if width > 0 && height > 0 {
			d.width, d.height = width, height
		}
	}
}

// WithMargin sets the sheet margin.
func WithMargin(margin vg.Length) Option {
	return func(d *PDF) {
		if margin >= 0 {
			d.margin = margin
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(d *PDF) {
		if l != nil {
			d.logger = l
		}
	}
}
