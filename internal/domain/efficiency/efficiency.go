// Package efficiency finds the maximum lift-to-drag operating point of a polar.
package efficiency

import (
	"fmt"
	"math"

	"github.com/okian/polarreport/internal/domain/model"
)

// DefaultMinDrag is the drag coefficient at or below which a sample is
// ineligible for the efficiency search.
const DefaultMinDrag = 1e-9

// Extractor computes the efficiency point of a polar.
type Extractor struct {
	minDrag float64
}

// New creates an Extractor with configuration options.
func New(opts ...Option) *Extractor {
	e := &Extractor{minDrag: DefaultMinDrag}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Ratio returns CL/CD for s. Every lift-to-drag value in the report goes
// through this function so the argmax and the reported value agree bit for bit.
func Ratio(s model.PolarSample) float64 {
	return s.CL / s.CD
}

// Eligible reports whether s takes part in the efficiency search.
func (e *Extractor) Eligible(s model.PolarSample) bool {
	return s.CD > e.minDrag
}

// Extract scans all samples and returns the first index holding the maximum
// CL/CD. Samples with CD at or below the drag floor are skipped; a polar with
// no eligible sample fails with a *model.DataError.
func (e *Extractor) Extract(p model.AirfoilPolar) (model.EfficiencyPoint, error) {
	if len(p.Samples) == 0 {
		return model.EfficiencyPoint{}, model.NewDataError(p.Source, "polar has no samples")
	}

	best := -1
	bestRatio := math.Inf(-1)
	for i, s := range p.Samples {
		if !e.Eligible(s) {
			continue
		}
		if r := Ratio(s); r > bestRatio {
			best, bestRatio = i, r
		}
	}

	if best < 0 {
		return model.EfficiencyPoint{}, model.NewDataError(p.Source,
			fmt.Sprintf("degenerate efficiency: no sample with CD above %g", e.minDrag))
	}

	s := p.Samples[best]
	return model.EfficiencyPoint{
		Index: best,
		Alpha: s.Alpha,
		CL:    s.CL,
		CD:    s.CD,
		Ratio: Ratio(s),
	}, nil
}

// Extract uses the default drag floor.
func Extract(p model.AirfoilPolar) (model.EfficiencyPoint, error) {
	return New().Extract(p)
}
