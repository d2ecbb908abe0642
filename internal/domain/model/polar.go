// Package model contains domain models passed between layers.
package model

import (
	"path/filepath"
	"strconv"
)

// UnknownAirfoil is the name used when a file carries no identity line.
const UnknownAirfoil = "Unknown Airfoil"

// PolarSample is one row of a sweep.
type PolarSample struct {
	Alpha  float64 // angle of attack, degrees
	CL     float64 // lift coefficient
	CD     float64 // drag coefficient
	CDp    float64 // pressure (parasitic) drag coefficient
	CM     float64 // moment coefficient
	TopXtr float64 // top surface transition, fraction of chord
	BotXtr float64 // bottom surface transition, fraction of chord
}

// Reynolds is a Reynolds number that may be unknown. The zero value is unknown.
type Reynolds struct {
	value float64
	known bool
}

// KnownReynolds returns a known Reynolds number.
func KnownReynolds(v float64) Reynolds { return Reynolds{value: v, known: true} }

// UnknownReynolds returns the explicit unknown marker.
func UnknownReynolds() Reynolds { return Reynolds{} }

// Value returns the number and whether it is known.
func (r Reynolds) Value() (float64, bool) { return r.value, r.known }

// Known reports whether the Reynolds number was parsed.
func (r Reynolds) Known() bool { return r.known }

// String renders the number in scientific notation or "unknown".
func (r Reynolds) String() string {
	if !r.known {
		return "unknown"
	}
	return strconv.FormatFloat(r.value, 'g', -1, 64)
}

// AirfoilPolar is one parsed file's worth of data.
type AirfoilPolar struct {
	Name     string
	Reynolds Reynolds
	Samples  []PolarSample
	// Source is the original file reference; display only.
	Source string
}

// SourceName returns the base name of the source for captions.
func (p AirfoilPolar) SourceName() string {
	if p.Source == "" {
		return ""
	}
	return filepath.Base(p.Source)
}

// EfficiencyPoint is the operating point of maximum lift-to-drag ratio.
type EfficiencyPoint struct {
	Index int
	Alpha float64
	CL    float64
	CD    float64
	Ratio float64
}

// ReportEntry pairs a polar with its efficiency point and detail page number.
type ReportEntry struct {
	Polar AirfoilPolar
	Point EfficiencyPoint
	Page  int
}
