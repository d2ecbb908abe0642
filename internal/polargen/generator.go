// Package polargen writes synthetic XFOIL-style polar files for tests and demos.
//
// Lift follows the thin-airfoil slope with a soft stall past StallAlpha; drag
// follows a parabolic polar CD = CD0 + K*CL^2. The header always spans exactly
// thirteen lines so the parser's fixed offset lands on the first sample row.
package polargen

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/okian/polarreport/internal/domain/model"
)

// Constants for the synthetic aerodynamic model.
const (
	thinAirfoilSlope  = 2 * math.Pi // per radian
	degToRad          = math.Pi / 180
	stallDropPerDeg   = 0.08
	defaultCD0        = 0.0060
	defaultK          = 0.0075
	defaultAlphaMin   = -4.0
	defaultAlphaMax   = 12.0
	defaultAlphaStep  = 1.0
	defaultStallAlpha = 10.0
	cdpFraction       = 0.35
	cmSlope           = -0.0025
	topXtrBase        = 0.75
	topXtrPerDeg      = 0.04
	botXtrBase        = 0.30
	botXtrPerDeg      = 0.05
	maxXtr            = 1.0
	minXtr            = 0.01
)

// Spec describes one synthetic polar.
type Spec struct {
	Name       string
	Reynolds   model.Reynolds
	CL0        float64 // lift at zero alpha (camber)
	CD0        float64
	K          float64
	AlphaMin   float64
	AlphaMax   float64
	AlphaStep  float64
	StallAlpha float64

	// OmitName drops the identity line, OmitReynolds drops the Re marker.
	OmitName     bool
	OmitReynolds bool
}

// Default returns a spec for a mildly cambered airfoil.
func Default(name string, re float64) Spec {
	return Spec{
		Name:       name,
		Reynolds:   model.KnownReynolds(re),
		CL0:        0.25,
		CD0:        defaultCD0,
		K:          defaultK,
		AlphaMin:   defaultAlphaMin,
		AlphaMax:   defaultAlphaMax,
		AlphaStep:  defaultAlphaStep,
		StallAlpha: defaultStallAlpha,
	}
}

// Samples computes the sweep described by s.
func (s Spec) Samples() []model.PolarSample {
	step := s.AlphaStep
	if step <= 0 {
		step = defaultAlphaStep
	}
	n := int(math.Floor((s.AlphaMax-s.AlphaMin)/step+1e-9)) + 1
	if n < 1 {
		n = 1
	}

	out := make([]model.PolarSample, 0, n)
	for i := 0; i < n; i++ {
		alpha := s.AlphaMin + float64(i)*step
		cl := s.CL0 + thinAirfoilSlope*alpha*degToRad
		if s.StallAlpha > 0 && alpha > s.StallAlpha {
			peak := s.CL0 + thinAirfoilSlope*s.StallAlpha*degToRad
			cl = peak - stallDropPerDeg*(alpha-s.StallAlpha)
		}
		cd := s.CD0 + s.K*cl*cl
		out = append(out, model.PolarSample{
			Alpha:  alpha,
			CL:     cl,
			CD:     cd,
			CDp:    cd * cdpFraction,
			CM:     cmSlope*alpha - 0.05,
			TopXtr: clamp(topXtrBase-topXtrPerDeg*alpha, minXtr, maxXtr),
			BotXtr: clamp(botXtrBase+botXtrPerDeg*alpha, minXtr, maxXtr),
		})
	}
	return out
}

// Render returns the file content for s.
func (s Spec) Render() string {
	var b strings.Builder
	_ = s.Write(&b)
	return b.String()
}

// Write writes the file content for s to w.
func (s Spec) Write(w io.Writer) error {
	var b strings.Builder
	for _, line := range s.header() {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	for _, r := range s.Samples() {
		fmt.Fprintf(&b, "%8.3f %8.4f %9.5f %9.5f %8.4f %8.4f %8.4f\n",
			r.Alpha, r.CL, r.CD, r.CDp, r.CM, r.TopXtr, r.BotXtr)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// header returns exactly thirteen lines.
func (s Spec) header() []string {
	name := " Calculated polar for: " + s.Name
	if s.OmitName {
		name = " Polar sweep"
	}
	flow := " Mach =   0.000     Ncrit =   9.000"
	if re, ok := s.Reynolds.Value(); ok && !s.OmitReynolds {
		exp := 0
		mant := re
		if re != 0 {
			exp = int(math.Floor(math.Log10(math.Abs(re))))
			mant = re / math.Pow(10, float64(exp))
		}
		flow = fmt.Sprintf(" Mach =   0.000     Re =     %.3f e %d     Ncrit =   9.000", mant, exp)
	}
	return []string{
		"",
		"       XFOIL         Version 6.99",
		"",
		name,
		"",
		" 1 1 Reynolds number fixed          Mach number fixed",
		"",
		" xtrf =   1.000 (top)        1.000 (bottom)",
		flow,
		"",
		"",
		"   alpha    CL        CD       CDp       CM     Top_Xtr  Bot_Xtr",
		"  ------ -------- --------- --------- -------- -------- --------",
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
