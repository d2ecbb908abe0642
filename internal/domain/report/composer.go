package report

import (
	"context"
	"fmt"
	"math"

	"github.com/okian/polarreport/internal/domain/efficiency"
	"github.com/okian/polarreport/internal/domain/model"
	"github.com/okian/polarreport/pkg/metrics"
)

// Default composer configuration constants.
const (
	DefaultTitle   = "Airfoil Analysis Report"
	ContentsTitle  = "Table of Contents"
	xLabel         = "Angle of Attack (alpha)"
	singlePointPad = 1.0
)

// Composer builds report pages from ranked entries.
type Composer struct {
	title     string
	contents  bool
	extractor *efficiency.Extractor
}

// NewComposer creates a Composer with configuration options.
func NewComposer(opts ...Option) *Composer {
	c := &Composer{
		title:     DefaultTitle,
		extractor: efficiency.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose appends the title page, the optional contents page and one detail
// page per entry to doc, in entry order. It returns the number of pages appended.
func (c *Composer) Compose(ctx context.Context, doc Document, entries []model.ReportEntry) (int, error) {
	pages := c.Pages(entries)
	for i, p := range pages {
		if err := ctx.Err(); err != nil {
			return i, fmt.Errorf("compose cancelled: %w", err)
		}
		if err := doc.AppendPage(ctx, p); err != nil {
			return i, fmt.Errorf("append %s page %d: %w", p.Kind, i+1, err)
		}
		metrics.RecordPageAppended(p.Kind.String())
	}
	return len(pages), nil
}

// Pages lays out every page without appending anything.
func (c *Composer) Pages(entries []model.ReportEntry) []Page {
	pages := make([]Page, 0, len(entries)+2)
	pages = append(pages, Page{Kind: KindTitle, Title: c.title})
	if c.contents {
		pages = append(pages, c.contentsPage(entries))
	}
	for _, e := range entries {
		pages = append(pages, c.detailPage(e))
	}
	return pages
}

func (c *Composer) contentsPage(entries []model.ReportEntry) Page {
	lines := make([]ContentsLine, len(entries))
	for i, e := range entries {
		lines[i] = ContentsLine{
			Rank: i + 1,
			Name: e.Polar.Name,
			CL:   e.Point.CL,
			Page: e.Page,
		}
	}
	return Page{Kind: KindContents, Title: ContentsTitle, Contents: lines}
}

func (c *Composer) detailPage(e model.ReportEntry) Page {
	pt := e.Point
	src := e.Polar.SourceName()
	xmin, xmax := alphaDomain(e.Polar.Samples)
	alphaLabel := fmt.Sprintf("alpha = %.2f", pt.Alpha)

	chart := func(m Metric, title, yLabel string, series []Point, markY float64, markLabel string) Chart {
		if src != "" {
			title = fmt.Sprintf("%s vs Angle of Attack (%s)", title, src)
		} else {
			title += " vs Angle of Attack"
		}
		return Chart{
			Metric:     m,
			Title:      title,
			XLabel:     xLabel,
			YLabel:     yLabel,
			Series:     series,
			XMin:       xmin,
			XMax:       xmax,
			MarkX:      pt.Alpha,
			MarkY:      markY,
			MarkXLabel: alphaLabel,
			MarkYLabel: markLabel,
		}
	}

	var cl, cd, ratio []Point
	for _, s := range e.Polar.Samples {
		cl = append(cl, Point{X: s.Alpha, Y: s.CL})
		cd = append(cd, Point{X: s.Alpha, Y: s.CD})
		if c.extractor.Eligible(s) {
			ratio = append(ratio, Point{X: s.Alpha, Y: efficiency.Ratio(s)})
		}
	}

	p := Page{
		Kind:     KindDetail,
		Title:    e.Polar.Name,
		Subtitle: "Re = " + e.Polar.Reynolds.String(),
		Charts: []Chart{
			chart(MetricCL, "Lift Coefficient (CL)", "Lift Coefficient (CL)", cl, pt.CL, fmt.Sprintf("CL = %.4f", pt.CL)),
			chart(MetricCD, "Drag Coefficient (CD)", "Drag Coefficient (CD)", cd, pt.CD, fmt.Sprintf("CD = %.4f", pt.CD)),
			chart(MetricRatio, "Lift-to-Drag Ratio (CL/CD)", "Lift-to-Drag Ratio (CL/CD)", ratio, pt.Ratio, fmt.Sprintf("Max CL/CD = %.4f", pt.Ratio)),
		},
		Caption: Caption(pt),
		Number:  e.Page,
	}
	if c.contents {
		p.Footer = fmt.Sprintf("Page %d", e.Page)
	}
	return p
}

// Caption summarizes the efficiency point for a detail page.
func Caption(pt model.EfficiencyPoint) string {
	return fmt.Sprintf("At alpha = %.2f: CL = %.4f, CD = %.4f, Max CL/CD = %.4f",
		pt.Alpha, pt.CL, pt.CD, pt.Ratio)
}

// alphaDomain returns the alpha range shared by a page's charts.
func alphaDomain(samples []model.PolarSample) (float64, float64) {
	if len(samples) == 0 {
		return -singlePointPad, singlePointPad
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range samples {
		lo = math.Min(lo, s.Alpha)
		hi = math.Max(hi, s.Alpha)
	}
	if lo == hi {
		return lo - singlePointPad, hi + singlePointPad
	}
	return lo, hi
}
