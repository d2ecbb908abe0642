// Package report lays out the paginated airfoil report.
//
// The composer turns ranked entries into Page values and appends them, in
// order, to a Document. Pages carry everything a renderer needs (texts,
// formatted labels, chart series and reference marks); drawing is left to
// the Document implementation.
package report

import (
	"context"
	"fmt"
)

// Kind identifies the role of a page.
type Kind int

// Page kinds in document order.
const (
	KindTitle Kind = iota
	KindContents
	KindDetail
)

func (k Kind) String() string {
	switch k {
	case KindTitle:
		return "title"
	case KindContents:
		return "contents"
	case KindDetail:
		return "detail"
	default:
		return "unknown"
	}
}

// Metric identifies what a chart plots against alpha.
type Metric int

// Chart metrics in page order, top to bottom.
const (
	MetricCL Metric = iota
	MetricCD
	MetricRatio
)

// Point is an (x, y) pair in data units.
type Point struct {
	X, Y float64
}

// Chart is one metric-vs-alpha chart with its efficiency reference marks.
type Chart struct {
	Metric Metric
	Title  string
	XLabel string
	YLabel string
	Series []Point

	// XMin and XMax are shared by all charts of a page.
	XMin, XMax float64

	// MarkX is the efficiency alpha, MarkY the chart's value there.
	MarkX      float64
	MarkY      float64
	MarkXLabel string
	MarkYLabel string
}

// ContentsLine is one table-of-contents row.
type ContentsLine struct {
	Rank int
	Name string
	CL   float64
	Page int
}

// Text renders the row as printed on the contents page.
func (l ContentsLine) Text() string {
	return fmt.Sprintf("%d. %s  (CL = %.4f)  page %d", l.Rank, l.Name, l.CL, l.Page)
}

// Page is one page of the report.
type Page struct {
	Kind     Kind
	Title    string
	Subtitle string
	Contents []ContentsLine
	Charts   []Chart
	Caption  string
	Footer   string
	// Number is the detail page number; zero for unnumbered pages.
	Number int
}

// Document is an append-only page sink. Pages cannot be revised once appended.
type Document interface {
	AppendPage(ctx context.Context, p Page) error
}
