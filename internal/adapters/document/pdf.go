// Package document renders report pages into a PDF using gonum/plot.
package document

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"math"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgpdf"

	"github.com/okian/polarreport/internal/domain/report"
	"github.com/okian/polarreport/pkg/logger"
	"github.com/okian/polarreport/pkg/metrics"
)

// Page geometry and typography defaults (US letter).
const (
	defaultWidth  = 8.5 * vg.Inch
	defaultHeight = 11 * vg.Inch
	defaultMargin = 0.75 * vg.Inch

	titleSize    = 26
	headingSize  = 18
	subtitleSize = 13
	bodySize     = 11
	captionSize  = 10
	footerSize   = 9

	lineSpacing = 1.6
	chartGap    = 14
	yPadRatio   = 0.08
)

var (
	seriesColor = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff} //nolint:gochecknoglobals // palette
	markColor   = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff} //nolint:gochecknoglobals // palette
)

// PDF is an append-only report document backed by a vgpdf canvas.
// Pages are drawn as they are appended and cannot be revised.
type PDF struct {
	canvas *vgpdf.Canvas
	width  vg.Length
	height vg.Length
	margin vg.Length

	style     text.Style
	sheets    int
	pages     int
	finalized bool

	logger logger.Logger
}

// New creates an empty PDF document.
func New(opts ...Option) *PDF {
	d := &PDF{
		width:  defaultWidth,
		height: defaultHeight,
		margin: defaultMargin,
		style:  plot.New().Title.TextStyle,
		logger: logger.Get().Named("document"),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.canvas = vgpdf.New(d.width, d.height)
	return d
}

// Pages returns the number of logical pages appended so far.
func (d *PDF) Pages() int { return d.pages }

// Sheets returns the number of physical PDF pages drawn so far. A long
// contents page may span more than one sheet.
func (d *PDF) Sheets() int { return d.sheets }

// AppendPage draws p onto a new sheet at the end of the document.
func (d *PDF) AppendPage(ctx context.Context, p report.Page) error {
	if d.finalized {
		return ErrFinalized
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	var err error
	switch p.Kind {
	case report.KindTitle:
		d.titlePage(p)
	case report.KindContents:
		d.contentsPage(p)
	case report.KindDetail:
		err = d.detailPage(p)
	default:
		err = fmt.Errorf("%w: %d", ErrUnknownPageKind, p.Kind)
	}
	if err != nil {
		return err
	}

	d.pages++
	metrics.RecordRenderLatency(float64(time.Since(start).Microseconds()) / 1000)
	d.logger.Debug(ctx, "page appended",
		logger.String("kind", p.Kind.String()),
		logger.String("title", p.Title),
		logger.Int("sheets", d.sheets))
	return nil
}

// WriteTo serializes the finished document. No page can be appended afterwards.
func (d *PDF) WriteTo(w io.Writer) (int64, error) {
	if d.finalized {
		return 0, ErrFinalized
	}
	if d.sheets == 0 {
		return 0, ErrEmptyDocument
	}
	d.finalized = true
	n, err := d.canvas.WriteTo(w)
	if err != nil {
		return n, fmt.Errorf("write pdf: %w", err)
	}
	return n, nil
}

// sheet starts a new physical page and returns a drawing canvas for it.
func (d *PDF) sheet() draw.Canvas {
	if d.sheets > 0 {
		d.canvas.NextPage()
	}
	d.sheets++
	return draw.New(d.canvas)
}

func (d *PDF) titlePage(p report.Page) {
	dc := d.sheet()
	y := dc.Min.Y + (dc.Max.Y-dc.Min.Y)*0.6
	d.text(dc, titleSize, y, p.Title, text.XCenter)
	if p.Subtitle != "" {
		d.text(dc, subtitleSize, y-vg.Points(titleSize*lineSpacing), p.Subtitle, text.XCenter)
	}
}

func (d *PDF) contentsPage(p report.Page) {
	dc := d.sheet()
	top := dc.Max.Y - d.margin
	d.text(dc, headingSize, top, p.Title, text.XCenter)

	step := vg.Points(bodySize * lineSpacing)
	first := top - vg.Points(headingSize*lineSpacing*1.5)
	y := first
	for _, line := range p.Contents {
		if y < dc.Min.Y+d.margin {
			dc = d.sheet()
			y = dc.Max.Y - d.margin
		}
		d.text(dc, bodySize, y, line.Text(), text.XLeft)
		y -= step
	}
}

func (d *PDF) detailPage(p report.Page) error {
	plots := make([][]*plot.Plot, 0, len(p.Charts))
	for _, c := range p.Charts {
		pl, err := chart(c)
		if err != nil {
			return fmt.Errorf("chart %q: %w", c.Title, err)
		}
		plots = append(plots, []*plot.Plot{pl})
	}

	dc := d.sheet()
	top := dc.Max.Y - d.margin
	d.text(dc, headingSize, top, p.Title, text.XCenter)
	if p.Subtitle != "" {
		d.text(dc, subtitleSize, top-vg.Points(headingSize*lineSpacing), p.Subtitle, text.XCenter)
	}

	bottom := dc.Min.Y + d.margin
	if p.Footer != "" {
		d.text(dc, footerSize, bottom-vg.Points(footerSize*lineSpacing), p.Footer, text.XCenter)
	}
	if p.Caption != "" {
		d.text(dc, captionSize, bottom, p.Caption, text.XCenter)
	}

	if len(plots) == 0 {
		return nil
	}
	area := draw.Crop(dc,
		d.margin, -d.margin,
		d.margin+vg.Points(captionSize*lineSpacing*2),
		-(d.margin + vg.Points((headingSize+subtitleSize)*lineSpacing*1.5)))
	tiles := draw.Tiles{Rows: len(plots), Cols: 1, PadY: vg.Points(chartGap)}
	canvases := plot.Align(plots, tiles, area)
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}
	return nil
}

// text draws one line of text at height y. Left-aligned text starts at the
// margin; centred text is centred on the sheet.
func (d *PDF) text(dc draw.Canvas, size float64, y vg.Length, s string, align text.XAlignment) {
	if s == "" {
		return
	}
	sty := d.style
	sty.Font.Size = vg.Points(size)
	sty.XAlign = align
	sty.YAlign = text.YCenter

	x := dc.Min.X + d.margin
	if align == text.XCenter {
		x = dc.Min.X + (dc.Max.X-dc.Min.X)/2
	}
	dc.FillText(sty, vg.Point{X: x, Y: y}, s)
}

// chart builds one metric plot with its reference lines and labels.
func chart(c report.Chart) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = c.XLabel
	p.Y.Label.Text = c.YLabel
	p.Add(plotter.NewGrid())

	ymin, ymax := valueRange(c)

	if len(c.Series) > 0 {
		xys := make(plotter.XYs, len(c.Series))
		for i, pt := range c.Series {
			xys[i].X = pt.X
			xys[i].Y = pt.Y
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, err
		}
		line.LineStyle.Width = vg.Points(1.2)
		line.LineStyle.Color = seriesColor
		p.Add(line)
	}

	vertical, err := plotter.NewLine(plotter.XYs{{X: c.MarkX, Y: ymin}, {X: c.MarkX, Y: ymax}})
	if err != nil {
		return nil, err
	}
	horizontal, err := plotter.NewLine(plotter.XYs{{X: c.XMin, Y: c.MarkY}, {X: c.XMax, Y: c.MarkY}})
	if err != nil {
		return nil, err
	}
	for _, l := range []*plotter.Line{vertical, horizontal} {
		l.LineStyle.Color = markColor
		l.LineStyle.Width = vg.Points(0.8)
		l.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    plotter.XYs{{X: c.MarkX, Y: ymax}, {X: c.XMin, Y: c.MarkY}},
		Labels: []string{c.MarkXLabel, c.MarkYLabel},
	})
	if err != nil {
		return nil, err
	}
	labels.Offset = vg.Point{X: vg.Points(3), Y: vg.Points(-10)}
	for i := range labels.TextStyle {
		labels.TextStyle[i].Color = markColor
		labels.TextStyle[i].Font.Size = vg.Points(8)
	}

	p.Add(vertical, horizontal, labels)
	p.X.Min, p.X.Max = c.XMin, c.XMax
	p.Y.Min, p.Y.Max = ymin, ymax
	return p, nil
}

// valueRange returns the padded y range covering the series and the mark.
func valueRange(c report.Chart) (float64, float64) {
	lo, hi := c.MarkY, c.MarkY
	for _, pt := range c.Series {
		lo = math.Min(lo, pt.Y)
		hi = math.Max(hi, pt.Y)
	}
	pad := (hi - lo) * yPadRatio
	if pad == 0 {
		pad = math.Max(math.Abs(hi)*yPadRatio, 1e-3)
	}
	return lo - pad, hi + pad
}
