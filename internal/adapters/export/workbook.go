// Package export writes the ranking summary as an Excel workbook.
package export

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/okian/polarreport/internal/domain/model"
)

// Sheet names.
const (
	RankingSheet = "Ranking"
	SkippedSheet = "Skipped"
)

// Column headers, in sheet order.
var (
	RankingHeader = []string{"Rank", "Page", "Airfoil", "Reynolds", "Source", "Alpha", "CL", "CD", "CL/CD"} //nolint:gochecknoglobals // fixed layout
	SkippedHeader = []string{"Source", "Stage", "Reason"}                                                  //nolint:gochecknoglobals // fixed layout
)

const (
	creator      = "polarreport"
	defaultTitle = "Airfoil ranking"

	nameColWidth   = 24
	sourceColWidth = 32
	reasonColWidth = 60
)

// Workbook is an in-memory summary workbook.
type Workbook struct {
	file *excelize.File
}

// NewWorkbook builds the workbook for the ranked entries and the skipped files.
func NewWorkbook(entries []model.ReportEntry, skipped []model.SkippedFile, opts ...Option) (*Workbook, error) {
	p := props{title: defaultTitle}
	for _, opt := range opts {
		opt(&p)
	}

	f := excelize.NewFile()
	wb := &Workbook{file: f}

	if err := f.SetDocProps(&excelize.DocProperties{
		Creator:    creator,
		Title:      p.title,
		Identifier: p.runID,
	}); err != nil {
		return nil, wb.fail(err)
	}

	if err := f.SetSheetName(f.GetSheetName(0), RankingSheet); err != nil {
		return nil, wb.fail(err)
	}
	if _, err := f.NewSheet(SkippedSheet); err != nil {
		return nil, wb.fail(err)
	}
	if err := wb.ranking(entries); err != nil {
		return nil, wb.fail(err)
	}
	if err := wb.skipped(skipped); err != nil {
		return nil, wb.fail(err)
	}
	return wb, nil
}

func (w *Workbook) fail(err error) error {
	_ = w.file.Close()
	return fmt.Errorf("%w: %w", ErrBuildWorkbook, err)
}

func (w *Workbook) ranking(entries []model.ReportEntry) error {
	if err := w.header(RankingSheet, RankingHeader); err != nil {
		return err
	}
	for i, e := range entries {
		var re any = e.Polar.Reynolds.String()
		if v, ok := e.Polar.Reynolds.Value(); ok {
			re = v
		}
		row := []any{
			i + 1,
			e.Page,
			e.Polar.Name,
			re,
			e.Polar.SourceName(),
			e.Point.Alpha,
			e.Point.CL,
			e.Point.CD,
			e.Point.Ratio,
		}
		if err := w.row(RankingSheet, i+2, row); err != nil {
			return err
		}
	}
	if err := w.file.SetColWidth(RankingSheet, "C", "C", nameColWidth); err != nil {
		return err
	}
	return w.file.SetColWidth(RankingSheet, "E", "E", sourceColWidth)
}

func (w *Workbook) skipped(files []model.SkippedFile) error {
	if err := w.header(SkippedSheet, SkippedHeader); err != nil {
		return err
	}
	for i, s := range files {
		row := []any{filepath.Base(s.Source), s.Stage, s.Reason()}
		if err := w.row(SkippedSheet, i+2, row); err != nil {
			return err
		}
	}
	if err := w.file.SetColWidth(SkippedSheet, "A", "A", sourceColWidth); err != nil {
		return err
	}
	return w.file.SetColWidth(SkippedSheet, "C", "C", reasonColWidth)
}

func (w *Workbook) header(sheet string, cols []string) error {
	row := make([]any, len(cols))
	for i, c := range cols {
		row[i] = c
	}
	if err := w.row(sheet, 1, row); err != nil {
		return err
	}
	style, err := w.file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(cols), 1)
	if err != nil {
		return err
	}
	return w.file.SetCellStyle(sheet, "A1", last, style)
}

func (w *Workbook) row(sheet string, n int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return err
	}
	return w.file.SetSheetRow(sheet, cell, &values)
}

// WriteTo writes the workbook in xlsx format.
func (w *Workbook) WriteTo(out io.Writer) (int64, error) {
	return w.file.WriteTo(out)
}

// Close releases the workbook's resources.
func (w *Workbook) Close() error {
	return w.file.Close()
}
