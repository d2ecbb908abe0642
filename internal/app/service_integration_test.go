package app_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/okian/polarreport/internal/adapters/export"
	"github.com/okian/polarreport/internal/app"
	"github.com/okian/polarreport/internal/polargen"
	. "github.com/smartystreets/goconvey/convey"
)

func TestServiceIntegration(t *testing.T) {
	Convey("Given twenty-five generated polars", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		in, out := fixture(t, polargen.Series(25)...)
		output := filepath.Join(out, "report.pdf")
		summary := filepath.Join(out, "summary.xlsx")
		metricsFile := filepath.Join(out, "polar.prom")

		Convey("When running the full pipeline with every output enabled", func() {
			sum, err := app.New(
				app.WithInputDirectory(in),
				app.WithOutputPath(output),
				app.WithContents(true),
				app.WithTitle("Synthetic Series"),
				app.WithWorkers(4),
				app.WithSummaryPath(summary),
				app.WithMetricsPath(metricsFile),
			).Run(ctx)
			So(err, ShouldBeNil)

			Convey("Then the report should be a PDF with every page", func() {
				So(sum.Pages, ShouldEqual, 27)
				data, readErr := os.ReadFile(output)
				So(readErr, ShouldBeNil)
				So(bytes.HasPrefix(data, []byte("%PDF")), ShouldBeTrue)
			})

			Convey("And the workbook should mirror the ranking", func() {
				So(sum.SummaryPath, ShouldEqual, summary)
				f, openErr := excelize.OpenFile(summary)
				So(openErr, ShouldBeNil)
				defer f.Close()
				rows, rowsErr := f.GetRows(export.RankingSheet)
				So(rowsErr, ShouldBeNil)
				So(len(rows), ShouldEqual, 26)
				for i, e := range sum.Entries {
					So(rows[i+1][2], ShouldEqual, e.Polar.Name)
				}
			})

			Convey("And the metrics textfile should be written", func() {
				data, readErr := os.ReadFile(metricsFile)
				So(readErr, ShouldBeNil)
				So(string(data), ShouldContainSubstring, "polar_report_files_discovered 25")
				So(string(data), ShouldContainSubstring, "polar_report_pages_appended_total")
			})

			Convey("And no temporary files should remain", func() {
				entries, _ := os.ReadDir(out)
				So(len(entries), ShouldEqual, 3)
			})
		})

		Convey("When running sequentially and in parallel", func() {
			seq, err1 := app.New(app.WithInputDirectory(in), app.WithOutputPath(filepath.Join(out, "seq.pdf")), app.WithWorkers(1)).Run(ctx)
			par, err2 := app.New(app.WithInputDirectory(in), app.WithOutputPath(filepath.Join(out, "par.pdf")), app.WithWorkers(8)).Run(ctx)

			Convey("Then the ranking should be identical", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(names(par.Entries), ShouldResemble, names(seq.Entries))
				for i := range seq.Entries {
					So(par.Entries[i].Page, ShouldEqual, seq.Entries[i].Page)
					So(par.Entries[i].Point, ShouldResemble, seq.Entries[i].Point)
				}
			})
		})
	})
}
