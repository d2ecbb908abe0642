package app_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/polarreport/internal/app"
	"github.com/okian/polarreport/internal/config"
	"github.com/okian/polarreport/internal/domain/model"
	"github.com/okian/polarreport/internal/polargen"
	"github.com/okian/polarreport/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init(logger.WithLevel("error"))
	if err != nil {
		panic(err)
	}
}

// fixture writes specs into a fresh input directory and returns it along
// with an empty output directory.
func fixture(t *testing.T, specs ...polargen.Spec) (string, string) {
	t.Helper()
	in := filepath.Join(t.TempDir(), "in")
	if _, err := polargen.WriteDir(context.Background(), in, specs); err != nil {
		t.Fatal(err)
	}
	return in, t.TempDir()
}

func writeBroken(t *testing.T, dir string) {
	t.Helper()
	content := polargen.Default("BROKEN", 1e6).Render() + "  13.000  1.2\n"
	if err := os.WriteFile(filepath.Join(dir, "broken.txt"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func dragless() polargen.Spec {
	s := polargen.Default("FLAT", 1e6)
	s.CD0, s.K = 0, 0
	return s
}

func names(entries []model.ReportEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Polar.Name
	}
	return out
}

func TestService_New(t *testing.T) {
	Convey("Given a service without paths", t, func() {
		svc := app.New()

		Convey("When running it", func() {
			_, err := svc.Run(context.Background())

			Convey("Then it should refuse to start", func() {
				So(errors.Is(err, app.ErrMissingPaths), ShouldBeTrue)
			})
		})
	})

	Convey("Given a service built from a config", t, func() {
		in, out := fixture(t, polargen.Series(2)...)
		cfg := config.New(context.Background(),
			config.WithInputDirectory(in),
			config.WithOutputPath(filepath.Join(out, "report.pdf")),
			config.WithContents(true),
			config.WithWorkers(1),
		)
		sum, err := app.New(app.WithConfig(cfg)).Run(context.Background())

		Convey("Then the config values should drive the run", func() {
			So(err, ShouldBeNil)
			So(sum.Pages, ShouldEqual, 4) // title, contents, two details
			So(sum.OutputPath, ShouldEqual, cfg.OutputPath)
		})
	})
}

func TestService_Run(t *testing.T) {
	Convey("Given a directory with valid, broken and dragless polars", t, func() {
		ctx := context.Background()
		in, out := fixture(t, append(polargen.Series(3), dragless())...)
		writeBroken(t, in)
		output := filepath.Join(out, "report.pdf")

		Convey("When running with the default skip policy", func() {
			sum, err := app.New(
				app.WithInputDirectory(in),
				app.WithOutputPath(output),
				app.WithContents(true),
			).Run(ctx)

			Convey("Then the report should cover the valid files only", func() {
				So(err, ShouldBeNil)
				So(sum.Discovered, ShouldEqual, 5)
				So(len(sum.Entries), ShouldEqual, 3)
				So(sum.Pages, ShouldEqual, 5)
				So(sum.RunID, ShouldNotBeEmpty)
				info, statErr := os.Stat(output)
				So(statErr, ShouldBeNil)
				So(info.Size(), ShouldEqual, sum.Bytes)
			})

			Convey("And the skipped files should be listed with their stage", func() {
				So(len(sum.Skipped), ShouldEqual, 2)
				So(filepath.Base(sum.Skipped[0].Source), ShouldEqual, "broken.txt")
				So(sum.Skipped[0].Stage, ShouldEqual, "parse")
				So(errors.Is(sum.Skipped[0].Err, model.ErrData), ShouldBeTrue)
				So(filepath.Base(sum.Skipped[1].Source), ShouldEqual, "flat.txt")
				So(sum.Skipped[1].Stage, ShouldEqual, "efficiency")
			})

			Convey("And entries should be ranked by ascending CL with pages 1..N", func() {
				for i, e := range sum.Entries {
					So(e.Page, ShouldEqual, i+1)
					if i > 0 {
						So(e.Point.CL, ShouldBeGreaterThanOrEqualTo, sum.Entries[i-1].Point.CL)
					}
				}
			})
		})

		Convey("When running in fail-fast mode", func() {
			_, err := app.New(
				app.WithInputDirectory(in),
				app.WithOutputPath(output),
				app.WithFailFast(true),
			).Run(ctx)

			Convey("Then the run should abort without writing a report", func() {
				So(errors.Is(err, model.ErrData), ShouldBeTrue)
				_, statErr := os.Stat(output)
				So(os.IsNotExist(statErr), ShouldBeTrue)
			})
		})

		Convey("When the output directory does not exist", func() {
			_, err := app.New(
				app.WithInputDirectory(in),
				app.WithOutputPath(filepath.Join(out, "missing", "report.pdf")),
			).Run(ctx)

			Convey("Then an I/O error should be returned", func() {
				So(errors.Is(err, model.ErrIO), ShouldBeTrue)
			})
		})

		Convey("When the summary workbook cannot be written", func() {
			_, err := app.New(
				app.WithInputDirectory(in),
				app.WithOutputPath(output),
				app.WithSummaryPath(filepath.Join(out, "missing", "summary.xlsx")),
			).Run(ctx)

			Convey("Then the report should be removed as well", func() {
				So(errors.Is(err, model.ErrIO), ShouldBeTrue)
				_, statErr := os.Stat(output)
				So(os.IsNotExist(statErr), ShouldBeTrue)
				entries, _ := os.ReadDir(out)
				So(entries, ShouldBeEmpty)
			})
		})

		Convey("When the context is cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := app.New(app.WithInputDirectory(in), app.WithOutputPath(output)).Run(cctx)

			Convey("Then nothing should be written", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
				_, statErr := os.Stat(output)
				So(os.IsNotExist(statErr), ShouldBeTrue)
			})
		})
	})

	Convey("Given directories without usable polars", t, func() {
		ctx := context.Background()

		Convey("When the directory is empty", func() {
			in, out := fixture(t)
			output := filepath.Join(out, "report.pdf")
			_, err := app.New(app.WithInputDirectory(in), app.WithOutputPath(output)).Run(ctx)

			Convey("Then ErrNoPolars should be returned and no report written", func() {
				So(errors.Is(err, app.ErrNoPolars), ShouldBeTrue)
				_, statErr := os.Stat(output)
				So(os.IsNotExist(statErr), ShouldBeTrue)
			})
		})

		Convey("When every file is malformed", func() {
			in, out := fixture(t, dragless())
			writeBroken(t, in)
			output := filepath.Join(out, "report.pdf")
			sum, err := app.New(app.WithInputDirectory(in), app.WithOutputPath(output)).Run(ctx)

			Convey("Then ErrNoPolars should be returned with the skipped files", func() {
				So(errors.Is(err, app.ErrNoPolars), ShouldBeTrue)
				So(len(sum.Skipped), ShouldEqual, 2)
				_, statErr := os.Stat(output)
				So(os.IsNotExist(statErr), ShouldBeTrue)
			})
		})

		Convey("When the input directory does not exist", func() {
			_, err := app.New(
				app.WithInputDirectory(filepath.Join(t.TempDir(), "absent")),
				app.WithOutputPath(filepath.Join(t.TempDir(), "report.pdf")),
			).Run(ctx)

			Convey("Then an I/O error should be returned", func() {
				So(errors.Is(err, model.ErrIO), ShouldBeTrue)
			})
		})
	})

	Convey("Given polars with incomplete identity", t, func() {
		anonymous := polargen.Default("", 1e6)
		anonymous.OmitName = true
		noRe := polargen.Default("E387", 2e5)
		noRe.OmitReynolds = true
		in, out := fixture(t, anonymous, noRe)

		sum, err := app.New(app.WithInputDirectory(in), app.WithOutputPath(filepath.Join(out, "r.pdf"))).Run(context.Background())

		Convey("Then they should still be reported with sentinel values", func() {
			So(err, ShouldBeNil)
			So(len(sum.Entries), ShouldEqual, 2)
			So(names(sum.Entries), ShouldContain, model.UnknownAirfoil)
			for _, e := range sum.Entries {
				if e.Polar.Name == "E387" {
					So(e.Polar.Reynolds.Known(), ShouldBeFalse)
				}
			}
		})
	})
}
