package polargen_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/polarreport/internal/polargen"
	"github.com/okian/polarreport/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestSpec_Render(t *testing.T) {
	Convey("Given a default spec", t, func() {
		s := polargen.Default("NACA 2412", 1.5e6)
		lines := strings.Split(strings.TrimRight(s.Render(), "\n"), "\n")

		Convey("Then the header should span thirteen lines", func() {
			So(len(lines), ShouldEqual, 13+len(s.Samples()))
			So(lines[3], ShouldContainSubstring, "Calculated polar for: NACA 2412")
			So(lines[12], ShouldStartWith, "  ------")
		})

		Convey("And every body row should have seven fields", func() {
			for _, l := range lines[13:] {
				So(len(strings.Fields(l)), ShouldEqual, 7)
			}
		})

		Convey("And the flow line should carry the Reynolds marker", func() {
			So(lines[8], ShouldContainSubstring, "Re =")
		})
	})

	Convey("Given a spec without identity markers", t, func() {
		s := polargen.Default("X", 1e6)
		s.OmitName = true
		s.OmitReynolds = true
		out := s.Render()

		Convey("Then neither marker should be present", func() {
			So(out, ShouldNotContainSubstring, "Calculated polar for")
			So(out, ShouldNotContainSubstring, "Re =")
		})
	})
}

func TestSpec_Samples(t *testing.T) {
	Convey("Given a sweep from -4 to 12 degrees", t, func() {
		samples := polargen.Default("A", 1e6).Samples()

		Convey("Then it should contain seventeen increasing samples with positive drag", func() {
			So(len(samples), ShouldEqual, 17)
			for i := 1; i < len(samples); i++ {
				So(samples[i].Alpha, ShouldBeGreaterThan, samples[i-1].Alpha)
			}
			for _, s := range samples {
				So(s.CD, ShouldBeGreaterThan, 0)
			}
		})
	})
}

func TestWriteDir(t *testing.T) {
	Convey("Given a series of specs", t, func() {
		dir := filepath.Join(t.TempDir(), "polars")
		specs := polargen.Series(4)

		Convey("When writing them to a directory", func() {
			paths, err := polargen.WriteDir(context.Background(), dir, specs)

			Convey("Then one file per spec should exist", func() {
				So(err, ShouldBeNil)
				So(len(paths), ShouldEqual, 4)
				for _, p := range paths {
					_, statErr := os.Stat(p)
					So(statErr, ShouldBeNil)
					So(filepath.Ext(p), ShouldEqual, ".txt")
				}
			})
		})

		Convey("When the context is already cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := polargen.WriteDir(ctx, dir, specs)

			Convey("Then it should stop with an error", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})

	Convey("Given a name with spaces", t, func() {
		Convey("Then the file name should be sanitized", func() {
			So(polargen.FileName(polargen.Default("NACA 2412", 1e6)), ShouldEqual, "naca_2412.txt")
		})
	})
}
