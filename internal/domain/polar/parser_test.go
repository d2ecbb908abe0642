package polar_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/okian/polarreport/internal/domain/model"
	"github.com/okian/polarreport/internal/domain/polar"
	"github.com/okian/polarreport/internal/polargen"
	. "github.com/smartystreets/goconvey/convey"
)

// header builds a thirteen line header with the given identity and flow lines.
func header(identity, flow string) string {
	lines := []string{
		"",
		"       XFOIL         Version 6.99",
		"",
		identity,
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
	return strings.Join(lines, "\n") + "\n"
}

const rows = `  -2.000  -0.0035   0.00581   0.00079  -0.0527   0.7270   0.2120
   0.000   0.2390   0.00560   0.00071  -0.0535   0.6700   0.3520
   4.000   0.6840   0.00690   0.00160  -0.0551   0.5300   0.9990
`

func TestParse_Identity(t *testing.T) {
	Convey("Given a polar file with both identity markers", t, func() {
		content := header(" Calculated polar for: NACA 2412", " Mach =   0.000     Re =     1.5 E 6     Ncrit =   9.000") + rows

		Convey("When parsing it", func() {
			res, err := polar.Parse("naca2412.txt", strings.NewReader(content))

			Convey("Then the name and Reynolds number should be extracted", func() {
				So(err, ShouldBeNil)
				So(res.Polar.Name, ShouldEqual, "NACA 2412")
				re, ok := res.Polar.Reynolds.Value()
				So(ok, ShouldBeTrue)
				So(re, ShouldEqual, 1.5e6)
				So(res.Issues, ShouldBeEmpty)
				So(res.Polar.Source, ShouldEqual, "naca2412.txt")
			})
		})
	})

	Convey("Given a polar file without a Reynolds marker", t, func() {
		content := header(" Calculated polar for: Clark Y", " Mach =   0.000     Ncrit =   9.000") + rows

		Convey("When parsing it", func() {
			res, err := polar.Parse("clarky.txt", strings.NewReader(content))

			Convey("Then Reynolds should be unknown rather than zero", func() {
				So(err, ShouldBeNil)
				So(res.Polar.Reynolds.Known(), ShouldBeFalse)
				So(res.Polar.Reynolds.String(), ShouldEqual, "unknown")
				So(res.Issues, ShouldContain, polar.IssueReynoldsMissing)
			})
		})
	})

	Convey("Given a polar file with a truncated Reynolds marker", t, func() {
		content := header(" Calculated polar for: E387", " Mach =   0.000     Re =     2.0") + rows

		Convey("Then Reynolds should be unknown and flagged malformed", func() {
			res, err := polar.Parse("e387.txt", strings.NewReader(content))
			So(err, ShouldBeNil)
			So(res.Polar.Reynolds.Known(), ShouldBeFalse)
			So(res.Issues, ShouldContain, polar.IssueReynoldsMalformed)
		})
	})

	Convey("Given a polar file whose name line sits past the scan window", t, func() {
		content := header(" Polar sweep", " Mach =   0.000     Re =     1.000 e 6") + rows
		content = strings.Replace(content, " 1 1 Reynolds number fixed          Mach number fixed", " Calculated polar for: Late Name", 1)

		Convey("Then the sentinel name should be used", func() {
			res, err := polar.Parse("late.txt", strings.NewReader(content))
			So(err, ShouldBeNil)
			So(res.Polar.Name, ShouldEqual, model.UnknownAirfoil)
			So(res.Issues, ShouldContain, polar.IssueNameMissing)
		})

		Convey("And a wider scan window should find it", func() {
			res, err := polar.New(polar.WithIdentityScanLines(6)).Parse("late.txt", strings.NewReader(content))
			So(err, ShouldBeNil)
			So(res.Polar.Name, ShouldEqual, "Late Name")
		})
	})

	Convey("Given an identity line with several colons", t, func() {
		content := header(" Calculated polar for: family: S1223", " Re = 2.0 e 5") + rows

		Convey("Then the text after the last colon should be the name", func() {
			res, err := polar.Parse("s1223.txt", strings.NewReader(content))
			So(err, ShouldBeNil)
			So(res.Polar.Name, ShouldEqual, "S1223")
		})
	})
}

func TestParse_Table(t *testing.T) {
	Convey("Given a well formed table", t, func() {
		content := header(" Calculated polar for: NACA 0012", " Re = 1.0 e 6") + rows + "\n\n"

		Convey("When parsing it", func() {
			res, err := polar.Parse("n0012.txt", strings.NewReader(content))

			Convey("Then every row should be kept in source order", func() {
				So(err, ShouldBeNil)
				So(len(res.Polar.Samples), ShouldEqual, 3)
				So(res.Polar.Samples[0].Alpha, ShouldEqual, -2.0)
				So(res.Polar.Samples[2].Alpha, ShouldEqual, 4.0)
			})

			Convey("And every column should land in its field", func() {
				s := res.Polar.Samples[1]
				So(s.CL, ShouldEqual, 0.2390)
				So(s.CD, ShouldEqual, 0.00560)
				So(s.CDp, ShouldEqual, 0.00071)
				So(s.CM, ShouldEqual, -0.0535)
				So(s.TopXtr, ShouldEqual, 0.6700)
				So(s.BotXtr, ShouldEqual, 0.3520)
			})
		})
	})

	Convey("Given a row with a missing field", t, func() {
		content := header(" Calculated polar for: Bad", " Re = 1.0 e 6") + rows + "   6.000   0.9000   0.00800   0.00200  -0.0560   0.4000\n"

		Convey("Then the whole file should fail with a data error naming the line", func() {
			_, err := polar.Parse("bad.txt", strings.NewReader(content))
			So(err, ShouldNotBeNil)
			So(errors.Is(err, model.ErrData), ShouldBeTrue)

			var de *model.DataError
			So(errors.As(err, &de), ShouldBeTrue)
			So(de.Line, ShouldEqual, 17)
			So(de.Source, ShouldEqual, "bad.txt")
		})
	})

	Convey("Given a row with a non-numeric field", t, func() {
		content := header(" Calculated polar for: Bad", " Re = 1.0 e 6") + "   0.000   abc   0.00560   0.00071  -0.0535   0.6700   0.3520\n"

		Convey("Then it should fail rather than drop the row", func() {
			_, err := polar.Parse("bad.txt", strings.NewReader(content))
			So(errors.Is(err, model.ErrData), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "invalid CL")
		})
	})

	Convey("Given a row with a non-finite value", t, func() {
		content := header(" Calculated polar for: Bad", " Re = 1.0 e 6") + "   0.000   NaN   0.00560   0.00071  -0.0535   0.6700   0.3520\n"

		Convey("Then it should fail with a data error", func() {
			_, err := polar.Parse("bad.txt", strings.NewReader(content))
			So(errors.Is(err, model.ErrData), ShouldBeTrue)
		})
	})

	Convey("Given a file with only a header", t, func() {
		content := header(" Calculated polar for: Empty", " Re = 1.0 e 6")

		Convey("Then it should fail with a data error instead of an empty polar", func() {
			_, err := polar.Parse("empty.txt", strings.NewReader(content))
			So(errors.Is(err, model.ErrData), ShouldBeTrue)
		})
	})

	Convey("Given a file with one sample row", t, func() {
		content := header(" Calculated polar for: One", " Re = 1.0 e 6") + "   2.000   0.4500   0.00610   0.00100  -0.0540   0.6000   0.6000\n"

		Convey("Then it should parse one sample", func() {
			res, err := polar.Parse("one.txt", strings.NewReader(content))
			So(err, ShouldBeNil)
			So(len(res.Polar.Samples), ShouldEqual, 1)
		})
	})
}

func TestParse_Generated(t *testing.T) {
	Convey("Given a generated sweep", t, func() {
		spec := polargen.Default("NACA 4415", 3e6)

		Convey("When parsing the rendered file", func() {
			res, err := polar.Parse("naca4415.txt", strings.NewReader(spec.Render()))

			Convey("Then the sample count and identity should match the generated file", func() {
				So(err, ShouldBeNil)
				So(res.Polar.Name, ShouldEqual, "NACA 4415")
				So(len(res.Polar.Samples), ShouldEqual, len(spec.Samples()))
				re, ok := res.Polar.Reynolds.Value()
				So(ok, ShouldBeTrue)
				So(re, ShouldAlmostEqual, 3e6, 1)
			})
		})
	})
}
