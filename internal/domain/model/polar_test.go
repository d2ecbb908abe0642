package model_test

import (
	"errors"
	"strconv"
	"testing"

	model "github.com/okian/polarreport/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestReynolds(t *testing.T) {
	convey.Convey("Given Reynolds numbers", t, func() {
		convey.Convey("When the value is unknown", func() {
			re := model.UnknownReynolds()

			convey.Convey("Then it should not report a value", func() {
				v, ok := re.Value()
				convey.So(ok, convey.ShouldBeFalse)
				convey.So(v, convey.ShouldEqual, 0)
				convey.So(re.String(), convey.ShouldEqual, "unknown")
			})

			convey.Convey("And it should differ from a known zero", func() {
				convey.So(re, convey.ShouldNotResemble, model.KnownReynolds(0))
				convey.So(model.KnownReynolds(0).Known(), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the value is known", func() {
			re := model.KnownReynolds(1.5e6)

			convey.Convey("Then it should round-trip through its string form", func() {
				v, err := strconv.ParseFloat(re.String(), 64)
				convey.So(err, convey.ShouldBeNil)
				convey.So(v, convey.ShouldEqual, 1.5e6)
			})
		})

		convey.Convey("When using the zero value", func() {
			var re model.Reynolds

			convey.Convey("Then it should be unknown", func() {
				convey.So(re.Known(), convey.ShouldBeFalse)
			})
		})
	})
}

func TestAirfoilPolar_SourceName(t *testing.T) {
	convey.Convey("Given a polar with a source path", t, func() {
		p := model.AirfoilPolar{Source: "/data/polars/naca2412.txt"}

		convey.Convey("Then the caption name should be the base name", func() {
			convey.So(p.SourceName(), convey.ShouldEqual, "naca2412.txt")
		})

		convey.Convey("And an empty source should stay empty", func() {
			convey.So(model.AirfoilPolar{}.SourceName(), convey.ShouldEqual, "")
		})
	})
}

func TestDataError(t *testing.T) {
	convey.Convey("Given a data error", t, func() {
		cause := errors.New("bad float")
		err := &model.DataError{Source: "a.txt", Line: 17, Reason: "invalid CL", Err: cause}

		convey.Convey("Then it should match the data sentinel", func() {
			convey.So(errors.Is(err, model.ErrData), convey.ShouldBeTrue)
			convey.So(errors.Is(err, model.ErrIO), convey.ShouldBeFalse)
			convey.So(errors.Is(err, cause), convey.ShouldBeTrue)
		})

		convey.Convey("And its message should name the source and line", func() {
			convey.So(err.Error(), convey.ShouldEqual, "a.txt: line 17: invalid CL: bad float")
		})

		convey.Convey("And a line-less error should omit the line", func() {
			convey.So(model.NewDataError("b.txt", "no samples").Error(), convey.ShouldEqual, "b.txt: no samples")
		})
	})
}
