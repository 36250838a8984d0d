package scoring_test

import (
	"testing"

	"github.com/careerhq/attribute-engine/internal/domain/classify"
	"github.com/careerhq/attribute-engine/internal/domain/model"
	"github.com/careerhq/attribute-engine/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

const tolerance = 1e-9

func element(id string, scaleValues ...model.ScaleValue) model.OccupationElement {
	return model.OccupationElement{ElementID: id, Scales: scaleValues}
}

func sv(id string, v float64) model.ScaleValue {
	return model.ScaleValue{ScaleID: id, Value: v}
}

func TestExperienceScore(t *testing.T) {
	Convey("Given the per-family experience score formulas", t, func() {
		Convey("When scoring an ability element with LV and IM", func() {
			e := element("1.A.1.a.1", sv("LV", 4.88), sv("IM", 4.62))

			Convey("Then score is (LV * IM) / 35", func() {
				So(scoring.ExperienceScore(e), ShouldAlmostEqual, 4.88*4.62/35.0, tolerance)
			})
		})

		Convey("When scoring an occupational interest element", func() {
			e := element("1.B.1.x", sv("OI", 7))

			Convey("Then score is OI / 7", func() {
				So(scoring.ExperienceScore(e), ShouldAlmostEqual, 1.0, tolerance)
			})
		})

		Convey("When scoring a work value element", func() {
			e := element("1.B.2.c", sv("EX", 3.5))

			Convey("Then score is EX / 7", func() {
				So(scoring.ExperienceScore(e), ShouldAlmostEqual, 0.5, tolerance)
			})
		})

		Convey("When scoring a work style element", func() {
			Convey("Then score is (WI + 3) / 6", func() {
				So(scoring.ExperienceScore(element("1.D.1", sv("WI", -3))), ShouldAlmostEqual, 0.0, tolerance)
				So(scoring.ExperienceScore(element("1.D.1", sv("WI", 0))), ShouldAlmostEqual, 0.5, tolerance)
				So(scoring.ExperienceScore(element("1.D.1", sv("WI", 3))), ShouldAlmostEqual, 1.0, tolerance)
			})
		})

		Convey("When scoring a category distribution element", func() {
			e := element("2.D.1", sv("RL-5", 40), sv("RL-8", 72))

			Convey("Then score is the max of present categories over 100", func() {
				So(scoring.ExperienceScore(e), ShouldAlmostEqual, 0.72, tolerance)
			})

			Convey("And absent categories do not participate as zeros", func() {
				single := element("3.A.1", sv("PT-2", 15))
				So(scoring.ExperienceScore(single), ShouldAlmostEqual, 0.15, tolerance)
			})
		})

		Convey("When required scales are missing", func() {
			Convey("Then the element falls through to the default 0.5", func() {
				// Ability family without IM.
				So(scoring.ExperienceScore(element("1.A.1.a.1", sv("LV", 6))), ShouldAlmostEqual, 0.5, tolerance)
				// Interest family with no scales at all.
				So(scoring.ExperienceScore(element("1.B.1.x")), ShouldAlmostEqual, 0.5, tolerance)
				// Category family with only unrecognized scales.
				So(scoring.ExperienceScore(element("2.D.1", sv("XX", 90))), ShouldAlmostEqual, 0.5, tolerance)
			})
		})

		Convey("When the element id matches no family", func() {
			e := element("9.Z.1", sv("LV", 7), sv("IM", 5))

			Convey("Then the default fallback of 0.5 applies", func() {
				So(scoring.ExperienceScore(e), ShouldAlmostEqual, 0.5, tolerance)
			})
		})

		Convey("When reference data is out of range", func() {
			Convey("Then the result is clamped to [0, 1] rather than failing", func() {
				So(scoring.ExperienceScore(element("1.A.1.a.1", sv("LV", 70), sv("IM", 50))), ShouldEqual, 1.0)
				So(scoring.ExperienceScore(element("1.D.1", sv("WI", -30))), ShouldEqual, 0.0)
			})
		})
	})
}

func TestForFamily(t *testing.T) {
	Convey("Given a pre-classified element", t, func() {
		e := element("1.A.1.a.1", sv("LV", 4.88), sv("IM", 4.62))

		Convey("Then ForFamily matches ExperienceScore for the resolved family", func() {
			family := classify.Element(e)
			So(scoring.ForFamily(family, e), ShouldAlmostEqual, scoring.ExperienceScore(e), tolerance)
		})

		Convey("Then forcing the default family yields 0.5 regardless of scales", func() {
			So(scoring.ForFamily(classify.DefaultFallback, e), ShouldAlmostEqual, 0.5, tolerance)
		})
	})
}
