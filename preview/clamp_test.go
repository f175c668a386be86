package preview

import (
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestClampPosition(t *testing.T) {
	Convey("ClampPosition", t, func() {
		Convey("Passes through positions that already fit", func() {
			So(ClampPosition(50, 1000, 160), ShouldEqual, 50)
		})

		Convey("Pins the bubble at the edges", func() {
			// Half of a 160px bubble in a 1000px container is 8%.
			So(ClampPosition(0, 1000, 160), ShouldEqual, 8)
			So(ClampPosition(3, 1000, 160), ShouldEqual, 8)
			So(ClampPosition(100, 1000, 160), ShouldEqual, 92)
			So(ClampPosition(97, 1000, 160), ShouldEqual, 92)
		})

		Convey("Out-of-range hovers are clamped, not rejected", func() {
			So(ClampPosition(-50, 1000, 160), ShouldEqual, 8)
			So(ClampPosition(150, 1000, 160), ShouldEqual, 92)
		})

		Convey("The bubble never overflows across hover and width ranges", func() {
			for hover := -50.0; hover <= 150; hover += 10 {
				for width := 160.0; width <= 2000; width += 230 {
					position := ClampPosition(hover, width, 160)

					left := position/100*width - 80
					right := position/100*width + 80

					So(left, ShouldBeGreaterThanOrEqualTo, 0)
					So(right, ShouldBeLessThanOrEqualTo, width)
				}
			}
		})

		Convey("A container narrower than the bubble yields the midpoint", func() {
			So(ClampPosition(10, 100, 160), ShouldEqual, 50)
			So(ClampPosition(90, 159, 160), ShouldEqual, 50)
		})

		Convey("Degenerate geometry still produces a finite percentage", func() {
			So(ClampPosition(10, 0, 160), ShouldEqual, 50)
			So(ClampPosition(10, -5, 160), ShouldEqual, 50)
			So(math.IsNaN(ClampPosition(math.NaN(), 1000, 160)), ShouldBeFalse)
			So(math.IsNaN(ClampPosition(10, math.NaN(), 160)), ShouldBeFalse)
		})
	})
}
