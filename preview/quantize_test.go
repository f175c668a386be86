package preview

import (
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestQuantize(t *testing.T) {
	Convey("Quantize", t, func() {
		Convey("Rounds to the nearest bucket", func() {
			So(Quantize(12.3, 1), ShouldEqual, 12)
			So(Quantize(12.5, 1), ShouldEqual, 13)
			So(Quantize(12.7, 1), ShouldEqual, 13)
			So(Quantize(0.4, 1), ShouldEqual, 0)
		})

		Convey("Respects coarser and finer precisions", func() {
			So(Quantize(12.3, 5), ShouldEqual, 10)
			So(Quantize(13.0, 5), ShouldEqual, 15)
			So(Quantize(12.34, 0.5), ShouldEqual, 12.5)
		})

		Convey("Nearby times collapse into one bucket", func() {
			So(Quantize(41.6, 1), ShouldEqual, Quantize(42.4, 1))
		})

		Convey("Non-finite input falls back to zero", func() {
			So(Quantize(math.NaN(), 1), ShouldEqual, 0)
			So(Quantize(math.Inf(1), 1), ShouldEqual, 0)
			So(Quantize(math.Inf(-1), 1), ShouldEqual, 0)
		})

		Convey("Non-positive precision falls back to the default", func() {
			So(Quantize(12.3, 0), ShouldEqual, 12)
			So(Quantize(12.3, -2), ShouldEqual, 12)
		})
	})
}

func TestKey(t *testing.T) {
	Convey("Key", t, func() {
		Convey("Binds target identity to the quantized time", func() {
			So(Key("clip.mp4", 42), ShouldEqual, "clip.mp4:42")
			So(Key("clip.mp4", 12.5), ShouldEqual, "clip.mp4:12.5")
		})

		Convey("Distinct targets never collide at the same time", func() {
			So(Key("a.mp4", 10), ShouldNotEqual, Key("b.mp4", 10))
		})
	})
}
