package util

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSanitizeFilename(t *testing.T) {
	Convey("SanitizeFilename", t, func() {
		Convey("Should replace invalid chars", func() {
			So(SanitizeFilename("clip:name?.mp4"), ShouldEqual, "clip_name_.mp4")
		})
		Convey("Should collapse underscores", func() {
			So(SanitizeFilename("clip__name.mp4"), ShouldEqual, "clip_name.mp4")
		})
		Convey("Should trim separators", func() {
			So(SanitizeFilename("-clip-name-"), ShouldEqual, "clip-name")
		})
	})
}

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "frame", "frames"), ShouldEqual, "1 frame")
		So(Quantify(2, "frame", "frames"), ShouldEqual, "2 frames")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("hello"), ShouldEqual, "Hello")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestFileStem(t *testing.T) {
	Convey("FileStem", t, func() {
		So(FileStem("path/to/clip.mp4"), ShouldEqual, "clip")
		So(FileStem("clip"), ShouldEqual, "clip")
	})
}

func TestFormatTimestamp(t *testing.T) {
	Convey("FormatTimestamp", t, func() {
		So(FormatTimestamp(0), ShouldEqual, "00:00")
		So(FormatTimestamp(83), ShouldEqual, "01:23")
		So(FormatTimestamp(3723), ShouldEqual, "1:02:03")
		So(FormatTimestamp(-5), ShouldEqual, "00:00")
	})
}

func TestMaxMin(t *testing.T) {
	Convey("Max/Min", t, func() {
		So(Max(1, 5, 2), ShouldEqual, 5)
		So(Min(1, 5, 2), ShouldEqual, 1)
	})
}
