package store

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/framepeek-cli/framepeek/capture"
	"github.com/framepeek-cli/framepeek/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

// stubSource produces a fixed in-memory frame for any timestamp.
type stubSource struct{}

func (stubSource) Bind(string) error                    { return nil }
func (stubSource) Target() string                       { return "clip.mp4" }
func (stubSource) Duration() float64                    { return 120 }
func (stubSource) SeekTo(context.Context, float64) error { return nil }
func (stubSource) Close() error                         { return nil }

func (stubSource) ReadFrame(context.Context) (image.Image, error) {
	frame := image.NewRGBA(image.Rect(0, 0, 640, 360))
	frame.Set(0, 0, color.RGBA{B: 255, A: 255})
	return frame, nil
}

func TestStore(t *testing.T) {
	Convey("Given a captured thumbnail", t, func() {
		pipeline := capture.NewPipeline(stubSource{}, 160, 90, 75)

		handle, err := pipeline.Capture(context.Background(), 42)
		So(err, ShouldBeNil)

		Convey("Save records it durably", func() {
			record, err := Save(handle, "clip.mp4", 42)

			So(err, ShouldBeNil)
			So(record.Width, ShouldEqual, 160)
			So(record.Height, ShouldEqual, 90)

			data, err := filesystem.API().ReadFile(record.Path)
			So(err, ShouldBeNil)
			So(data, ShouldResemble, handle.Bytes())

			saved, err := All()
			So(err, ShouldBeNil)
			So(saved, ShouldContainKey, record.encode())

			Convey("Saving the same position again keeps a single record", func() {
				before := len(saved)

				_, err := Save(handle, "clip.mp4", 42)
				So(err, ShouldBeNil)

				saved, err := All()
				So(err, ShouldBeNil)
				So(saved, ShouldHaveLength, before)
			})

			Convey("Find resolves the full record by target and time", func() {
				found, err := Find("clip.mp4", 42)

				So(err, ShouldBeNil)
				So(found.Path, ShouldEqual, record.Path)

				Convey("and removing it deletes the backing file", func() {
					So(Remove(found), ShouldBeNil)

					exists, _ := filesystem.API().Exists(record.Path)
					So(exists, ShouldBeFalse)
				})
			})

			Convey("Find rejects an unknown position", func() {
				_, err := Find("clip.mp4", 999)

				So(err, ShouldNotBeNil)
			})

			Convey("Remove deletes the record and its file", func() {
				So(Remove(record), ShouldBeNil)

				saved, err := All()
				So(err, ShouldBeNil)
				So(saved, ShouldNotContainKey, record.encode())

				exists, _ := filesystem.API().Exists(record.Path)
				So(exists, ShouldBeFalse)
			})
		})

		Convey("Records render a presentable label", func() {
			record := &SavedThumbnail{Target: "/videos/clip.mp4", Time: 83}

			So(record.String(), ShouldEqual, "clip.mp4 at 01:23")
		})
	})
}
