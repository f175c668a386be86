package capture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/framepeek-cli/framepeek/filesystem"
	"github.com/framepeek-cli/framepeek/source"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

// stubSource is an in-memory frame source producing frames of a fixed size.
type stubSource struct {
	frameWidth  int
	frameHeight int
	seekErr     error
	readErr     error
	seeks       []float64
	reads       int
}

func (s *stubSource) Bind(string) error { return nil }
func (s *stubSource) Target() string    { return "clip.mp4" }
func (s *stubSource) Duration() float64 { return 120 }
func (s *stubSource) Close() error      { return nil }

func (s *stubSource) SeekTo(_ context.Context, seconds float64) error {
	if s.seekErr != nil {
		return s.seekErr
	}
	s.seeks = append(s.seeks, seconds)
	return nil
}

func (s *stubSource) ReadFrame(context.Context) (image.Image, error) {
	if s.readErr != nil {
		return nil, s.readErr
	}
	s.reads++
	frame := image.NewRGBA(image.Rect(0, 0, s.frameWidth, s.frameHeight))
	frame.Set(0, 0, color.RGBA{R: 255, A: 255})
	return frame, nil
}

func TestCapture(t *testing.T) {
	Convey("Capture", t, func() {
		Convey("Every raster is exactly 160x90 regardless of source dimensions", func() {
			for _, dims := range [][2]int{{1920, 1080}, {640, 480}, {90, 160}, {333, 333}, {160, 90}} {
				Convey(fmt.Sprintf("source %dx%d", dims[0], dims[1]), func() {
					src := &stubSource{frameWidth: dims[0], frameHeight: dims[1]}
					pipe := NewPipeline(src, 160, 90, 75)

					handle, err := pipe.Capture(context.Background(), 12)
					So(err, ShouldBeNil)

					decoded, err := jpeg.Decode(bytes.NewReader(handle.Bytes()))
					So(err, ShouldBeNil)
					So(decoded.Bounds().Dx(), ShouldEqual, 160)
					So(decoded.Bounds().Dy(), ShouldEqual, 90)

					width, height := handle.Size()
					So(width, ShouldEqual, 160)
					So(height, ShouldEqual, 90)
				})
			}
		})

		Convey("The handle's backing file holds the encoded payload", func() {
			src := &stubSource{frameWidth: 320, frameHeight: 180}
			pipe := NewPipeline(src, 160, 90, 75)

			handle, err := pipe.Capture(context.Background(), 5)
			So(err, ShouldBeNil)
			So(handle.Path(), ShouldNotBeEmpty)

			written, err := filesystem.API().ReadFile(handle.Path())
			So(err, ShouldBeNil)
			So(written, ShouldResemble, handle.Bytes())
		})

		Convey("Seeking lands on the requested timestamp", func() {
			src := &stubSource{frameWidth: 320, frameHeight: 180}
			pipe := NewPipeline(src, 160, 90, 75)

			_, err := pipe.Capture(context.Background(), 42)
			So(err, ShouldBeNil)
			So(src.seeks, ShouldResemble, []float64{42})
		})

		Convey("A cancelled context abandons the capture", func() {
			src := &stubSource{frameWidth: 320, frameHeight: 180}
			pipe := NewPipeline(src, 160, 90, 75)

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			handle, err := pipe.Capture(ctx, 42)
			So(handle, ShouldBeNil)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}

func TestCaptureFailures(t *testing.T) {
	Convey("Capture failure classification", t, func() {
		Convey("An unbound source maps to SourceNotReady", func() {
			src := &stubSource{seekErr: source.ErrNotBound}
			pipe := NewPipeline(src, 160, 90, 75)

			handle, err := pipe.Capture(context.Background(), 3)
			So(handle, ShouldBeNil)

			var capErr *Error
			So(errors.As(err, &capErr), ShouldBeTrue)
			So(capErr.Kind, ShouldEqual, KindSourceNotReady)
		})

		Convey("A restricted read maps to CaptureRestricted", func() {
			src := &stubSource{frameWidth: 320, frameHeight: 180, readErr: source.ErrRestricted}
			pipe := NewPipeline(src, 160, 90, 75)

			_, err := pipe.Capture(context.Background(), 3)

			var capErr *Error
			So(errors.As(err, &capErr), ShouldBeTrue)
			So(capErr.Kind, ShouldEqual, KindCaptureRestricted)
		})

		Convey("Any other source failure maps to SeekFailed", func() {
			src := &stubSource{seekErr: errors.New("network stall")}
			pipe := NewPipeline(src, 160, 90, 75)

			_, err := pipe.Capture(context.Background(), 3)

			var capErr *Error
			So(errors.As(err, &capErr), ShouldBeTrue)
			So(capErr.Kind, ShouldEqual, KindSeekFailed)
		})

		Convey("Kind strings are stable", func() {
			So(KindSourceNotReady.String(), ShouldEqual, "SourceNotReady")
			So(KindSeekFailed.String(), ShouldEqual, "SeekFailed")
			So(KindCaptureRestricted.String(), ShouldEqual, "CaptureRestricted")
		})
	})
}

func TestHandleRelease(t *testing.T) {
	Convey("Handle release", t, func() {
		src := &stubSource{frameWidth: 320, frameHeight: 180}
		pipe := NewPipeline(src, 160, 90, 75)

		handle, err := pipe.Capture(context.Background(), 7)
		So(err, ShouldBeNil)

		path := handle.Path()
		exists, _ := filesystem.API().Exists(path)
		So(exists, ShouldBeTrue)

		Convey("Release removes the backing file exactly once", func() {
			handle.Release()
			exists, _ := filesystem.API().Exists(path)
			So(exists, ShouldBeFalse)
			So(handle.Path(), ShouldBeEmpty)

			// Idempotent: a second release is a no-op.
			handle.Release()
			So(handle.Path(), ShouldBeEmpty)
		})
	})
}
