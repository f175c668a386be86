package source

import (
	"context"
	"errors"
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// ShouldNotWrap is the negation of goconvey's ShouldWrap, which the library
// does not provide.
func ShouldNotWrap(actual interface{}, expected ...interface{}) string {
	if len(expected) != 1 {
		return fmt.Sprintf("ShouldNotWrap expects exactly 1 comparison value, got %d", len(expected))
	}
	actualErr, ok := actual.(error)
	if !ok {
		return fmt.Sprintf("ShouldNotWrap expects an error as the actual value, got %T", actual)
	}
	expectedErr, ok := expected[0].(error)
	if !ok {
		return fmt.Sprintf("ShouldNotWrap expects an error as the expected value, got %T", expected[0])
	}
	if errors.Is(actualErr, expectedErr) {
		return fmt.Sprintf("Expected error %q to NOT wrap %q, but it did", actualErr, expectedErr)
	}
	return ""
}

func TestNew(t *testing.T) {
	Convey("New", t, func() {
		Convey("Should construct the ffmpeg backend", func() {
			src, err := New(BackendFFmpeg)
			So(err, ShouldBeNil)
			So(src, ShouldHaveSameTypeAs, &FFmpeg{})
		})

		Convey("Should construct the mpv backend", func() {
			src, err := New(BackendMPV)
			So(err, ShouldBeNil)
			So(src, ShouldHaveSameTypeAs, &MPV{})
		})

		Convey("Should reject unknown backends", func() {
			src, err := New("vlc")
			So(src, ShouldBeNil)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestUnboundSource(t *testing.T) {
	Convey("An unbound ffmpeg source", t, func() {
		src := NewFFmpeg()

		Convey("Should refuse to seek", func() {
			err := src.SeekTo(context.Background(), 10)
			So(err, ShouldEqual, ErrNotBound)
		})

		Convey("Should refuse to read a frame", func() {
			frame, err := src.ReadFrame(context.Background())
			So(frame, ShouldBeNil)
			So(err, ShouldEqual, ErrNotBound)
		})

		Convey("Should report an empty target and zero duration", func() {
			So(src.Target(), ShouldBeEmpty)
			So(src.Duration(), ShouldEqual, 0)
		})
	})

	Convey("An unbound mpv source refuses to seek", t, func() {
		src := NewMPV()
		err := src.SeekTo(context.Background(), 10)
		So(err, ShouldEqual, ErrNotBound)
	})
}

func TestSanitizeMediaTarget(t *testing.T) {
	Convey("sanitizeMediaTarget", t, func() {
		Convey("Should accept http and https URLs", func() {
			for _, target := range []string{"http://example.com/a.mp4", "https://example.com/a.mp4"} {
				result, err := sanitizeMediaTarget(target)
				So(err, ShouldBeNil)
				So(result, ShouldEqual, target)
			}
		})

		Convey("Should clean local paths", func() {
			result, err := sanitizeMediaTarget("videos//clip.mp4")
			So(err, ShouldBeNil)
			So(result, ShouldEqual, "videos/clip.mp4")
		})

		Convey("Should reject flag-like targets", func() {
			_, err := sanitizeMediaTarget("--vo=null")
			So(err, ShouldNotBeNil)
		})

		Convey("Should reject control characters", func() {
			_, err := sanitizeMediaTarget("clip\n.mp4")
			So(err, ShouldNotBeNil)
		})

		Convey("Should reject unsupported schemes", func() {
			_, err := sanitizeMediaTarget("ftp://example.com/a.mp4")
			So(err, ShouldNotBeNil)
		})

		Convey("Should reject empty targets", func() {
			_, err := sanitizeMediaTarget("  ")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestClassifyDecodeError(t *testing.T) {
	Convey("classifyDecodeError", t, func() {
		base := &exitError{}

		Convey("Should map origin access failures to ErrRestricted", func() {
			for _, detail := range []string{
				"HTTP error 403 Forbidden",
				"Server returned 401 Unauthorized",
				"access denied",
			} {
				err := classifyDecodeError(base, detail)
				So(err, ShouldWrap, ErrRestricted)
			}
		})

		Convey("Should keep ordinary decode failures transient", func() {
			err := classifyDecodeError(base, "Invalid data found when processing input")
			So(err, ShouldNotBeNil)
			So(err, ShouldNotWrap, ErrRestricted)
		})
	})
}

// exitError stands in for an *exec.ExitError in classification tests.
type exitError struct{}

func (*exitError) Error() string { return "exit status 1" }
