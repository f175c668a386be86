// Package capture implements the frame capture pipeline: it drives a bound
// off-screen frame source to a requested time and rasterizes the presented
// frame into a fixed-size, lossy-encoded image handle.
package capture

import (
	"errors"
	"fmt"

	"github.com/framepeek-cli/framepeek/source"
)

// Kind categorizes a capture failure.
type Kind int

const (
	// KindSourceNotReady indicates a capture was requested before the frame
	// source had bound and loaded a media target.
	KindSourceNotReady Kind = iota

	// KindSeekFailed indicates the frame source could not stabilize at the
	// requested time (network stall, invalid time, decode error).
	KindSeekFailed

	// KindCaptureRestricted indicates pixel read access was denied by the
	// media origin. Permanent for the bound target; never retried.
	KindCaptureRestricted
)

// String returns the canonical identifier for the failure category.
func (k Kind) String() string {
	switch k {
	case KindSourceNotReady:
		return "SourceNotReady"
	case KindSeekFailed:
		return "SeekFailed"
	case KindCaptureRestricted:
		return "CaptureRestricted"
	default:
		return "Unknown"
	}
}

// Error describes a categorized capture failure.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("capture failed (%s): %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// classify wraps a frame source failure into a categorized capture error.
func classify(err error) *Error {
	switch {
	case errors.Is(err, source.ErrNotBound):
		return &Error{Kind: KindSourceNotReady, Err: err}
	case errors.Is(err, source.ErrRestricted):
		return &Error{Kind: KindCaptureRestricted, Err: err}
	default:
		return &Error{Kind: KindSeekFailed, Err: err}
	}
}
