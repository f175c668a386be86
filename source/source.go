// Package source defines a unified abstraction layer for off-screen frame sources.
//
// A frame source is a decodable media handle that can be bound to one media
// target at a time, commanded to present the frame at a given playback time,
// and asked to expose the currently presented frame as raw pixels. The
// architecture supports multiple backends: a stateless ffmpeg pipeline and a
// persistent mpv process driven over its JSON-IPC interface.
package source

import (
	"context"
	"errors"
	"fmt"
	"image"
)

// Recognized backend identifiers.
const (
	BackendFFmpeg = "ffmpeg"
	BackendMPV    = "mpv"
)

// Sentinel failure categories surfaced by frame sources. The capture pipeline
// maps these onto its error taxonomy.
var (
	// ErrNotBound indicates a frame was requested before the source was bound to a media target.
	ErrNotBound = errors.New("frame source not bound to a media target")

	// ErrRestricted indicates pixel read access was denied by the media origin.
	// This condition is permanent for the bound target and is not retried.
	ErrRestricted = errors.New("frame read access restricted by media origin")
)

// Source encapsulates the required capabilities for an off-screen frame source backend.
type Source interface {
	// Bind associates the source with a media target (local path or HTTP URL),
	// probing its duration. Rebinding replaces the previous target.
	Bind(target string) error

	// Target returns the currently bound media target, or the empty string.
	Target() string

	// Duration returns the total temporal length of the bound media in seconds,
	// or 0 when unknown.
	Duration() float64

	// SeekTo commands the source to present the frame at an absolute timestamp,
	// returning once the source has stabilized at that time.
	SeekTo(ctx context.Context, seconds float64) error

	// ReadFrame exposes the currently presented frame as decoded pixels.
	ReadFrame(ctx context.Context) (image.Image, error)

	// Close terminates the backend and releases all associated system resources.
	Close() error
}

// New constructs a frame source for the specified backend identifier.
func New(backend string) (Source, error) {
	switch backend {
	case BackendFFmpeg:
		return NewFFmpeg(), nil
	case BackendMPV:
		return NewMPV(), nil
	default:
		return nil, fmt.Errorf("unknown frame source backend %q", backend)
	}
}
