package source

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	// Frame extraction emits a single PNG on stdout.
	_ "image/png"

	"github.com/framepeek-cli/framepeek/log"
)

// FFmpeg implements Source by spawning a short-lived ffmpeg process per frame.
//
// The backend is stateless between frames: SeekTo only records the requested
// timestamp, and ReadFrame performs the actual seek-and-decode in one
// invocation via ffmpeg's input seeking (-ss before -i), which lands on the
// nearest keyframe and decodes forward until stabilized at the exact time.
type FFmpeg struct {
	mu       sync.Mutex
	target   string
	duration float64
	pending  float64
	bound    bool
}

// NewFFmpeg creates a new ffmpeg-backed frame source (does not bind a target).
func NewFFmpeg() *FFmpeg {
	return &FFmpeg{}
}

// Bind associates the source with a media target and probes its duration via ffprobe.
func (f *FFmpeg) Bind(target string) error {
	safeTarget, err := sanitizeMediaTarget(target)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	duration, err := probeDuration(safeTarget)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.target = safeTarget
	f.duration = duration
	f.pending = 0
	f.bound = true

	log.Debugf("ffmpeg source bound to %s (duration %.2fs)", safeTarget, duration)
	return nil
}

// Target returns the currently bound media target.
func (f *FFmpeg) Target() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.target
}

// Duration returns the probed media duration in seconds.
func (f *FFmpeg) Duration() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.duration
}

// SeekTo records the timestamp the next ReadFrame will present.
func (f *FFmpeg) SeekTo(_ context.Context, seconds float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.bound {
		return ErrNotBound
	}
	if seconds < 0 {
		return fmt.Errorf("seek target %.3fs precedes stream start", seconds)
	}
	if f.duration > 0 && seconds > f.duration {
		return fmt.Errorf("seek target %.3fs beyond stream end (%.3fs)", seconds, f.duration)
	}

	f.pending = seconds
	return nil
}

// ReadFrame decodes the single frame at the pending timestamp.
func (f *FFmpeg) ReadFrame(ctx context.Context) (image.Image, error) {
	f.mu.Lock()
	if !f.bound {
		f.mu.Unlock()
		return nil, ErrNotBound
	}
	target, pending := f.target, f.pending
	f.mu.Unlock()

	cmd := exec.CommandContext(
		ctx,
		"ffmpeg",
		"-loglevel", "error",
		"-ss", formatSeconds(pending),
		"-i", target,
		"-frames:v", "1",
		"-f", "image2",
		"-vcodec", "png",
		"pipe:1",
	)

	var out bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, classifyDecodeError(err, stderr.String())
	}

	img, _, err := image.Decode(bytes.NewReader(out.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("decode extracted frame: %w", err)
	}

	return img, nil
}

// Close releases the source. The ffmpeg backend holds no persistent process.
func (f *FFmpeg) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.bound = false
	f.target = ""
	return nil
}

// probeDuration queries the container duration of a media target via ffprobe.
func probeDuration(target string) (float64, error) {
	cmd := exec.Command(
		"ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		target,
	)

	var out bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return 0, classifyDecodeError(err, stderr.String())
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(out.String()), 64)
	if err != nil {
		// Streams without a container duration (live inputs) report "N/A".
		return 0, nil
	}

	return duration, nil
}

// classifyDecodeError maps an external decoder failure onto the source error
// categories. Access failures from remote origins are permanent and map to
// ErrRestricted; everything else is a transient decode/seek error.
func classifyDecodeError(err error, stderr string) error {
	detail := strings.TrimSpace(stderr)

	lowered := strings.ToLower(detail)
	for _, marker := range []string{"403", "forbidden", "401", "unauthorized", "access denied", "permission denied"} {
		if strings.Contains(lowered, marker) {
			return fmt.Errorf("%w: %s", ErrRestricted, detail)
		}
	}

	if detail == "" {
		return fmt.Errorf("ffmpeg: %w", err)
	}
	return fmt.Errorf("ffmpeg: %w: %s", err, detail)
}

// formatSeconds renders a timestamp with millisecond precision for decoder arguments.
func formatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 3, 64)
}
