package capture

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/framepeek-cli/framepeek/filesystem"
	"github.com/framepeek-cli/framepeek/log"
	"github.com/framepeek-cli/framepeek/source"
	"github.com/framepeek-cli/framepeek/util"
	"github.com/framepeek-cli/framepeek/where"
)

// Raster defaults shared by the pipeline's callers.
const (
	DefaultWidth   = 160
	DefaultHeight  = 90
	DefaultQuality = 75
)

// Pipeline rasterizes frames from a bound frame source into fixed-size handles.
//
// Each Capture walks Seeking -> Stabilized -> Rasterizing; the context cancels
// an in-flight capture when the requesting side has moved on, so an abandoned
// capture never produces a handle.
type Pipeline struct {
	src     source.Source
	width   int
	height  int
	quality int
}

// NewPipeline creates a capture pipeline over a frame source. Width and height
// fix the raster contract for every produced handle; quality tunes the lossy
// JPEG encoding (1-100).
func NewPipeline(src source.Source, width, height, quality int) *Pipeline {
	return &Pipeline{
		src:     src,
		width:   width,
		height:  height,
		quality: quality,
	}
}

// Source returns the frame source the pipeline captures from.
func (p *Pipeline) Source() source.Source {
	return p.src
}

// Capture seeks the frame source to an absolute timestamp, waits for it to
// stabilize, and rasterizes the presented frame. On failure a categorized
// *Error is returned and no handle is produced.
func (p *Pipeline) Capture(ctx context.Context, seconds float64) (*Handle, error) {
	// Seeking
	if err := p.src.SeekTo(ctx, seconds); err != nil {
		return nil, classify(err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stabilized: the source now presents the requested frame.
	frame, err := p.src.ReadFrame(ctx)
	if err != nil {
		return nil, classify(err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Rasterizing
	data, err := rasterize(frame, p.width, p.height, p.quality)
	if err != nil {
		return nil, &Error{Kind: KindSeekFailed, Err: err}
	}

	path := p.handlePath(seconds)
	if err := filesystem.API().WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("write thumbnail: %w", err)
	}

	log.Debugf("captured %.3fs of %s into %s (%d bytes)", seconds, p.src.Target(), path, len(data))

	return &Handle{
		data:   data,
		path:   path,
		width:  p.width,
		height: p.height,
	}, nil
}

// handlePath derives a unique temp file location for a captured frame.
func (p *Pipeline) handlePath(seconds float64) string {
	stem := util.SanitizeFilename(util.FileStem(p.src.Target()))
	if stem == "" {
		stem = "frame"
	}

	name := fmt.Sprintf("%s_%dms_%d.jpg", stem, int64(seconds*1000), time.Now().UnixNano())
	return filepath.Join(where.Temp(), name)
}
