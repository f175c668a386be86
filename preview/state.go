package preview

import (
	"github.com/framepeek-cli/framepeek/capture"
	"github.com/samber/mo"
)

// State is a snapshot of what the preview surface should render. It is only
// ever replaced as a whole, so observers never see a half-updated preview.
type State struct {
	// Time is the quantized playback time the snapshot describes.
	Time float64

	// Thumbnail holds the rasterized frame for Time, when one is available.
	Thumbnail mo.Option[*capture.Handle]

	// IsLoading reports that a capture for Time is in flight.
	IsLoading bool

	// Err carries the presentable message of the last failed capture.
	Err mo.Option[string]
}
