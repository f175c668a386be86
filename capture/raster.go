package capture

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/sunshineplan/imgconv"
)

// rasterize scales a decoded frame to exactly width×height pixels and encodes
// it as a lossy JPEG. The frame is stretched to fit the fixed output contract,
// never cropped, regardless of the source's native aspect ratio.
func rasterize(frame image.Image, width, height, quality int) ([]byte, error) {
	scaled := imgconv.Resize(frame, &imgconv.ResizeOption{
		Width:  width,
		Height: height,
	})

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}

	return buf.Bytes(), nil
}
