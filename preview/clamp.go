package preview

import "math"

// ClampPosition keeps a preview bubble fully inside its container. It takes
// the hover position as a percentage of the container width and returns the
// nearest percentage at which a previewWidth-wide bubble, centered on the
// returned position, does not overflow either edge.
//
// When the container cannot fit the bubble at all the midpoint is returned,
// so callers always receive a finite percentage in [0, 100].
func ClampPosition(hoverPercent, containerWidth, previewWidth float64) float64 {
	if containerWidth <= 0 || math.IsNaN(containerWidth) || math.IsNaN(previewWidth) {
		return 50
	}

	if math.IsNaN(hoverPercent) || math.IsInf(hoverPercent, 0) {
		hoverPercent = 0
	}

	half := previewWidth / 2 / containerWidth * 100
	lo, hi := half, 100-half
	if lo > hi {
		return 50
	}

	return math.Min(math.Max(hoverPercent, lo), hi)
}
