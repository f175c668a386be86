// Package preview implements the seek-bar thumbnail preview engine: a
// debounced, time-keyed capture scheduler in front of a bounded LRU cache of
// rasterized frames.
package preview

import (
	"math"
	"strconv"
)

// DefaultPrecision is the default quantization bucket size in seconds.
const DefaultPrecision = 1.0

// Quantize rounds a playback time to the nearest multiple of precision,
// producing the stable bucket two nearby hover times share. Non-finite input
// is defensively clamped to 0; a non-positive precision falls back to the
// default bucket size.
func Quantize(seconds, precision float64) float64 {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		seconds = 0
	}
	if precision <= 0 {
		precision = DefaultPrecision
	}

	return math.Round(seconds/precision) * precision
}

// Key forms the cache key binding a quantized time to a media target's identity.
func Key(target string, quantized float64) string {
	return target + ":" + strconv.FormatFloat(quantized, 'f', -1, 64)
}
