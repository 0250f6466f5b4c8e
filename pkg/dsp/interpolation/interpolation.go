// Package interpolation provides fractional-position sample readers.
package interpolation

import "math"

// Linear performs linear interpolation between two samples.
// frac is the fractional position between y0 and y1 (0.0 to 1.0).
func Linear(y0, y1, frac float32) float32 {
	return (1-frac)*y0 + frac*y1
}

// Ring reads a circular buffer at a fractional position using linear
// interpolation. pos must already lie in [0, len(buffer)); the upper
// neighbour wraps to index 0 at the end of the buffer.
func Ring(buffer []float32, pos float64) float32 {
	lower := int(math.Floor(pos))
	upper := lower + 1
	if upper >= len(buffer) {
		upper -= len(buffer)
	}
	frac := float32(pos - float64(lower))
	return Linear(buffer[lower], buffer[upper], frac)
}
