// Package pan provides stereo panning operations.
package pan

import (
	"math"
)

// Law represents different panning laws
type Law int

const (
	// Linear uses linear panning (constant power not maintained)
	Linear Law = iota
	// ConstantPower uses sine/cosine panning (maintains constant power)
	ConstantPower
)

// Gains returns the left and right channel gains for a pan position.
// position: -1.0 = hard left, 0.0 = center, 1.0 = hard right
func Gains(position float32, law Law) (left, right float32) {
	if position < -1 {
		position = -1
	} else if position > 1 {
		position = 1
	}

	switch law {
	case ConstantPower:
		// Convert position from [-1, 1] to [0, pi/2]
		angle := float64(position+1.0) * math.Pi / 4.0
		return float32(math.Cos(angle)), float32(math.Sin(angle))
	default:
		return 0.5 * (1.0 - position), 0.5 * (1.0 + position)
	}
}

// Stereo applies a pan position to an existing left/right pair, scaling each
// channel by its gain. At hard left the right channel is silent.
func Stereo(left, right, position float32, law Law) (float32, float32) {
	lg, rg := Gains(position, law)
	return left * lg, right * rg
}
