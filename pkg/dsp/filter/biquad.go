// Package filter provides digital signal processing filters
package filter

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/justyntemme/dronesynth/pkg/dsp"
)

// Type selects the biquad response
type Type int

const (
	// LowPass passes content below the cutoff
	LowPass Type = iota
	// HighPass passes content above the cutoff
	HighPass
	// BandPass passes a band around the cutoff (0 dB peak gain)
	BandPass
	// AllPass keeps magnitude flat and shifts phase around the cutoff
	AllPass
)

// MinCutoff is the lowest cutoff the filter will be designed for
const MinCutoff = dsp.MinFrequency

// ErrUnknownType is returned when parsing an unrecognized filter type
var ErrUnknownType = errors.New("unknown filter type")

// String returns the filter type name
func (t Type) String() string {
	switch t {
	case LowPass:
		return "lowpass"
	case HighPass:
		return "highpass"
	case BandPass:
		return "bandpass"
	case AllPass:
		return "allpass"
	default:
		return "unknown"
	}
}

// ParseType converts a name such as "lowpass" into a Type
func ParseType(name string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "lowpass", "lp":
		return LowPass, nil
	case "highpass", "hp":
		return HighPass, nil
	case "bandpass", "bp":
		return BandPass, nil
	case "allpass", "ap":
		return AllPass, nil
	}
	return LowPass, fmt.Errorf("%w: %q", ErrUnknownType, name)
}

// Coefficients holds biquad coefficients normalized so that a0 == 1
type Coefficients struct {
	B0, B1, B2 float32 // numerator
	A1, A2     float32 // denominator
}

// ClampCutoff limits a cutoff to [MinCutoff, sampleRate/2)
func ClampCutoff(cutoff, sampleRate float64) float64 {
	nyquist := math.Nextafter(sampleRate/2.0, 0)
	if cutoff > nyquist {
		cutoff = nyquist
	}
	if cutoff < MinCutoff || math.IsNaN(cutoff) {
		cutoff = MinCutoff
	}
	return cutoff
}

// Design computes RBJ cookbook coefficients for the given response.
// The cutoff is used as given; callers clamp it with ClampCutoff first.
func Design(t Type, sampleRate, cutoff, q float64) Coefficients {
	omega := 2.0 * math.Pi * cutoff / sampleRate
	sinOmega := math.Sin(omega)
	cosOmega := math.Cos(omega)
	alpha := sinOmega / (2.0 * q)

	var b0, b1, b2 float64
	a0 := 1.0 + alpha
	a1 := -2.0 * cosOmega
	a2 := 1.0 - alpha

	switch t {
	case HighPass:
		b0 = (1.0 + cosOmega) / 2.0
		b1 = -(1.0 + cosOmega)
		b2 = (1.0 + cosOmega) / 2.0
	case BandPass:
		b0 = alpha
		b1 = 0.0
		b2 = -alpha
	case AllPass:
		b0 = 1.0 - alpha
		b1 = -2.0 * cosOmega
		b2 = 1.0 + alpha
	default:
		b0 = (1.0 - cosOmega) / 2.0
		b1 = 1.0 - cosOmega
		b2 = (1.0 - cosOmega) / 2.0
	}

	// Normalize by a0
	invA0 := 1.0 / a0
	return Coefficients{
		B0: float32(b0 * invA0),
		B1: float32(b1 * invA0),
		B2: float32(b2 * invA0),
		A1: float32(a1 * invA0),
		A2: float32(a2 * invA0),
	}
}

// Biquad implements a single-channel second-order IIR filter
// in Direct Form I
type Biquad struct {
	c Coefficients

	x1, x2 float32 // input delay line
	y1, y2 float32 // output delay line
}

// SetCoefficients replaces the coefficients, keeping the filter state
func (b *Biquad) SetCoefficients(c Coefficients) {
	b.c = c
}

// Coefficients returns the active coefficients
func (b *Biquad) Coefficients() Coefficients {
	return b.c
}

// Reset clears the filter state
func (b *Biquad) Reset() {
	b.x1, b.x2 = 0, 0
	b.y1, b.y2 = 0, 0
}

// ProcessSample filters one sample
func (b *Biquad) ProcessSample(x0 float32) float32 {
	c := &b.c
	y0 := c.B0*x0 + c.B1*b.x1 + c.B2*b.x2 - c.A1*b.y1 - c.A2*b.y2

	b.x2 = b.x1
	b.x1 = x0
	b.y2 = b.y1
	b.y1 = y0

	return y0
}

// Process applies the filter to a buffer in place - no allocations
func (b *Biquad) Process(buffer []float32) {
	for i := range buffer {
		buffer[i] = b.ProcessSample(buffer[i])
	}
}
