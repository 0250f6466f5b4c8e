// Package oscillator provides audio oscillators for synthesis
package oscillator

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Waveform selects the oscillator variant
type Waveform int

const (
	// Sine produces gain*sin(2*pi*phase)
	Sine Waveform = iota
	// Saw produces a tanh-shaped ramp, optionally exponentially curved
	Saw
	// Square produces a tanh-saturated sine
	Square
	// Triangle produces a folded tanh-shaped ramp
	Triangle

	// NumWaveforms is the number of waveform variants
	NumWaveforms = 4
)

// DefaultSampleRate is the sample rate an oscillator starts with
const DefaultSampleRate = 48000.0

const (
	// expBase is the base of the exponential phase remap used by the saw
	expBase = 2.7
	// squareDrive is the tanh drive applied to the square's sine carrier
	squareDrive = 10.0
)

// sawScale maps the ramp endpoints onto +/-0.98 after tanh
var sawScale = math.Atanh(0.98)

// ErrUnknownWaveform is returned when parsing an unrecognized waveform name
var ErrUnknownWaveform = errors.New("unknown waveform")

// String returns the waveform name
func (w Waveform) String() string {
	switch w {
	case Sine:
		return "sine"
	case Saw:
		return "saw"
	case Square:
		return "square"
	case Triangle:
		return "triangle"
	default:
		return "unknown"
	}
}

// ParseWaveform converts a name such as "saw" into a Waveform
func ParseWaveform(name string) (Waveform, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sine", "sin":
		return Sine, nil
	case "saw", "sawtooth":
		return Saw, nil
	case "square", "sqr":
		return Square, nil
	case "triangle", "tri":
		return Triangle, nil
	}
	return Sine, fmt.Errorf("%w: %q", ErrUnknownWaveform, name)
}

// Oscillator generates periodic waveforms.
//
// The derived waveforms (Square, Triangle) run a private carrier that
// starts at phase 0 and advances with the oscillator's frequency and sample
// rate. SetPhase moves only the oscillator phase, never the carrier.
type Oscillator struct {
	waveform   Waveform
	sampleRate float64
	frequency  float64
	phase      float64
	carrier    float64
	gain       float64
}

// New creates an oscillator of the given waveform at 48 kHz with unity gain
func New(waveform Waveform) Oscillator {
	return Oscillator{
		waveform:   waveform,
		sampleRate: DefaultSampleRate,
		gain:       1.0,
	}
}

// SetFrequency sets the oscillator frequency in Hz
func (o *Oscillator) SetFrequency(freq float64) {
	o.frequency = freq
}

// SetSampleRate sets the sample rate in Hz
func (o *Oscillator) SetSampleRate(sampleRate float64) {
	o.sampleRate = sampleRate
}

// SetGain sets the linear output gain
func (o *Oscillator) SetGain(gain float64) {
	o.gain = gain
}

// SetPhase sets the oscillator phase (0-1)
func (o *Oscillator) SetPhase(phase float64) {
	o.phase = phase - math.Floor(phase) // Wrap to 0-1
}

// Waveform returns the selected waveform
func (o *Oscillator) Waveform() Waveform { return o.waveform }

// Frequency returns the frequency in Hz
func (o *Oscillator) Frequency() float64 { return o.frequency }

// SampleRate returns the sample rate in Hz
func (o *Oscillator) SampleRate() float64 { return o.sampleRate }

// Gain returns the linear output gain
func (o *Oscillator) Gain() float64 { return o.gain }

// Phase returns the current phase (0-1)
func (o *Oscillator) Phase() float64 { return o.phase }

// CarrierPhase returns the phase of the Square/Triangle carrier (0-1)
func (o *Oscillator) CarrierPhase() float64 { return o.carrier }

// Process generates the next sample and advances the phase by one step.
// The exponential flag only affects the Saw waveform.
func (o *Oscillator) Process(exponential bool) float64 {
	var sample float64
	switch o.waveform {
	case Sine:
		sample = math.Sin(2.0 * math.Pi * o.phase)
	case Saw:
		if exponential {
			sample = expSaw(o.phase)
		} else {
			sample = saw(o.phase)
		}
	case Square:
		sample = math.Tanh(squareDrive * math.Sin(2.0*math.Pi*o.carrier))
	case Triangle:
		folded := saw(o.carrier)
		if o.phase < 0.5 {
			folded = -folded
		}
		sample = 2.0 * (folded - 0.5)
	}

	o.updatePhase()
	return o.gain * sample
}

// ProcessBuffer fills buffer with consecutive samples - no allocations
func (o *Oscillator) ProcessBuffer(buffer []float32, exponential bool) {
	for i := range buffer {
		buffer[i] = float32(o.Process(exponential))
	}
}

// updatePhase advances phase and carrier by frequency/sampleRate and wraps them
func (o *Oscillator) updatePhase() {
	phaseDelta := o.frequency / o.sampleRate
	o.phase = wrap(o.phase + phaseDelta)
	o.carrier = wrap(o.carrier + phaseDelta)
}

func wrap(phase float64) float64 {
	if phase >= 1.0 || phase < 0 {
		phase -= math.Floor(phase)
		if phase >= 1.0 {
			phase = 0
		}
	}
	return phase
}

func saw(phase float64) float64 {
	return math.Tanh(sawScale * 2.0 * (phase - 0.5))
}

func expSaw(phase float64) float64 {
	expPhase := math.Pow(expBase, phase) - 1.0
	return math.Tanh(sawScale * 2.0 * (expPhase - 0.5))
}
