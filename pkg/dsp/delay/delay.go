// Package delay provides delay line implementations for audio effects
package delay

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/justyntemme/dronesynth/pkg/dsp/interpolation"
	"github.com/justyntemme/dronesynth/pkg/dsp/mix"
	"github.com/justyntemme/dronesynth/pkg/dsp/utility"
)

// Mode selects how the delay line recirculates
type Mode int

const (
	// Feedback writes the output back into the line: y[n] = x[n] + g*y[n-M]
	Feedback Mode = iota
	// Feedforward writes the dry input into the line: y[n] = x[n] + g*x[n-M]
	Feedforward
)

const (
	// MinBufferSize is the smallest usable circular buffer
	MinBufferSize = 2
	// MaxFeedbackGain bounds |g| so the feedback path stays stable
	MaxFeedbackGain = 0.99
	// DefaultFeedbackGain is the loss factor a new line starts with
	DefaultFeedbackGain = 0.9
)

var (
	// ErrBufferTooSmall is returned when a buffer shorter than MinBufferSize is requested
	ErrBufferTooSmall = errors.New("delay buffer too small")
	// ErrUnknownMode is returned by ParseMode for an unrecognized name
	ErrUnknownMode = errors.New("unknown delay mode")
)

// String returns the mode name
func (m Mode) String() string {
	switch m {
	case Feedback:
		return "feedback"
	case Feedforward:
		return "feedforward"
	default:
		return "unknown"
	}
}

// ParseMode converts "feedback" or "feedforward" into a Mode
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "feedback", "fb":
		return Feedback, nil
	case "feedforward", "ff":
		return Feedforward, nil
	}
	return Feedback, fmt.Errorf("%w: %q", ErrUnknownMode, name)
}

// Line is a circular delay buffer with a fractional read head.
//
// The write head advances one sample per write. The read head sits
// delaySamples behind it; it is re-derived from the write head whenever the
// delay time changes and otherwise advances one sample per processed sample.
type Line struct {
	buffer   []float32
	writePos int
	readPos  float64

	delaySamples float64
	feedbackGain float32
	dryWet       float32
	wrapReadHead bool
}

// New creates a delay line holding size samples
func New(size int) (*Line, error) {
	d := &Line{
		feedbackGain: DefaultFeedbackGain,
		dryWet:       1.0,
	}
	if err := d.SetBufferSize(size); err != nil {
		return nil, err
	}
	return d, nil
}

// SetBufferSize allocates a zeroed buffer of n samples and resets both heads.
// Call it only while the line is not being processed.
func (d *Line) SetBufferSize(n int) error {
	if n < MinBufferSize {
		return fmt.Errorf("%w: %d samples (minimum %d)", ErrBufferTooSmall, n, MinBufferSize)
	}
	d.buffer = make([]float32, n)
	d.writePos = 0
	d.readPos = 0
	if d.delaySamples > float64(n-1) {
		d.delaySamples = float64(n - 1)
	}
	return nil
}

// SetReadHeadWrap selects how SetDelaySamples handles a read head that falls
// before the start of the buffer: clamp to 0 (false, the default) or wrap
// around by the buffer size (true).
func (d *Line) SetReadHeadWrap(enabled bool) {
	d.wrapReadHead = enabled
}

// SetDelaySamples sets the delay time in samples, clamped to [0, size-1],
// and re-derives the read head from the write head.
func (d *Line) SetDelaySamples(samples float64) {
	size := float64(len(d.buffer))
	if size == 0 {
		return
	}
	d.delaySamples = utility.ClampParameter(samples, 0, size-1)

	d.readPos = float64(d.writePos) - d.delaySamples
	if d.readPos < 0 {
		if d.wrapReadHead {
			d.readPos += size
		} else {
			d.readPos = 0
		}
	}
}

// SetFeedbackGain sets the recirculation gain, clamped to +/-MaxFeedbackGain
func (d *Line) SetFeedbackGain(gain float32) {
	if math.IsNaN(float64(gain)) {
		gain = 0
	}
	d.feedbackGain = float32(utility.ClampParameter(float64(gain), -MaxFeedbackGain, MaxFeedbackGain))
}

// SetDryWet sets the dry/wet blend (0 = dry, 1 = wet)
func (d *Line) SetDryWet(amount float32) {
	d.dryWet = float32(utility.ClampParameter(float64(amount), 0, 1))
}

// Size returns the buffer length in samples
func (d *Line) Size() int { return len(d.buffer) }

// WritePos returns the write head index
func (d *Line) WritePos() int { return d.writePos }

// ReadPos returns the fractional read head position
func (d *Line) ReadPos() float64 { return d.readPos }

// DelaySamples returns the clamped delay time in samples
func (d *Line) DelaySamples() float64 { return d.delaySamples }

// FeedbackGain returns the clamped feedback gain
func (d *Line) FeedbackGain() float32 { return d.feedbackGain }

// DryWet returns the dry/wet blend
func (d *Line) DryWet() float32 { return d.dryWet }

// Reset clears the delay buffer and both heads
func (d *Line) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}
	d.writePos = 0
	d.SetDelaySamples(d.delaySamples)
}

// ReadSample returns the cell under the read head without interpolation
// and advances the read head by one sample.
func (d *Line) ReadSample() float32 {
	output := d.buffer[int(d.readPos)]
	d.advanceRead()
	return output
}

// LinearInterp returns the linearly interpolated value at the read head.
// It wraps the read head into the buffer but does not advance it.
func (d *Line) LinearInterp() float32 {
	size := float64(len(d.buffer))
	if d.readPos >= size {
		d.readPos -= size
	}
	return interpolation.Ring(d.buffer, d.readPos)
}

// WriteSample stores a sample under the write head and advances it
func (d *Line) WriteSample(sample float32) {
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos -= len(d.buffer)
	}
}

// Process runs one sample through the comb filter and returns the
// dry/wet blend of input and comb output.
func (d *Line) Process(input float32, mode Mode) float32 {
	delayed := d.feedbackGain * d.LinearInterp()
	output := input + delayed

	if mode == Feedback {
		d.WriteSample(output)
	} else {
		d.WriteSample(input)
	}
	d.advanceRead()

	return mix.DryWet(input, output, d.dryWet)
}

// ProcessBuffer processes a buffer in place - no allocations
func (d *Line) ProcessBuffer(buffer []float32, mode Mode) {
	for i := range buffer {
		buffer[i] = d.Process(buffer[i], mode)
	}
}

func (d *Line) advanceRead() {
	d.readPos++
	if d.readPos >= float64(len(d.buffer)) {
		d.readPos -= float64(len(d.buffer))
	}
}
