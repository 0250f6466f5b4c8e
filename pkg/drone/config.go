package drone

import (
	"errors"
	"fmt"
	"math"

	"github.com/justyntemme/dronesynth/pkg/dsp"
	"github.com/justyntemme/dronesynth/pkg/dsp/delay"
	"github.com/justyntemme/dronesynth/pkg/dsp/filter"
	"github.com/justyntemme/dronesynth/pkg/dsp/oscillator"
	"github.com/justyntemme/dronesynth/pkg/dsp/pan"
)

// ErrInvalidConfig is returned when a Config cannot drive the engine
var ErrInvalidConfig = errors.New("invalid drone config")

// Left and Right index the per-channel fields of Config
const (
	Left = iota
	Right
)

// ModLFO configures one of the auxiliary modulation oscillators
type ModLFO struct {
	Waveform    oscillator.Waveform
	Rate        float64 // Hz
	Exponential bool    // exponential ramp when Waveform is Saw
}

// Config holds the signal graph policy: what the voices play and how the
// auxiliary LFOs move the delay lines and the stereo balance.
type Config struct {
	// Tone oscillators
	Waveform  oscillator.Waveform
	Frequency float64
	OscPhase  [2]float64

	// Cutoff LFOs
	LFOWaveform oscillator.Waveform
	LFORate     float64
	LFODepth    float64 // Hz
	LFOPhase    [2]float64
	ExpLFO      [2]bool

	// Filters
	FilterType filter.Type
	Cutoff     float64
	Resonance  float64

	// Auxiliary modulation
	FeedbackLFO  ModLFO // drives the delay feedback gain directly
	DelayTimeLFO ModLFO // delay = DelayCenter * (1 + lfo)
	DelayCenter  float64
	BalanceLFO   ModLFO // balance = lfo*0.5 + 0.5
	PanLaw       pan.Law

	// Delay lines
	DelayMode     delay.Mode
	DryWet        float64 // 0-1
	BufferSeconds float64
	WrapReadHead  bool

	OutputGain float64 // 0-1
}

// DefaultConfig returns the stock drone patch
func DefaultConfig() Config {
	return Config{
		Waveform:  oscillator.Square,
		Frequency: 110,
		OscPhase:  [2]float64{0, 0.5},

		LFOWaveform: oscillator.Saw,
		LFORate:     0.1,
		LFODepth:    2200,
		LFOPhase:    [2]float64{0, 0.5},
		ExpLFO:      [2]bool{false, true},

		FilterType: filter.LowPass,
		Cutoff:     2200 + 112,
		Resonance:  0.7,

		FeedbackLFO:  ModLFO{Waveform: oscillator.Saw, Rate: 0.01, Exponential: true},
		DelayTimeLFO: ModLFO{Waveform: oscillator.Saw, Rate: 0.01, Exponential: true},
		DelayCenter:  2000,
		BalanceLFO:   ModLFO{Waveform: oscillator.Square, Rate: 1},
		PanLaw:       pan.Linear,

		DelayMode:     delay.Feedback,
		DryWet:        1,
		BufferSeconds: 1,

		OutputGain: 0.5,
	}
}

// Validate reports the first field that cannot be used
func (c Config) Validate() error {
	if !(c.BufferSeconds > 0) || math.IsInf(c.BufferSeconds, 0) {
		return fmt.Errorf("%w: buffer seconds must be positive, got %v", ErrInvalidConfig, c.BufferSeconds)
	}

	// Fields backed by a control parameter must fit its range
	ranged := []struct {
		name     string
		value    float64
		min, max float64
	}{
		{"frequency", c.Frequency, dsp.MinFrequency, maxOscFrequency},
		{"cutoff", c.Cutoff, dsp.MinFrequency, dsp.MaxFrequency},
		{"resonance", c.Resonance, dsp.MinQ, dsp.MaxQ},
		{"delay center", c.DelayCenter, 0, maxDelayCenter},
	}
	for _, f := range ranged {
		if !(f.value >= f.min && f.value <= f.max) {
			return fmt.Errorf("%w: %s must be within [%v, %v], got %v", ErrInvalidConfig, f.name, f.min, f.max, f.value)
		}
	}

	unit := []struct {
		name  string
		value float64
	}{
		{"dry/wet", c.DryWet},
		{"output gain", c.OutputGain},
	}
	for _, f := range unit {
		if !(f.value >= 0 && f.value <= 1) {
			return fmt.Errorf("%w: %s must be within [0, 1], got %v", ErrInvalidConfig, f.name, f.value)
		}
	}

	waveforms := []struct {
		name string
		w    oscillator.Waveform
	}{
		{"oscillator", c.Waveform},
		{"cutoff LFO", c.LFOWaveform},
		{"feedback LFO", c.FeedbackLFO.Waveform},
		{"delay time LFO", c.DelayTimeLFO.Waveform},
		{"balance LFO", c.BalanceLFO.Waveform},
	}
	for _, f := range waveforms {
		if f.w < 0 || f.w >= oscillator.NumWaveforms {
			return fmt.Errorf("%w: %s waveform %d", ErrInvalidConfig, f.name, f.w)
		}
	}

	if c.FilterType < filter.LowPass || c.FilterType > filter.AllPass {
		return fmt.Errorf("%w: filter type %d", ErrInvalidConfig, c.FilterType)
	}
	if c.DelayMode != delay.Feedback && c.DelayMode != delay.Feedforward {
		return fmt.Errorf("%w: delay mode %d", ErrInvalidConfig, c.DelayMode)
	}
	return nil
}
