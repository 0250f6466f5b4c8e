// Package synth provides the filter-synth voice: one tone oscillator run
// through a biquad whose cutoff is swept by an LFO.
package synth

import (
	"github.com/justyntemme/dronesynth/pkg/dsp/filter"
	"github.com/justyntemme/dronesynth/pkg/dsp/oscillator"
)

const (
	// DefaultCutoff is the base cutoff a new voice starts with
	DefaultCutoff = 10000.0
	// DefaultResonance is the filter Q a new voice starts with
	DefaultResonance = 0.7
)

// Voice is a subtractive synth voice. The tone oscillator and the LFO are
// each selected from a pool holding one oscillator per waveform, so switching
// waveforms never allocates.
type Voice struct {
	oscPool [oscillator.NumWaveforms]oscillator.Oscillator
	lfoPool [oscillator.NumWaveforms]oscillator.Oscillator

	osc    oscillator.Waveform
	lfo    oscillator.Waveform
	hasOSC bool
	hasLFO bool

	filterType filter.Type
	cutoff     float64
	resonance  float64
	sampleRate float64

	biquad filter.Biquad
}

// New creates a voice with no oscillator or LFO selected. It stays silent
// until both SetOSC and SetLFO have been called.
func New() *Voice {
	v := &Voice{
		filterType: filter.LowPass,
		cutoff:     DefaultCutoff,
		resonance:  DefaultResonance,
		sampleRate: oscillator.DefaultSampleRate,
	}
	for w := oscillator.Waveform(0); w < oscillator.NumWaveforms; w++ {
		v.oscPool[w] = oscillator.New(w)
		v.lfoPool[w] = oscillator.New(w)
	}
	v.updateCoefficients(v.cutoff)
	return v
}

// SetSampleRate propagates the sample rate to every pooled oscillator and
// recomputes the coefficients for the unmodulated cutoff.
func (v *Voice) SetSampleRate(sampleRate float64) {
	v.sampleRate = sampleRate
	for w := range v.oscPool {
		v.oscPool[w].SetSampleRate(sampleRate)
		v.lfoPool[w].SetSampleRate(sampleRate)
	}
	v.updateCoefficients(v.cutoff)
}

// SetOSC selects the tone oscillator and reinitializes it
func (v *Voice) SetOSC(waveform oscillator.Waveform, freq, phase float64) {
	if waveform < 0 || waveform >= oscillator.NumWaveforms {
		return
	}
	o := &v.oscPool[waveform]
	o.SetSampleRate(v.sampleRate)
	o.SetFrequency(freq)
	o.SetGain(1.0)
	o.SetPhase(phase)

	v.osc = waveform
	v.hasOSC = true
}

// SetLFO selects the cutoff LFO and reinitializes it. depth is the LFO's
// peak deviation in Hz.
func (v *Voice) SetLFO(waveform oscillator.Waveform, rate, depth, phase float64) {
	if waveform < 0 || waveform >= oscillator.NumWaveforms {
		return
	}
	o := &v.lfoPool[waveform]
	o.SetSampleRate(v.sampleRate)
	o.SetFrequency(rate)
	o.SetGain(depth)
	o.SetPhase(phase)

	v.lfo = waveform
	v.hasLFO = true
}

// SetFilter sets the filter type, base cutoff and resonance
func (v *Voice) SetFilter(filterType filter.Type, cutoff, resonance float64) {
	v.filterType = filterType
	v.cutoff = cutoff
	v.resonance = resonance
	v.updateCoefficients(cutoff)
}

// SetCutoff changes the base cutoff. The coefficients follow on the next
// Process call.
func (v *Voice) SetCutoff(cutoff float64) {
	v.cutoff = cutoff
}

// SetFrequency retunes the active oscillator without touching its phase
func (v *Voice) SetFrequency(freq float64) {
	if v.hasOSC {
		v.oscPool[v.osc].SetFrequency(freq)
	}
}

// Process returns the next filtered sample. expLFO selects the exponential
// ramp for a Saw LFO and is ignored for the other LFO waveforms.
func (v *Voice) Process(expLFO bool) float32 {
	if !v.hasOSC || !v.hasLFO {
		return 0
	}

	sample := v.oscPool[v.osc].Process(false)
	mod := v.lfoPool[v.lfo].Process(expLFO)

	// Coefficients follow the LFO every sample
	v.updateCoefficients(v.cutoff + mod)

	return v.biquad.ProcessSample(float32(sample))
}

// ProcessBuffer fills buffer with consecutive voice samples - no allocations
func (v *Voice) ProcessBuffer(buffer []float32, expLFO bool) {
	for i := range buffer {
		buffer[i] = v.Process(expLFO)
	}
}

// Reset clears the filter history; oscillator phases are kept
func (v *Voice) Reset() {
	v.biquad.Reset()
}

// OSC returns the selected tone oscillator waveform and whether one is selected
func (v *Voice) OSC() (oscillator.Waveform, bool) { return v.osc, v.hasOSC }

// LFO returns the selected LFO waveform and whether one is selected
func (v *Voice) LFO() (oscillator.Waveform, bool) { return v.lfo, v.hasLFO }

// Oscillator returns a copy of the active tone oscillator
func (v *Voice) Oscillator() oscillator.Oscillator { return v.oscPool[v.osc] }

// Modulator returns a copy of the active LFO
func (v *Voice) Modulator() oscillator.Oscillator { return v.lfoPool[v.lfo] }

// Coefficients returns the coefficients last used by the filter
func (v *Voice) Coefficients() filter.Coefficients { return v.biquad.Coefficients() }

// Cutoff returns the unmodulated base cutoff in Hz
func (v *Voice) Cutoff() float64 { return v.cutoff }

// Resonance returns the filter Q
func (v *Voice) Resonance() float64 { return v.resonance }

// FilterType returns the filter response
func (v *Voice) FilterType() filter.Type { return v.filterType }

// SampleRate returns the sample rate in Hz
func (v *Voice) SampleRate() float64 { return v.sampleRate }

func (v *Voice) updateCoefficients(cutoff float64) {
	cutoff = filter.ClampCutoff(cutoff, v.sampleRate)
	v.biquad.SetCoefficients(filter.Design(v.filterType, v.sampleRate, cutoff, v.resonance))
}
