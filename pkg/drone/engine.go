// Package drone wires two filter-synth voices, two modulated delay lines
// and a handful of slow LFOs into a stereo drone processor.
package drone

import (
	"errors"
	"fmt"
	"math"

	"github.com/justyntemme/dronesynth/pkg/dsp"
	"github.com/justyntemme/dronesynth/pkg/dsp/delay"
	"github.com/justyntemme/dronesynth/pkg/dsp/oscillator"
	"github.com/justyntemme/dronesynth/pkg/dsp/pan"
	"github.com/justyntemme/dronesynth/pkg/dsp/synth"
	"github.com/justyntemme/dronesynth/pkg/dsp/utility"
	"github.com/justyntemme/dronesynth/pkg/framework/debug"
	"github.com/justyntemme/dronesynth/pkg/framework/param"
	"github.com/justyntemme/dronesynth/pkg/framework/plugin"
	"github.com/justyntemme/dronesynth/pkg/framework/process"
)

// Parameter IDs
const (
	ParamFrequency uint32 = iota
	ParamCutoff
	ParamResonance
	ParamDelayTime
	ParamDryWet
	ParamOutputGain
)

const (
	// smoothingMs is the glide time for cutoff and output gain changes
	smoothingMs = dsp.MediumSmoothing
	// maxOscFrequency tops the oscillator frequency control
	maxOscFrequency = 2000.0
	// maxDelayCenter tops the delay center control; the sweep is still
	// clamped by the buffer length
	maxDelayCenter = 20000.0
)

var (
	// ErrInvalidSampleRate is returned by Initialize for a non-positive or non-finite rate
	ErrInvalidSampleRate = errors.New("invalid sample rate")
	// ErrInvalidBlockSize is returned by Initialize for a non-positive block size
	ErrInvalidBlockSize = errors.New("invalid block size")
	// ErrUnknownParam is returned by Adjust for an unregistered parameter ID
	ErrUnknownParam = errors.New("unknown parameter")
)

// Engine is the drone processor. All buffers are allocated in Initialize;
// ProcessAudio and Render never allocate.
type Engine struct {
	*plugin.BaseProcessor

	cfg    Config
	logger *debug.Logger

	voices [2]*synth.Voice
	delays [2]*delay.Line

	feedbackLFO  oscillator.Oscillator
	delayTimeLFO oscillator.Oscillator
	balanceLFO   oscillator.Oscillator

	// Cached parameter handles, read once per block
	frequencyParam *param.Parameter
	cutoffParam    *param.Parameter
	resonanceParam *param.Parameter
	delayParam     *param.Parameter
	dryWetParam    *param.Parameter
	gainParam      *param.Parameter

	// Values last pushed into the components
	frequency   float64
	resonance   float64
	delayCenter float64
	dryWet      float64

	cutoff param.Smoother
	gain   param.Smoother

	initialized bool
}

// New creates an engine for cfg. The configuration is checked in
// Initialize. A nil logger selects debug.Default().
func New(cfg Config, logger *debug.Logger) *Engine {
	if logger == nil {
		logger = debug.Default()
	}

	e := &Engine{
		BaseProcessor: plugin.NewBaseProcessor(plugin.Info{
			ID:       "com.justyntemme.dronesynth",
			Name:     "Drone",
			Version:  "1.0.0",
			Vendor:   "dronesynth",
			Category: "Instrument|Synth",
		}),
		cfg:    cfg,
		logger: logger.With("drone"),
	}

	e.frequencyParam = param.New(ParamFrequency, "Frequency").
		ShortName("Freq").
		Range(dsp.MinFrequency, maxOscFrequency).
		Default(cfg.Frequency).
		Unit("Hz").
		Formatter(param.FrequencyFormatter, param.FrequencyParser).
		Build()
	e.cutoffParam = param.New(ParamCutoff, "Cutoff").
		Range(dsp.MinFrequency, dsp.MaxFrequency).
		Default(cfg.Cutoff).
		Unit("Hz").
		Formatter(param.FrequencyFormatter, param.FrequencyParser).
		Build()
	e.resonanceParam = param.New(ParamResonance, "Resonance").
		ShortName("Res").
		Range(dsp.MinQ, dsp.MaxQ).
		Default(cfg.Resonance).
		Formatter(param.QFormatter, param.QParser).
		Build()
	e.delayParam = param.New(ParamDelayTime, "Delay Center").
		ShortName("Delay").
		Range(0, maxDelayCenter).
		Default(cfg.DelayCenter).
		Unit("smp").
		Formatter(param.SamplesFormatter, param.SamplesParser).
		Build()
	e.dryWetParam = param.New(ParamDryWet, "Dry/Wet").
		ShortName("Mix").
		Range(dsp.MinPercent, dsp.MaxPercent).
		Default(cfg.DryWet * 100).
		Unit("%").
		Formatter(param.PercentFormatter, param.PercentParser).
		Build()
	e.gainParam = param.New(ParamOutputGain, "Output").
		ShortName("Out").
		Range(dsp.MinPercent, dsp.MaxPercent).
		Default(cfg.OutputGain * 100).
		Unit("%").
		Formatter(param.PercentFormatter, param.PercentParser).
		Build()

	// IDs are distinct constants, Add cannot fail here
	_ = e.Parameters().Add(
		e.frequencyParam,
		e.cutoffParam,
		e.resonanceParam,
		e.delayParam,
		e.dryWetParam,
		e.gainParam,
	)

	e.OnInitialize(e.initialize)
	e.OnReset(e.reset)
	return e
}

// Config returns the configuration the engine was created with
func (e *Engine) Config() Config {
	return e.cfg
}

func (e *Engine) initialize(sampleRate float64, maxBlockSize int32) error {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}
	if maxBlockSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBlockSize, maxBlockSize)
	}
	if err := e.cfg.Validate(); err != nil {
		return err
	}

	size := int(sampleRate * e.cfg.BufferSeconds)
	var delays [2]*delay.Line
	for ch := range delays {
		d, err := delay.New(size)
		if err != nil {
			return fmt.Errorf("allocating delay line %d: %w", ch, err)
		}
		d.SetReadHeadWrap(e.cfg.WrapReadHead)
		delays[ch] = d
	}
	e.delays = delays

	e.frequency = e.frequencyParam.GetPlainValue()
	e.resonance = e.resonanceParam.GetPlainValue()
	e.delayCenter = e.delayParam.GetPlainValue()
	e.dryWet = e.dryWetParam.GetPlainValue()

	e.cutoff = param.NewSmoother(param.LogarithmicSmoothing, param.RateForTime(param.LogarithmicSmoothing, sampleRate, smoothingMs))
	e.cutoff.Reset(e.cutoffParam.GetPlainValue())
	e.gain = param.NewSmoother(param.LinearSmoothing, param.RateForTime(param.LinearSmoothing, sampleRate, smoothingMs))
	e.gain.Reset(e.gainParam.GetPlainValue() / 100)

	for ch := range e.voices {
		v := synth.New()
		v.SetSampleRate(sampleRate)
		v.SetOSC(e.cfg.Waveform, e.frequency, e.cfg.OscPhase[ch])
		v.SetLFO(e.cfg.LFOWaveform, e.cfg.LFORate, e.cfg.LFODepth, e.cfg.LFOPhase[ch])
		v.SetFilter(e.cfg.FilterType, e.cutoff.Current(), e.resonance)
		e.voices[ch] = v

		e.delays[ch].SetDryWet(float32(e.dryWet / 100))
	}

	e.feedbackLFO = newModLFO(e.cfg.FeedbackLFO, sampleRate)
	e.delayTimeLFO = newModLFO(e.cfg.DelayTimeLFO, sampleRate)
	e.balanceLFO = newModLFO(e.cfg.BalanceLFO, sampleRate)

	e.initialized = true

	e.logger.Info("initialized: %.0f Hz, block %d, delay buffer %d samples, mode %s",
		sampleRate, maxBlockSize, size, e.cfg.DelayMode)
	e.logger.Info("voices: %s %.1f Hz, %s LFO %.2f Hz depth %.0f Hz, %s filter %.0f Hz Q %.2f",
		e.cfg.Waveform, e.frequency, e.cfg.LFOWaveform, e.cfg.LFORate, e.cfg.LFODepth,
		e.cfg.FilterType, e.cutoff.Current(), e.resonance)
	if peak := 2 * e.delayCenter; peak > float64(size-1) {
		e.logger.Debug("delay sweep peaks at %.0f samples, clamped to %d", peak, size-1)
	}
	return nil
}

func newModLFO(m ModLFO, sampleRate float64) oscillator.Oscillator {
	o := oscillator.New(m.Waveform)
	o.SetSampleRate(sampleRate)
	o.SetFrequency(m.Rate)
	return o
}

func (e *Engine) reset() {
	if !e.initialized {
		return
	}
	for ch := range e.delays {
		e.delays[ch].Reset()
		e.voices[ch].Reset()
	}
}

// GetTailSamples returns the delay buffer length
func (e *Engine) GetTailSamples() int32 {
	if !e.initialized {
		return 0
	}
	return int32(e.delays[Left].Size())
}

// Voice returns the voice for channel ch (Left or Right), nil before Initialize
func (e *Engine) Voice(ch int) *synth.Voice {
	return e.voices[ch]
}

// Delay returns the delay line for channel ch (Left or Right), nil before Initialize
func (e *Engine) Delay(ch int) *delay.Line {
	return e.delays[ch]
}

// Adjust moves a parameter by delta in its plain range and returns the
// resulting plain value. It is safe to call from any goroutine.
func (e *Engine) Adjust(id uint32, delta float64) (float64, error) {
	p := e.Parameters().Get(id)
	if p == nil {
		return 0, fmt.Errorf("%w: %d", ErrUnknownParam, id)
	}
	p.SetPlainValue(p.GetPlainValue() + delta)
	return p.GetPlainValue(), nil
}

// ProcessAudio renders one stereo block into ctx.Output
func (e *Engine) ProcessAudio(ctx *process.Context) {
	if !e.IsActive() || !e.initialized || ctx.NumOutputChannels() < dsp.Stereo {
		ctx.Clear()
		return
	}

	n := ctx.NumSamples()
	e.render(ctx.Output[Left][:n], ctx.Output[Right][:n])

	// Extra channels stay silent
	for ch := dsp.Stereo; ch < ctx.NumOutputChannels(); ch++ {
		for i := range ctx.Output[ch] {
			ctx.Output[ch][i] = 0
		}
	}
}

// Render fills left and right without a process context. It renders
// min(len(left), len(right)) samples and outputs silence while inactive.
func (e *Engine) Render(left, right []float32) {
	n := len(left)
	if len(right) < n {
		n = len(right)
	}
	if !e.IsActive() || !e.initialized {
		clear(left[:n])
		clear(right[:n])
		return
	}
	e.render(left[:n], right[:n])
}

func (e *Engine) render(left, right []float32) {
	e.applyParameters()
	for i := range left {
		left[i], right[i] = e.tick()
	}
}

// applyParameters pushes control changes into the components
func (e *Engine) applyParameters() {
	if f := e.frequencyParam.GetPlainValue(); f != e.frequency {
		e.frequency = f
		for _, v := range e.voices {
			v.SetFrequency(f)
		}
	}

	e.cutoff.SetTarget(e.cutoffParam.GetPlainValue())

	if q := e.resonanceParam.GetPlainValue(); q != e.resonance {
		e.resonance = q
		for _, v := range e.voices {
			v.SetFilter(e.cfg.FilterType, v.Cutoff(), q)
		}
	}

	e.delayCenter = e.delayParam.GetPlainValue()

	if w := e.dryWetParam.GetPlainValue(); w != e.dryWet {
		e.dryWet = w
		for _, d := range e.delays {
			d.SetDryWet(float32(w / 100))
		}
	}

	e.gain.SetTarget(e.gainParam.GetPlainValue() / 100)
}

// tick advances the whole graph by one stereo frame
func (e *Engine) tick() (float32, float32) {
	cutoff := e.cutoff.Next()
	e.voices[Left].SetCutoff(cutoff)
	e.voices[Right].SetCutoff(cutoff)

	l := e.voices[Left].Process(e.cfg.ExpLFO[Left])
	r := e.voices[Right].Process(e.cfg.ExpLFO[Right])

	feedback := float32(e.feedbackLFO.Process(e.cfg.FeedbackLFO.Exponential))
	delayTime := e.delayCenter * (1 + e.delayTimeLFO.Process(e.cfg.DelayTimeLFO.Exponential))
	for _, d := range e.delays {
		d.SetFeedbackGain(feedback)
		d.SetDelaySamples(delayTime)
	}

	// balance 1 is hard left, 0 is hard right
	balance := utility.BipolarToUnipolar(e.balanceLFO.Process(e.cfg.BalanceLFO.Exponential))
	position := float32(utility.UnipolarToBipolar(1 - balance))

	left, right := pan.Stereo(
		e.delays[Left].Process(l, e.cfg.DelayMode),
		e.delays[Right].Process(r, e.cfg.DelayMode),
		position, e.cfg.PanLaw)

	gain := float32(e.gain.Next())
	return left * gain, right * gain
}
