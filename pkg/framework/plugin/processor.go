// Package plugin provides the host-agnostic processor contract and a base
// implementation that removes the boilerplate from concrete processors.
package plugin

import (
	"github.com/justyntemme/dronesynth/pkg/framework/param"
	"github.com/justyntemme/dronesynth/pkg/framework/process"
)

// Processor is driven by an audio host: a renderer, a live player or a
// test. The host calls Initialize once, SetActive(true), then ProcessAudio
// once per block from a single audio goroutine.
type Processor interface {
	// Initialize prepares the processor; it is the only call allowed to allocate
	Initialize(sampleRate float64, maxBlockSize int32) error

	// ProcessAudio fills ctx.Output - zero allocations
	ProcessAudio(ctx *process.Context)

	// GetParameters returns the control parameters
	GetParameters() *param.Registry

	// SetActive is called when processing starts/stops
	SetActive(active bool) error

	// GetLatencySamples returns the processing latency in samples
	GetLatencySamples() int32

	// GetTailSamples returns how long output continues after input stops
	GetTailSamples() int32
}

// BaseProcessor provides common functionality for audio processors
type BaseProcessor struct {
	info       Info
	params     *param.Registry
	sampleRate float64
	blockSize  int32
	active     bool

	onInitialize func(sampleRate float64, maxBlockSize int32) error
	onSetActive  func(active bool) error
	onReset      func()
}

// NewBaseProcessor creates a base processor with an empty registry
func NewBaseProcessor(info Info) *BaseProcessor {
	return &BaseProcessor{
		info:   info,
		params: param.NewRegistry(),
	}
}

// Initialize validates the processor info, runs the OnInitialize callback
// and records the stream format.
func (b *BaseProcessor) Initialize(sampleRate float64, maxBlockSize int32) error {
	if err := b.info.Validate(); err != nil {
		return err
	}
	if b.onInitialize != nil {
		if err := b.onInitialize(sampleRate, maxBlockSize); err != nil {
			return err
		}
	}
	b.sampleRate = sampleRate
	b.blockSize = maxBlockSize
	return nil
}

// GetParameters implements the Processor interface
func (b *BaseProcessor) GetParameters() *param.Registry {
	return b.params
}

// SetActive implements the Processor interface. Deactivation runs the
// OnReset callback before OnSetActive.
func (b *BaseProcessor) SetActive(active bool) error {
	if !active && b.onReset != nil {
		b.onReset()
	}

	if b.onSetActive != nil {
		if err := b.onSetActive(active); err != nil {
			return err
		}
	}
	b.active = active
	return nil
}

// IsActive reports whether the processor is between SetActive(true) and SetActive(false)
func (b *BaseProcessor) IsActive() bool {
	return b.active
}

// GetLatencySamples implements the Processor interface - default no latency
func (b *BaseProcessor) GetLatencySamples() int32 {
	return 0
}

// GetTailSamples implements the Processor interface - default no tail
func (b *BaseProcessor) GetTailSamples() int32 {
	return 0
}

// Info returns the processor metadata
func (b *BaseProcessor) Info() Info {
	return b.info
}

// SampleRate returns the current sample rate
func (b *BaseProcessor) SampleRate() float64 {
	return b.sampleRate
}

// MaxBlockSize returns the block size passed to Initialize
func (b *BaseProcessor) MaxBlockSize() int32 {
	return b.blockSize
}

// Parameters returns the parameter registry for adding parameters
func (b *BaseProcessor) Parameters() *param.Registry {
	return b.params
}

// OnInitialize sets a callback for initialization
func (b *BaseProcessor) OnInitialize(fn func(sampleRate float64, maxBlockSize int32) error) {
	b.onInitialize = fn
}

// OnSetActive sets a callback for activation/deactivation
func (b *BaseProcessor) OnSetActive(fn func(active bool) error) {
	b.onSetActive = fn
}

// OnReset sets a callback for when the processor should reset its state
func (b *BaseProcessor) OnReset(fn func()) {
	b.onReset = fn
}
