// Package process provides the per-block audio processing context.
package process

import (
	"github.com/justyntemme/dronesynth/pkg/framework/param"
)

// Context carries one block of audio between a driver and a processor.
// Buffers are allocated up front; nothing here allocates per block.
type Context struct {
	Input      [][]float32
	Output     [][]float32
	SampleRate float64

	// Backing storage for contexts that own their outputs
	outputs      [][]float32
	maxBlockSize int

	workBuffer []float32

	params *param.Registry
}

// NewContext creates a context whose Input and Output are supplied by the
// caller before each block.
func NewContext(maxBlockSize int, params *param.Registry) *Context {
	return &Context{
		workBuffer:   make([]float32, maxBlockSize),
		maxBlockSize: maxBlockSize,
		params:       params,
	}
}

// NewOutputContext creates a context that owns channels output buffers of
// maxBlockSize samples and has no inputs. Use SetBlockSize to pick how many
// samples the next block holds.
func NewOutputContext(channels, maxBlockSize int, sampleRate float64, params *param.Registry) *Context {
	c := NewContext(maxBlockSize, params)
	c.SampleRate = sampleRate
	c.outputs = make([][]float32, channels)
	for ch := range c.outputs {
		c.outputs[ch] = make([]float32, maxBlockSize)
	}
	c.Output = make([][]float32, channels)
	c.SetBlockSize(maxBlockSize)
	return c
}

// SetBlockSize reslices owned output buffers to n samples, clamped to the
// maximum block size, and returns the size used.
func (c *Context) SetBlockSize(n int) int {
	if n > c.maxBlockSize {
		n = c.maxBlockSize
	}
	if n < 0 {
		n = 0
	}
	for ch := range c.outputs {
		c.Output[ch] = c.outputs[ch][:n]
	}
	return n
}

// MaxBlockSize returns the largest block the context was sized for
func (c *Context) MaxBlockSize() int {
	return c.maxBlockSize
}

// Params returns the registry the context reads from
func (c *Context) Params() *param.Registry {
	return c.params
}

// Param returns the current value of a parameter (0-1 normalized)
func (c *Context) Param(id uint32) float64 {
	if c.params == nil {
		return 0
	}
	if p := c.params.Get(id); p != nil {
		return p.GetValue()
	}
	return 0
}

// ParamPlain returns the current plain value of a parameter
func (c *Context) ParamPlain(id uint32) float64 {
	if c.params == nil {
		return 0
	}
	if p := c.params.Get(id); p != nil {
		return p.GetPlainValue()
	}
	return 0
}

// NumSamples returns the number of samples to process
func (c *Context) NumSamples() int {
	if len(c.Input) > 0 && len(c.Input[0]) > 0 {
		return len(c.Input[0])
	}
	if len(c.Output) > 0 {
		return len(c.Output[0])
	}
	return 0
}

// NumInputChannels returns the number of input channels
func (c *Context) NumInputChannels() int {
	return len(c.Input)
}

// NumOutputChannels returns the number of output channels
func (c *Context) NumOutputChannels() int {
	return len(c.Output)
}

// WorkBuffer returns a scratch slice sized to the current block
func (c *Context) WorkBuffer() []float32 {
	n := c.NumSamples()
	if n > len(c.workBuffer) {
		n = len(c.workBuffer)
	}
	return c.workBuffer[:n]
}

// Clear zeros the output buffers
func (c *Context) Clear() {
	for ch := range c.Output {
		for i := range c.Output[ch] {
			c.Output[ch][i] = 0
		}
	}
}

// Interleave writes the output channels frame by frame into dst and returns
// the number of frames written.
func (c *Context) Interleave(dst []float32) int {
	channels := len(c.Output)
	if channels == 0 {
		return 0
	}
	frames := c.NumSamples()
	if limit := len(dst) / channels; frames > limit {
		frames = limit
	}
	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			dst[i*channels+ch] = c.Output[ch][i]
		}
	}
	return frames
}
