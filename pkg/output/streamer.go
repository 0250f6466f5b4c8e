// Package output drives a processor block by block and delivers its audio
// to a WAV file or the system sound device.
package output

import (
	"github.com/gopxl/beep"

	"github.com/justyntemme/dronesynth/pkg/dsp"
	"github.com/justyntemme/dronesynth/pkg/framework/plugin"
	"github.com/justyntemme/dronesynth/pkg/framework/process"
)

// Channels is the number of output channels rendered by the drivers
const Channels = dsp.Stereo

// Streamer adapts a stereo processor to beep.Streamer. The processor must
// be initialized and active; Streamer only calls ProcessAudio.
type Streamer struct {
	proc plugin.Processor
	ctx  *process.Context
	pos  int
}

var _ beep.Streamer = (*Streamer)(nil)

// NewStreamer allocates one block of blockSize frames for p
func NewStreamer(p plugin.Processor, sampleRate float64, blockSize int) *Streamer {
	if blockSize < 1 {
		blockSize = 1
	}
	ctx := process.NewOutputContext(Channels, blockSize, sampleRate, p.GetParameters())
	return &Streamer{
		proc: p,
		ctx:  ctx,
		pos:  blockSize,
	}
}

// Stream fills samples with stereo frames, rendering a new block whenever
// the current one is used up. The stream never ends.
func (s *Streamer) Stream(samples [][2]float64) (n int, ok bool) {
	left, right := s.ctx.Output[0], s.ctx.Output[1]
	for i := range samples {
		if s.pos >= len(left) {
			s.proc.ProcessAudio(s.ctx)
			s.pos = 0
		}
		samples[i][0] = float64(left[s.pos])
		samples[i][1] = float64(right[s.pos])
		s.pos++
	}
	return len(samples), true
}

// Err implements beep.Streamer
func (s *Streamer) Err() error {
	return nil
}

// Context returns the block the processor renders into
func (s *Streamer) Context() *process.Context {
	return s.ctx
}
