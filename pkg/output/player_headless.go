//go:build headless

package output

import (
	"github.com/justyntemme/dronesynth/pkg/framework/plugin"
)

// Player is a no-op stand-in for builds without a sound device
type Player struct {
	reader  *PCMReader
	proc    plugin.Processor
	started bool
}

// NewPlayer prepares p but opens no device
func NewPlayer(p plugin.Processor, sampleRate, blockSize int) (*Player, error) {
	if err := Prepare(p, sampleRate, blockSize); err != nil {
		return nil, err
	}
	return &Player{
		reader: NewPCMReader(NewStreamer(p, float64(sampleRate), blockSize), blockSize),
		proc:   p,
	}, nil
}

// Start marks the player as running
func (pl *Player) Start() { pl.started = true }

// Stop marks the player as stopped
func (pl *Player) Stop() { pl.started = false }

// IsStarted reports whether Start was called
func (pl *Player) IsStarted() bool { return pl.started }

// Close deactivates the processor
func (pl *Player) Close() error {
	pl.started = false
	pl.reader.SetSource(nil)
	return pl.proc.SetActive(false)
}
