//go:build !headless

package output

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"

	"github.com/justyntemme/dronesynth/pkg/framework/plugin"
)

// Player plays a processor on the default sound device through oto
type Player struct {
	ctx     *oto.Context
	player  *oto.Player
	reader  *PCMReader
	proc    plugin.Processor
	started bool
	mu      sync.Mutex // setup and control only
}

// NewPlayer prepares p for the device format and opens the device.
// Only one Player may exist per process.
func NewPlayer(p plugin.Processor, sampleRate, blockSize int) (*Player, error) {
	if err := Prepare(p, sampleRate, blockSize); err != nil {
		return nil, err
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: Channels,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		p.SetActive(false)
		return nil, fmt.Errorf("opening audio device: %w", err)
	}
	<-ready

	reader := NewPCMReader(NewStreamer(p, float64(sampleRate), blockSize), blockSize)
	return &Player{
		ctx:    ctx,
		player: ctx.NewPlayer(reader),
		reader: reader,
		proc:   p,
	}, nil
}

// Start begins playback
func (pl *Player) Start() {
	pl.mu.Lock()
	defer pl.mu.Unlock()

	if !pl.started && pl.player != nil {
		pl.player.Play()
		pl.started = true
	}
}

// Stop pauses playback
func (pl *Player) Stop() {
	pl.mu.Lock()
	defer pl.mu.Unlock()

	if pl.started && pl.player != nil {
		pl.player.Pause()
		pl.started = false
	}
}

// IsStarted reports whether playback is running
func (pl *Player) IsStarted() bool {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	return pl.started
}

// Close stops playback, releases the player and deactivates the processor
func (pl *Player) Close() error {
	pl.Stop()

	pl.mu.Lock()
	defer pl.mu.Unlock()

	pl.reader.SetSource(nil)
	var err error
	if pl.player != nil {
		err = pl.player.Close()
		pl.player = nil
	}
	if aerr := pl.proc.SetActive(false); err == nil {
		err = aerr
	}
	return err
}
