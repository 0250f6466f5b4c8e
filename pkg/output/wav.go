package output

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/justyntemme/dronesynth/pkg/framework/plugin"
)

// ErrInvalidFormat is returned for a non-positive sample rate or block size
var ErrInvalidFormat = errors.New("invalid output format")

// wavPrecision is the WAV sample width in bytes
const wavPrecision = 2

// Prepare initializes and activates p for the given stream format
func Prepare(p plugin.Processor, sampleRate, blockSize int) error {
	if sampleRate <= 0 || blockSize <= 0 {
		return fmt.Errorf("%w: %d Hz, block %d", ErrInvalidFormat, sampleRate, blockSize)
	}
	if err := p.Initialize(float64(sampleRate), int32(blockSize)); err != nil {
		return fmt.Errorf("initializing processor: %w", err)
	}
	if err := p.SetActive(true); err != nil {
		return fmt.Errorf("activating processor: %w", err)
	}
	return nil
}

// RenderWAV renders d of audio from p into w as 16-bit stereo WAV. p is
// initialized for the format, activated, and deactivated when done.
func RenderWAV(w io.WriteSeeker, p plugin.Processor, sampleRate, blockSize int, d time.Duration) error {
	if err := Prepare(p, sampleRate, blockSize); err != nil {
		return err
	}
	defer p.SetActive(false)

	format := beep.Format{
		SampleRate:  beep.SampleRate(sampleRate),
		NumChannels: Channels,
		Precision:   wavPrecision,
	}
	s := NewStreamer(p, float64(sampleRate), blockSize)
	if err := wav.Encode(w, beep.Take(format.SampleRate.N(d), s), format); err != nil {
		return fmt.Errorf("encoding wav: %w", err)
	}
	return nil
}
