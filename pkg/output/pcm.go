package output

import (
	"encoding/binary"
	"math"
	"sync/atomic"
)

// FrameBytes is the size of one interleaved float32 stereo frame
const FrameBytes = Channels * 4

// DefaultReaderFrames is the render chunk used when none is given
const DefaultReaderFrames = 4096

// PCMReader serves a Streamer as interleaved little-endian float32 PCM.
// The source is swapped atomically so Read never takes a lock; with no
// source it produces silence.
type PCMReader struct {
	source atomic.Pointer[Streamer]
	frames [][2]float64

	// A read shorter than one frame leaves the rest of that frame here
	carry    [FrameBytes]byte
	carryPos int
	carryEnd int
}

// NewPCMReader creates a reader rendering at most maxFrames per Read
func NewPCMReader(s *Streamer, maxFrames int) *PCMReader {
	if maxFrames < 1 {
		maxFrames = DefaultReaderFrames
	}
	r := &PCMReader{frames: make([][2]float64, maxFrames)}
	r.source.Store(s)
	return r
}

// SetSource replaces the streamer; nil silences the reader
func (r *PCMReader) SetSource(s *Streamer) {
	r.source.Store(s)
}

// Source returns the current streamer
func (r *PCMReader) Source() *Streamer {
	return r.source.Load()
}

// Read implements io.Reader. It never returns an error.
func (r *PCMReader) Read(p []byte) (int, error) {
	n := copy(p, r.carry[r.carryPos:r.carryEnd])
	r.carryPos += n
	p = p[n:]

	frames := len(p) / FrameBytes
	if frames > len(r.frames) {
		frames = len(r.frames)
	}
	if frames > 0 {
		buf := r.frames[:frames]
		r.render(buf)
		for i, f := range buf {
			putFrame(p[i*FrameBytes:], f)
		}
		n += frames * FrameBytes
		p = p[frames*FrameBytes:]
	}

	if n == 0 && len(p) > 0 {
		buf := r.frames[:1]
		r.render(buf)
		putFrame(r.carry[:], buf[0])
		r.carryPos = copy(p, r.carry[:])
		r.carryEnd = FrameBytes
		n = r.carryPos
	}
	return n, nil
}

func (r *PCMReader) render(frames [][2]float64) {
	s := r.source.Load()
	if s == nil {
		clear(frames)
		return
	}
	s.Stream(frames)
}

func putFrame(dst []byte, f [2]float64) {
	binary.LittleEndian.PutUint32(dst[0:], math.Float32bits(float32(f[0])))
	binary.LittleEndian.PutUint32(dst[4:], math.Float32bits(float32(f[1])))
}
