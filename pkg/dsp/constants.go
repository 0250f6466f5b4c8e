// Package dsp holds the audio constants shared by the DSP packages and
// the drone engine.
package dsp

// Common audio constants used throughout the DSP packages and the engine.
const (
	// Frequency ranges
	MinFrequency = 20.0    // 20 Hz
	MaxFrequency = 20000.0 // 20 kHz

	// Q factor ranges
	MinQ     = 0.1
	MaxQ     = 20.0
	DefaultQ = 0.707 // Butterworth response

	// Channel counts
	Mono   = 1
	Stereo = 2

	// Common sample rates
	SampleRate44k1 = 44100.0
	SampleRate48k  = 48000.0
	SampleRate96k  = 96000.0

	// Buffer sizes
	DefaultBlockSize = 512
	MaxBlockSize     = 8192

	// Smoothing times in milliseconds
	FastSmoothing   = 1.0
	MediumSmoothing = 20.0
	SlowSmoothing   = 50.0

	// Percent-scaled controls
	MinPercent = 0.0
	MaxPercent = 100.0
)
