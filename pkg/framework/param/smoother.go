package param

import (
	"math"
)

// SmoothingType defines different parameter smoothing algorithms.
type SmoothingType int

const (
	// LinearSmoothing ramps in equal steps; rate is the ramp length in samples
	LinearSmoothing SmoothingType = iota
	// ExponentialSmoothing is a one-pole filter; rate is the pole (0.9-0.999)
	ExponentialSmoothing
	// LogarithmicSmoothing ramps in log space, suited to frequencies;
	// rate is the ramp length in samples
	LogarithmicSmoothing
)

// logFloor keeps logarithmic smoothing away from log(0)
const logFloor = 0.001

// Smoother glides a control value towards its target one sample at a time
// to avoid zipper noise. It is a value type and never allocates.
type Smoother struct {
	smoothingType SmoothingType
	current       float64
	target        float64
	rate          float64
	threshold     float64
	isSmoothing   bool

	step float64

	logCurrent float64
	logTarget  float64
}

// NewSmoother creates a smoother resting at 0
func NewSmoother(smoothingType SmoothingType, rate float64) Smoother {
	return Smoother{
		smoothingType: smoothingType,
		rate:          rate,
		threshold:     1e-4,
	}
}

// RateForTime returns the rate that makes a smoother of the given type
// settle in roughly ms milliseconds.
func RateForTime(smoothingType SmoothingType, sampleRate, ms float64) float64 {
	samples := sampleRate * ms / 1000.0
	if smoothingType == ExponentialSmoothing {
		if samples <= 0 {
			return 0
		}
		// -60 dB after the given time
		return math.Exp(-6.908 / samples)
	}
	return samples
}

// SetTarget sets the value to glide towards
func (s *Smoother) SetTarget(target float64) {
	if math.Abs(target-s.target) < s.threshold && !s.isSmoothing {
		return
	}
	s.target = target

	switch s.smoothingType {
	case LinearSmoothing:
		if s.rate < 1 {
			s.Reset(target)
			return
		}
		s.step = (target - s.current) / s.rate

	case LogarithmicSmoothing:
		if s.rate < 1 {
			s.Reset(target)
			return
		}
		s.logCurrent = math.Log(math.Max(s.current, logFloor))
		s.logTarget = math.Log(math.Max(target, logFloor))
		s.step = (s.logTarget - s.logCurrent) / s.rate
	}
	s.isSmoothing = s.current != target
}

// Next advances one sample and returns the smoothed value
func (s *Smoother) Next() float64 {
	if !s.isSmoothing {
		return s.current
	}

	switch s.smoothingType {
	case ExponentialSmoothing:
		s.current += (s.target - s.current) * (1.0 - s.rate)
		if math.Abs(s.current-s.target) < s.threshold {
			s.finish()
		}

	case LinearSmoothing:
		s.current += s.step
		if (s.step >= 0 && s.current >= s.target) || (s.step < 0 && s.current <= s.target) {
			s.finish()
		}

	case LogarithmicSmoothing:
		s.logCurrent += s.step
		if (s.step >= 0 && s.logCurrent >= s.logTarget) || (s.step < 0 && s.logCurrent <= s.logTarget) {
			s.finish()
		} else {
			s.current = math.Exp(s.logCurrent)
		}
	}

	return s.current
}

func (s *Smoother) finish() {
	s.current = s.target
	s.isSmoothing = false
}

// Current returns the value without advancing
func (s *Smoother) Current() float64 { return s.current }

// Target returns the value being glided towards
func (s *Smoother) Target() float64 { return s.target }

// IsSmoothing reports whether the smoother has not reached its target yet
func (s *Smoother) IsSmoothing() bool {
	return s.isSmoothing
}

// Reset jumps straight to value
func (s *Smoother) Reset(value float64) {
	s.current = value
	s.target = value
	s.isSmoothing = false
}

// SetRate updates the smoothing rate
func (s *Smoother) SetRate(rate float64) {
	s.rate = rate
}
