package debug

import (
	"fmt"
	"math"
)

// AudioAnalyzer accumulates level statistics over one or more buffers.
// Feed blocks with Add and read the totals with Result; Analyze is the
// one-shot form.
type AudioAnalyzer struct {
	ClippingThreshold float32
	DCThreshold       float32
	SilenceThreshold  float32

	peak       float32
	sum        float64
	sumSquares float64
	count      int
	clipped    int
	nonFinite  int
	crossings  int
	lastSample float32
	haveLast   bool
}

// AnalysisResult contains the results of audio buffer analysis.
type AnalysisResult struct {
	Samples        int
	Peak           float32
	RMS            float32
	DC             float32
	Clipping       bool
	ClippedSamples int
	Silent         bool
	HasNaN         bool // NaN or Inf
	NaNCount       int
	ZeroCrossings  int
}

// NewAudioAnalyzer creates an analyzer with default thresholds.
func NewAudioAnalyzer() *AudioAnalyzer {
	return &AudioAnalyzer{
		ClippingThreshold: 0.99,
		DCThreshold:       0.01,
		SilenceThreshold:  0.0001,
	}
}

// Reset discards the accumulated statistics
func (a *AudioAnalyzer) Reset() {
	a.peak = 0
	a.sum, a.sumSquares = 0, 0
	a.count, a.clipped, a.nonFinite, a.crossings = 0, 0, 0, 0
	a.lastSample, a.haveLast = 0, false
}

// Add accumulates one buffer - no allocations
func (a *AudioAnalyzer) Add(buffer []float32) {
	for _, sample := range buffer {
		f := float64(sample)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			a.nonFinite++
			continue
		}

		abs := float32(math.Abs(f))
		if abs > a.peak {
			a.peak = abs
		}
		if abs >= a.ClippingThreshold {
			a.clipped++
		}

		a.sum += f
		a.sumSquares += f * f
		a.count++

		if a.haveLast && (a.lastSample < 0) != (sample < 0) {
			a.crossings++
		}
		a.lastSample, a.haveLast = sample, true
	}
}

// Result returns the statistics accumulated since the last Reset
func (a *AudioAnalyzer) Result() AnalysisResult {
	r := AnalysisResult{
		Samples:        a.count + a.nonFinite,
		Peak:           a.peak,
		ClippedSamples: a.clipped,
		Clipping:       a.clipped > 0,
		NaNCount:       a.nonFinite,
		HasNaN:         a.nonFinite > 0,
		ZeroCrossings:  a.crossings,
	}
	if a.count > 0 {
		r.RMS = float32(math.Sqrt(a.sumSquares / float64(a.count)))
		r.DC = float32(a.sum / float64(a.count))
	}
	r.Silent = r.RMS < a.SilenceThreshold
	return r
}

// Analyze returns the statistics of a single buffer, discarding any
// previously accumulated state.
func (a *AudioAnalyzer) Analyze(buffer []float32) AnalysisResult {
	a.Reset()
	a.Add(buffer)
	return a.Result()
}

// Issues lists the problems found in a result, prefixed with name
func (a *AudioAnalyzer) Issues(r AnalysisResult, name string) []string {
	var issues []string
	if r.HasNaN {
		issues = append(issues, fmt.Sprintf("%s: contains %d non-finite samples", name, r.NaNCount))
	}
	if r.Clipping {
		issues = append(issues, fmt.Sprintf("%s: clipping detected (%d samples)", name, r.ClippedSamples))
	}
	if math.Abs(float64(r.DC)) > float64(a.DCThreshold) {
		issues = append(issues, fmt.Sprintf("%s: DC offset detected (%.3f)", name, r.DC))
	}
	if r.Peak > 1.0 {
		issues = append(issues, fmt.Sprintf("%s: peak exceeds 1.0 (%.3f)", name, r.Peak))
	}
	return issues
}

// CheckBuffer performs basic sanity checks on an audio buffer.
func CheckBuffer(buffer []float32, name string) []string {
	a := NewAudioAnalyzer()
	return a.Issues(a.Analyze(buffer), name)
}

// LogStats writes a result to the logger, warning about any issues
func (a *AudioAnalyzer) LogStats(l *Logger, name string, r AnalysisResult) {
	l.Info("%s: %d samples, peak %.3f, RMS %.3f, DC %.6f, %d zero crossings",
		name, r.Samples, r.Peak, r.RMS, r.DC, r.ZeroCrossings)
	if r.Silent {
		l.Warn("%s: silent", name)
	}
	for _, issue := range a.Issues(r, name) {
		l.Warn("%s", issue)
	}
}
