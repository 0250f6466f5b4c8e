package debug

import (
	"bytes"
	"math"
	"strings"
	"testing"
)

func TestAudioAnalyzer(t *testing.T) {
	t.Run("Sine", func(t *testing.T) {
		buffer := make([]float32, 4800)
		for i := range buffer {
			buffer[i] = 0.5 * float32(math.Sin(2*math.Pi*100*float64(i)/48000))
		}

		r := NewAudioAnalyzer().Analyze(buffer)
		if math.Abs(float64(r.Peak)-0.5) > 1e-3 {
			t.Errorf("Peak: got %f, want 0.5", r.Peak)
		}
		if math.Abs(float64(r.RMS)-0.5/math.Sqrt2) > 1e-3 {
			t.Errorf("RMS: got %f, want %f", r.RMS, 0.5/math.Sqrt2)
		}
		if math.Abs(float64(r.DC)) > 1e-3 {
			t.Errorf("DC: got %f", r.DC)
		}
		// 10 cycles, two crossings each, minus the start
		if r.ZeroCrossings < 19 || r.ZeroCrossings > 20 {
			t.Errorf("ZeroCrossings: got %d", r.ZeroCrossings)
		}
		if r.Clipping || r.Silent || r.HasNaN {
			t.Errorf("Unexpected flags: %+v", r)
		}
	})

	t.Run("Silence", func(t *testing.T) {
		r := NewAudioAnalyzer().Analyze(make([]float32, 256))
		if !r.Silent || r.Peak != 0 {
			t.Errorf("Expected silence: %+v", r)
		}
	})

	t.Run("Clipping", func(t *testing.T) {
		r := NewAudioAnalyzer().Analyze([]float32{0.1, 1.0, -1.2, 0.3})
		if !r.Clipping || r.ClippedSamples != 2 {
			t.Errorf("Expected 2 clipped samples: %+v", r)
		}
	})

	t.Run("NonFinite", func(t *testing.T) {
		nan := float32(math.NaN())
		inf := float32(math.Inf(1))
		r := NewAudioAnalyzer().Analyze([]float32{0.1, nan, inf, 0.2})
		if !r.HasNaN || r.NaNCount != 2 || r.Samples != 4 {
			t.Errorf("Expected 2 non-finite samples: %+v", r)
		}
		if r.Peak != 0.2 {
			t.Errorf("Non-finite samples must not affect the peak: %f", r.Peak)
		}
	})
}

func TestAudioAnalyzerAccumulates(t *testing.T) {
	whole := make([]float32, 1000)
	for i := range whole {
		whole[i] = float32(math.Sin(float64(i) * 0.05))
	}

	a := NewAudioAnalyzer()
	for start := 0; start < len(whole); start += 64 {
		end := start + 64
		if end > len(whole) {
			end = len(whole)
		}
		a.Add(whole[start:end])
	}
	streamed := a.Result()
	oneShot := NewAudioAnalyzer().Analyze(whole)

	if streamed != oneShot {
		t.Errorf("Block-wise analysis differs:\n%+v\n%+v", streamed, oneShot)
	}

	allocs := testing.AllocsPerRun(100, func() {
		a.Add(whole[:64])
	})
	if allocs != 0 {
		t.Errorf("Add allocated %f times per run", allocs)
	}
}

func TestCheckBuffer(t *testing.T) {
	if issues := CheckBuffer([]float32{0.1, -0.1, 0.2, -0.2}, "clean"); len(issues) != 0 {
		t.Errorf("Clean buffer reported issues: %v", issues)
	}

	issues := CheckBuffer([]float32{0.5, 1.5, 0.5, 0.5}, "hot")
	joined := strings.Join(issues, "\n")
	for _, want := range []string{"clipping", "DC offset", "peak exceeds"} {
		if !strings.Contains(joined, want) {
			t.Errorf("Missing %q in %v", want, issues)
		}
	}
}

func TestLogStats(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "", FlagLevel)
	a := NewAudioAnalyzer()

	a.LogStats(logger, "left", a.Analyze([]float32{0.5, 1.5}))

	output := buf.String()
	if !strings.Contains(output, "[INFO] left: 2 samples") {
		t.Errorf("Missing summary: %q", output)
	}
	if !strings.Contains(output, "[WARN] left: clipping") {
		t.Errorf("Missing clipping warning: %q", output)
	}
}
