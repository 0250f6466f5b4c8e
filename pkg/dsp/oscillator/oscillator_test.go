package oscillator

import (
	"errors"
	"math"
	"testing"
)

func TestOscillatorDefaults(t *testing.T) {
	osc := New(Saw)

	if osc.SampleRate() != DefaultSampleRate {
		t.Errorf("Default sample rate incorrect: got %f, want %f", osc.SampleRate(), DefaultSampleRate)
	}
	if osc.Gain() != 1.0 {
		t.Errorf("Default gain incorrect: got %f, want 1.0", osc.Gain())
	}
	if osc.Phase() != 0.0 {
		t.Errorf("Default phase incorrect: got %f, want 0.0", osc.Phase())
	}
	if osc.Waveform() != Saw {
		t.Errorf("Waveform incorrect: got %v, want saw", osc.Waveform())
	}
}

// risingCrossings returns the fractional sample positions of upward zero crossings
func risingCrossings(samples []float64) []float64 {
	var crossings []float64
	for i := 1; i < len(samples); i++ {
		a, b := samples[i-1], samples[i]
		if a < 0 && b >= 0 {
			crossings = append(crossings, float64(i-1)+(-a)/(b-a))
		}
	}
	return crossings
}

func TestSinePeriod(t *testing.T) {
	sampleRate := 48000.0
	frequencies := []float64{55.0, 110.0, 440.0, 1000.0, 3150.0, 12000.0}

	for _, freq := range frequencies {
		osc := New(Sine)
		osc.SetSampleRate(sampleRate)
		osc.SetFrequency(freq)
		osc.SetPhase(0.1) // avoid a crossing exactly at sample 0

		samples := make([]float64, int(sampleRate))
		for i := range samples {
			samples[i] = osc.Process(false)
		}

		crossings := risingCrossings(samples)
		if len(crossings) < 2 {
			t.Fatalf("%.0f Hz: not enough zero crossings (%d)", freq, len(crossings))
		}

		measured := (crossings[len(crossings)-1] - crossings[0]) / float64(len(crossings)-1)
		expected := sampleRate / freq
		if math.Abs(measured-expected) > expected*1e-3 {
			t.Errorf("%.0f Hz: period %f samples, expected %f", freq, measured, expected)
		}
	}
}

func TestPhaseStaysWrapped(t *testing.T) {
	frequencies := []float64{0.01, 1.0, 110.0, 23999.0, 48000.0, 100000.0}

	for w := Waveform(0); w < NumWaveforms; w++ {
		for _, freq := range frequencies {
			osc := New(w)
			osc.SetFrequency(freq)
			for i := 0; i < 10000; i++ {
				osc.Process(i%2 == 0)
				if p := osc.Phase(); p < 0 || p >= 1 {
					t.Fatalf("%v at %.2f Hz: phase %f out of [0,1) after %d samples", w, freq, p, i+1)
				}
			}
		}
	}
}

func TestSetPhaseWraps(t *testing.T) {
	osc := New(Sine)
	osc.SetPhase(1.25)
	if math.Abs(osc.Phase()-0.25) > 1e-12 {
		t.Errorf("SetPhase(1.25) gave phase %f, want 0.25", osc.Phase())
	}
	osc.SetPhase(-0.25)
	if math.Abs(osc.Phase()-0.75) > 1e-12 {
		t.Errorf("SetPhase(-0.25) gave phase %f, want 0.75", osc.Phase())
	}
}

func TestWaveformValues(t *testing.T) {
	testCases := []struct {
		name        string
		waveform    Waveform
		phase       float64
		exponential bool
		expected    float64
	}{
		{"sine at 0", Sine, 0.0, false, 0.0},
		{"sine at 0.25", Sine, 0.25, false, 1.0},
		{"sine at 0.75", Sine, 0.75, false, -1.0},
		{"saw at 0", Saw, 0.0, false, -0.98},
		{"saw at 0.5", Saw, 0.5, false, 0.0},
		{"exp saw at 0", Saw, 0.0, true, -0.98},
		{"exp saw at 0.5", Saw, 0.5, true, math.Tanh(math.Atanh(0.98) * 2 * (math.Pow(2.7, 0.5) - 1.5))},
		{"square at 0", Square, 0.0, false, 0.0},
		{"square at 0.25", Square, 0.25, false, 0.0},
		{"triangle at 0", Triangle, 0.0, false, 0.96},
		{"triangle at 0.5", Triangle, 0.5, false, -2.96},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			osc := New(tc.waveform)
			osc.SetFrequency(1.0)
			osc.SetPhase(tc.phase)
			output := osc.Process(tc.exponential)
			if math.Abs(output-tc.expected) > 1e-6 {
				t.Errorf("got %f, expected %f", output, tc.expected)
			}
		})
	}
}

func TestExponentialFlagOnlyAffectsSaw(t *testing.T) {
	for _, w := range []Waveform{Sine, Square, Triangle} {
		linear := New(w)
		exp := New(w)
		linear.SetFrequency(220.0)
		exp.SetFrequency(220.0)
		for i := 0; i < 1000; i++ {
			a := linear.Process(false)
			b := exp.Process(true)
			if a != b {
				t.Fatalf("%v: exponential flag changed output at sample %d: %f vs %f", w, i, a, b)
			}
		}
	}

	linear := New(Saw)
	exp := New(Saw)
	linear.SetPhase(0.5)
	exp.SetPhase(0.5)
	if linear.Process(false) == exp.Process(true) {
		t.Error("Exponential saw should differ from linear saw at phase 0.5")
	}
	if linear.Phase() != exp.Phase() {
		t.Errorf("Exponential saw advanced differently: %f vs %f", linear.Phase(), exp.Phase())
	}
}

func TestSquareStaysInsideUnitRange(t *testing.T) {
	osc := New(Square)
	osc.SetSampleRate(48000.0)
	osc.SetFrequency(110.0)

	for i := 0; i < 48000; i++ {
		s := osc.Process(false)
		if s <= -1.0 || s >= 1.0 {
			t.Fatalf("Square output %f outside (-1,1) at sample %d", s, i)
		}
	}
}

func TestSquareFollowsCarrier(t *testing.T) {
	osc := New(Square)
	osc.SetSampleRate(4.0)
	osc.SetFrequency(1.0)

	expected := []float64{0.0, math.Tanh(10), 0.0, -math.Tanh(10)}
	for i, want := range expected {
		if got := osc.Process(false); math.Abs(got-want) > 1e-9 {
			t.Errorf("Sample %d: got %f, want %f", i, got, want)
		}
	}
}

func TestTriangleStaysInRangeFromZeroPhase(t *testing.T) {
	osc := New(Triangle)
	osc.SetSampleRate(48000.0)
	osc.SetFrequency(100.0)

	for i := 0; i < 480; i++ {
		s := osc.Process(false)
		if s < -1.0-1e-9 || s > 0.96+1e-9 {
			t.Fatalf("Triangle output %f outside [-1, 0.96] at sample %d", s, i)
		}
	}
}

func TestSetPhaseLeavesCarrier(t *testing.T) {
	// Phase offsets must not shift the square carrier
	a := New(Square)
	b := New(Square)
	b.SetPhase(0.5)
	a.SetFrequency(110.0)
	b.SetFrequency(110.0)

	for i := 0; i < 480; i++ {
		va := a.Process(false)
		vb := b.Process(false)
		if va != vb {
			t.Fatalf("Sample %d: phase offset changed the square: %f vs %f", i, va, vb)
		}
	}
	if b.CarrierPhase() != a.CarrierPhase() {
		t.Errorf("Carrier phases diverged: %f vs %f", a.CarrierPhase(), b.CarrierPhase())
	}
	if math.Abs(b.Phase()-wrap(a.Phase()+0.5)) > 1e-9 {
		t.Errorf("Oscillator phase lost its offset: %f vs %f", a.Phase(), b.Phase())
	}
}

func TestTriangleFoldUsesOscillatorPhase(t *testing.T) {
	// The carrier supplies the ramp while the oscillator phase picks the fold
	osc := New(Triangle)
	osc.SetSampleRate(8.0)
	osc.SetFrequency(1.0)
	osc.SetPhase(0.5)

	carrier, phase := 0.0, 0.5
	for i := 0; i < 16; i++ {
		folded := math.Tanh(math.Atanh(0.98) * 2 * (carrier - 0.5))
		if phase < 0.5 {
			folded = -folded
		}
		want := 2 * (folded - 0.5)
		if got := osc.Process(false); math.Abs(got-want) > 1e-9 {
			t.Errorf("Sample %d: got %f, want %f", i, got, want)
		}
		carrier = wrap(carrier + 0.125)
		phase = wrap(phase + 0.125)
	}
}

func TestGainScalesOutput(t *testing.T) {
	unity := New(Sine)
	scaled := New(Sine)
	scaled.SetGain(2200.0)
	unity.SetFrequency(0.1)
	scaled.SetFrequency(0.1)
	unity.SetPhase(0.3)
	scaled.SetPhase(0.3)

	for i := 0; i < 100; i++ {
		u := unity.Process(false)
		s := scaled.Process(false)
		if math.Abs(s-2200.0*u) > 1e-9 {
			t.Fatalf("Gain not applied at sample %d: %f vs %f", i, s, 2200.0*u)
		}
	}
}

func TestFrequencyChangeTakesEffectImmediately(t *testing.T) {
	osc := New(Sine)
	osc.SetSampleRate(1000.0)
	osc.SetFrequency(100.0)
	osc.Process(false)
	if math.Abs(osc.Phase()-0.1) > 1e-12 {
		t.Fatalf("Phase after one step: got %f, want 0.1", osc.Phase())
	}

	osc.SetFrequency(200.0)
	osc.Process(false)
	if math.Abs(osc.Phase()-0.3) > 1e-12 {
		t.Errorf("Phase after retune: got %f, want 0.3", osc.Phase())
	}

	osc.SetSampleRate(2000.0)
	osc.Process(false)
	if math.Abs(osc.Phase()-0.4) > 1e-12 {
		t.Errorf("Phase after sample rate change: got %f, want 0.4", osc.Phase())
	}
}

func TestProcessBuffer(t *testing.T) {
	ref := New(Triangle)
	osc := New(Triangle)
	ref.SetFrequency(440.0)
	osc.SetFrequency(440.0)

	buffer := make([]float32, 256)
	osc.ProcessBuffer(buffer, false)

	for i, v := range buffer {
		if want := float32(ref.Process(false)); v != want {
			t.Fatalf("Sample %d: got %f, want %f", i, v, want)
		}
	}
}

func TestParseWaveform(t *testing.T) {
	tests := []struct {
		name     string
		expected Waveform
	}{
		{"sine", Sine},
		{"SAW", Saw},
		{"sawtooth", Saw},
		{" square ", Square},
		{"tri", Triangle},
	}

	for _, tt := range tests {
		w, err := ParseWaveform(tt.name)
		if err != nil {
			t.Errorf("ParseWaveform(%q) failed: %v", tt.name, err)
			continue
		}
		if w != tt.expected {
			t.Errorf("ParseWaveform(%q) = %v, want %v", tt.name, w, tt.expected)
		}
		if back, _ := ParseWaveform(w.String()); back != w {
			t.Errorf("String() of %v does not parse back", w)
		}
	}

	if _, err := ParseWaveform("noise"); !errors.Is(err, ErrUnknownWaveform) {
		t.Errorf("Expected ErrUnknownWaveform, got %v", err)
	}
}

func BenchmarkOscillator(b *testing.B) {
	for w := Waveform(0); w < NumWaveforms; w++ {
		b.Run(w.String(), func(b *testing.B) {
			osc := New(w)
			osc.SetFrequency(110.0)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = osc.Process(true)
			}
		})
	}
}
