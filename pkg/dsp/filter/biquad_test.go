package filter

import (
	"errors"
	"math"
	"testing"
)

func TestClampCutoff(t *testing.T) {
	sampleRate := 48000.0
	tests := []struct {
		name     string
		cutoff   float64
		expected float64
	}{
		{"Within range", 1000.0, 1000.0},
		{"Below floor", 5.0, MinCutoff},
		{"Negative", -2200.0, MinCutoff},
		{"At floor", MinCutoff, MinCutoff},
		{"NaN", math.NaN(), MinCutoff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ClampCutoff(tt.cutoff, sampleRate)
			if result != tt.expected {
				t.Errorf("ClampCutoff(%f) = %f, want %f", tt.cutoff, result, tt.expected)
			}
		})
	}

	for _, cutoff := range []float64{24000.0, 30000.0, math.Inf(1)} {
		result := ClampCutoff(cutoff, sampleRate)
		if result >= sampleRate/2 {
			t.Errorf("ClampCutoff(%f) = %f, must stay below Nyquist", cutoff, result)
		}
		if result < sampleRate/2-1e-6 {
			t.Errorf("ClampCutoff(%f) = %f, should sit just below Nyquist", cutoff, result)
		}
	}
}

func TestDesignLowpassMatchesCookbook(t *testing.T) {
	sampleRate, cutoff, q := 48000.0, 1000.0, 0.707

	omega := 2.0 * math.Pi * cutoff / sampleRate
	alpha := math.Sin(omega) / (2.0 * q)
	cosOmega := math.Cos(omega)
	a0 := 1.0 + alpha

	expected := Coefficients{
		B0: float32((1.0 - cosOmega) / 2.0 / a0),
		B1: float32((1.0 - cosOmega) / a0),
		B2: float32((1.0 - cosOmega) / 2.0 / a0),
		A1: float32(-2.0 * cosOmega / a0),
		A2: float32((1.0 - alpha) / a0),
	}

	if got := Design(LowPass, sampleRate, cutoff, q); got != expected {
		t.Errorf("Lowpass coefficients: got %+v, want %+v", got, expected)
	}
}

// gainAt evaluates |H(z)| on the unit circle at the given frequency
func gainAt(c Coefficients, freq, sampleRate float64) float64 {
	w := 2.0 * math.Pi * freq / sampleRate
	z1 := complex(math.Cos(-w), math.Sin(-w))
	z2 := z1 * z1
	num := complex(float64(c.B0), 0) + complex(float64(c.B1), 0)*z1 + complex(float64(c.B2), 0)*z2
	den := 1 + complex(float64(c.A1), 0)*z1 + complex(float64(c.A2), 0)*z2
	r := num / den
	return math.Hypot(real(r), imag(r))
}

func TestDesignResponses(t *testing.T) {
	sampleRate := 48000.0
	cutoff := 2000.0
	q := 0.7

	testCases := []struct {
		name      string
		filter    Type
		freq      float64
		expected  float64
		tolerance float64
	}{
		{"lowpass at DC", LowPass, 0, 1.0, 1e-4},
		{"lowpass near Nyquist", LowPass, 23999, 0.0, 1e-3},
		{"highpass at DC", HighPass, 0, 0.0, 1e-4},
		{"highpass near Nyquist", HighPass, 23999, 1.0, 1e-3},
		{"bandpass at DC", BandPass, 0, 0.0, 1e-4},
		{"bandpass at center", BandPass, cutoff, 1.0, 1e-3},
		{"allpass at DC", AllPass, 0, 1.0, 1e-4},
		{"allpass at center", AllPass, cutoff, 1.0, 1e-4},
		{"allpass at 10k", AllPass, 10000, 1.0, 1e-4},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := Design(tc.filter, sampleRate, cutoff, q)
			if g := gainAt(c, tc.freq, sampleRate); math.Abs(g-tc.expected) > tc.tolerance {
				t.Errorf("gain %f, expected %f", g, tc.expected)
			}
		})
	}
}

func TestDesignIsPure(t *testing.T) {
	a := Design(BandPass, 44100.0, 800.0, 2.0)
	Design(HighPass, 96000.0, 12000.0, 0.5)
	b := Design(BandPass, 44100.0, 800.0, 2.0)
	if a != b {
		t.Errorf("Design is not deterministic: %+v vs %+v", a, b)
	}
}

func rms(buffer []float32) float64 {
	sum := 0.0
	for _, s := range buffer {
		sum += float64(s) * float64(s)
	}
	return math.Sqrt(sum / float64(len(buffer)))
}

func TestBiquadLowpassAttenuates(t *testing.T) {
	sampleRate := 48000.0
	var bq Biquad
	bq.SetCoefficients(Design(LowPass, sampleRate, 500.0, 0.707))

	generate := func(freq float64) []float32 {
		buffer := make([]float32, 4800)
		for i := range buffer {
			buffer[i] = float32(math.Sin(2.0 * math.Pi * freq * float64(i) / sampleRate))
		}
		return buffer
	}

	low := generate(100.0)
	bq.Process(low)
	bq.Reset()
	high := generate(10000.0)
	bq.Process(high)

	// Skip the transient
	if r := rms(low[2400:]); r < 0.6 {
		t.Errorf("100 Hz should pass a 500 Hz lowpass, RMS %f", r)
	}
	if r := rms(high[2400:]); r > 0.01 {
		t.Errorf("10 kHz should be attenuated by a 500 Hz lowpass, RMS %f", r)
	}
}

func TestBiquadReset(t *testing.T) {
	var bq Biquad
	bq.SetCoefficients(Design(LowPass, 48000.0, 1000.0, 0.7))
	for i := 0; i < 100; i++ {
		bq.ProcessSample(1.0)
	}

	bq.Reset()
	var fresh Biquad
	fresh.SetCoefficients(bq.Coefficients())
	if a, b := bq.ProcessSample(0.5), fresh.ProcessSample(0.5); a != b {
		t.Errorf("Reset did not clear state: %f vs %f", a, b)
	}
}

func TestBiquadKeepsStateAcrossCoefficientChanges(t *testing.T) {
	var bq Biquad
	bq.SetCoefficients(Design(LowPass, 48000.0, 1000.0, 0.7))
	bq.ProcessSample(1.0)

	bq.SetCoefficients(Design(LowPass, 48000.0, 1200.0, 0.7))
	var fresh Biquad
	fresh.SetCoefficients(bq.Coefficients())
	if bq.ProcessSample(0) == fresh.ProcessSample(0) {
		t.Error("Changing coefficients should not clear the filter history")
	}
}

func TestParseType(t *testing.T) {
	for _, ft := range []Type{LowPass, HighPass, BandPass, AllPass} {
		parsed, err := ParseType(ft.String())
		if err != nil || parsed != ft {
			t.Errorf("ParseType(%q) = %v, %v", ft.String(), parsed, err)
		}
	}
	if _, err := ParseType("notch"); !errors.Is(err, ErrUnknownType) {
		t.Errorf("Expected ErrUnknownType, got %v", err)
	}
}

func BenchmarkDesignAndProcess(b *testing.B) {
	var bq Biquad
	for i := 0; i < b.N; i++ {
		bq.SetCoefficients(Design(LowPass, 48000.0, 2312.0+float64(i%2200), 0.7))
		_ = bq.ProcessSample(0.5)
	}
}
