package dsp

import (
	"testing"
)

func TestConstants(t *testing.T) {
	tests := []struct {
		name string
		min  float64
		max  float64
	}{
		{"Frequency", MinFrequency, MaxFrequency},
		{"Q", MinQ, MaxQ},
		{"Percent", MinPercent, MaxPercent},
		{"Smoothing", FastSmoothing, SlowSmoothing},
		{"Block size", 1, MaxBlockSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.min >= tt.max {
				t.Errorf("%s: min (%f) >= max (%f)", tt.name, tt.min, tt.max)
			}
		})
	}

	if DefaultQ < MinQ || DefaultQ > MaxQ {
		t.Errorf("DefaultQ %f outside [%f, %f]", DefaultQ, MinQ, MaxQ)
	}
	if DefaultBlockSize > MaxBlockSize {
		t.Errorf("DefaultBlockSize %d exceeds MaxBlockSize %d", DefaultBlockSize, MaxBlockSize)
	}
}
