// Package utility provides common DSP utility functions.
package utility

// ClampParameter ensures a parameter value stays within the specified range.
func ClampParameter(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// BipolarToUnipolar converts a bipolar parameter (-1 to 1) to unipolar (0 to 1).
func BipolarToUnipolar(value float64) float64 {
	return (value + 1.0) * 0.5
}

// UnipolarToBipolar converts a unipolar parameter (0 to 1) to bipolar (-1 to 1).
func UnipolarToBipolar(value float64) float64 {
	return value*2.0 - 1.0
}
