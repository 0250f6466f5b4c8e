package param

import (
	"fmt"
	"strconv"
	"strings"
)

// FrequencyFormatter formats frequency values with Hz/kHz
func FrequencyFormatter(hz float64) string {
	if hz >= 1000 {
		return fmt.Sprintf("%.2f kHz", hz/1000)
	}
	return fmt.Sprintf("%.1f Hz", hz)
}

// FrequencyParser parses "440", "440 Hz" or "2.3 kHz"
func FrequencyParser(str string) (float64, error) {
	str = strings.ToLower(strings.TrimSpace(str))

	if strings.HasSuffix(str, "khz") {
		val, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(str, "khz")), 64)
		if err != nil {
			return 0, err
		}
		return val * 1000, nil
	}

	str = strings.TrimSpace(strings.TrimSuffix(str, "hz"))
	return strconv.ParseFloat(str, 64)
}

// PercentFormatter formats percentage values
func PercentFormatter(value float64) string {
	return fmt.Sprintf("%.0f%%", value)
}

// PercentParser parses percentage strings
func PercentParser(str string) (float64, error) {
	str = strings.TrimSuffix(strings.TrimSpace(str), "%")
	return strconv.ParseFloat(strings.TrimSpace(str), 64)
}

// SamplesFormatter formats a length in samples
func SamplesFormatter(samples float64) string {
	return fmt.Sprintf("%.0f smp", samples)
}

// SamplesParser parses "2000" or "2000 smp"
func SamplesParser(str string) (float64, error) {
	str = strings.TrimSuffix(strings.TrimSpace(str), "smp")
	return strconv.ParseFloat(strings.TrimSpace(str), 64)
}

// QFormatter formats a filter resonance
func QFormatter(q float64) string {
	return fmt.Sprintf("Q %.2f", q)
}

// QParser parses "0.7" or "Q 0.7"
func QParser(str string) (float64, error) {
	str = strings.TrimSpace(str)
	str = strings.TrimPrefix(strings.TrimPrefix(str, "Q"), "q")
	return strconv.ParseFloat(strings.TrimSpace(str), 64)
}
