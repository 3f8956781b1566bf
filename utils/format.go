package utils

import (
	"math"
	"strconv"
)

// FormatFloat renders a float the way the tabular export has always written it:
// integral values keep a trailing ".0" and large magnitudes switch to exponent form.
func FormatFloat(f float64) string {
	if math.IsNaN(f) {
		return ""
	}
	if math.IsInf(f, 1) {
		return "inf"
	}
	if math.IsInf(f, -1) {
		return "-inf"
	}
	abs := math.Abs(f)
	if abs != 0 && (abs >= 1e16 || abs < 1e-4) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			return s
		}
	}
	return s + ".0"
}

// FormatFloatPtr renders nil as an empty cell
func FormatFloatPtr(f *float64) string {
	if f == nil {
		return ""
	}
	return FormatFloat(*f)
}

// FormatIntPtr renders nil as an empty cell
func FormatIntPtr(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func FormatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
