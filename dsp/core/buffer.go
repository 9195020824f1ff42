package core

import "math"

// PeakAbs returns the largest absolute sample value in buf.
func PeakAbs(buf []float64) float64 {
	peak := 0.0
	for _, v := range buf {
		if av := math.Abs(v); av > peak {
			peak = av
		}
	}
	return peak
}

// IsSilent reports whether every sample in buf is exactly zero.
func IsSilent(buf []float64) bool {
	for _, v := range buf {
		if v != 0 {
			return false
		}
	}
	return true
}

// Clone returns a copy of buf that shares no memory with it.
func Clone(buf []float64) []float64 {
	if buf == nil {
		return nil
	}
	out := make([]float64, len(buf))
	copy(out, buf)
	return out
}
