package sampler

import (
	"fmt"
	"sort"
)

// Set maps canonical note frequencies to their recorded sample buffers.
// A Set is read-only once loaded and may be shared between goroutines.
type Set map[float64][]float64

// Lookup returns the sample recorded for exactly hz. There is no
// nearest-neighbour fallback.
func (s Set) Lookup(hz float64) ([]float64, error) {
	sample, ok := s[hz]
	if !ok {
		return nil, fmt.Errorf("%w: %.2f Hz", ErrMissingSample, hz)
	}
	return sample, nil
}

// Frequencies returns the keys of s in ascending order.
func (s Set) Frequencies() []float64 {
	out := make([]float64, 0, len(s))
	for hz := range s {
		out = append(out, hz)
	}
	sort.Float64s(out)
	return out
}

// Filename returns the sample file name for a frequency: the frequency
// rounded to two decimals with a .wav suffix, e.g. "261.63.wav".
func Filename(hz float64) string {
	return fmt.Sprintf("%.2f.wav", hz)
}

// FitToDuration returns exactly n samples taken from sample. Shorter samples
// are repeated end to end and the last repetition is cut; longer ones are
// truncated. Loop seams are not crossfaded.
func FitToDuration(sample []float64, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	out := make([]float64, n)
	if len(sample) == 0 {
		return out
	}
	for filled := 0; filled < n; {
		filled += copy(out[filled:], sample)
	}
	return out
}
