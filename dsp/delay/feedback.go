package delay

import (
	"fmt"
	"math"
)

// Params configures the feedback delay.
type Params struct {
	// Time is the delay in seconds.
	Time float64
	// Feedback is the gain applied to each sample as it is fed forward.
	// Values below 1 are recommended.
	Feedback float64
	// Mix is the wet proportion in [0, 1].
	Mix float64
}

// Default returns the bypass setting: zero time, feedback and mix.
func Default() Params {
	return Params{}
}

// Samples returns floor(Time·sampleRate), or 0 for negative or invalid times.
// The result is capped at math.MaxInt32.
func (p Params) Samples(sampleRate float64) int {
	d := p.Time * sampleRate
	if d <= 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return 0
	}
	if d >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(d)
}

// Validate checks the parameters against their documented ranges.
func (p Params) Validate() error {
	if p.Time < 0 || math.IsNaN(p.Time) || math.IsInf(p.Time, 0) {
		return fmt.Errorf("delay time must be >= 0: %f", p.Time)
	}
	if p.Feedback < 0 || p.Feedback > 1 || math.IsNaN(p.Feedback) {
		return fmt.Errorf("delay feedback must be in [0, 1]: %f", p.Feedback)
	}
	if p.Mix < 0 || p.Mix > 1 || math.IsNaN(p.Mix) {
		return fmt.Errorf("delay mix must be in [0, 1]: %f", p.Mix)
	}
	return nil
}

// Apply runs buf through a feedback delay and returns a new slice of the
// same length.
//
// The working buffer w starts as a copy of buf. One left-to-right pass adds
// w[i]·Feedback into w[i+d], so a sample that has
// already received feedback is fed forward again. The result is
// w[:n]·Mix + buf·(1-Mix). With d = 0 every sample accumulates into itself
// and is scaled by 1+Feedback.
func Apply(buf []float64, p Params, sampleRate float64) []float64 {
	n := len(buf)
	d := p.Samples(sampleRate)

	// Feedback landing at or past n never reaches the output.
	work := make([]float64, n)
	copy(work, buf)
	for i := 0; i+d < n; i++ {
		work[i+d] += work[i] * p.Feedback
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = work[i]*p.Mix + buf[i]*(1-p.Mix)
	}
	return out
}
