package envelope

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

const (
	// DefaultAttack is the attack time in seconds used by pre-generation.
	DefaultAttack = 0.01
	// DefaultDecay is the decay time in seconds used by pre-generation.
	DefaultDecay = 0.1
	// DefaultSustain is the sustain level in [0, 1] used by pre-generation.
	DefaultSustain = 0.7
	// DefaultRelease is the release time in seconds used by pre-generation.
	DefaultRelease = 0.2
)

// ADSR holds attack, decay and release times in seconds and a sustain level
// in [0, 1].
type ADSR struct {
	Attack  float64
	Decay   float64
	Sustain float64
	Release float64
}

// Default returns 10 ms attack, 100 ms decay, 0.7 sustain and 200 ms release.
func Default() ADSR {
	return ADSR{
		Attack:  DefaultAttack,
		Decay:   DefaultDecay,
		Sustain: DefaultSustain,
		Release: DefaultRelease,
	}
}

// Segments holds the length in samples of each envelope phase.
type Segments struct {
	Attack  int
	Decay   int
	Sustain int
	Release int
}

// Total returns the summed length of all phases.
func (s Segments) Total() int {
	return s.Attack + s.Decay + s.Sustain + s.Release
}

// Layout fits the phases of a into n samples at sampleRate.
//
// Attack, decay and release are clamped to at least one sample period and
// floored to whole samples. When they overflow n, release shrinks first,
// then decay, then attack takes the whole buffer.
func Layout(a ADSR, n int, sampleRate float64) Segments {
	if n < 0 {
		n = 0
	}
	period := 1 / sampleRate
	attack := atLeast(a.Attack, period)
	decay := atLeast(a.Decay, period)
	release := atLeast(a.Release, period)

	s := Segments{
		Attack:  int(attack * sampleRate),
		Decay:   int(decay * sampleRate),
		Release: int(release * sampleRate),
	}
	s.Sustain = n - s.Attack - s.Decay - s.Release
	if s.Sustain < 0 {
		s.Sustain = 0
		s.Release = n - s.Attack - s.Decay
		if s.Release < 0 {
			s.Decay = n - s.Attack
			if s.Decay < 0 {
				s.Attack = n
				s.Decay = 0
			}
			s.Release = 0
		}
	}
	return s
}

// Generate builds an n-sample ADSR curve: 0→1 over attack, 1→sustain over
// decay, constant sustain, then sustain→0 over release. Ramps include both
// endpoints. A curve shorter than n is padded with zeros.
func Generate(a ADSR, n int, sampleRate float64) []float64 {
	if n <= 0 || sampleRate <= 0 {
		return []float64{}
	}
	seg := Layout(a, n, sampleRate)

	env := make([]float64, 0, seg.Total())
	env = appendRamp(env, 0, 1, seg.Attack)
	env = appendRamp(env, 1, a.Sustain, seg.Decay)
	for i := 0; i < seg.Sustain; i++ {
		env = append(env, a.Sustain)
	}
	env = appendRamp(env, a.Sustain, 0, seg.Release)

	if len(env) >= n {
		return env[:n]
	}
	out := make([]float64, n)
	copy(out, env)
	return out
}

// Apply multiplies buf by its ADSR curve and returns a new slice of the same
// length. It never fails: degenerate parameters degrade as in Layout.
func Apply(buf []float64, a ADSR, sampleRate float64) []float64 {
	out := make([]float64, len(buf))
	if len(buf) == 0 {
		return out
	}
	if sampleRate <= 0 {
		return out
	}
	env := Generate(a, len(buf), sampleRate)
	vecmath.MulBlock(out, buf, env)
	return out
}

// atLeast clamps v to min; NaN counts as below min.
func atLeast(v, min float64) float64 {
	if math.IsNaN(v) || v < min {
		return min
	}
	if math.IsInf(v, 1) {
		return math.MaxInt32
	}
	return v
}

// appendRamp appends n evenly spaced values from start to stop inclusive.
// A single-sample ramp holds start.
func appendRamp(dst []float64, start, stop float64, n int) []float64 {
	switch {
	case n <= 0:
		return dst
	case n == 1:
		return append(dst, start)
	}
	step := (stop - start) / float64(n-1)
	for i := 0; i < n-1; i++ {
		dst = append(dst, start+float64(i)*step)
	}
	return append(dst, stop)
}
