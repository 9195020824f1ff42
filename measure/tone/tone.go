package tone

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-synth/dsp/core"
)

const (
	defaultLowerHz = 20.0
	logFloor       = 1e-300
)

// ErrEmpty is returned when there is nothing to analyze.
var ErrEmpty = errors.New("empty buffer")

// Report summarizes a rendered buffer.
type Report struct {
	Samples       int
	Duration      float64 // seconds
	Peak          float64 // max |x|
	PeakDB        float64 // dBFS, -Inf for silence
	RMS           float64
	RMSDB         float64
	CrestFactor   float64 // peak / RMS, 0 for silence
	ZeroCrossings int
	FundamentalHz float64 // strongest spectral peak above 20 Hz, 0 for silence
}

// Analyze computes level statistics and a fundamental estimate for buf.
func Analyze(buf []float64, sampleRate float64) (Report, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) {
		return Report{}, fmt.Errorf("sample rate must be > 0: %f", sampleRate)
	}
	if len(buf) == 0 {
		return Report{}, ErrEmpty
	}

	r := Report{
		Samples:  len(buf),
		Duration: float64(len(buf)) / sampleRate,
	}

	var sumSq, mean float64
	for i, x := range buf {
		sumSq += x * x
		mean += x
		if a := math.Abs(x); a > r.Peak {
			r.Peak = a
		}
		if i > 0 && buf[i-1]*x < 0 {
			r.ZeroCrossings++
		}
	}
	mean /= float64(len(buf))
	r.RMS = math.Sqrt(sumSq / float64(len(buf)))
	r.PeakDB = core.LinearToDB(r.Peak)
	r.RMSDB = core.LinearToDB(r.RMS)
	if r.RMS > 0 {
		r.CrestFactor = r.Peak / r.RMS
	}

	if r.Peak == 0 {
		return r, nil
	}

	hz, err := fundamental(buf, mean, sampleRate)
	if err != nil {
		return r, err
	}
	r.FundamentalHz = hz
	return r, nil
}

// fundamental returns the frequency of the largest magnitude bin of the
// Hann-windowed, DC-removed spectrum, refined by parabolic interpolation on
// log magnitudes.
func fundamental(buf []float64, mean, sampleRate float64) (float64, error) {
	n := len(buf)
	fftSize := nextPowerOf2(n)
	if fftSize < 2 {
		return 0, nil
	}

	frame := make([]float64, n)
	for i, x := range buf {
		frame[i] = x - mean
	}
	vecmath.MulBlockInPlace(frame, hann(n))

	in := make([]complex128, fftSize)
	for i, x := range frame {
		in[i] = complex(x, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return 0, fmt.Errorf("fft plan: %w", err)
	}
	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return 0, fmt.Errorf("fft: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for i := 0; i < bins; i++ {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}
	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	binHz := sampleRate / float64(fftSize)
	lower := int(math.Ceil(defaultLowerHz / binHz))
	if lower < 1 {
		lower = 1
	}
	if lower >= bins {
		return 0, nil
	}

	peak := lower
	for k := lower + 1; k < bins; k++ {
		if mag[k] > mag[peak] {
			peak = k
		}
	}
	if mag[peak] == 0 {
		return 0, nil
	}

	offset := 0.0
	if peak > 0 && peak < bins-1 {
		alpha := math.Log(mag[peak-1] + logFloor)
		beta := math.Log(mag[peak] + logFloor)
		gamma := math.Log(mag[peak+1] + logFloor)
		if den := alpha - 2*beta + gamma; den != 0 {
			offset = 0.5 * (alpha - gamma) / den
		}
	}

	return (float64(peak) + offset) * binHz, nil
}

func hann(n int) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
	}
	return w
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
