package signal

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/internal/testutil"
)

func TestOscillatorLength(t *testing.T) {
	g := NewGenerator()
	n := g.Config().Samples(0.5)
	for _, w := range []Waveform{WaveSine, WaveSquare, WaveSineSquare} {
		t.Run(w.String(), func(t *testing.T) {
			out, err := g.Generate(w, 440, n)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			if len(out) != 22050 {
				t.Fatalf("len = %d, want 22050", len(out))
			}
		})
	}

	fm, err := g.FM(440, DefaultFMParams(), n)
	if err != nil {
		t.Fatalf("FM() error = %v", err)
	}
	if len(fm) != 22050 {
		t.Fatalf("fm len = %d, want 22050", len(fm))
	}
}

func TestSineRange(t *testing.T) {
	g := NewGenerator()
	for _, freq := range []float64{27.5, 261.63, 440, 4186, 20000} {
		out, err := g.Sine(freq, 4410)
		if err != nil {
			t.Fatalf("Sine(%v) error = %v", freq, err)
		}
		for i, v := range out {
			if v < -1 || v > 1 {
				t.Fatalf("Sine(%v)[%d] = %v outside [-1, 1]", freq, i, v)
			}
		}
	}
}

func TestSineMatchesReference(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(44100))
	out, err := g.Sine(440, 1024)
	if err != nil {
		t.Fatalf("Sine() error = %v", err)
	}
	want := testutil.DeterministicSine(440, 44100, 1, 1024)
	testutil.RequireSliceNearlyEqual(t, out, want, 1e-9)
}

func TestSquareValues(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(8000))
	out, err := g.Square(100, 800)
	if err != nil {
		t.Fatalf("Square() error = %v", err)
	}
	if out[0] != 0 {
		t.Fatalf("out[0] = %v, want 0 (sign of zero)", out[0])
	}
	pos, neg := 0, 0
	for i, v := range out {
		switch v {
		case 1:
			pos++
		case -1:
			neg++
		case 0:
		default:
			t.Fatalf("out[%d] = %v, want -1, 0 or 1", i, v)
		}
	}
	if math.Abs(float64(pos-neg)) > 20 {
		t.Fatalf("unbalanced square: %d positive, %d negative", pos, neg)
	}
}

func TestSineSquareGate(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(8000))
	out, err := g.SineSquare(100, 800)
	if err != nil {
		t.Fatalf("SineSquare() error = %v", err)
	}
	sine, err := g.Sine(100, 800)
	if err != nil {
		t.Fatalf("Sine() error = %v", err)
	}
	peak := 0.0
	for i := range out {
		switch {
		case sine[i] > 0:
			if out[i] != 2*sine[i] {
				t.Fatalf("out[%d] = %v, want %v", i, out[i], 2*sine[i])
			}
		case sine[i] < 0:
			if out[i] != 0 {
				t.Fatalf("out[%d] = %v, want 0 during negative half-cycle", i, out[i])
			}
		}
		peak = math.Max(peak, out[i])
	}
	if peak <= 1.9 {
		t.Fatalf("peak = %v, want close to 2 (range is not clipped)", peak)
	}
}

func TestFMZeroIndexIsSine(t *testing.T) {
	g := NewGenerator()
	fm, err := g.FM(330, FMParams{ModulatorHz: 220, Index: 0}, 512)
	if err != nil {
		t.Fatalf("FM() error = %v", err)
	}
	sine, err := g.Sine(330, 512)
	if err != nil {
		t.Fatalf("Sine() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, fm, sine, 0)
}

func TestFMModulates(t *testing.T) {
	g := NewGenerator()
	fm, err := g.FM(440, DefaultFMParams(), 512)
	if err != nil {
		t.Fatalf("FM() error = %v", err)
	}
	sine, err := g.Sine(440, 512)
	if err != nil {
		t.Fatalf("Sine() error = %v", err)
	}
	diff, err := testutil.MaxAbsDiff(fm, sine)
	if err != nil {
		t.Fatalf("MaxAbsDiff() error = %v", err)
	}
	if diff < 0.1 {
		t.Fatalf("max diff = %v, want audible modulation", diff)
	}
	testutil.RequireFinite(t, fm)
}

func TestGeneratorErrors(t *testing.T) {
	g := NewGenerator()
	tests := []struct {
		name string
		fn   func() ([]float64, error)
	}{
		{name: "zero samples", fn: func() ([]float64, error) { return g.Sine(440, 0) }},
		{name: "zero frequency", fn: func() ([]float64, error) { return g.Square(0, 16) }},
		{name: "negative frequency", fn: func() ([]float64, error) { return g.SineSquare(-1, 16) }},
		{name: "nan frequency", fn: func() ([]float64, error) { return g.Sine(math.NaN(), 16) }},
		{name: "negative index", fn: func() ([]float64, error) { return g.FM(440, FMParams{ModulatorHz: 220, Index: -1}, 16) }},
		{name: "negative modulator", fn: func() ([]float64, error) { return g.FM(440, FMParams{ModulatorHz: -5, Index: 1}, 16) }},
		{name: "unknown waveform", fn: func() ([]float64, error) { return g.Generate(Waveform(42), 440, 16) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.fn(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestSilence(t *testing.T) {
	g := NewGenerator()
	out := g.Silence(32)
	if len(out) != 32 || !core.IsSilent(out) {
		t.Fatalf("Silence(32) = %v", out)
	}
	if len(g.Silence(-3)) != 0 {
		t.Fatal("Silence(-3) should be empty")
	}
}

func TestNormalize(t *testing.T) {
	out, err := Normalize([]float64{-0.5, 1.0, -0.25}, 0.5)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if out[1] != 0.5 {
		t.Fatalf("peak = %v, want 0.5", out[1])
	}
	silent, err := Normalize(make([]float64, 4), 1)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if !core.IsSilent(silent) {
		t.Fatalf("Normalize(zeros) = %v, want zeros", silent)
	}
	if _, err := Normalize(nil, 1); err == nil {
		t.Fatal("expected error for empty input")
	}
}
