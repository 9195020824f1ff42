package delay

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-synth/internal/testutil"
)

func TestApplyZeroFeedbackIsDryWetBlend(t *testing.T) {
	in := testutil.DeterministicSine(440, 44100, 0.9, 2048)
	for _, mix := range []float64{0, 0.25, 0.5, 1} {
		out := Apply(in, Params{Time: 0.01, Feedback: 0, Mix: mix}, 44100)
		want := make([]float64, len(in))
		for i, v := range in {
			want[i] = v*mix + v*(1-mix)
		}
		testutil.RequireSliceNearlyEqual(t, out, want, 0)
	}
}

func TestApplyFeedbackLoop(t *testing.T) {
	// 2 samples of delay at rate 10, full wet: the impulse recurs every
	// 2 samples with gain feedback^k.
	in := testutil.Impulse(8, 0)
	out := Apply(in, Params{Time: 0.2, Feedback: 0.5, Mix: 1}, 10)
	want := []float64{1, 0, 0.5, 0, 0.25, 0, 0.125, 0}
	testutil.RequireSliceNearlyEqual(t, out, want, 1e-12)
}

func TestApplyMixBlend(t *testing.T) {
	in := testutil.Impulse(6, 0)
	out := Apply(in, Params{Time: 0.3, Feedback: 0.5, Mix: 0.5}, 10)
	want := []float64{1, 0, 0, 0.25, 0, 0}
	testutil.RequireSliceNearlyEqual(t, out, want, 1e-12)
}

func TestApplyZeroDelayAccumulatesInPlace(t *testing.T) {
	in := []float64{0.5, -0.25, 1}
	out := Apply(in, Params{Time: 0, Feedback: 0.5, Mix: 1}, 44100)
	want := []float64{0.75, -0.375, 1.5}
	testutil.RequireSliceNearlyEqual(t, out, want, 1e-12)
}

func TestApplyLengthAndInputUntouched(t *testing.T) {
	in := testutil.DC(0.5, 100)
	for _, p := range []Params{
		Default(),
		{Time: 10, Feedback: 0.9, Mix: 0.5},
		{Time: -1, Feedback: 0.3, Mix: 0.3},
		{Time: math.NaN(), Feedback: 0.3, Mix: 0.3},
	} {
		out := Apply(in, p, 44100)
		if len(out) != len(in) {
			t.Fatalf("Apply(%+v) len = %d, want %d", p, len(out), len(in))
		}
		testutil.RequireFinite(t, out)
	}
	for i, v := range in {
		if v != 0.5 {
			t.Fatalf("input mutated at %d: %v", i, v)
		}
	}
	if got := Apply(nil, Params{Time: 0.1, Feedback: 0.5, Mix: 0.5}, 44100); len(got) != 0 {
		t.Fatalf("Apply(nil) len = %d, want 0", len(got))
	}
}

func TestSamples(t *testing.T) {
	tests := []struct {
		time float64
		want int
	}{
		{time: 0.25, want: 11025},
		{time: 0, want: 0},
		{time: -0.5, want: 0},
		{time: 1.0 / 44100 * 0.5, want: 0},
		{time: 1e15, want: math.MaxInt32},
	}
	for _, tt := range tests {
		if got := (Params{Time: tt.time}).Samples(44100); got != tt.want {
			t.Fatalf("Samples(%v) = %d, want %d", tt.time, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	valid := []Params{Default(), {Time: 0.3, Feedback: 0.4, Mix: 0.5}, {Time: 1, Feedback: 1, Mix: 1}}
	for _, p := range valid {
		if err := p.Validate(); err != nil {
			t.Fatalf("Validate(%+v) error = %v", p, err)
		}
	}
	invalid := []Params{
		{Time: -0.1},
		{Feedback: -0.1},
		{Feedback: 1.5},
		{Mix: 2},
		{Time: math.Inf(1)},
	}
	for _, p := range invalid {
		if err := p.Validate(); err == nil {
			t.Fatalf("Validate(%+v) expected error", p)
		}
	}
}

func TestApplyHugeDelayTime(t *testing.T) {
	in := testutil.DC(0.5, 64)
	out := Apply(in, Params{Time: 1e15, Feedback: 0.9, Mix: 0.5}, 44100)
	testutil.RequireSliceNearlyEqual(t, out, in, 1e-15)
}
