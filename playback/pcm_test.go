package playback

import (
	"bytes"
	"errors"
	"testing"
)

func TestQuantize(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want []int16
	}{
		{name: "full scale", in: []float64{1, -1, 0.5}, want: []int16{32767, -32767, 16383}},
		{name: "quiet input is boosted", in: []float64{0.25, -0.125}, want: []int16{32767, -16383}},
		{name: "loud input is reduced", in: []float64{2, 1, -2}, want: []int16{32767, 16383, -32767}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Quantize(tt.in)
			if err != nil {
				t.Fatalf("Quantize: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestQuantizeSilent(t *testing.T) {
	for _, in := range [][]float64{nil, {}, {0, 0, 0}} {
		if _, err := Quantize(in); !errors.Is(err, ErrSilent) {
			t.Fatalf("Quantize(%v) err = %v, want ErrSilent", in, err)
		}
	}
}

func TestQuantizeDoesNotMutate(t *testing.T) {
	in := []float64{0.5, -0.25}
	if _, err := Quantize(in); err != nil {
		t.Fatal(err)
	}
	if in[0] != 0.5 || in[1] != -0.25 {
		t.Fatalf("input mutated: %v", in)
	}
}

func TestPCM(t *testing.T) {
	got := PCM([]int16{1, -1, 32767, -32768})
	want := []byte{0x01, 0x00, 0xff, 0xff, 0xff, 0x7f, 0x00, 0x80}
	if !bytes.Equal(got, want) {
		t.Fatalf("PCM = % x, want % x", got, want)
	}
	if len(PCM(nil)) != 0 {
		t.Fatal("PCM(nil) not empty")
	}
}
