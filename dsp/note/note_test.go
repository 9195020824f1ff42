package note

import (
	"errors"
	"testing"
)

func TestCanonicalOrder(t *testing.T) {
	pitches := Canonical()
	if len(pitches) != 12 {
		t.Fatalf("len = %d, want 12", len(pitches))
	}
	for i := 1; i < len(pitches); i++ {
		if pitches[i].Hz <= pitches[i-1].Hz {
			t.Fatalf("pitches not ascending at %d: %v <= %v", i, pitches[i].Hz, pitches[i-1].Hz)
		}
	}
	pitches[0].Hz = 0
	if Canonical()[0].Hz != 261.63 {
		t.Fatal("Canonical returned shared storage")
	}
	if got := Frequencies(); got[9] != 440 {
		t.Fatalf("Frequencies()[9] = %v, want 440", got[9])
	}
}

func TestFrequencyAndName(t *testing.T) {
	hz, ok := Frequency("A")
	if !ok || hz != 440 {
		t.Fatalf("Frequency(A) = %v, %v", hz, ok)
	}
	if _, ok := Frequency("H"); ok {
		t.Fatal("Frequency(H) should not exist")
	}
	name, ok := Name(261.63)
	if !ok || name != "C" {
		t.Fatalf("Name(261.63) = %q, %v", name, ok)
	}
	if _, ok := Name(261.6); ok {
		t.Fatal("Name matches exact frequencies only")
	}
}

func TestForKey(t *testing.T) {
	p, ok := ForKey('h')
	if !ok || p.Name != "A" || p.Hz != 440 {
		t.Fatalf("ForKey(h) = %+v, %v", p, ok)
	}
	if _, ok := ForKey('z'); ok {
		t.Fatal("ForKey(z) should be unmapped")
	}
}

func TestParseProgression(t *testing.T) {
	got, err := ParseProgression("  C E\tG  A# ")
	if err != nil {
		t.Fatalf("ParseProgression() error = %v", err)
	}
	want := []float64{261.63, 329.63, 392.00, 466.16}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if _, err := ParseProgression("C X G"); !errors.Is(err, ErrIllegalNote) {
		t.Fatalf("error = %v, want ErrIllegalNote", err)
	}
	empty, err := ParseProgression("")
	if err != nil || len(empty) != 0 {
		t.Fatalf("ParseProgression(\"\") = %v, %v", empty, err)
	}
}
