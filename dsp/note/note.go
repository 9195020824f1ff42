package note

import (
	"errors"
	"fmt"
	"strings"
)

// ErrIllegalNote is returned when a progression names an unknown pitch class.
var ErrIllegalNote = errors.New("illegal note")

// Pitch pairs a pitch-class name with its canonical frequency.
type Pitch struct {
	Name string
	Hz   float64
}

// canonical lists the twelve pitch classes of the octave starting at middle C,
// rounded to two decimals as instrument sample files are named.
var canonical = [...]Pitch{
	{Name: "C", Hz: 261.63},
	{Name: "C#", Hz: 277.18},
	{Name: "D", Hz: 293.66},
	{Name: "D#", Hz: 311.13},
	{Name: "E", Hz: 329.63},
	{Name: "F", Hz: 349.23},
	{Name: "F#", Hz: 369.99},
	{Name: "G", Hz: 392.00},
	{Name: "G#", Hz: 415.30},
	{Name: "A", Hz: 440.00},
	{Name: "A#", Hz: 466.16},
	{Name: "B", Hz: 493.88},
}

// keyboard maps a row of computer keys onto the octave, piano style:
// the home row carries the white keys and the row above the black keys.
var keyboard = map[rune]string{
	'a': "C", 'w': "C#", 's': "D", 'e': "D#", 'd': "E", 'f': "F",
	't': "F#", 'g': "G", 'y': "G#", 'h': "A", 'u': "A#", 'j': "B",
}

// Canonical returns the twelve pitch classes in ascending order.
func Canonical() []Pitch {
	out := make([]Pitch, len(canonical))
	copy(out, canonical[:])
	return out
}

// Frequencies returns the canonical frequencies in ascending order.
func Frequencies() []float64 {
	out := make([]float64, len(canonical))
	for i, p := range canonical {
		out[i] = p.Hz
	}
	return out
}

// Frequency returns the canonical frequency for a pitch-class name such as
// "C" or "F#".
func Frequency(name string) (float64, bool) {
	for _, p := range canonical {
		if p.Name == name {
			return p.Hz, true
		}
	}
	return 0, false
}

// Name returns the pitch-class name for an exact canonical frequency.
func Name(hz float64) (string, bool) {
	for _, p := range canonical {
		if p.Hz == hz {
			return p.Name, true
		}
	}
	return "", false
}

// ForKey returns the pitch bound to a computer-keyboard key.
func ForKey(key rune) (Pitch, bool) {
	name, ok := keyboard[key]
	if !ok {
		return Pitch{}, false
	}
	hz, _ := Frequency(name)
	return Pitch{Name: name, Hz: hz}, true
}

// ParseProgression turns a whitespace-separated list of pitch-class names
// into frequencies. The whole progression is rejected if any name is
// unknown, so nothing is played from a partly valid input.
func ParseProgression(s string) ([]float64, error) {
	fields := strings.Fields(s)
	out := make([]float64, 0, len(fields))
	for _, name := range fields {
		hz, ok := Frequency(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrIllegalNote, name)
		}
		out = append(out, hz)
	}
	return out, nil
}
