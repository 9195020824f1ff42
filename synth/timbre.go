package synth

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-synth/dsp/signal"
)

// Kind selects how a tone is produced.
type Kind int

// The zero Kind is not a valid timbre; it and any value past KindSampled
// render as silence.
const (
	KindSine Kind = iota + 1
	KindSquare
	KindSineSquare
	KindFM
	KindSampled
)

func (k Kind) String() string {
	switch k {
	case KindSine:
		return "sine"
	case KindSquare:
		return "square"
	case KindSineSquare:
		return "sine-square"
	case KindFM:
		return "fm"
	case KindSampled:
		return "sampled"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Oscillator reports whether k is rendered by the oscillator bank.
func (k Kind) Oscillator() bool {
	return k >= KindSine && k <= KindFM
}

// waveforms maps the memoryless oscillator kinds onto their waveform.
var waveforms = map[Kind]signal.Waveform{
	KindSine:       signal.WaveSine,
	KindSquare:     signal.WaveSquare,
	KindSineSquare: signal.WaveSineSquare,
}

// Timbre is a Kind plus, for sampled timbres, the instrument id whose
// sample set is used.
type Timbre struct {
	Kind       Kind
	Instrument string
}

// Oscillator timbres.
var (
	Sine       = Timbre{Kind: KindSine}
	Square     = Timbre{Kind: KindSquare}
	SineSquare = Timbre{Kind: KindSineSquare}
	FM         = Timbre{Kind: KindFM}
)

// Sampled returns the sampled timbre for an instrument id such as "piano".
func Sampled(instrument string) Timbre {
	return Timbre{Kind: KindSampled, Instrument: instrument}
}

func (t Timbre) String() string {
	if t.Instrument != "" {
		return t.Instrument
	}
	return t.Kind.String()
}

// Instruments lists the sampled timbres the command line front end knows.
func Instruments() []string {
	return []string{"piano", "flute", "trumpet"}
}

// Names lists every timbre name ParseTimbre accepts.
func Names() []string {
	return append([]string{"sine", "square", "sine-square", "fm"}, Instruments()...)
}

// ParseTimbre maps a timbre name to a Timbre. Names are case-insensitive.
// Unrecognized names are returned with a zero Kind and ok == false; the
// name is kept in Instrument so it can be reported.
func ParseTimbre(name string) (Timbre, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	switch key {
	case "sine":
		return Sine, true
	case "square":
		return Square, true
	case "sine-square":
		return SineSquare, true
	case "fm":
		return FM, true
	}
	for _, inst := range Instruments() {
		if key == inst {
			return Sampled(inst), true
		}
	}
	return Timbre{Instrument: name}, false
}
