package signal

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-synth/dsp/core"
)

const (
	// DefaultModulatorHz is the FM modulator frequency used when none is given.
	DefaultModulatorHz = 220.0
	// DefaultModulationIndex is the FM modulation index used when none is given.
	DefaultModulationIndex = 1.0
)

// Waveform selects one of the memoryless oscillator shapes.
type Waveform int

const (
	// WaveSine is sin(2πft).
	WaveSine Waveform = iota
	// WaveSquare is sign(sin(2πft)), with sign(0) = 0.
	WaveSquare
	// WaveSineSquare is sin(2πft)·(sign(sin(2πft))+1): a sine gated by a
	// unipolar square. Its range is [0, 2] during positive half-cycles.
	WaveSineSquare
)

func (w Waveform) String() string {
	switch w {
	case WaveSine:
		return "sine"
	case WaveSquare:
		return "square"
	case WaveSineSquare:
		return "sine-square"
	default:
		return fmt.Sprintf("waveform(%d)", int(w))
	}
}

// FMParams configures two-operator frequency modulation.
type FMParams struct {
	ModulatorHz float64
	Index       float64
}

// DefaultFMParams returns a 220 Hz modulator at index 1.
func DefaultFMParams() FMParams {
	return FMParams{ModulatorHz: DefaultModulatorHz, Index: DefaultModulationIndex}
}

// Generator renders oscillator waveforms at a shared sample rate. Sample i
// is evaluated at t = i/rate, so every call is deterministic and stateless.
type Generator struct {
	cfg core.ProcessorConfig
}

// NewGenerator creates a configured oscillator bank.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return &Generator{cfg: core.ApplyProcessorOptions(opts...)}
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Generate renders waveform w at freqHz for the given number of samples.
func (g *Generator) Generate(w Waveform, freqHz float64, samples int) ([]float64, error) {
	switch w {
	case WaveSine:
		return g.Sine(freqHz, samples)
	case WaveSquare:
		return g.Square(freqHz, samples)
	case WaveSineSquare:
		return g.SineSquare(freqHz, samples)
	default:
		return nil, fmt.Errorf("unknown waveform: %s", w)
	}
}

// Sine generates sin(2πft).
func (g *Generator) Sine(freqHz float64, samples int) ([]float64, error) {
	return g.render("sine", freqHz, samples, math.Sin)
}

// Square generates sign(sin(2πft)).
func (g *Generator) Square(freqHz float64, samples int) ([]float64, error) {
	return g.render("square", freqHz, samples, func(phase float64) float64 {
		return core.Sign(math.Sin(phase))
	})
}

// SineSquare generates sin(2πft)·(sign(sin(2πft))+1). The output is not
// clipped; peak scaling is left to the playback stage.
func (g *Generator) SineSquare(freqHz float64, samples int) ([]float64, error) {
	return g.render("sine-square", freqHz, samples, func(phase float64) float64 {
		s := math.Sin(phase)
		return s * (core.Sign(s) + 1)
	})
}

// FM generates sin(2πft + index·sin(2πf_m·t)).
func (g *Generator) FM(freqHz float64, p FMParams, samples int) ([]float64, error) {
	if p.ModulatorHz < 0 || math.IsNaN(p.ModulatorHz) || math.IsInf(p.ModulatorHz, 0) {
		return nil, fmt.Errorf("fm modulator frequency must be >= 0: %f", p.ModulatorHz)
	}
	if p.Index < 0 || math.IsNaN(p.Index) || math.IsInf(p.Index, 0) {
		return nil, fmt.Errorf("fm modulation index must be >= 0: %f", p.Index)
	}
	if err := g.validate("fm", freqHz, samples); err != nil {
		return nil, err
	}
	out := make([]float64, samples)
	for i := range out {
		t := float64(i) / g.cfg.SampleRate
		modulator := math.Sin(2 * math.Pi * p.ModulatorHz * t)
		out[i] = math.Sin(2*math.Pi*freqHz*t + p.Index*modulator)
	}
	return out, nil
}

// Silence returns an all-zero buffer of the given length.
func (g *Generator) Silence(samples int) []float64 {
	if samples < 0 {
		samples = 0
	}
	return make([]float64, samples)
}

func (g *Generator) render(name string, freqHz float64, samples int, shape func(phase float64) float64) ([]float64, error) {
	if err := g.validate(name, freqHz, samples); err != nil {
		return nil, err
	}
	out := make([]float64, samples)
	for i := range out {
		t := float64(i) / g.cfg.SampleRate
		out[i] = shape(2 * math.Pi * freqHz * t)
	}
	return out, nil
}

func (g *Generator) validate(name string, freqHz float64, samples int) error {
	if samples <= 0 {
		return fmt.Errorf("%s samples must be > 0: %d", name, samples)
	}
	if g.cfg.SampleRate <= 0 {
		return fmt.Errorf("%s sample rate must be > 0: %f", name, g.cfg.SampleRate)
	}
	if freqHz <= 0 || math.IsNaN(freqHz) || math.IsInf(freqHz, 0) {
		return fmt.Errorf("%s frequency must be > 0: %f", name, freqHz)
	}
	return nil
}

// Normalize scales data to target peak amplitude and returns a new slice.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("normalize input must not be empty")
	}

	maxAbs := core.PeakAbs(data)

	out := make([]float64, len(data))
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	scale := targetPeak / maxAbs
	for i, v := range data {
		out[i] = v * scale
	}
	return out, nil
}
