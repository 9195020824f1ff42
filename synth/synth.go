package synth

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/delay"
	"github.com/cwbudde/algo-synth/dsp/envelope"
	"github.com/cwbudde/algo-synth/dsp/sampler"
	"github.com/cwbudde/algo-synth/dsp/signal"
)

var (
	// ErrInvalidFrequency is returned for frequencies that are not finite
	// and positive.
	ErrInvalidFrequency = errors.New("frequency must be > 0")
	// ErrUnsupportedTimbre is returned by Pregenerate for timbres that are
	// not rendered by the oscillator bank.
	ErrUnsupportedTimbre = errors.New("unsupported timbre")
)

// Request describes one tone. Nil ADSR and Delay skip those stages; a nil FM
// uses signal.DefaultFMParams. Samples is only read for sampled timbres.
type Request struct {
	Frequency float64
	Timbre    Timbre
	// Duration in seconds; 0 selects the synthesizer default.
	Duration float64
	ADSR     *envelope.ADSR
	Delay    *delay.Params
	FM       *signal.FMParams
	Samples  sampler.Set
}

// Synthesizer renders requests into sample buffers. It holds no per-call
// state and is safe for concurrent use.
type Synthesizer struct {
	cfg     core.ProcessorConfig
	gen     *signal.Generator
	logger  *slog.Logger
	workers int
}

// Option configures a Synthesizer.
type Option func(*settings)

type settings struct {
	processor []core.ProcessorOption
	logger    *slog.Logger
	workers   int
}

// WithProcessor sets sample rate and default duration.
func WithProcessor(opts ...core.ProcessorOption) Option {
	return func(s *settings) {
		s.processor = append(s.processor, opts...)
	}
}

// WithLogger sets the logger for render details and warnings.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithWorkers bounds the number of tones Pregenerate renders at once.
func WithWorkers(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.workers = n
		}
	}
}

// New returns a Synthesizer at 44.1 kHz with 0.5 s tones unless configured
// otherwise.
func New(opts ...Option) *Synthesizer {
	s := settings{logger: slog.Default(), workers: defaultWorkers}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	cfg := core.ApplyProcessorOptions(s.processor...)
	return &Synthesizer{
		cfg:     cfg,
		gen:     signal.NewGenerator(core.WithSampleRate(cfg.SampleRate), core.WithDuration(cfg.Duration)),
		logger:  s.logger,
		workers: s.workers,
	}
}

// Config returns the sample rate and default duration.
func (s *Synthesizer) Config() core.ProcessorConfig {
	return s.cfg
}

// Synthesize renders req. The result has round(duration·rate) samples.
//
// Sampled timbres return the looped or truncated instrument sample with no
// envelope or delay. Oscillator timbres are shaped by the ADSR envelope and
// then the delay when those are set. An unrecognized kind logs a warning and
// yields silence of the requested length.
func (s *Synthesizer) Synthesize(req Request) ([]float64, error) {
	if err := checkFrequency(req.Frequency); err != nil {
		return nil, err
	}
	seconds := req.Duration
	if seconds == 0 {
		seconds = s.cfg.Duration
	}
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return nil, fmt.Errorf("duration must be >= 0: %f", req.Duration)
	}
	n := s.cfg.Samples(seconds)

	s.logger.Debug("synthesize",
		slog.Float64("freq", req.Frequency),
		slog.String("timbre", req.Timbre.String()),
		slog.Int("samples", n))

	if req.Timbre.Kind == KindSampled {
		sample, err := req.Samples.Lookup(req.Frequency)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", req.Timbre, err)
		}
		return sampler.FitToDuration(sample, n), nil
	}

	if !req.Timbre.Kind.Oscillator() {
		s.logger.Warn("timbre not recognized, rendering silence",
			slog.String("timbre", req.Timbre.String()))
		return s.gen.Silence(n), nil
	}

	fm := signal.DefaultFMParams()
	if req.FM != nil {
		fm = *req.FM
	}
	buf, err := s.oscillator(req.Timbre.Kind, req.Frequency, fm, n)
	if err != nil {
		return nil, err
	}

	if req.ADSR != nil {
		buf = envelope.Apply(buf, *req.ADSR, s.cfg.SampleRate)
	}
	if req.Delay != nil {
		buf = delay.Apply(buf, *req.Delay, s.cfg.SampleRate)
	}
	return buf, nil
}

func (s *Synthesizer) oscillator(kind Kind, freq float64, fm signal.FMParams, n int) ([]float64, error) {
	if n == 0 {
		return []float64{}, nil
	}
	if kind == KindFM {
		return s.gen.FM(freq, fm, n)
	}
	w, ok := waveforms[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedTimbre, kind)
	}
	return s.gen.Generate(w, freq, n)
}

func checkFrequency(hz float64) error {
	if hz <= 0 || math.IsNaN(hz) || math.IsInf(hz, 0) {
		return fmt.Errorf("%w: %f", ErrInvalidFrequency, hz)
	}
	return nil
}
