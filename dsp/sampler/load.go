package sampler

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/cwbudde/algo-synth/dsp/note"
)

const (
	streamChunk     = 512
	resampleQuality = 4

	// The wav decoder maps 16-bit words onto value/(2^16-1); samples are
	// defined as value/2^15.
	decodedScale16 = 1<<16 - 1
	pcmScale16     = 1 << 15
)

type config struct {
	logger      *slog.Logger
	sampleRate  float64
	resample    bool
	frequencies []float64
}

// Option configures Load and Cache.
type Option func(*config)

// WithLogger sets the logger used for load failures and rate mismatches.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithSampleRate sets the synthesis rate that loaded samples will be played
// at. Files recorded at another rate are logged, and converted when
// resampling is enabled.
func WithSampleRate(sampleRate float64) Option {
	return func(c *config) {
		if sampleRate > 0 {
			c.sampleRate = sampleRate
		}
	}
}

// WithResample converts files recorded at a different rate to the synthesis
// rate while loading. It is off by default: samples are kept at their native
// rate and therefore play back pitch-shifted when the rates differ.
func WithResample(enabled bool) Option {
	return func(c *config) {
		c.resample = enabled
	}
}

// WithFrequencies replaces the canonical pitch set that Load expects files
// for.
func WithFrequencies(hz ...float64) Option {
	return func(c *config) {
		if len(hz) > 0 {
			c.frequencies = append([]float64(nil), hz...)
		}
	}
}

func applyOptions(opts []Option) config {
	c := config{
		logger:      slog.Default(),
		frequencies: note.Frequencies(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	return c
}

// Load reads one mono 16-bit PCM WAV file per canonical frequency from dir,
// named as Filename describes, and returns the samples as int16/32768, in [-1, 1).
//
// Loading is all-or-nothing: the first missing, unreadable or malformed
// file is logged and returned as a *LoadError with a nil Set.
func Load(dir string, opts ...Option) (Set, error) {
	cfg := applyOptions(opts)

	set := make(Set, len(cfg.frequencies))
	for _, hz := range cfg.frequencies {
		path := filepath.Join(dir, Filename(hz))
		samples, err := cfg.readFile(path)
		if err != nil {
			cfg.logger.Error("instrument load failed",
				slog.String("dir", dir),
				slog.String("file", filepath.Base(path)),
				slog.Any("error", err))
			return nil, &LoadError{Dir: dir, Path: path, Err: err}
		}
		set[hz] = samples
	}

	cfg.logger.Debug("instrument loaded", slog.String("dir", dir), slog.Int("notes", len(set)))
	return set, nil
}

func (c config) readFile(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stream, format, err := wav.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode wav: %w", err)
	}
	if format.NumChannels != 1 {
		return nil, fmt.Errorf("%w: %d channels, want mono", ErrMalformed, format.NumChannels)
	}
	if format.Precision != 2 {
		return nil, fmt.Errorf("%w: %d-bit samples, want 16-bit", ErrMalformed, format.Precision*8)
	}

	var src beep.Streamer = &pcm16{s: stream}
	if target := beep.SampleRate(c.sampleRate); c.sampleRate > 0 && format.SampleRate != target {
		if c.resample {
			src = beep.Resample(resampleQuality, format.SampleRate, target, src)
		} else {
			c.logger.Warn("sample rate mismatch",
				slog.String("file", filepath.Base(path)),
				slog.Int("file_rate", int(format.SampleRate)),
				slog.Int("synth_rate", int(target)))
		}
	}

	samples, err := drain(src, stream.Len())
	if err != nil {
		return nil, fmt.Errorf("read samples: %w", err)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: no frames", ErrMalformed)
	}
	return samples, nil
}

// drain reads s to the end and keeps the left channel. Mono files decode
// with both channels equal.
func drain(s beep.Streamer, hint int) ([]float64, error) {
	if hint < 0 {
		hint = 0
	}
	out := make([]float64, 0, hint)
	var buf [streamChunk][2]float64
	for {
		n, ok := s.Stream(buf[:])
		for i := 0; i < n; i++ {
			out = append(out, buf[i][0])
		}
		if !ok {
			break
		}
	}
	return out, s.Err()
}

// pcm16 recovers the 16-bit word from each decoded value and rescales it to
// word/2^15.
type pcm16 struct {
	s beep.Streamer
}

func (p *pcm16) Stream(samples [][2]float64) (int, bool) {
	n, ok := p.s.Stream(samples)
	for i := range samples[:n] {
		samples[i][0] = math.Round(samples[i][0]*decodedScale16) / pcmScale16
		samples[i][1] = math.Round(samples[i][1]*decodedScale16) / pcmScale16
	}
	return n, ok
}

func (p *pcm16) Err() error {
	return p.s.Err()
}
