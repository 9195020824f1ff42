package core

import (
	"fmt"
	"math"
)

const (
	// DefaultSampleRate is the synthesis rate in Hz used when none is configured.
	DefaultSampleRate = 44100.0
	// DefaultDuration is the note length in seconds used when none is configured.
	DefaultDuration = 0.5
)

// ProcessorConfig defines the sample rate and default note duration shared
// by every stage of the synthesis pipeline.
type ProcessorConfig struct {
	SampleRate float64
	Duration   float64
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns 44.1 kHz and half-second notes.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: DefaultSampleRate,
		Duration:   DefaultDuration,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 && !math.IsInf(sampleRate, 0) {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithDuration sets the default note duration in seconds.
// Changing the duration only affects buffer length, never the rate.
func WithDuration(seconds float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if seconds > 0 && !math.IsInf(seconds, 0) {
			cfg.Duration = seconds
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Samples returns the number of samples covering seconds at the configured
// rate, rounded to the nearest integer. Non-positive durations yield 0.
func (c ProcessorConfig) Samples(seconds float64) int {
	if seconds <= 0 || math.IsNaN(seconds) || c.SampleRate <= 0 {
		return 0
	}
	return int(math.Round(seconds * c.SampleRate))
}

// DefaultSamples returns the sample count of one default-length note.
func (c ProcessorConfig) DefaultSamples() int {
	return c.Samples(c.Duration)
}

// Validate reports whether the configuration can drive synthesis.
func (c ProcessorConfig) Validate() error {
	if c.SampleRate <= 0 || math.IsNaN(c.SampleRate) || math.IsInf(c.SampleRate, 0) {
		return fmt.Errorf("sample rate must be > 0: %f", c.SampleRate)
	}
	if c.Duration <= 0 || math.IsNaN(c.Duration) || math.IsInf(c.Duration, 0) {
		return fmt.Errorf("duration must be > 0: %f", c.Duration)
	}
	return nil
}
