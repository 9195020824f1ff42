package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/delay"
	"github.com/cwbudde/algo-synth/dsp/envelope"
	"github.com/cwbudde/algo-synth/dsp/note"
	"github.com/cwbudde/algo-synth/dsp/signal"
	"github.com/cwbudde/algo-synth/synth"
)

const (
	envSampleRate = "SYNTH_SAMPLE_RATE"
	envDuration   = "SYNTH_DURATION"
	envSamplesDir = "SYNTH_SAMPLES_DIR"

	defaultSamplesDir = "samples"
	defaultGap        = 500 * time.Millisecond
)

// envConfig holds defaults taken from the environment. Unset or unparsable
// variables keep the built-in value.
type envConfig struct {
	SampleRate float64
	Duration   float64
	SamplesDir string
}

func loadEnvConfig(getenv func(string) string) envConfig {
	cfg := envConfig{
		SampleRate: core.DefaultSampleRate,
		Duration:   core.DefaultDuration,
		SamplesDir: defaultSamplesDir,
	}
	if v := getenv(envSampleRate); v != "" {
		if rate, err := strconv.ParseFloat(v, 64); err == nil && rate > 0 {
			cfg.SampleRate = rate
		}
	}
	if v := getenv(envDuration); v != "" {
		if d, err := strconv.ParseFloat(v, 64); err == nil && d > 0 {
			cfg.Duration = d
		}
	}
	if v := getenv(envSamplesDir); v != "" {
		cfg.SamplesDir = v
	}
	return cfg
}

type options struct {
	sampleRate  float64
	duration    float64
	samplesDir  string
	resample    bool
	timbre      synth.Timbre
	freq        float64
	progression []float64
	gap         time.Duration
	keys        bool
	raw         bool
	adsr        envelope.ADSR
	delay       delay.Params
	fm          signal.FMParams
	analyze     bool
	out         string
	verbose     bool
}

func parseFlags(args []string, getenv func(string) string, stderr io.Writer) (options, error) {
	env := loadEnvConfig(getenv)
	adsr := envelope.Default()
	fm := signal.DefaultFMParams()

	fs := flag.NewFlagSet("synth", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		o           options
		timbreName  string
		noteName    string
		progression string
	)
	fs.Float64Var(&o.sampleRate, "rate", env.SampleRate, "sample rate in Hz (env "+envSampleRate+")")
	fs.Float64Var(&o.duration, "duration", env.Duration, "tone length in seconds (env "+envDuration+")")
	fs.StringVar(&o.samplesDir, "samples", env.SamplesDir, "directory holding one sub-directory per instrument (env "+envSamplesDir+")")
	fs.BoolVar(&o.resample, "resample", false, "resample instrument files recorded at another rate")
	fs.StringVar(&timbreName, "timbre", "sine", "timbre: "+strings.Join(synth.Names(), ", "))
	fs.Float64Var(&o.freq, "freq", 0, "frequency in Hz")
	fs.StringVar(&noteName, "note", "", "pitch class C..B (overrides -freq)")
	fs.StringVar(&progression, "progression", "", `space-separated pitch classes played in sequence, e.g. "C E G"`)
	fs.DurationVar(&o.gap, "gap", defaultGap, "pause between progression notes")
	fs.BoolVar(&o.keys, "keys", false, "play from the computer keyboard (a w s e d f t g y h u j)")
	fs.BoolVar(&o.raw, "raw", false, "skip envelope and delay")
	fs.Float64Var(&o.adsr.Attack, "attack", adsr.Attack, "envelope attack in seconds")
	fs.Float64Var(&o.adsr.Decay, "decay", adsr.Decay, "envelope decay in seconds")
	fs.Float64Var(&o.adsr.Sustain, "sustain", adsr.Sustain, "envelope sustain level")
	fs.Float64Var(&o.adsr.Release, "release", adsr.Release, "envelope release in seconds")
	fs.Float64Var(&o.delay.Time, "delay-time", 0, "delay time in seconds")
	fs.Float64Var(&o.delay.Feedback, "feedback", 0, "delay feedback in [0, 1]")
	fs.Float64Var(&o.delay.Mix, "mix", 0, "delay wet mix in [0, 1]")
	fs.Float64Var(&o.fm.ModulatorHz, "fm-freq", fm.ModulatorHz, "FM modulator frequency in Hz")
	fs.Float64Var(&o.fm.Index, "fm-index", fm.Index, "FM modulation index")
	fs.BoolVar(&o.analyze, "analyze", false, "print a tone report instead of playing")
	fs.StringVar(&o.out, "out", "", "write the rendered tone to a WAV file instead of playing")
	fs.BoolVar(&o.verbose, "v", false, "debug logging")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: synth [flags]\n\n")
		fmt.Fprintf(stderr, "Renders and plays synthesized tones.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  synth -note A -timbre square\n")
		fmt.Fprintf(stderr, "  synth -freq 440 -timbre fm -fm-freq 110 -fm-index 3\n")
		fmt.Fprintf(stderr, "  synth -progression \"C E G\" -timbre piano\n")
		fmt.Fprintf(stderr, "  synth -note C -analyze\n")
		fmt.Fprintf(stderr, "  synth -keys\n")
	}

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	timbre, ok := synth.ParseTimbre(timbreName)
	if !ok {
		return options{}, fmt.Errorf("unknown timbre %q (want one of %s)", timbreName, strings.Join(synth.Names(), ", "))
	}
	o.timbre = timbre

	if noteName != "" {
		hz, ok := note.Frequency(noteName)
		if !ok {
			return options{}, fmt.Errorf("%w: %q", note.ErrIllegalNote, noteName)
		}
		o.freq = hz
	}
	if progression != "" {
		freqs, err := note.ParseProgression(progression)
		if err != nil {
			return options{}, err
		}
		o.progression = freqs
	}

	if err := o.validate(); err != nil {
		return options{}, err
	}
	return o, nil
}

func (o options) validate() error {
	cfg := core.ProcessorConfig{SampleRate: o.sampleRate, Duration: o.duration}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := o.delay.Validate(); err != nil {
		return err
	}
	if o.gap < 0 {
		return fmt.Errorf("gap must be >= 0: %s", o.gap)
	}

	modes := 0
	if o.keys {
		modes++
	}
	if len(o.progression) > 0 {
		modes++
	}
	if o.freq != 0 {
		modes++
	}
	switch {
	case modes == 0:
		return fmt.Errorf("nothing to play: give -freq, -note, -progression or -keys")
	case modes > 1:
		return fmt.Errorf("-freq/-note, -progression and -keys are mutually exclusive")
	case o.freq < 0:
		return fmt.Errorf("freq must be > 0: %f", o.freq)
	case o.keys && (o.analyze || o.out != ""):
		return fmt.Errorf("-analyze and -out cannot be combined with -keys")
	}
	return nil
}
