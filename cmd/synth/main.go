// Command synth renders tones with the algo-synth engine and plays them,
// prints an analysis, or writes them to a WAV file.
//
// Usage:
//
//	synth [flags]
//
// Examples:
//
//	synth -note A -timbre square
//	synth -freq 440 -timbre fm -fm-freq 110 -fm-index 3
//	synth -progression "C E G" -timbre piano -samples ./samples
//	synth -note C -timbre sine-square -analyze
//	synth -progression "C D E" -out melody.wav
//	synth -keys
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/cwbudde/algo-synth/dsp/note"
	"github.com/cwbudde/algo-synth/measure/tone"
	"github.com/cwbudde/algo-synth/playback"
)

func main() {
	os.Exit(run(os.Args[1:], os.Getenv, os.Stdout, os.Stderr))
}

func run(args []string, getenv func(string) string, stdout, stderr io.Writer) int {
	o, err := parseFlags(args, getenv, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	logOut := stderr
	if o.keys && !o.verbose {
		// Log lines would tear the keyboard view.
		logOut = io.Discard
	}
	logger := newLogger(logOut, o.verbose)

	eng := newEngine(o, logger)
	v, err := eng.voice(o.timbre)
	if err == nil && (o.keys || len(o.progression) > 0) {
		err = v.pregenerate()
	}
	if err == nil {
		switch {
		case o.keys:
			err = runKeys(o, eng, v, logger)
		case o.analyze:
			err = analyze(o, v, stdout)
		case o.out != "":
			err = export(o, v)
		default:
			err = play(o, v, logger)
		}
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func (o options) frequencies() []float64 {
	if len(o.progression) > 0 {
		return o.progression
	}
	return []float64{o.freq}
}

func (o options) rate() int {
	return int(math.Round(o.sampleRate))
}

func analyze(o options, v *voice, stdout io.Writer) error {
	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Note\tHz\tSamples\tSeconds\tPeak dB\tRMS dB\tCrest\tZC\tFundamental")
	for _, hz := range o.frequencies() {
		buf, err := v.render(hz)
		if err != nil {
			return err
		}
		r, err := tone.Analyze(buf, o.sampleRate)
		if err != nil {
			return fmt.Errorf("analyze %.2f Hz: %w", hz, err)
		}
		name, ok := note.Name(hz)
		if !ok {
			name = "-"
		}
		fmt.Fprintf(tw, "%s\t%.2f\t%d\t%.3f\t%.2f\t%.2f\t%.3f\t%d\t%.2f\n",
			name, hz, r.Samples, r.Duration, r.PeakDB, r.RMSDB, r.CrestFactor, r.ZeroCrossings, r.FundamentalHz)
	}
	return tw.Flush()
}

func export(o options, v *voice) error {
	var tones [][]float64
	for _, hz := range o.frequencies() {
		buf, err := v.render(hz)
		if err != nil {
			return err
		}
		tones = append(tones, buf)
	}
	gap := int(math.Round(o.gap.Seconds() * o.sampleRate))
	mixed := arrange(tones, gap)

	f, err := os.Create(o.out)
	if err != nil {
		return err
	}
	if err := playback.WriteWAV(f, mixed, o.rate()); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", o.out, err)
	}
	return f.Close()
}

// arrange lays tones out every gap samples and sums overlaps, the way the
// progression sounds when played.
func arrange(tones [][]float64, gap int) []float64 {
	total := 0
	for i, t := range tones {
		if end := i*gap + len(t); end > total {
			total = end
		}
	}
	out := make([]float64, total)
	for i, t := range tones {
		offset := i * gap
		for j, x := range t {
			out[offset+j] += x
		}
	}
	return out
}

func play(o options, v *voice, logger *slog.Logger) error {
	out, err := playback.New(o.rate(), playback.WithLogger(logger))
	if err != nil {
		return err
	}
	defer out.Close()

	freqs := o.frequencies()
	if len(freqs) == 1 {
		buf, err := v.render(freqs[0])
		if err != nil {
			return err
		}
		return out.Play(buf)
	}

	// Render everything first so a failure plays nothing.
	tones := make([][]float64, len(freqs))
	for i, hz := range freqs {
		buf, err := v.render(hz)
		if err != nil {
			return err
		}
		tones[i] = buf
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for i, buf := range tones {
		if i > 0 {
			time.Sleep(o.gap)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := out.Play(buf); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	return errors.Join(errs...)
}
