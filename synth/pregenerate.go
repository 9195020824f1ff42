package synth

import (
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-synth/dsp/delay"
	"github.com/cwbudde/algo-synth/dsp/envelope"
)

const defaultWorkers = 4

// Pregenerate renders one tone per frequency at the default duration with
// the envelope and delay always applied. FM timbres use the default
// modulator. Only oscillator timbres are supported.
//
// Tones are rendered concurrently; every buffer depends only on its inputs,
// so repeated calls return bit-identical results. Duplicate frequencies are
// rendered once.
func (s *Synthesizer) Pregenerate(freqs []float64, timbre Timbre, adsr envelope.ADSR, d delay.Params) (map[float64][]float64, error) {
	if !timbre.Kind.Oscillator() {
		return nil, fmt.Errorf("%w for pregeneration: %s", ErrUnsupportedTimbre, timbre)
	}
	for _, hz := range freqs {
		if err := checkFrequency(hz); err != nil {
			return nil, err
		}
	}

	var (
		mu  sync.Mutex
		out = make(map[float64][]float64, len(freqs))
		g   errgroup.Group
	)
	g.SetLimit(s.workers)

	seen := make(map[float64]struct{}, len(freqs))
	for _, hz := range freqs {
		if _, dup := seen[hz]; dup {
			continue
		}
		seen[hz] = struct{}{}

		g.Go(func() error {
			buf, err := s.Synthesize(Request{
				Frequency: hz,
				Timbre:    timbre,
				ADSR:      &adsr,
				Delay:     &d,
			})
			if err != nil {
				return fmt.Errorf("pregenerate %.2f Hz: %w", hz, err)
			}
			mu.Lock()
			out[hz] = buf
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Debug("pregenerated", slog.String("timbre", timbre.String()), slog.Int("tones", len(out)))
	return out, nil
}
