package main

import (
	"log/slog"
	"path/filepath"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/delay"
	"github.com/cwbudde/algo-synth/dsp/envelope"
	"github.com/cwbudde/algo-synth/dsp/note"
	"github.com/cwbudde/algo-synth/dsp/sampler"
	"github.com/cwbudde/algo-synth/dsp/signal"
	"github.com/cwbudde/algo-synth/synth"
)

// engine holds what every rendered tone shares: the synthesizer, the
// instrument cache and the effect settings from the command line.
type engine struct {
	synth      *synth.Synthesizer
	cache      *sampler.Cache
	samplesDir string
	adsr       *envelope.ADSR
	delay      *delay.Params
	fm         signal.FMParams
}

func newEngine(o options, logger *slog.Logger) *engine {
	e := &engine{
		synth: synth.New(
			synth.WithLogger(logger),
			synth.WithProcessor(core.WithSampleRate(o.sampleRate), core.WithDuration(o.duration)),
		),
		cache: sampler.NewCache(
			sampler.WithLogger(logger),
			sampler.WithSampleRate(o.sampleRate),
			sampler.WithResample(o.resample),
		),
		samplesDir: o.samplesDir,
		fm:         o.fm,
	}
	if !o.raw {
		adsr, dl := o.adsr, o.delay
		e.adsr, e.delay = &adsr, &dl
	}
	return e
}

// voice renders pitches in one timbre.
type voice struct {
	synth *synth.Synthesizer
	req   synth.Request
	bank  map[float64][]float64
}

// voice prepares t for rendering. Sampled timbres load their instrument
// directory through the cache.
func (e *engine) voice(t synth.Timbre) (*voice, error) {
	v := &voice{
		synth: e.synth,
		req:   synth.Request{Timbre: t, ADSR: e.adsr, Delay: e.delay},
	}
	switch t.Kind {
	case synth.KindSampled:
		set, err := e.cache.Get(filepath.Join(e.samplesDir, t.Instrument))
		if err != nil {
			return nil, err
		}
		v.req.Samples = set
	case synth.KindFM:
		fm := e.fm
		v.req.FM = &fm
	}
	return v, nil
}

// pregenerate renders the canonical pitches ahead of time when the timbre
// allows it, so later key presses and progression steps only play.
func (v *voice) pregenerate() error {
	kind := v.req.Timbre.Kind
	if !kind.Oscillator() || v.req.ADSR == nil || v.req.Delay == nil {
		return nil
	}
	if kind == synth.KindFM && *v.req.FM != signal.DefaultFMParams() {
		return nil
	}
	bank, err := v.synth.Pregenerate(note.Frequencies(), v.req.Timbre, *v.req.ADSR, *v.req.Delay)
	if err != nil {
		return err
	}
	v.bank = bank
	return nil
}

// render returns the tone for hz, from the pregenerated bank when present.
func (v *voice) render(hz float64) ([]float64, error) {
	if buf, ok := v.bank[hz]; ok {
		return core.Clone(buf), nil
	}
	req := v.req
	req.Frequency = hz
	return v.synth.Synthesize(req)
}
