// Package synth turns a note request into a sample buffer.
//
// A Synthesizer dispatches on the requested Timbre: oscillator kinds are
// rendered by dsp/signal and then shaped by dsp/envelope and dsp/delay;
// sampled kinds loop or truncate a recording from a dsp/sampler Set.
// Pregenerate renders a whole set of pitches ahead of playback.
package synth
