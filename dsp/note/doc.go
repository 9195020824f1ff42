// Package note names the twelve pitch classes of the synthesizer's octave,
// maps them to the canonical frequencies used as sample-bank keys, and
// parses space-separated note progressions.
package note
