// Package envelope shapes sample buffers with a linear
// attack-decay-sustain-release amplitude curve.
//
// The curve is laid out against the buffer length rather than driven by
// note-on/note-off events: attack, decay and release take the lengths they
// ask for and sustain fills the remainder. Phases that do not fit are
// shortened in a fixed order (release, then decay, then attack), so Apply
// accepts any parameters and always returns a buffer of the input length.
package envelope
