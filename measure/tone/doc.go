// Package tone reports level statistics and the dominant pitch of a rendered
// buffer. It is used to check oscillator output and by the synth command's
// -analyze mode.
package tone
