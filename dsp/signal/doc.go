// Package signal is the oscillator bank: sine, square, gated sine-square and
// two-operator FM waveforms rendered into fixed-length buffers, plus peak
// normalization for the output stage.
package signal
