// Package playback converts rendered buffers to peak-normalized 16-bit PCM
// and plays them on the audio device.
package playback
