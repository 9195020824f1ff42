// Package core holds the configuration and numeric helpers shared by every
// stage of the synthesis pipeline. All DSP functions in this module accept
// and return raw []float64 sample buffers.
package core
