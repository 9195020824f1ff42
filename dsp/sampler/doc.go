// Package sampler is the instrument sample bank: one recorded buffer per
// canonical pitch, loaded from a directory of WAV files and stretched to a
// requested length by looping or truncation.
//
// Sample files are consumed at their native rate unless WithResample is
// given; a rate that differs from the synthesis rate is logged as a warning.
package sampler
