// Package delay implements an offline feedback delay over whole sample
// buffers.
//
// The effect runs a single causal pass over a working copy of the input, so
// each echo is fed back into later echoes. Output length always equals input
// length; echoes that would land past the end are discarded.
package delay
