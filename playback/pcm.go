package playback

import (
	"encoding/binary"
	"errors"
	"math"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/signal"
)

// FullScale is the peak a buffer is scaled to before conversion to int16.
const FullScale = math.MaxInt16

// ErrSilent is returned for buffers with no non-zero sample.
var ErrSilent = errors.New("no audio to play: buffer is silent")

// Quantize scales buf so its peak magnitude is FullScale and converts it to
// int16, truncating toward zero. Empty and all-zero buffers return
// ErrSilent.
func Quantize(buf []float64) ([]int16, error) {
	if core.IsSilent(buf) {
		return nil, ErrSilent
	}
	scaled, err := signal.Normalize(buf, FullScale)
	if err != nil {
		return nil, err
	}
	out := make([]int16, len(scaled))
	for i, x := range scaled {
		out[i] = int16(core.Clamp(x, -FullScale, FullScale))
	}
	return out, nil
}

// PCM encodes samples as signed 16-bit little-endian bytes.
func PCM(samples []int16) []byte {
	out := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(s))
	}
	return out
}
