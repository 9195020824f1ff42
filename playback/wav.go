package playback

import (
	"fmt"
	"io"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// WriteWAV writes buf as a mono 16-bit PCM WAV file, peak-normalized the
// same way Play normalizes it. Silent buffers return ErrSilent.
func WriteWAV(w io.WriteSeeker, buf []float64, sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("sample rate must be > 0: %d", sampleRate)
	}
	samples, err := Quantize(buf)
	if err != nil {
		return err
	}

	format := beep.Format{
		SampleRate:  beep.SampleRate(sampleRate),
		NumChannels: 1,
		Precision:   2,
	}
	if err := wav.Encode(w, int16Streamer(samples), format); err != nil {
		return fmt.Errorf("encode wav: %w", err)
	}
	return nil
}

func int16Streamer(samples []int16) beep.Streamer {
	pos := 0
	return beep.StreamerFunc(func(buf [][2]float64) (int, bool) {
		if pos >= len(samples) {
			return 0, false
		}
		n := 0
		for ; n < len(buf) && pos < len(samples); n++ {
			x := float64(samples[pos]) / FullScale
			buf[n][0], buf[n][1] = x, x
			pos++
		}
		return n, true
	})
}
