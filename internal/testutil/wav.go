package testutil

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// WriteWAV encodes samples as a mono 16-bit PCM WAV file named name inside
// dir and returns its path.
func WriteWAV(t *testing.T, dir, name string, samples []float64, sampleRate int) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	format := beep.Format{
		SampleRate:  beep.SampleRate(sampleRate),
		NumChannels: 1,
		Precision:   2,
	}
	if err := wav.Encode(f, sliceStreamer(samples), format); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
	return path
}

func sliceStreamer(samples []float64) beep.Streamer {
	pos := 0
	return beep.StreamerFunc(func(buf [][2]float64) (int, bool) {
		if pos >= len(samples) {
			return 0, false
		}
		n := 0
		for n < len(buf) && pos < len(samples) {
			buf[n][0] = samples[pos]
			buf[n][1] = samples[pos]
			n++
			pos++
		}
		return n, true
	})
}

// WritePCM16 writes frames verbatim as a canonical 44-byte-header mono
// 16-bit PCM WAV file, bypassing any float conversion, and returns its path.
func WritePCM16(t *testing.T, dir, name string, frames []int16, sampleRate int) string {
	t.Helper()

	dataLen := uint32(2 * len(frames))
	var b bytes.Buffer
	b.WriteString("RIFF")
	_ = binary.Write(&b, binary.LittleEndian, 36+dataLen)
	b.WriteString("WAVEfmt ")
	for _, v := range []any{
		uint32(16),             // fmt chunk size
		uint16(1),              // PCM
		uint16(1),              // channels
		uint32(sampleRate),     // sample rate
		uint32(2 * sampleRate), // byte rate
		uint16(2),              // block align
		uint16(16),             // bits per sample
	} {
		_ = binary.Write(&b, binary.LittleEndian, v)
	}
	b.WriteString("data")
	_ = binary.Write(&b, binary.LittleEndian, dataLen)
	_ = binary.Write(&b, binary.LittleEndian, frames)

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, b.Bytes(), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
