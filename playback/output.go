package playback

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

const pollInterval = 10 * time.Millisecond

// player is the part of *oto.Player that Output drives.
type player interface {
	Play()
	IsPlaying() bool
	Close() error
}

// Output plays rendered buffers on the default audio device as mono
// 16-bit PCM. Play may be called from several goroutines; overlapping
// buffers are mixed by the device.
type Output struct {
	sampleRate int
	logger     *slog.Logger
	newPlayer  func(io.Reader) player
	suspend    func() error

	mu     sync.Mutex
	closed bool
}

// Option configures an Output.
type Option func(*Output)

// WithLogger sets the logger for silent-buffer notices and device errors.
func WithLogger(l *slog.Logger) Option {
	return func(o *Output) {
		if l != nil {
			o.logger = l
		}
	}
}

// ErrClosed is returned by Play after Close.
var ErrClosed = errors.New("output closed")

// New opens the audio device at sampleRate. Only one Output can exist per
// process because the device context cannot be recreated.
func New(sampleRate int, opts ...Option) (*Output, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be > 0: %d", sampleRate)
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}
	<-ready

	o := newOutput(sampleRate, func(r io.Reader) player { return ctx.NewPlayer(r) }, ctx.Suspend, opts...)
	o.logger.Debug("audio output ready", slog.Int("sample_rate", sampleRate))
	return o, nil
}

func newOutput(sampleRate int, newPlayer func(io.Reader) player, suspend func() error, opts ...Option) *Output {
	o := &Output{
		sampleRate: sampleRate,
		logger:     slog.Default(),
		newPlayer:  newPlayer,
		suspend:    suspend,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// SampleRate returns the device rate buffers are played at.
func (o *Output) SampleRate() int {
	return o.sampleRate
}

// Play normalizes buf to full scale and blocks until the device has played
// it. A silent buffer is logged and skipped without error.
func (o *Output) Play(buf []float64) error {
	o.mu.Lock()
	closed := o.closed
	o.mu.Unlock()
	if closed {
		return ErrClosed
	}

	samples, err := Quantize(buf)
	if errors.Is(err, ErrSilent) {
		o.logger.Info("nothing to play", slog.Int("samples", len(buf)))
		return nil
	}
	if err != nil {
		return err
	}

	p := o.newPlayer(bytes.NewReader(PCM(samples)))
	p.Play()
	for p.IsPlaying() {
		time.Sleep(pollInterval)
	}
	if err := p.Close(); err != nil {
		return fmt.Errorf("close player: %w", err)
	}
	return nil
}

// Close suspends the device. Later calls to Play fail with ErrClosed.
func (o *Output) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return nil
	}
	o.closed = true
	if o.suspend != nil {
		return o.suspend()
	}
	return nil
}
