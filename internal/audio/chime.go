// Package audio plays the short chime that acknowledges a hotspot
// activation. Audio is optional: any device failure silences the chime.
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-chapters/internal/config"
)

const sampleRate = beep.SampleRate(44100)

// Player acknowledges an activation.
type Player interface {
	Play()
}

// Nop is a Player that does nothing.
type Nop struct{}

// Play implements Player.
func (Nop) Play() {}

// Chime plays a two-partial bell tone through the default output device.
type Chime struct {
	mu     sync.Mutex
	cfg    config.ChimeConfig
	log    *log.Logger
	mixer  *beep.Mixer
	ready  bool
	failed bool
}

// NewChime creates a chime. The speaker is opened lazily on first Play.
func NewChime(cfg config.ChimeConfig, logger *log.Logger) *Chime {
	return &Chime{cfg: cfg, log: logger, mixer: &beep.Mixer{}}
}

func (c *Chime) init() bool {
	if c.ready {
		return true
	}
	if c.failed {
		return false
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		c.failed = true
		c.log.Debug("audio device unavailable, chime disabled", "error", err)
		return false
	}
	speaker.Play(c.mixer)
	c.ready = true
	return true
}

// Play queues one chime. Failures are logged at debug level and ignored.
func (c *Chime) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.cfg.Enabled || !c.init() {
		return
	}
	s, err := Tone(sampleRate, c.cfg)
	if err != nil {
		c.log.Debug("chime tone rejected", "error", err)
		return
	}
	speaker.Lock()
	c.mixer.Add(s)
	speaker.Unlock()
}

// Close silences any queued chime.
func (c *Chime) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.ready {
		return
	}
	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()
}

// Tone builds the chime stream: a fundamental and its octave, faded out
// over the configured duration.
func Tone(sr beep.SampleRate, cfg config.ChimeConfig) (beep.Streamer, error) {
	if cfg.Duration <= 0 {
		return nil, fmt.Errorf("audio: chime duration must be positive, got %v", cfg.Duration)
	}
	fund, err := generators.SineTone(sr, cfg.Frequency)
	if err != nil {
		return nil, fmt.Errorf("audio: fundamental: %w", err)
	}
	over, err := generators.SineTone(sr, cfg.Frequency*2)
	if err != nil {
		return nil, fmt.Errorf("audio: overtone: %w", err)
	}

	n := sr.N(cfg.Duration)
	mixed := beep.Mix(
		&effects.Volume{Streamer: fund, Base: 2, Volume: math.Log2(0.7)},
		&effects.Volume{Streamer: over, Base: 2, Volume: math.Log2(0.3)},
	)
	return &effects.Volume{
		Streamer: newFade(beep.Take(n, mixed), n),
		Base:     2,
		Volume:   cfg.Volume,
	}, nil
}

// fade applies a short attack and a linear release to a finite stream.
type fade struct {
	streamer beep.Streamer
	pos      int
	total    int
	attack   int
}

func newFade(s beep.Streamer, total int) *fade {
	return &fade{streamer: s, total: total, attack: max(total/20, 1)}
}

func (f *fade) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1 - float64(f.pos)/float64(f.total)
		if f.pos < f.attack {
			vol = float64(f.pos) / float64(f.attack)
		}
		if vol < 0 {
			vol = 0
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		f.pos++
	}
	return n, ok
}

func (f *fade) Err() error { return f.streamer.Err() }
