// Package audio plays the runner's sound effects on the local speaker.
package audio

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/sakura-runner/internal/core"
)

// DefaultSampleRate is the speaker rate used by New.
const DefaultSampleRate = beep.SampleRate(44100)

// Sink plays event sounds through a mixer on the speaker.
// A Sink without a speaker is silent; every method is safe to call on it.
type Sink struct {
	mu      sync.Mutex
	rate    beep.SampleRate
	volume  float64
	mixer   *beep.Mixer
	enabled bool
	logger  *log.Logger
}

// New opens the speaker. If it cannot be opened the error is logged and a
// silent sink is returned, so a missing sound card never stops a run.
func New(volume float64, logger *log.Logger) *Sink {
	s := Silent()
	if logger != nil {
		s.logger = logger
	}
	s.volume = volume
	if volume <= 0 {
		return s
	}

	if err := speaker.Init(s.rate, s.rate.N(100*time.Millisecond)); err != nil {
		s.logger.Warn("audio disabled", "err", err)
		return s
	}
	speaker.Play(s.mixer)
	s.enabled = true
	s.logger.Debug("audio enabled", "rate", int(s.rate), "volume", volume)
	return s
}

// Silent returns a sink that plays nothing.
func Silent() *Sink {
	return &Sink{
		rate:   DefaultSampleRate,
		mixer:  &beep.Mixer{},
		logger: log.New(io.Discard),
	}
}

// Enabled reports whether the sink is attached to a speaker.
func (s *Sink) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// Play starts the sound of kind on top of whatever is already playing.
func (s *Sink) Play(kind core.EventKind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enabled {
		return
	}

	st, ok := Sound(kind, s.rate, s.volume)
	if !ok {
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Close stops all sounds and releases the speaker.
func (s *Sink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enabled {
		return
	}
	speaker.Clear()
	speaker.Close()
	s.enabled = false
}
