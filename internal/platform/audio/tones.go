package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/sakura-runner/internal/core"
)

// Wave selects the oscillator shape of a tone.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
)

const releaseTime = 15 * time.Millisecond

// tone is a finite oscillator gliding linearly from one frequency to
// another, faded out over its last samples.
type tone struct {
	from, to float64
	wave     Wave
	rate     beep.SampleRate
	total    int
	release  int
	pos      int
	phase    float64
}

// NewTone returns a streamer of d playing a glide from one frequency to another.
func NewTone(from, to float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	total := rate.N(d)
	return &tone{
		from:    from,
		to:      to,
		wave:    wave,
		rate:    rate,
		total:   total,
		release: min(rate.N(releaseTime), total),
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	if t.pos >= t.total {
		return 0, false
	}
	for n = range samples {
		if t.pos >= t.total {
			return n, true
		}

		var val float64
		switch t.wave {
		case WaveSquare:
			val = 1
			if t.phase >= 0.5 {
				val = -1
			}
		default:
			val = math.Sin(2 * math.Pi * t.phase)
		}
		if left := t.total - t.pos; left < t.release {
			val *= float64(left) / float64(t.release)
		}
		samples[n][0] = val
		samples[n][1] = val

		progress := float64(t.pos) / float64(t.total)
		freq := t.from + (t.to-t.from)*progress
		t.phase += freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// withVolume scales s by a linear volume in [0, 1].
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Sound returns the effect played for an event kind at a linear volume.
// Kinds without a sound return false.
func Sound(kind core.EventKind, rate beep.SampleRate, vol float64) (beep.Streamer, bool) {
	var s beep.Streamer
	switch kind {
	case core.EventJumpSound:
		s = NewTone(440, 880, 120*time.Millisecond, WaveSine, rate)
	case core.EventSlideSound:
		s = withVolume(NewTone(330, 165, 120*time.Millisecond, WaveSquare, rate), 0.4)
	case core.EventPowerUp:
		note := 80 * time.Millisecond
		s = beep.Seq(
			NewTone(523.25, 523.25, note, WaveSine, rate),
			NewTone(659.25, 659.25, note, WaveSine, rate),
			NewTone(783.99, 783.99, note, WaveSine, rate),
			NewTone(1046.5, 1046.5, 2*note, WaveSine, rate),
		)
	case core.EventPowerDown:
		note := 90 * time.Millisecond
		s = beep.Seq(
			NewTone(783.99, 783.99, note, WaveSine, rate),
			NewTone(523.25, 392, 2*note, WaveSine, rate),
		)
	default:
		return nil, false
	}
	return withVolume(s, vol), true
}
