package sakura

import (
	"github.com/oklog/ulid/v2"

	"github.com/vovakirdan/sakura-runner/internal/core"
)

// Session is the aggregate root of one playthrough. It is created on Reset,
// mutated by the tick, the spawner and the resolver, and replaced by a fresh
// instance when a new run starts.
type Session struct {
	ID        ulid.ULID
	Started   bool
	Dead      bool
	PoweredUp bool
	RawScore  int
	Score     int // RawScore / raw_per_meter
	GameSpeed float64
	HighScore int

	PowerUps int     // Flowers collected
	Ticks    int     // Ticks survived
	Label    string  // Transient banner, empty when hidden
	Elapsed  float64 // Logical seconds survived
}

// NewSession creates a session with the prior high score and starting speed.
func NewSession(highScore int, speed float64) *Session {
	return &Session{
		ID:        ulid.Make(),
		GameSpeed: speed,
		HighScore: highScore,
	}
}

// Summary returns the persisted view of the run.
func (s *Session) Summary() core.RunSummary {
	return core.RunSummary{
		SessionID: s.ID.String(),
		Score:     s.Score,
		RawScore:  s.RawScore,
		PowerUps:  s.PowerUps,
		Seconds:   s.Elapsed,
	}
}
