package core

// RuntimeConfig contains configuration passed to the game at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickSeconds returns the logical duration of one tick.
func (c RuntimeConfig) TickSeconds() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60
	}
	return 1.0 / float64(c.TickRate)
}

// GameState is the snapshot the platform reads after every tick.
type GameState struct {
	Score     int     // Current score in meters
	HighScore int     // Best score known to this run
	Speed     float64 // Current game speed (entity crossing time)
	PoweredUp bool    // Whether the power-up effect is active
	GameOver  bool    // Whether the run has ended
	Paused    bool    // Whether the game is paused
}

// EventKind identifies a notification emitted during a tick.
type EventKind int

const (
	EventJumpSound EventKind = iota + 1
	EventSlideSound
	EventPowerUp
	EventPowerDown
	EventHighScore
	EventGameOver
)

// String returns the event name used in logs.
func (k EventKind) String() string {
	switch k {
	case EventJumpSound:
		return "jump_sound"
	case EventSlideSound:
		return "slide_sound"
	case EventPowerUp:
		return "power_up"
	case EventPowerDown:
		return "power_down"
	case EventHighScore:
		return "high_score"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event is a fire-and-forget notification for external collaborators.
// Score is set for EventHighScore and EventGameOver.
type Event struct {
	Kind  EventKind
	Score int
}

// StepResult is returned by Step after each simulation tick.
// Events are listed in the order they occurred within the tick.
type StepResult struct {
	State  GameState
	Events []Event
}

// Has reports whether an event of the given kind occurred this tick.
func (r StepResult) Has(kind EventKind) bool {
	for _, e := range r.Events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// RunSummary describes a finished run for persistence.
type RunSummary struct {
	SessionID string
	Score     int
	RawScore  int
	PowerUps  int
	Seconds   float64
}
