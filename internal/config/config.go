// Package config provides YAML-based configuration loading and difficulty
// management for the runner.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid runner config")

// RunnerConfig contains all tunables of the gameplay loop.
type RunnerConfig struct {
	Speed      SpeedConfig      `yaml:"speed"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Spawner    SpawnerConfig    `yaml:"spawner"`
	Player     PlayerConfig     `yaml:"player"`
	Timing     TimingConfig     `yaml:"timing"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// SpeedConfig defines the game speed curve. Game speed is the time in
// seconds an entity takes to cross the playfield; lower is harder.
type SpeedConfig struct {
	Default   float64 `yaml:"default"`    // Speed at score 0
	Floor     float64 `yaml:"floor"`      // Hardest speed
	StepScore int     `yaml:"step_score"` // Score per 1.0 speed decrease
	CapScore  int     `yaml:"cap_score"`  // Above this score speed is pinned to Floor
}

// ScoringConfig defines raw score accrual per tick.
type ScoringConfig struct {
	RawPerMeter int `yaml:"raw_per_meter"` // Raw points per displayed score point
	NormalRate  int `yaml:"normal_rate"`   // Raw points per tick
	PoweredRate int `yaml:"powered_rate"`  // Raw points per tick while powered
}

// SpawnerConfig defines the spawn cycle and entity geometry.
type SpawnerConfig struct {
	Lanes          int     `yaml:"lanes"`            // Number of shuriken/flower lanes
	LaneSpan       float64 `yaml:"lane_span"`        // Fraction of screen height covered by lanes
	MinDelayFactor float64 `yaml:"min_delay_factor"` // Min wait = speed * factor
	MaxDelayFactor float64 `yaml:"max_delay_factor"` // Max wait = speed * factor
	PowerUpRollMax int     `yaml:"powerup_roll_max"` // Power-up roll is uniform in [0, max]
	PowerUpRollHit int     `yaml:"powerup_roll_hit"` // Roll value that spawns a flower
	PowerUpWait    float64 `yaml:"powerup_wait"`     // Fixed wait after the power-up step
	SpinPeriod     float64 `yaml:"spin_period"`      // Seconds per full shuriken turn
	ShurikenSize   float64 `yaml:"shuriken_size"`    // Fraction of screen height
	FlowerSize     float64 `yaml:"flower_size"`      // Fraction of screen height
	SpikeWidth     float64 `yaml:"spike_width"`      // Fraction of screen width
	SpikeHeight    float64 `yaml:"spike_height"`     // Fraction of screen height
}

// PlayerConfig defines the player's nominal bounds and origin.
type PlayerConfig struct {
	X             int     `yaml:"x"`
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	GroundOffset  int     `yaml:"ground_offset"`
	OriginEpsilon float64 `yaml:"origin_epsilon"` // Max distance from origin to accept jump/slide
}

// TimingConfig defines per-state motion and animation timing.
type TimingConfig struct {
	JumpPhase     float64 `yaml:"jump_phase"`     // Seconds up, and again seconds down
	JumpHeight    float64 `yaml:"jump_height"`    // Fraction of screen height
	JumpFrame     float64 `yaml:"jump_frame"`     // Seconds per jump frame
	JumpShape     float64 `yaml:"jump_shape"`     // Collision scale while airborne
	SlideDown     float64 `yaml:"slide_down"`     // Seconds going down
	SlideUp       float64 `yaml:"slide_up"`       // Seconds getting back up
	SlideDepth    float64 `yaml:"slide_depth"`    // Fraction of player height
	SlideFrame    float64 `yaml:"slide_frame"`    // Seconds per slide frame
	SlideShape    float64 `yaml:"slide_shape"`    // Collision height scale while sliding
	RunFrame      float64 `yaml:"run_frame"`      // Seconds per run frame
	RunFrames     int     `yaml:"run_frames"`     // Frames in the run cycle
	PoweredFrame  float64 `yaml:"powered_frame"`  // Seconds per frame while powered
	PoweredCycles int     `yaml:"powered_cycles"` // Run cycles until the power-up wears off
}

// DifficultyConfig toggles speed progression.
type DifficultyConfig struct {
	Enabled bool `yaml:"enabled"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI flag value to a preset. Unknown values map to "".
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
}

// StartSpeedForPreset returns the starting game speed for a preset.
func StartSpeedForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 5.0
	case DifficultyHard:
		return 3.0
	default:
		return 4.0
	}
}

// Validate reports fatal configuration errors. The lane table and every
// random-choice domain must be non-empty before a run can start.
func (c RunnerConfig) Validate() error {
	checks := []struct {
		ok  bool
		msg string
	}{
		{c.Spawner.Lanes > 0, "spawner.lanes must be positive"},
		{c.Spawner.LaneSpan > 0 && c.Spawner.LaneSpan <= 1, "spawner.lane_span must be in (0, 1]"},
		{c.Spawner.MinDelayFactor > 0 && c.Spawner.MinDelayFactor <= c.Spawner.MaxDelayFactor, "spawner delay factors must satisfy 0 < min <= max"},
		{c.Spawner.PowerUpRollMax >= 0 && c.Spawner.PowerUpRollHit >= 0 && c.Spawner.PowerUpRollHit <= c.Spawner.PowerUpRollMax, "spawner.powerup_roll_hit must be in [0, powerup_roll_max]"},
		{c.Spawner.PowerUpWait > 0, "spawner.powerup_wait must be positive"},
		{c.Spawner.SpinPeriod > 0, "spawner.spin_period must be positive"},
		{c.Speed.Floor > 0 && c.Speed.Default >= c.Speed.Floor, "speed must satisfy 0 < floor <= default"},
		{c.Speed.StepScore > 0, "speed.step_score must be positive"},
		{c.Scoring.RawPerMeter > 0, "scoring.raw_per_meter must be positive"},
		{c.Player.Width > 0 && c.Player.Height > 0, "player size must be positive"},
		{c.Player.OriginEpsilon > 0, "player.origin_epsilon must be positive"},
		{c.Timing.JumpPhase > 0 && c.Timing.SlideDown > 0 && c.Timing.SlideUp > 0, "jump and slide durations must be positive"},
		{c.Timing.RunFrames > 0 && c.Timing.RunFrame > 0, "run animation must have frames"},
		{c.Timing.PoweredCycles > 0 && c.Timing.PoweredFrame > 0, "powered run must have a positive duration"},
	}
	for _, chk := range checks {
		if !chk.ok {
			return fmt.Errorf("%w: %s", ErrInvalid, chk.msg)
		}
	}
	return nil
}
