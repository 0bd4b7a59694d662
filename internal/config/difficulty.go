package config

import "math"

// DifficultyManager derives game speed from the current score.
type DifficultyManager struct {
	speed   SpeedConfig
	enabled bool
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg RunnerConfig) *DifficultyManager {
	return &DifficultyManager{
		speed:   cfg.Speed,
		enabled: cfg.Difficulty.Enabled,
	}
}

// IsEnabled returns whether speed progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.enabled
}

// Speed returns the game speed for a score: Default minus one per StepScore
// points (integer steps) up to CapScore, and Floor beyond it. The result never
// drops below Floor and never increases with score.
func (d *DifficultyManager) Speed(score int) float64 {
	if !d.enabled {
		return d.speed.Default
	}
	if score > d.speed.CapScore {
		return d.speed.Floor
	}
	steps := 0
	if score > 0 {
		steps = score / d.speed.StepScore
	}
	return math.Max(d.speed.Floor, d.speed.Default-float64(steps))
}
