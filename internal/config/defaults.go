package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the built-in runner configuration.
// It mirrors defaults/runner.yaml and is used when the embedded file fails to parse.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Speed: SpeedConfig{
			Default:   4.0,
			Floor:     2.0,
			StepScore: 500,
			CapScore:  1000,
		},
		Scoring: ScoringConfig{
			RawPerMeter: 6,
			NormalRate:  1,
			PoweredRate: 2,
		},
		Spawner: SpawnerConfig{
			Lanes:          5,
			LaneSpan:       2.0 / 3.0,
			MinDelayFactor: 2.0 / 5.0,
			MaxDelayFactor: 4.0 / 5.0,
			PowerUpRollMax: 5,
			PowerUpRollHit: 1,
			PowerUpWait:    0.5,
			SpinPeriod:     1.0,
			ShurikenSize:   1.0 / 10,
			FlowerSize:     1.0 / 10,
			SpikeWidth:     1.0 / 15,
			SpikeHeight:    1.0 / 15,
		},
		Player: PlayerConfig{
			X:             8,
			Width:         4,
			Height:        5,
			GroundOffset:  2,
			OriginEpsilon: 1.0,
		},
		Timing: TimingConfig{
			JumpPhase:     0.77,
			JumpHeight:    0.5,
			JumpFrame:     0.07,
			JumpShape:     2.0 / 3.0,
			SlideDown:     1.0,
			SlideUp:       0.5,
			SlideDepth:    0.25,
			SlideFrame:    0.05,
			SlideShape:    0.4,
			RunFrame:      0.05,
			RunFrames:     20,
			PoweredFrame:  0.02,
			PoweredCycles: 25,
		},
		Difficulty: DifficultyConfig{
			Enabled: true,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}
