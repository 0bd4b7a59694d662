package sakura

import (
	"github.com/vovakirdan/sakura-runner/internal/config"
)

// ScoreTracker accrues raw score once per tick and derives the score.
type ScoreTracker struct {
	cfg config.ScoringConfig
}

// NewScoreTracker creates a tracker. RawPerMeter must be positive.
func NewScoreTracker(cfg config.ScoringConfig) ScoreTracker {
	return ScoreTracker{cfg: cfg}
}

// Tick adds one tick of score. Nothing accrues before start or after death;
// powered ticks use the powered rate.
func (t ScoreTracker) Tick(s *Session) {
	if !s.Started || s.Dead {
		return
	}
	if s.PoweredUp {
		s.RawScore += t.cfg.PoweredRate
	} else {
		s.RawScore += t.cfg.NormalRate
	}
	s.Score = s.RawScore / t.cfg.RawPerMeter
	s.Ticks++
}

// DifficultyController keeps the session's game speed in step with its score.
type DifficultyController struct {
	manager *config.DifficultyManager
}

// NewDifficultyController wraps a difficulty manager.
func NewDifficultyController(m *config.DifficultyManager) DifficultyController {
	return DifficultyController{manager: m}
}

// Tick recomputes the game speed from the current score.
func (d DifficultyController) Tick(s *Session) {
	if s.Dead {
		return
	}
	s.GameSpeed = d.manager.Speed(s.Score)
}
