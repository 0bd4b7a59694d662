package sakura

import (
	"testing"

	"github.com/vovakirdan/sakura-runner/internal/config"
)

func newScoring() (ScoreTracker, DifficultyController) {
	cfg := config.DefaultRunnerConfig()
	return NewScoreTracker(cfg.Scoring), NewDifficultyController(config.NewDifficultyManager(cfg))
}

func TestScoreSixTicks(t *testing.T) {
	tracker, _ := newScoring()
	s := NewSession(0, 4)
	s.Started = true

	for i := 0; i < 5; i++ {
		tracker.Tick(s)
	}
	if s.Score != 0 {
		t.Errorf("Score after 5 ticks = %d, expected 0", s.Score)
	}
	tracker.Tick(s)
	if s.RawScore != 6 || s.Score != 1 {
		t.Errorf("after 6 ticks raw=%d score=%d, expected 6 and 1", s.RawScore, s.Score)
	}
}

func TestScorePoweredTicks(t *testing.T) {
	tracker, _ := newScoring()
	s := NewSession(0, 4)
	s.Started = true

	s.PoweredUp = true
	for i := 0; i < 3; i++ {
		tracker.Tick(s)
	}
	s.PoweredUp = false
	for i := 0; i < 3; i++ {
		tracker.Tick(s)
	}

	if s.RawScore != 9 || s.Score != 1 {
		t.Errorf("raw=%d score=%d, expected 9 and 1", s.RawScore, s.Score)
	}
}

func TestScoreIncrements(t *testing.T) {
	tracker, _ := newScoring()
	s := NewSession(0, 4)
	s.Started = true

	for i := 0; i < 600; i++ {
		s.PoweredUp = i%7 < 3
		before := s.RawScore
		tracker.Tick(s)

		want := 1
		if s.PoweredUp {
			want = 2
		}
		if s.RawScore-before != want {
			t.Fatalf("tick %d added %d raw, expected %d", i, s.RawScore-before, want)
		}
		if s.Score != s.RawScore/6 {
			t.Fatalf("tick %d: score %d != raw %d / 6", i, s.Score, s.RawScore)
		}
	}
}

func TestScoreFrozen(t *testing.T) {
	tracker, _ := newScoring()

	notStarted := NewSession(0, 4)
	tracker.Tick(notStarted)
	if notStarted.RawScore != 0 {
		t.Error("score accrued before the session started")
	}

	dead := NewSession(0, 4)
	dead.Started = true
	dead.Dead = true
	tracker.Tick(dead)
	if dead.RawScore != 0 {
		t.Error("score accrued after death")
	}
}

func TestDifficultyControllerSpeed(t *testing.T) {
	_, diff := newScoring()

	tests := []struct {
		score    int
		expected float64
	}{
		{0, 4.0},
		{499, 4.0},
		{500, 3.0},
		{999, 3.0},
		{1000, 2.0},
		{1200, 2.0},
		{50000, 2.0},
	}

	for _, tc := range tests {
		s := NewSession(0, 4)
		s.Score = tc.score
		diff.Tick(s)
		if s.GameSpeed != tc.expected {
			t.Errorf("speed at score %d = %v, expected %v", tc.score, s.GameSpeed, tc.expected)
		}
	}
}

func TestDifficultyControllerFrozenWhenDead(t *testing.T) {
	_, diff := newScoring()
	s := NewSession(0, 4)
	s.Dead = true
	s.Score = 1200
	diff.Tick(s)
	if s.GameSpeed != 4 {
		t.Errorf("speed changed after death: %v", s.GameSpeed)
	}
}
