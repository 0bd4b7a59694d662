package sakura

import (
	"testing"

	"github.com/vovakirdan/sakura-runner/internal/core"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Category
		expected Outcome
	}{
		{"obstacle hits player", CategoryObstacle, CategoryPlayer, OutcomeHazardHit},
		{"player hits obstacle", CategoryPlayer, CategoryObstacle, OutcomeHazardHit},
		{"player picks flower", CategoryPlayer, CategoryPowerUp, OutcomePowerUpPickup},
		{"flower meets player", CategoryPowerUp, CategoryPlayer, OutcomePowerUpPickup},
		{"obstacle meets obstacle", CategoryObstacle, CategoryObstacle, OutcomeNone},
		{"obstacle meets flower", CategoryObstacle, CategoryPowerUp, OutcomeNone},
		{"powered runner meets obstacle", CategoryNone, CategoryObstacle, OutcomeNone},
		{"powered runner meets flower", CategoryPowerUp, CategoryNone, OutcomeNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.a, tc.b); got != tc.expected {
				t.Errorf("Classify(%v, %v) = %v, expected %v", tc.a, tc.b, got, tc.expected)
			}
		})
	}
}

func TestTouchingSweep(t *testing.T) {
	player := Entity{
		Kind:     KindPlayer,
		Category: CategoryPlayer,
		Size:     core.Vec{X: 4, Y: 5},
		Shape:    FullShape,
		Motion:   Motion{Origin: core.Vec{X: 8, Y: 17}},
	}
	fast := func(y float64) Entity {
		return Entity{
			Kind:     KindShuriken,
			Category: CategoryObstacle,
			Size:     core.Vec{X: 1, Y: 1},
			Shape:    FullShape,
			Motion: Motion{
				Origin: core.Vec{X: 30, Y: y},
				Path:   []Segment{{By: core.Vec{X: -40}, Duration: 1}},
			},
		}
	}

	// Between 0.4 and 0.6 the shuriken jumps from x=14 to x=6, clean over
	// the player at 8..12; neither sample overlaps.
	low := fast(18)
	if low.Bounds(0.4).Intersects(player.Bounds(0.4)) || low.Bounds(0.6).Intersects(player.Bounds(0.6)) {
		t.Fatal("test setup: samples should not overlap")
	}
	if !Touching(player, low, 0.4, 0.6) {
		t.Error("swept test missed a shuriken crossing the player between ticks")
	}
	if Touching(player, fast(5), 0.4, 0.6) {
		t.Error("shuriken above the player should not touch")
	}
	if Touching(player, low, 0, 0.2) {
		t.Error("shuriken still far right should not touch")
	}
}

func TestTouchingRotatedShuriken(t *testing.T) {
	player := Entity{
		Kind:     KindPlayer,
		Category: CategoryPlayer,
		Size:     core.Vec{X: 4, Y: 5},
		Shape:    FullShape,
		Motion:   Motion{Origin: core.Vec{X: 8, Y: 17}},
	}
	// A 2.4 cell shuriken turns 45 degrees at t=0.125.
	spinning := func(center core.Vec) Entity {
		return Entity{
			Kind:     KindShuriken,
			Category: CategoryObstacle,
			Size:     core.Vec{X: 2.4, Y: 2.4},
			Shape:    FullShape,
			Motion:   Motion{Origin: center.Sub(core.Vec{X: 1.2, Y: 1.2}), SpinPeriod: 1},
		}
	}
	const at = 0.125

	clear := spinning(core.Vec{X: 13.2, Y: 15.8})
	if !clear.HitBox(at).Intersects(player.HitBox(at)) {
		t.Fatal("test setup: rotated bounds should overlap the player's corner")
	}
	if Touching(player, clear, at, at) {
		t.Error("diagonal shuriken clear of the player's corner reported touching")
	}

	hit := spinning(core.Vec{X: 12.5, Y: 17.5})
	if !Touching(player, hit, at, at) {
		t.Error("diagonal shuriken over the player's corner not reported touching")
	}

	// Sampled at 0 and 0.25 the square is axis aligned and clear; it only
	// reaches the corner while turning through 45 degrees.
	turning := spinning(core.Vec{X: 13.25, Y: 16.7})
	if turning.HitBox(0).Intersects(player.HitBox(0)) || turning.HitBox(0.25).Intersects(player.HitBox(0.25)) {
		t.Fatal("test setup: axis aligned samples should not overlap")
	}
	if !Touching(player, turning, 0, 0.25) {
		t.Error("corner swept through the player mid-turn not reported touching")
	}
}

type memScores struct {
	high  int
	saved []int
	err   error
}

func (m *memScores) HighScore() (int, error) {
	return m.high, m.err
}

func (m *memScores) SaveHighScore(score int) error {
	m.saved = append(m.saved, score)
	m.high = score
	return m.err
}

func TestHazardHitUpdatesHighScore(t *testing.T) {
	scores := &memScores{high: 30}
	g := newTestGame(t, WithHighScores(scores))
	g.session.RawScore = 300
	g.session.Score = 50

	hazard := g.spawner.SpawnSpike()
	out := g.resolver.Resolve(g.player.Player(), hazard)

	if out != OutcomeHazardHit {
		t.Fatalf("Resolve() = %v, expected hazard hit", out)
	}
	if !g.session.Dead || g.player.Alive() {
		t.Error("hazard should kill the player and end the session")
	}
	if g.session.HighScore != 50 {
		t.Errorf("HighScore = %d, expected 50", g.session.HighScore)
	}
	if len(scores.saved) != 1 || scores.saved[0] != 50 {
		t.Errorf("saved high scores = %v, expected [50]", scores.saved)
	}
	if len(g.events) != 2 || g.events[0] != (core.Event{Kind: core.EventHighScore, Score: 50}) ||
		g.events[1] != (core.Event{Kind: core.EventGameOver, Score: 50}) {
		t.Errorf("events = %v, expected high score then game over at 50", g.events)
	}
	if g.world.Len() != 0 || g.sched.Pending() != 0 {
		t.Errorf("teardown left %d entities and %d timers", g.world.Len(), g.sched.Pending())
	}

	// Terminal: a second contact has no effect.
	if out := g.resolver.Resolve(hazard, Entity{Kind: KindPlayer, Category: CategoryPlayer}); out != OutcomeNone {
		t.Errorf("Resolve() after death = %v, expected none", out)
	}
}

func TestHazardHitBelowHighScore(t *testing.T) {
	scores := &memScores{high: 80}
	g := newTestGame(t, WithHighScores(scores))
	g.session.Score = 50

	g.resolver.Resolve(g.spawner.SpawnSpike(), g.player.Player())

	if g.session.HighScore != 80 {
		t.Errorf("HighScore = %d, expected 80", g.session.HighScore)
	}
	if len(scores.saved) != 0 {
		t.Errorf("high score written without a new best: %v", scores.saved)
	}
	if len(g.events) != 1 || g.events[0].Kind != core.EventGameOver || g.events[0].Score != 50 {
		t.Errorf("events = %v, expected game over at 50", g.events)
	}
}

func TestPowerUpPickup(t *testing.T) {
	g := newTestGame(t)
	flower := g.spawner.SpawnFlower(g.spawner.Lanes()[0])

	out := g.resolver.Resolve(g.player.Player(), flower)

	if out != OutcomePowerUpPickup {
		t.Fatalf("Resolve() = %v, expected power-up pickup", out)
	}
	if !g.session.PoweredUp || g.session.Label != PowerLabel || g.session.PowerUps != 1 {
		t.Errorf("session after pickup = %+v", g.session)
	}
	if g.player.State() != StatePoweredRunning {
		t.Errorf("player state = %v, expected powered", g.player.State())
	}
	if _, ok := g.world.Get(flower.ID); ok {
		t.Error("collected flower should be despawned")
	}
	if !(core.StepResult{Events: g.events}).Has(core.EventPowerUp) {
		t.Errorf("events = %v, expected a power-up", g.events)
	}
}

func TestResolveIgnoresOtherPairs(t *testing.T) {
	g := newTestGame(t)
	a := g.spawner.SpawnShuriken(g.spawner.Lanes()[2])
	b := g.spawner.SpawnFlower(g.spawner.Lanes()[2])

	if out := g.resolver.Resolve(a, b); out != OutcomeNone {
		t.Errorf("Resolve(obstacle, flower) = %v, expected none", out)
	}
	if g.session.Dead || g.session.PoweredUp || g.world.Len() != 2 {
		t.Error("an ignored pair changed the session")
	}
}
