package sakura

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sakura-runner/internal/config"
)

func newTestPlayer(t *testing.T) (*PlayerMachine, *Scheduler) {
	t.Helper()
	sched := NewScheduler()
	pm := NewPlayerMachine(config.DefaultRunnerConfig(), 24, 22, sched, &idSource{}, log.New(io.Discard))
	pm.Start()
	return pm, sched
}

func TestPlayerStartsRunningAtOrigin(t *testing.T) {
	pm, _ := newTestPlayer(t)

	if pm.State() != StateRunning {
		t.Errorf("State() = %v, expected running", pm.State())
	}
	if !pm.AtOrigin() {
		t.Error("player should start at its origin")
	}
	p := pm.Player()
	if p.Category != CategoryPlayer || p.Kind != KindPlayer {
		t.Errorf("player entity = %v/%v", p.Kind, p.Category)
	}
	if got := p.Bounds(0).Bottom(); got != 22 {
		t.Errorf("player bottom = %v, expected the ground at 22", got)
	}
}

func TestPlayerJump(t *testing.T) {
	pm, sched := newTestPlayer(t)
	before := pm.Player().ID

	if !pm.Jump(false) {
		t.Fatal("Jump() from running at origin should be accepted")
	}
	if pm.State() != StateJumping {
		t.Errorf("State() = %v, expected jumping", pm.State())
	}
	if pm.Player().ID == before {
		t.Error("jump should replace the player entity")
	}

	sched.Advance(0.77)
	if y := pm.Player().Position(sched.Now()).Y; y != pm.Origin().Y-12 {
		t.Errorf("apex y = %v, expected %v", y, pm.Origin().Y-12)
	}

	sched.Advance(0.7)
	if pm.State() != StateJumping {
		t.Errorf("State() = %v mid descent, expected jumping", pm.State())
	}
	sched.Advance(0.1)
	if pm.State() != StateRunning {
		t.Errorf("State() = %v after landing, expected running", pm.State())
	}
	if !pm.AtOrigin() {
		t.Error("player should be back at its origin after landing")
	}
}

func TestPlayerSlide(t *testing.T) {
	pm, sched := newTestPlayer(t)

	if !pm.Slide(false) {
		t.Fatal("Slide() from running at origin should be accepted")
	}
	hit := pm.Player().HitBox(sched.Now())
	if hit.H != 2 {
		t.Errorf("sliding hit box height = %v, expected 2", hit.H)
	}

	sched.Advance(1.4)
	if pm.State() != StateSliding {
		t.Errorf("State() = %v, expected sliding", pm.State())
	}
	sched.Advance(0.2)
	if pm.State() != StateRunning {
		t.Errorf("State() = %v after the slide, expected running", pm.State())
	}
}

func TestPlayerGuard(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(pm *PlayerMachine)
		powered bool
	}{
		{"while jumping", func(pm *PlayerMachine) { pm.Jump(false) }, false},
		{"while sliding", func(pm *PlayerMachine) { pm.Slide(false) }, false},
		{"while powered", func(pm *PlayerMachine) { pm.PowerUp() }, true},
		{"session powered", func(pm *PlayerMachine) {}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pm, _ := newTestPlayer(t)
			tc.setup(pm)
			state := pm.State()
			id := pm.Player().ID

			if pm.Jump(tc.powered) || pm.Slide(tc.powered) {
				t.Error("intent should be ignored")
			}
			if pm.State() != state || pm.Player().ID != id {
				t.Error("ignored intent changed the player")
			}
		})
	}
}

func TestPlayerPowerUp(t *testing.T) {
	pm, sched := newTestPlayer(t)
	downs := 0
	pm.OnPowerDown(func() { downs++ })

	pm.Jump(false)
	sched.Advance(0.3)
	pm.PowerUp()

	if pm.State() != StatePoweredRunning {
		t.Fatalf("State() = %v, expected powered", pm.State())
	}
	if pm.Player().Contactable() {
		t.Error("powered player should not take part in contacts")
	}
	if !pm.AtOrigin() {
		t.Error("powered player should run at its origin")
	}

	// The jump's landing timer was discarded with the jumping entity.
	sched.Advance(9.5)
	if pm.State() != StatePoweredRunning || downs != 0 {
		t.Errorf("power-up ended early: state %v, downs %d", pm.State(), downs)
	}
	sched.Advance(0.6)
	if pm.State() != StateRunning {
		t.Errorf("State() = %v after the power-up, expected running", pm.State())
	}
	if downs != 1 {
		t.Errorf("power-down callback ran %d times, expected 1", downs)
	}
}

func TestPlayerKill(t *testing.T) {
	pm, sched := newTestPlayer(t)
	pm.Slide(false)
	pm.Kill()

	if pm.State() != StateDead || pm.Alive() {
		t.Errorf("after Kill: state %v, alive %v", pm.State(), pm.Alive())
	}
	if sched.Pending() != 0 {
		t.Errorf("Kill left %d pending timers", sched.Pending())
	}
	if pm.Jump(false) || pm.Slide(false) {
		t.Error("dead player accepted an intent")
	}
	pm.PowerUp()
	if pm.State() != StateDead {
		t.Error("dead player was powered up")
	}
}

func TestPlayerMissingEntityPanics(t *testing.T) {
	pm := NewPlayerMachine(config.DefaultRunnerConfig(), 24, 22, NewScheduler(), &idSource{}, log.New(io.Discard))
	defer func() {
		if recover() == nil {
			t.Error("Jump() without a live player should panic")
		}
	}()
	pm.Jump(false)
}
