package sakura

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sakura-runner/internal/config"
	"github.com/vovakirdan/sakura-runner/internal/core"
)

// PlayerState is the player's current action.
type PlayerState int

const (
	StateRunning PlayerState = iota
	StateJumping
	StateSliding
	StatePoweredRunning
	StateDead
)

// String returns the state name used in logs and the HUD.
func (s PlayerState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateJumping:
		return "jumping"
	case StateSliding:
		return "sliding"
	case StatePoweredRunning:
		return "powered"
	case StateDead:
		return "dead"
	default:
		return "unknown"
	}
}

// PlayerMachine owns the player's action state and the single live player
// entity. Every transition replaces the entity outright; the old one and its
// pending timer are discarded.
type PlayerMachine struct {
	timing config.TimingConfig
	eps    float64
	sched  *Scheduler
	ids    *idSource
	frames FrameSet
	logger *log.Logger

	origin  core.Vec // Top-left of the player at rest
	size    core.Vec
	jumpBy  float64
	slideBy float64

	state  PlayerState
	player *Entity
	timer  TimerID

	onPowerDown func()
}

// NewPlayerMachine creates a machine for a playfield of the given height.
// The player rests with its bottom on groundY. Call Start to spawn it.
func NewPlayerMachine(cfg config.RunnerConfig, screenH, groundY float64, sched *Scheduler, ids *idSource, logger *log.Logger) *PlayerMachine {
	size := core.Vec{X: float64(cfg.Player.Width), Y: float64(cfg.Player.Height)}
	return &PlayerMachine{
		timing:  cfg.Timing,
		eps:     cfg.Player.OriginEpsilon,
		sched:   sched,
		ids:     ids,
		frames:  DefaultFrameSet(cfg.Timing.RunFrames),
		logger:  logger,
		origin:  core.Vec{X: float64(cfg.Player.X), Y: groundY - size.Y},
		size:    size,
		jumpBy:  screenH * cfg.Timing.JumpHeight,
		slideBy: size.Y * cfg.Timing.SlideDepth,
	}
}

// OnPowerDown registers the callback run when the powered run wears off,
// before the running player is respawned.
func (m *PlayerMachine) OnPowerDown(fn func()) {
	m.onPowerDown = fn
}

// Start spawns the running player at the origin.
func (m *PlayerMachine) Start() {
	m.state = StateRunning
	m.toRunning()
}

// State returns the current action state.
func (m *PlayerMachine) State() PlayerState {
	return m.state
}

// Origin returns the player's canonical rest position.
func (m *PlayerMachine) Origin() core.Vec {
	return m.origin
}

// Alive reports whether a player entity is live.
func (m *PlayerMachine) Alive() bool {
	return m.player != nil
}

// Player returns the live player entity. It panics when there is none:
// after Start the machine always holds exactly one player until death.
func (m *PlayerMachine) Player() Entity {
	return *m.mustPlayer()
}

func (m *PlayerMachine) mustPlayer() *Entity {
	if m.player == nil {
		panic("sakura: player transition requested without a live player entity")
	}
	return m.player
}

// AtOrigin reports whether the player currently stands at its rest position.
func (m *PlayerMachine) AtOrigin() bool {
	p := m.mustPlayer()
	return p.Position(m.sched.Now()).Near(m.origin, m.eps)
}

// canAct is the shared jump/slide guard.
func (m *PlayerMachine) canAct(poweredUp bool) bool {
	if m.state == StateDead {
		return false
	}
	m.mustPlayer()
	return m.state == StateRunning && !poweredUp && m.AtOrigin()
}

// Jump starts a jump if the guard allows it. Returns whether it was accepted.
func (m *PlayerMachine) Jump(poweredUp bool) bool {
	if !m.canAct(poweredUp) {
		return false
	}
	t := m.timing
	m.replace(StateJumping, Entity{
		Category: CategoryPlayer,
		Shape:    Shape{ScaleW: t.JumpShape, ScaleH: t.JumpShape, Anchor: AnchorCenter},
		Motion: Motion{
			Origin: m.player.Position(m.sched.Now()),
			Path: []Segment{
				{By: core.Vec{Y: -m.jumpBy}, Duration: t.JumpPhase},
				{By: core.Vec{Y: m.jumpBy}, Duration: t.JumpPhase},
			},
		},
		Anim: Animation{Clips: []Clip{
			{Frames: m.frames.JumpUp, TimePerFrame: t.JumpFrame, Repeat: 1},
			{Frames: m.frames.JumpDown, TimePerFrame: t.JumpFrame, Repeat: 1},
		}},
	})
	m.timer = m.sched.After(2*t.JumpPhase, m.toRunning)
	return true
}

// Slide starts a slide if the guard allows it. Returns whether it was accepted.
func (m *PlayerMachine) Slide(poweredUp bool) bool {
	if !m.canAct(poweredUp) {
		return false
	}
	t := m.timing
	m.replace(StateSliding, Entity{
		Category: CategoryPlayer,
		Shape:    Shape{ScaleW: 1, ScaleH: t.SlideShape, Anchor: AnchorBottom},
		Motion: Motion{
			Origin: m.player.Position(m.sched.Now()),
			Path: []Segment{
				{By: core.Vec{Y: m.slideBy}, Duration: t.SlideDown},
				{By: core.Vec{Y: -m.slideBy}, Duration: t.SlideUp},
			},
		},
		Anim: Animation{Clips: []Clip{
			{Frames: m.frames.Sliding, TimePerFrame: t.SlideFrame, Repeat: 1},
			{Frames: m.frames.SlideBack, TimePerFrame: t.SlideFrame, Repeat: 1},
		}},
	})
	m.timer = m.sched.After(t.SlideDown+t.SlideUp, m.toRunning)
	return true
}

// PowerUp switches to the powered run from any live state. The powered
// runner has no contact category, so hazards pass through it.
func (m *PlayerMachine) PowerUp() {
	if m.state == StateDead {
		return
	}
	m.mustPlayer()
	t := m.timing
	clip := Clip{Frames: m.frames.PoweredRun, TimePerFrame: t.PoweredFrame, Repeat: t.PoweredCycles}
	m.replace(StatePoweredRunning, Entity{
		Category: CategoryNone,
		Shape:    FullShape,
		Motion:   Motion{Origin: m.origin},
		Anim:     Animation{Clips: []Clip{clip}},
	})
	m.timer = m.sched.After(clip.Duration(), m.powerDown)
}

func (m *PlayerMachine) powerDown() {
	if m.onPowerDown != nil {
		m.onPowerDown()
	}
	m.toRunning()
}

// Kill removes the player entity with all its pending actions. Terminal.
func (m *PlayerMachine) Kill() {
	if m.state == StateDead {
		return
	}
	m.sched.Cancel(m.timer)
	m.timer = 0
	m.player = nil
	m.state = StateDead
	m.logger.Debug("player removed", "state", m.state)
}

// Teardown drops the player without a state change log, for scene reset.
func (m *PlayerMachine) Teardown() {
	m.sched.Cancel(m.timer)
	m.timer = 0
	m.player = nil
	m.state = StateDead
}

func (m *PlayerMachine) toRunning() {
	if m.state == StateDead {
		return
	}
	m.replace(StateRunning, Entity{
		Category: CategoryPlayer,
		Shape:    FullShape,
		Motion:   Motion{Origin: m.origin},
		Anim: Animation{Clips: []Clip{
			{Frames: m.frames.Running, TimePerFrame: m.timing.RunFrame},
		}},
	})
}

// replace discards the current player and installs next as the live one.
func (m *PlayerMachine) replace(state PlayerState, next Entity) {
	now := m.sched.Now()
	m.sched.Cancel(m.timer)
	m.timer = 0

	next.ID = m.ids.next()
	next.Kind = KindPlayer
	next.Size = m.size
	next.Motion.Start = now
	next.Anim.Start = now

	from := m.state
	m.player = &next
	m.state = state
	m.logger.Debug("player transition", "from", from, "to", state, "entity", next.ID)
}
