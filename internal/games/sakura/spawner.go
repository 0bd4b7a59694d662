package sakura

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sakura-runner/internal/config"
	"github.com/vovakirdan/sakura-runner/internal/core"
)

// Spawner runs the spawn cycle on the scheduler: shuriken, wait, spike, wait,
// flower, wait, repeat. Each step reads the session when it runs, so a
// power-up collected mid-cycle suppresses the steps that follow it.
type Spawner struct {
	cfg     config.SpawnerConfig
	policy  *Policy
	lanes   LaneTable
	sched   *Scheduler
	world   *World
	session *Session
	logger  *log.Logger

	screenW float64
	screenH float64
	groundY float64

	timer   TimerID
	running bool
	cycles  int
}

// NewSpawner builds a spawner for a W x H playfield. It fails when the lane
// table would be empty.
func NewSpawner(cfg config.SpawnerConfig, screenW, screenH, groundY float64, policy *Policy, sched *Scheduler, world *World, session *Session, logger *log.Logger) (*Spawner, error) {
	lanes, err := NewLaneTable(cfg.Lanes, cfg.LaneSpan, screenH)
	if err != nil {
		return nil, err
	}
	return &Spawner{
		cfg:     cfg,
		policy:  policy,
		lanes:   lanes,
		sched:   sched,
		world:   world,
		session: session,
		logger:  logger,
		screenW: screenW,
		screenH: screenH,
		groundY: groundY,
	}, nil
}

// Lanes returns the lane centers in use.
func (sp *Spawner) Lanes() LaneTable {
	return sp.lanes
}

// Cycles returns how many full spawn cycles have completed.
func (sp *Spawner) Cycles() int {
	return sp.cycles
}

// Running reports whether the cycle is active.
func (sp *Spawner) Running() bool {
	return sp.running
}

// Start begins the cycle on the next scheduler advance.
func (sp *Spawner) Start() {
	if sp.running {
		return
	}
	sp.running = true
	sp.next(0, sp.shurikenStep)
}

// Stop cancels the pending step. Entities already spawned are untouched.
func (sp *Spawner) Stop() {
	sp.running = false
	sp.sched.Cancel(sp.timer)
	sp.timer = 0
}

func (sp *Spawner) next(delay float64, step func()) {
	sp.timer = sp.sched.After(delay, func() {
		sp.timer = 0
		if !sp.running || sp.session.Dead {
			sp.running = false
			return
		}
		step()
	})
}

func (sp *Spawner) delay() float64 {
	return sp.policy.Delay(sp.session.GameSpeed, sp.cfg.MinDelayFactor, sp.cfg.MaxDelayFactor)
}

func (sp *Spawner) shurikenStep() {
	if sp.policy.Indicator() == 1 && !sp.session.PoweredUp {
		sp.SpawnShuriken(sp.policy.Lane(sp.lanes))
	}
	sp.next(sp.delay(), sp.spikeStep)
}

func (sp *Spawner) spikeStep() {
	if sp.policy.Indicator() == 1 && !sp.session.PoweredUp {
		sp.SpawnSpike()
	}
	sp.next(sp.delay(), sp.flowerStep)
}

func (sp *Spawner) flowerStep() {
	if sp.policy.Roll(sp.cfg.PowerUpRollMax) == sp.cfg.PowerUpRollHit && !sp.session.PoweredUp {
		sp.SpawnFlower(sp.policy.Lane(sp.lanes))
	}
	sp.cycles++
	sp.next(sp.cfg.PowerUpWait, sp.shurikenStep)
}

// SpawnShuriken spawns a spinning shuriken centered on lane y.
func (sp *Spawner) SpawnShuriken(y float64) Entity {
	size := sp.screenH * sp.cfg.ShurikenSize
	e := sp.crossing(KindShuriken, CategoryObstacle, core.Vec{X: size, Y: size}, y-size/2)
	e.Motion.SpinPeriod = sp.cfg.SpinPeriod
	return sp.spawn(e)
}

// SpawnSpike spawns a spike resting on the ground.
func (sp *Spawner) SpawnSpike() Entity {
	size := core.Vec{X: sp.screenW * sp.cfg.SpikeWidth, Y: sp.screenH * sp.cfg.SpikeHeight}
	return sp.spawn(sp.crossing(KindSpike, CategoryObstacle, size, sp.groundY-size.Y))
}

// SpawnFlower spawns a sakura flower centered on lane y.
func (sp *Spawner) SpawnFlower(y float64) Entity {
	size := sp.screenH * sp.cfg.FlowerSize
	return sp.spawn(sp.crossing(KindFlower, CategoryPowerUp, core.Vec{X: size, Y: size}, y-size/2))
}

// crossing builds an entity that enters at the right edge and leaves past
// the left edge in GameSpeed seconds, sampled now.
func (sp *Spawner) crossing(kind Kind, cat Category, size core.Vec, top float64) Entity {
	return Entity{
		Kind:     kind,
		Category: cat,
		Size:     size,
		Shape:    FullShape,
		Motion: Motion{
			Origin: core.Vec{X: sp.screenW, Y: top},
			Path: []Segment{
				{By: core.Vec{X: -(sp.screenW + size.X)}, Duration: sp.session.GameSpeed},
			},
		},
	}
}

func (sp *Spawner) spawn(e Entity) Entity {
	e = sp.world.Spawn(e)
	sp.logger.Debug("spawned", "kind", e.Kind, "entity", e.ID, "y", e.Motion.Origin.Y, "speed", sp.session.GameSpeed)
	return e
}
