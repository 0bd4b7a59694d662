package sakura

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sakura-runner/internal/core"
)

// Outcome is the effect of a contact between two entities.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeHazardHit
	OutcomePowerUpPickup
)

// String returns the outcome name used in logs.
func (o Outcome) String() string {
	switch o {
	case OutcomeHazardHit:
		return "hazard_hit"
	case OutcomePowerUpPickup:
		return "powerup_pickup"
	default:
		return "none"
	}
}

// PowerLabel is the banner shown while the power-up is active.
const PowerLabel = "Sakura Power!"

// Classify returns the outcome of a contact between two categories. The lower
// category is the struck body; only contacts with the player have an effect.
func Classify(a, b Category) Outcome {
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo == CategoryNone || hi != CategoryPlayer {
		return OutcomeNone
	}
	switch lo {
	case CategoryObstacle:
		return OutcomeHazardHit
	case CategoryPowerUp:
		return OutcomePowerUpPickup
	default:
		return OutcomeNone
	}
}

// Resolver detects contacts between the player and the world and applies
// their effects to the session.
type Resolver struct {
	session *Session
	player  *PlayerMachine
	world   *World
	scores  HighScores
	logger  *log.Logger

	emit     func(core.Event)
	teardown func()
}

// NewResolver wires a resolver to the live session components. emit receives
// every event the resolver raises; teardown runs once on a hazard hit.
func NewResolver(s *Session, pm *PlayerMachine, w *World, scores HighScores, logger *log.Logger, emit func(core.Event), teardown func()) *Resolver {
	return &Resolver{
		session:  s,
		player:   pm,
		world:    w,
		scores:   scores,
		logger:   logger,
		emit:     emit,
		teardown: teardown,
	}
}

// Detect tests the player against every live entity over the interval
// [prev, now]. Each pair is checked with a swept test so entities crossing
// the player between two ticks still register. Stops at the first hazard.
func (r *Resolver) Detect(prev, now float64) {
	if r.session.Dead || !r.player.Alive() {
		return
	}
	for _, e := range r.world.Entities() {
		if r.session.Dead || !r.player.Alive() {
			return
		}
		p := r.player.Player()
		if !Touching(p, e, prev, now) {
			continue
		}
		r.Resolve(p, e)
	}
}

// Touching reports whether a and b overlap at any moment in [prev, now].
// The swept boxes of both entities are tested first; pairs that pass are
// checked against their rotated outlines along the step.
func Touching(a, b Entity, prev, now float64) bool {
	static := a.SweepHitBox(prev, now)
	mover := b.SweepHitBox(prev, now)
	delta := relativeMove(a, b, prev, now)
	if !static.SweepIntersects(mover, delta) {
		return false
	}

	steps := outlineSteps(a, b, prev, now)
	for i := 0; i <= steps; i++ {
		t := prev
		if steps > 0 {
			t = prev + (now-prev)*float64(i)/float64(steps)
		}
		if a.Outline(t).IsIntersecting(b.Outline(t)) {
			return true
		}
	}
	return false
}

// maxOutlineSteps bounds the outline samples taken for one pair in one step.
const maxOutlineSteps = 64

func relativeMove(a, b Entity, prev, now float64) core.Vec {
	da := a.HitBox(now).Center().Sub(a.HitBox(prev).Center())
	db := b.HitBox(now).Center().Sub(b.HitBox(prev).Center())
	return db.Sub(da)
}

// outlineSteps returns how many intervals [prev, now] is cut into so that
// no outline point moves more than half the thinner shape between samples.
func outlineSteps(a, b Entity, prev, now float64) int {
	if now <= prev {
		return 0
	}
	_, aw, ah := a.hitShape(prev)
	_, bw, bh := b.hitShape(prev)
	limit := math.Min(math.Min(aw, ah), math.Min(bw, bh)) / 2
	if limit <= 0 {
		return maxOutlineSteps
	}

	d := relativeMove(a, b, prev, now)
	travel := math.Hypot(d.X, d.Y)
	travel += spinTravel(a, aw, ah, prev, now) + spinTravel(b, bw, bh, prev, now)
	steps := int(math.Ceil(travel / limit))
	return min(max(steps, 1), maxOutlineSteps)
}

// spinTravel is the arc a corner of a spinning w x h shape covers in [t0, t1].
func spinTravel(e Entity, w, h, t0, t1 float64) float64 {
	if e.Motion.SpinPeriod <= 0 {
		return 0
	}
	turn := (t1 - t0) / e.Motion.SpinPeriod
	return 2 * math.Pi * turn * math.Hypot(w, h) / 2
}

// Resolve applies the effect of a contact between a and b and returns it.
// It produces at most one outcome per call.
func (r *Resolver) Resolve(a, b Entity) Outcome {
	if r.session.Dead {
		return OutcomeNone
	}
	out := Classify(a.Category, b.Category)
	other := b
	if b.Kind == KindPlayer {
		other = a
	}
	switch out {
	case OutcomeHazardHit:
		r.hazardHit(other)
	case OutcomePowerUpPickup:
		r.pickup(other)
	}
	return out
}

func (r *Resolver) hazardHit(hazard Entity) {
	s := r.session
	r.player.Kill()
	s.Dead = true
	s.PoweredUp = false
	s.Label = ""

	r.logger.Info("hazard hit", "kind", hazard.Kind, "score", s.Score, "high", s.HighScore)
	if s.Score > s.HighScore {
		s.HighScore = s.Score
		if r.scores != nil {
			if err := r.scores.SaveHighScore(s.Score); err != nil {
				r.logger.Warn("saving high score failed", "err", err)
			}
		}
		r.emit(core.Event{Kind: core.EventHighScore, Score: s.Score})
	}
	r.emit(core.Event{Kind: core.EventGameOver, Score: s.Score})
	if r.teardown != nil {
		r.teardown()
	}
}

func (r *Resolver) pickup(flower Entity) {
	s := r.session
	if s.PoweredUp {
		return
	}
	r.world.Despawn(flower.ID)
	s.PoweredUp = true
	s.Label = PowerLabel
	s.PowerUps++
	r.player.PowerUp()

	r.logger.Debug("power-up collected", "entity", flower.ID, "count", s.PowerUps)
	r.emit(core.Event{Kind: core.EventPowerUp})
}
