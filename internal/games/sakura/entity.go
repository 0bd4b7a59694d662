package sakura

import (
	"math"

	"github.com/solarlune/resolv"

	"github.com/vovakirdan/sakura-runner/internal/core"
)

// Category is the contact tag of an entity. Lower values are treated as the
// struck body when two categories meet.
type Category uint32

const (
	CategoryNone     Category = 0
	CategoryObstacle Category = 1 << 1 // shuriken and spikes
	CategoryPowerUp  Category = 1 << 2 // sakura flower
	CategoryPlayer   Category = 1 << 3
)

// String returns the category name used in logs.
func (c Category) String() string {
	switch c {
	case CategoryNone:
		return "none"
	case CategoryObstacle:
		return "obstacle"
	case CategoryPowerUp:
		return "powerup"
	case CategoryPlayer:
		return "player"
	default:
		return "unknown"
	}
}

// Kind distinguishes entities sharing a category.
type Kind int

const (
	KindPlayer Kind = iota
	KindShuriken
	KindSpike
	KindFlower
)

// String returns the kind name used in logs.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindShuriken:
		return "shuriken"
	case KindSpike:
		return "spike"
	case KindFlower:
		return "flower"
	default:
		return "unknown"
	}
}

// EntityID uniquely identifies an entity within a session.
type EntityID uint64

type idSource struct {
	last EntityID
}

func (s *idSource) next() EntityID {
	s.last++
	return s.last
}

// Segment is one leg of a motion: translate by By over Duration seconds.
type Segment struct {
	By       core.Vec
	Duration float64
}

// Motion describes where an entity is at any logical time: a chain of linear
// translations starting at Start from Origin, plus an optional spin.
type Motion struct {
	Origin     core.Vec // Top-left position at Start
	Start      float64
	Path       []Segment
	SpinPeriod float64 // Seconds per full turn, 0 for none
}

// Duration returns the total length of the path.
func (m Motion) Duration() float64 {
	var d float64
	for _, seg := range m.Path {
		d += seg.Duration
	}
	return d
}

// At returns the top-left position at time t. Times before Start clamp to
// the origin, times after the end clamp to the final position.
func (m Motion) At(t float64) core.Vec {
	pos := m.Origin
	elapsed := t - m.Start
	for _, seg := range m.Path {
		if elapsed <= 0 {
			break
		}
		if seg.Duration <= 0 || elapsed >= seg.Duration {
			pos = pos.Add(seg.By)
			elapsed -= seg.Duration
			continue
		}
		pos = pos.Add(seg.By.Scale(elapsed / seg.Duration))
		break
	}
	return pos
}

// Angle returns the rotation in radians at time t.
func (m Motion) Angle(t float64) float64 {
	if m.SpinPeriod <= 0 || t <= m.Start {
		return 0
	}
	turns := (t - m.Start) / m.SpinPeriod
	return 2 * math.Pi * (turns - math.Floor(turns))
}

// Anchor positions a scaled collision shape inside the nominal bounds.
type Anchor int

const (
	AnchorCenter Anchor = iota
	AnchorBottom
)

// Shape scales the nominal bounds into the collision bounds.
type Shape struct {
	ScaleW, ScaleH float64
	Anchor         Anchor
}

// FullShape is the nominal, unscaled collision shape.
var FullShape = Shape{ScaleW: 1, ScaleH: 1}

// Entity is a world object. Entities are values owned by the component that
// spawned them; they are replaced, never shared.
type Entity struct {
	ID       EntityID
	Kind     Kind
	Category Category
	Size     core.Vec // Nominal width and height
	Shape    Shape
	Motion   Motion
	Anim     Animation
}

// Position returns the entity's top-left position at time t.
func (e Entity) Position(t float64) core.Vec {
	return e.Motion.At(t)
}

// Bounds returns the nominal bounds at time t.
func (e Entity) Bounds(t float64) core.Box {
	p := e.Position(t)
	return core.Box{X: p.X, Y: p.Y, W: e.Size.X, H: e.Size.Y}
}

// HitBox returns the collision bounds at time t: the shape-scaled nominal
// bounds, widened to cover the current rotation.
func (e Entity) HitBox(t float64) core.Box {
	c, w, h := e.hitShape(t)
	if angle := e.Motion.Angle(t); angle != 0 {
		return core.RotatedBounds(c, w, h, angle)
	}
	return core.BoxAround(c, w, h)
}

// SweepHitBox returns the hit box centered where it is at t0, sized to the
// widest orientation the entity passes through during [t0, t1].
func (e Entity) SweepHitBox(t0, t1 float64) core.Box {
	c, w, h := e.hitShape(t0)
	if e.Motion.SpinPeriod <= 0 {
		_, w1, h1 := e.hitShape(t1)
		return core.BoxAround(c, math.Max(w, w1), math.Max(h, h1))
	}
	from := e.Motion.Angle(t0)
	turn := (math.Max(t1, e.Motion.Start) - math.Max(t0, e.Motion.Start)) / e.Motion.SpinPeriod
	return core.SweptRotatedBounds(c, w, h, from, from+2*math.Pi*turn)
}

// Outline returns the exact collision rectangle at time t, rotated with the
// entity.
func (e Entity) Outline(t float64) *resolv.ConvexPolygon {
	c, w, h := e.hitShape(t)
	poly := resolv.NewRectangle(c.X, c.Y, w, h)
	if angle := e.Motion.Angle(t); angle != 0 {
		poly.SetRotation(angle)
	}
	return poly
}

func (e Entity) hitShape(t float64) (core.Vec, float64, float64) {
	b := e.Bounds(t)
	sw := e.Shape.ScaleW
	sh := e.Shape.ScaleH
	if sw == 0 && sh == 0 {
		sw, sh = 1, 1
	}
	w, h := b.W*sw, b.H*sh

	c := b.Center()
	if e.Shape.Anchor == AnchorBottom {
		c.Y = b.Bottom() - h/2
	}
	return c, w, h
}

// Contactable reports whether the entity takes part in contact tests.
func (e Entity) Contactable() bool {
	return e.Category != CategoryNone
}

// World is the live set of spawned obstacles and power-ups. Every entity
// carries a despawn timer for the end of its motion; that timer is the only
// way entities leave besides explicit despawn and teardown.
type World struct {
	sched  *Scheduler
	ids    *idSource
	live   map[EntityID]*liveEntity
	order  []EntityID
	spawns int
}

type liveEntity struct {
	entity Entity
	timer  TimerID
}

// NewWorld creates an empty world on the given scheduler.
func NewWorld(sched *Scheduler, ids *idSource) *World {
	return &World{
		sched: sched,
		ids:   ids,
		live:  make(map[EntityID]*liveEntity),
	}
}

// Spawn adds an entity whose motion starts now and schedules its removal
// when the motion completes. The entity's ID is assigned here.
func (w *World) Spawn(e Entity) Entity {
	e.ID = w.ids.next()
	e.Motion.Start = w.sched.Now()
	id := e.ID
	le := &liveEntity{entity: e}
	le.timer = w.sched.After(e.Motion.Duration(), func() {
		w.remove(id)
	})
	w.live[id] = le
	w.order = append(w.order, id)
	w.spawns++
	return e
}

// Despawn removes an entity before its motion completes.
func (w *World) Despawn(id EntityID) bool {
	le, ok := w.live[id]
	if !ok {
		return false
	}
	w.sched.Cancel(le.timer)
	w.remove(id)
	return true
}

func (w *World) remove(id EntityID) {
	if _, ok := w.live[id]; !ok {
		return
	}
	delete(w.live, id)
	for i, oid := range w.order {
		if oid == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
}

// Get returns a live entity by ID.
func (w *World) Get(id EntityID) (Entity, bool) {
	le, ok := w.live[id]
	if !ok {
		return Entity{}, false
	}
	return le.entity, true
}

// Entities returns the live entities in spawn order.
func (w *World) Entities() []Entity {
	out := make([]Entity, 0, len(w.order))
	for _, id := range w.order {
		out = append(out, w.live[id].entity)
	}
	return out
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return len(w.order)
}

// Count returns the number of live entities of a kind.
func (w *World) Count(kind Kind) int {
	n := 0
	for _, id := range w.order {
		if w.live[id].entity.Kind == kind {
			n++
		}
	}
	return n
}

// Spawned returns how many entities were ever spawned.
func (w *World) Spawned() int {
	return w.spawns
}

// Clear removes every entity and cancels their despawn timers.
func (w *World) Clear() {
	for _, le := range w.live {
		w.sched.Cancel(le.timer)
	}
	w.live = make(map[EntityID]*liveEntity)
	w.order = nil
}
