// Package core provides fundamental types and utilities for the runner.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Rect represents an integer cell rectangle used for drawing.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Vec is a 2D vector in world units (terminal cells, y grows downward).
type Vec struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by k.
func (v Vec) Scale(k float64) Vec {
	return Vec{X: v.X * k, Y: v.Y * k}
}

// Lerp interpolates between v and o; t is clamped to [0, 1].
func (v Vec) Lerp(o Vec, t float64) Vec {
	t = ClampF(t, 0, 1)
	return v.Add(o.Sub(v).Scale(t))
}

// Near reports whether both components of v are within eps of o.
func (v Vec) Near(o Vec, eps float64) bool {
	return math.Abs(v.X-o.X) < eps && math.Abs(v.Y-o.Y) < eps
}

// Box is an axis-aligned bounding box in world units.
type Box struct {
	X, Y float64 // Top-left corner
	W, H float64 // Width and height
}

// BoxAround returns a box of size (w, h) centered on c.
func BoxAround(c Vec, w, h float64) Box {
	return Box{X: c.X - w/2, Y: c.Y - h/2, W: w, H: h}
}

// Center returns the center point of the box.
func (b Box) Center() Vec {
	return Vec{X: b.X + b.W/2, Y: b.Y + b.H/2}
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 {
	return b.Y + b.H
}

// Translate returns the box moved by d.
func (b Box) Translate(d Vec) Box {
	return Box{X: b.X + d.X, Y: b.Y + d.Y, W: b.W, H: b.H}
}

// Intersects returns true if the boxes overlap. Touching edges do not count.
func (b Box) Intersects(o Box) bool {
	if b.X >= o.Right() || o.X >= b.Right() {
		return false
	}
	if b.Y >= o.Bottom() || o.Y >= b.Bottom() {
		return false
	}
	return true
}

// Cell converts the box to the covering cell rectangle.
func (b Box) Cell() Rect {
	x0 := int(math.Floor(b.X))
	y0 := int(math.Floor(b.Y))
	x1 := int(math.Ceil(b.Right()))
	y1 := int(math.Ceil(b.Bottom()))
	return NewRect(x0, y0, x1-x0, y1-y0)
}

// SweepIntersects reports whether o, moving by delta relative to b over one
// step, overlaps b at any moment of the step. It catches fast movers that
// would pass through b between two discrete samples.
func (b Box) SweepIntersects(o Box, delta Vec) bool {
	// Minkowski sum: shrink o to a point, grow b by o's size.
	grown := Box{X: b.X - o.W, Y: b.Y - o.H, W: b.W + o.W, H: b.H + o.H}

	tmin, tmax := 0.0, 1.0
	axes := [2][4]float64{
		{o.X, delta.X, grown.X, grown.Right()},
		{o.Y, delta.Y, grown.Y, grown.Bottom()},
	}
	for _, a := range axes {
		p, d, lo, hi := a[0], a[1], a[2], a[3]
		if d == 0 {
			if p <= lo || p >= hi {
				return false
			}
			continue
		}
		t1 := (lo - p) / d
		t2 := (hi - p) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin >= tmax {
			return false
		}
	}
	return true
}

// RotatedBounds returns the axis-aligned bounds of a w x h rectangle rotated
// by angle radians around its center.
func RotatedBounds(center Vec, w, h, angle float64) Box {
	c := math.Abs(math.Cos(angle))
	s := math.Abs(math.Sin(angle))
	return BoxAround(center, w*c+h*s, w*s+h*c)
}

// SweptRotatedBounds returns the axis-aligned bounds covering a w x h
// rectangle at every angle in [from, to].
func SweptRotatedBounds(center Vec, w, h, from, to float64) Box {
	if to < from {
		from, to = to, from
	}
	width := func(a float64) float64 { return w*math.Abs(math.Cos(a)) + h*math.Abs(math.Sin(a)) }
	height := func(a float64) float64 { return w*math.Abs(math.Sin(a)) + h*math.Abs(math.Cos(a)) }

	bw := math.Max(width(from), width(to))
	bh := math.Max(height(from), height(to))
	if to-from >= math.Pi {
		return BoxAround(center, math.Hypot(w, h), math.Hypot(w, h))
	}
	// Width peaks at ±atan(h/w) mod pi, height at ±atan(w/h) mod pi.
	pw := math.Atan2(h, w)
	ph := math.Atan2(w, h)
	for k := math.Floor(from/math.Pi) - 1; k <= math.Ceil(to/math.Pi)+1; k++ {
		base := k * math.Pi
		for _, a := range [2]float64{base + pw, base - pw} {
			if a >= from && a <= to {
				bw = math.Max(bw, width(a))
			}
		}
		for _, a := range [2]float64{base + ph, base - ph} {
			if a >= from && a <= to {
				bh = math.Max(bh, height(a))
			}
		}
	}
	return BoxAround(center, bw, bh)
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
