package sakura

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrNoLanes is returned when the lane table would be empty.
var ErrNoLanes = errors.New("sakura: lane table is empty")

// LaneTable holds the vertical centers of the spawn lanes, top to bottom.
type LaneTable []float64

// NewLaneTable spreads n lane centers evenly over a band covering span of the
// playfield height, centered on the middle of the playfield.
func NewLaneTable(n int, span, height float64) (LaneTable, error) {
	if n <= 0 || span <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: lanes=%d span=%v height=%v", ErrNoLanes, n, span, height)
	}
	step := span * height / float64(n)
	mid := height / 2
	lanes := make(LaneTable, n)
	for i := range lanes {
		lanes[i] = mid + (float64(i)-float64(n-1)/2)*step
	}
	return lanes, nil
}

// Policy draws every random decision of the spawn cycle from one seeded
// source, so a seed fully determines a run.
type Policy struct {
	rng *rand.Rand
}

// NewPolicy creates a policy with the given RNG seed.
func NewPolicy(seed int64) *Policy {
	return &Policy{rng: rand.New(rand.NewSource(seed))}
}

// Delay returns a wait uniformly drawn from [speed*minFactor, speed*maxFactor].
func (p *Policy) Delay(speed, minFactor, maxFactor float64) float64 {
	lo := speed * minFactor
	hi := speed * maxFactor
	if hi <= lo {
		return lo
	}
	return lo + p.rng.Float64()*(hi-lo)
}

// Indicator returns 0 or 1 with equal probability.
func (p *Policy) Indicator() int {
	return p.rng.Intn(2)
}

// Roll returns a uniform integer in [0, max].
func (p *Policy) Roll(max int) int {
	return p.rng.Intn(max + 1)
}

// Lane picks a lane center uniformly. The table must not be empty.
func (p *Policy) Lane(lanes LaneTable) float64 {
	if len(lanes) == 0 {
		panic("sakura: lane requested from an empty lane table")
	}
	return lanes[p.rng.Intn(len(lanes))]
}
