package sakura

import (
	"fmt"
	"math"
)

// Clip is a run of animation frames, referenced by asset name only.
type Clip struct {
	Frames       []string
	TimePerFrame float64
	Repeat       int // Number of plays; 0 loops forever
}

// Duration returns the clip length, +Inf for looping clips.
func (c Clip) Duration() float64 {
	if c.Repeat <= 0 {
		return math.Inf(1)
	}
	return float64(len(c.Frames)) * c.TimePerFrame * float64(c.Repeat)
}

// Animation plays clips back to back from Start.
type Animation struct {
	Clips []Clip
	Start float64
}

// Cursor identifies the active frame of an animation.
type Cursor struct {
	Clip  int
	Frame int
	Name  string
}

// At returns the frame cursor at time t. Past the end of a finite animation
// the last frame stays active.
func (a Animation) At(t float64) Cursor {
	if len(a.Clips) == 0 {
		return Cursor{}
	}
	elapsed := math.Max(0, t-a.Start)
	for i, c := range a.Clips {
		if len(c.Frames) == 0 || c.TimePerFrame <= 0 {
			continue
		}
		d := c.Duration()
		last := i == len(a.Clips)-1
		if elapsed < d || last {
			n := int(elapsed / c.TimePerFrame)
			if !math.IsInf(d, 1) && elapsed >= d {
				n = len(c.Frames) - 1
			}
			frame := n % len(c.Frames)
			return Cursor{Clip: i, Frame: frame, Name: c.Frames[frame]}
		}
		elapsed -= d
	}
	return Cursor{}
}

// FrameSet holds the named frames of every player animation.
type FrameSet struct {
	Running    []string
	JumpUp     []string
	JumpDown   []string
	Sliding    []string
	SlideBack  []string
	PoweredRun []string
}

// atlasFrames names the frames of a texture atlas the way the sprite sheets
// were exported: Atlas/frame_00_delay-0.03s.png, frame_01, ...
func atlasFrames(atlas string, from, to int) []string {
	frames := make([]string, 0, to-from)
	for i := from; i < to; i++ {
		frames = append(frames, fmt.Sprintf("%s/frame_%02d_delay-0.03s.png", atlas, i))
	}
	return frames
}

func reversed(frames []string) []string {
	out := make([]string, len(frames))
	for i, f := range frames {
		out[len(frames)-1-i] = f
	}
	return out
}

// DefaultFrameSet returns the frame names for atlases of n frames each.
// Jumping splits its atlas at frame 10 into ascent and descent; sliding
// plays the whole atlas forward, then its first ten frames backwards.
func DefaultFrameSet(n int) FrameSet {
	split := 10
	if split > n {
		split = n
	}
	return FrameSet{
		Running:    atlasFrames("Running", 0, n),
		JumpUp:     atlasFrames("Jumping", 0, split),
		JumpDown:   atlasFrames("Jumping", split, n),
		Sliding:    atlasFrames("Sliding", 0, n),
		SlideBack:  reversed(atlasFrames("Sliding", 0, split)),
		PoweredRun: atlasFrames("Running", 0, n),
	}
}
