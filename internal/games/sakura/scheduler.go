package sakura

import "sort"

// timeEpsilon absorbs float drift when comparing due times to the clock.
const timeEpsilon = 1e-9

// TimerID identifies a scheduled callback.
type TimerID uint64

type timer struct {
	id  TimerID
	due float64
	fn  func()
}

// Scheduler is a logical clock with cancellable one-shot timers. It never
// blocks: the frame tick calls Advance, which fires every timer that came
// due, in due-time order (ties in scheduling order). Callbacks may schedule
// or cancel other timers, including CancelAll.
type Scheduler struct {
	now    float64
	nextID TimerID
	timers []timer // sorted by due, then id
}

// NewScheduler creates a scheduler with its clock at zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the current logical time in seconds.
func (s *Scheduler) Now() float64 {
	return s.now
}

// After schedules fn to run delay seconds from now. Negative delays run on
// the next Advance.
func (s *Scheduler) After(delay float64, fn func()) TimerID {
	if delay < 0 {
		delay = 0
	}
	s.nextID++
	t := timer{id: s.nextID, due: s.now + delay, fn: fn}

	i := sort.Search(len(s.timers), func(i int) bool {
		return s.timers[i].due > t.due
	})
	s.timers = append(s.timers, timer{})
	copy(s.timers[i+1:], s.timers[i:])
	s.timers[i] = t
	return t.id
}

// Cancel removes a pending timer. Returns false if it already fired or was
// cancelled.
func (s *Scheduler) Cancel(id TimerID) bool {
	for i, t := range s.timers {
		if t.id == id {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return true
		}
	}
	return false
}

// CancelAll discards every pending timer. No discarded callback will run.
func (s *Scheduler) CancelAll() {
	s.timers = nil
}

// Pending returns the number of timers waiting to fire.
func (s *Scheduler) Pending() int {
	return len(s.timers)
}

// Advance moves the clock forward by dt, firing due timers along the way.
// The clock reads each timer's due time while its callback runs.
func (s *Scheduler) Advance(dt float64) {
	target := s.now + dt
	for len(s.timers) > 0 && s.timers[0].due <= target+timeEpsilon {
		t := s.timers[0]
		s.timers = s.timers[1:]
		if t.due > s.now {
			s.now = t.due
		}
		t.fn()
	}
	if target > s.now {
		s.now = target
	}
}
