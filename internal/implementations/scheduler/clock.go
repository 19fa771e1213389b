package scheduler

import (
	"sort"
	"sync"
	"time"
)

type Timer interface {
	Stop() bool
}

// Clock is the time source of the Scheduler.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func NewRealClock() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// ManualClock only moves when Advance or Set is called.
// Due callbacks run synchronously in the goroutine that moved the clock.
type ManualClock struct {
	now    time.Time
	timers []*manualTimer
	lock   sync.Mutex
}

func NewManualClock(now time.Time) *ManualClock {
	return &ManualClock{now: now}
}

func (c *ManualClock) Now() time.Time {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.now
}

func (c *ManualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.lock.Lock()
	defer c.lock.Unlock()
	t := &manualTimer{clock: c, at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *ManualClock) Advance(d time.Duration) {
	c.lock.Lock()
	now := c.now.Add(d)
	c.lock.Unlock()
	c.Set(now)
}

func (c *ManualClock) Set(now time.Time) {
	c.lock.Lock()
	c.now = now
	due := make([]*manualTimer, 0)
	pending := make([]*manualTimer, 0, len(c.timers))
	for _, t := range c.timers {
		if t.stopped {
			continue
		}
		if t.at.After(now) {
			pending = append(pending, t)
			continue
		}
		t.fired = true
		due = append(due, t)
	}
	c.timers = pending
	c.lock.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at.Before(due[j].at) })
	for _, t := range due {
		t.f()
	}
}

// Pending returns the number of timers that are neither stopped nor fired.
func (c *ManualClock) Pending() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return len(c.timers)
}

type manualTimer struct {
	clock   *ManualClock
	at      time.Time
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	t.clock.lock.Lock()
	defer t.clock.lock.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}
