package reminder

import (
	"context"
	"time"
)

// FireFunc is invoked by a Scheduler when a reminder is due.
type FireFunc func(ctx context.Context, id ID)

type Scheduler interface {
	// Arm schedules fire for the reminder. A due time in the past fires immediately.
	Arm(ctx context.Context, id ID, at time.Time, fire FireFunc) error
	// Disarm is a no-op for timers that already fired or were never armed.
	Disarm(ctx context.Context, id ID)
}

type TimerState struct {
	v string
}

func (s TimerState) String() string {
	return s.v
}

var (
	TimerUnknown   = TimerState{}
	TimerArmed     = TimerState{v: "armed"}
	TimerFired     = TimerState{v: "fired"}
	TimerCancelled = TimerState{v: "cancelled"}
)
