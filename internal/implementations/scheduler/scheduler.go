package scheduler

import (
	"context"
	"errors"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/domain/reminder"
	"sync"
	"time"
)

var ErrSchedulerStopped = errors.New("scheduler is stopped")

type armed struct {
	timer      Timer
	generation uint64
}

// Scheduler keeps one in-process timer per reminder.
type Scheduler struct {
	log        logging.Logger
	clock      Clock
	ctx        context.Context
	timers     map[reminder.ID]armed
	states     map[reminder.ID]reminder.TimerState
	generation uint64
	stopped    bool
	inFlight   sync.WaitGroup
	lock       sync.Mutex
}

// New creates a scheduler. Callbacks receive ctx, not the context passed to Arm,
// since they outlive the request that armed them.
func New(ctx context.Context, log logging.Logger, clock Clock) *Scheduler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if clock == nil {
		panic(e.NewNilArgumentError("clock"))
	}
	return &Scheduler{
		log:    log,
		clock:  clock,
		ctx:    ctx,
		timers: make(map[reminder.ID]armed),
		states: make(map[reminder.ID]reminder.TimerState),
	}
}

func (s *Scheduler) Arm(ctx context.Context, id reminder.ID, at time.Time, fire reminder.FireFunc) error {
	if fire == nil {
		return e.NewNilArgumentError("fire")
	}
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.stopped {
		return ErrSchedulerStopped
	}
	if previous, ok := s.timers[id]; ok {
		previous.timer.Stop()
		delete(s.timers, id)
	}

	s.generation++
	generation := s.generation
	s.states[id] = reminder.TimerArmed

	delay := at.Sub(s.clock.Now())
	if delay <= 0 {
		s.states[id] = reminder.TimerFired
		s.inFlight.Add(1)
		go s.invoke(id, fire)
		s.log.Debug(ctx, "Reminder is due, firing immediately.", logging.Entry("reminderID", id))
		return nil
	}

	timer := s.clock.AfterFunc(delay, func() { s.onTimer(id, generation, fire) })
	s.timers[id] = armed{timer: timer, generation: generation}
	s.log.Debug(
		ctx,
		"Reminder timer armed.",
		logging.Entry("reminderID", id),
		logging.Entry("delay", delay.String()),
	)
	return nil
}

func (s *Scheduler) Disarm(ctx context.Context, id reminder.ID) {
	s.lock.Lock()
	defer s.lock.Unlock()

	current, ok := s.timers[id]
	if !ok {
		return
	}
	current.timer.Stop()
	delete(s.timers, id)
	s.states[id] = reminder.TimerCancelled
	s.log.Debug(ctx, "Reminder timer disarmed.", logging.Entry("reminderID", id))
}

func (s *Scheduler) State(id reminder.ID) reminder.TimerState {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.states[id]
}

// Armed returns the number of timers waiting to fire.
func (s *Scheduler) Armed() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.timers)
}

// Stop cancels every armed timer and waits for running callbacks.
func (s *Scheduler) Stop() {
	s.lock.Lock()
	s.stopped = true
	for id, current := range s.timers {
		current.timer.Stop()
		s.states[id] = reminder.TimerCancelled
	}
	count := len(s.timers)
	s.timers = make(map[reminder.ID]armed)
	s.lock.Unlock()

	s.inFlight.Wait()
	s.log.Info(s.ctx, "Scheduler stopped.", logging.Entry("cancelledCount", count))
}

func (s *Scheduler) onTimer(id reminder.ID, generation uint64, fire reminder.FireFunc) {
	s.lock.Lock()
	current, ok := s.timers[id]
	// The timer was replaced, disarmed or the scheduler stopped after it had been started.
	if s.stopped || !ok || current.generation != generation {
		s.lock.Unlock()
		return
	}
	delete(s.timers, id)
	s.states[id] = reminder.TimerFired
	s.inFlight.Add(1)
	s.lock.Unlock()

	s.invoke(id, fire)
}

func (s *Scheduler) invoke(id reminder.ID, fire reminder.FireFunc) {
	defer s.inFlight.Done()
	defer func() {
		if r := recover(); r != nil {
			s.log.Error(
				s.ctx,
				"Reminder callback panicked.",
				logging.Entry("reminderID", id),
				logging.Entry("panic", r),
			)
		}
	}()
	fire(s.ctx, id)
}
