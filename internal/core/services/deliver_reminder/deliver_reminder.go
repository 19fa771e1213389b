package deliverreminder

import (
	"context"
	"errors"
	"remindbot/internal/core/domain/audit"
	"remindbot/internal/core/domain/bot"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/domain/reminder"
	"remindbot/internal/core/domain/user"
	"remindbot/internal/core/services"
	getpreference "remindbot/internal/core/services/get_preference"
	"sync"
	"time"
)

const (
	// Failed sends are retried after RETRY_MIN_DELAY, doubling up to RETRY_MAX_DELAY.
	RETRY_MIN_DELAY = 30 * time.Second
	RETRY_MAX_DELAY = 30 * time.Minute
)

type Input struct {
	ReminderID reminder.ID
}

type Result struct {
	Reminder reminder.Reminder
	Late     bool
	// Skipped is true when the reminder was cancelled or already delivered.
	Skipped bool
	// RetryAt is set when sending failed and the reminder was put back to pending.
	RetryAt time.Time
}

type service struct {
	log                logging.Logger
	reminderRepository reminder.Repository
	sender             reminder.Sender
	scheduler          reminder.Scheduler
	auditor            audit.Auditor
	now                func() time.Time
	preferenceService  services.Service[getpreference.Input, getpreference.Result]

	attempts map[reminder.ID]int
	lock     sync.Mutex
}

func New(
	log logging.Logger,
	reminderRepository reminder.Repository,
	sender reminder.Sender,
	scheduler reminder.Scheduler,
	auditor audit.Auditor,
	now func() time.Time,
	preferenceService services.Service[getpreference.Input, getpreference.Result],
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if reminderRepository == nil {
		panic(e.NewNilArgumentError("reminderRepository"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	if scheduler == nil {
		panic(e.NewNilArgumentError("scheduler"))
	}
	if auditor == nil {
		panic(e.NewNilArgumentError("auditor"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	if preferenceService == nil {
		panic(e.NewNilArgumentError("preferenceService"))
	}
	return &service{
		log:                log,
		reminderRepository: reminderRepository,
		sender:             sender,
		scheduler:          scheduler,
		auditor:            auditor,
		now:                now,
		preferenceService:  preferenceService,
		attempts:           make(map[reminder.ID]int),
	}
}

// FireFunc adapts the service to the scheduler callback.
func FireFunc(svc services.Service[Input, Result]) reminder.FireFunc {
	return func(ctx context.Context, id reminder.ID) {
		svc.Run(ctx, Input{ReminderID: id})
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	now := s.now()

	// The reminder is claimed before sending so a concurrent cancel either wins or loses as a whole.
	delivered, err := s.reminderRepository.MarkDelivered(ctx, input.ReminderID, now)
	if errors.Is(err, reminder.ErrReminderNotFound) {
		s.log.Info(
			ctx,
			"Reminder is not pending anymore, skip delivery.",
			logging.Entry("reminderID", input.ReminderID),
		)
		result.Skipped = true
		return result, nil
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	result.Reminder = delivered
	result.Late = now.Sub(delivered.At) > reminder.LATE_THRESHOLD

	owner := user.User{ID: delivered.UserID, ChatID: delivered.ChatID}
	pref, err := s.preferenceService.Run(ctx, getpreference.Input{User: owner})
	if err != nil {
		return s.retry(ctx, result, err)
	}

	err = s.sender.SendReminder(ctx, delivered, reminder.SendOptions{
		Late:     result.Late,
		Language: pref.Preference.Language.String(),
	})
	if errors.Is(err, bot.ErrRecipientUnavailable) {
		s.forget(delivered.ID)
		logging.Error(ctx, s.log, err, logging.Entry("reminderID", delivered.ID))
		s.auditor.Record(
			ctx,
			audit.NewEvent(audit.ActionDeliver, owner).
				With("rid", delivered.ID).
				With("error", err.Error()),
		)
		return result, err
	}
	if err != nil {
		return s.retry(ctx, result, err)
	}
	s.forget(delivered.ID)

	s.auditor.Record(
		ctx,
		audit.NewEvent(audit.ActionDeliver, owner).
			With("rid", delivered.ID).
			With("late", result.Late),
	)
	s.log.Info(
		ctx,
		"Reminder successfully delivered.",
		logging.Entry("reminderID", delivered.ID),
		logging.Entry("late", result.Late),
		logging.Entry("delay", now.Sub(delivered.At).String()),
	)
	return result, nil
}

// retry puts a claimed reminder back to pending and arms it again with a growing delay.
func (s *service) retry(ctx context.Context, result Result, cause error) (Result, error) {
	id := result.Reminder.ID
	released, err := s.reminderRepository.Release(ctx, id)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("reminderID", id), logging.Entry("cause", cause))
		return result, cause
	}
	result.Reminder = released
	result.RetryAt = s.now().Add(s.nextDelay(id))

	if err := s.scheduler.Arm(ctx, id, result.RetryAt, FireFunc(s)); err != nil {
		// Pending reminders are armed again on the next start.
		logging.Error(ctx, s.log, err, logging.Entry("reminderID", id))
	}
	s.log.Warning(
		ctx,
		"Could not send reminder, retry scheduled.",
		logging.Entry("reminderID", id),
		logging.Entry("retryAt", result.RetryAt),
		logging.Entry("err", cause),
	)
	return result, cause
}

func (s *service) nextDelay(id reminder.ID) time.Duration {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.attempts[id]++
	delay := RETRY_MIN_DELAY
	for i := 1; i < s.attempts[id] && delay < RETRY_MAX_DELAY; i++ {
		delay *= 2
	}
	if delay > RETRY_MAX_DELAY {
		delay = RETRY_MAX_DELAY
	}
	return delay
}

func (s *service) forget(id reminder.ID) {
	s.lock.Lock()
	defer s.lock.Unlock()
	delete(s.attempts, id)
}
