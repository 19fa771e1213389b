package createreminder

import (
	"context"
	"fmt"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/domain/preference"
	"remindbot/internal/core/domain/reminder"
	uow "remindbot/internal/core/domain/unit_of_work"
	"remindbot/internal/core/domain/user"
	"remindbot/internal/core/services"
	"time"
)

type Input struct {
	User user.User
	Body string
	At   time.Time
}

func (i Input) Validate(now time.Time) error {
	durationFromNow := i.At.Sub(now)
	if durationFromNow <= 0 {
		return reminder.ErrReminderTooEarly
	}
	if durationFromNow > reminder.MAX_DURATION {
		return reminder.ErrReminderTooLate
	}
	_, err := reminder.NormalizeBody(i.Body)
	return err
}

func (i Input) GetRateLimitKey() string {
	return fmt.Sprintf("create_reminder::%d", i.User.ID)
}

type Result struct {
	Reminder   reminder.Reminder
	Preference preference.Preference
}

type service struct {
	log        logging.Logger
	unitOfWork uow.UnitOfWork
	scheduler  reminder.Scheduler
	fire       reminder.FireFunc
	defaults   preference.Defaults
	now        func() time.Time
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	scheduler reminder.Scheduler,
	fire reminder.FireFunc,
	defaults preference.Defaults,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if scheduler == nil {
		panic(e.NewNilArgumentError("scheduler"))
	}
	if fire == nil {
		panic(e.NewNilArgumentError("fire"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:        log,
		unitOfWork: unitOfWork,
		scheduler:  scheduler,
		fire:       fire,
		defaults:   defaults,
		now:        now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	now := s.now()
	if err := input.Validate(now); err != nil {
		return result, err
	}
	body, _ := reminder.NormalizeBody(input.Body)

	uow, err := s.unitOfWork.Begin(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	defer uow.Rollback(ctx)

	pref, err := uow.Preferences().Ensure(ctx, preference.EnsureInput{
		UserID:    input.User.ID,
		ChatID:    input.User.ChatID,
		Defaults:  s.defaults,
		CreatedAt: now,
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	createdReminder, err := uow.Reminders().Create(ctx, reminder.CreateInput{
		ChatID:    input.User.ChatID,
		UserID:    input.User.ID,
		Body:      body,
		At:        input.At.UTC(),
		Timezone:  pref.Timezone.Name(),
		CreatedAt: now,
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	if err := uow.Commit(ctx); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input), logging.Entry("reminder", createdReminder))
		return result, err
	}

	// The row is durable at this point, a failed arm is recovered on the next start.
	if err := s.scheduler.Arm(ctx, createdReminder.ID, createdReminder.At, s.fire); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("reminderID", createdReminder.ID))
	}

	s.log.Info(
		ctx,
		"Reminder successfully created.",
		logging.Entry("reminderID", createdReminder.ID),
		logging.Entry("userID", createdReminder.UserID),
		logging.Entry("at", createdReminder.At),
	)
	result.Reminder = createdReminder
	result.Preference = pref
	return result, nil
}
