package snoozereminder

import (
	"context"
	"fmt"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/domain/reminder"
	"remindbot/internal/core/domain/user"
	"remindbot/internal/core/services"
	createreminder "remindbot/internal/core/services/create_reminder"
	"time"
)

type Input struct {
	User       user.User
	ReminderID reminder.ID
	Duration   time.Duration
}

func (i Input) Validate() error {
	if i.Duration < reminder.MIN_SNOOZE || i.Duration > reminder.MAX_SNOOZE {
		return fmt.Errorf("%s: %w", i.Duration, reminder.ErrInvalidSnooze)
	}
	return nil
}

type Result struct {
	createreminder.Result
	Source reminder.Reminder
}

type service struct {
	log                logging.Logger
	reminderRepository reminder.Repository
	now                func() time.Time
	createService      services.Service[createreminder.Input, createreminder.Result]
}

// New builds a service that schedules a fresh reminder with the body of an existing one.
// The source reminder is left as is.
func New(
	log logging.Logger,
	reminderRepository reminder.Repository,
	now func() time.Time,
	createService services.Service[createreminder.Input, createreminder.Result],
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if reminderRepository == nil {
		panic(e.NewNilArgumentError("reminderRepository"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	if createService == nil {
		panic(e.NewNilArgumentError("createService"))
	}
	return &service{
		log:                log,
		reminderRepository: reminderRepository,
		now:                now,
		createService:      createService,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if err := input.Validate(); err != nil {
		return result, err
	}

	source, err := s.reminderRepository.GetByID(ctx, input.ReminderID)
	if err != nil {
		return result, err
	}
	if !source.IsOwnedBy(input.User.ID) {
		s.log.Warning(
			ctx,
			"Attempt to snooze a foreign reminder.",
			logging.Entry("reminderID", input.ReminderID),
			logging.Entry("userID", input.User.ID),
		)
		return result, reminder.ErrReminderNotFound
	}

	created, err := s.createService.Run(ctx, createreminder.Input{
		User: input.User,
		Body: source.Body,
		At:   s.now().Add(input.Duration),
	})
	if err != nil {
		return result, err
	}
	s.log.Info(
		ctx,
		"Reminder snoozed.",
		logging.Entry("sourceID", source.ID),
		logging.Entry("reminderID", created.Reminder.ID),
		logging.Entry("duration", input.Duration.String()),
	)
	result.Result = created
	result.Source = source
	return result, nil
}
