package listuserreminders

import (
	"context"
	c "remindbot/internal/core/domain/common"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/domain/reminder"
	"remindbot/internal/core/domain/user"
	"remindbot/internal/core/services"
)

const DEFAULT_LIMIT = 50

type Input struct {
	User  user.User
	Limit c.Optional[uint]
}

type Result struct {
	Reminders []reminder.Reminder
}

type service struct {
	log                logging.Logger
	reminderRepository reminder.Repository
	defaultLimit       uint
}

func New(
	log logging.Logger,
	reminderRepository reminder.Repository,
	defaultLimit uint,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if reminderRepository == nil {
		panic(e.NewNilArgumentError("reminderRepository"))
	}
	if defaultLimit == 0 {
		defaultLimit = DEFAULT_LIMIT
	}
	return &service{
		log:                log,
		reminderRepository: reminderRepository,
		defaultLimit:       defaultLimit,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	limit := c.NewOptional(s.defaultLimit, true)
	if input.Limit.IsPresent {
		limit.Value = input.Limit.Value
	}

	reminders, err := s.reminderRepository.ListPending(ctx, reminder.ListPendingInput{
		UserID: c.NewOptional(input.User.ID, true),
		Limit:  limit,
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	s.log.Info(
		ctx,
		"User reminders successfully read.",
		logging.Entry("userID", input.User.ID),
		logging.Entry("count", len(reminders)),
	)
	result.Reminders = reminders
	return result, nil
}
