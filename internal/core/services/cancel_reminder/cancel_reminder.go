package cancelreminder

import (
	"context"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/domain/reminder"
	uow "remindbot/internal/core/domain/unit_of_work"
	"remindbot/internal/core/domain/user"
	"remindbot/internal/core/services"
	"time"
)

type Input struct {
	User       user.User
	ReminderID reminder.ID
}

type Result struct {
	Reminder reminder.Reminder
}

type service struct {
	log        logging.Logger
	unitOfWork uow.UnitOfWork
	scheduler  reminder.Scheduler
	now        func() time.Time
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	scheduler reminder.Scheduler,
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
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:        log,
		unitOfWork: unitOfWork,
		scheduler:  scheduler,
		now:        now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	uow, err := s.unitOfWork.Begin(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	defer uow.Rollback(ctx)

	rem, err := uow.Reminders().GetByID(ctx, input.ReminderID)
	if err != nil {
		return result, err
	}
	// Foreign reminders are reported as missing so that ids of other users are not disclosed.
	if !rem.IsOwnedBy(input.User.ID) {
		s.log.Warning(
			ctx,
			"Attempt to cancel a foreign reminder.",
			logging.Entry("reminderID", input.ReminderID),
			logging.Entry("userID", input.User.ID),
		)
		return result, reminder.ErrReminderNotFound
	}

	cancelled, err := uow.Reminders().Cancel(ctx, input.ReminderID, s.now())
	if err != nil {
		return result, err
	}
	if err := uow.Commit(ctx); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	s.scheduler.Disarm(ctx, cancelled.ID)
	s.log.Info(
		ctx,
		"Reminder successfully cancelled.",
		logging.Entry("reminderID", cancelled.ID),
		logging.Entry("userID", input.User.ID),
	)
	result.Reminder = cancelled
	return result, nil
}
