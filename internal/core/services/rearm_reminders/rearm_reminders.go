package rearmreminders

import (
	"context"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/domain/reminder"
	"remindbot/internal/core/services"
	"time"
)

type Input struct{}

type Result struct {
	ArmedCount   int
	OverdueCount int
}

type service struct {
	log                logging.Logger
	reminderRepository reminder.Repository
	scheduler          reminder.Scheduler
	fire               reminder.FireFunc
	now                func() time.Time
}

func New(
	log logging.Logger,
	reminderRepository reminder.Repository,
	scheduler reminder.Scheduler,
	fire reminder.FireFunc,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if reminderRepository == nil {
		panic(e.NewNilArgumentError("reminderRepository"))
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
		log:                log,
		reminderRepository: reminderRepository,
		scheduler:          scheduler,
		fire:               fire,
		now:                now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	pending, err := s.reminderRepository.ListPending(ctx, reminder.ListPendingInput{})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	s.log.Info(ctx, "Got pending reminders for arming.", logging.Entry("count", len(pending)))

	now := s.now()
	armedIDs := make([]reminder.ID, 0, len(pending))
	for ix, rem := range pending {
		if err := s.scheduler.Arm(ctx, rem.ID, rem.At, s.fire); err != nil {
			logging.Error(
				ctx,
				s.log,
				err,
				logging.Entry("index", ix),
				logging.Entry("reminderID", rem.ID),
				logging.Entry("armedIDs", armedIDs),
			)
			return result, err
		}
		armedIDs = append(armedIDs, rem.ID)
		if !rem.At.After(now) {
			result.OverdueCount++
		}
	}
	result.ArmedCount = len(armedIDs)

	if len(armedIDs) > 0 {
		s.log.Info(
			ctx,
			"Reminders successfully armed.",
			logging.Entry("armedCount", result.ArmedCount),
			logging.Entry("overdueCount", result.OverdueCount),
			logging.Entry("armedIDs", armedIDs),
		)
	}
	return result, nil
}
