package createreminderbyquery

import (
	"context"
	"errors"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/domain/reminder"
	"remindbot/internal/core/domain/user"
	"remindbot/internal/core/services"
	createreminder "remindbot/internal/core/services/create_reminder"
	getpreference "remindbot/internal/core/services/get_preference"
	"time"
)

type Input struct {
	User  user.User
	Query string
	Shape reminder.Shape
}

type Result struct {
	createreminder.Result
	Resolution reminder.Resolution
}

type service struct {
	log               logging.Logger
	resolver          reminder.TimeResolver
	now               func() time.Time
	preferenceService services.Service[getpreference.Input, getpreference.Result]
	createService     services.Service[createreminder.Input, createreminder.Result]
}

func New(
	log logging.Logger,
	resolver reminder.TimeResolver,
	now func() time.Time,
	preferenceService services.Service[getpreference.Input, getpreference.Result],
	createService services.Service[createreminder.Input, createreminder.Result],
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if resolver == nil {
		panic(e.NewNilArgumentError("resolver"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	if preferenceService == nil {
		panic(e.NewNilArgumentError("preferenceService"))
	}
	if createService == nil {
		panic(e.NewNilArgumentError("createService"))
	}
	return &service{
		log:               log,
		resolver:          resolver,
		now:               now,
		preferenceService: preferenceService,
		createService:     createService,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	pref, err := s.preferenceService.Run(ctx, getpreference.Input{User: input.User})
	if err != nil {
		return result, err
	}

	resolution, err := s.resolver.Resolve(ctx, reminder.Query{
		Text:      input.Query,
		Location:  pref.Preference.Timezone.Location(),
		Reference: s.now(),
		Shape:     input.Shape,
	})
	if err != nil {
		if !errors.Is(err, reminder.ErrParse) {
			logging.Error(ctx, s.log, err, logging.Entry("input", input))
		}
		return result, err
	}
	s.log.Info(
		ctx,
		"Reminder query resolved.",
		logging.Entry("userID", input.User.ID),
		logging.Entry("query", input.Query),
		logging.Entry("at", resolution.At),
		logging.Entry("shape", resolution.Shape),
	)

	created, err := s.createService.Run(ctx, createreminder.Input{
		User: input.User,
		Body: resolution.Body,
		At:   resolution.At,
	})
	if err != nil {
		return result, err
	}
	result.Result = created
	result.Resolution = resolution
	return result, nil
}
