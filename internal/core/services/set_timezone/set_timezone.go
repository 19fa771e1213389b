package settimezone

import (
	"context"
	"errors"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/domain/preference"
	"remindbot/internal/core/domain/user"
	"remindbot/internal/core/services"
	"time"
)

type Input struct {
	User user.User
	// Spec is a zone name, a UTC offset or the user's current wall clock as HH:MM.
	Spec string
}

type Result struct {
	Preference    preference.Preference
	FromLocalTime bool
}

type service struct {
	log                  logging.Logger
	preferenceRepository preference.Repository
	defaults             preference.Defaults
	now                  func() time.Time
}

func New(
	log logging.Logger,
	preferenceRepository preference.Repository,
	defaults preference.Defaults,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if preferenceRepository == nil {
		panic(e.NewNilArgumentError("preferenceRepository"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:                  log,
		preferenceRepository: preferenceRepository,
		defaults:             defaults,
		now:                  now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	var tz preference.Timezone
	if preference.IsLocalTime(input.Spec) {
		tz, err = preference.TimezoneFromLocalTime(input.Spec, s.now())
		result.FromLocalTime = true
	} else {
		tz, err = preference.ParseTimezone(input.Spec)
	}
	if err != nil {
		if !errors.Is(err, preference.ErrInvalidTimezone) {
			logging.Error(ctx, s.log, err, logging.Entry("input", input))
		}
		return result, err
	}

	pref, err := s.preferenceRepository.SetTimezone(ctx, preference.SetTimezoneInput{
		UserID:    input.User.ID,
		ChatID:    input.User.ChatID,
		Timezone:  tz,
		Defaults:  s.defaults,
		UpdatedAt: s.now(),
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	s.log.Info(
		ctx,
		"User timezone updated.",
		logging.Entry("userID", input.User.ID),
		logging.Entry("timezone", tz.Name()),
	)
	result.Preference = pref
	return result, nil
}
