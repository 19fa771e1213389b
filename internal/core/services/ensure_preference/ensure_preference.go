package ensurepreference

import (
	"context"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/domain/preference"
	"remindbot/internal/core/domain/user"
	"remindbot/internal/core/services"
	"time"
)

type Input struct {
	User user.User
}

type Result struct {
	Preference preference.Preference
}

type service struct {
	log                  logging.Logger
	preferenceRepository preference.Repository
	defaults             preference.Defaults
	now                  func() time.Time
}

// New builds a service that stores the default preference for users seen for the first time.
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
	pref, err := s.preferenceRepository.Ensure(ctx, preference.EnsureInput{
		UserID:    input.User.ID,
		ChatID:    input.User.ChatID,
		Defaults:  s.defaults,
		CreatedAt: s.now(),
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	result.Preference = pref
	return result, nil
}
