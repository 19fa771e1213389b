package getpreference

import (
	"context"
	"errors"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/domain/preference"
	"remindbot/internal/core/domain/user"
	"remindbot/internal/core/services"
)

type Input struct {
	User user.User
}

type Result struct {
	Preference preference.Preference
	IsDefault  bool
}

type service struct {
	log                  logging.Logger
	preferenceRepository preference.Repository
	defaults             preference.Defaults
}

func New(
	log logging.Logger,
	preferenceRepository preference.Repository,
	defaults preference.Defaults,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if preferenceRepository == nil {
		panic(e.NewNilArgumentError("preferenceRepository"))
	}
	return &service{
		log:                  log,
		preferenceRepository: preferenceRepository,
		defaults:             defaults,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	pref, err := s.preferenceRepository.Get(ctx, input.User.ID)
	if errors.Is(err, preference.ErrPreferenceNotFound) {
		result.Preference = s.defaults.For(input.User)
		result.IsDefault = true
		return result, nil
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	result.Preference = pref
	return result, nil
}
