package setlanguage

import (
	"context"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/domain/preference"
	"remindbot/internal/core/domain/user"
	"remindbot/internal/core/services"
	"strings"
	"time"
)

type Input struct {
	User     user.User
	Language string
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
	lang, err := preference.ParseLanguage(strings.ToLower(strings.TrimSpace(input.Language)))
	if err != nil {
		return result, err
	}

	pref, err := s.preferenceRepository.SetLanguage(ctx, preference.SetLanguageInput{
		UserID:    input.User.ID,
		ChatID:    input.User.ChatID,
		Language:  lang,
		Defaults:  s.defaults,
		UpdatedAt: s.now(),
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	s.log.Info(
		ctx,
		"User language updated.",
		logging.Entry("userID", input.User.ID),
		logging.Entry("language", lang),
	)
	result.Preference = pref
	return result, nil
}
