package services

import (
	"remindbot/internal/app/deps"
	drl "remindbot/internal/core/domain/rate_limiter"
	"remindbot/internal/core/services"
	cancelreminder "remindbot/internal/core/services/cancel_reminder"
	createreminder "remindbot/internal/core/services/create_reminder"
	createreminderbyquery "remindbot/internal/core/services/create_reminder_by_query"
	deliverreminder "remindbot/internal/core/services/deliver_reminder"
	ensurepreference "remindbot/internal/core/services/ensure_preference"
	getpreference "remindbot/internal/core/services/get_preference"
	listuserreminders "remindbot/internal/core/services/list_user_reminders"
	ratelimiting "remindbot/internal/core/services/rate_limiting"
	rearmreminders "remindbot/internal/core/services/rearm_reminders"
	setlanguage "remindbot/internal/core/services/set_language"
	settimezone "remindbot/internal/core/services/set_timezone"
	snoozereminder "remindbot/internal/core/services/snooze_reminder"
	"remindbot/internal/telegram"
)

type Services struct {
	GetPreference    services.Service[getpreference.Input, getpreference.Result]
	EnsurePreference services.Service[ensurepreference.Input, ensurepreference.Result]
	SetTimezone      services.Service[settimezone.Input, settimezone.Result]
	SetLanguage      services.Service[setlanguage.Input, setlanguage.Result]

	CreateReminder        services.Service[createreminder.Input, createreminder.Result]
	CreateReminderByQuery services.Service[createreminderbyquery.Input, createreminderbyquery.Result]
	CancelReminder        services.Service[cancelreminder.Input, cancelreminder.Result]
	ListUserReminders     services.Service[listuserreminders.Input, listuserreminders.Result]
	SnoozeReminder        services.Service[snoozereminder.Input, snoozereminder.Result]
	DeliverReminder       services.Service[deliverreminder.Input, deliverreminder.Result]
	RearmReminders        services.Service[rearmreminders.Input, rearmreminders.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}
	defaults := deps.Config.Defaults

	s.GetPreference = getpreference.New(deps.Logger, deps.PreferenceRepository, defaults)
	s.EnsurePreference = ensurepreference.New(deps.Logger, deps.PreferenceRepository, defaults, deps.Now)
	s.SetTimezone = settimezone.New(deps.Logger, deps.PreferenceRepository, defaults, deps.Now)
	s.SetLanguage = setlanguage.New(deps.Logger, deps.PreferenceRepository, defaults, deps.Now)

	s.DeliverReminder = deliverreminder.New(
		deps.Logger,
		deps.ReminderRepository,
		deps.ReminderSender,
		deps.ReminderScheduler,
		deps.Auditor,
		deps.Now,
		s.GetPreference,
	)
	fire := deliverreminder.FireFunc(s.DeliverReminder)

	s.CreateReminder = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Minute, Value: deps.Config.CreateRatePerMinute},
		createreminder.New(
			deps.Logger,
			deps.UnitOfWork,
			deps.ReminderScheduler,
			fire,
			defaults,
			deps.Now,
		),
	)
	s.CreateReminderByQuery = createreminderbyquery.New(
		deps.Logger,
		deps.TimeResolver,
		deps.Now,
		s.GetPreference,
		s.CreateReminder,
	)
	s.CancelReminder = cancelreminder.New(deps.Logger, deps.UnitOfWork, deps.ReminderScheduler, deps.Now)
	s.ListUserReminders = listuserreminders.New(deps.Logger, deps.ReminderRepository, deps.Config.ListLimit)
	s.SnoozeReminder = snoozereminder.New(deps.Logger, deps.ReminderRepository, deps.Now, s.CreateReminder)
	s.RearmReminders = rearmreminders.New(
		deps.Logger,
		deps.ReminderRepository,
		deps.ReminderScheduler,
		fire,
		deps.Now,
	)
	return s
}

// ForDispatcher picks the services the Telegram dispatcher talks to.
func (s *Services) ForDispatcher() telegram.Services {
	return telegram.Services{
		CreateReminder:        s.CreateReminder,
		CreateReminderByQuery: s.CreateReminderByQuery,
		CancelReminder:        s.CancelReminder,
		ListUserReminders:     s.ListUserReminders,
		SnoozeReminder:        s.SnoozeReminder,
		GetPreference:         s.GetPreference,
		EnsurePreference:      s.EnsurePreference,
		SetTimezone:           s.SetTimezone,
		SetLanguage:           s.SetLanguage,
	}
}
