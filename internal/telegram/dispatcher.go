package telegram

import (
	"context"
	"errors"
	"fmt"
	"remindbot/internal/core/domain/audit"
	"remindbot/internal/core/domain/bot"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/domain/preference"
	ratelimiter "remindbot/internal/core/domain/rate_limiter"
	"remindbot/internal/core/domain/reminder"
	"remindbot/internal/core/domain/user"
	"remindbot/internal/core/services"
	cancelreminder "remindbot/internal/core/services/cancel_reminder"
	createreminder "remindbot/internal/core/services/create_reminder"
	createreminderbyquery "remindbot/internal/core/services/create_reminder_by_query"
	ensurepreference "remindbot/internal/core/services/ensure_preference"
	getpreference "remindbot/internal/core/services/get_preference"
	listuserreminders "remindbot/internal/core/services/list_user_reminders"
	setlanguage "remindbot/internal/core/services/set_language"
	settimezone "remindbot/internal/core/services/set_timezone"
	snoozereminder "remindbot/internal/core/services/snooze_reminder"
	"remindbot/internal/i18n"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Services struct {
	CreateReminder        services.Service[createreminder.Input, createreminder.Result]
	CreateReminderByQuery services.Service[createreminderbyquery.Input, createreminderbyquery.Result]
	CancelReminder        services.Service[cancelreminder.Input, cancelreminder.Result]
	ListUserReminders     services.Service[listuserreminders.Input, listuserreminders.Result]
	SnoozeReminder        services.Service[snoozereminder.Input, snoozereminder.Result]
	GetPreference         services.Service[getpreference.Input, getpreference.Result]
	EnsurePreference      services.Service[ensurepreference.Input, ensurepreference.Result]
	SetTimezone           services.Service[settimezone.Input, settimezone.Result]
	SetLanguage           services.Service[setlanguage.Input, setlanguage.Result]
}

func (s Services) validate() {
	if s.CreateReminder == nil {
		panic(e.NewNilArgumentError("CreateReminder"))
	}
	if s.CreateReminderByQuery == nil {
		panic(e.NewNilArgumentError("CreateReminderByQuery"))
	}
	if s.CancelReminder == nil {
		panic(e.NewNilArgumentError("CancelReminder"))
	}
	if s.ListUserReminders == nil {
		panic(e.NewNilArgumentError("ListUserReminders"))
	}
	if s.SnoozeReminder == nil {
		panic(e.NewNilArgumentError("SnoozeReminder"))
	}
	if s.GetPreference == nil {
		panic(e.NewNilArgumentError("GetPreference"))
	}
	if s.EnsurePreference == nil {
		panic(e.NewNilArgumentError("EnsurePreference"))
	}
	if s.SetTimezone == nil {
		panic(e.NewNilArgumentError("SetTimezone"))
	}
	if s.SetLanguage == nil {
		panic(e.NewNilArgumentError("SetLanguage"))
	}
}

// request carries what every handler needs to reply to the caller.
type request struct {
	user user.User
	pref preference.Preference
}

func (r request) lang() preference.Language {
	return r.pref.Language
}

func (r request) location() *time.Location {
	return r.pref.Timezone.Location()
}

// Dispatcher routes Telegram updates to services and replies through the Messenger.
type Dispatcher struct {
	log       logging.Logger
	messenger bot.Messenger
	auditor   audit.Auditor
	resolver  reminder.TimeResolver
	services  Services
	admins    user.Admins
	now       func() time.Time
	restart   func()

	// Minutes chosen with an in:<minutes> button, waiting for the reminder text.
	pending map[user.ChatID]time.Duration
	lock    sync.Mutex
}

func New(
	log logging.Logger,
	messenger bot.Messenger,
	auditor audit.Auditor,
	resolver reminder.TimeResolver,
	services Services,
	admins user.Admins,
	now func() time.Time,
	restart func(),
) *Dispatcher {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if messenger == nil {
		panic(e.NewNilArgumentError("messenger"))
	}
	if auditor == nil {
		panic(e.NewNilArgumentError("auditor"))
	}
	if resolver == nil {
		panic(e.NewNilArgumentError("resolver"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	if restart == nil {
		panic(e.NewNilArgumentError("restart"))
	}
	services.validate()
	return &Dispatcher{
		log:       log,
		messenger: messenger,
		auditor:   auditor,
		resolver:  resolver,
		services:  services,
		admins:    admins,
		now:       now,
		restart:   restart,
		pending:   make(map[user.ChatID]time.Duration),
	}
}

// Run consumes updates one by one until ctx is done or the channel is closed.
func (d *Dispatcher) Run(ctx context.Context, updates <-chan tgbotapi.Update) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			d.handleSafely(ctx, update)
		}
	}
}

func (d *Dispatcher) handleSafely(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error(
				ctx,
				"Update handler panicked.",
				logging.Entry("updateID", update.UpdateID),
				logging.Entry("panic", fmt.Sprint(r)),
			)
		}
	}()
	d.HandleUpdate(ctx, update)
}

func (d *Dispatcher) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.Message != nil:
		d.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		d.handleCallback(ctx, update.CallbackQuery)
	}
}

func (d *Dispatcher) newRequest(ctx context.Context, u user.User) (request, bool) {
	result, err := d.services.GetPreference.Run(ctx, getpreference.Input{User: u})
	if err != nil {
		req := request{user: u}
		d.replyText(ctx, req, i18n.T(preference.LanguageUnknown, i18n.Error))
		d.record(ctx, audit.ActionFailure, req, "error", err.Error())
		return request{}, false
	}
	return request{user: u, pref: result.Preference}, true
}

func (d *Dispatcher) setPending(chatID user.ChatID, delay time.Duration) {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.pending[chatID] = delay
}

func (d *Dispatcher) popPending(chatID user.ChatID) (time.Duration, bool) {
	d.lock.Lock()
	defer d.lock.Unlock()
	delay, ok := d.pending[chatID]
	delete(d.pending, chatID)
	return delay, ok
}

func (d *Dispatcher) reply(ctx context.Context, req request, key i18n.Key, args ...interface{}) {
	d.replyText(ctx, req, i18n.T(req.lang(), key, args...))
}

func (d *Dispatcher) replyText(ctx context.Context, req request, text string) {
	d.send(ctx, bot.Message{ChatID: req.user.ChatID, Text: text})
}

func (d *Dispatcher) replyWithButtons(ctx context.Context, req request, text string, buttons [][]bot.Button) {
	d.send(ctx, bot.Message{ChatID: req.user.ChatID, Text: text, Buttons: buttons})
}

func (d *Dispatcher) send(ctx context.Context, msg bot.Message) {
	if err := d.messenger.SendMessage(ctx, msg); err != nil {
		d.log.Warning(
			ctx,
			"Could not send reply.",
			logging.Entry("chatID", msg.ChatID),
			logging.Entry("err", err),
		)
	}
}

func (d *Dispatcher) record(ctx context.Context, action string, req request, fields ...interface{}) {
	event := audit.NewEvent(action, req.user)
	for i := 0; i+1 < len(fields); i += 2 {
		event = event.With(fmt.Sprint(fields[i]), fields[i+1])
	}
	d.auditor.Record(ctx, event)
}

// replyError maps a service error to a localized reply.
func (d *Dispatcher) replyError(ctx context.Context, req request, err error) {
	d.reply(ctx, req, errorKey(err))
}

func errorKey(err error) i18n.Key {
	switch {
	case errors.Is(err, reminder.ErrParse):
		return i18n.Unparsed
	case errors.Is(err, preference.ErrInvalidTimezone):
		return i18n.TzBad
	case errors.Is(err, preference.ErrInvalidLanguage):
		return i18n.LangBad
	case errors.Is(err, reminder.ErrReminderNotFound):
		return i18n.CancelNotFound
	case errors.Is(err, reminder.ErrReminderTooEarly):
		return i18n.TimePassed
	case errors.Is(err, reminder.ErrReminderTooLate):
		return i18n.TooFar
	case errors.Is(err, reminder.ErrEmptyBody):
		return i18n.EmptyText
	case errors.Is(err, reminder.ErrBodyTooLong):
		return i18n.TextTooLong
	case errors.Is(err, reminder.ErrInvalidSnooze):
		return i18n.SnoozeBad
	case errors.Is(err, ratelimiter.ErrRateLimitExceeded):
		return i18n.RateLimited
	default:
		return i18n.Error
	}
}

func userFromMessage(msg *tgbotapi.Message) (user.User, bool) {
	if msg.From == nil || msg.Chat == nil {
		return user.User{}, false
	}
	return user.User{
		ID:       user.ID(msg.From.ID),
		ChatID:   user.ChatID(msg.Chat.ID),
		Username: msg.From.UserName,
	}, true
}

func userFromCallback(cb *tgbotapi.CallbackQuery) (user.User, bool) {
	if cb.From == nil {
		return user.User{}, false
	}
	chatID := user.ChatID(cb.From.ID)
	if cb.Message != nil && cb.Message.Chat != nil {
		chatID = user.ChatID(cb.Message.Chat.ID)
	}
	return user.User{
		ID:       user.ID(cb.From.ID),
		ChatID:   chatID,
		Username: cb.From.UserName,
	}, true
}
