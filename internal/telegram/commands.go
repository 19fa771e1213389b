package telegram

import (
	"context"
	"errors"
	"remindbot/internal/core/domain/audit"
	c "remindbot/internal/core/domain/common"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/domain/reminder"
	cancelreminder "remindbot/internal/core/services/cancel_reminder"
	createreminder "remindbot/internal/core/services/create_reminder"
	createreminderbyquery "remindbot/internal/core/services/create_reminder_by_query"
	ensurepreference "remindbot/internal/core/services/ensure_preference"
	listuserreminders "remindbot/internal/core/services/list_user_reminders"
	setlanguage "remindbot/internal/core/services/set_language"
	settimezone "remindbot/internal/core/services/set_timezone"
	snoozereminder "remindbot/internal/core/services/snooze_reminder"
	"remindbot/internal/i18n"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (d *Dispatcher) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	u, ok := userFromMessage(msg)
	if !ok {
		return
	}
	req, ok := d.newRequest(ctx, u)
	if !ok {
		return
	}

	if !msg.IsCommand() {
		d.handleText(ctx, req, strings.TrimSpace(msg.Text))
		return
	}

	// Any command abandons a pending quick reminder.
	d.popPending(u.ChatID)
	args := strings.TrimSpace(msg.CommandArguments())
	switch msg.Command() {
	case "start":
		d.handleStart(ctx, req, audit.ActionStart)
	case "help", "menu":
		d.handleStart(ctx, req, audit.ActionHelp)
	case "in":
		d.handleIn(ctx, req, args)
	case "at":
		d.handleAt(ctx, req, args)
	case "list":
		d.handleList(ctx, req)
	case "cancel":
		d.handleCancel(ctx, req, args)
	case "tz":
		d.handleTimezone(ctx, req, args)
	case "lang":
		d.handleLanguage(ctx, req, args)
	case "snooze":
		d.handleSnooze(ctx, req, args)
	case "botrestart":
		d.handleRestart(ctx, req)
	default:
		d.reply(ctx, req, i18n.UnknownInput)
		d.record(ctx, audit.ActionUnknownInput, req, "command", msg.Command())
	}
}

func (d *Dispatcher) handleStart(ctx context.Context, req request, action string) {
	result, err := d.services.EnsurePreference.Run(ctx, ensurepreference.Input{User: req.user})
	if err != nil {
		d.replyError(ctx, req, err)
		d.record(ctx, action, req, "error", err.Error())
		return
	}
	req.pref = result.Preference

	d.replyWithButtons(
		ctx,
		req,
		i18n.T(req.lang(), i18n.Help, req.pref.Timezone.Name(), req.lang().String()),
		mainMenu(req.lang()),
	)
	d.record(ctx, action, req)
}

func (d *Dispatcher) handleIn(ctx context.Context, req request, args string) {
	if args == "" {
		d.replyWithButtons(ctx, req, i18n.T(req.lang(), i18n.ChooseInMinutes), minutesMenu())
		d.record(ctx, audit.ActionIn, req, "mode", "menu")
		return
	}
	d.createByQuery(ctx, req, args, reminder.ShapeRelative)
}

func (d *Dispatcher) handleAt(ctx context.Context, req request, args string) {
	if args == "" {
		d.reply(ctx, req, i18n.AtNeed)
		d.record(ctx, audit.ActionAt, req, "mode", "usage")
		return
	}
	d.createByQuery(ctx, req, args, reminder.ShapeAbsolute)
}

// handleText treats plain messages as reminder text for a pending quick
// reminder or as a free form reminder query.
func (d *Dispatcher) handleText(ctx context.Context, req request, text string) {
	d.record(ctx, audit.ActionText, req, "text", truncate(text, audit.MAX_TEXT_LEN))
	if text == "" {
		return
	}
	if delay, ok := d.popPending(req.user.ChatID); ok {
		d.createIn(ctx, req, delay, text)
		return
	}

	result, err := d.services.CreateReminderByQuery.Run(ctx, createreminderbyquery.Input{
		User:  req.user,
		Query: text,
		Shape: reminder.ShapeAny,
	})
	if errors.Is(err, reminder.ErrParse) {
		d.reply(ctx, req, i18n.UnknownInput)
		d.record(ctx, audit.ActionUnknownInput, req)
		return
	}
	d.replyCreated(ctx, req, result, err)
}

func (d *Dispatcher) createByQuery(ctx context.Context, req request, query string, shape reminder.Shape) {
	result, err := d.services.CreateReminderByQuery.Run(ctx, createreminderbyquery.Input{
		User:  req.user,
		Query: query,
		Shape: shape,
	})
	d.replyCreated(ctx, req, result, err)
}

func (d *Dispatcher) replyCreated(
	ctx context.Context,
	req request,
	result createreminderbyquery.Result,
	err error,
) {
	if err != nil {
		d.replyError(ctx, req, err)
		d.record(ctx, audit.ActionCreateFailure, req, "error", err.Error())
		return
	}

	rem := result.Reminder
	req.pref = result.Preference
	delta := i18n.Delta(req.lang(), rem.At.Sub(d.now()))
	local := i18n.LocalTime(rem.At, req.location())
	if result.Resolution.Shape == reminder.ShapeRelative {
		d.reply(ctx, req, i18n.InOK, delta, local, req.pref.Timezone.Name(), rem.ID)
		d.record(ctx, audit.ActionCreateIn, req, "rid", rem.ID, "minutes", int(result.Resolution.Delay.Minutes()))
		return
	}
	d.reply(ctx, req, i18n.AtOK, local, req.pref.Timezone.Name(), delta, rem.ID)
	d.record(ctx, audit.ActionCreateAt, req, "rid", rem.ID)
}

func (d *Dispatcher) createIn(ctx context.Context, req request, delay time.Duration, body string) {
	result, err := d.services.CreateReminder.Run(ctx, createreminder.Input{
		User: req.user,
		Body: body,
		At:   d.now().Add(delay),
	})
	if err != nil {
		d.replyError(ctx, req, err)
		d.record(ctx, audit.ActionCreateFailure, req, "error", err.Error())
		return
	}

	rem := result.Reminder
	req.pref = result.Preference
	d.reply(
		ctx,
		req,
		i18n.InOK,
		i18n.Delta(req.lang(), delay),
		i18n.LocalTime(rem.At, req.location()),
		req.pref.Timezone.Name(),
		rem.ID,
	)
	d.record(ctx, audit.ActionCreateIn, req, "rid", rem.ID, "minutes", int(delay.Minutes()))
}

func (d *Dispatcher) handleList(ctx context.Context, req request) {
	result, err := d.services.ListUserReminders.Run(ctx, listuserreminders.Input{User: req.user})
	if err != nil {
		d.replyError(ctx, req, err)
		d.record(ctx, audit.ActionList, req, "error", err.Error())
		return
	}
	d.record(ctx, audit.ActionList, req, "count", len(result.Reminders))
	if len(result.Reminders) == 0 {
		d.reply(ctx, req, i18n.ListEmpty)
		return
	}

	now := d.now()
	lines := make([]string, 0, len(result.Reminders)+1)
	lines = append(lines, i18n.T(req.lang(), i18n.ListHeader, req.pref.Timezone.Name()))
	for _, rem := range result.Reminders {
		lines = append(lines, i18n.T(
			req.lang(),
			i18n.ListItem,
			rem.ID,
			i18n.LocalTime(rem.At, req.location()),
			req.pref.Timezone.Name(),
			i18n.Delta(req.lang(), rem.At.Sub(now)),
			rem.Body,
		))
	}
	d.replyText(ctx, req, strings.Join(lines, "\n"))
}

func (d *Dispatcher) handleCancel(ctx context.Context, req request, args string) {
	if args == "" {
		d.askCancel(ctx, req)
		return
	}
	raw := strings.Fields(args)[0]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		d.reply(ctx, req, i18n.CancelNaN)
		d.record(ctx, audit.ActionCancel, req, "invalid", raw)
		return
	}
	d.cancel(ctx, req, reminder.ID(id))
}

func (d *Dispatcher) askCancel(ctx context.Context, req request) {
	result, err := d.services.ListUserReminders.Run(ctx, listuserreminders.Input{
		User:  req.user,
		Limit: c.NewOptional(uint(MAX_CANCEL_BUTTONS), true),
	})
	if err != nil {
		d.replyError(ctx, req, err)
		d.record(ctx, audit.ActionCancel, req, "error", err.Error())
		return
	}
	d.record(ctx, audit.ActionCancel, req, "mode", "menu", "count", len(result.Reminders))
	if len(result.Reminders) == 0 {
		d.reply(ctx, req, i18n.ListEmpty)
		return
	}
	d.replyWithButtons(ctx, req, i18n.T(req.lang(), i18n.ChooseCancel), cancelMenu(result.Reminders))
}

func (d *Dispatcher) cancel(ctx context.Context, req request, id reminder.ID) {
	_, err := d.services.CancelReminder.Run(ctx, cancelreminder.Input{User: req.user, ReminderID: id})
	d.record(ctx, audit.ActionCancel, req, "rid", id, "ok", err == nil)
	if err != nil {
		d.replyError(ctx, req, err)
		return
	}
	d.reply(ctx, req, i18n.CancelOK, id)
}

func (d *Dispatcher) handleTimezone(ctx context.Context, req request, args string) {
	if args == "" {
		d.replyWithButtons(
			ctx,
			req,
			i18n.T(req.lang(), i18n.TzShow, req.pref.Timezone.Name()),
			timezoneMenu(),
		)
		d.record(ctx, audit.ActionTimezone, req)
		return
	}
	d.setTimezone(ctx, req, args)
}

func (d *Dispatcher) setTimezone(ctx context.Context, req request, spec string) {
	result, err := d.services.SetTimezone.Run(ctx, settimezone.Input{User: req.user, Spec: spec})
	if err != nil {
		d.replyError(ctx, req, err)
		d.record(ctx, audit.ActionTimezone, req, "invalid", spec, "error", err.Error())
		return
	}
	req.pref = result.Preference
	tz := req.pref.Timezone.Name()
	if result.FromLocalTime {
		d.reply(ctx, req, i18n.TzOffsetOK, tz)
		d.record(ctx, audit.ActionSetTzOffset, req, "tz", tz)
		return
	}
	d.reply(ctx, req, i18n.TzOK, tz)
	d.record(ctx, audit.ActionSetTimezone, req, "tz", tz)
}

func (d *Dispatcher) handleLanguage(ctx context.Context, req request, args string) {
	if args == "" {
		d.replyWithButtons(
			ctx,
			req,
			i18n.T(req.lang(), i18n.LangShow, req.lang().String()),
			languageMenu(),
		)
		d.record(ctx, audit.ActionLanguage, req)
		return
	}
	d.setLanguage(ctx, req, args)
}

func (d *Dispatcher) setLanguage(ctx context.Context, req request, code string) {
	result, err := d.services.SetLanguage.Run(ctx, setlanguage.Input{User: req.user, Language: code})
	if err != nil {
		d.replyError(ctx, req, err)
		d.record(ctx, audit.ActionLanguage, req, "invalid", code, "error", err.Error())
		return
	}
	req.pref = result.Preference
	d.reply(ctx, req, i18n.LangOK, req.lang().String())
	d.record(ctx, audit.ActionSetLanguage, req, "lang", req.lang().String())
}

func (d *Dispatcher) handleSnooze(ctx context.Context, req request, args string) {
	fields := strings.Fields(args)
	if len(fields) < 2 {
		d.reply(ctx, req, i18n.SnoozeNeed)
		d.record(ctx, audit.ActionSnoozeCommand, req, "mode", "usage")
		return
	}
	id, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		d.reply(ctx, req, i18n.CancelNaN)
		d.record(ctx, audit.ActionSnoozeCommand, req, "invalid", fields[0])
		return
	}
	resolution, err := d.resolver.Resolve(ctx, reminder.Query{
		Text:      strings.Join(fields[1:], " "),
		Location:  req.location(),
		Reference: d.now(),
		Shape:     reminder.ShapeRelative,
	})
	if err != nil {
		d.replyError(ctx, req, err)
		d.record(ctx, audit.ActionSnoozeCommand, req, "rid", id, "error", err.Error())
		return
	}
	d.record(ctx, audit.ActionSnoozeCommand, req, "rid", id)
	d.snooze(ctx, req, reminder.ID(id), resolution.Delay)
}

func (d *Dispatcher) snooze(ctx context.Context, req request, id reminder.ID, duration time.Duration) {
	result, err := d.services.SnoozeReminder.Run(ctx, snoozereminder.Input{
		User:       req.user,
		ReminderID: id,
		Duration:   duration,
	})
	if err != nil {
		d.replyError(ctx, req, err)
		d.record(ctx, audit.ActionSnooze, req, "source", id, "error", err.Error())
		return
	}

	rem := result.Reminder
	req.pref = result.Preference
	d.reply(
		ctx,
		req,
		i18n.SnoozeOK,
		i18n.LocalTime(rem.At, req.location()),
		req.pref.Timezone.Name(),
		i18n.Delta(req.lang(), duration),
		rem.ID,
	)
	d.record(ctx, audit.ActionSnooze, req, "rid", rem.ID, "source", id, "minutes", int(duration.Minutes()))
}

func (d *Dispatcher) handleRestart(ctx context.Context, req request) {
	if !d.admins.IsAdmin(req.user) {
		d.log.Warning(ctx, "Restart requested by a non-admin.", logging.Entry("user", req.user.String()))
		d.reply(ctx, req, i18n.AdminOnly)
		d.record(ctx, audit.ActionRestart, req, "ok", false)
		return
	}
	d.log.Info(ctx, "Restart requested.", logging.Entry("user", req.user.String()))
	d.reply(ctx, req, i18n.Restarting)
	d.record(ctx, audit.ActionRestart, req, "ok", true)
	d.restart()
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
