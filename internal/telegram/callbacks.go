package telegram

import (
	"context"
	"remindbot/internal/core/domain/audit"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/domain/reminder"
	"remindbot/internal/i18n"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (d *Dispatcher) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if err := d.messenger.AnswerCallback(ctx, cb.ID, ""); err != nil {
		d.log.Warning(ctx, "Could not answer callback.", logging.Entry("err", err))
	}
	u, ok := userFromCallback(cb)
	if !ok {
		return
	}
	req, ok := d.newRequest(ctx, u)
	if !ok {
		return
	}
	d.record(ctx, audit.ActionCallback, req, "data", cb.Data)

	action, arg, _ := strings.Cut(cb.Data, ":")
	switch action {
	case "in":
		d.handleMinutesCallback(ctx, req, arg)
	case "snooze":
		d.handleSnoozeCallback(ctx, req, arg)
	case "cancel":
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			d.ignoreCallback(ctx, req, cb.Data)
			return
		}
		d.cancel(ctx, req, reminder.ID(id))
	case "tz":
		d.setTimezone(ctx, req, arg)
	case "lang":
		d.setLanguage(ctx, req, arg)
	case "menu":
		d.handleMenuCallback(ctx, req, arg)
	default:
		d.ignoreCallback(ctx, req, cb.Data)
	}
}

func (d *Dispatcher) handleMinutesCallback(ctx context.Context, req request, arg string) {
	minutes, err := strconv.Atoi(arg)
	if err != nil || minutes <= 0 || minutes > MINUTES_MAX || minutes%MINUTES_STEP != 0 {
		d.ignoreCallback(ctx, req, "in:"+arg)
		return
	}
	d.setPending(req.user.ChatID, time.Duration(minutes)*time.Minute)
	d.reply(ctx, req, i18n.EnterText)
	d.record(ctx, audit.ActionCallbackIn, req, "minutes", minutes)
}

// handleSnoozeCallback handles "<id>:<minutes>" from the buttons under a delivered reminder.
func (d *Dispatcher) handleSnoozeCallback(ctx context.Context, req request, arg string) {
	rawID, rawMinutes, ok := strings.Cut(arg, ":")
	id, idErr := strconv.ParseInt(rawID, 10, 64)
	minutes, minutesErr := strconv.Atoi(rawMinutes)
	if !ok || idErr != nil || minutesErr != nil {
		d.ignoreCallback(ctx, req, "snooze:"+arg)
		return
	}
	d.record(ctx, audit.ActionCallbackSnooze, req, "rid", id, "minutes", minutes)
	d.snooze(ctx, req, reminder.ID(id), time.Duration(minutes)*time.Minute)
}

func (d *Dispatcher) handleMenuCallback(ctx context.Context, req request, arg string) {
	switch arg {
	case "list":
		d.handleList(ctx, req)
	case "in":
		d.handleIn(ctx, req, "")
	case "cancel":
		d.askCancel(ctx, req)
	case "tz":
		d.handleTimezone(ctx, req, "")
	case "lang":
		d.handleLanguage(ctx, req, "")
	default:
		d.ignoreCallback(ctx, req, "menu:"+arg)
	}
}

// ignoreCallback drops malformed data. The callback itself is already audited on arrival.
func (d *Dispatcher) ignoreCallback(ctx context.Context, req request, data string) {
	d.log.Debug(
		ctx,
		"Unknown callback ignored.",
		logging.Entry("data", data),
		logging.Entry("user", req.user.String()),
	)
}
