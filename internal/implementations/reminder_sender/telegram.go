package remindersender

import (
	"context"
	"fmt"
	"remindbot/internal/core/domain/bot"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/preference"
	"remindbot/internal/core/domain/reminder"
	"remindbot/internal/i18n"
)

var snoozeMinutes = []struct {
	minutes int
	label   i18n.Key
}{
	{minutes: 15, label: i18n.ButtonSnooze15},
	{minutes: 30, label: i18n.ButtonSnooze30},
	{minutes: 60, label: i18n.ButtonSnooze60},
}

type TelegramSender struct {
	messenger bot.Messenger
}

func NewTelegram(messenger bot.Messenger) *TelegramSender {
	if messenger == nil {
		panic(e.NewNilArgumentError("messenger"))
	}
	return &TelegramSender{messenger: messenger}
}

func (s *TelegramSender) SendReminder(
	ctx context.Context,
	rem reminder.Reminder,
	options reminder.SendOptions,
) error {
	lang, err := preference.ParseLanguage(options.Language)
	if err != nil {
		lang = preference.LanguageRU
	}

	text := i18n.T(lang, i18n.ReminderHeader) + "\n" + rem.Body
	if options.Late {
		text = i18n.T(lang, i18n.LatePrefix) + text
	}
	return s.messenger.SendMessage(ctx, bot.Message{
		ChatID:  rem.ChatID,
		Text:    text,
		Buttons: [][]bot.Button{snoozeButtons(lang, rem.ID)},
	})
}

func snoozeButtons(lang preference.Language, id reminder.ID) []bot.Button {
	buttons := make([]bot.Button, 0, len(snoozeMinutes))
	for _, option := range snoozeMinutes {
		buttons = append(buttons, bot.Button{
			Text: i18n.T(lang, option.label),
			Data: fmt.Sprintf("snooze:%d:%d", id, option.minutes),
		})
	}
	return buttons
}
