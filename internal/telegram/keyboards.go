package telegram

import (
	"fmt"
	"remindbot/internal/core/domain/bot"
	"remindbot/internal/core/domain/preference"
	"remindbot/internal/core/domain/reminder"
	"remindbot/internal/i18n"
)

const (
	MAX_CANCEL_BUTTONS = 10
	MINUTES_STEP       = 5
	MINUTES_MAX        = 60
	MINUTES_PER_ROW    = 6
)

var timezonePresets = []string{"Asia/Bangkok", "Europe/Moscow", "Europe/London", "UTC"}

func mainMenu(lang preference.Language) [][]bot.Button {
	return [][]bot.Button{
		{
			{Text: i18n.T(lang, i18n.ButtonList), Data: "menu:list"},
			{Text: i18n.T(lang, i18n.ButtonIn), Data: "menu:in"},
		},
		{
			{Text: i18n.T(lang, i18n.ButtonCancel), Data: "menu:cancel"},
		},
		{
			{Text: i18n.T(lang, i18n.ButtonTz), Data: "menu:tz"},
			{Text: i18n.T(lang, i18n.ButtonLang), Data: "menu:lang"},
		},
	}
}

// minutesMenu offers quick relative reminders from 5 to 60 minutes.
func minutesMenu() [][]bot.Button {
	rows := make([][]bot.Button, 0)
	row := make([]bot.Button, 0, MINUTES_PER_ROW)
	for m := MINUTES_STEP; m <= MINUTES_MAX; m += MINUTES_STEP {
		row = append(row, bot.Button{Text: fmt.Sprint(m), Data: fmt.Sprintf("in:%d", m)})
		if len(row) == MINUTES_PER_ROW {
			rows = append(rows, row)
			row = make([]bot.Button, 0, MINUTES_PER_ROW)
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}

func cancelMenu(reminders []reminder.Reminder) [][]bot.Button {
	rows := make([][]bot.Button, 0, len(reminders))
	for _, rem := range reminders {
		rows = append(rows, []bot.Button{{
			Text: fmt.Sprintf("ID %d: %s", rem.ID, shorten(rem.Body, 24)),
			Data: fmt.Sprintf("cancel:%d", rem.ID),
		}})
	}
	return rows
}

func timezoneMenu() [][]bot.Button {
	rows := make([][]bot.Button, 0, len(timezonePresets))
	for _, tz := range timezonePresets {
		rows = append(rows, []bot.Button{{Text: tz, Data: "tz:" + tz}})
	}
	return rows
}

func languageMenu() [][]bot.Button {
	return [][]bot.Button{
		{{Text: "Русский", Data: "lang:ru"}},
		{{Text: "English", Data: "lang:en"}},
	}
}

func shorten(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

// BotCommands is the command list shown by Telegram clients.
func BotCommands(lang preference.Language) []bot.Command {
	return []bot.Command{
		{Name: "start", Description: i18n.T(lang, i18n.DescStart)},
		{Name: "in", Description: i18n.T(lang, i18n.DescIn)},
		{Name: "at", Description: i18n.T(lang, i18n.DescAt)},
		{Name: "list", Description: i18n.T(lang, i18n.DescList)},
		{Name: "cancel", Description: i18n.T(lang, i18n.DescCancel)},
		{Name: "snooze", Description: i18n.T(lang, i18n.DescSnooze)},
		{Name: "tz", Description: i18n.T(lang, i18n.DescTz)},
		{Name: "lang", Description: i18n.T(lang, i18n.DescLang)},
		{Name: "help", Description: i18n.T(lang, i18n.DescHelp)},
	}
}
