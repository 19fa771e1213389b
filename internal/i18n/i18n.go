package i18n

import (
	"fmt"
	"remindbot/internal/core/domain/preference"
	"strings"
	"time"
)

type Key string

const (
	Help            Key = "help"
	NeedDuration    Key = "need_duration"
	EmptyText       Key = "empty_text"
	TextTooLong     Key = "text_too_long"
	TimePassed      Key = "time_passed"
	TooFar          Key = "too_far"
	InOK            Key = "in_ok"
	AtNeed          Key = "at_need"
	Unparsed        Key = "unparsed"
	AtOK            Key = "at_ok"
	ListEmpty       Key = "list_empty"
	ListHeader      Key = "list_header"
	ListItem        Key = "list_item"
	CancelNeed      Key = "cancel_need"
	CancelNaN       Key = "cancel_nan"
	CancelOK        Key = "cancel_ok"
	CancelNotFound  Key = "cancel_not_found"
	SnoozeNeed      Key = "snooze_need"
	SnoozeBad       Key = "snooze_bad"
	SnoozeOK        Key = "snooze_ok"
	TzShow          Key = "tz_show"
	TzBad           Key = "tz_bad"
	TzOK            Key = "tz_ok"
	TzOffsetOK      Key = "tz_offset_ok"
	LangShow        Key = "lang_show"
	LangBad         Key = "lang_bad"
	LangOK          Key = "lang_ok"
	Error           Key = "error"
	RateLimited     Key = "rate_limited"
	LatePrefix      Key = "late_prefix"
	ReminderHeader  Key = "reminder_header"
	ChooseAction    Key = "choose_action"
	ChooseCancel    Key = "choose_cancel"
	ChooseLang      Key = "choose_lang"
	ChooseTz        Key = "choose_tz"
	ChooseInMinutes Key = "choose_in_min"
	EnterText       Key = "enter_text"
	UnknownInput    Key = "unknown_input"
	AdminOnly       Key = "admin_only"
	Restarting      Key = "restarting"
	ButtonList      Key = "btn_list"
	ButtonIn        Key = "btn_in"
	ButtonCancel    Key = "btn_cancel"
	ButtonTz        Key = "btn_tz"
	ButtonLang      Key = "btn_lang"
	ButtonSnooze15  Key = "snooze_15"
	ButtonSnooze30  Key = "snooze_30"
	ButtonSnooze60  Key = "snooze_60"
	DescStart       Key = "desc_start"
	DescHelp        Key = "desc_help"
	DescIn          Key = "desc_in"
	DescAt          Key = "desc_at"
	DescList        Key = "desc_list"
	DescCancel      Key = "desc_cancel"
	DescSnooze      Key = "desc_snooze"
	DescTz          Key = "desc_tz"
	DescLang        Key = "desc_lang"
)

var bundles = map[preference.Language]map[Key]string{
	preference.LanguageRU: {
		Help: "Привет! Я бот-напоминальщик.\n\n" +
			"/in <длительность> <текст> - напомнить через время. Например: /in 20m выпить воду\n" +
			"/at <время> [дата] <текст> - напомнить в момент. Например: /at завтра 9:30 позвонить\n" +
			"/list - активные напоминания\n" +
			"/cancel <id> - отменить напоминание\n" +
			"/snooze <id> <длительность> - напомнить ещё раз позже\n" +
			"/tz [Region/City | ЧЧ:ММ] - показать или сменить часовой пояс\n" +
			"/lang [ru|en] - язык\n\n" +
			"Часовой пояс: %s. Язык: %s.",
		NeedDuration:    "Укажите длительность и текст. Например: /in 20m выпить воду",
		EmptyText:       "Пустой текст напоминания. Добавьте текст после времени.",
		TextTooLong:     "Слишком длинный текст напоминания.",
		TimePassed:      "Это время уже прошло. Укажите будущий момент.",
		TooFar:          "Слишком далеко в будущем.",
		InOK:            "Ок, напомню через %s в %s (%s).\nID: %d",
		AtNeed:          "Укажите дату/время и текст. Например: /at завтра 9:00 купить хлеб",
		Unparsed:        "Не смог понять дату/время. Примеры: 'через 10m', 'завтра 9:30', '2025-12-31 23:00'",
		AtOK:            "Ок, напомню %s (%s) - через %s.\nID: %d",
		ListEmpty:       "Активных напоминаний нет.",
		ListHeader:      "Активные напоминания (TZ %s):",
		ListItem:        "ID %d: %s (%s) - через %s - %s",
		CancelNeed:      "Укажите ID: /cancel <id>",
		CancelNaN:       "ID должен быть числом: /cancel 123",
		CancelOK:        "Отменено напоминание ID %d.",
		CancelNotFound:  "Не найдено активное напоминание с таким ID (или уже выполнено/отменено).",
		SnoozeNeed:      "Укажите: /snooze <id> <длительность>",
		SnoozeBad:       "Длительность должна быть от 1 минуты до 30 дней.",
		SnoozeOK:        "Отложено до %s (%s) - через %s. ID: %d",
		TzShow:          "Текущий часовой пояс: %s\nУстановить: /tz Region/City (напр., Europe/Moscow) или /tz ЧЧ:ММ",
		TzBad:           "Некорректный часовой пояс. Пример: Europe/Moscow",
		TzOK:            "Часовой пояс установлен: %s",
		TzOffsetOK:      "Часовой пояс установлен по вашему времени: %s",
		LangShow:        "Текущий язык: %s\nУстановить: /lang ru | en",
		LangBad:         "Поддерживаются только: ru, en",
		LangOK:          "Язык установлен: %s",
		Error:           "Произошла внутренняя ошибка. Попробуйте позже.",
		RateLimited:     "Слишком много напоминаний. Попробуйте через минуту.",
		LatePrefix:      "(С опозданием) ",
		ReminderHeader:  "⏰ Напоминание",
		ChooseAction:    "Выберите действие:",
		ChooseCancel:    "Выберите напоминание для отмены:",
		ChooseLang:      "Выберите язык:",
		ChooseTz:        "Выберите часовой пояс:",
		ChooseInMinutes: "Через сколько минут (шаг 5):",
		EnterText:       "Введите текст напоминания и отправьте сообщением",
		UnknownInput:    "Не понял. Наберите /help",
		AdminOnly:       "Команда доступна только администратору.",
		Restarting:      "Перезапускаюсь...",
		ButtonList:      "Список",
		ButtonIn:        "/in (мин)",
		ButtonCancel:    "Отменить",
		ButtonTz:        "Часовой пояс",
		ButtonLang:      "Язык",
		ButtonSnooze15:  "+15м",
		ButtonSnooze30:  "+30м",
		ButtonSnooze60:  "+60м",
		DescStart:       "Начать и показать меню",
		DescHelp:        "Справка",
		DescIn:          "Напомнить через время",
		DescAt:          "Напомнить в момент",
		DescList:        "Активные напоминания",
		DescCancel:      "Отменить напоминание",
		DescSnooze:      "Отложить напоминание",
		DescTz:          "Часовой пояс",
		DescLang:        "Язык",
	},
	preference.LanguageEN: {
		Help: "Hi! I'm a reminder bot.\n\n" +
			"/in <duration> <text> - remind after a period. E.g. /in 20m drink water\n" +
			"/at <time> [date] <text> - remind at a moment. E.g. /at tomorrow 9:30 call mom\n" +
			"/list - active reminders\n" +
			"/cancel <id> - cancel a reminder\n" +
			"/snooze <id> <duration> - remind again later\n" +
			"/tz [Region/City | HH:MM] - show or set timezone\n" +
			"/lang [ru|en] - language\n\n" +
			"Timezone: %s. Language: %s.",
		NeedDuration:    "Provide duration and text. E.g. /in 20m drink water",
		EmptyText:       "Empty reminder text. Add text after the time.",
		TextTooLong:     "Reminder text is too long.",
		TimePassed:      "That time is in the past. Use a future moment.",
		TooFar:          "That is too far in the future.",
		InOK:            "Ok, will remind in %s at %s (%s).\nID: %d",
		AtNeed:          "Provide datetime and text. E.g. /at tomorrow 9:00 buy bread",
		Unparsed:        "Couldn't parse date/time. Examples: 'in 10m', 'tomorrow 9:30', '2025-12-31 23:00'",
		AtOK:            "Ok, will remind %s (%s) - in %s.\nID: %d",
		ListEmpty:       "No active reminders.",
		ListHeader:      "Active reminders (TZ %s):",
		ListItem:        "ID %d: %s (%s) - in %s - %s",
		CancelNeed:      "Provide ID: /cancel <id>",
		CancelNaN:       "ID must be a number: /cancel 123",
		CancelOK:        "Canceled reminder ID %d.",
		CancelNotFound:  "No active reminder with that ID (or already done/canceled).",
		SnoozeNeed:      "Usage: /snooze <id> <duration>",
		SnoozeBad:       "Duration must be between 1 minute and 30 days.",
		SnoozeOK:        "Snoozed to %s (%s) - in %s. ID: %d",
		TzShow:          "Current timezone: %s\nSet: /tz Region/City (e.g., Europe/Moscow) or /tz HH:MM",
		TzBad:           "Invalid timezone. Example: Europe/Moscow",
		TzOK:            "Timezone set to: %s",
		TzOffsetOK:      "Timezone set from your local time: %s",
		LangShow:        "Current language: %s\nSet: /lang ru | en",
		LangBad:         "Supported: ru, en",
		LangOK:          "Language set: %s",
		Error:           "Internal error. Please try again later.",
		RateLimited:     "Too many reminders. Try again in a minute.",
		LatePrefix:      "(Late) ",
		ReminderHeader:  "⏰ Reminder",
		ChooseAction:    "Choose an action:",
		ChooseCancel:    "Choose a reminder to cancel:",
		ChooseLang:      "Choose language:",
		ChooseTz:        "Choose timezone:",
		ChooseInMinutes: "In how many minutes (step 5):",
		EnterText:       "Type the reminder text and send it",
		UnknownInput:    "I didn't get that. Type /help",
		AdminOnly:       "This command is for administrators only.",
		Restarting:      "Restarting...",
		ButtonList:      "List",
		ButtonIn:        "/in (min)",
		ButtonCancel:    "Cancel",
		ButtonTz:        "Timezone",
		ButtonLang:      "Language",
		ButtonSnooze15:  "+15m",
		ButtonSnooze30:  "+30m",
		ButtonSnooze60:  "+60m",
		DescStart:       "Start and show the menu",
		DescHelp:        "Help",
		DescIn:          "Remind after a period",
		DescAt:          "Remind at a moment",
		DescList:        "Active reminders",
		DescCancel:      "Cancel a reminder",
		DescSnooze:      "Snooze a reminder",
		DescTz:          "Timezone",
		DescLang:        "Language",
	},
}

// T returns the localized text for key formatted with args.
// Unknown languages fall back to Russian.
func T(lang preference.Language, key Key, args ...interface{}) string {
	bundle, ok := bundles[lang]
	if !ok {
		bundle = bundles[preference.LanguageRU]
	}
	text, ok := bundle[key]
	if !ok {
		text = string(key)
	}
	if len(args) == 0 {
		return text
	}
	return fmt.Sprintf(text, args...)
}

// Delta renders a duration briefly like "1d 2h 5m". Seconds are shown only
// when nothing larger is present.
func Delta(lang preference.Language, d time.Duration) string {
	if d < 0 {
		d = -d
	}
	total := int64(d / time.Second)
	days := total / 86400
	hours := total % 86400 / 3600
	minutes := total % 3600 / 60
	seconds := total % 60

	units := [4]string{"д", "ч", "м", "с"}
	if lang == preference.LanguageEN {
		units = [4]string{"d", "h", "m", "s"}
	}

	parts := make([]string, 0, 3)
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%d%s", days, units[0]))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%d%s", hours, units[1]))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%d%s", minutes, units[2]))
	}
	if len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%d%s", seconds, units[3]))
	}
	return strings.Join(parts, " ")
}

// LocalTime renders t in loc as "2006-01-02 15:04".
func LocalTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02 15:04")
}
