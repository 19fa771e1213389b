package preference

import (
	"remindbot/internal/core/domain/user"
	"time"
)

type Language struct {
	v string
}

func (l Language) String() string {
	return l.v
}

var (
	LanguageUnknown = Language{}
	LanguageRU      = Language{v: "ru"}
	LanguageEN      = Language{v: "en"}
)

func ParseLanguage(value string) (Language, error) {
	switch value {
	case "ru", "RU", "рус", "русский":
		return LanguageRU, nil
	case "en", "EN", "eng", "english":
		return LanguageEN, nil
	default:
		return LanguageUnknown, ErrInvalidLanguage
	}
}

type Preference struct {
	UserID    user.ID
	ChatID    user.ChatID
	Timezone  Timezone
	Language  Language
	UpdatedAt time.Time
}

// Defaults holds the process-wide fallbacks for users without a stored preference.
type Defaults struct {
	Timezone Timezone
	Language Language
}

func (d Defaults) For(u user.User) Preference {
	return Preference{
		UserID:   u.ID,
		ChatID:   u.ChatID,
		Timezone: d.Timezone,
		Language: d.Language,
	}
}
