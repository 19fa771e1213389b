package preference

import (
	"context"
	"remindbot/internal/core/domain/user"
	"time"
)

type EnsureInput struct {
	UserID    user.ID
	ChatID    user.ChatID
	Defaults  Defaults
	CreatedAt time.Time
}

type SetTimezoneInput struct {
	UserID    user.ID
	ChatID    user.ChatID
	Timezone  Timezone
	Defaults  Defaults
	UpdatedAt time.Time
}

type SetLanguageInput struct {
	UserID    user.ID
	ChatID    user.ChatID
	Language  Language
	Defaults  Defaults
	UpdatedAt time.Time
}

type Repository interface {
	Get(ctx context.Context, userID user.ID) (Preference, error)
	// Ensure inserts a row filled with defaults unless one already exists.
	Ensure(ctx context.Context, input EnsureInput) (Preference, error)
	SetTimezone(ctx context.Context, input SetTimezoneInput) (Preference, error)
	SetLanguage(ctx context.Context, input SetLanguageInput) (Preference, error)
}
