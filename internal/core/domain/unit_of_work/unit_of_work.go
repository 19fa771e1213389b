package uow

import (
	"context"
	"remindbot/internal/core/domain/preference"
	"remindbot/internal/core/domain/reminder"
)

type Context interface {
	Rollback(ctx context.Context) error
	Commit(ctx context.Context) error

	Reminders() reminder.Repository
	Preferences() preference.Repository
}

type UnitOfWork interface {
	Begin(ctx context.Context) (Context, error)
}
