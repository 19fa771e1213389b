package reminder

import (
	"context"
	c "remindbot/internal/core/domain/common"
	"remindbot/internal/core/domain/user"
	"time"
)

type CreateInput struct {
	ChatID    user.ChatID
	UserID    user.ID
	Body      string
	At        time.Time
	Timezone  string
	CreatedAt time.Time
}

type ListPendingInput struct {
	UserID c.Optional[user.ID]
	Limit  c.Optional[uint]
}

type Repository interface {
	Create(ctx context.Context, input CreateInput) (Reminder, error)
	GetByID(ctx context.Context, id ID) (Reminder, error)
	// ListPending returns pending reminders ordered by At ascending.
	ListPending(ctx context.Context, input ListPendingInput) ([]Reminder, error)
	// MarkDelivered and Cancel succeed only for pending reminders,
	// otherwise they return ErrReminderNotFound.
	MarkDelivered(ctx context.Context, id ID, at time.Time) (Reminder, error)
	Cancel(ctx context.Context, id ID, at time.Time) (Reminder, error)
	// Release moves a delivered reminder back to pending, otherwise it returns ErrReminderNotFound.
	Release(ctx context.Context, id ID) (Reminder, error)
}
