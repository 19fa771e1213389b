package reminder

import "context"

type SendOptions struct {
	Late     bool
	Language string
}

type Sender interface {
	SendReminder(ctx context.Context, r Reminder, options SendOptions) error
}
