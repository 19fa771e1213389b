package bot

import (
	"context"
	"errors"
	"remindbot/internal/core/domain/user"
)

// ErrRecipientUnavailable marks send failures that repeating the request will not fix,
// such as a blocked bot or a deleted chat.
var ErrRecipientUnavailable = errors.New("recipient is unavailable")

type Button struct {
	Text string
	Data string
}

type Message struct {
	ChatID  user.ChatID
	Text    string
	Buttons [][]Button
}

type Command struct {
	Name        string
	Description string
}

type Messenger interface {
	SendMessage(ctx context.Context, m Message) error
	// AnswerCallback acknowledges an inline button press, text may be empty.
	AnswerCallback(ctx context.Context, callbackID string, text string) error
}
