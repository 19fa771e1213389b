package remindersender

import (
	"context"
	"errors"
	"remindbot/internal/core/domain/bot"
	"remindbot/internal/core/domain/reminder"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSendReminder(t *testing.T) {
	cases := []struct {
		id               string
		options          reminder.SendOptions
		expectedText     string
		expectedButtonRU bool
	}{
		{
			id:           "1",
			options:      reminder.SendOptions{Language: "en"},
			expectedText: "⏰ Reminder\ndrink water",
		},
		{
			id:           "2",
			options:      reminder.SendOptions{Language: "en", Late: true},
			expectedText: "(Late) ⏰ Reminder\ndrink water",
		},
		{
			id:               "3",
			options:          reminder.SendOptions{Language: "ru"},
			expectedText:     "⏰ Напоминание\ndrink water",
			expectedButtonRU: true,
		},
		{
			id:               "4",
			options:          reminder.SendOptions{},
			expectedText:     "⏰ Напоминание\ndrink water",
			expectedButtonRU: true,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			// Setup ---
			messenger := bot.NewFakeMessenger()
			sender := NewTelegram(messenger)

			// Exercise ---
			err := sender.SendReminder(
				context.Background(),
				reminder.Reminder{ID: 12, ChatID: 300, Body: "drink water"},
				testcase.options,
			)

			// Verify ---
			assert := require.New(t)
			assert.Nil(err)
			msg, ok := messenger.Last()
			assert.True(ok)
			assert.Equal(testcase.expectedText, msg.Text)
			assert.Len(msg.Buttons, 1)
			assert.Equal(
				[]string{"snooze:12:15", "snooze:12:30", "snooze:12:60"},
				[]string{msg.Buttons[0][0].Data, msg.Buttons[0][1].Data, msg.Buttons[0][2].Data},
			)
			if testcase.expectedButtonRU {
				assert.Equal("+15м", msg.Buttons[0][0].Text)
			} else {
				assert.Equal("+15m", msg.Buttons[0][0].Text)
			}
		})
	}
}

func TestSendReminderError(t *testing.T) {
	messenger := bot.NewFakeMessenger()
	messenger.SendError = errors.New("bot was blocked by the user")
	sender := NewTelegram(messenger)

	err := sender.SendReminder(context.Background(), reminder.Reminder{ID: 1, ChatID: 1, Body: "x"}, reminder.SendOptions{})

	require.ErrorIs(t, err, messenger.SendError)
}
