package telegrambotmessagesender

import (
	"context"
	"errors"
	"remindbot/internal/core/domain/bot"
	"remindbot/internal/core/domain/logging"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"
)

type fakeBotAPI struct {
	sent   []tgbotapi.Chattable
	errors []error
}

func (a *fakeBotAPI) nextError() error {
	if len(a.errors) == 0 {
		return nil
	}
	err := a.errors[0]
	a.errors = a.errors[1:]
	return err
}

func (a *fakeBotAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	a.sent = append(a.sent, c)
	return tgbotapi.Message{}, a.nextError()
}

func (a *fakeBotAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	a.sent = append(a.sent, c)
	return &tgbotapi.APIResponse{Ok: true}, a.nextError()
}

func newSender(api *fakeBotAPI) (*TelegramBotMessageSender, *[]time.Duration) {
	waited := make([]time.Duration, 0)
	sender := New(api, logging.NewFakeLogger())
	sender.wait = func(ctx context.Context, d time.Duration) error {
		waited = append(waited, d)
		return nil
	}
	return sender, &waited
}

func TestSendMessageWithButtons(t *testing.T) {
	// Setup ---
	api := &fakeBotAPI{}
	sender, _ := newSender(api)

	// Exercise ---
	err := sender.SendMessage(context.Background(), bot.Message{
		ChatID: 100,
		Text:   "hello",
		Buttons: [][]bot.Button{
			{{Text: "+15m", Data: "snooze:1:15"}, {Text: "+30m", Data: "snooze:1:30"}},
		},
	})

	// Verify ---
	assert := require.New(t)
	assert.Nil(err)
	assert.Len(api.sent, 1)
	msg, ok := api.sent[0].(tgbotapi.MessageConfig)
	assert.True(ok)
	assert.Equal(int64(100), msg.ChatID)
	assert.Equal("hello", msg.Text)
	markup, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	assert.True(ok)
	assert.Len(markup.InlineKeyboard, 1)
	assert.Len(markup.InlineKeyboard[0], 2)
	assert.Equal("snooze:1:30", *markup.InlineKeyboard[0][1].CallbackData)
}

func TestSendMessageWithoutButtonsHasNoMarkup(t *testing.T) {
	api := &fakeBotAPI{}
	sender, _ := newSender(api)

	err := sender.SendMessage(context.Background(), bot.Message{ChatID: 1, Text: "plain"})

	require.Nil(t, err)
	msg := api.sent[0].(tgbotapi.MessageConfig)
	require.Nil(t, msg.ReplyMarkup)
}

func TestFloodControlIsRetriedOnce(t *testing.T) {
	cases := []struct {
		id             string
		errors         []error
		expectedCalls  int
		expectedWaited []time.Duration
		expectError    bool
	}{
		{
			id:             "retry-succeeds",
			errors:         []error{&tgbotapi.Error{Code: 429, ResponseParameters: tgbotapi.ResponseParameters{RetryAfter: 3}}},
			expectedCalls:  2,
			expectedWaited: []time.Duration{3 * time.Second},
		},
		{
			id: "retry-fails",
			errors: []error{
				&tgbotapi.Error{Code: 429, ResponseParameters: tgbotapi.ResponseParameters{RetryAfter: 1}},
				&tgbotapi.Error{Code: 429, ResponseParameters: tgbotapi.ResponseParameters{RetryAfter: 1}},
			},
			expectedCalls:  2,
			expectedWaited: []time.Duration{time.Second},
			expectError:    true,
		},
		{
			id:             "too-long",
			errors:         []error{&tgbotapi.Error{Code: 429, ResponseParameters: tgbotapi.ResponseParameters{RetryAfter: 600}}},
			expectedCalls:  1,
			expectedWaited: []time.Duration{},
			expectError:    true,
		},
		{
			id:             "other-error",
			errors:         []error{errors.New("connection reset")},
			expectedCalls:  1,
			expectedWaited: []time.Duration{},
			expectError:    true,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			// Setup ---
			api := &fakeBotAPI{errors: testcase.errors}
			sender, waited := newSender(api)

			// Exercise ---
			err := sender.SendMessage(context.Background(), bot.Message{ChatID: 1, Text: "x"})

			// Verify ---
			assert := require.New(t)
			assert.Equal(testcase.expectError, err != nil)
			assert.Len(api.sent, testcase.expectedCalls)
			assert.Equal(testcase.expectedWaited, *waited)
		})
	}
}

func TestSendErrorsAreClassified(t *testing.T) {
	cases := []struct {
		id                string
		err               error
		expectUnavailable bool
	}{
		{id: "blocked", err: &tgbotapi.Error{Code: 403, Message: "Forbidden: bot was blocked by the user"}, expectUnavailable: true},
		{id: "chat-not-found", err: &tgbotapi.Error{Code: 400, Message: "Bad Request: chat not found"}, expectUnavailable: true},
		{id: "server-error", err: &tgbotapi.Error{Code: 502, Message: "Bad Gateway"}},
		{id: "timeout", err: errors.New("i/o timeout")},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			// Setup ---
			api := &fakeBotAPI{errors: []error{testcase.err}}
			sender, _ := newSender(api)

			// Exercise ---
			err := sender.SendMessage(context.Background(), bot.Message{ChatID: 1, Text: "x"})

			// Verify ---
			assert := require.New(t)
			assert.NotNil(err)
			assert.Equal(testcase.expectUnavailable, errors.Is(err, bot.ErrRecipientUnavailable))
		})
	}
}

func TestAnswerCallback(t *testing.T) {
	api := &fakeBotAPI{}
	sender, _ := newSender(api)

	err := sender.AnswerCallback(context.Background(), "cb-1", "")

	require.Nil(t, err)
	callback, ok := api.sent[0].(tgbotapi.CallbackConfig)
	require.True(t, ok)
	require.Equal(t, "cb-1", callback.CallbackQueryID)
}

func TestSetCommands(t *testing.T) {
	api := &fakeBotAPI{}
	sender, _ := newSender(api)

	err := sender.SetCommands(
		context.Background(),
		[]bot.Command{{Name: "in", Description: "remind in"}, {Name: "list", Description: "list"}},
		"en",
	)

	require.Nil(t, err)
	config, ok := api.sent[0].(tgbotapi.SetMyCommandsConfig)
	require.True(t, ok)
	require.Equal(t, "en", config.LanguageCode)
	require.Len(t, config.Commands, 2)
	require.Equal(t, "in", config.Commands[0].Command)
}

func TestWaitContextIsCancellable(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := waitContext(ctx, time.Hour)

	require.ErrorIs(t, err, context.Canceled)
}
