package telegrambotmessagesender

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"remindbot/internal/core/domain/bot"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/logging"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// MAX_RETRY_AFTER caps how long a flood-controlled request waits before its single retry.
const MAX_RETRY_AFTER = 30 * time.Second

type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type TelegramBotMessageSender struct {
	api  botAPI
	log  logging.Logger
	wait func(ctx context.Context, d time.Duration) error
}

func New(api botAPI, log logging.Logger) *TelegramBotMessageSender {
	if api == nil {
		panic(e.NewNilArgumentError("api"))
	}
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	return &TelegramBotMessageSender{api: api, log: log, wait: waitContext}
}

func (s *TelegramBotMessageSender) SendMessage(ctx context.Context, m bot.Message) error {
	msg := tgbotapi.NewMessage(int64(m.ChatID), m.Text)
	if len(m.Buttons) > 0 {
		msg.ReplyMarkup = inlineKeyboard(m.Buttons)
	}
	err := s.withRetry(ctx, func() error {
		_, err := s.api.Send(msg)
		return err
	})
	return classify(err)
}

// classify wraps errors Telegram reports for the request itself, which no retry can fix.
func classify(err error) error {
	var apiErr *tgbotapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	if apiErr.Code == http.StatusBadRequest || apiErr.Code == http.StatusForbidden {
		return fmt.Errorf("%w: %s", bot.ErrRecipientUnavailable, apiErr.Message)
	}
	return err
}

func (s *TelegramBotMessageSender) AnswerCallback(ctx context.Context, callbackID string, text string) error {
	return s.withRetry(ctx, func() error {
		_, err := s.api.Request(tgbotapi.NewCallback(callbackID, text))
		return err
	})
}

// SetCommands registers the command list shown by Telegram clients for languageCode.
// An empty languageCode sets the fallback list.
func (s *TelegramBotMessageSender) SetCommands(
	ctx context.Context,
	commands []bot.Command,
	languageCode string,
) error {
	botCommands := make([]tgbotapi.BotCommand, 0, len(commands))
	for _, command := range commands {
		botCommands = append(botCommands, tgbotapi.BotCommand{
			Command:     command.Name,
			Description: command.Description,
		})
	}
	config := tgbotapi.NewSetMyCommandsWithScopeAndLanguage(
		tgbotapi.NewBotCommandScopeDefault(),
		languageCode,
		botCommands...,
	)
	return s.withRetry(ctx, func() error {
		_, err := s.api.Request(config)
		return err
	})
}

// withRetry repeats call once when Telegram answers with flood control.
func (s *TelegramBotMessageSender) withRetry(ctx context.Context, call func() error) error {
	err := call()
	var apiErr *tgbotapi.Error
	if err == nil || !errors.As(err, &apiErr) || apiErr.RetryAfter <= 0 {
		return err
	}

	retryAfter := time.Duration(apiErr.RetryAfter) * time.Second
	if retryAfter > MAX_RETRY_AFTER {
		return err
	}
	s.log.Warning(
		ctx,
		"Telegram flood control, retrying.",
		logging.Entry("retryAfter", retryAfter),
		logging.Entry("err", err),
	)
	if err := s.wait(ctx, retryAfter); err != nil {
		return err
	}
	return call()
}

func inlineKeyboard(buttons [][]bot.Button) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(buttons))
	for _, row := range buttons {
		keyboardRow := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, button := range row {
			keyboardRow = append(keyboardRow, tgbotapi.NewInlineKeyboardButtonData(button.Text, button.Data))
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(keyboardRow...))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func waitContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
