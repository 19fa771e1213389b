package consumers

import (
	"context"
	"remindbot/internal/app/deps"
	dl "remindbot/internal/core/domain/logging"
	"remindbot/internal/telegram"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// ConsumeUpdates long-polls Telegram and feeds the dispatcher until ctx is done.
func ConsumeUpdates(ctx context.Context, deps *deps.Deps, dispatcher *telegram.Dispatcher) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = int(deps.Config.TelegramPollTimeout.Seconds())
	updateConfig.AllowedUpdates = []string{"message", "callback_query"}

	updates := deps.BotAPI.GetUpdatesChan(updateConfig)
	deps.Logger.Info(ctx, "Consumer has started.", dl.Entry("pollTimeout", updateConfig.Timeout))

	err := dispatcher.Run(ctx, updates)

	deps.BotAPI.StopReceivingUpdates()
	deps.Logger.Info(context.Background(), "Consumer stopped.")
	return err
}
