package main

import (
	"context"
	"fmt"
	"os"
	"remindbot/internal/config"
	"remindbot/internal/core/domain/preference"
	"remindbot/internal/implementations/logging"
	telegrambotmessagesender "remindbot/internal/implementations/telegram_bot_message_sender"
	"remindbot/internal/telegram"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
)

// Registers the command list for every supported language and the fallback list.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	log := logging.NewZapLogger(cfg.LogLevel)
	defer log.Sync()

	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not connect to telegram: %v\n", err)
		os.Exit(1)
	}
	sender := telegrambotmessagesender.New(api, log)

	languages := map[string]preference.Language{
		"":   cfg.Defaults.Language,
		"ru": preference.LanguageRU,
		"en": preference.LanguageEN,
	}
	for code, lang := range languages {
		if err := sender.SetCommands(context.Background(), telegram.BotCommands(lang), code); err != nil {
			fmt.Fprintf(os.Stderr, "could not register commands for language %q: %v\n", code, err)
			os.Exit(1)
		}
		fmt.Printf("Commands successfully registered for bot @%s, language %q\n", api.Self.UserName, code)
	}
}
