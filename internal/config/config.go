package config

import (
	"errors"
	"fmt"
	"os"
	"remindbot/internal/core/domain/preference"
	"remindbot/internal/core/domain/user"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	validation "github.com/go-ozzo/ozzo-validation"
)

var ErrMissingToken = errors.New("telegram bot token is not configured")

type Config struct {
	TelegramBotToken     string        `env:"TELEGRAM_BOT_TOKEN"`
	TelegramBotTokenFile string        `env:"TELEGRAM_BOT_TOKEN_FILE" envDefault:".telegram_token"`
	TelegramPollTimeout  time.Duration `env:"TELEGRAM_POLL_TIMEOUT" envDefault:"30s"`

	DefaultTimezone string `env:"REMIND_BOT_TZ" envDefault:"Asia/Bangkok"`
	DefaultLanguage string `env:"REMIND_BOT_LANG" envDefault:"ru"`

	DBPath       string   `env:"REMIND_DB_PATH" envDefault:"reminders.db"`
	AuditLogPath string   `env:"REMIND_AUDIT_LOG_PATH" envDefault:"/data/audit.log"`
	AdminItems   []string `env:"REMIND_ADMIN_ID" envSeparator:","`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	HTTPAddr string `env:"HTTP_ADDR"`

	CreateRatePerMinute uint16 `env:"REMIND_CREATE_RATE_PER_MINUTE" envDefault:"20"`
	ListLimit           uint   `env:"REMIND_LIST_LIMIT" envDefault:"50"`

	// Parsed from the raw values above by Load.
	Defaults preference.Defaults
	Admins   user.Admins
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(
		c,
		validation.Field(&c.DefaultTimezone, validation.Required, validation.By(isTimezone)),
		validation.Field(&c.DefaultLanguage, validation.Required, validation.By(isLanguage)),
		validation.Field(&c.DBPath, validation.Required),
		validation.Field(&c.AuditLogPath, validation.Required),
		validation.Field(&c.TelegramPollTimeout, validation.Min(time.Second)),
		validation.Field(&c.CreateRatePerMinute, validation.Min(uint16(1))),
		validation.Field(&c.ListLimit, validation.Min(uint(1)), validation.Max(uint(100))),
	)
}

func isTimezone(value interface{}) error {
	_, err := preference.ParseTimezone(value.(string))
	return err
}

func isLanguage(value interface{}) error {
	_, err := preference.ParseLanguage(value.(string))
	return err
}

// Load reads the config from the process environment.
func Load() (*Config, error) {
	return load(env.Options{})
}

func load(options env.Options) (*Config, error) {
	config := &Config{}
	if err := env.Parse(config, options); err != nil {
		return nil, fmt.Errorf("could not parse config: %w", err)
	}

	if config.TelegramBotToken == "" && config.TelegramBotTokenFile != "" {
		token, err := readToken(config.TelegramBotTokenFile)
		if err != nil {
			return nil, err
		}
		config.TelegramBotToken = token
	}

	if config.TelegramBotToken == "" {
		return nil, ErrMissingToken
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	tz, _ := preference.ParseTimezone(config.DefaultTimezone)
	lang, _ := preference.ParseLanguage(config.DefaultLanguage)
	config.Defaults = preference.Defaults{Timezone: tz, Language: lang}
	config.Admins = user.ParseAdmins(config.AdminItems)
	return config, nil
}

// readToken returns an empty token when the file does not exist.
func readToken(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("could not read %s: %w", path, err)
	}
	return strings.TrimSpace(string(raw)), nil
}
