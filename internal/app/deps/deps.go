package deps

import (
	"context"
	"database/sql"
	"remindbot/internal/config"
	"remindbot/internal/core/domain/audit"
	"remindbot/internal/core/domain/bot"
	dl "remindbot/internal/core/domain/logging"
	"remindbot/internal/core/domain/preference"
	drl "remindbot/internal/core/domain/rate_limiter"
	"remindbot/internal/core/domain/reminder"
	duow "remindbot/internal/core/domain/unit_of_work"
	"remindbot/internal/db"
	dbpreference "remindbot/internal/db/preference"
	dbreminder "remindbot/internal/db/reminder"
	uow "remindbot/internal/db/unit_of_work"
	auditlog "remindbot/internal/implementations/audit"
	"remindbot/internal/implementations/identity"
	"remindbot/internal/implementations/logging"
	ratelimiter "remindbot/internal/implementations/rate_limiter"
	remindersender "remindbot/internal/implementations/reminder_sender"
	"remindbot/internal/implementations/scheduler"
	telegrambotmessagesender "remindbot/internal/implementations/telegram_bot_message_sender"
	timeresolver "remindbot/internal/implementations/time_resolver"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Deps struct {
	Config *config.Config
	Logger dl.Logger

	DB     *sql.DB
	BotAPI *tgbotapi.BotAPI

	Now func() time.Time

	UnitOfWork           duow.UnitOfWork
	ReminderRepository   reminder.Repository
	PreferenceRepository preference.Repository

	RateLimiter drl.RateLimiter
	Auditor     audit.Auditor

	TelegramBotMessageSender *telegrambotmessagesender.TelegramBotMessageSender
	Messenger                bot.Messenger

	ReminderScheduler *scheduler.Scheduler
	ReminderSender    reminder.Sender
	TimeResolver      reminder.TimeResolver
}

// InitDeps panics when a required resource cannot be set up.
// The returned function releases resources in reverse order of acquisition.
func InitDeps(ctx context.Context) (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()

	closeLogger := deps.initLogger()
	closeDB := deps.initDB(ctx)
	closeAuditor := deps.initAuditor()
	deps.initBotAPI()

	deps.Now = func() time.Time { return time.Now().UTC() }

	deps.UnitOfWork = uow.NewSQLiteUnitOfWork(deps.DB)
	deps.ReminderRepository = dbreminder.NewSQLiteReminderRepository(deps.DB)
	deps.PreferenceRepository = dbpreference.NewSQLitePreferenceRepository(deps.DB)
	deps.RateLimiter = ratelimiter.NewInMemory(deps.Now)

	deps.TelegramBotMessageSender = telegrambotmessagesender.New(deps.BotAPI, deps.Logger)
	deps.Messenger = deps.TelegramBotMessageSender
	deps.ReminderSender = remindersender.NewTelegram(deps.Messenger)
	deps.TimeResolver = timeresolver.New()

	closeScheduler := deps.initReminderScheduler()

	return deps, func() {
		// Timers must be stopped before the DB they write to is closed.
		closeFuncs := []func(){
			closeScheduler,
			closeDB,
			closeAuditor,
			closeLogger,
		}
		for _, closeFunc := range closeFuncs {
			closeFunc()
		}
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger(deps.Config.LogLevel)
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initDB(ctx context.Context) func() {
	conn, err := db.Open(ctx, deps.Config.DBPath)
	if err != nil {
		deps.Logger.Error(ctx, "Could not open DB.", dl.Entry("err", err), dl.Entry("path", deps.Config.DBPath))
		panic(err)
	}
	deps.DB = conn
	deps.Logger.Info(ctx, "DB is ready.", dl.Entry("path", deps.Config.DBPath))
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		conn.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initAuditor() func() {
	auditor, err := auditlog.Open(deps.Config.AuditLogPath, deps.Logger, identity.NewUUID())
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not open audit log.", dl.Entry("err", err))
		panic(err)
	}
	deps.Auditor = auditor
	return func() {
		if err := auditor.Close(); err != nil {
			deps.Logger.Warning(context.Background(), "Could not close audit log.", dl.Entry("err", err))
		}
	}
}

func (deps *Deps) initBotAPI() {
	api, err := tgbotapi.NewBotAPI(deps.Config.TelegramBotToken)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to Telegram.", dl.Entry("err", err))
		panic(err)
	}
	deps.BotAPI = api
	deps.Logger.Info(context.Background(), "Authorized on Telegram.", dl.Entry("bot", api.Self.UserName))
}

func (deps *Deps) initReminderScheduler() func() {
	// Timer callbacks outlive any request, so they get their own context.
	deps.ReminderScheduler = scheduler.New(context.Background(), deps.Logger, scheduler.NewRealClock())
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down reminder scheduler.")
		deps.ReminderScheduler.Stop()
	}
}
