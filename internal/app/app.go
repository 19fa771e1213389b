package app

import (
	"context"
	"errors"
	"net/http"
	"remindbot/internal/app/consumers"
	"remindbot/internal/app/deps"
	"remindbot/internal/app/services"
	dl "remindbot/internal/core/domain/logging"
	rearmreminders "remindbot/internal/core/services/rearm_reminders"
	rhttp "remindbot/internal/http"
	"remindbot/internal/telegram"
	"time"

	"golang.org/x/sync/errgroup"
)

const SHUTDOWN_TIMEOUT = 5 * time.Second

// Run serves the bot until ctx is done or an admin asks for a restart.
func Run(ctx context.Context) error {
	ctx, stop := context.WithCancel(ctx)
	defer stop()

	deps, closeDeps := deps.InitDeps(ctx)
	defer closeDeps()

	s := services.InitServices(deps)
	if _, err := s.RearmReminders.Run(ctx, rearmreminders.Input{}); err != nil {
		return err
	}

	dispatcher := telegram.New(
		deps.Logger,
		deps.Messenger,
		deps.Auditor,
		deps.TimeResolver,
		s.ForDispatcher(),
		deps.Config.Admins,
		deps.Now,
		stop,
	)

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		// The health server has nothing to report once updates stop.
		defer stop()
		return consumers.ConsumeUpdates(ctx, deps, dispatcher)
	})
	if deps.Config.HTTPAddr != "" {
		server := InitHttpServer(deps)
		group.Go(func() error {
			deps.Logger.Info(ctx, "Server has started.", dl.Entry("address", server.Addr))
			if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		group.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), SHUTDOWN_TIMEOUT)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		})
	}

	err := group.Wait()
	deps.Logger.Info(context.Background(), "Bot stopped.")
	return err
}

func InitHttpServer(deps *deps.Deps) *http.Server {
	return rhttp.NewServer(deps.Config.HTTPAddr, deps.Logger, deps.DB, deps.ReminderScheduler, deps.Now)
}
