package http

import (
	"net/http"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/http/handlers/health"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewServer builds the health endpoint server. It has no routes besides /healthz and /readyz.
func NewServer(
	address string,
	log logging.Logger,
	db health.Pinger,
	timers health.TimerCounter,
	now func() time.Time,
) *http.Server {
	return &http.Server{
		Handler:           NewRouter(log, db, timers, now),
		Addr:              address,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      5 * time.Second,
		IdleTimeout:       5 * time.Second,
	}
}

func NewRouter(log logging.Logger, db health.Pinger, timers health.TimerCounter, now func() time.Time) http.Handler {
	handler := health.New(log, db, timers, now)

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Get("/healthz", handler.Live)
	router.Get("/readyz", handler.Ready)
	return router
}
