package health

import (
	"context"
	"net/http"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/http/handlers/response"
	"time"
)

const PING_TIMEOUT = 2 * time.Second

type Pinger interface {
	PingContext(ctx context.Context) error
}

type TimerCounter interface {
	Armed() int
}

type Handler struct {
	log     logging.Logger
	db      Pinger
	timers  TimerCounter
	started time.Time
	now     func() time.Time
}

func New(log logging.Logger, db Pinger, timers TimerCounter, now func() time.Time) *Handler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	if timers == nil {
		panic(e.NewNilArgumentError("timers"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &Handler{log: log, db: db, timers: timers, started: now(), now: now}
}

type liveness struct {
	Status        string `json:"status"`
	ArmedTimers   int    `json:"armed_timers"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// Live reports that the process is up along with the number of armed timers.
func (h *Handler) Live(rw http.ResponseWriter, r *http.Request) {
	response.Render(rw, liveness{
		Status:        "ok",
		ArmedTimers:   h.timers.Armed(),
		UptimeSeconds: int64(h.now().Sub(h.started) / time.Second),
	}, http.StatusOK)
}

type readiness struct {
	Status string `json:"status"`
}

// Ready checks that the store answers.
func (h *Handler) Ready(rw http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), PING_TIMEOUT)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.log.Warning(r.Context(), "Readiness check failed.", logging.Entry("err", err))
		response.RenderServiceUnavailable(rw, "database is unavailable")
		return
	}
	response.Render(rw, readiness{Status: "ok"}, http.StatusOK)
}
