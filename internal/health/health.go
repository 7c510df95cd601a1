// Package health serves a JSON snapshot of the outage schedule and the
// guard's pause state.
package health

import (
	"context"
	"encoding/json"
	"github.com/ovasylenko/printer-sentry/internal/guard"
	"github.com/ovasylenko/printer-sentry/internal/outages"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

type SchedulePoller interface {
	Subscribe() chan outages.Schedule
	Unsubscribe(chan outages.Schedule)
	Refresh()
	Schedule() (outages.Schedule, time.Time)
}

type GuardStatus interface {
	Status() guard.Status
}

type Health struct {
	SchedulePoller
	GuardStatus
	logger   *slog.Logger
	lock     sync.RWMutex
	schedule outages.Schedule
	updated  bool
}

func New(p SchedulePoller, g GuardStatus, logger *slog.Logger) *Health {
	return &Health{
		SchedulePoller: p,
		GuardStatus:    g,
		logger:         logger,
	}
}

func (h *Health) Run(ctx context.Context) error {
	h.logger.Debug("started")
	defer h.logger.Debug("stopped")

	ch := h.SchedulePoller.Subscribe()
	defer h.SchedulePoller.Unsubscribe(ch)

	// pick up a schedule fetched before we subscribed
	if schedule, updated := h.SchedulePoller.Schedule(); !updated.IsZero() {
		h.lock.Lock()
		h.schedule = schedule
		h.updated = true
		h.lock.Unlock()
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case schedule := <-ch:
			h.lock.Lock()
			h.schedule = schedule
			h.updated = true
			h.lock.Unlock()
		}
	}
}

type report struct {
	Schedule map[outages.Period][]string `json:"schedule"`
	Guard    guard.Status                `json:"guard"`
}

func (h *Health) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	h.lock.RLock()
	defer h.lock.RUnlock()
	if !h.updated {
		http.Error(w, "no schedule yet", http.StatusServiceUnavailable)
		h.SchedulePoller.Refresh()
		return
	}

	r := report{
		Schedule: make(map[outages.Period][]string),
		Guard:    h.GuardStatus.Status(),
	}
	for _, p := range []outages.Period{outages.PeriodToday, outages.PeriodTomorrow} {
		labels := make([]string, 0, len(h.schedule.Windows(p)))
		for _, w := range h.schedule.Windows(p) {
			labels = append(labels, w.Label())
		}
		r.Schedule[p] = labels
	}

	w.Header().Set("Content-Type", "application/json")
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
