// Package guard holds the pause/resume decision engine: it watches the
// outage schedule and pauses the printer ahead of a confirmed outage window,
// parks it for the duration, and resumes it afterward.
package guard

import (
	"context"
	"fmt"
	"github.com/ovasylenko/printer-sentry/internal/notifier"
	"github.com/ovasylenko/printer-sentry/internal/outages"
	"log/slog"
	"sync"
	"time"
)

// PrinterClient is the printer control port the guard acts on.
type PrinterClient interface {
	Pause(ctx context.Context) error
	Park(ctx context.Context, coolTemp float64) error
	Resume(ctx context.Context, extruderTemp, bedTemp float64, settle time.Duration) error
}

// SchedulePublisher provides outage schedule updates, plus access to the
// current schedule for subscribers that missed earlier updates.
type SchedulePublisher interface {
	Subscribe() chan outages.Schedule
	Unsubscribe(chan outages.Schedule)
	Schedule() (outages.Schedule, time.Time)
}

// Configuration for a Guard.
type Configuration struct {
	// Interval between evaluations.
	Interval time.Duration
	// WaitBefore is how long before a window's start the print is paused.
	WaitBefore time.Duration
	// WaitAfter is how long after the pause the print is resumed.
	WaitAfter time.Duration
	// Heater setpoints used on resume.
	ExtruderTemp float64
	BedTemp      float64
	// ParkTemp is the setpoint both heaters are cooled to while paused.
	ParkTemp float64
	// SettleDelay between switching the heaters on and resuming the print.
	SettleDelay time.Duration
}

// Guard evaluates the schedule on a fixed interval and drives the printer
// through pause/park/resume. One Guard runs per printer.
type Guard struct {
	Publisher SchedulePublisher
	Printer   PrinterClient
	Notifier  notifier.Notifier
	Metrics   *Metrics

	// GetCurrentTime allows the current time to be set during testing.
	GetCurrentTime func() time.Time

	evaluator Evaluator
	cfg       Configuration
	logger    *slog.Logger

	lock     sync.RWMutex
	schedule outages.Schedule
	session  Session
}

func New(cfg Configuration, p SchedulePublisher, printerClient PrinterClient, n notifier.Notifier, m *Metrics, logger *slog.Logger) *Guard {
	threshold := time.Minute
	if cfg.Interval > threshold {
		threshold = cfg.Interval
	}
	return &Guard{
		Publisher: p,
		Printer:   printerClient,
		Notifier:  n,
		Metrics:   m,
		evaluator: Evaluator{WaitBefore: cfg.WaitBefore, Threshold: threshold},
		cfg:       cfg,
		logger:    logger,
	}
}

// Run subscribes to schedule updates and evaluates the state machine on every
// update and on every tick. All printer commands run synchronously inside the
// loop; failures are logged and retried on the next evaluation.
func (g *Guard) Run(ctx context.Context) error {
	ch := g.Publisher.Subscribe()
	defer g.Publisher.Unsubscribe(ch)

	g.logger.Debug("started", slog.Duration("interval", g.cfg.Interval))
	defer g.logger.Debug("stopped")

	// the publisher's startup fetch may have run before we subscribed
	if schedule, updated := g.Publisher.Schedule(); !updated.IsZero() {
		g.SetSchedule(schedule)
		g.Process(ctx)
	}

	ticker := time.NewTicker(g.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case schedule := <-ch:
			g.SetSchedule(schedule)
			g.Process(ctx)
		case <-ticker.C:
			g.Process(ctx)
		}
	}
}

// SetSchedule replaces the schedule the guard evaluates against.
func (g *Guard) SetSchedule(schedule outages.Schedule) {
	g.lock.Lock()
	defer g.lock.Unlock()
	g.schedule = schedule
}

// Process runs one evaluation cycle: evaluate the schedule, decide, act.
func (g *Guard) Process(ctx context.Context) {
	now := g.now()

	g.lock.RLock()
	schedule, session := g.schedule, g.session
	g.lock.RUnlock()

	evaluator := g.evaluator
	evaluator.GetCurrentTime = g.GetCurrentTime
	signal := evaluator.NextDangerWindow(schedule)

	switch nextStep(session, signal, now, g.cfg.WaitAfter) {
	case stepPause:
		g.pause(ctx, signal, now)
	case stepResume:
		g.resume(ctx, now, session)
	case stepNone:
		if session.Paused() {
			g.logger.Debug("paused, waiting to resume",
				slog.String("window", session.Window),
				slog.Duration("remaining", g.cfg.WaitAfter-now.Sub(session.PausedAt)),
			)
		}
	}
}

func (g *Guard) pause(ctx context.Context, signal Signal, now time.Time) {
	g.logger.Warn("outage window approaching",
		slog.String("window", signal.Window),
		slog.Float64("minutes", signal.Minutes),
	)

	if err := g.Printer.Pause(ctx); err != nil {
		// still idle. the next cycle tries again.
		g.logger.Error("failed to pause print", "err", err)
		g.Metrics.commandFailed("pause")
		return
	}

	g.setSession(Session{PausedAt: now, Window: signal.Window})
	g.Metrics.paused()
	g.Notifier.Notify(fmt.Sprintf("print paused for outage window %s. resuming in %s", signal.Window, g.cfg.WaitAfter))

	// the pause is committed: a park failure only costs reheat time
	if err := g.Printer.Park(ctx, g.cfg.ParkTemp); err != nil {
		g.logger.Error("failed to park printer", "err", err)
		g.Metrics.commandFailed("park")
	}
}

func (g *Guard) resume(ctx context.Context, now time.Time, session Session) {
	g.logger.Info("wait time expired, resuming print",
		slog.String("window", session.Window),
		slog.Duration("paused", now.Sub(session.PausedAt)),
	)

	if err := g.Printer.Resume(ctx, g.cfg.ExtruderTemp, g.cfg.BedTemp, g.cfg.SettleDelay); err != nil {
		// keep the pause timestamp: the wait has expired, so every
		// subsequent cycle retries until the printer accepts the resume
		g.logger.Error("failed to resume print", "err", err)
		g.Metrics.commandFailed("resume")
		return
	}

	g.setSession(Session{})
	g.Metrics.resumed()
	g.Notifier.Notify(fmt.Sprintf("print resumed after outage window %s", session.Window))
}

func (g *Guard) setSession(session Session) {
	g.lock.Lock()
	defer g.lock.Unlock()
	g.session = session
}

func (g *Guard) now() time.Time {
	if g.GetCurrentTime != nil {
		return g.GetCurrentTime()
	}
	return time.Now()
}

// Status is a snapshot of the guard's state, served by the health endpoint.
type Status struct {
	Paused   bool      `json:"paused"`
	PausedAt time.Time `json:"pausedAt"`
	Window   string    `json:"window,omitempty"`
}

func (g *Guard) Status() Status {
	g.lock.RLock()
	defer g.lock.RUnlock()
	return Status{
		Paused:   g.session.Paused(),
		PausedAt: g.session.PausedAt,
		Window:   g.session.Window,
	}
}
